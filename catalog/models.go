package catalog

import (
	"time"
)

// Archive is one backup run's bookkeeping row. Path is the archive file's
// full path on the backup volume.
type Archive struct {
	Path       string `gorm:"primaryKey"`
	ProjectDir string
	CreatedAt  time.Time
	Size       int64
	FileCount  int
}

// ArchiveFile records one regular file stored inside an archive. Path is
// project-relative, matching the zip entry name.
type ArchiveFile struct {
	ArchivePath string  `gorm:"primaryKey"`
	Path        string  `gorm:"primaryKey"`
	Archive     Archive `gorm:"foreignKey:ArchivePath"`
	Size        int64
	Hash        int64
	ModTime     time.Time
	CreatedAt   time.Time
}
