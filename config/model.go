package config

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// DefaultArchivePrefix is the filename prefix shared by every archive
	// this tool produces. Restore only considers files carrying it.
	DefaultArchivePrefix = "steplog_backup_"

	// DefaultCatalogName is the bookkeeping database filename, created
	// inside the backup directory.
	DefaultCatalogName = "catalog.db"
)

// Config holds the resolved paths both tools operate on. It is loaded once
// at process start and passed down by value; nothing mutates it afterwards.
type Config struct {
	ProjectDir    string       `json:"project_dir"`
	BackupDir     string       `json:"backup_dir"`
	ArchivePrefix string       `json:"archive_prefix,omitempty"`
	CatalogPath   string       `json:"catalog_path,omitempty"`
	WarnSize      SizeArgument `json:"warn_size,omitempty"`
	Schedule      string       `json:"cron,omitempty"`
}

func (c Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("project_dir", c.ProjectDir)
	e.Str("backup_dir", c.BackupDir)
	e.Str("archive_prefix", c.ArchivePrefix)
	e.Str("catalog", c.CatalogPath)

	if c.WarnSize.Size > 0 {
		e.Int64("warn_size", c.WarnSize.Size)
	}
	if c.Schedule != "" {
		e.Str("schedule", c.Schedule)
	}
}

// Validate reports the first missing required path.
func (c Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project directory not configured (set project_dir or %s)", envProjectDir)
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup directory not configured (set backup_dir or %s)", envBackupDir)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ArchivePrefix == "" {
		c.ArchivePrefix = DefaultArchivePrefix
	}
	if c.CatalogPath == "" && c.BackupDir != "" {
		c.CatalogPath = filepath.Join(c.BackupDir, DefaultCatalogName)
	}
}
