// Package catalog keeps a bookkeeping database of produced archives and
// their contents on the backup volume. It is written after each successful
// backup and read by the listing command; the backup directory itself
// remains the source of truth for which archives exist.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/ziparchiver"
	"gorm.io/gorm"
)

const createBatchSize = 50

type Catalog struct {
	Lock   sync.Mutex
	Cli    *gorm.DB
	Logger zerolog.Logger
	DryRun bool
}

// Record stores one archive row plus a row per archived file.
func (c *Catalog) Record(ctx context.Context, archivePath string, projectDir string, files []ziparchiver.StoredFile) error {
	c.Lock.Lock()
	defer c.Lock.Unlock()

	logger := c.Logger.With().Str("archive", archivePath).Logger()
	logger.Debug().Int("files", len(files)).Msg("recording archive")

	if c.DryRun {
		logger.Info().Msg("dry run, not recording archive")
		return nil
	}

	var totalSize int64
	rows := make([]ArchiveFile, 0, len(files))
	for _, f := range files {
		totalSize += f.Size
		rows = append(rows, ArchiveFile{
			ArchivePath: archivePath,
			Path:        f.RelPath,
			Size:        f.Size,
			Hash:        int64(f.Hash),
			ModTime:     f.ModTime,
		})
	}

	archive := Archive{
		Path:       archivePath,
		ProjectDir: projectDir,
		Size:       totalSize,
		FileCount:  len(files),
	}
	if err := c.Cli.WithContext(ctx).Create(&archive).Error; err != nil {
		return fmt.Errorf("could not record archive: %w", err)
	}

	if len(rows) > 0 {
		if err := c.Cli.WithContext(ctx).CreateInBatches(rows, createBatchSize).Error; err != nil {
			return fmt.Errorf("could not record archive files: %w", err)
		}
	}

	logger.Info().Int("recorded", len(rows)).Msg("recorded archive in catalog")
	return nil
}

// Archives returns every recorded archive, oldest first. Archive paths
// embed a fixed-width timestamp, so path order is creation order.
func (c *Catalog) Archives(ctx context.Context) ([]Archive, error) {
	c.Lock.Lock()
	defer c.Lock.Unlock()

	var archives []Archive
	err := c.Cli.WithContext(ctx).Order("path ASC").Find(&archives).Error
	if err != nil {
		return nil, fmt.Errorf("could not list catalog archives: %w", err)
	}
	return archives, nil
}

// Files returns the recorded contents of one archive.
func (c *Catalog) Files(ctx context.Context, archivePath string) ([]ArchiveFile, error) {
	c.Lock.Lock()
	defer c.Lock.Unlock()

	var files []ArchiveFile
	err := c.Cli.WithContext(ctx).
		Where(ArchiveFile{ArchivePath: archivePath}).
		Order("path ASC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("could not list archive files: %w", err)
	}
	return files, nil
}
