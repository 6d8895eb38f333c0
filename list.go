package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"github.com/steplog/backup/catalog"
	"github.com/steplog/backup/config"
	"github.com/steplog/backup/fileutils"
	"github.com/steplog/backup/ziparchiver"
)

func listCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	cfg, err := config.Load(args.List.Config)
	if err != nil {
		return err
	}

	archives, err := ziparchiver.FindArchives(cfg.BackupDir, cfg.ArchivePrefix)
	if errors.Is(err, ziparchiver.ErrNoArchives) {
		fmt.Printf("No backups found in %s\n", cfg.BackupDir)
		return nil
	}
	if err != nil {
		return err
	}

	recorded := loadCatalogRows(ctx, cfg, logger)

	for i, path := range archives {
		line := fmt.Sprintf("%3d) %s", i+1, filepath.Base(path))
		if info, err := os.Stat(path); err == nil {
			line += fmt.Sprintf("  %s", units.HumanSize(float64(info.Size())))
		}
		if row, ok := recorded[path]; ok {
			line += fmt.Sprintf("  (%d files, %s uncompressed)",
				row.FileCount, units.HumanSize(float64(row.Size)))
		}
		fmt.Println(line)
	}

	return nil
}

// loadCatalogRows returns recorded archives keyed by path. The listing
// degrades to names and on-disk sizes when the catalog is absent or
// unreadable.
func loadCatalogRows(ctx context.Context, cfg *config.Config, logger zerolog.Logger) map[string]catalog.Archive {
	recorded := map[string]catalog.Archive{}

	if !fileutils.Exists(cfg.CatalogPath) {
		return recorded
	}

	cli, err := newSQLite(cfg.CatalogPath, logger)
	if err != nil {
		logger.Warn().Err(err).Str("catalog", cfg.CatalogPath).Msg("could not open catalog")
		return recorded
	}

	cat := &catalog.Catalog{Cli: cli, Logger: logger}
	rows, err := cat.Archives(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read catalog")
		return recorded
	}

	for _, row := range rows {
		recorded[row.Path] = row
	}
	return recorded
}
