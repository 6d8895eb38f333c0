package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/catalog"
	"github.com/steplog/backup/config"
	"github.com/steplog/backup/fileutils"
	"github.com/steplog/backup/snapshot"
	"github.com/steplog/backup/ziparchiver"
)

func backupCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	if args.Backup.DryRun {
		logger = logger.With().Bool("dryrun", true).Logger()
	}

	cfg, err := config.Load(args.Backup.Config)
	if err != nil {
		return err
	}

	return runBackup(ctx, cfg, logger, args.Backup.DryRun)
}

// runBackup is one full backup pass, shared with the daemon's scheduled
// jobs.
func runBackup(ctx context.Context, cfg *config.Config, logger zerolog.Logger, dryRun bool) error {
	startTime := time.Now()
	logger.Info().Str("project", cfg.ProjectDir).Str("dest", cfg.BackupDir).Msg("starting backup")
	defer func() {
		tookSeconds := time.Since(startTime).Seconds()
		if ctx.Err() != nil {
			logger.Info().Str("project", cfg.ProjectDir).Float64("seconds", tookSeconds).Msg("backup cancelled")
		} else {
			logger.Info().Str("project", cfg.ProjectDir).Float64("seconds", tookSeconds).Msg("backup done")
		}
	}()

	// Nothing to archive means nothing is created, the backup directory
	// included.
	files, err := snapshot.Collect(ctx, cfg.ProjectDir, logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if !dryRun {
		if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
			return fmt.Errorf("could not create backup directory %s: %w", cfg.BackupDir, err)
		}
		if err := fileutils.VerifyWritable(cfg.BackupDir); err != nil {
			return fmt.Errorf("backup directory %s must be writable: %w", cfg.BackupDir, err)
		}
	}

	archivePath := filepath.Join(cfg.BackupDir, ziparchiver.ArchiveName(cfg.ArchivePrefix, time.Now().UTC()))
	stored, err := ziparchiver.Store(ctx, archivePath, files, logger, ziparchiver.WithDryRun(dryRun))
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	var totalSize int64
	for _, s := range stored {
		totalSize += s.Size
	}
	if cfg.WarnSize.Size > 0 && totalSize > cfg.WarnSize.Size {
		logger.Warn().
			Int64("files_size", totalSize).
			Int64("warn_size", cfg.WarnSize.Size).
			Msg("backup payload exceeds configured warn size")
	}

	if !dryRun {
		// The archive on disk is the deliverable; a catalog failure is
		// reported but does not fail the run.
		if err := recordInCatalog(ctx, cfg, archivePath, stored, logger); err != nil {
			logger.Error().Err(err).Msg("could not record backup in catalog")
		}
	}

	logger.Info().Str("archive", archivePath).Msg("backup complete")
	return nil
}

func recordInCatalog(
	ctx context.Context,
	cfg *config.Config,
	archivePath string,
	stored []ziparchiver.StoredFile,
	logger zerolog.Logger,
) error {
	cli, err := newSQLite(cfg.CatalogPath, logger)
	if err != nil {
		return fmt.Errorf("could not open catalog %s: %w", cfg.CatalogPath, err)
	}

	cat := &catalog.Catalog{Cli: cli, Logger: logger}
	return cat.Record(ctx, archivePath, cfg.ProjectDir, stored)
}
