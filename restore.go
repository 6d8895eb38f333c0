package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/config"
	"github.com/steplog/backup/prompt"
	"github.com/steplog/backup/ziparchiver"
)

func restoreCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	cfg, err := config.Load(args.Restore.Config)
	if err != nil {
		return err
	}

	return runRestore(ctx, restoreParams{
		cfg:    cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logger,
	})
}

type restoreParams struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
}

func runRestore(ctx context.Context, p restoreParams) error {
	logger := p.logger
	startTime := time.Now()
	logger.Info().Str("project", p.cfg.ProjectDir).Msg("starting restore")
	defer func() {
		tookSeconds := time.Since(startTime).Seconds()
		if ctx.Err() != nil {
			logger.Info().Str("project", p.cfg.ProjectDir).Float64("seconds", tookSeconds).Msg("restore cancelled")
		} else {
			logger.Info().Str("project", p.cfg.ProjectDir).Float64("seconds", tookSeconds).Msg("restore done")
		}
	}()

	archives, err := ziparchiver.FindArchives(p.cfg.BackupDir, p.cfg.ArchivePrefix)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, "Available backups:")
	for i, path := range archives {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, filepath.Base(path))
	}
	fmt.Fprintf(p.out, "Select a backup to restore [%d]: ", len(archives))

	input := prompt.NewReader(p.in)
	line, err := input.ReadLine()
	if err != nil {
		return fmt.Errorf("could not read selection: %w", err)
	}
	idx, err := prompt.Select(len(archives), line)
	if err != nil {
		return err
	}
	selected := archives[idx]

	fmt.Fprintf(p.out, "Restoring %s into %s\n", filepath.Base(selected), p.cfg.ProjectDir)
	fmt.Fprint(p.out, "Existing project files at matching paths will be overwritten. Continue? [y/N]: ")

	answer, err := input.ReadLine()
	if err != nil {
		return fmt.Errorf("could not read confirmation: %w", err)
	}
	if !prompt.Confirm(answer) {
		logger.Info().Msg("restore declined, no files touched")
		return nil
	}

	restored, err := ziparchiver.Extract(ctx, selected, p.cfg.ProjectDir, logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	logger.Info().Str("archive", selected).Int("restored", restored).Msg("restore complete")
	return nil
}
