package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/config"
	"github.com/steplog/backup/fileutils"
	"github.com/steplog/backup/scheduler"
)

func daemonCommand(ctx context.Context, args Command, logger zerolog.Logger) error {
	if args.Daemon.DryRun {
		logger = logger.With().Bool("dryrun", true).Logger()
	}

	cfg, err := config.Load(args.Daemon.Config)
	if err != nil {
		return err
	}
	if cfg.Schedule == "" {
		return fmt.Errorf("config must set a cron schedule to run the daemon")
	}

	sched := scheduler.NewScheduler(scheduler.SchedulerParams{
		Logger: logger,
	})

	addJob := func(cfg *config.Config) error {
		err := sched.AddBackupJob(cfg.Schedule, &backupJob{
			ctx:    ctx,
			cfg:    cfg,
			logger: logger,
			dryRun: args.Daemon.DryRun,
		})
		if err != nil {
			return err
		}
		logger.Info().Object("config", *cfg).Msg("scheduled backup")
		return nil
	}
	if err := addJob(cfg); err != nil {
		return err
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	startConfigFileWatcher(ctx, args.Daemon.Config, logger, ticker, func(cfg *config.Config) {
		sched.RemoveJobs()
		if cfg.Schedule == "" {
			logger.Error().Msg("reloaded config has no cron schedule, no backup scheduled")
			return
		}
		if err := addJob(cfg); err != nil {
			logger.Error().Err(err).Msg("could not reschedule backup")
		}
	})

	sched.Start()
	defer sched.Stop()

	<-ctx.Done()

	return nil
}

func startConfigFileWatcher(ctx context.Context, cfgPath string, logger zerolog.Logger, ticker *time.Ticker, onChanged func(cfg *config.Config)) {
	logger.Info().Str("path", cfgPath).Msg("watching config file for changes")
	watcher, err := fileutils.WatchFile(ctx, cfgPath, when(ticker.C), func(err error) {
		logger.Error().Err(err).Msg("could not watch config file")
	})
	if err != nil {
		logger.Error().Err(err).Msg("could not watch config file")
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-watcher:
				logger.Info().Str("path", cfgPath).Msg("config file changed, reloading")

				cfg, err := config.Load(cfgPath)
				if err != nil {
					logger.Error().Err(err).Msg("could not load config")
					break
				}

				onChanged(cfg)
			}
		}
	}()
}

func when[T any](ch <-chan T) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for range ch {
			out <- struct{}{}
		}
	}()
	return out
}

type backupJob struct {
	ctx    context.Context
	cfg    *config.Config
	logger zerolog.Logger
	dryRun bool
}

func (b *backupJob) Run() {
	err := runBackup(b.ctx, b.cfg, b.logger, b.dryRun)
	if err != nil {
		b.logger.Error().Err(err).Str("project", b.cfg.ProjectDir).Msg("backup job failed")
	}
}
