package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/pdiddy/srwatch/internal/journal"
	"github.com/pdiddy/srwatch/internal/logging"
	"github.com/pdiddy/srwatch/internal/normalize"
	"github.com/pdiddy/srwatch/internal/setup"
	"github.com/pdiddy/srwatch/internal/watch"
)

const lockFileName = ".lock"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start watching the configured folder",
	Long: `Watch observes the configured folder for new report files and runs each
one through the intake pipeline: readiness gating, format conversion, link
column rewrite, and publication into the synced folder.

The watcher runs until interrupted. A file's failure never stops the loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")
		cfg, err := runSetup(reset)
		if err != nil {
			return err
		}

		appDir, err := setup.AppDir()
		if err != nil {
			return err
		}
		log, logFile := logging.New(appDir)
		if logFile != nil {
			defer logFile.Close()
		}

		// One watcher per config; a second instance polling the same
		// folder would double-publish.
		lock := flock.New(filepath.Join(appDir, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquiring instance lock: %w", err)
		}
		if !locked {
			return fmt.Errorf("another srwatch instance is already running")
		}
		defer lock.Unlock()

		store, err := journal.Open(appDir)
		if err != nil {
			return err
		}
		defer store.Close()

		session, err := normalize.DetectSession()
		if err != nil {
			// Not fatal: .xlsx inputs still work without automation.
			log.Warn().Err(err).Msg("no automation surface, legacy files will fail")
		}

		pipeline := watch.NewPipeline(cfg, normalize.New(session), store, log)
		loop := watch.NewLoop(cfg.WatchFolder, pipeline, log)

		log.Info().
			Str("watch", cfg.WatchFolder).
			Str("publish", cfg.PublishFolder).
			Str("pattern", cfg.NamePattern).
			Msg("srwatch started")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return loop.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().Bool("reset", false, "re-run first-run folder selection")

	rootCmd.AddCommand(watchCmd)
}
