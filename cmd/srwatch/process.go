package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/srwatch/internal/journal"
	"github.com/pdiddy/srwatch/internal/logging"
	"github.com/pdiddy/srwatch/internal/normalize"
	"github.com/pdiddy/srwatch/internal/setup"
	"github.com/pdiddy/srwatch/internal/watch"
)

var processCmd = &cobra.Command{
	Use:   "process FILE",
	Short: "Run the pipeline once on a single file",
	Long: `Process pushes one file through the same pipeline the watcher uses:
readiness gating, format conversion, link column rewrite, and publication.
Useful for reprocessing a report without waiting for a filesystem event.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runSetup(false)
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

		store, err := journal.Open(appDir)
		if err != nil {
			return err
		}
		defer store.Close()

		session, err := normalize.DetectSession()
		if err != nil {
			log.Warn().Err(err).Msg("no automation surface, legacy files will fail")
		}

		pipeline := watch.NewPipeline(cfg, normalize.New(session), store, log)
		pipeline.Handle(args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
