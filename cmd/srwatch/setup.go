package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/srwatch/internal/setup"
	"github.com/pdiddy/srwatch/pkg/types"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run folder selection and save settings",
	Long: `Setup walks through folder selection: the locally-synced publish folder
and the folder to watch (Downloads by default). Settings are saved to the
per-user config file and reused on every later run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runSetup(true)
		if err != nil {
			return err
		}
		fmt.Printf("Watching %s\nPublishing to %s\n", cfg.WatchFolder, cfg.PublishFolder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// runSetup loads the current configuration and completes it, prompting for
// folders when they are missing, invalid, or when reset is set. Filled-in
// values are written back to the settings file. An invalid folder selection
// is fatal; there is no way to proceed without valid configuration.
func runSetup(reset bool) (types.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}

	provider := setup.NewTerminalProvider(os.Stdin, os.Stdout)
	cfg, changed, err := setup.EnsureConfig(cfg, provider, reset)
	if err != nil {
		return cfg, fmt.Errorf("setup: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("setup: %w", err)
	}

	if changed {
		path, err := setup.SettingsPath()
		if err != nil {
			return cfg, err
		}
		if err := setup.Save(path, cfg); err != nil {
			return cfg, err
		}
		fmt.Fprintln(os.Stderr, "Saved settings:", path)
	}
	return cfg, nil
}
