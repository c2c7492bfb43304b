// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the srwatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/srwatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the srwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "srwatch",
	Short: "Watch a folder for report files and republish them with embedded links",
	Long: `srwatch watches a local folder for freshly downloaded spreadsheet reports,
rewrites the link column so every cell carries its extracted URL as visible
text, and copies the processed workbook into a locally-synced publish folder.

Run "srwatch watch" to start the watcher. First run walks through folder
selection; "srwatch setup" or --reset re-runs it.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./srwatch.yaml or ~/.config/srwatch/srwatch.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("srwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "srwatch"))
		}
	}

	viper.SetEnvPrefix("SRWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals whatever viper picked up into an immutable Config
// with defaults applied. Folder settings may still be empty; EnsureConfig
// fills those.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
