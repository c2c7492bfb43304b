// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package setup handles first-run configuration: folder selection through a
// pluggable provider and YAML settings persistence.
package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/srwatch/pkg/types"
)

const (
	appDirName       = "srwatch"
	settingsFileName = "srwatch.yaml"
)

// AppDir returns the per-user directory holding settings, the journal, and
// the log file, creating it if needed.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// SettingsPath returns the settings file location under AppDir.
func SettingsPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// DefaultWatchFolder is the user's Downloads directory, the place report
// exports land by default.
func DefaultWatchFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}

// Save writes the configuration as YAML to path.
func Save(path string, cfg types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// EnsureConfig fills the configuration so a run can start: defaults for the
// pipeline settings, and the setup provider for any folder that is missing
// or no longer exists. With reset true both folders are re-picked regardless
// of current values. Returns the completed config and whether anything
// changed (the caller persists it then). A folder the provider picks that
// does not exist is a fatal setup error.
func EnsureConfig(cfg types.Config, p Provider, reset bool) (types.Config, bool, error) {
	if reset {
		cfg.WatchFolder = ""
		cfg.PublishFolder = ""
	}
	changed := cfg.ApplyDefaults()

	if !folderExists(cfg.PublishFolder) {
		picked, err := p.PickPublishFolder()
		if err != nil {
			return cfg, false, err
		}
		if !folderExists(picked) {
			return cfg, false, fmt.Errorf("publish folder %q does not exist", picked)
		}
		cfg.PublishFolder = picked
		changed = true
	}

	if !folderExists(cfg.WatchFolder) {
		picked, err := p.PickWatchFolder(DefaultWatchFolder())
		if err != nil {
			return cfg, false, err
		}
		if !folderExists(picked) {
			return cfg, false, fmt.Errorf("watch folder %q does not exist", picked)
		}
		cfg.WatchFolder = picked
		changed = true
	}

	return cfg, changed, nil
}

func folderExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
