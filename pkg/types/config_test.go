// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	if !cfg.ApplyDefaults() {
		t.Error("ApplyDefaults on zero config should report a change")
	}

	if cfg.NamePattern != DefaultNamePattern {
		t.Errorf("NamePattern = %q, want %q", cfg.NamePattern, DefaultNamePattern)
	}
	if cfg.StartRow != DefaultStartRow || cfg.TargetColumn != DefaultTargetColumn {
		t.Errorf("rows/columns = %d/%d, want %d/%d",
			cfg.StartRow, cfg.TargetColumn, DefaultStartRow, DefaultTargetColumn)
	}
	if cfg.Separator != DefaultSeparator {
		t.Errorf("Separator = %q, want %q", cfg.Separator, DefaultSeparator)
	}
	if cfg.MaxFileAge() != 12*time.Hour {
		t.Errorf("MaxFileAge = %v, want 12h", cfg.MaxFileAge())
	}
	if cfg.StabilityWindow() != 5*time.Second {
		t.Errorf("StabilityWindow = %v, want 5s", cfg.StabilityWindow())
	}
	if cfg.WatchFolder != "" || cfg.PublishFolder != "" {
		t.Error("folders must not be defaulted")
	}

	if cfg.ApplyDefaults() {
		t.Error("second ApplyDefaults should report no change")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{StartRow: 3, Separator: " | "}
	cfg.ApplyDefaults()

	if cfg.StartRow != 3 {
		t.Errorf("StartRow = %d, want explicit 3", cfg.StartRow)
	}
	if cfg.Separator != " | " {
		t.Errorf("Separator = %q, want explicit value", cfg.Separator)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := touch(file); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"both folders valid", Config{WatchFolder: dir, PublishFolder: dir}, false},
		{"watch folder missing", Config{PublishFolder: dir}, true},
		{"publish folder absent", Config{WatchFolder: dir, PublishFolder: filepath.Join(dir, "gone")}, true},
		{"publish folder is a file", Config{WatchFolder: dir, PublishFolder: file}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func touch(path string) error {
	return os.WriteFile(path, nil, 0o644)
}
