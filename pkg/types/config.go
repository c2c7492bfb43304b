package types

import (
	"fmt"
	"os"
	"time"
)

// Defaults for the intake pipeline. These mirror the report feed this tool
// was built for: TeamBinder SR exports land in Downloads as ETSA-TSA-*.xls
// with data starting at row 19 in column B.
const (
	DefaultNamePattern            = "ETSA-TSA-*.xls"
	DefaultStartRow               = 19
	DefaultTargetColumn           = 2
	DefaultSeparator              = " ### "
	DefaultMaxFileAgeHours        = 12
	DefaultStabilityWindowSeconds = 5
)

// StampFormat is the timestamp layout used in published artifact names.
// Sortable, second resolution.
const StampFormat = "20060102_150405"

// Config holds the full run configuration for srwatch. It is loaded once at
// startup and passed by value to every component; nothing re-reads it mid-run.
type Config struct {
	// WatchFolder is the directory observed for new report files.
	WatchFolder string `json:"watch_folder" yaml:"watch_folder" mapstructure:"watch_folder"`

	// PublishFolder is the synced destination directory for processed files.
	PublishFolder string `json:"publish_folder" yaml:"publish_folder" mapstructure:"publish_folder"`

	// NamePattern is the glob a candidate filename must match.
	NamePattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// StartRow is the first data row rewritten by the transformer (1-based).
	StartRow int `json:"start_row" yaml:"start_row" mapstructure:"start_row"`

	// TargetColumn is the column rewritten by the transformer (1-based).
	TargetColumn int `json:"target_column" yaml:"target_column" mapstructure:"target_column"`

	// Separator joins original cell text and the extracted URL. Its presence
	// in a cell marks the cell as already processed.
	Separator string `json:"separator" yaml:"separator" mapstructure:"separator"`

	// MaxFileAgeHours rejects files whose mtime is older than this.
	MaxFileAgeHours int `json:"max_file_age_hours" yaml:"max_file_age_hours" mapstructure:"max_file_age_hours"`

	// StabilityWindowSeconds is how long a file's size must stay constant
	// before it is considered fully written.
	StabilityWindowSeconds int `json:"stability_window_seconds" yaml:"stability_window_seconds" mapstructure:"stability_window_seconds"`
}

// ApplyDefaults fills zero-valued pipeline settings and reports whether
// anything changed. Folder settings are never defaulted here; they come from
// first-run setup.
func (c *Config) ApplyDefaults() bool {
	changed := false
	if c.NamePattern == "" {
		c.NamePattern = DefaultNamePattern
		changed = true
	}
	if c.StartRow <= 0 {
		c.StartRow = DefaultStartRow
		changed = true
	}
	if c.TargetColumn <= 0 {
		c.TargetColumn = DefaultTargetColumn
		changed = true
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
		changed = true
	}
	if c.MaxFileAgeHours <= 0 {
		c.MaxFileAgeHours = DefaultMaxFileAgeHours
		changed = true
	}
	if c.StabilityWindowSeconds <= 0 {
		c.StabilityWindowSeconds = DefaultStabilityWindowSeconds
		changed = true
	}
	return changed
}

// MaxFileAge returns the freshness threshold as a duration.
func (c Config) MaxFileAge() time.Duration {
	return time.Duration(c.MaxFileAgeHours) * time.Hour
}

// StabilityWindow returns the size-stability window as a duration.
func (c Config) StabilityWindow() time.Duration {
	return time.Duration(c.StabilityWindowSeconds) * time.Second
}

// Validate checks that both folders are set and exist as directories.
func (c Config) Validate() error {
	for _, f := range []struct{ name, path string }{
		{"watch_folder", c.WatchFolder},
		{"publish_folder", c.PublishFolder},
	} {
		if f.path == "" {
			return fmt.Errorf("%s is not configured", f.name)
		}
		info, err := os.Stat(f.path)
		if err != nil {
			return fmt.Errorf("%s %q: %w", f.name, f.path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s %q is not a directory", f.name, f.path)
		}
	}
	return nil
}
