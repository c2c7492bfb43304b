// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const logFileName = "srwatch.log"

// New builds a logger that writes human-readable lines to stderr and JSON
// lines to an append-only log file under appDir. If the log file cannot be
// opened the logger degrades to console-only. The returned file is nil in
// that case; the caller closes it on shutdown otherwise.
func New(appDir string) (zerolog.Logger, *os.File) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var w io.Writer = console
	var logFile *os.File

	if appDir != "" {
		path := filepath.Join(appDir, logFileName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logFile = f
			w = zerolog.MultiLevelWriter(console, f)
		}
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	if logFile == nil && appDir != "" {
		logger.Warn().Str("dir", appDir).Msg("could not open log file, logging to console only")
	}
	return logger, logFile
}
