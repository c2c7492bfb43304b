// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Loop consumes filesystem events for one directory and feeds matching
// paths through the pipeline. Events are processed synchronously in arrival
// order, so at most one pipeline run is in flight per loop.
type Loop struct {
	dir      string
	pipeline *Pipeline
	log      zerolog.Logger
}

// NewLoop builds a watch loop over dir.
func NewLoop(dir string, p *Pipeline, log zerolog.Logger) *Loop {
	return &Loop{dir: dir, pipeline: p, log: log}
}

// Run watches the directory non-recursively for create and write events
// until ctx is cancelled. Per-file failures never stop the loop; the only
// exit paths are cancellation and a broken watcher.
func (l *Loop) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("watching %s: %w", l.dir, err)
	}
	l.log.Info().Str("dir", l.dir).Msg("watcher active")

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("stopping watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !l.pipeline.Matches(ev.Name) {
				continue
			}
			l.pipeline.Handle(ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			l.log.Error().Err(err).Msg("watcher error")
		}
	}
}
