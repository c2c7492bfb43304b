// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gate decides whether a detected file is ready for processing.
// A candidate passes when its name matches the configured glob, its mtime is
// recent enough, and its size has stopped changing.
package gate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrStale marks a file older than the freshness threshold. Skipped, not an
// error condition.
var ErrStale = errors.New("file older than freshness threshold")

// ErrUnstable marks a file whose size kept changing through the stability
// window, or which disappeared while being polled.
var ErrUnstable = errors.New("file size not stable")

// ErrNotCandidate marks a path that is a directory or whose name does not
// match the configured pattern.
var ErrNotCandidate = errors.New("not a candidate file")

// Gate holds the readiness rules for one run.
type Gate struct {
	// Pattern is the glob a candidate's base name must match.
	Pattern string

	// MaxAge is the freshness threshold on the file's mtime.
	MaxAge time.Duration

	// Stability is how long the file's size must remain constant and
	// non-zero before the file counts as fully written.
	Stability time.Duration

	// PollInterval is the size sampling interval. Zero means one second.
	PollInterval time.Duration

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

// Matches reports whether the base name of path matches the gate's pattern.
// A malformed pattern matches nothing.
func (g *Gate) Matches(path string) bool {
	ok, err := doublestar.Match(g.Pattern, filepath.Base(path))
	return err == nil && ok
}

// Check blocks until the file at path is known to be eligible or not.
// It returns nil for an eligible file, ErrNotCandidate, ErrStale, or
// ErrUnstable otherwise. The stability poll intentionally stalls the caller
// for up to the stability window; the watch loop relies on this to avoid
// picking up half-written uploads.
func (g *Gate) Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnstable, err)
	}
	if info.IsDir() {
		return ErrNotCandidate
	}
	if !g.Matches(path) {
		return ErrNotCandidate
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	if now().Sub(info.ModTime()) > g.MaxAge {
		return fmt.Errorf("%w: modified %s", ErrStale, info.ModTime().Format(time.RFC3339))
	}

	if !g.stable(path) {
		return ErrUnstable
	}
	return nil
}

// stable polls the file size once per interval and reports whether it stayed
// constant and non-zero for the whole stability window.
func (g *Gate) stable(path string) bool {
	interval := g.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	needed := int(g.Stability / interval)
	if needed < 1 {
		needed = 1
	}
	// A size change resets the consecutive-sample counter, so a file that is
	// still being written could hold the poll forever. Give up after three
	// full windows; a later write event re-triggers the pipeline.
	budget := needed * 3

	var last int64 = -1
	same := 0
	for sampled := 0; same < needed; sampled++ {
		if sampled >= budget {
			return false
		}
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		size := info.Size()
		if size == last && size > 0 {
			same++
		} else {
			same = 0
			last = size
		}
		time.Sleep(interval)
	}
	return true
}
