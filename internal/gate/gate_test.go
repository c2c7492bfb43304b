// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newGate() *Gate {
	return &Gate{
		Pattern:      "ETSA-TSA-*.xls",
		MaxAge:       12 * time.Hour,
		Stability:    30 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	}
}

func writeCandidate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMatches(t *testing.T) {
	g := newGate()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"matching report", "/downloads/ETSA-TSA-0042.xls", true},
		{"wrong prefix", "/downloads/OTHER-0042.xls", false},
		{"wrong extension", "/downloads/ETSA-TSA-0042.xlsx", false},
		{"pattern applies to base name only", "/ETSA-TSA-dir/evil.xls", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheck_EligibleFile(t *testing.T) {
	g := newGate()
	path := writeCandidate(t, t.TempDir(), "ETSA-TSA-0042.xls", "report data")

	if err := g.Check(path); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}
}

func TestCheck_StaleFile(t *testing.T) {
	g := newGate()
	path := writeCandidate(t, t.TempDir(), "ETSA-TSA-0042.xls", "report data")

	old := time.Now().Add(-13 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	if err := g.Check(path); !errors.Is(err, ErrStale) {
		t.Errorf("Check = %v, want ErrStale", err)
	}
}

func TestCheck_NameMismatch(t *testing.T) {
	g := newGate()
	path := writeCandidate(t, t.TempDir(), "notes.txt", "hello")

	if err := g.Check(path); !errors.Is(err, ErrNotCandidate) {
		t.Errorf("Check = %v, want ErrNotCandidate", err)
	}
}

func TestCheck_DirectoryRejected(t *testing.T) {
	g := newGate()
	dir := filepath.Join(t.TempDir(), "ETSA-TSA-0042.xls")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := g.Check(dir); !errors.Is(err, ErrNotCandidate) {
		t.Errorf("Check = %v, want ErrNotCandidate", err)
	}
}

func TestCheck_MissingFile(t *testing.T) {
	g := newGate()
	path := filepath.Join(t.TempDir(), "ETSA-TSA-0042.xls")

	if err := g.Check(path); !errors.Is(err, ErrUnstable) {
		t.Errorf("Check = %v, want ErrUnstable", err)
	}
}

func TestCheck_EmptyFileNeverStabilizes(t *testing.T) {
	g := newGate()
	path := writeCandidate(t, t.TempDir(), "ETSA-TSA-0042.xls", "")

	if err := g.Check(path); !errors.Is(err, ErrUnstable) {
		t.Errorf("Check = %v, want ErrUnstable for empty file", err)
	}
}

func TestCheck_GrowingFileRejected(t *testing.T) {
	g := newGate()
	path := writeCandidate(t, t.TempDir(), "ETSA-TSA-0042.xls", "x")

	// Keep appending faster than the stability window can close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 30; i++ {
			f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return
			}
			f.WriteString("more data")
			f.Close()
			time.Sleep(5 * time.Millisecond)
		}
	}()

	err := g.Check(path)
	<-done
	if !errors.Is(err, ErrUnstable) {
		t.Errorf("Check = %v, want ErrUnstable for growing file", err)
	}
}

func TestCheck_FileVanishesMidPoll(t *testing.T) {
	g := newGate()
	g.Stability = 100 * time.Millisecond
	dir := t.TempDir()
	path := writeCandidate(t, dir, "ETSA-TSA-0042.xls", "report data")

	go func() {
		time.Sleep(30 * time.Millisecond)
		os.Remove(path)
	}()

	if err := g.Check(path); !errors.Is(err, ErrUnstable) {
		t.Errorf("Check = %v, want ErrUnstable after file vanished", err)
	}
}
