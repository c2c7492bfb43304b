// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish stamps transformed workbooks and copies them into the
// synced destination folder.
package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/srwatch/pkg/types"
)

// StampedName returns the artifact name for a processing run at the given
// time: Processed_<YYYYMMDD_HHMMSS>.xlsx. Sortable, second resolution, so
// successive runs never collide.
func StampedName(now time.Time) string {
	return "Processed_" + now.Format(types.StampFormat) + ".xlsx"
}

// StampArtifact copies the transformed workbook to a stamped name alongside
// it and returns the stamped path.
func StampArtifact(src string, now time.Time) (string, error) {
	dst := filepath.Join(filepath.Dir(src), StampedName(now))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("stamping %s: %w", src, err)
	}
	return dst, nil
}

// Publish copies the artifact into destDir under its current name, creating
// destDir recursively if absent. A same-named destination file is
// overwritten; last write wins. File metadata (mode, mtime) is preserved.
func Publish(artifact, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, filepath.Base(artifact))
	if err := copyFile(artifact, dest); err != nil {
		return "", fmt.Errorf("publishing %s: %w", artifact, err)
	}
	return dest, nil
}

// copyFile copies src to dst, overwriting dst, and carries over the source's
// permission bits and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), info.ModTime())
}
