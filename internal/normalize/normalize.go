// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts legacy .xls workbooks to .xlsx through an
// external automation surface. Files already in the target format pass
// through untouched.
package normalize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TargetExt is the extension of the format the transformer understands.
const TargetExt = ".xlsx"

// ErrAutomationUnavailable means no conversion capability is present on the
// host. Fatal for the file being processed, not retried.
var ErrAutomationUnavailable = errors.New("spreadsheet automation unavailable")

// ErrUnsupportedFormat means the file is still not in the target format
// after normalization.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Normalizer converts candidate files into the target format. The automation
// surface supports one in-flight conversion process-wide, so Normalize
// serializes across files.
type Normalizer struct {
	session Session

	mu sync.Mutex
}

// New returns a Normalizer backed by the given automation session. A nil
// session is allowed; Normalize then fails with ErrAutomationUnavailable for
// any file that actually needs conversion.
func New(s Session) *Normalizer {
	return &Normalizer{session: s}
}

// Normalize returns the path of a workbook in the target format. Inputs
// already carrying the target extension are returned unchanged. Anything
// else is converted next to the source file, keeping the base name.
func (n *Normalizer) Normalize(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), TargetExt) {
		return path, nil
	}

	if n.session == nil {
		return "", fmt.Errorf("converting %s: %w", path, ErrAutomationUnavailable)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	outDir := filepath.Dir(path)
	if err := n.session.Convert(path, outDir); err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	converted := filepath.Join(outDir, base+TargetExt)
	if _, err := os.Stat(converted); err != nil {
		return "", fmt.Errorf("conversion of %s produced no %s output: %w", path, TargetExt, ErrUnsupportedFormat)
	}
	return converted, nil
}
