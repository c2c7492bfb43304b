// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"os/exec"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"
)

// Session is an automation surface capable of converting legacy workbooks
// into the target format. Implementations hold no state between conversions;
// every Convert call is a complete open/save/release cycle.
type Session interface {
	// Name returns the automation binary name.
	Name() string

	// Available reports whether the automation surface is reachable on
	// this host.
	Available() bool

	// Convert opens the workbook at srcPath and saves a copy in the target
	// format into outDir under the same base name.
	Convert(srcPath, outDir string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// session drives a LibreOffice-compatible binary in headless mode. soffice
// and libreoffice share the same CLI; they differ only in binary name.
type session struct {
	bin  string
	exec executor
}

func (s *session) Name() string { return s.bin }

func (s *session) Available() bool {
	if _, err := s.exec.LookPath(s.bin); err != nil {
		return false
	}
	return s.exec.RunSilent(s.bin, "--version") == nil
}

func (s *session) Convert(srcPath, outDir string) error {
	args := []string{"--headless", "--convert-to", "xlsx", "--outdir", outDir, srcPath}
	if err := s.exec.RunSilent(s.bin, args...); err != nil {
		return fmt.Errorf("running %s on %s: %w", s.bin, srcPath, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// DetectSession tries soffice first, falls back to libreoffice. Returns an
// error if neither binary is available.
func DetectSession() (Session, error) {
	return detectSession(defaultExec)
}

func detectSession(ex executor) (Session, error) {
	for _, bin := range []string{binSoffice, binLibreOffice} {
		s := &session{bin: bin, exec: ex}
		if s.Available() {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no spreadsheet automation found (tried %s, %s): %w",
		binSoffice, binLibreOffice, ErrAutomationUnavailable)
}
