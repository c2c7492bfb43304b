// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package setup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Provider supplies the two folder choices of first-run setup. The core
// never depends on a specific UI; anything that can answer these two
// questions works.
type Provider interface {
	// PickPublishFolder returns the synced destination folder. The folder
	// must already be synced locally; publishing only copies into it.
	PickPublishFolder() (string, error)

	// PickWatchFolder returns the folder to observe, given the default.
	// Returning the default unchanged is valid.
	PickWatchFolder(defaultDir string) (string, error)
}

// TerminalProvider prompts on a reader/writer pair, normally stdin/stdout.
type TerminalProvider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalProvider builds a provider reading answers from in and writing
// prompts to out.
func NewTerminalProvider(in io.Reader, out io.Writer) *TerminalProvider {
	return &TerminalProvider{in: bufio.NewReader(in), out: out}
}

func (t *TerminalProvider) PickPublishFolder() (string, error) {
	fmt.Fprintln(t.out, "Select your locally-synced publish folder.")
	fmt.Fprintln(t.out, "Important: the destination library must already be synced to this")
	fmt.Fprintln(t.out, "machine; srwatch only copies files into it and leaves uploading to")
	fmt.Fprintln(t.out, "the sync client.")
	return t.readLine("Publish folder path: ")
}

func (t *TerminalProvider) PickWatchFolder(defaultDir string) (string, error) {
	fmt.Fprintf(t.out, "Default watch folder is %s\n", defaultDir)
	answer, err := t.readLine("Watch a different folder? Leave empty to keep the default: ")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultDir, nil
	}
	return answer, nil
}

func (t *TerminalProvider) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
