// Package logging routes the standard logger away from the terminal, which
// belongs to the UI while it runs.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup sends log output to path, or discards it when path is empty. The
// returned closer flushes the file.
func Setup(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "vehicledesk")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
