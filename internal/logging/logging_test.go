package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
		log.SetPrefix("")
	})
}

func TestSetupWritesToFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "logs", "desk.log")
	c, err := Setup(path)
	require.NoError(t, err)
	log.Printf("[test] hello")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[test] hello")
}

func TestSetupEmptyPathDiscards(t *testing.T) {
	restore(t)
	c, err := Setup("")
	require.NoError(t, err)
	require.Equal(t, io.Discard, log.Writer())
	require.NoError(t, c.Close())
}
