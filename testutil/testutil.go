package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// RequireDir creates dir (and parents) and returns it
func RequireDir(t *testing.T, dir string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
	return dir
}

// RequireFile creates an empty file, including its parent directory
func RequireFile(t *testing.T, path string) string {
	t.Helper()

	RequireDir(t, filepath.Dir(path))
	err := os.WriteFile(path, nil, 0755)
	require.NoError(t, err, "failed to create file %s", path)
	return path
}

// TempHome points HOME and USERPROFILE at a fresh temporary directory for
// the duration of the test
func TempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

// SafeBuffer is a bytes.Buffer safe for concurrent writers
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewLogger returns a logrus entry writing plain text into a SafeBuffer
func NewLogger() (*logrus.Entry, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return logger.WithField("component", "test"), buf
}
