package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/tablaunch/errors"
	"github.com/grovetools/tablaunch/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, fs afero.Fs, path string, n int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(b.String()), 0644))
}

func TestReadTailMissingFile(t *testing.T) {
	got, err := ReadTail(afero.NewMemMapFs(), "/logs/tablaunch.log", 10)
	require.NoError(t, err)
	assert.Equal(t, NoEntriesMessage, got)
}

func TestReadTail(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/logs/tablaunch.log"
	writeLines(t, fs, path, 5)

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"last two", 2, "line 4\nline 5"},
		{"exactly all", 5, "line 1\nline 2\nline 3\nline 4\nline 5"},
		{"more than available", 50, "line 1\nline 2\nline 3\nline 4\nline 5"},
		{"one", 1, "line 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTail(fs, path, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadTailDefaultCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/logs/tablaunch.log"
	writeLines(t, fs, path, 150)

	got, err := ReadTail(fs, path, 0)
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, DefaultTailLines)
	assert.Equal(t, "line 51", lines[0])
	assert.Equal(t, "line 150", lines[len(lines)-1])
}

func TestReadTailCRLF(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/x.log", []byte("a\r\nb\r\n"), 0644))

	got, err := ReadTail(fs, "/x.log", 10)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestReadTailOtherErrors(t *testing.T) {
	dir := t.TempDir()

	// Reading a directory is an error that is not "not found".
	_, err := ReadTail(afero.NewOsFs(), dir, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeLogReadFailed))
}

func TestFollow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tablaunch.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &testutil.SafeBuffer{}
	done := make(chan error, 1)
	go func() { done <- Follow(ctx, path, out) }()

	sink := NewSink(afero.NewOsFs(), dir, path)
	require.Eventually(t, func() bool {
		_, _ = sink.Write([]byte("new line\n"))
		return strings.Contains(out.String(), "new line")
	}, 10*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
	assert.NotContains(t, out.String(), "old line")
}
