package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/tablaunch/errors"
	"github.com/hpcloud/tail"
	"github.com/spf13/afero"
)

const (
	// DefaultTailLines is used when a caller asks for zero or fewer lines.
	DefaultTailLines = 100

	// NoEntriesMessage is returned instead of an error when the log file
	// does not exist yet.
	NoEntriesMessage = "No log entries yet."
)

// ReadTail returns the last n lines of the log at path joined by "\n", in
// file order. A missing file yields NoEntriesMessage; any other read error
// is returned as LOG_READ_FAILED.
func ReadTail(fs afero.Fs, path string, n int) (string, error) {
	if n <= 0 {
		n = DefaultTailLines
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return NoEntriesMessage, nil
		}
		return "", errors.LogReadFailed(path, err)
	}

	lines := splitLines(string(data))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n"), nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Follow prints lines appended to the log at path until ctx is cancelled.
// It starts at the current end of the file and survives the file being
// created later.
func Follow(ctx context.Context, path string, w io.Writer) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return errors.LogReadFailed(path, err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return errors.LogReadFailed(path, line.Err)
			}
			if _, err := fmt.Fprintln(w, line.Text); err != nil {
				_ = t.Stop()
				return err
			}
		}
	}
}
