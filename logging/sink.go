package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/tablaunch/errors"
	"github.com/grovetools/tablaunch/pkg/syncutil"
	"github.com/spf13/afero"
)

// Sink is the append-only destination of the diagnostic log. It owns the
// current log path and serializes every read or write of that path and
// every append to the file through one mutex.
//
// Write never fails: I/O errors are swallowed so logging cannot abort the
// operation being logged.
type Sink struct {
	mu   syncutil.Mutex
	fs   afero.Fs
	path string
	root string
}

// NewSink creates a sink writing to path. root is the application data
// directory that bounds SetPath, ReadLog and OpenLogFolder; an empty root
// disables confinement.
func NewSink(fs afero.Fs, root, path string) *Sink {
	return &Sink{fs: fs, root: root, path: path}
}

// Fs returns the filesystem the sink writes to.
func (s *Sink) Fs() afero.Fs {
	return s.fs
}

// Root returns the directory the log path is confined to.
func (s *Sink) Root() string {
	return s.root
}

// Path returns the current log file path.
func (s *Sink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SetPath moves the log to path. The new path must resolve inside Root.
func (s *Sink) SetPath(path string) error {
	if err := CheckConfined(path, s.root); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	return nil
}

// ConfinedPath returns the current path after verifying it still resolves
// inside Root.
func (s *Sink) ConfinedPath() (string, error) {
	path := s.Path()
	if err := CheckConfined(path, s.root); err != nil {
		return "", err
	}
	return path, nil
}

// Write appends p to the current log file, creating the file and its
// parent directory when missing.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return len(p), nil
	}

	_ = s.fs.MkdirAll(filepath.Dir(s.path), 0755)
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return len(p), nil
	}
	_, _ = f.Write(p)
	_ = f.Close()
	return len(p), nil
}

// CheckConfined returns a CONFINEMENT_VIOLATION error unless path resolves
// to root or a location below it. Symlinks are resolved for the longest
// existing prefix of each path.
func CheckConfined(path, root string) error {
	if root == "" {
		return nil
	}

	resolvedPath := resolvePath(path)
	resolvedRoot := resolvePath(root)
	rel, err := filepath.Rel(resolvedRoot, resolvedPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.Confinement(path, root)
	}
	return nil
}

func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	var rest []string
	dir := abs
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
		dir = parent
	}
}
