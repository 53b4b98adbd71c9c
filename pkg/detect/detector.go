// Package detect guesses where the launched program is installed.
package detect

import (
	"path/filepath"

	"github.com/grovetools/tablaunch/pkg/paths"
	"github.com/spf13/afero"
)

// DefaultProgram is returned when no candidate exists, leaving resolution
// to the search path at spawn time.
const DefaultProgram = "claude"

// Detector probes a fixed, ordered list of install locations.
type Detector struct {
	fs   afero.Fs
	home func() string
}

// New creates a Detector over fs using the current user's home directory.
func New(fs afero.Fs) *Detector {
	return &Detector{fs: fs, home: paths.HomeDir}
}

// NewWithHome creates a Detector with a fixed home directory.
func NewWithHome(fs afero.Fs, home string) *Detector {
	return &Detector{fs: fs, home: func() string { return home }}
}

// Candidates returns the probed locations in priority order.
func (d *Detector) Candidates() []string {
	home := d.home()
	if home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "bin", "claude.exe"),
		filepath.Join(home, ".local", "bin", "claude"),
		filepath.Join(home, "AppData", "Local", "Programs", "claude", "claude.exe"),
	}
}

// Detect returns the first existing candidate, or DefaultProgram.
func (d *Detector) Detect() string {
	for _, candidate := range d.Candidates() {
		if ok, _ := afero.Exists(d.fs, candidate); ok {
			return candidate
		}
	}
	return DefaultProgram
}
