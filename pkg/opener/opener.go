// Package opener shows a directory in the platform file browser.
package opener

import (
	"context"
	"runtime"

	"github.com/grovetools/tablaunch/command"
	"github.com/grovetools/tablaunch/errors"
)

// Starter spawns a process without waiting for it. Both
// *command.SafeBuilder and command.Executor satisfy it.
type Starter interface {
	Start(spec command.Spec) (command.Process, error)
}

// Opener starts the platform's file browser on a directory.
type Opener struct {
	starter Starter
	goos    string
}

// New creates an Opener for the running platform.
func New(starter Starter) *Opener {
	return NewForOS(starter, runtime.GOOS)
}

// NewForOS creates an Opener that behaves as on goos.
func NewForOS(starter Starter, goos string) *Opener {
	return &Opener{starter: starter, goos: goos}
}

// ProgramFor returns the file browser command for goos.
func ProgramFor(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// Program returns the command this Opener runs.
func (o *Opener) Program() string {
	return ProgramFor(o.goos)
}

// Open starts the file browser on dir and returns once it has been
// spawned. The browser's exit status is not observed: explorer exits
// non-zero even on success.
func (o *Opener) Open(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return errors.OpenFailed(dir, err)
	}
	if err := command.ValidatePath("Path", dir); err != nil {
		return err
	}

	spec := command.Spec{Name: o.Program(), Args: []string{dir}}
	if _, err := o.starter.Start(spec); err != nil {
		return errors.OpenFailed(dir, err)
	}
	return nil
}
