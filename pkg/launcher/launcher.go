// Package launcher opens a program in a new terminal tab, trying an ordered
// list of backends and falling back when one is missing or dies at once.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/grovetools/tablaunch/command"
	"github.com/grovetools/tablaunch/errors"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Launcher drives the launch state machine. It is safe for concurrent use;
// each Launch call is independent.
type Launcher struct {
	builder  *command.SafeBuilder
	backends []Backend
	fs       afero.Fs
	clock    clockwork.Clock
	lookPath func(string) (string, error)
	log      *logrus.Entry
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithBackends replaces the default backend order.
func WithBackends(backends ...Backend) Option {
	return func(l *Launcher) { l.backends = backends }
}

// WithClock sets the clock used for the liveness delay.
func WithClock(clock clockwork.Clock) Option {
	return func(l *Launcher) { l.clock = clock }
}

// WithFs sets the filesystem used for existence checks.
func WithFs(fs afero.Fs) Option {
	return func(l *Launcher) { l.fs = fs }
}

// WithLookPath sets how bare program names are resolved.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(l *Launcher) { l.lookPath = fn }
}

// New creates a Launcher that spawns through builder and logs to log.
func New(builder *command.SafeBuilder, log *logrus.Entry, opts ...Option) *Launcher {
	backends, _ := BackendsByName(DefaultBackendNames)
	l := &Launcher{
		builder:  builder,
		backends: backends,
		fs:       afero.NewOsFs(),
		clock:    clockwork.NewRealClock(),
		lookPath: exec.LookPath,
		log:      log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Validate checks req in a fixed order and stops at the first failure:
// executable path, project path, terminal profile, each flag, project
// directory existence, executable existence.
func (l *Launcher) Validate(req Request) error {
	checks := []struct{ kind, value string }{
		{"executable", req.ExecutablePath},
		{"project", req.ProjectPath},
		{"profile", req.TerminalProfile},
	}
	for _, flag := range req.Flags {
		checks = append(checks, struct{ kind, value string }{"flag", flag})
	}
	for _, c := range checks {
		if err := l.builder.Validate(c.kind, c.value); err != nil {
			return err
		}
	}

	if ok, _ := afero.Exists(l.fs, req.ProjectPath); !ok {
		return errors.PathNotFound("project", fmt.Sprintf("Project directory does not exist: %s", req.ProjectPath), req.ProjectPath)
	}
	if !l.executableExists(req.ExecutablePath) {
		return errors.PathNotFound("executable", fmt.Sprintf("Claude executable not found: %s", req.ExecutablePath), req.ExecutablePath)
	}
	return nil
}

// executableExists accepts an existing path, or a bare name found on the
// search path.
func (l *Launcher) executableExists(exe string) bool {
	if exe == "" {
		return false
	}
	if ok, _ := afero.Exists(l.fs, exe); ok {
		return true
	}
	if !strings.ContainsAny(exe, `/\`) {
		_, err := l.lookPath(exe)
		return err == nil
	}
	return false
}

// Launch validates req and opens it with the first backend that works.
// It never returns an error: every failure is described by the Result.
func (l *Launcher) Launch(ctx context.Context, req Request) Result {
	l.log.Infof("Launch requested for: %s", req.ProjectPath)

	if err := l.Validate(req); err != nil {
		msg := errors.Message(err)
		l.log.Error(msg)
		l.transition(StateFailed)
		return failed("", msg)
	}

	if len(l.backends) == 0 {
		msg := "no launch backends configured"
		l.log.Error(msg)
		l.transition(StateFailed)
		return failed("", msg)
	}

	for i, backend := range l.backends {
		last := i == len(l.backends)-1
		if i == 0 {
			l.transition(StateAttemptPrimary)
		} else {
			l.log.Infof("Falling back to %s direct launch", backend.Name())
			l.transition(StateAttemptFallback)
		}

		spec, display := backend.Invocation(req)
		if i == 0 {
			l.log.Infof("Executing: %s", display)
		} else {
			l.log.Infof("Executing fallback: %s", display)
		}

		proc, err := l.builder.Start(spec)
		if err != nil {
			if last {
				msg := errors.SpawnFailed(backend.Name(), err).Message
				if i > 0 {
					msg = fmt.Sprintf("%s fallback also failed: %v", backend.Name(), err)
				}
				l.log.Error(msg)
				l.transition(StateFailed)
				return failed(display, msg)
			}
			l.log.Warn(errors.SpawnFailed(backend.Name(), err).Message)
			continue
		}

		if !backend.CheckLiveness() {
			return l.succeed(backend, i, display)
		}

		l.transition(StateLivenessCheck)
		liveness, status, err := Probe(ctx, l.clock, proc)
		switch liveness {
		case LivenessExitedFailure:
			msg := errors.EarlyExit(backend.Name(), status.Code).Message
			l.log.Warn(msg)
			if last {
				l.transition(StateFailed)
				return failed(display, msg)
			}
			continue
		case LivenessPollError:
			l.log.Warnf("Error checking %s status: %v", backend.Name(), err)
			return l.succeed(backend, i, display)
		default:
			return l.succeed(backend, i, display)
		}
	}

	// Unreachable: the last backend always returns above.
	l.transition(StateFailed)
	return failed("", "no launch backend succeeded")
}

func (l *Launcher) succeed(backend Backend, index int, display string) Result {
	if index == 0 {
		l.log.Infof("Launch successful via %s", backend.Name())
	} else {
		l.log.Infof("Launch successful via %s fallback", backend.Name())
	}
	l.transition(StateSucceeded)
	return succeeded(display)
}

func (l *Launcher) transition(to State) {
	l.log.WithField("state", to).Debug("launch state")
}
