package command

import (
	"os"
	"runtime"
	"strings"
)

// MarkerEnvVar is stripped from every child environment so the launched
// program does not believe it is running nested inside itself.
const MarkerEnvVar = "CLAUDECODE"

// Spec describes a process to start.
type Spec struct {
	Name string
	Args []string
	// Dir is the child's working directory; empty inherits ours.
	Dir string
	// Env is the full child environment; nil inherits ours.
	Env []string
}

// ExitStatus is a non-blocking snapshot of a child's state.
type ExitStatus struct {
	Exited bool
	Code   int
}

// Success reports whether the child is still running or exited cleanly.
func (s ExitStatus) Success() bool {
	return !s.Exited || s.Code == 0
}

// Process is a started child that can be polled without blocking.
type Process interface {
	Pid() int
	// Poll returns the child's current state. An error means the state
	// could not be determined.
	Poll() (ExitStatus, error)
}

// Executor starts processes. This abstraction allows for dependency
// injection, enabling tests to record spawned commands and script their
// outcomes without creating real processes.
type Executor interface {
	// Start creates the process and returns without waiting for it. The
	// child is not tied to any context and outlives the caller.
	Start(spec Spec) (Process, error)
}

// RealExecutor is the production implementation of the Executor interface,
// which uses the standard os/exec package to create processes.
type RealExecutor struct{}

// Start creates the process described by spec in its own process group or
// console.
func (e *RealExecutor) Start(spec Spec) (Process, error) {
	return startDetached(spec)
}

// ChildEnv returns the current environment without MarkerEnvVar.
func ChildEnv() []string {
	return EnvWithout(os.Environ(), MarkerEnvVar)
}

// EnvWithout returns a copy of environ with every entry for key removed.
// Keys compare case-insensitively on Windows.
func EnvWithout(environ []string, key string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if name == key || (runtime.GOOS == "windows" && strings.EqualFold(name, key)) {
			continue
		}
		out = append(out, kv)
	}
	return out
}
