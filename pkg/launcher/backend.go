package launcher

import (
	"fmt"
	"sort"

	"github.com/grovetools/tablaunch/command"
)

// Backend is one strategy for opening the program in a terminal. The
// launcher tries backends in order until one succeeds.
type Backend interface {
	Name() string
	// Invocation returns the process to start and the command line written
	// to the log and the result.
	Invocation(req Request) (spec command.Spec, display string)
	// CheckLiveness reports whether a successful spawn must survive the
	// liveness delay before it counts as a success.
	CheckLiveness() bool
}

// TerminalBackend opens a tab through Windows Terminal with a discrete
// argument vector. No shell interprets the program's arguments.
type TerminalBackend struct {
	Binary string
}

func (b TerminalBackend) Name() string { return b.Binary }

func (b TerminalBackend) Invocation(req Request) (command.Spec, string) {
	args := command.BuildTerminalArgs(command.TerminalArgs{
		Profile:       req.TerminalProfile,
		Dir:           req.ProjectPath,
		Executable:    req.ExecutablePath,
		RemoteControl: req.RemoteControl,
		Flags:         req.Flags,
		PreLaunch:     req.PreLaunchCommand,
	})
	return command.Spec{Name: b.Binary, Args: args}, command.Display(b.Binary, args)
}

func (b TerminalBackend) CheckLiveness() bool { return true }

// TmuxBackend opens a window in the current tmux server. The terminal
// profile names the window.
type TmuxBackend struct {
	Binary string
}

func (b TmuxBackend) Name() string { return b.Binary }

func (b TmuxBackend) Invocation(req Request) (command.Spec, string) {
	args := []string{"new-window", "-c", req.ProjectPath, "-n", req.TerminalProfile, "--"}
	if req.PreLaunchCommand != "" {
		args = append(args, command.ShellName, "-NoExit", "-Command",
			command.BuildShellCommand(req.ExecutablePath, req.RemoteControl, req.Flags, req.PreLaunchCommand))
	} else {
		args = append(args, req.ExecutablePath)
		if req.RemoteControl {
			args = append(args, command.RemoteControlToken)
		}
		args = append(args, req.Flags...)
	}
	return command.Spec{Name: b.Binary, Args: args}, command.Display(b.Binary, args)
}

// CheckLiveness is true: tmux exits non-zero at once when no server runs.
func (b TmuxBackend) CheckLiveness() bool { return true }

// ShellBackend starts the shell directly with the single-line command. It
// is the last resort, so its spawn result is final.
type ShellBackend struct {
	Binary string
}

func (b ShellBackend) Name() string { return b.Binary }

func (b ShellBackend) Invocation(req Request) (command.Spec, string) {
	shellCmd := command.BuildShellCommand(req.ExecutablePath, req.RemoteControl, req.Flags, req.PreLaunchCommand)
	display := fmt.Sprintf("%s -NoExit -WorkingDirectory \"%s\" -Command \"%s\"", b.Binary, req.ProjectPath, shellCmd)
	return command.Spec{Name: b.Binary, Args: command.BuildShellArgs(req.ProjectPath, shellCmd)}, display
}

func (b ShellBackend) CheckLiveness() bool { return false }

var registry = map[string]func() Backend{
	"wt":   func() Backend { return TerminalBackend{Binary: "wt"} },
	"tmux": func() Backend { return TmuxBackend{Binary: "tmux"} },
	"pwsh": func() Backend { return ShellBackend{Binary: command.ShellName} },
}

// DefaultBackendNames is the order used when none is configured.
var DefaultBackendNames = []string{"wt", "pwsh"}

// BackendNames lists every known backend name.
func BackendNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BackendsByName resolves names into backends, preserving order.
func BackendsByName(names []string) ([]Backend, error) {
	if len(names) == 0 {
		names = DefaultBackendNames
	}
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		mk, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown backend %q (known: %v)", name, BackendNames())
		}
		backends = append(backends, mk())
	}
	return backends, nil
}
