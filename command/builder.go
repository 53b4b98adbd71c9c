package command

import (
	"fmt"
	"strings"
)

const (
	// RemoteControlToken is inserted right after the executable when remote
	// control is requested.
	RemoteControlToken = "remote-control"

	// ShellName is the shell used for the fallback backend and for nested
	// pre-launch invocations.
	ShellName = "pwsh"

	// TerminalSubcommand opens a new tab in the terminal multiplexer.
	TerminalSubcommand = "new-tab"
)

// SafeBuilder validates arguments by type before they reach a command line
type SafeBuilder struct {
	validators map[string]func(string) error
	executor   Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		validators: makeDefaultValidators(),
		executor:   exec,
	}
}

// makeDefaultValidators returns the default set of validators, keyed by
// request field
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"executable": func(s string) error { return ValidatePath("Claude path", s) },
		"project":    func(s string) error { return ValidatePath("Project path", s) },
		"path":       func(s string) error { return ValidatePath("Path", s) },
		"profile":    ValidateProfile,
		"flag":       ValidateFlag,
	}
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Start spawns spec through the builder's executor. The child environment
// never contains MarkerEnvVar, whether inherited or supplied.
func (sb *SafeBuilder) Start(spec Spec) (Process, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}
	if spec.Env == nil {
		spec.Env = ChildEnv()
	} else {
		spec.Env = EnvWithout(spec.Env, MarkerEnvVar)
	}
	return sb.executor.Start(spec)
}

// QuoteSingle wraps s in single quotes, doubling any embedded single quote.
func QuoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// BuildShellCommand returns the single-line shell form used by the fallback
// backend, e.g. & 'C:\bin\claude.exe' 'remote-control' '--verbose'.
// A non-empty preLaunch is prepended verbatim, separated by "; ".
func BuildShellCommand(exe string, remoteControl bool, flags []string, preLaunch string) string {
	parts := make([]string, 0, len(flags)+3)
	parts = append(parts, "&", QuoteSingle(exe))
	if remoteControl {
		parts = append(parts, QuoteSingle(RemoteControlToken))
	}
	for _, flag := range flags {
		parts = append(parts, QuoteSingle(flag))
	}

	cmd := strings.Join(parts, " ")
	if preLaunch != "" {
		return preLaunch + "; " + cmd
	}
	return cmd
}

// TerminalArgs describes one tab for the terminal multiplexer.
type TerminalArgs struct {
	Profile       string
	Dir           string
	Executable    string
	RemoteControl bool
	Flags         []string
	PreLaunch     string
}

// BuildTerminalArgs returns the argument vector for the terminal multiplexer.
//
//	new-tab --profile <profile> -d <dir> -- <exe> [remote-control] <flags...>
//	new-tab --profile <profile> -d <dir> -- pwsh -NoExit -Command "<pre>; & '<exe>' ..."
//
// No element is shell-interpreted except the nested -Command string.
func BuildTerminalArgs(t TerminalArgs) []string {
	args := []string{
		TerminalSubcommand,
		"--profile", t.Profile,
		"-d", t.Dir,
		"--",
	}

	if t.PreLaunch != "" {
		return append(args,
			ShellName, "-NoExit", "-Command",
			BuildShellCommand(t.Executable, t.RemoteControl, t.Flags, t.PreLaunch),
		)
	}

	args = append(args, t.Executable)
	if t.RemoteControl {
		args = append(args, RemoteControlToken)
	}
	return append(args, t.Flags...)
}

// BuildShellArgs returns the arguments for launching the fallback shell
// directly in dir.
func BuildShellArgs(dir, shellCommand string) []string {
	return []string{"-NoExit", "-WorkingDirectory", dir, "-Command", shellCommand}
}

// Display renders name and args the way they are written to the log.
func Display(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
