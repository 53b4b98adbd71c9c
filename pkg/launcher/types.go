package launcher

import "fmt"

// Request describes one launch. It is treated as immutable for the
// duration of the launch.
type Request struct {
	// ExecutablePath is an absolute path or a bare program name.
	ExecutablePath string `json:"executablePath"`
	// ProjectPath becomes the new tab's working directory.
	ProjectPath string `json:"projectPath"`
	// TerminalProfile is the terminal profile to open.
	TerminalProfile string `json:"terminalProfile"`
	// Flags are appended after the executable, in order.
	Flags []string `json:"flags"`
	// RemoteControl inserts the remote-control subcommand after the executable.
	RemoteControl bool `json:"remoteControl"`
	// PreLaunchCommand runs in the same shell before the program. It is
	// passed through verbatim and is NOT checked for shell metacharacters:
	// whoever configures it is trusted to write shell code.
	PreLaunchCommand string `json:"preLaunchCommand,omitempty"`
}

// Result is the outcome of one launch. Error is set iff Success is false.
type Result struct {
	Success bool   `json:"success"`
	Command string `json:"command"`
	Error   string `json:"error,omitempty"`
}

func succeeded(command string) Result {
	return Result{Success: true, Command: command}
}

func failed(command, msg string) Result {
	return Result{Command: command, Error: msg}
}

// State is a step of the launch state machine.
type State int

const (
	StateIdle State = iota
	StateAttemptPrimary
	StateLivenessCheck
	StateAttemptFallback
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAttemptPrimary:
		return "AttemptPrimary"
	case StateLivenessCheck:
		return "LivenessCheck"
	case StateAttemptFallback:
		return "AttemptFallback"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition leaves s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}
