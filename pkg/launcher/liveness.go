package launcher

import (
	"context"
	"time"

	"github.com/grovetools/tablaunch/command"
	"github.com/jonboulle/clockwork"
)

// LivenessDelay is how long a freshly spawned backend must survive before
// its launch counts as successful. It only catches backends that fail
// near-instantly (bad profile, no window could be created); a child that
// dies later is not detected and never killed.
const LivenessDelay = 500 * time.Millisecond

// Liveness is the outcome of a delayed, non-blocking poll.
type Liveness int

const (
	// LivenessAlive means the child is running or exited cleanly.
	LivenessAlive Liveness = iota
	// LivenessExitedFailure means the child already exited with a failure status.
	LivenessExitedFailure
	// LivenessPollError means the state could not be determined.
	LivenessPollError
)

func (l Liveness) String() string {
	switch l {
	case LivenessAlive:
		return "alive"
	case LivenessExitedFailure:
		return "exited-failure"
	default:
		return "poll-error"
	}
}

// Probe waits LivenessDelay on clock, then polls proc once. A cancelled
// context ends the wait early and reports LivenessPollError.
func Probe(ctx context.Context, clock clockwork.Clock, proc command.Process) (Liveness, command.ExitStatus, error) {
	select {
	case <-clock.After(LivenessDelay):
	case <-ctx.Done():
		return LivenessPollError, command.ExitStatus{}, ctx.Err()
	}

	status, err := proc.Poll()
	switch {
	case err != nil:
		return LivenessPollError, status, err
	case !status.Success():
		return LivenessExitedFailure, status, nil
	default:
		return LivenessAlive, status, nil
	}
}
