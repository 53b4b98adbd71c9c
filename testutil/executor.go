package testutil

import (
	"sync"

	"github.com/grovetools/tablaunch/command"
)

// Outcome scripts what a FakeExecutor does for one binary name
type Outcome struct {
	// StartErr makes Start fail, as if the binary were missing.
	StartErr error
	// Status is returned by Poll; the zero value means still running.
	Status command.ExitStatus
	// PollErr makes Poll fail.
	PollErr error
}

// FakeExecutor records every Start call and answers from scripted outcomes.
// Binaries without an outcome start successfully and keep running.
type FakeExecutor struct {
	mu       sync.Mutex
	outcomes map[string]Outcome
	calls    []command.Spec
	nextPid  int
}

// NewFakeExecutor creates an executor with no scripted outcomes
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{outcomes: make(map[string]Outcome), nextPid: 1000}
}

// On scripts the outcome for a binary name
func (f *FakeExecutor) On(name string, o Outcome) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[name] = o
	return f
}

// Start implements command.Executor
func (f *FakeExecutor) Start(spec command.Spec) (command.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, spec)
	o := f.outcomes[spec.Name]
	if o.StartErr != nil {
		return nil, o.StartErr
	}
	f.nextPid++
	return &FakeProcess{pid: f.nextPid, status: o.Status, err: o.PollErr}, nil
}

// Calls returns a copy of the recorded specs in call order
func (f *FakeExecutor) Calls() []command.Spec {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]command.Spec(nil), f.calls...)
}

// Names returns the binary names started, in call order
func (f *FakeExecutor) Names() []string {
	calls := f.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// FakeProcess is a command.Process with a fixed poll result
type FakeProcess struct {
	pid    int
	status command.ExitStatus
	err    error
}

func (p *FakeProcess) Pid() int { return p.pid }

func (p *FakeProcess) Poll() (command.ExitStatus, error) {
	return p.status, p.err
}
