//go:build !windows

package command

import (
	"errors"
	"os/exec"
	"syscall"
)

// startDetached puts the child in its own process group so a Ctrl-C aimed
// at the launcher does not reach the new tab.
func startDetached(spec Spec) (Process, error) {
	cmd := exec.Command(spec.Name, spec.Args...) //nolint:gosec // arguments are validated before they get here
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &realProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

type realProcess struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func (p *realProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *realProcess) Poll() (ExitStatus, error) {
	select {
	case <-p.done:
	default:
		return ExitStatus{}, nil
	}

	if p.waitErr == nil {
		return ExitStatus{Exited: true, Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(p.waitErr, &exitErr) {
		return ExitStatus{Exited: true, Code: exitErr.ExitCode()}, nil
	}
	return ExitStatus{}, p.waitErr
}
