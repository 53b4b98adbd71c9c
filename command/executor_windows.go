//go:build windows

package command

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"unicode/utf16"
	"unsafe"

	"github.com/grovetools/tablaunch/pkg/syncutil"
	"golang.org/x/sys/windows"
)

const creationFlags = windows.CREATE_NEW_CONSOLE | windows.CREATE_UNICODE_ENVIRONMENT

// startDetached creates the child in a new console window. The child's
// standard handles must be that console's own, never NUL, which os/exec
// cannot express.
func startDetached(spec Spec) (Process, error) {
	app, err := exec.LookPath(spec.Name)
	if err != nil {
		return nil, err
	}

	appPtr, err := windows.UTF16PtrFromString(app)
	if err != nil {
		return nil, err
	}
	cmdLine, err := windows.UTF16PtrFromString(commandLine(app, spec.Args))
	if err != nil {
		return nil, err
	}

	var dirPtr *uint16
	if spec.Dir != "" {
		dir, err := filepath.Abs(spec.Dir)
		if err != nil {
			return nil, err
		}
		if dirPtr, err = windows.UTF16PtrFromString(dir); err != nil {
			return nil, err
		}
	}

	var pi windows.ProcessInformation
	err = windows.CreateProcess(appPtr, cmdLine, nil, nil, false, creationFlags,
		envBlock(spec.Env), dirPtr, startupInfo(), &pi)
	if err != nil {
		return nil, fmt.Errorf("create process %s: %w", app, err)
	}
	_ = windows.CloseHandle(pi.Thread)

	return &consoleProcess{handle: pi.Process, pid: int(pi.ProcessId)}, nil
}

// startupInfo leaves StdInput, StdOutput and StdError unset and does not
// set STARTF_USESTDHANDLES.
func startupInfo() *windows.StartupInfo {
	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	return si
}

func commandLine(app string, args []string) string {
	return windows.ComposeCommandLine(append([]string{app}, args...))
}

// envBlock encodes env as a double-NUL terminated UTF-16 block. A nil env
// inherits ours.
func envBlock(env []string) *uint16 {
	if env == nil {
		return nil
	}
	var block []uint16
	for _, kv := range env {
		block = append(block, utf16.Encode([]rune(kv))...)
		block = append(block, 0)
	}
	if len(env) == 0 {
		block = append(block, 0)
	}
	block = append(block, 0)
	return &block[0]
}

type consoleProcess struct {
	mu     syncutil.Mutex
	handle windows.Handle
	pid    int
	status *ExitStatus
}

func (p *consoleProcess) Pid() int {
	return p.pid
}

func (p *consoleProcess) Poll() (ExitStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != nil {
		return *p.status, nil
	}

	event, err := windows.WaitForSingleObject(p.handle, 0)
	if err != nil {
		return ExitStatus{}, err
	}
	if event != windows.WAIT_OBJECT_0 {
		return ExitStatus{}, nil
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return ExitStatus{}, err
	}
	p.status = &ExitStatus{Exited: true, Code: int(code)}
	_ = windows.CloseHandle(p.handle)
	return *p.status, nil
}
