//go:build windows

package command

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func waitExit(t *testing.T, p Process) ExitStatus {
	t.Helper()

	require.Eventually(t, func() bool {
		st, err := p.Poll()
		return err == nil && st.Exited
	}, 10*time.Second, 20*time.Millisecond)

	st, err := p.Poll()
	require.NoError(t, err)
	return st
}

func TestStartupInfoKeepsConsoleHandles(t *testing.T) {
	si := startupInfo()

	assert.Equal(t, uint32(unsafe.Sizeof(*si)), si.Cb)
	assert.Zero(t, si.Flags&windows.STARTF_USESTDHANDLES)
	assert.Zero(t, si.StdInput)
	assert.Zero(t, si.StdOutput)
	assert.Zero(t, si.StdErr)
	assert.NotZero(t, creationFlags&windows.CREATE_NEW_CONSOLE)
}

func TestEnvBlock(t *testing.T) {
	assert.Nil(t, envBlock(nil))

	empty := unsafe.Slice(envBlock([]string{}), 2)
	assert.Equal(t, []uint16{0, 0}, empty)

	block := unsafe.Slice(envBlock([]string{"A=1", "B=é"}), 9)
	assert.Equal(t, utf16.Encode([]rune("A=1\x00B=é\x00\x00")), block)
}

func TestCommandLineKeepsShellString(t *testing.T) {
	got := commandLine(`C:\Program Files\PowerShell\7\pwsh.exe`,
		[]string{"-NoExit", "-Command", "& 'C:\\bin\\claude.exe' '--verbose'"})
	assert.Equal(t, `"C:\Program Files\PowerShell\7\pwsh.exe" -NoExit -Command "& 'C:\bin\claude.exe' '--verbose'"`, got)
}

func TestRealExecutor_StartConsole(t *testing.T) {
	executor := &RealExecutor{}

	t.Run("exit code", func(t *testing.T) {
		p, err := executor.Start(Spec{Name: "cmd", Args: []string{"/c", "exit", "3"}})
		require.NoError(t, err)
		assert.Positive(t, p.Pid())

		st := waitExit(t, p)
		assert.Equal(t, ExitStatus{Exited: true, Code: 3}, st)
		assert.Equal(t, st, waitExit(t, p), "status is stable after exit")
	})

	t.Run("working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), nil, 0o644))

		p, err := executor.Start(Spec{
			Name: "cmd",
			Args: []string{"/c", "if", "exist", "marker.txt", "(exit", "0)", "else", "(exit", "5)"},
			Dir:  dir,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, waitExit(t, p).Code)
	})

	t.Run("environment", func(t *testing.T) {
		env := append(EnvWithout(os.Environ(), "TABLAUNCH_TEST_VAR"), "TABLAUNCH_TEST_VAR=1")
		p, err := executor.Start(Spec{
			Name: "cmd",
			Args: []string{"/c", "if", "defined", "TABLAUNCH_TEST_VAR", "(exit", "0)", "else", "(exit", "7)"},
			Env:  env,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, waitExit(t, p).Code)
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := executor.Start(Spec{Name: "tablaunch-no-such-binary"})
		assert.Error(t, err)
	})
}
