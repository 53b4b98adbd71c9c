//go:build !windows

package command

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestRealExecutor_Start(t *testing.T) {
	executor := &RealExecutor{}

	t.Run("clean exit", func(t *testing.T) {
		requireBinary(t, "true")
		p, err := executor.Start(Spec{Name: "true"})
		require.NoError(t, err)
		assert.Positive(t, p.Pid())

		require.Eventually(t, func() bool {
			st, err := p.Poll()
			return err == nil && st.Exited
		}, 5*time.Second, 10*time.Millisecond)

		st, err := p.Poll()
		require.NoError(t, err)
		assert.Equal(t, ExitStatus{Exited: true, Code: 0}, st)
	})

	t.Run("failing exit", func(t *testing.T) {
		requireBinary(t, "false")
		p, err := executor.Start(Spec{Name: "false"})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			st, _ := p.Poll()
			return st.Exited
		}, 5*time.Second, 10*time.Millisecond)

		st, err := p.Poll()
		require.NoError(t, err)
		assert.False(t, st.Success())
		assert.Equal(t, 1, st.Code)
	})

	t.Run("still running", func(t *testing.T) {
		requireBinary(t, "sleep")
		p, err := executor.Start(Spec{Name: "sleep", Args: []string{"1"}})
		require.NoError(t, err)

		st, err := p.Poll()
		require.NoError(t, err)
		assert.False(t, st.Exited)
		assert.True(t, st.Success())
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := executor.Start(Spec{Name: "tablaunch-definitely-not-a-binary"})
		assert.Error(t, err)
	})

	t.Run("environment and directory", func(t *testing.T) {
		requireBinary(t, "sh")
		dir := t.TempDir()
		env := EnvWithout([]string{"CLAUDECODE=1", "PATH=/usr/bin:/bin"}, MarkerEnvVar)
		p, err := executor.Start(Spec{
			Name: "sh",
			Args: []string{"-c", `[ -z "$CLAUDECODE" ] && [ "$(pwd -P)" = "$(cd "$0" && pwd -P)" ]`, dir},
			Dir:  dir,
			Env:  env,
		})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			st, _ := p.Poll()
			return st.Exited
		}, 5*time.Second, 10*time.Millisecond)
		st, err := p.Poll()
		require.NoError(t, err)
		assert.Equal(t, 0, st.Code)
	})
}
