package opener

import (
	"context"
	"os/exec"
	"testing"

	"github.com/grovetools/tablaunch/errors"
	"github.com/grovetools/tablaunch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramFor(t *testing.T) {
	assert.Equal(t, "explorer", ProgramFor("windows"))
	assert.Equal(t, "open", ProgramFor("darwin"))
	assert.Equal(t, "xdg-open", ProgramFor("linux"))
	assert.Equal(t, "xdg-open", ProgramFor("freebsd"))
}

func TestOpen(t *testing.T) {
	fe := testutil.NewFakeExecutor()
	o := NewForOS(fe, "windows")

	require.NoError(t, o.Open(context.Background(), `C:\Users\me\AppData\Roaming\tablaunch\logs`))

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "explorer", calls[0].Name)
	assert.Equal(t, []string{`C:\Users\me\AppData\Roaming\tablaunch\logs`}, calls[0].Args)
}

func TestOpenFailures(t *testing.T) {
	t.Run("spawn error", func(t *testing.T) {
		fe := testutil.NewFakeExecutor().On("xdg-open", testutil.Outcome{StartErr: exec.ErrNotFound})
		err := NewForOS(fe, "linux").Open(context.Background(), "/tmp/logs")
		assert.True(t, errors.Is(err, errors.ErrCodeOpenFailed), "got %v", err)
	})

	t.Run("unsafe path", func(t *testing.T) {
		fe := testutil.NewFakeExecutor()
		err := NewForOS(fe, "linux").Open(context.Background(), "/tmp/logs;reboot")
		assert.True(t, errors.Is(err, errors.ErrCodeUnsafeInput), "got %v", err)
		assert.Empty(t, fe.Calls())
	})

	t.Run("cancelled", func(t *testing.T) {
		fe := testutil.NewFakeExecutor()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewForOS(fe, "darwin").Open(ctx, "/tmp/logs")
		assert.True(t, errors.Is(err, errors.ErrCodeOpenFailed))
		assert.Empty(t, fe.Calls())
	})
}
