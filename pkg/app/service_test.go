package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/tablaunch/config"
	"github.com/grovetools/tablaunch/errors"
	"github.com/grovetools/tablaunch/logging"
	"github.com/grovetools/tablaunch/pkg/detect"
	"github.com/grovetools/tablaunch/pkg/launcher"
	"github.com/grovetools/tablaunch/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
	exec    *testutil.FakeExecutor
	dataDir string
	project string
	exe     string
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	t.Setenv("TABLAUNCH_LOG_LEVEL", "")
	testutil.TempHome(t)

	base := t.TempDir()
	dataDir := testutil.RequireDir(t, filepath.Join(base, "data"))
	project := testutil.RequireDir(t, filepath.Join(base, "project"))
	exe := testutil.RequireFile(t, filepath.Join(base, "bin", "claude"))

	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.Executable == "" {
		cfg.Executable = exe
	}

	fe := testutil.NewFakeExecutor().On("wt", testutil.Outcome{StartErr: os.ErrNotExist})
	svc, err := New(Options{
		Config:   cfg,
		Fs:       afero.NewOsFs(),
		Executor: fe,
		DataDir:  dataDir,
		Stderr:   io.Discard,
		GOOS:     "linux",
	})
	require.NoError(t, err)
	return &fixture{svc: svc, exec: fe, dataDir: dataDir, project: project, exe: exe}
}

func TestDefaultLogPath(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, filepath.Join(f.dataDir, "logs", "tablaunch.log"), f.svc.LogPath())
}

func TestLaunchWritesLog(t *testing.T) {
	f := newFixture(t, nil)

	res := f.svc.Launch(context.Background(), f.svc.RequestForPath(f.project))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{"wt", "pwsh"}, f.exec.Names())

	out, err := f.svc.ReadLog(0)
	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] Launch requested for: "+f.project)
	assert.Contains(t, out, "[WARN] wt spawn failed")
	assert.Contains(t, out, "[INFO] Launch successful via pwsh fallback")
}

func TestLaunchRejectionIsLogged(t *testing.T) {
	f := newFixture(t, nil)
	req := f.svc.RequestForPath(f.project)
	req.Flags = []string{"--model=$(whoami)"}

	res := f.svc.Launch(context.Background(), req)
	assert.False(t, res.Success)
	assert.Empty(t, f.exec.Calls())

	out, err := f.svc.ReadLog(0)
	require.NoError(t, err)
	assert.Contains(t, out, "[ERROR] Invalid flag rejected: --model=$(whoami)")
}

func TestRequestForProject(t *testing.T) {
	cfg := config.Default()
	cfg.RemoteControl = true
	cfg.CustomFlags = []string{"--model=opus"}
	cfg.Projects = []config.Project{{
		Name:             "api",
		Path:             "/src/api",
		FlagOverrides:    map[string]bool{"--verbose": true, "--model=opus": false},
		PreLaunchCommand: "nvm use 20",
	}}
	f := newFixture(t, cfg)

	req, err := f.svc.RequestForProject("api")
	require.NoError(t, err)
	assert.Equal(t, launcher.Request{
		ExecutablePath:   f.exe,
		ProjectPath:      "/src/api",
		TerminalProfile:  "PowerShell",
		Flags:            []string{"--verbose"},
		RemoteControl:    true,
		PreLaunchCommand: "nvm use 20",
	}, req)

	_, err = f.svc.RequestForProject("web")
	assert.True(t, errors.Is(err, errors.ErrCodePathNotFound))
}

func TestDetectExecutablePath(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, detect.DefaultProgram, f.svc.DetectExecutablePath())

	home := os.Getenv("HOME")
	installed := testutil.RequireFile(t, filepath.Join(home, ".local", "bin", "claude"))
	assert.Equal(t, installed, f.svc.DetectExecutablePath())
}

func TestReadLog(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.svc.ReadLog(10)
	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] tablaunch started")

	require.NoError(t, f.svc.SetLogPath(filepath.Join(f.dataDir, "logs", "fresh.log")))
	out, err = f.svc.ReadLog(10)
	require.NoError(t, err)
	assert.Equal(t, logging.NoEntriesMessage, out)

	for i := 0; i < 150; i++ {
		f.svc.Logger().Infof("line %d", i)
	}

	out, err = f.svc.ReadLog(0)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 100)
	assert.True(t, strings.HasSuffix(lines[99], "line 149"))

	out, err = f.svc.ReadLog(3)
	require.NoError(t, err)
	assert.Len(t, strings.Split(out, "\n"), 3)
}

func TestSetLogPathConfinement(t *testing.T) {
	f := newFixture(t, nil)

	inside := filepath.Join(f.dataDir, "other", "custom.log")
	require.NoError(t, f.svc.SetLogPath(inside))
	assert.Equal(t, inside, f.svc.LogPath())

	f.svc.Logger().Info("moved")
	data, err := os.ReadFile(inside)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] moved")

	outside := filepath.Join(t.TempDir(), "escape.log")
	err = f.svc.SetLogPath(outside)
	require.Error(t, err)
	assert.Equal(t, "Log path is outside app data directory", errors.Message(err))
	assert.Equal(t, inside, f.svc.LogPath(), "rejected path is not applied")

	err = f.svc.SetLogPath(filepath.Join(f.dataDir, "..", "escape.log"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfinement))
}

func TestLogPathFromConfigMustBeConfined(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "elsewhere.log")

	_, err := New(Options{Config: cfg, DataDir: t.TempDir(), Stderr: io.Discard})
	assert.True(t, errors.Is(err, errors.ErrCodeConfinement))
}

func TestUnknownBackendRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Backends = []string{"kitty"}

	_, err := New(Options{Config: cfg, DataDir: t.TempDir(), Stderr: io.Discard})
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestOpenLogFolder(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.svc.OpenLogFolder(context.Background()))
	calls := f.exec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "xdg-open", calls[0].Name)
	assert.Equal(t, []string{filepath.Join(f.dataDir, "logs")}, calls[0].Args)
}

func TestOpenLogFolderFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.exec.On("xdg-open", testutil.Outcome{StartErr: os.ErrNotExist})

	err := f.svc.OpenLogFolder(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeOpenFailed))

	out, readErr := f.svc.ReadLog(0)
	require.NoError(t, readErr)
	assert.Contains(t, out, "[WARN] Failed to open log folder")
}

func TestRequestForPathExpandsHome(t *testing.T) {
	f := newFixture(t, nil)
	home := os.Getenv("USERPROFILE")

	req := f.svc.RequestForPath("~/src/api")
	assert.Equal(t, filepath.Join(home, "src", "api"), req.ProjectPath)
	assert.Equal(t, f.exe, req.ExecutablePath)
	assert.Equal(t, "PowerShell", req.TerminalProfile)
	assert.Empty(t, req.Flags)
}

func TestRequestForRelativePath(t *testing.T) {
	f := newFixture(t, nil)
	t.Chdir(filepath.Dir(f.project))
	wd, err := os.Getwd()
	require.NoError(t, err)
	project := filepath.Join(wd, filepath.Base(f.project))

	req := f.svc.RequestForPath(filepath.Base(f.project))
	assert.Equal(t, project, req.ProjectPath)

	res := f.svc.Launch(context.Background(), req)
	require.True(t, res.Success, res.Error)
	fallback := f.exec.Calls()[1]
	assert.Equal(t, []string{"-NoExit", "-WorkingDirectory", project, "-Command", "& '" + f.exe + "'"}, fallback.Args)
	assert.Empty(t, fallback.Dir)
}
