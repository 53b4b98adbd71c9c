// Package app wires configuration, logging and the launcher into the
// operations exposed by the command line.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/grovetools/tablaunch/command"
	"github.com/grovetools/tablaunch/config"
	"github.com/grovetools/tablaunch/errors"
	"github.com/grovetools/tablaunch/logging"
	"github.com/grovetools/tablaunch/pkg/detect"
	"github.com/grovetools/tablaunch/pkg/launcher"
	"github.com/grovetools/tablaunch/pkg/opener"
	"github.com/grovetools/tablaunch/pkg/paths"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options configures a Service. Zero values select the real environment.
type Options struct {
	Config   *config.Config
	Fs       afero.Fs
	Executor command.Executor
	Clock    clockwork.Clock
	// DataDir bounds where the log may live. Defaults to paths.DataDir().
	DataDir string
	// LogPath overrides config and the default log location.
	LogPath string
	// Stderr receives mirrored log lines. Nil uses os.Stderr with
	// terminal detection.
	Stderr      io.Writer
	Interactive bool
	// GOOS selects the file browser. Defaults to the running platform.
	GOOS string
}

// Service implements every tablaunch operation on top of one owned log
// sink.
type Service struct {
	cfg      *config.Config
	fs       afero.Fs
	sink     *logging.Sink
	logger   *logrus.Logger
	log      *logrus.Entry
	launcher *launcher.Launcher
	detector *detect.Detector
	opener   *opener.Opener
}

// New builds a Service from opts.
func New(opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = paths.DataDir()
	}

	sink := logging.NewSink(fs, dataDir, filepath.Join(dataDir, "logs", paths.LogFileName))
	logPath := opts.LogPath
	if logPath == "" {
		logPath = cfg.Logging.File
	}
	if logPath != "" {
		if err := sink.SetPath(logPath); err != nil {
			return nil, err
		}
	}

	var logger *logrus.Logger
	if opts.Stderr != nil {
		logger = logging.NewWithStderr(sink, cfg.Logging, opts.Stderr, opts.Interactive)
	} else {
		logger = logging.New(sink, cfg.Logging)
	}

	backends, err := launcher.BackendsByName(cfg.Backends)
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	var builder *command.SafeBuilder
	if opts.Executor != nil {
		builder = command.NewSafeBuilderWithExecutor(opts.Executor)
	} else {
		builder = command.NewSafeBuilder()
	}

	launchOpts := []launcher.Option{launcher.WithBackends(backends...), launcher.WithFs(fs)}
	if opts.Clock != nil {
		launchOpts = append(launchOpts, launcher.WithClock(opts.Clock))
	}

	op := opener.New(builder)
	if opts.GOOS != "" {
		op = opener.NewForOS(builder, opts.GOOS)
	}

	s := &Service{
		cfg:      cfg,
		fs:       fs,
		sink:     sink,
		logger:   logger,
		log:      logging.Component(logger, "app"),
		launcher: launcher.New(builder, logging.Component(logger, "launcher"), launchOpts...),
		detector: detect.New(fs),
		opener:   op,
	}
	s.log.Info("tablaunch started")
	return s, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Logger returns the service logger.
func (s *Service) Logger() *logrus.Logger {
	return s.logger
}

// Launch opens req in a new terminal tab. Failures are reported in the
// Result, never as an error.
func (s *Service) Launch(ctx context.Context, req launcher.Request) launcher.Result {
	return s.launcher.Launch(ctx, req)
}

// RequestForPath builds a request for dir from the global settings. A
// leading "~" in dir is expanded and a relative dir is resolved against the
// working directory.
func (s *Service) RequestForPath(dir string) launcher.Request {
	return launcher.Request{
		ExecutablePath:  s.executable(),
		ProjectPath:     absDir(dir),
		TerminalProfile: s.cfg.TerminalProfile,
		Flags:           s.cfg.ResolveFlags(nil),
		RemoteControl:   s.cfg.RemoteControl,
	}
}

// RequestForProject builds a request for the configured project name,
// applying its flag overrides and pre-launch command.
func (s *Service) RequestForProject(name string) (launcher.Request, error) {
	p, ok := s.cfg.Project(name)
	if !ok {
		return launcher.Request{}, errors.New(errors.ErrCodePathNotFound, fmt.Sprintf("unknown project: %s", name)).
			WithDetail("project", name)
	}
	req := s.RequestForPath(p.Path)
	req.Flags = s.cfg.ResolveFlags(p.FlagOverrides)
	req.PreLaunchCommand = p.PreLaunchCommand
	return req, nil
}

func absDir(dir string) string {
	dir = paths.ExpandHome(dir)
	if dir == "" {
		return dir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func (s *Service) executable() string {
	if s.cfg.Executable != "" {
		return paths.ExpandHome(s.cfg.Executable)
	}
	return s.detector.Detect()
}

// DetectExecutablePath returns the first installed candidate, or the bare
// program name.
func (s *Service) DetectExecutablePath() string {
	return s.detector.Detect()
}

// LogPath returns the current log file path.
func (s *Service) LogPath() string {
	return s.sink.Path()
}

// SetLogPath moves the log. The path must stay inside the data directory.
func (s *Service) SetLogPath(path string) error {
	if err := s.sink.SetPath(path); err != nil {
		return err
	}
	s.log.WithField("path", path).Debug("log path changed")
	return nil
}

// ReadLog returns the last n lines of the log (100 when n <= 0).
func (s *Service) ReadLog(n int) (string, error) {
	path, err := s.sink.ConfinedPath()
	if err != nil {
		return "", err
	}
	return logging.ReadTail(s.fs, path, n)
}

// FollowLog streams new log lines to w until ctx is done.
func (s *Service) FollowLog(ctx context.Context, w io.Writer) error {
	path, err := s.sink.ConfinedPath()
	if err != nil {
		return err
	}
	return logging.Follow(ctx, path, w)
}

// OpenLogFolder shows the log directory in the file browser.
func (s *Service) OpenLogFolder(ctx context.Context) error {
	path, err := s.sink.ConfinedPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := s.opener.Open(ctx, dir); err != nil {
		s.log.Warnf("Failed to open log folder: %s", errors.Message(err))
		return err
	}
	return nil
}
