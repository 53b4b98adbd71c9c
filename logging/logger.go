package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// New creates the process logger. Every record goes to sink; records are
// mirrored to stderr according to cfg.Stderr.
func New(sink *Sink, cfg Config) *logrus.Logger {
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return NewWithStderr(sink, cfg, os.Stderr, interactive)
}

// NewWithStderr is New with an explicit stderr writer and terminal state.
func NewWithStderr(sink *Sink, cfg Config, stderr io.Writer, interactive bool) *logrus.Logger {
	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if env := os.Getenv("TABLAUNCH_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("TABLAUNCH_LOG_CALLER") == "true" || cfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(&TextFormatter{})

	shouldLogToStderr := false
	switch cfg.Stderr {
	case "always":
		shouldLogToStderr = true
	case "never":
		shouldLogToStderr = false
	default:
		// "auto" mode: mirror if debug is enabled, or if not in an interactive terminal
		isDebug := os.Getenv("TABLAUNCH_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
		shouldLogToStderr = isDebug || !interactive
	}

	if shouldLogToStderr && stderr != nil {
		logger.SetOutput(io.MultiWriter(sink, stderr))
	} else {
		logger.SetOutput(sink)
	}

	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, component string) *logrus.Entry {
	return logger.WithField("component", component)
}
