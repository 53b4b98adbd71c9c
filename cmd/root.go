// Package cmd implements the tablaunch command line.
package cmd

import (
	"context"
	"io"

	"github.com/grovetools/tablaunch/cli"
	"github.com/grovetools/tablaunch/command"
	"github.com/grovetools/tablaunch/config"
	"github.com/grovetools/tablaunch/pkg/app"
	"github.com/grovetools/tablaunch/version"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// Env replaces process-level dependencies of the commands. The zero value
// uses the real environment.
type Env struct {
	Executor command.Executor
	Clock    clockwork.Clock
	GOOS     string
	// LogStderr receives mirrored log lines instead of os.Stderr.
	LogStderr io.Writer
}

// NewRootCmd creates the tablaunch root command.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(Env{})
}

// NewRootCmdWithEnv creates the root command on top of env.
func NewRootCmdWithEnv(env Env) *cobra.Command {
	root := cli.NewStandardCommand(
		"tablaunch",
		"Open claude in a new terminal tab, safely",
	)
	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(newLaunchCmd(env))
	root.AddCommand(newDetectCmd(env))
	root.AddCommand(newLogCmd(env))
	root.AddCommand(NewPathsCmd())
	root.AddCommand(cli.NewVersionCommand("tablaunch"))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		_ = cli.NewErrorHandler(verbose).Handle(err)
		return 1
	}
	return 0
}

// newService loads configuration and builds the service for one command.
func newService(cmd *cobra.Command, env Env) (*app.Service, error) {
	opts := cli.GetOptions(cmd)

	cfg, path, err := config.LoadDefault(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	svc, err := app.New(app.Options{
		Config:   cfg,
		Executor: env.Executor,
		Clock:    env.Clock,
		GOOS:     env.GOOS,
		LogPath:  opts.LogFile,
		Stderr:   env.LogStderr,
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		svc.Logger().WithField("path", path).Debug("Loaded configuration")
	}
	return svc, nil
}
