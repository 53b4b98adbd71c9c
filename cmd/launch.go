package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/tablaunch/cli"
	"github.com/grovetools/tablaunch/pkg/launcher"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// launchOverrides are per-invocation replacements for configured settings.
type launchOverrides struct {
	exe        string
	profile    string
	preLaunch  string
	extraFlags []string
	remote     bool
}

func (o *launchOverrides) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.exe, "exe", "", "Program to launch (default: configured or detected)")
	fs.StringVar(&o.profile, "profile", "", "Terminal profile")
	fs.BoolVar(&o.remote, "remote-control", false, "Start claude in remote-control mode")
	fs.StringVar(&o.preLaunch, "pre-launch", "", "Shell command to run before claude (not validated)")
	fs.StringArrayVar(&o.extraFlags, "flag", nil, "Extra flag for claude, e.g. --flag=--verbose (repeatable)")
}

// apply overwrites only the fields whose flags were set explicitly.
func (o *launchOverrides) apply(fs *pflag.FlagSet, req *launcher.Request) {
	if fs.Changed("exe") {
		req.ExecutablePath = o.exe
	}
	if fs.Changed("profile") {
		req.TerminalProfile = o.profile
	}
	if fs.Changed("remote-control") {
		req.RemoteControl = o.remote
	}
	if fs.Changed("pre-launch") {
		req.PreLaunchCommand = o.preLaunch
	}
	req.Flags = append(req.Flags, o.extraFlags...)
}

func newLaunchCmd(env Env) *cobra.Command {
	var (
		projectName string
		overrides   launchOverrides
	)

	cmd := &cobra.Command{
		Use:   "launch [DIR] [-- FLAGS...]",
		Short: "Open claude in a new terminal tab",
		Long: `Open claude in a new terminal tab rooted at DIR (default: the current
directory), or at a project from tablaunch.yml.

Every path, the terminal profile and each flag are checked for shell
metacharacters before anything is started. Windows Terminal is tried
first; if it is missing or exits immediately, pwsh is started directly.

Examples:
  # Launch in the current directory
  tablaunch launch

  # Launch a configured project
  tablaunch launch --project api

  # Pass extra flags to claude
  tablaunch launch ~/src/api -- --verbose --model=opus`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, trailing := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				positional, trailing = args[:dash], args[dash:]
			}
			if len(positional) > 1 {
				return fmt.Errorf("accepts at most one directory, received %d", len(positional))
			}
			if projectName != "" && len(positional) == 1 {
				return fmt.Errorf("--project cannot be combined with a directory argument")
			}

			svc, err := newService(cmd, env)
			if err != nil {
				return err
			}

			var req launcher.Request
			switch {
			case projectName != "":
				if req, err = svc.RequestForProject(projectName); err != nil {
					return err
				}
			case len(positional) == 1:
				req = svc.RequestForPath(positional[0])
			default:
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				req = svc.RequestForPath(wd)
			}

			overrides.apply(cmd.Flags(), &req)
			req.Flags = append(req.Flags, trailing...)

			res := svc.Launch(cmd.Context(), req)
			if err := printResult(cmd.OutOrStdout(), res, cli.GetOptions(cmd).JSONOutput); err != nil {
				return err
			}
			if !res.Success {
				return cli.ErrSilent
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Launch a project from tablaunch.yml")
	overrides.register(cmd.Flags())

	return cmd
}

func printResult(w io.Writer, res launcher.Result, asJSON bool) error {
	if asJSON {
		return cli.PrintJSON(w, res)
	}

	s := cli.DefaultStyles()
	if res.Success {
		fmt.Fprintln(w, s.Success.Render("Launched"))
	} else {
		fmt.Fprintln(w, s.Error.Render("Launch failed: ")+res.Error)
	}
	if res.Command != "" {
		fmt.Fprintln(w, s.Muted.Render(res.Command))
	}
	return nil
}
