package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/grovetools/tablaunch/cli"
	"github.com/spf13/cobra"
)

func newLogCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the launch log",
	}
	cmd.AddCommand(newLogPathCmd(env), newLogShowCmd(env), newLogOpenCmd(env))
	return cmd
}

func newLogPathCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the log file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, env)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return cli.PrintJSON(cmd.OutOrStdout(), map[string]string{"path": svc.LogPath()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.LogPath())
			return nil
		},
	}
}

func newLogShowCmd(env Env) *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the end of the log",
		Long: `Print the last lines of the launch log (100 by default). With --follow,
keep printing new lines until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, env)
			if err != nil {
				return err
			}

			content, err := svc.ReadLog(lines)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput && !follow {
				return cli.PrintJSON(cmd.OutOrStdout(), map[string]string{
					"path":    svc.LogPath(),
					"content": content,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)

			if follow {
				return svc.FollowLog(cmd.Context(), cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show (default 100)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	return cmd
}

func newLogOpenCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Show the log folder in the file browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, env)
			if err != nil {
				return err
			}
			if err := svc.OpenLogFolder(cmd.Context()); err != nil {
				return err
			}
			if !cli.GetOptions(cmd).JSONOutput {
				fmt.Fprintln(cmd.OutOrStdout(), "Opened "+filepath.Dir(svc.LogPath()))
			}
			return nil
		},
	}
}
