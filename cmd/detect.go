package cmd

import (
	"fmt"

	"github.com/grovetools/tablaunch/cli"
	"github.com/spf13/cobra"
)

func newDetectCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Print where claude is installed",
		Long: `Probe the usual install locations under the home directory and print
the first one that exists. Prints "claude" when none does, leaving the
lookup to the search path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, env)
			if err != nil {
				return err
			}
			path := svc.DetectExecutablePath()
			if cli.GetOptions(cmd).JSONOutput {
				return cli.PrintJSON(cmd.OutOrStdout(), map[string]string{"path": path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
