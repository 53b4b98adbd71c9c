package cmd

import (
	"github.com/grovetools/tablaunch/cli"
	"github.com/grovetools/tablaunch/config"
	"github.com/grovetools/tablaunch/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput represents the paths used by tablaunch.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	ConfigFile string `json:"config_file"`
	DataDir    string `json:"data_dir"`
	LogFile    string `json:"log_file"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by tablaunch",
		Long: `Print the paths used by tablaunch as JSON.

- config_dir: where tablaunch.yml (or .yaml, .toml) is looked up
- config_file: the config file in use, empty when none exists
- data_dir: application data; the log must stay inside it
- log_file: default log location

Set TABLAUNCH_HOME to move everything under one directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				LogFile:   paths.DefaultLogPath(),
			}
			if explicit := cli.GetOptions(cmd).ConfigFile; explicit != "" {
				output.ConfigFile = explicit
			} else if found, err := config.FindConfigFile(output.ConfigDir); err == nil {
				output.ConfigFile = found
			}
			return cli.PrintJSON(cmd.OutOrStdout(), output)
		},
	}

	return cmd
}
