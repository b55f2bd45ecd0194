// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docfill configuration",
		Long:  `Commands for viewing and creating the docfill configuration file.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdInit())

	return cmd
}

// configPath returns the --config flag value or the default location.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
