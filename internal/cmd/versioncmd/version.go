// Package versioncmd provides the version command.
package versioncmd

import (
	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/version"
)

// NewCmdVersion creates the version command.
func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.String())
		},
	}
}
