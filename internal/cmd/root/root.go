// Package root provides the root command for the docfill CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/cmd/configcmd"
	"github.com/applytrack/docfill/internal/cmd/fields"
	"github.com/applytrack/docfill/internal/cmd/fill"
	"github.com/applytrack/docfill/internal/cmd/history"
	"github.com/applytrack/docfill/internal/cmd/relink"
	"github.com/applytrack/docfill/internal/cmd/versioncmd"
	"github.com/applytrack/docfill/internal/version"
)

// NewCmdRoot creates the root command for docfill.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docfill",
		Short: "Fill placeholders in Word templates",
		Long: `docfill fills the placeholders of DOCX templates and saves the results as
new documents.

Placeholders are written {{Label}} for values that must be supplied,
[[Label]] for values that default to their label, and
[[|Group@Label|default]] for grouped values with an explicit default.
Groups are separated with @, as in {{Job@Company}}.

Get started by running: docfill config init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/docfill/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error, off")
	cmd.PersistentFlags().Bool("strict", false, "fail on placeholders that do not parse")

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(fields.NewCmdFields())
	cmd.AddCommand(fill.NewCmdFill())
	cmd.AddCommand(relink.NewCmdRelink())
	cmd.AddCommand(history.NewCmdHistory())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(versioncmd.NewCmdVersion())

	return cmd
}
