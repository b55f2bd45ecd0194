package configcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/config"
)

type initOptions struct {
	force        bool
	templatesDir string
	outputDir    string
	snapshotDir  string
}

// NewCmdInit creates the config init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Write a configuration file holding the default settings, adjusted by the
given flags. An existing file is only replaced with --force.`,
		Example: `  # Create ~/.config/docfill/config.yml
  docfill config init --templates-dir ~/Documents/Templates

  # Start over
  docfill config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, configPath(cmd), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&opts.templatesDir, "templates-dir", "", "Directory searched for bare template names")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for generated documents")
	cmd.Flags().StringVar(&opts.snapshotDir, "snapshot-dir", "", "Directory for placeholder snapshots")

	return cmd
}

func runInit(cmd *cobra.Command, path string, opts *initOptions) error {
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.Default()
	if opts.templatesDir != "" {
		cfg.TemplatesDir = opts.templatesDir
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.snapshotDir != "" {
		cfg.SnapshotDir = opts.snapshotDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}
	_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Configuration saved to "+path)
	return nil
}
