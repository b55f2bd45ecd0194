package configcmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/config"
	"github.com/applytrack/docfill/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration: the config file with environment
variables and command-line flags applied.`,
		Example: `  # Show current config
  docfill config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			return runShow(env, configPath(cmd))
		},
	}

	return cmd
}

func runShow(env *cmdutil.Env, path string) error {
	cfg := env.Config
	r := env.Renderer

	_, statErr := os.Stat(path)
	exists := !errors.Is(statErr, os.ErrNotExist)

	if r.Format() == view.FormatJSON {
		return r.RenderJSON(struct {
			Path   string         `json:"path"`
			Exists bool           `json:"exists"`
			Config *config.Config `json:"config"`
		}{path, exists, cfg})
	}

	r.RenderKeyValue("templates_dir", orDash(cfg.TemplatesDir))
	r.RenderKeyValue("output_dir", cfg.OutputDir)
	r.RenderKeyValue("snapshot_dir", cfg.SnapshotDir)
	r.RenderKeyValue("records_file", orDash(cfg.RecordsFile))
	r.RenderKeyValue("cascade", cfg.Cascade)
	r.RenderKeyValue("log_level", cfg.LogLevel)
	r.RenderKeyValue("log_format", cfg.LogFormat)
	r.RenderKeyValue("output_format", cfg.OutputFormat)

	if r.Format() == view.FormatPlain {
		return nil
	}
	r.RenderText("")
	if exists {
		r.RenderText("Config file: " + path)
	} else {
		r.RenderText("Config file: " + path + " (not found, using defaults)")
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
