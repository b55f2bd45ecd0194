// Package cmdutil holds what every docfill command needs: configuration,
// logging setup, the engine and a renderer.
package cmdutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/applytrack/docfill/internal/config"
	"github.com/applytrack/docfill/internal/view"
	"github.com/applytrack/docfill/pkg/docfill"
)

// Env is the per-invocation state shared by the commands.
type Env struct {
	Config   *config.Config
	Engine   *docfill.Engine
	Renderer *view.Renderer
}

// Load reads the global flags, loads and validates the configuration, and
// configures logging for the run.
func Load(cmd *cobra.Command) (*Env, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.OutputFormat = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = strings.ToLower(f.Value.String())
	}
	if err := view.ValidateFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	engineCfg := docfill.NewConfigWithDefaults(&docfill.Config{
		LogLevel:       cfg.LogLevel,
		LogFormat:      cfg.LogFormat,
		ParseCacheSize: docfill.DefaultConfig().ParseCacheSize,
		StrictMode:     strict,
	})
	ConfigureLogging(engineCfg)

	noColor, _ := cmd.Flags().GetBool("no-color")
	renderer := view.NewRenderer(view.Format(cfg.OutputFormat), noColor)
	renderer.SetWriter(cmd.OutOrStdout())

	return &Env{
		Config:   cfg,
		Engine:   docfill.NewWithConfig(engineCfg),
		Renderer: renderer,
	}, nil
}

// ConfigureLogging installs the global docfill logger for cfg. Logs go to
// stderr so they never mix with rendered output.
func ConfigureLogging(cfg *docfill.Config) {
	docfill.SetGlobalConfig(cfg)
	level := docfill.GetLogger().Level()
	if cfg.LogFormat == "json" {
		docfill.SetLogger(docfill.NewLogger(os.Stderr, level))
	} else {
		docfill.SetLogger(docfill.NewConsoleLogger(os.Stderr, level))
	}
}

// ParseSet turns --set arguments of the form TOKEN=VALUE into a mapping. The
// token ends at the first "}}=" or "]]=", so values may contain "=".
func ParseSet(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		i := tokenEnd(pair)
		if i < 0 {
			return nil, fmt.Errorf("invalid --set %q: expected TOKEN=VALUE", pair)
		}
		token := strings.TrimSpace(pair[:i])
		if token == "" {
			return nil, fmt.Errorf("invalid --set %q: empty token", pair)
		}
		out[token] = pair[i+1:]
	}
	return out, nil
}

func tokenEnd(pair string) int {
	best := -1
	for _, closer := range []string{"}}=", "]]="} {
		if i := strings.Index(pair, closer); i >= 0 && (best < 0 || i+2 < best) {
			best = i + 2
		}
	}
	if best < 0 {
		best = strings.Index(pair, "=")
	}
	return best
}

// ReadValues loads a flat token to value mapping from a JSON or YAML file,
// chosen by extension.
func ReadValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	values := make(map[string]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		err = json.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}
