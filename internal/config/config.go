// Package config provides configuration management for docfill.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Cascade values select the date sub-directories created under the output dir.
const (
	CascadeNone      = "none"
	CascadeYear      = "year"
	CascadeMonth     = "month"
	CascadeDay       = "day"
	CascadeYearMonth = "year-month"
)

// Config holds the docfill configuration.
type Config struct {
	TemplatesDir string `yaml:"templates_dir,omitempty" json:"templates_dir,omitempty"`
	OutputDir    string `yaml:"output_dir" json:"output_dir" validate:"required"`
	SnapshotDir  string `yaml:"snapshot_dir" json:"snapshot_dir" validate:"required"`
	RecordsFile  string `yaml:"records_file,omitempty" json:"records_file,omitempty"`
	Cascade      string `yaml:"cascade" json:"cascade" validate:"oneof=none year month day year-month"`
	LogLevel     string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error off"`
	LogFormat    string `yaml:"log_format" json:"log_format" validate:"oneof=console json"`
	OutputFormat string `yaml:"output_format" json:"output_format" validate:"oneof=table json plain"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputDir:    filepath.Join("docs", "Applications"),
		SnapshotDir:  "placeholders",
		RecordsFile:  filepath.Join("docs", "records.jsonl"),
		Cascade:      CascadeMonth,
		LogLevel:     "info",
		LogFormat:    "console",
		OutputFormat: "table",
	}
}

var validate = newValidator()

// newValidator reports field errors under their yaml names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("DOCFILL_TEMPLATES_DIR"); v != "" {
		c.TemplatesDir = v
	}
	if v := os.Getenv("DOCFILL_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("DOCFILL_SNAPSHOT_DIR"); v != "" {
		c.SnapshotDir = v
	}
	if v := os.Getenv("DOCFILL_RECORDS_FILE"); v != "" {
		c.RecordsFile = v
	}
	if v := os.Getenv("DOCFILL_CASCADE"); v != "" {
		c.Cascade = strings.ToLower(v)
	}
	if v := os.Getenv("DOCFILL_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("DOCFILL_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "docfill", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".docfill", "config.yml")
	}

	return filepath.Join(home, ".config", "docfill", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// TemplatePath resolves a template argument. Bare names are looked up in
// TemplatesDir; anything with a directory component is used as given.
func (c *Config) TemplatePath(name string) string {
	if c.TemplatesDir == "" || filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(c.TemplatesDir, name)
}
