package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: true,
			errMsg:  "output_dir is required",
		},
		{
			name:    "missing snapshot dir",
			mutate:  func(c *Config) { c.SnapshotDir = "" },
			wantErr: true,
			errMsg:  "snapshot_dir is required",
		},
		{
			name:    "unknown cascade",
			mutate:  func(c *Config) { c.Cascade = "week" },
			wantErr: true,
			errMsg:  "cascade must be one of: none, year, month, day, year-month",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: true,
			errMsg:  "log_level must be one of",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.OutputFormat = "xml" },
			wantErr: true,
			errMsg:  "output_format must be one of",
		},
		{
			name: "several problems are joined",
			mutate: func(c *Config) {
				c.OutputDir = ""
				c.LogFormat = "yaml"
			},
			wantErr: true,
			errMsg:  "output_dir is required; log_format must be one of",
		},
		{
			name:   "records file is optional",
			mutate: func(c *Config) { c.RecordsFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("DOCFILL_OUTPUT_DIR", "/tmp/out")
	t.Setenv("DOCFILL_CASCADE", "YEAR")
	t.Setenv("DOCFILL_LOG_LEVEL", "Debug")
	t.Setenv("DOCFILL_SNAPSHOT_DIR", "")

	cfg := Default()
	cfg.LoadFromEnv()

	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, CascadeYear, cfg.Cascade)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "placeholders", cfg.SnapshotDir, "empty variables do not override")
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/docfill/config.yml", DefaultConfigPath())
	})

	t.Run("falls back to home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "docfill", "config.yml"), DefaultConfigPath())
	})
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg := Default()
	cfg.TemplatesDir = "/templates"
	cfg.Cascade = CascadeDay
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("cascade: year-month\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CascadeYearMonth, cfg.Cascade)
	assert.Equal(t, "placeholders", cfg.SnapshotDir)
	assert.Equal(t, "table", cfg.OutputFormat)
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Setenv("DOCFILL_RECORDS_FILE", "/tmp/records.jsonl")
		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yml"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/records.jsonl", cfg.RecordsFile)
		assert.Equal(t, CascadeMonth, cfg.Cascade)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("cascade: [unclosed"), 0644))
		_, err := LoadWithEnv(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestConfig_TemplatePath(t *testing.T) {
	cfg := Default()
	cfg.TemplatesDir = filepath.Join("srv", "templates")

	assert.Equal(t, filepath.Join("srv", "templates", "letter.docx"), cfg.TemplatePath("letter.docx"))
	assert.Equal(t, filepath.Join("other", "letter.docx"), cfg.TemplatePath(filepath.Join("other", "letter.docx")))

	cfg.TemplatesDir = ""
	assert.Equal(t, "letter.docx", cfg.TemplatePath("letter.docx"))
}
