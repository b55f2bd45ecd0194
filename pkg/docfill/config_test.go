package docfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "console", config.LogFormat)
	assert.Equal(t, 256, config.ParseCacheSize)
	assert.False(t, config.StrictMode)
	assert.NoError(t, config.Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		check   func(t *testing.T, config *Config)
	}{
		{
			name:    "log level is lowercased",
			envVars: map[string]string{"DOCFILL_LOG_LEVEL": "DEBUG"},
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, "debug", config.LogLevel)
			},
		},
		{
			name:    "log format",
			envVars: map[string]string{"DOCFILL_LOG_FORMAT": "json"},
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, "json", config.LogFormat)
			},
		},
		{
			name:    "parse cache size",
			envVars: map[string]string{"DOCFILL_PARSE_CACHE_SIZE": "12"},
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, 12, config.ParseCacheSize)
			},
		},
		{
			name:    "invalid cache size keeps default",
			envVars: map[string]string{"DOCFILL_PARSE_CACHE_SIZE": "lots"},
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, 256, config.ParseCacheSize)
			},
		},
		{
			name:    "strict mode",
			envVars: map[string]string{"DOCFILL_STRICT_MODE": "yes"},
			check: func(t *testing.T, config *Config) {
				assert.True(t, config.StrictMode)
			},
		},
		{
			name:    "strict mode off",
			envVars: map[string]string{"DOCFILL_STRICT_MODE": "nope"},
			check: func(t *testing.T, config *Config) {
				assert.False(t, config.StrictMode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			tt.check(t, ConfigFromEnvironment())
		})
	}
}

func TestNewConfigWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), NewConfigWithDefaults(nil))

	config := NewConfigWithDefaults(&Config{StrictMode: true, ParseCacheSize: 5})
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "console", config.LogFormat)
	assert.Equal(t, 5, config.ParseCacheSize)
	assert.True(t, config.StrictMode)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "off level", mutate: func(c *Config) { c.LogLevel = "off" }},
		{name: "negative cache", mutate: func(c *Config) { c.ParseCacheSize = -1 }, wantErr: "negative"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log level"},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGlobalConfig(t *testing.T) {
	original := GetGlobalConfig()
	t.Cleanup(func() { SetGlobalConfig(original) })

	SetGlobalConfig(&Config{LogLevel: "error", LogFormat: "console", ParseCacheSize: 1})
	assert.Equal(t, "error", GetGlobalConfig().LogLevel)
	assert.Equal(t, LogError, GetLogger().Level())

	// the returned config is a copy
	GetGlobalConfig().LogLevel = "debug"
	assert.Equal(t, "error", GetGlobalConfig().LogLevel)
}
