package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Equal(t, 5, cfg.Model.MaxSteps)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"model": {"name": "gpt-4o-mini", "maxSteps": 3},
		"storage": {"driver": "sqlite", "path": "/tmp/tasks.db"},
		"server": {"port": 8080}
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 3, cfg.Model.MaxSteps)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadSQLiteDriverGetsSQLiteDefaultPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": {"driver": "sqlite"}
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, DefaultSQLitePath(), cfg.Storage.Path)
	assert.NotEqual(t, DefaultTasksFilePath(), cfg.Storage.Path)

	// An explicit path always wins.
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": {"driver": "sqlite", "path": "/tmp/elsewhere.db"}
	}`), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.db", cfg.Storage.Path)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("TASKDECK_LOG_LEVEL", "debug")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Model.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"missing path", func(c *Config) { c.Storage.Path = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 99999 }},
		{"bad steps", func(c *Config) { c.Model.MaxSteps = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMemoryDriverNeedsNoPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "memory"
	cfg.Storage.Path = ""
	assert.NoError(t, cfg.Validate())
}
