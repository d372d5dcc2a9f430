// Package config loads taskdeck configuration: built-in defaults,
// overridden by an optional JSON file in the XDG config directory,
// overridden by environment variables. The model credential only ever
// comes from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/elee1766/taskdeck/src/executor"
)

// ModelConfig selects the model and its endpoint.
type ModelConfig struct {
	// APIKey is populated from OPENAI_API_KEY, never from the file.
	APIKey   string `json:"-"`
	BaseURL  string `json:"baseUrl,omitempty"`
	Name     string `json:"name,omitempty"`
	MaxSteps int    `json:"maxSteps,omitempty"`
}

// StorageConfig selects the task store backend.
type StorageConfig struct {
	// Driver is "file", "sqlite" or "memory".
	Driver string `json:"driver,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// Config is the full application configuration.
type Config struct {
	Model    ModelConfig   `json:"model"`
	Storage  StorageConfig `json:"storage"`
	Server   ServerConfig  `json:"server"`
	LogLevel string        `json:"logLevel,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name:     "gpt-4o",
			MaxSteps: executor.DefaultMaxSteps,
		},
		Storage: StorageConfig{
			Driver: "file",
			Path:   DefaultTasksFilePath(),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		LogLevel: "info",
	}
}

// Load reads the configuration. path selects an explicit config file;
// when empty the default XDG location is used and its absence is fine.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is a normal first run.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvironment(cfg)

	// The built-in path default is for the file driver. A config that
	// switches to sqlite without naming a path gets the sqlite default
	// instead of writing a database over tasks.json.
	if cfg.Storage.Driver == "sqlite" && cfg.Storage.Path == DefaultTasksFilePath() {
		cfg.Storage.Path = DefaultSQLitePath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver != "memory" && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for driver %q", c.Storage.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Model.MaxSteps <= 0 {
		return fmt.Errorf("maxSteps must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
