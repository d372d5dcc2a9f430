package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDir = "taskdeck"

// DefaultConfigPath returns the XDG location of the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, "config.json")
}

// DefaultTasksFilePath returns the XDG location of the JSON task file.
func DefaultTasksFilePath() string {
	return filepath.Join(xdg.DataHome, appDir, "tasks.json")
}

// DefaultSQLitePath returns the XDG location of the sqlite database.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, appDir, "tasks.db")
}
