package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/elee1766/taskdeck/src/app"
	"github.com/elee1766/taskdeck/src/config"
)

// createLogger creates a stderr logger for CLI commands. When logFile
// is set, structured JSON logs go there instead so terminal output
// stays clean.
func createLogger(logLevel, logFile string) *slog.Logger {
	level := parseLogLevel(logLevel)

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
				Level: level,
			}))
		}
		// Fall through to stderr if the file cannot be opened.
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// buildApp loads configuration and wires the application.
func buildApp(cli *CLI) (*app.App, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	return app.New(cfg, createLogger(cfg.LogLevel, cli.LogFile))
}
