// Package app wires the application together from configuration: the
// task store, the task service, the toolbox, the model client and the
// turn executor.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/aisdk"
	"github.com/elee1766/taskdeck/src/assistant"
	"github.com/elee1766/taskdeck/src/assistant/tools"
	"github.com/elee1766/taskdeck/src/config"
	"github.com/elee1766/taskdeck/src/executor"
	"github.com/elee1766/taskdeck/src/oaiclient"
	"github.com/elee1766/taskdeck/src/taskservice"
	"github.com/elee1766/taskdeck/src/taskstore"
)

// App holds the wired application components.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Store   taskstore.Store
	Tasks   *taskservice.Service
	Toolbox *agent.Toolbox

	// Model is nil when no credential is configured. Task CRUD works
	// without it; only the chat path needs it.
	Model    aisdk.ModelClient
	Executor *executor.Service

	closers []func() error
}

// New builds an App from the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	store, err := openStore(cfg.Storage, logger, a)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.Tasks = taskservice.New(store, logger)

	toolbox, err := tools.NewToolbox(a.Tasks, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build toolbox: %w", err)
	}
	a.Toolbox = toolbox

	if cfg.Model.APIKey != "" {
		client := oaiclient.NewClient(oaiclient.Config{
			APIKey:  cfg.Model.APIKey,
			BaseURL: cfg.Model.BaseURL,
			Logger:  logger,
		})
		a.Model = client.Model(cfg.Model.Name)
	}

	a.Executor = executor.NewService(executor.ServiceConfig{
		// Evaluated per model call so the injected date tracks the
		// clock, not the process start.
		SystemPrompt: func() string { return assistant.SystemPrompt(time.Now()) },
		MaxSteps:     cfg.Model.MaxSteps,
		Logger:       logger,
	})

	return a, nil
}

func openStore(cfg config.StorageConfig, logger *slog.Logger, a *App) (taskstore.Store, error) {
	switch cfg.Driver {
	case "file":
		return taskstore.NewFileStore(afero.NewOsFs(), cfg.Path, logger), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := taskstore.OpenSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case "memory":
		return taskstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases held resources.
func (a *App) Close() error {
	var firstErr error
	for _, close := range a.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
