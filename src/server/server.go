// Package server exposes the assistant and the task CRUD over HTTP.
// The chat endpoint streams newline-delimited JSON events; the task
// endpoints keep working when no model credential is configured.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/aisdk"
	"github.com/elee1766/taskdeck/src/executor"
	"github.com/elee1766/taskdeck/src/taskservice"
)

// Config holds the server's dependencies.
type Config struct {
	Host string
	Port int

	Tasks   *taskservice.Service
	Toolbox *agent.Toolbox

	// ModelClient may be nil when no credential is configured; the
	// chat endpoint then fails with 500 and everything else works.
	ModelClient aisdk.ModelClient
	Executor    *executor.Service

	Logger *slog.Logger
}

// Server is the taskdeck HTTP server.
type Server struct {
	httpServer *http.Server
	router     chi.Router

	tasks   *taskservice.Service
	toolbox *agent.Toolbox
	model   aisdk.ModelClient
	exec    *executor.Service

	logger *slog.Logger
}

// NewServer creates the server and mounts its routes.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		tasks:   cfg.Tasks,
		toolbox: cfg.Toolbox,
		model:   cfg.ModelClient,
		exec:    cfg.Executor,
		logger:  logger.With("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/chat", s.handleChat)

	r.Get("/api/tasks", s.handleListTasks)
	r.Post("/api/tasks", s.handleCreateTask)
	r.Post("/api/tasks/update", s.handleUpdateTask)
	r.Post("/api/tasks/delete", s.handleDeleteTask)

	s.router = r
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}

	return s
}

// Handler returns the mounted router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
