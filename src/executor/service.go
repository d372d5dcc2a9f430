// Package executor drives assistant turns: it streams model responses,
// dispatches the tool calls they request, feeds the results back, and
// repeats until the model answers in plain text or the step bound is
// reached.
package executor

import (
	"log/slog"
)

// DefaultMaxSteps bounds the number of model round trips within a
// single user turn.
const DefaultMaxSteps = 5

// Service handles turn execution.
type Service struct {
	logger       *slog.Logger
	systemPrompt func() string
	maxSteps     int
}

// ServiceConfig holds configuration for creating a new Service
type ServiceConfig struct {
	// SystemPrompt is evaluated on every model call, so prompts that
	// embed the current date stay fresh in a long-lived process.
	SystemPrompt func() string
	MaxSteps     int
	Logger       *slog.Logger
}

// NewService creates a new turn execution service
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultMaxSteps
	}

	return &Service{
		logger:       config.Logger.With("component", "executor"),
		systemPrompt: config.SystemPrompt,
		maxSteps:     config.MaxSteps,
	}
}

// MaxSteps returns the configured step bound.
func (s *Service) MaxSteps() int {
	return s.maxSteps
}
