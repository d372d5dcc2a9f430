// Package taskservice is the validation and normalization boundary in
// front of the task store. It assigns ids and creation timestamps,
// applies the default priority, and keeps enum fields inside their
// allowed values on every write.
package taskservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/elee1766/taskdeck/src/taskstore"
)

// ErrInvalidInput marks a validation failure on a boundary DTO.
// Callers branch on it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Title    string             `json:"title" validate:"required"`
	DueDate  *time.Time         `json:"dueDate,omitempty"`
	Priority taskstore.Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskInput is the payload for a partial update. Nil fields mean
// "no change". ID and CreatedAt are not updatable and have no fields
// here; callers that try to smuggle them in simply cannot.
type UpdateTaskInput struct {
	Title    *string             `json:"title,omitempty" validate:"omitempty,min=1"`
	Status   *taskstore.Status   `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	Priority *taskstore.Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate  *time.Time          `json:"dueDate,omitempty"`
}

// Service wraps a Store with input validation and normalization.
type Service struct {
	store    taskstore.Store
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Service over the given store.
func New(store taskstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		validate: validator.New(),
		logger:   logger.With("component", "taskservice"),
		now:      time.Now,
	}
}

// List returns all tasks in stored order.
func (s *Service) List(ctx context.Context) ([]taskstore.Task, error) {
	return s.store.GetAll(ctx)
}

// Get returns the task with the given id, or nil if absent.
func (s *Service) Get(ctx context.Context, id string) (*taskstore.Task, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates the input, fills in id, creation time, initial
// status and default priority, and persists the new task.
func (s *Service) Create(ctx context.Context, in CreateTaskInput) (*taskstore.Task, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	priority := in.Priority
	if priority == "" {
		priority = taskstore.PriorityMedium
	}

	task := taskstore.Task{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Status:    taskstore.StatusPending,
		Priority:  priority,
		DueDate:   in.DueDate,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", "id", task.ID, "title", task.Title, "priority", task.Priority)
	return &task, nil
}

// Update merges the provided fields into the task with the given id.
// It returns nil when no such task exists.
func (s *Service) Update(ctx context.Context, id string, in UpdateTaskInput) (*taskstore.Task, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.store.Update(ctx, id, taskstore.Patch{
		Title:    in.Title,
		Status:   in.Status,
		Priority: in.Priority,
		DueDate:  in.DueDate,
	})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.logger.Info("task updated", "id", id)
	}
	return updated, nil
}

// ParseDueDate accepts a bare ISO date or a full RFC 3339 timestamp.
func ParseDueDate(s string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due date %q: expected an ISO date like 2026-02-13", s)
}

// Delete removes the task with the given id. It returns true iff a
// record existed; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("task deleted", "id", id)
	}
	return ok, nil
}
