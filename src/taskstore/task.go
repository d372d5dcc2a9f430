// Package taskstore defines the task model and the storage backends that
// persist it. All backends implement the same Store interface so the
// service and tool layers can be tested against an in-memory fake.
package taskstore

import (
	"context"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Priority is the scheduling priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single task record. ID and CreatedAt are assigned once at
// creation and never change. DueDate and Priority may be absent in
// persisted data written by older builds; readers must tolerate that.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	Priority  Priority   `json:"priority,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Patch describes a partial update. Nil fields are left unchanged.
// ID and CreatedAt are immutable and deliberately not representable.
type Patch struct {
	Title    *string
	Status   *Status
	Priority *Priority
	DueDate  *time.Time
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Status == nil && p.Priority == nil && p.DueDate == nil
}

// Store persists task records keyed by id.
//
// Not-found is not an error: GetByID and Update return a nil task, and
// Delete returns false. Errors are reserved for backend I/O failures.
type Store interface {
	// GetAll returns every task in stored (insertion) order.
	GetAll(ctx context.Context) ([]Task, error)

	// GetByID returns the task with the given id, or nil if absent.
	GetByID(ctx context.Context, id string) (*Task, error)

	// Create persists a fully formed task record.
	Create(ctx context.Context, t Task) error

	// Update merges the patch into the task with the given id and
	// returns the updated record, or nil if no such task exists.
	Update(ctx context.Context, id string, patch Patch) (*Task, error)

	// Delete removes the task with the given id. It returns true iff a
	// record existed and was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// apply merges a patch into t in place.
func (p Patch) apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}
