package taskstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and anywhere a
// throwaway backend is useful. It preserves insertion order.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []Task
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// GetAll implements Store.
func (s *MemoryStore) GetAll(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// GetByID implements Store.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, t)
	return nil
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			patch.apply(&s.tasks[i])
			updated := s.tasks[i]
			return &updated, nil
		}
	}
	return nil, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
