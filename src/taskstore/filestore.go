package taskstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileStore persists the whole task collection as a single JSON array,
// pretty-printed with 2-space indent. The file is created as an empty
// array if absent.
//
// Every write is a read-modify-write of the entire collection guarded
// by an in-process mutex. Concurrent writers in separate processes race
// and the later write wins; that is an accepted limitation of this
// single-user store, not something FileStore tries to detect.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore writing to path on fs.
func NewFileStore(fs afero.Fs, path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		fs:     fs,
		path:   path,
		logger: logger.With("component", "filestore"),
	}
}

// GetAll implements Store.
func (s *FileStore) GetAll(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTasks(), nil
}

// GetByID implements Store.
func (s *FileStore) GetByID(ctx context.Context, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.readTasks() {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

// Create implements Store.
func (s *FileStore) Create(ctx context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.readTasks()
	return s.writeTasks(append(tasks, t))
}

// Update implements Store.
func (s *FileStore) Update(ctx context.Context, id string, patch Patch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.readTasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		patch.apply(&tasks[i])
		if err := s.writeTasks(tasks); err != nil {
			return nil, err
		}
		updated := tasks[i]
		return &updated, nil
	}
	return nil, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.readTasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := s.writeTasks(kept); err != nil {
		return false, err
	}
	return true, nil
}

// readTasks loads the collection. Reads fail closed: unreadable or
// corrupt state is logged and degrades to an empty list instead of
// propagating to callers.
func (s *FileStore) readTasks() []Task {
	if err := s.ensureDataFile(); err != nil {
		s.logger.Error("failed to initialize task file", "path", s.path, "error", err)
		return []Task{}
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		s.logger.Error("failed to read tasks", "path", s.path, "error", err)
		return []Task{}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Error("corrupt task file, treating as empty", "path", s.path, "error", err)
		return []Task{}
	}
	return tasks
}

// writeTasks replaces the collection atomically: the new contents are
// written to a temp file and renamed over the old one, so a failed
// write leaves the prior state intact.
func (s *FileStore) writeTasks(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		s.logger.Error("failed to write tasks", "path", tmp, "error", err)
		return fmt.Errorf("failed to write tasks: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		s.logger.Error("failed to replace task file", "path", s.path, "error", err)
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}

// ensureDataFile creates the data directory and an empty collection if
// they do not exist yet.
func (s *FileStore) ensureDataFile() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if _, err := s.fs.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		return afero.WriteFile(s.fs, s.path, []byte("[]"), 0644)
	}
	return nil
}
