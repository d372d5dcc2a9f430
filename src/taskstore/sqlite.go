package taskstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	status     TEXT NOT NULL,
	priority   TEXT NOT NULL,
	due_date   TEXT,
	created_at TEXT NOT NULL
)`

// SQLiteStore is an embedded-database alternative to FileStore behind
// the same Store contract. Insertion order is preserved via rowid.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// taskRow is the database projection of Task. Dates are stored as
// RFC 3339 strings so the on-disk representation matches the JSON one.
type taskRow struct {
	ID        string  `db:"id"`
	Title     string  `db:"title"`
	Status    string  `db:"status"`
	Priority  string  `db:"priority"`
	DueDate   *string `db:"due_date"`
	CreatedAt string  `db:"created_at"`
}

func (r taskRow) toTask() (Task, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("invalid created_at for task %s: %w", r.ID, err)
	}
	t := Task{
		ID:        r.ID,
		Title:     r.Title,
		Status:    Status(r.Status),
		Priority:  Priority(r.Priority),
		CreatedAt: createdAt,
	}
	if r.DueDate != nil {
		due, err := time.Parse(time.RFC3339Nano, *r.DueDate)
		if err != nil {
			return Task{}, fmt.Errorf("invalid due_date for task %s: %w", r.ID, err)
		}
		t.DueDate = &due
	}
	return t, nil
}

// OpenSQLiteStore opens (and initializes if needed) a SQLite-backed
// store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize task schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetAll implements Store.
func (s *SQLiteStore) GetAll(ctx context.Context) ([]Task, error) {
	var rows []taskRow
	query := `SELECT id, title, status, priority, due_date, created_at FROM tasks ORDER BY rowid`
	if err := sqlscan.Select(ctx, s.db, &rows, query); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GetByID implements Store.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*Task, error) {
	var row taskRow
	query := `SELECT id, title, status, priority, due_date, created_at FROM tasks WHERE id = ?`
	err := sqlscan.Get(ctx, s.db, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t, err := row.toTask()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements Store.
func (s *SQLiteStore) Create(ctx context.Context, t Task) error {
	var due *string
	if t.DueDate != nil {
		d := t.DueDate.Format(time.RFC3339Nano)
		due = &d
	}
	query := `INSERT INTO tasks (id, title, status, priority, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Title, string(t.Status), string(t.Priority), due,
		t.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// Update implements Store.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch Patch) (*Task, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	patch.apply(current)

	var due *string
	if current.DueDate != nil {
		d := current.DueDate.Format(time.RFC3339Nano)
		due = &d
	}
	query := `UPDATE tasks SET title = ?, status = ?, priority = ?, due_date = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query,
		current.Title, string(current.Status), string(current.Priority), due, id); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
