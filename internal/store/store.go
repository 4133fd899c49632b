// Package store persists tasks and their time sessions in SQLite. It
// is the concrete side of the task persistence collaborator: the
// ledger writes whole task-tracking records through it and never
// partial fields.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Store is a SQLite-backed task store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the task database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping task database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            label TEXT NOT NULL,
            is_billable INTEGER NOT NULL DEFAULT 0,
            billable_rate REAL NOT NULL DEFAULT 0,
            duration INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}

	_, err = s.db.Exec(`
        CREATE TABLE IF NOT EXISTS time_sessions (
            id TEXT PRIMARY KEY,
            task_id TEXT NOT NULL,
            start_time INTEGER NOT NULL,
            end_time INTEGER NOT NULL,
            duration INTEGER NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            FOREIGN KEY(task_id) REFERENCES tasks(id)
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create time_sessions table: %w", err)
	}
	return nil
}

// CreateTask inserts a new task record.
func (s *Store) CreateTask(task models.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
        INSERT INTO tasks (id, label, is_billable, billable_rate, duration, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, task.ID, task.Label, task.IsBillable, task.BillableRate, task.Duration, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// GetTask loads a task with its full session ledger, ordered by start
// time.
func (s *Store) GetTask(id string) (models.Task, error) {
	task, err := s.scanTask(s.db.QueryRow(`
        SELECT id, label, is_billable, billable_rate, duration, created_at
        FROM tasks WHERE id = ?
    `, id))
	if err != nil {
		return models.Task{}, err
	}

	sessions, err := s.SessionsForTask(id)
	if err != nil {
		return models.Task{}, err
	}
	task.Sessions = sessions
	return task, nil
}

// FindTask resolves id-or-label to a task without loading sessions.
func (s *Store) FindTask(idOrLabel string) (models.Task, error) {
	return s.scanTask(s.db.QueryRow(`
        SELECT id, label, is_billable, billable_rate, duration, created_at
        FROM tasks WHERE id = ? OR label = ?
        LIMIT 1
    `, idOrLabel, idOrLabel))
}

// ListTasks returns all tasks, most recently created first, without
// loading sessions.
func (s *Store) ListTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
        SELECT id, label, is_billable, billable_rate, duration, created_at
        FROM tasks ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Label, &task.IsBillable,
			&task.BillableRate, &task.Duration, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Label, &task.IsBillable,
		&task.BillableRate, &task.Duration, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("failed to load task: %w", err)
	}
	return task, nil
}

// SessionsForTask returns the task's ledger ordered by start time.
func (s *Store) SessionsForTask(taskID string) ([]models.TimeSession, error) {
	rows, err := s.db.Query(`
        SELECT id, task_id, start_time, end_time, duration, notes
        FROM time_sessions WHERE task_id = ?
        ORDER BY start_time ASC
    `, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.TimeSession
	for rows.Next() {
		var sess models.TimeSession
		if err := rows.Scan(&sess.ID, &sess.TaskID, &sess.StartTime,
			&sess.EndTime, &sess.DurationSeconds, &sess.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetSession loads one ledger entry by id.
func (s *Store) GetSession(id string) (models.TimeSession, error) {
	var sess models.TimeSession
	err := s.db.QueryRow(`
        SELECT id, task_id, start_time, end_time, duration, notes
        FROM time_sessions WHERE id = ?
    `, id).Scan(&sess.ID, &sess.TaskID, &sess.StartTime,
		&sess.EndTime, &sess.DurationSeconds, &sess.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimeSession{}, ErrSessionNotFound
		}
		return models.TimeSession{}, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// AppendSession adds a closed session to a task's ledger.
func (s *Store) AppendSession(sess models.TimeSession) error {
	_, err := s.db.Exec(`
        INSERT INTO time_sessions (id, task_id, start_time, end_time, duration, notes)
        VALUES (?, ?, ?, ?, ?, ?)
    `, sess.ID, sess.TaskID, sess.StartTime, sess.EndTime, sess.DurationSeconds, sess.Notes)
	if err != nil {
		return fmt.Errorf("failed to append session: %w", err)
	}
	return nil
}

// UpdateSession replaces a ledger entry in place.
func (s *Store) UpdateSession(sess models.TimeSession) error {
	res, err := s.db.Exec(`
        UPDATE time_sessions
        SET start_time = ?, end_time = ?, duration = ?, notes = ?
        WHERE id = ?
    `, sess.StartTime, sess.EndTime, sess.DurationSeconds, sess.Notes, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes a ledger entry.
func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec(`DELETE FROM time_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SetTaskDuration writes the cached ledger total for a task.
func (s *Store) SetTaskDuration(taskID string, seconds int64) error {
	res, err := s.db.Exec(`UPDATE tasks SET duration = ? WHERE id = ?`, seconds, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task duration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
