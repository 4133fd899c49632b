// Package journal keeps an append-only JSONL record of every logged
// session, one file per month. The journal is the analytics surface:
// reports read it back with DuckDB's read_json, so entries snapshot
// the billing fields that were in force when the session was logged.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// Entry is one journal line.
type Entry struct {
	SessionID       string  `json:"sessionId"`
	TaskID          string  `json:"taskId"`
	Label           string  `json:"label"`
	StartTime       int64   `json:"startTime"` // unix ms
	EndTime         int64   `json:"endTime"`   // unix ms
	DurationSeconds int64   `json:"durationSeconds"`
	Notes           string  `json:"notes"`
	IsBillable      bool    `json:"isBillable"`
	BillableRate    float64 `json:"billableRate"`
	LoggedAt        string  `json:"loggedAt"` // RFC3339
}

// Journal appends entries under a directory.
type Journal struct {
	mu  sync.Mutex
	dir string
}

// New creates a journal writing under dir.
func New(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return &Journal{dir: dir}, nil
}

// Glob returns the pattern matching every journal file, for read_json.
func (j *Journal) Glob() string {
	return filepath.Join(j.dir, "sessions-*.jsonl")
}

// Append writes one entry to the monthly file for the session's end
// time.
func (j *Journal) Append(sess models.TimeSession, task models.Task) error {
	entry := Entry{
		SessionID:       sess.ID,
		TaskID:          sess.TaskID,
		Label:           task.Label,
		StartTime:       sess.StartTime,
		EndTime:         sess.EndTime,
		DurationSeconds: sess.DurationSeconds,
		Notes:           sess.Notes,
		IsBillable:      task.IsBillable,
		BillableRate:    task.BillableRate,
		LoggedAt:        time.Now().Format(time.RFC3339),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	month := time.UnixMilli(sess.EndTime).Format("2006-01")
	path := filepath.Join(j.dir, fmt.Sprintf("sessions-%s.jsonl", month))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}
