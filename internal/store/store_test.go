package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedTask(t *testing.T, s *Store) models.Task {
	t.Helper()
	task := models.Task{
		ID:           "task-1",
		Label:        "Quarterly close",
		IsBillable:   true,
		BillableRate: 100,
		CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

// TestTaskRoundTrip verifies a created task loads back with its
// billing fields intact.
func TestTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s)

	got, err := s.GetTask("task-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Label != "Quarterly close" || !got.IsBillable || got.BillableRate != 100 {
		t.Errorf("task fields lost in round trip: %+v", got)
	}
	if len(got.Sessions) != 0 {
		t.Errorf("new task should have an empty ledger, got %d entries", len(got.Sessions))
	}
}

// TestGetTaskNotFound verifies the sentinel for unknown ids.
func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetTask("nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

// TestFindTaskByLabel verifies id-or-label resolution.
func TestFindTaskByLabel(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s)

	got, err := s.FindTask("Quarterly close")
	if err != nil {
		t.Fatalf("find by label failed: %v", err)
	}
	if got.ID != "task-1" {
		t.Errorf("expected task-1, got %q", got.ID)
	}
}

// TestSessionLedgerLifecycle appends, edits, and deletes ledger
// entries, checking neighbours stay untouched.
func TestSessionLedgerLifecycle(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s)

	first := models.TimeSession{
		ID: "sess-1", TaskID: "task-1",
		StartTime: 1000, EndTime: 61_000, DurationSeconds: 60, Notes: "first",
	}
	second := models.TimeSession{
		ID: "sess-2", TaskID: "task-1",
		StartTime: 100_000, EndTime: 400_000, DurationSeconds: 300, Notes: "second",
	}
	for _, sess := range []models.TimeSession{first, second} {
		if err := s.AppendSession(sess); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	first.DurationSeconds = 120
	first.Notes = "edited"
	if err := s.UpdateSession(first); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := s.GetSession("sess-1")
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if got.DurationSeconds != 120 || got.Notes != "edited" {
		t.Errorf("edit not persisted: %+v", got)
	}
	if got.StartTime != 1000 || got.EndTime != 61_000 {
		t.Errorf("edit disturbed timestamps: %+v", got)
	}

	if err := s.DeleteSession("sess-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	sessions, err := s.SessionsForTask("task-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "sess-2" {
		t.Fatalf("expected only sess-2 to remain, got %+v", sessions)
	}
	if sessions[0].DurationSeconds != 300 {
		t.Errorf("neighbour duration disturbed: %d", sessions[0].DurationSeconds)
	}
}

// TestUpdateDeleteUnknownSession verifies sentinels on missing ids.
func TestUpdateDeleteUnknownSession(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateSession(models.TimeSession{ID: "nope"}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("update: expected ErrSessionNotFound, got %v", err)
	}
	if err := s.DeleteSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("delete: expected ErrSessionNotFound, got %v", err)
	}
}

// TestSetTaskDuration verifies the cached total write.
func TestSetTaskDuration(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s)

	if err := s.SetTaskDuration("task-1", 7200); err != nil {
		t.Fatalf("set duration failed: %v", err)
	}
	got, _ := s.GetTask("task-1")
	if got.Duration != 7200 {
		t.Errorf("expected cached duration 7200, got %d", got.Duration)
	}

	if err := s.SetTaskDuration("nope", 1); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

// TestListTasksScanError verifies a malformed row surfaces as an error
// instead of silently vanishing from the listing.
func TestListTasksScanError(t *testing.T) {
	s := newTestStore(t)
	seedTask(t, s)

	// Type affinity lets sqlite keep text in the INTEGER column; the
	// scan into int64 must then fail.
	if _, err := s.db.Exec(`
        INSERT INTO tasks (id, label, is_billable, billable_rate, duration, created_at)
        VALUES ('task-bad', 'Broken', 0, 0, 'garbage', ?)
    `, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("failed to seed malformed row: %v", err)
	}

	if _, err := s.ListTasks(); err == nil {
		t.Fatal("expected an error for the malformed row, got none")
	}
}

// TestSessionsForTaskScanError verifies malformed ledger rows surface
// as errors rather than dropping sessions from the total.
func TestSessionsForTaskScanError(t *testing.T) {
	s := newTestStore(t)
	task := seedTask(t, s)

	if _, err := s.db.Exec(`
        INSERT INTO time_sessions (id, task_id, start_time, end_time, duration, notes)
        VALUES ('sess-bad', ?, 0, 1000, 'garbage', '')
    `, task.ID); err != nil {
		t.Fatalf("failed to seed malformed row: %v", err)
	}

	if _, err := s.SessionsForTask(task.ID); err == nil {
		t.Fatal("expected an error for the malformed row, got none")
	}
}
