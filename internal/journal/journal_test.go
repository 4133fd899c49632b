package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TestAppendWritesMonthlyFile verifies entries land in the file for
// the session's end month, one valid JSON object per line.
func TestAppendWritesMonthlyFile(t *testing.T) {
	dir := t.TempDir()
	j, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}

	end := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)
	task := models.Task{ID: "task-1", Label: "Quarterly close", IsBillable: true, BillableRate: 100}
	for i := 0; i < 2; i++ {
		sess := models.TimeSession{
			ID:              "sess-" + string(rune('a'+i)),
			TaskID:          task.ID,
			StartTime:       end.Add(-time.Hour).UnixMilli(),
			EndTime:         end.UnixMilli(),
			DurationSeconds: 3600,
			Notes:           "work",
		}
		if err := j.Append(sess, task); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	path := filepath.Join(dir, "sessions-2025-06.jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("monthly file missing: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("invalid journal line: %v", err)
		}
		if entry.TaskID != "task-1" || entry.BillableRate != 100 {
			t.Errorf("entry lost fields: %+v", entry)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("expected 2 journal lines, got %d", lines)
	}
}

// TestGlobMatchesJournalFiles verifies the glob covers monthly files.
func TestGlobMatchesJournalFiles(t *testing.T) {
	dir := t.TempDir()
	j, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}

	sess := models.TimeSession{
		ID: "sess-1", TaskID: "task-1",
		EndTime: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), DurationSeconds: 60,
	}
	if err := j.Append(sess, models.Task{ID: "task-1"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	matches, err := filepath.Glob(j.Glob())
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 journal file, got %v", matches)
	}
}
