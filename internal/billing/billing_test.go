package billing

import (
	"math"
	"testing"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TestTotalWithLiveTimer covers the ledger-plus-live aggregate: 7200s
// of logged time and 300s elapsed on an active timer for the same
// task.
func TestTotalWithLiveTimer(t *testing.T) {
	task := models.Task{
		ID:           "task-1",
		IsBillable:   true,
		BillableRate: 100,
		Duration:     7200,
	}
	live := models.TimerState{
		TaskID:    "task-1",
		IsActive:  true,
		StartTime: 0,
	}

	total := TotalTrackedSeconds(task, live, 300_000)
	if total != 7500 {
		t.Fatalf("expected 7500s total, got %d", total)
	}

	amount := BillableAmount(task, total)
	if math.Abs(amount-208.3333) > 0.001 {
		t.Errorf("expected ~208.33, got %f", amount)
	}
}

// TestLiveTimerForOtherTask verifies another task's timer contributes
// nothing.
func TestLiveTimerForOtherTask(t *testing.T) {
	task := models.Task{ID: "task-1", Duration: 1200}
	live := models.TimerState{TaskID: "task-2", IsActive: true, StartTime: 0}

	if total := TotalTrackedSeconds(task, live, 600_000); total != 1200 {
		t.Errorf("expected 1200s, got %d", total)
	}
}

// TestTotalWithoutLoadedSessions verifies the total comes from the
// duration cache, so listings that never load the session slice still
// report logged time.
func TestTotalWithoutLoadedSessions(t *testing.T) {
	task := models.Task{ID: "task-1", Duration: 7200, Sessions: nil}

	if total := TotalTrackedSeconds(task, models.TimerState{}, 600_000); total != 7200 {
		t.Errorf("expected the 7200s ledger total, got %d", total)
	}
}

// TestNonBillableAmount verifies non-billable tasks price at zero.
func TestNonBillableAmount(t *testing.T) {
	task := models.Task{ID: "task-1", BillableRate: 500}
	if amount := BillableAmount(task, 7200); amount != 0 {
		t.Errorf("expected 0 for non-billable task, got %f", amount)
	}
}

// TestFormatSeconds checks the H:MM:SS rendering.
func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{61, "0:01:01"},
		{3600, "1:00:00"},
		{7500, "2:05:00"},
		{-5, "0:00:00"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
