// Package billing derives totals from the session ledger and the live
// timer. Nothing here is persisted; callers recompute on every render
// tick, and only the ledger and the task's duration cache ever hit
// storage.
package billing

import (
	"fmt"

	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TotalTrackedSeconds adds the live elapsed time, when the active
// timer belongs to this task, to the task's ledger total. The duration
// cache is recomputed on every ledger mutation, so it is the ledger
// sum whether or not Sessions happens to be loaded.
func TotalTrackedSeconds(task models.Task, live models.TimerState, nowMillis int64) int64 {
	total := task.Duration
	if live.IsActive && live.TaskID == task.ID {
		total += timer.ElapsedSeconds(live, nowMillis)
	}
	return total
}

// BillableAmount prices tracked time at the task's hourly rate; zero
// for non-billable tasks.
func BillableAmount(task models.Task, totalSeconds int64) float64 {
	if !task.IsBillable {
		return 0
	}
	return float64(totalSeconds) / 3600 * task.BillableRate
}

// FormatSeconds renders a second count as H:MM:SS.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
