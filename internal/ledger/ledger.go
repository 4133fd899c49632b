// Package ledger is the mutation funnel for time sessions: committing
// the live timer into a closed session, post-hoc edits and deletes,
// and the task switch that closes one run before opening the next.
// Every mutation recomputes the owning task's cached duration from the
// session sum, so the cache can never drift from the ledger.
package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tas-github/ogeemo-timekeeper/internal/clock"
	"github.com/tas-github/ogeemo-timekeeper/internal/journal"
	"github.com/tas-github/ogeemo-timekeeper/internal/timer"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TaskStore is the slice of task persistence the ledger needs.
type TaskStore interface {
	GetTask(id string) (models.Task, error)
	SessionsForTask(taskID string) ([]models.TimeSession, error)
	GetSession(id string) (models.TimeSession, error)
	AppendSession(sess models.TimeSession) error
	UpdateSession(sess models.TimeSession) error
	DeleteSession(id string) error
	SetTaskDuration(taskID string, seconds int64) error
}

// Ledger mutates a task's session history.
type Ledger struct {
	tasks   TaskStore
	timer   *timer.Store
	journal *journal.Journal
	clock   clock.Clock
}

// New wires a ledger. journal may be nil when no analytics journal is
// kept.
func New(tasks TaskStore, timerStore *timer.Store, jnl *journal.Journal, clk clock.Clock) *Ledger {
	return &Ledger{tasks: tasks, timer: timerStore, journal: jnl, clock: clk}
}

// StartTimer begins timing a task. With switchTasks set, a different
// task's active timer is committed to its ledger first (or discarded
// when nothing has elapsed) instead of being silently overwritten;
// without it the conflict surfaces as timer.ErrTimerConflict.
func (l *Ledger) StartTimer(taskID string, switchTasks bool) (models.TimerState, error) {
	task, err := l.tasks.GetTask(taskID)
	if err != nil {
		return models.TimerState{}, err
	}

	if switchTasks {
		cur, err := l.timer.Read()
		if err != nil {
			return models.TimerState{}, err
		}
		if cur.IsActive && cur.TaskID != taskID {
			if timer.ElapsedSeconds(cur, l.clock.NowMillis()) > 0 {
				// A session that committed with only its journal copy
				// failing must not block the switch; the ledger entry
				// exists and the timer is already cleared.
				if sess, err := l.LogCurrentSession("switched task"); err != nil && sess.ID == "" {
					return models.TimerState{}, fmt.Errorf("failed to log previous timer: %w", err)
				}
			} else if err := l.timer.Clear(); err != nil {
				return models.TimerState{}, err
			}
		}
	}

	return l.timer.Start(task.ID, task.Label)
}

// LogCurrentSession commits the live timer to the ledger: builds a
// session from the persisted record, appends it to the owning task,
// and clears the timer. Fails with ErrNoActiveTimer when nothing is
// running or nothing has elapsed.
func (l *Ledger) LogCurrentSession(notes string) (models.TimeSession, error) {
	state, err := l.timer.Read()
	if err != nil {
		return models.TimeSession{}, err
	}
	if !state.IsActive {
		return models.TimeSession{}, ErrNoActiveTimer
	}

	now := l.clock.NowMillis()
	elapsed := timer.ElapsedSeconds(state, now)
	if elapsed <= 0 {
		return models.TimeSession{}, ErrNoActiveTimer
	}

	sess := models.TimeSession{
		ID:              uuid.New().String(),
		TaskID:          state.TaskID,
		StartTime:       state.StartTime,
		EndTime:         now,
		DurationSeconds: elapsed,
		Notes:           notes,
	}
	if err := l.tasks.AppendSession(sess); err != nil {
		return models.TimeSession{}, err
	}
	if err := l.refreshDuration(state.TaskID); err != nil {
		return models.TimeSession{}, err
	}
	if err := l.timer.Clear(); err != nil {
		return models.TimeSession{}, err
	}

	if l.journal != nil {
		task, err := l.tasks.GetTask(state.TaskID)
		if err != nil {
			return sess, fmt.Errorf("session logged, journal skipped: %w", err)
		}
		if err := l.journal.Append(sess, task); err != nil {
			return sess, fmt.Errorf("session logged, journal append failed: %w", err)
		}
	}
	return sess, nil
}

// DiscardTimer clears the live timer without logging, losing its
// elapsed time.
func (l *Ledger) DiscardTimer() error {
	return l.timer.Clear()
}

// EditSession replaces a ledger entry's duration and notes in place.
// Duration becomes hours*3600+minutes*60 and must be positive; id,
// start and end timestamps are preserved.
func (l *Ledger) EditSession(id string, hours, minutes int, notes string) (models.TimeSession, error) {
	duration := int64(hours)*3600 + int64(minutes)*60
	if duration <= 0 {
		return models.TimeSession{}, ErrInvalidDuration
	}

	sess, err := l.tasks.GetSession(id)
	if err != nil {
		return models.TimeSession{}, err
	}
	sess.DurationSeconds = duration
	sess.Notes = notes
	if err := l.tasks.UpdateSession(sess); err != nil {
		return models.TimeSession{}, err
	}
	if err := l.refreshDuration(sess.TaskID); err != nil {
		return models.TimeSession{}, err
	}
	return sess, nil
}

// DeleteSession removes a ledger entry. Confirmation is a caller
// concern.
func (l *Ledger) DeleteSession(id string) error {
	sess, err := l.tasks.GetSession(id)
	if err != nil {
		return err
	}
	if err := l.tasks.DeleteSession(id); err != nil {
		return err
	}
	return l.refreshDuration(sess.TaskID)
}

func (l *Ledger) refreshDuration(taskID string) error {
	sessions, err := l.tasks.SessionsForTask(taskID)
	if err != nil {
		return err
	}
	var total int64
	for _, sess := range sessions {
		total += sess.DurationSeconds
	}
	return l.tasks.SetTaskDuration(taskID, total)
}
