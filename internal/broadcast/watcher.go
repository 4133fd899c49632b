package broadcast

import (
	"context"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// StateReader re-reads the persisted timer record. Reads that fail are
// expected to come back as the inactive state, never as an error a
// view would have to handle.
type StateReader interface {
	Read() (models.TimerState, error)
}

// Watcher is the polling fallback of the synchronization channel: it
// re-reads the persisted record on an interval and publishes when the
// record has changed since the last poll. Views in a process that did
// not perform a mutation converge through it, including mutations made
// by a different process sharing the same record.
type Watcher struct {
	reader   StateReader
	bus      *Bus
	interval time.Duration
	last     models.TimerState
	primed   bool
}

// NewWatcher creates a watcher polling reader every interval.
func NewWatcher(reader StateReader, bus *Bus, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{reader: reader, bus: bus, interval: interval}
}

// Run polls until ctx is cancelled. The first successful read is
// always published so late-mounting views see the current state.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	state, err := w.reader.Read()
	if err != nil {
		return
	}
	if w.primed && statesEqual(state, w.last) {
		return
	}
	w.last = state
	w.primed = true
	w.bus.Publish(state)
}

func statesEqual(a, b models.TimerState) bool {
	if a.TaskID != b.TaskID || a.Label != b.Label ||
		a.IsActive != b.IsActive || a.IsPaused != b.IsPaused ||
		a.StartTime != b.StartTime || a.TotalPausedDuration != b.TotalPausedDuration {
		return false
	}
	if (a.PauseTime == nil) != (b.PauseTime == nil) {
		return false
	}
	if a.PauseTime != nil && *a.PauseTime != *b.PauseTime {
		return false
	}
	return true
}
