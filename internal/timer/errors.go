package timer

import "errors"

var (
	// ErrTimerConflict is returned by Start when a different task's
	// timer is already active and the caller did not ask to switch.
	ErrTimerConflict = errors.New("a timer is already active for another task")

	// ErrCorruptRecord marks a persisted record that could not be
	// parsed. Read recovers from it by reporting no active timer; the
	// next successful write overwrites the corrupt record.
	ErrCorruptRecord = errors.New("corrupt timer record")
)
