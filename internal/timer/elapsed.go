package timer

import "github.com/tas-github/ogeemo-timekeeper/pkg/models"

// ElapsedSeconds computes the live active duration of a timer run from
// the persisted record and a wall-clock snapshot in unix milliseconds.
// Paused intervals are excluded: closed ones through
// TotalPausedDuration, the currently-open one from PauseTime. The
// result is clamped at zero to guard against clock skew or a record
// read mid-mutation.
func ElapsedSeconds(state models.TimerState, nowMillis int64) int64 {
	if !state.IsActive {
		return 0
	}
	// Stay in milliseconds until the end: truncating the run and the
	// open pause separately would let the result wobble by a second
	// while paused, depending on the millisecond phase of the read.
	raw := nowMillis - state.StartTime
	paused := state.TotalPausedDuration * 1000
	if state.IsPaused && state.PauseTime != nil {
		paused += nowMillis - *state.PauseTime
	}
	elapsed := (raw - paused) / 1000
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
