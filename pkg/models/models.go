package models

import "time"

// TimerState is the single persisted record describing the live work
// timer. At most one exists application-wide; every view reconstructs
// elapsed time from these timestamps rather than from any in-memory
// counter.
type TimerState struct {
	TaskID   string `json:"taskId"`
	Label    string `json:"label"`
	IsActive bool   `json:"isActive"`
	IsPaused bool   `json:"isPaused"`
	// StartTime is the unix-millisecond timestamp of the current run's start.
	StartTime int64 `json:"startTime"`
	// PauseTime marks when the open pause began; nil unless IsPaused.
	PauseTime *int64 `json:"pauseTime"`
	// TotalPausedDuration accumulates closed pause intervals, in seconds.
	// The currently-open pause interval, if any, is excluded.
	TotalPausedDuration int64 `json:"totalPausedDuration"`
}

// TimeSession is one closed, persisted record of tracked time for a
// single timer run. DurationSeconds is authoritative: after an edit it
// may disagree with EndTime-StartTime, and aggregation reads it alone.
type TimeSession struct {
	ID              string `json:"id"`
	TaskID          string `json:"taskId"`
	StartTime       int64  `json:"startTime"` // unix ms
	EndTime         int64  `json:"endTime"`   // unix ms
	DurationSeconds int64  `json:"durationSeconds"`
	Notes           string `json:"notes"`
}

// Task is the task/event record sessions attach to.
type Task struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	IsBillable   bool          `json:"isBillable"`
	BillableRate float64       `json:"billableRate"` // currency per hour
	Duration     int64         `json:"duration"`     // cached ledger total, seconds
	Sessions     []TimeSession `json:"sessions,omitempty"` // lazily loaded when needed
	CreatedAt    time.Time     `json:"createdAt"`
}
