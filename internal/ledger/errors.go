package ledger

import "errors"

var (
	ErrNoActiveTimer   = errors.New("no active timer to log")
	ErrInvalidDuration = errors.New("session duration must be positive")
)
