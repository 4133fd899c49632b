package clock

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time. All elapsed-time arithmetic runs on
// millisecond snapshots taken through this interface so tests can
// substitute a manual clock.
type Clock interface {
	Now() time.Time
	NowMillis() int64
}

type systemClock struct{}

func (systemClock) Now() time.Time   { return time.Now() }
func (systemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// Manual is a clock advanced by hand, for deterministic tests.
type Manual struct {
	mu sync.Mutex
	ms int64
}

// NewManual creates a manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{ms: t.UnixMilli()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.UnixMilli(m.ms)
}

func (m *Manual) NowMillis() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ms
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.ms += d.Milliseconds()
	m.mu.Unlock()
}
