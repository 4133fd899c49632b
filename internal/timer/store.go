package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tas-github/ogeemo-timekeeper/internal/broadcast"
	"github.com/tas-github/ogeemo-timekeeper/internal/clock"
	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

const recordFile = "timer-state.json"

// Store owns the persisted timer record. All mutation paths funnel
// through it: transitions are read/modify/write under a mutex, written
// as one atomic record, and broadcast only after the write completes
// so a racing poll can never observe a state that was not persisted.
type Store struct {
	mu    sync.Mutex
	path  string
	clock clock.Clock
	bus   *broadcast.Bus
}

// NewStore creates a store persisting under dataDir. bus may be nil
// for callers that do not fan changes out.
func NewStore(dataDir string, clk clock.Clock, bus *broadcast.Bus) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		path:  filepath.Join(dataDir, recordFile),
		clock: clk,
		bus:   bus,
	}, nil
}

// Read returns the current timer state. A missing or unparseable
// record reads as the inactive state; corruption is recovered here,
// never surfaced to a view.
func (s *Store) Read() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		if errors.Is(err, ErrCorruptRecord) {
			return models.TimerState{}, nil
		}
		return models.TimerState{}, err
	}
	return state, nil
}

// Start begins a timer run for a task. If a different task's timer is
// already active it refuses with ErrTimerConflict and returns the
// conflicting state; starting the already-active task returns the
// current state unchanged instead of resetting its start time.
func (s *Store) Start(taskID, label string) (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, _ := s.load()
	if cur.IsActive {
		if cur.TaskID != taskID {
			return cur, ErrTimerConflict
		}
		return cur, nil
	}

	state := models.TimerState{
		TaskID:    taskID,
		Label:     label,
		IsActive:  true,
		StartTime: s.clock.NowMillis(),
	}
	if err := s.save(state); err != nil {
		return models.TimerState{}, err
	}
	s.publish(state)
	return state, nil
}

// Pause opens a pause interval. A no-op unless the timer is active and
// running; pausing twice in a row has the effect of pausing once.
func (s *Store) Pause() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, _ := s.load()
	if !cur.IsActive || cur.IsPaused {
		return cur, nil
	}

	now := s.clock.NowMillis()
	cur.IsPaused = true
	cur.PauseTime = &now
	if err := s.save(cur); err != nil {
		return models.TimerState{}, err
	}
	s.publish(cur)
	return cur, nil
}

// Resume closes the open pause interval, folding it into
// TotalPausedDuration. A no-op unless the timer is active and paused.
func (s *Store) Resume() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, _ := s.load()
	if !cur.IsActive || !cur.IsPaused {
		return cur, nil
	}

	now := s.clock.NowMillis()
	if cur.PauseTime != nil {
		cur.TotalPausedDuration += (now - *cur.PauseTime) / 1000
	}
	cur.IsPaused = false
	cur.PauseTime = nil
	if err := s.save(cur); err != nil {
		return models.TimerState{}, err
	}
	s.publish(cur)
	return cur, nil
}

// Clear removes the persisted record entirely, used after logging or
// discarding a run. Clearing an absent record is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear timer record: %w", err)
	}
	s.publish(models.TimerState{})
	return nil
}

func (s *Store) load() (models.TimerState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.TimerState{}, nil
		}
		return models.TimerState{}, fmt.Errorf("failed to read timer record: %w", err)
	}

	var state models.TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.TimerState{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	// A record violating its own invariants reads as corrupt too.
	if state.IsPaused && (!state.IsActive || state.PauseTime == nil) {
		return models.TimerState{}, fmt.Errorf("%w: inconsistent pause fields", ErrCorruptRecord)
	}
	return state, nil
}

// save writes the whole record atomically: temp file in the same
// directory, then rename. Readers only ever see a complete record.
func (s *Store) save(state models.TimerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timer record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), recordFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write timer record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close timer record: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace timer record: %w", err)
	}
	return nil
}

func (s *Store) publish(state models.TimerState) {
	if s.bus != nil {
		s.bus.Publish(state)
	}
}
