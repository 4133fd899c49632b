package broadcast

import (
	"sync"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// Bus fans timer-state snapshots out to every subscribed view. Sends
// never block: a subscriber that has fallen behind keeps only the most
// recent snapshot, which is safe because every snapshot is a complete
// state and the persisted record stays the source of truth.
type Bus struct {
	mu        sync.RWMutex
	subs      map[int]chan models.TimerState
	nextID    int
	closed    bool
	closeOnce sync.Once
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan models.TimerState)}
}

// Subscribe registers a new view. The returned cancel function must be
// called when the view unmounts; it drains nothing and closes nothing
// the caller still holds.
func (b *Bus) Subscribe() (<-chan models.TimerState, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan models.TimerState, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to all subscribers. For a full channel
// the stale snapshot is replaced rather than queued behind.
func (b *Bus) Publish(state models.TimerState) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		for id, ch := range b.subs {
			delete(b.subs, id)
			close(ch)
		}
		b.mu.Unlock()
	})
}
