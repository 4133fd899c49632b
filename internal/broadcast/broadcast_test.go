package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tas-github/ogeemo-timekeeper/pkg/models"
)

// TestSubscribeReceivesPublish verifies basic fan-out to multiple
// subscribers.
func TestSubscribeReceivesPublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	state := models.TimerState{TaskID: "task-1", IsActive: true}
	bus.Publish(state)

	for name, ch := range map[string]<-chan models.TimerState{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.TaskID != "task-1" {
				t.Errorf("subscriber %s got wrong state: %+v", name, got)
			}
		case <-time.After(time.Second):
			t.Errorf("subscriber %s received nothing", name)
		}
	}
}

// TestSlowSubscriberKeepsLatest verifies a subscriber that never
// drained still observes the most recent snapshot, not the oldest.
func TestSlowSubscriberKeepsLatest(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	defer cancel()

	for i := int64(1); i <= 5; i++ {
		bus.Publish(models.TimerState{TaskID: "task-1", IsActive: true, StartTime: i})
	}

	select {
	case got := <-ch:
		if got.StartTime != 5 {
			t.Errorf("expected latest snapshot (5), got %d", got.StartTime)
		}
	case <-time.After(time.Second):
		t.Error("no snapshot received")
	}
}

// TestUnsubscribeStopsDelivery verifies cancelling a subscription
// closes its channel and publishing afterwards does not panic.
func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}
	bus.Publish(models.TimerState{TaskID: "task-1"})
}

// TestPublishAfterClose verifies the bus is safe to use after Close.
func TestPublishAfterClose(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe()
	bus.Close()
	bus.Close() // idempotent

	bus.Publish(models.TimerState{TaskID: "task-1"})
	if _, open := <-ch; open {
		t.Error("subscriber channel should be closed")
	}
}

type fakeReader struct {
	mu    sync.Mutex
	state models.TimerState
}

func (r *fakeReader) Read() (models.TimerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, nil
}

func (r *fakeReader) set(state models.TimerState) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}

// TestWatcherPublishesOnChange verifies the polling fallback publishes
// the first read and every subsequent change, but not unchanged polls.
func TestWatcherPublishesOnChange(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	reader := &fakeReader{}
	watcher := NewWatcher(reader, bus, 10*time.Millisecond)

	sub, cancel := bus.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go watcher.Run(ctx)

	// First poll publishes the idle state.
	select {
	case got := <-sub:
		if got.IsActive {
			t.Errorf("expected idle initial state, got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no initial publish")
	}

	reader.set(models.TimerState{TaskID: "task-1", IsActive: true, StartTime: 1})
	select {
	case got := <-sub:
		if got.TaskID != "task-1" {
			t.Errorf("expected changed state, got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("change was not published")
	}

	// No further change: nothing should arrive for a few intervals.
	select {
	case got := <-sub:
		t.Errorf("unexpected publish without change: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}
