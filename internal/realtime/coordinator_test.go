package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
)

type fakeSubscriber struct {
	mu       sync.Mutex
	handlers map[string]func(changestream.Event)
	err      error
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{handlers: make(map[string]func(changestream.Event))}
}

func (f *fakeSubscriber) Subscribe(table string, handler func(changestream.Event)) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.handlers[table] = handler
	f.mu.Unlock()
	return nil
}

func (f *fakeSubscriber) deliver(table string) {
	f.mu.Lock()
	handler := f.handlers[table]
	f.mu.Unlock()
	if handler != nil {
		handler(changestream.Event{EventType: changestream.EventInsert, Table: table})
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStartSubscribesAllThreeTables(t *testing.T) {
	sub := newFakeSubscriber()
	c := NewCoordinator(sub, func(context.Context) error { return nil }, 10*time.Millisecond)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for _, table := range []string{changestream.TablePosts, changestream.TableReactions, changestream.TableComments} {
		if sub.handlers[table] == nil {
			t.Errorf("no subscription registered for table %s", table)
		}
	}
}

func TestBurstCoalescesIntoOneRefresh(t *testing.T) {
	var refreshes atomic.Int32
	sub := newFakeSubscriber()
	c := NewCoordinator(sub, func(context.Context) error {
		refreshes.Add(1)
		return nil
	}, 30*time.Millisecond)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A burst across all three tables within one window.
	for i := 0; i < 4; i++ {
		sub.deliver(changestream.TablePosts)
		sub.deliver(changestream.TableReactions)
		sub.deliver(changestream.TableComments)
	}

	waitFor(t, time.Second, func() bool { return refreshes.Load() == 1 })
	// Give a stray second refresh time to fire if coalescing is broken.
	time.Sleep(60 * time.Millisecond)
	if got := refreshes.Load(); got != 1 {
		t.Errorf("refreshes = %d, want exactly 1", got)
	}
}

func TestSlotClearsAfterRefresh(t *testing.T) {
	var refreshes atomic.Int32
	c := NewCoordinator(newFakeSubscriber(), func(context.Context) error {
		refreshes.Add(1)
		return nil
	}, 10*time.Millisecond)

	c.Invalidate()
	waitFor(t, time.Second, func() bool { return refreshes.Load() == 1 && !c.Pending() })

	// A later burst must be able to schedule a fresh refresh.
	c.Invalidate()
	waitFor(t, time.Second, func() bool { return refreshes.Load() == 2 })
}

func TestSlotClearsAfterFailedRefresh(t *testing.T) {
	var refreshes atomic.Int32
	c := NewCoordinator(newFakeSubscriber(), func(context.Context) error {
		refreshes.Add(1)
		return errors.New("refresh failed")
	}, 10*time.Millisecond)

	c.Invalidate()
	waitFor(t, time.Second, func() bool { return refreshes.Load() == 1 && !c.Pending() })

	c.Invalidate()
	waitFor(t, time.Second, func() bool { return refreshes.Load() == 2 })
}

func TestStartPropagatesSubscribeError(t *testing.T) {
	sub := newFakeSubscriber()
	sub.err = errors.New("broker unavailable")
	c := NewCoordinator(sub, func(context.Context) error { return nil }, 10*time.Millisecond)
	if err := c.Start(); err == nil {
		t.Error("Start() should surface subscription failures")
	}
}
