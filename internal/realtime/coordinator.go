// Package realtime turns bursts of change-stream events into single
// debounced feed refreshes.
package realtime

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/metrics"
)

// DefaultDebounceWindow is the delay used to coalesce change events
const DefaultDebounceWindow = 500 * time.Millisecond

const refreshTimeout = 30 * time.Second

// Coordinator subscribes to the posts, reactions and comments change
// streams and schedules at most one refresh per debounce window. It is a
// coalescing queue of depth one: the only state is whether a refresh is
// currently scheduled, and the slot is cleared once the refresh finishes,
// success or failure.
type Coordinator struct {
	subscriber changestream.Subscriber
	refresh    func(ctx context.Context) error
	window     time.Duration

	mu      sync.Mutex
	pending bool
}

// NewCoordinator creates a Coordinator. The refresh callback re-assembles
// first feed pages only; a window of zero falls back to the default.
func NewCoordinator(subscriber changestream.Subscriber, refresh func(ctx context.Context) error, window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Coordinator{
		subscriber: subscriber,
		refresh:    refresh,
		window:     window,
	}
}

// Start registers the three table subscriptions
func (c *Coordinator) Start() error {
	tables := []string{
		changestream.TablePosts,
		changestream.TableReactions,
		changestream.TableComments,
	}
	for _, table := range tables {
		if err := c.subscriber.Subscribe(table, func(changestream.Event) {
			c.Invalidate()
		}); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate notes that feed state is stale. If no refresh is pending one
// is scheduled after the debounce window; otherwise the event coalesces
// into the already-pending refresh.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		metrics.ChangeEventsCoalesced.Inc()
		return
	}
	c.pending = true
	time.AfterFunc(c.window, c.runRefresh)
}

func (c *Coordinator) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	metrics.FeedRefreshes.Inc()
	if err := c.refresh(ctx); err != nil {
		log.Printf("realtime: feed refresh failed: %v", err)
	}

	// Clear the slot last so a burst arriving during the refresh can
	// schedule the next one.
	c.mu.Lock()
	c.pending = false
	c.mu.Unlock()
}

// Pending reports whether a refresh is currently scheduled or running
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}
