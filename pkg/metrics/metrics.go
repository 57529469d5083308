// Package metrics exposes Prometheus counters for the feed subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedPagesAssembled counts assembled feed pages by outcome
	FeedPagesAssembled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zambovet_feed_pages_assembled_total",
		Help: "Feed pages assembled, labelled by outcome.",
	}, []string{"outcome"})

	// EngagementMutations counts reaction/comment mutations by action and outcome
	EngagementMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zambovet_engagement_mutations_total",
		Help: "Engagement mutations issued, labelled by action and outcome.",
	}, []string{"action", "outcome"})

	// FeedRefreshes counts debounced realtime refreshes
	FeedRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zambovet_feed_refreshes_total",
		Help: "Debounced feed refreshes triggered by the change stream.",
	})

	// ChangeEventsCoalesced counts change events absorbed into a pending refresh
	ChangeEventsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zambovet_change_events_coalesced_total",
		Help: "Change-stream events coalesced into an already-pending refresh.",
	})
)
