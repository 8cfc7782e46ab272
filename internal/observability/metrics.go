// Package observability provides engagement metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesCast counts accepted votes by target kind and vote direction.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bislerium_votes_cast_total",
		Help: "Total number of votes cast",
	}, []string{"target_kind", "kind"})

	// VotesWithdrawn counts withdrawn votes by target kind.
	VotesWithdrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bislerium_votes_withdrawn_total",
		Help: "Total number of votes withdrawn",
	}, []string{"target_kind"})

	// EngagementBuildSeconds records how long snapshot aggregation takes per operation.
	EngagementBuildSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bislerium_engagement_build_seconds",
		Help:    "Time spent fetching and aggregating engagement snapshots",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// CommentTreeNodes records the size of materialized comment threads.
	CommentTreeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bislerium_comment_tree_nodes",
		Help:    "Number of nodes in materialized comment threads",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	// CommentTreeDropped counts comment records skipped while building threads
	// (orphans under inactive parents, or cyclic references).
	CommentTreeDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bislerium_comment_tree_dropped_total",
		Help: "Comment records not reachable from their thread root",
	})
)

// TrackBuild returns a function that records the elapsed build time when called.
func TrackBuild(operation string) func() {
	start := time.Now()
	return func() {
		EngagementBuildSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// RecordThread records the node and dropped counts of a built thread.
func RecordThread(nodes, dropped int) {
	CommentTreeNodes.Observe(float64(nodes))
	if dropped > 0 {
		CommentTreeDropped.Add(float64(dropped))
	}
}
