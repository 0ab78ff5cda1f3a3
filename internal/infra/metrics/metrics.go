// Package metrics provides Prometheus metrics for Pawden.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Actions ────────────────────────────────────────────────────────────────

// ActionsAccepted tracks accepted actions by type and channel.
var ActionsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "actions_accepted_total",
	Help:      "Total accepted pet actions.",
}, []string{"action", "channel"})

// ActionsRejected tracks rejected actions by reason.
var ActionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "actions_rejected_total",
	Help:      "Total rejected pet actions.",
}, []string{"reason"})

// ActionLatency tracks end-to-end action handling duration in seconds.
var ActionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "pawden",
	Name:      "action_latency_seconds",
	Help:      "Action handling duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
})

// ─── Progression ────────────────────────────────────────────────────────────

// Evolutions tracks stage transitions by new stage.
var Evolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "evolutions_total",
	Help:      "Total stage evolutions.",
}, []string{"stage"})

// DecayPoints tracks vital points removed by catch-up decay.
var DecayPoints = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "decay_points_total",
	Help:      "Total vital points removed by lazy decay.",
})

// StreakMilestones tracks streak milestone hits.
var StreakMilestones = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "streak_milestones_total",
	Help:      "Total streak milestones reached.",
}, []string{"days"})

// ─── Persistence ────────────────────────────────────────────────────────────

// WriteConflicts tracks lost compare-and-set races.
var WriteConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pawden",
	Name:      "write_conflicts_total",
	Help:      "Total optimistic-commit conflicts.",
})

// Pets tracks the number of stored pets.
var Pets = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pawden",
	Name:      "pets",
	Help:      "Number of stored pets.",
})
