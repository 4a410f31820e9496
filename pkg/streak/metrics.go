package streak

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// actionsTotal counts engine operations by action and outcome
	// (ok, rejected, error).
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strike_actions_total",
		Help: "Total strike operations by action and outcome",
	}, []string{"action", "outcome"})

	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strike_action_duration_seconds",
		Help:    "Strike operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"action"})

	// leaderboardCacheTotal counts cache lookups by result (hit, miss, error).
	leaderboardCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strike_leaderboard_cache_total",
		Help: "Leaderboard cache lookups by result",
	}, []string{"result"})
)
