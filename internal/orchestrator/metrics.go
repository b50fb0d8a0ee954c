package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pumpdrive",
		Name:      "recommendations_total",
		Help:      "Recommendations served, by producing tier.",
	}, []string{"tier"})

	tierFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pumpdrive",
		Name:      "tier_failures_total",
		Help:      "AI tier attempts that failed and advanced the fallback chain.",
	}, []string{"tier"})

	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pumpdrive",
		Name:      "cache_hits_total",
		Help:      "Recommendations served from the result cache.",
	})

	followUpsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pumpdrive",
		Name:      "followups_issued_total",
		Help:      "Recommendations that carried a conflict follow-up question.",
	})

	followUpsAnsweredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pumpdrive",
		Name:      "followups_answered_total",
		Help:      "Follow-up answers applied to a pending session.",
	})

	tierLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pumpdrive",
		Name:      "tier_latency_seconds",
		Help:      "Wall-clock latency of each attempted tier.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"tier"})
)
