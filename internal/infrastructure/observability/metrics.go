package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream probing

var UpstreamAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "upstream",
	Name:      "attempts_total",
	Help:      "Calls to candidate endpoints of the loyalty API by resource and outcome.",
}, []string{"resource", "outcome"})

var UpstreamFallthroughs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "upstream",
	Name:      "fallthroughs_total",
	Help:      "Times a candidate endpoint failed and the next one was tried.",
}, []string{"resource"})

var UpstreamExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "upstream",
	Name:      "exhausted_total",
	Help:      "Calls where no candidate endpoint succeeded.",
}, []string{"resource"})

var UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "loyalty_admin",
	Subsystem: "upstream",
	Name:      "attempt_duration_seconds",
	Help:      "Duration of a single candidate endpoint call.",
	Buckets:   prometheus.DefBuckets,
}, []string{"resource", "method"})

// Console

var SnapshotCache = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "snapshot",
	Name:      "cache_total",
	Help:      "Snapshot cache lookups by resource and result (hit, miss, error).",
}, []string{"resource", "result"})

var SearchSuperseded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "search",
	Name:      "superseded_total",
	Help:      "Search requests dropped because a newer one arrived for the same screen.",
})

var ReorderRollbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "reorder",
	Name:      "rollbacks_total",
	Help:      "Featured store reorders discarded because the bulk update failed.",
})

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loyalty_admin",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Console API requests by route and status class.",
}, []string{"method", "route", "status"})

var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "loyalty_admin",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "Console API request latency by route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})
