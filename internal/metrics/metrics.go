// Package metrics exposes Prometheus instrumentation for the discovery
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DiscoveryRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_spider_discovery_runs_total",
		Help: "Number of discovery runs started.",
	})

	CandidatesFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_spider_candidates_found_total",
		Help: "Candidate events extracted, before deduplication.",
	}, []string{"provider"})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_spider_source_failures_total",
		Help: "Extractor runs that ended in an error.",
	}, []string{"provider"})

	EventsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_spider_events_saved_total",
		Help: "New event records inserted.",
	})

	EventsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_spider_events_updated_total",
		Help: "Existing event records updated.",
	})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_spider_persist_failures_total",
		Help: "Candidates that failed to persist and were skipped.",
	})
)
