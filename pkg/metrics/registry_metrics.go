package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RegistryMetrics counts schema registry traffic: requests by operation and
// outcome, and local cache hits that avoided a request. It implements the
// schema_registry.Observer interface; attach it with Client.WithObserver.
// A nil *RegistryMetrics is valid and records nothing.
type RegistryMetrics struct {
	requests  *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
}

// NewRegistryMetrics creates and registers the registry traffic counters.
func NewRegistryMetrics(registerer prometheus.Registerer) *RegistryMetrics {
	m := &RegistryMetrics{
		requests: createCounterVec(
			"railstream_registry_requests_total",
			"Schema registry requests, by operation and outcome.",
			[]string{"op", "outcome"},
		),
		cacheHits: createCounterVec(
			"railstream_registry_cache_hits_total",
			"Schema registry lookups answered from the local cache.",
			[]string{"op"},
		),
	}
	registerer.MustRegister(m.requests, m.cacheHits)
	return m
}

// ObserveLookup records the outcome of one registry request.
func (m *RegistryMetrics) ObserveLookup(op string, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcomeLabel(err)).Inc()
}

// ObserveCacheHit records a lookup served from the local cache.
func (m *RegistryMetrics) ObserveCacheHit(op string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(op).Inc()
}
