package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
	OutcomeSuccess = "success"
	OutcomeDenied  = "denied"
	OutcomeLimited = "limited"
)

// MetadataMetrics tracks calls to the remote movie/TV metadata provider.
type MetadataMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetadataMetrics(reg prometheus.Registerer) *MetadataMetrics {
	if reg == nil {
		return &MetadataMetrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_metadata_requests_total",
		Help: "Metadata provider requests by operation and outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_metadata_request_duration_seconds",
		Help:    "Metadata provider latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(calls, duration)
	return &MetadataMetrics{calls: calls, duration: duration}
}

func (m *MetadataMetrics) Observe(operation, outcome string, elapsed time.Duration) {
	if m == nil || m.calls == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.calls.WithLabelValues(operation, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IncStale counts search responses dropped because a newer request superseded them.
func (m *MetadataMetrics) IncStale(operation string) {
	if m == nil || m.calls == nil {
		return
	}
	m.calls.WithLabelValues(normalizeLabel(operation), OutcomeStale).Inc()
}
