package metrics

import "github.com/prometheus/client_golang/prometheus"

// GateMetrics counts unlock attempts by catalog kind and outcome.
type GateMetrics struct {
	attempts *prometheus.CounterVec
}

func NewGateMetrics(reg prometheus.Registerer) *GateMetrics {
	if reg == nil {
		return &GateMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_gate_attempts_total",
		Help: "Unlock attempts by catalog kind, rarity and outcome.",
	}, []string{"kind", "rarity", "outcome"})
	reg.MustRegister(attempts)
	return &GateMetrics{attempts: attempts}
}

func (g *GateMetrics) Inc(kind, rarity, outcome string) {
	if g == nil || g.attempts == nil {
		return
	}
	g.attempts.WithLabelValues(normalizeLabel(kind), normalizeLabel(rarity), normalizeLabel(outcome)).Inc()
}
