package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts lifecycle event publishing outcomes.
type Metrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_events_published_total",
			Help: "Lifecycle events handed to the producer",
		}, []string{"type"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_events_failed_total",
			Help: "Lifecycle events that could not be published",
		}, []string{"type"}),
	}
}

func (m *Metrics) IncPublished(t Type) {
	m.published.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) IncFailed(t Type) {
	m.failed.WithLabelValues(string(t)).Inc()
}
