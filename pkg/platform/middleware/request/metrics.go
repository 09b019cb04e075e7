package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records per-route latency and response counts.
type Metrics struct {
	latency   *prometheus.HistogramVec
	responses *prometheus.CounterVec
}

// NewMetrics registers the HTTP collectors with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hr_http_endpoint_latency_seconds",
			Help:    "Latency of HTTP endpoints in seconds, labelled by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_http_responses_total",
			Help: "HTTP responses by route pattern and status code",
		}, []string{"endpoint", "code"}),
	}
}

func (m *Metrics) observe(endpoint string, status int, seconds float64) {
	m.latency.WithLabelValues(endpoint).Observe(seconds)
	m.responses.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}
