package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TimesheetsSaved *prometheus.CounterVec
	ShiftRejections *prometheus.CounterVec
	ShiftHours      prometheus.Histogram
}

// New registers the timesheet collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		TimesheetsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_timesheets_saved_total",
			Help: "Timesheets saved by operation and status",
		}, []string{"operation", "status"}),
		ShiftRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_timesheet_rejections_total",
			Help: "Timesheet submissions rejected by reason",
		}, []string{"reason"}),
		ShiftHours: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hr_timesheet_shift_hours",
			Help:    "Length of recorded shifts in hours",
			Buckets: []float64{1, 2, 4, 6, 8, 10, 12, 16, 24},
		}),
	}
}

func (m *Metrics) IncrementSaved(operation, status string) {
	m.TimesheetsSaved.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) IncrementRejected(reason string) {
	m.ShiftRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveShiftHours(hours float64) {
	m.ShiftHours.Observe(hours)
}
