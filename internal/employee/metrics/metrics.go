package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EmployeesCreated     prometheus.Counter
	EmployeesDeactivated prometheus.Counter
	RecordsRejected      prometheus.Counter
	ComplianceFindings   *prometheus.CounterVec
	DocumentsUploaded    *prometheus.CounterVec
	ReviewsAdded         prometheus.Counter
	DepartmentCache      *prometheus.CounterVec
	DetailDuration       prometheus.Histogram
}

// New registers the employee collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		EmployeesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_employees_created_total",
			Help: "Total number of employees created",
		}),
		EmployeesDeactivated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_employees_deactivated_total",
			Help: "Total number of employees marked inactive",
		}),
		RecordsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_employee_records_rejected_total",
			Help: "Employee submissions rejected by record validation",
		}),
		ComplianceFindings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_compliance_findings_total",
			Help: "Compliance findings by category and outcome",
		}, []string{"category", "satisfied"}),
		DocumentsUploaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_documents_uploaded_total",
			Help: "Files uploaded for employees by type",
		}, []string{"type"}),
		ReviewsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_reviews_added_total",
			Help: "Performance reviews recorded",
		}),
		DepartmentCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hr_department_cache_lookups_total",
			Help: "Department directory lookups by cache result",
		}, []string{"result"}),
		DetailDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hr_employee_detail_duration_seconds",
			Help:    "Duration of employee detail loads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementEmployeesCreated() {
	m.EmployeesCreated.Inc()
}

func (m *Metrics) IncrementEmployeesDeactivated() {
	m.EmployeesDeactivated.Inc()
}

func (m *Metrics) IncrementRecordsRejected() {
	m.RecordsRejected.Inc()
}

func (m *Metrics) ObserveComplianceFinding(category string, satisfied bool) {
	label := "false"
	if satisfied {
		label = "true"
	}
	m.ComplianceFindings.WithLabelValues(category, label).Inc()
}

func (m *Metrics) IncrementDocumentsUploaded(docType string) {
	m.DocumentsUploaded.WithLabelValues(docType).Inc()
}

func (m *Metrics) IncrementReviewsAdded() {
	m.ReviewsAdded.Inc()
}

func (m *Metrics) ObserveDepartmentCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.DepartmentCache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDetail(start time.Time) {
	m.DetailDuration.Observe(time.Since(start).Seconds())
}
