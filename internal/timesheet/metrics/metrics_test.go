package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementSaved("create", "Submitted")
	m.IncrementSaved("create", "Submitted")
	m.IncrementSaved("update", "Approved")
	m.IncrementRejected("inactive_employee")
	m.ObserveShiftHours(8)

	assert.InDelta(t, 2, testutil.ToFloat64(m.TimesheetsSaved.WithLabelValues("create", "Submitted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TimesheetsSaved.WithLabelValues("update", "Approved")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ShiftRejections.WithLabelValues("inactive_employee")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ShiftHours))
}
