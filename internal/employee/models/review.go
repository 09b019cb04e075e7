package models

import (
	"slices"
	"time"

	id "hrcore/pkg/domain"
)

// MetricKey names a performance review metric.
type MetricKey string

// MetricCatalogue lists the metrics a review may rate, in display order.
var MetricCatalogue = []MetricKey{
	"Productivity", "Quality of Work", "Efficiency", "Goal Achievement", "Consistency",
	"Communication", "Teamwork", "Adaptability", "Problem-solving", "Leadership",
	"Attendance", "Punctuality", "Leave Record",
	"Training Participation", "Skill Improvement", "Certifications",
	"Customer/Peer Feedback", "Goal Tracking",
}

func (k MetricKey) IsValid() bool {
	return slices.Contains(MetricCatalogue, k)
}

const (
	MinRating = 1
	MaxRating = 10
)

type Review struct {
	ID              id.ReviewID
	EmployeeID      id.EmployeeID
	ReviewerName    string
	ReviewDate      time.Time
	OverallRating   *int
	OverallComments string
	Metrics         []ReviewMetric
	CreatedAt       time.Time
}

// ReviewMetric is one rated line of a review. Position preserves submission order.
type ReviewMetric struct {
	Position int
	Key      MetricKey
	Rating   int
	Comment  string
}
