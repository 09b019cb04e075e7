package service

import (
	"context"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	"hrcore/internal/events"
	"hrcore/internal/platform/tracer"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
)

// AddReview records a performance review with its metric lines in submission order.
func (s *Service) AddReview(ctx context.Context, employeeID id.EmployeeID, cmd *AddReviewCommand) (_ *models.Review, err error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanReviewAdd,
		tracer.String(tracer.AttrEmployeeID, employeeID.String()),
		tracer.Int(tracer.AttrReviewMetrics, len(cmd.Metrics)),
	)
	defer func() { span.End(err) }()

	if _, err := s.loadEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	reviewDate, _ := compliance.ParseDate(cmd.ReviewDate)
	now := requesttime.Now(ctx)
	review := &models.Review{
		ID:              id.NewReviewID(),
		EmployeeID:      employeeID,
		ReviewerName:    cmd.ReviewerName,
		ReviewDate:      reviewDate,
		OverallRating:   cmd.OverallRating,
		OverallComments: cmd.OverallComments,
		Metrics:         make([]models.ReviewMetric, 0, len(cmd.Metrics)),
		CreatedAt:       now,
	}
	for i, m := range cmd.Metrics {
		review.Metrics = append(review.Metrics, models.ReviewMetric{
			Position: i,
			Key:      models.MetricKey(m.Key),
			Rating:   m.Rating,
			Comment:  m.Comment,
		})
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, wrapEmployeeErr(err, "failed to save review")
	}

	if s.metrics != nil {
		s.metrics.IncrementReviewsAdded()
	}
	s.publish(ctx, events.ReviewAdded, employeeID, now, map[string]string{
		"review_id": review.ID.String(),
	})
	return review, nil
}
