package review

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"hrcore/internal/employee/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// InMemory stores reviews and their metrics in memory for local runs and tests.
type InMemory struct {
	mu      sync.RWMutex
	reviews map[id.ReviewID]*models.Review
}

func NewInMemory() *InMemory {
	return &InMemory{reviews: make(map[id.ReviewID]*models.Review)}
}

func (s *InMemory) Create(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reviews[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.reviews[r.ID] = cloneReview(r)
	return nil
}

// ListByEmployee returns reviews newest review date first, then newest created.
// Metrics keep their submission order.
func (s *InMemory) ListByEmployee(_ context.Context, employeeID id.EmployeeID) ([]models.Review, error) {
	s.mu.RLock()
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.EmployeeID == employeeID {
			out = append(out, *cloneReview(r))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Review) int {
		return cmp.Or(
			b.ReviewDate.Compare(a.ReviewDate),
			b.CreatedAt.Compare(a.CreatedAt),
			strings.Compare(b.ID.String(), a.ID.String()),
		)
	})
	return out, nil
}

func cloneReview(r *models.Review) *models.Review {
	cp := *r
	cp.Metrics = slices.Clone(r.Metrics)
	slices.SortFunc(cp.Metrics, func(a, b models.ReviewMetric) int {
		return cmp.Compare(a.Position, b.Position)
	})
	if r.OverallRating != nil {
		v := *r.OverallRating
		cp.OverallRating = &v
	}
	return &cp
}
