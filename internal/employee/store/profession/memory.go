package profession

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

// InMemory stores professions in memory for local runs and tests.
type InMemory struct {
	mu          sync.RWMutex
	professions map[id.ProfessionID]*models.Profession
}

func NewInMemory() *InMemory {
	return &InMemory{professions: make(map[id.ProfessionID]*models.Profession)}
}

func (s *InMemory) Create(_ context.Context, p *models.Profession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.professions[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *p
	s.professions[p.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, p *models.Profession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.professions[p.ID]; !exists {
		return sentinel.ErrNotFound
	}
	cp := *p
	s.professions[p.ID] = &cp
	return nil
}

// FindLatest returns the most recently created profession of an employee.
func (s *InMemory) FindLatest(_ context.Context, employeeID id.EmployeeID) (*models.Profession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Profession
	for _, p := range s.professions {
		if p.EmployeeID != employeeID {
			continue
		}
		if latest == nil || newer(p, latest) {
			latest = p
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

// Departments returns the distinct non-empty department names in order.
func (s *InMemory) Departments(_ context.Context) ([]string, error) {
	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, p := range s.professions {
		if p.Department != "" {
			seen[p.Department] = struct{}{}
		}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	slices.Sort(out)
	return out, nil
}

func newer(a, b *models.Profession) bool {
	return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String())) > 0
}
