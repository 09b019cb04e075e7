package document

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

// InMemory stores document rows in memory for local runs and tests.
type InMemory struct {
	mu        sync.RWMutex
	documents map[id.DocumentID]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{documents: make(map[id.DocumentID]*models.Document)}
}

func (s *InMemory) Create(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[d.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *d
	s.documents[d.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, documentID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

// ListByEmployee returns an employee's documents, newest upload first.
func (s *InMemory) ListByEmployee(_ context.Context, employeeID id.EmployeeID) ([]models.Document, error) {
	s.mu.RLock()
	out := []models.Document{}
	for _, d := range s.documents {
		if d.EmployeeID == employeeID {
			out = append(out, *d)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Document) int {
		return cmp.Or(b.UploadedAt.Compare(a.UploadedAt), strings.Compare(b.ID.String(), a.ID.String()))
	})
	return out, nil
}

func (s *InMemory) HasType(_ context.Context, employeeID id.EmployeeID, t models.DocumentType) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.EmployeeID == employeeID && d.Type == t {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) Delete(_ context.Context, documentID id.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.documents, documentID)
	return nil
}
