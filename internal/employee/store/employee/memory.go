package employee

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"hrcore/internal/employee/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// ProfessionFinder supplies the latest profession for listing rows.
type ProfessionFinder interface {
	FindLatest(ctx context.Context, employeeID id.EmployeeID) (*models.Profession, error)
}

// DocumentLister supplies documents for listing rows, newest first.
type DocumentLister interface {
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]models.Document, error)
}

// InMemory stores employees in memory for local runs and tests.
type InMemory struct {
	mu        sync.RWMutex
	employees map[id.EmployeeID]*models.Employee

	professions ProfessionFinder
	documents   DocumentLister
}

// Option configures InMemory.
type Option func(*InMemory)

// WithJoins lets List fill profession and CV columns from sibling stores.
func WithJoins(professions ProfessionFinder, documents DocumentLister) Option {
	return func(s *InMemory) {
		s.professions = professions
		s.documents = documents
	}
}

func NewInMemory(opts ...Option) *InMemory {
	s := &InMemory{employees: make(map[id.EmployeeID]*models.Employee)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemory) Create(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.employees[e.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *e
	s.employees[e.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.employees[e.ID]; !exists {
		return sentinel.ErrNotFound
	}
	cp := *e
	s.employees[e.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[employeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// ListActive returns active employees ordered by first and last name.
func (s *InMemory) ListActive(_ context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.IsActive() {
			out = append(out, *e)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Employee) int {
		return cmp.Or(
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.LastName, b.LastName),
			compareCreated(a, b),
		)
	})
	return out, nil
}

// List returns listing rows matching filter. The filter must be normalized.
func (s *InMemory) List(ctx context.Context, filter models.ListFilter) ([]models.EmployeeRow, error) {
	s.mu.RLock()
	employees := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		employees = append(employees, *e)
	}
	s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	rows := make([]models.EmployeeRow, 0, len(employees))
	for _, e := range employees {
		switch filter.Active {
		case models.ActiveOnly:
			if e.Inactive {
				continue
			}
		case models.ActiveInactive:
			if !e.Inactive {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.FirstName), search) &&
			!strings.Contains(strings.ToLower(e.LastName), search) {
			continue
		}

		row := models.EmployeeRow{Employee: e}
		if err := s.join(ctx, &row); err != nil {
			return nil, err
		}
		if filter.Department != "" && row.Department != filter.Department {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, rowOrder(filter.SortBy))
	return rows, nil
}

func (s *InMemory) join(ctx context.Context, row *models.EmployeeRow) error {
	if s.professions != nil {
		p, err := s.professions.FindLatest(ctx, row.ID)
		switch {
		case err == nil:
			row.JobTitle = p.JobTitle
			row.Department = p.Department
			row.Salary = p.Salary
			row.StartDate = p.StartDate
			row.EndDate = p.EndDate
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}
	}
	if s.documents != nil {
		docs, err := s.documents.ListByEmployee(ctx, row.ID)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.Type == models.DocumentTypeCV {
				row.CVPath = d.FilePath
				row.CVFileName = d.OriginalName
				break
			}
		}
	}
	return nil
}

func rowOrder(sortBy models.SortKey) func(a, b models.EmployeeRow) int {
	return func(a, b models.EmployeeRow) int {
		var primary int
		switch sortBy {
		case models.SortByAge:
			// Youngest first: latest birth date first.
			primary = compareNullsLast(a.BirthDate, b.BirthDate, func(x, y time.Time) int { return y.Compare(x) })
		case models.SortByEndDate:
			primary = compareNullsLast(a.EndDate, b.EndDate, func(x, y time.Time) int { return y.Compare(x) })
		case models.SortByDepartment:
			primary = compareNullsLast(emptyAsNil(a.Department), emptyAsNil(b.Department), strings.Compare)
		}
		return cmp.Or(primary, compareCreated(a.Employee, b.Employee))
	}
}

func compareCreated(a, b models.Employee) int {
	return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
}

func compareNullsLast[T any](a, b *T, compare func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compare(*a, *b)
}

func emptyAsNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
