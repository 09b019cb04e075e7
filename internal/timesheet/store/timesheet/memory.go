package timesheet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	empmodels "hrcore/internal/employee/models"
	"hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// EmployeeFinder resolves employee names for listing rows.
type EmployeeFinder interface {
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*empmodels.Employee, error)
}

// InMemory stores timesheets in memory for local runs and tests.
type InMemory struct {
	mu         sync.RWMutex
	timesheets map[id.TimesheetID]*models.Timesheet
	employees  EmployeeFinder
}

type Option func(*InMemory)

// WithEmployees enables the employee name join on reads.
func WithEmployees(employees EmployeeFinder) Option {
	return func(s *InMemory) {
		s.employees = employees
	}
}

func NewInMemory(opts ...Option) *InMemory {
	s := &InMemory{timesheets: make(map[id.TimesheetID]*models.Timesheet)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemory) Create(_ context.Context, t *models.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.timesheets[t.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *t
	s.timesheets[t.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, t *models.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.timesheets[t.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	cp := *t
	cp.EmployeeID = existing.EmployeeID
	cp.CreatedAt = existing.CreatedAt
	s.timesheets[t.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, timesheetID id.TimesheetID) (*models.Row, error) {
	s.mu.RLock()
	t, ok := s.timesheets[timesheetID]
	var cp models.Timesheet
	if ok {
		cp = *t
	}
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	row := &models.Row{Timesheet: cp}
	if err := s.join(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// List returns every timesheet, latest shift first.
func (s *InMemory) List(ctx context.Context) ([]models.Row, error) {
	s.mu.RLock()
	rows := make([]models.Row, 0, len(s.timesheets))
	for _, t := range s.timesheets {
		rows = append(rows, models.Row{Timesheet: *t})
	}
	s.mu.RUnlock()

	for i := range rows {
		if err := s.join(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(rows, func(a, b models.Row) int {
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return rows, nil
}

func (s *InMemory) join(ctx context.Context, row *models.Row) error {
	if s.employees == nil {
		return nil
	}
	emp, err := s.employees.FindByID(ctx, row.EmployeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("join employee: %w", err)
	}
	row.FirstName = emp.FirstName
	row.LastName = emp.LastName
	return nil
}
