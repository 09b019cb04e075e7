package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hrcore/internal/employee/models"
	tsModels "hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/sentinel"
)

// namespace derives stable record IDs from fixture keys.
var namespace = uuid.MustParse("6f1c2a9e-43b7-4d59-9b0e-7a3f0c5d8e21")

// EmployeeStore defines methods for seeding employees
type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
}

// ProfessionStore defines methods for seeding professions
type ProfessionStore interface {
	Create(ctx context.Context, p *models.Profession) error
}

// TimesheetStore defines methods for seeding timesheets
type TimesheetStore interface {
	Create(ctx context.Context, t *tsModels.Timesheet) error
}

// Seeder loads demo records into the stores. Records that already exist are
// skipped, so running it twice is harmless.
type Seeder struct {
	employees   EmployeeStore
	professions ProfessionStore
	timesheets  TimesheetStore
	logger      *slog.Logger
	fixtures    *Fixtures
	now         func() time.Time
}

type Option func(*Seeder)

// WithFixtures replaces the embedded demo data.
func WithFixtures(f *Fixtures) Option {
	return func(s *Seeder) {
		s.fixtures = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) {
		s.now = now
	}
}

// New creates a new seeder
func New(employees EmployeeStore, professions ProfessionStore, timesheets TimesheetStore, logger *slog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		employees:   employees,
		professions: professions,
		timesheets:  timesheets,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result counts what a SeedAll run inserted and skipped.
type Result struct {
	Created int
	Skipped int
}

// SeedAll populates all stores with the fixtures
func (s *Seeder) SeedAll(ctx context.Context) (Result, error) {
	s.logger.InfoContext(ctx, "seeding demo data...")

	fixtures := s.fixtures
	if fixtures == nil {
		var err error
		if fixtures, err = DefaultFixtures(); err != nil {
			return Result{}, err
		}
	}

	var res Result
	for _, f := range fixtures.Employees {
		if err := s.seedEmployee(ctx, f, &res); err != nil {
			return res, fmt.Errorf("failed to seed employee %q: %w", f.Key, err)
		}
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"employees", len(fixtures.Employees),
		"created", res.Created,
		"skipped", res.Skipped,
	)
	return res, nil
}

func (s *Seeder) seedEmployee(ctx context.Context, f EmployeeFixture, res *Result) error {
	now := s.now()
	employeeID := id.EmployeeID(derive(f.Key))

	e, err := models.NewEmployee(employeeID, f.FirstName, f.LastName, now)
	if err != nil {
		return err
	}
	if e.BirthDate, err = parseDate(f.BirthDate); err != nil {
		return fmt.Errorf("birth_date: %w", err)
	}
	e.Email = f.Email
	e.Phone = f.Phone
	e.Address = f.Address
	if f.Inactive != "" {
		if err := e.Deactivate(f.Inactive, now); err != nil {
			return err
		}
	}
	if err := s.create(res, s.employees.Create(ctx, e)); err != nil {
		return err
	}

	if p := f.Profession; p != nil {
		prof := &models.Profession{
			ID:         id.ProfessionID(derive(f.Key + "/profession")),
			EmployeeID: employeeID,
			JobTitle:   p.JobTitle,
			Department: p.Department,
			Salary:     p.Salary,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if prof.StartDate, err = parseDate(p.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
		if prof.EndDate, err = parseDate(p.EndDate); err != nil {
			return fmt.Errorf("end_date: %w", err)
		}
		if err := s.create(res, s.professions.Create(ctx, prof)); err != nil {
			return err
		}
	}

	for i, t := range f.Timesheets {
		shift, err := t.shift()
		if err != nil {
			return fmt.Errorf("timesheet %d: %w", i, err)
		}
		ts, err := tsModels.NewTimesheet(id.TimesheetID(derive(fmt.Sprintf("%s/timesheet/%d", f.Key, i))), employeeID, shift, now)
		if err != nil {
			return fmt.Errorf("timesheet %d: %w", i, err)
		}
		if err := s.create(res, s.timesheets.Create(ctx, ts)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) create(res *Result, err error) error {
	switch {
	case err == nil:
		res.Created++
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		res.Skipped++
	default:
		return err
	}
	return nil
}

func (t TimesheetFixture) shift() (tsModels.Shift, error) {
	start, err := time.Parse(time.DateOnly+" 15:04", t.WorkDate+" "+t.StartTime)
	if err != nil {
		return tsModels.Shift{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := time.Parse(time.DateOnly+" 15:04", t.WorkDate+" "+t.EndTime)
	if err != nil {
		return tsModels.Shift{}, fmt.Errorf("end_time: %w", err)
	}
	return tsModels.Shift{
		StartTime:   start,
		EndTime:     end,
		HoursWorked: t.HoursWorked,
		Status:      tsModels.Status(t.Status),
		Notes:       t.Notes,
	}, nil
}

// derive returns the record ID for a fixture key.
func derive(key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(key))
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
