package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	empmodels "hrcore/internal/employee/models"
	"hrcore/internal/events"
	"hrcore/internal/platform/tracer"
	tsmetrics "hrcore/internal/timesheet/metrics"
	"hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
	"hrcore/pkg/platform/sentinel"
	"hrcore/pkg/platform/validation"
)

// Store is the timesheet persistence contract.
type Store interface {
	Create(ctx context.Context, t *models.Timesheet) error
	Update(ctx context.Context, t *models.Timesheet) error
	FindByID(ctx context.Context, timesheetID id.TimesheetID) (*models.Row, error)
	List(ctx context.Context) ([]models.Row, error)
}

// EmployeeDirectory is the read side of the employee records timesheets refer to.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*empmodels.Employee, error)
	ListActive(ctx context.Context) ([]empmodels.Employee, error)
}

type Service struct {
	store     Store
	employees EmployeeDirectory
	logger    *slog.Logger
	metrics   *tsmetrics.Metrics
	tracer    tracer.Tracer
	publisher events.Publisher
	location  *time.Location
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *tsmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithLocation sets the zone that submitted work dates and clock times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func New(store Store, employees EmployeeDirectory, opts ...Option) *Service {
	s := &Service{
		store:     store,
		employees: employees,
		logger:    slog.Default(),
		tracer:    tracer.NewNoop(),
		publisher: events.Noop{},
		location:  time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShiftFields are the editable parts of a timesheet as submitted: a work date
// plus HH:MM clock times on that date.
type ShiftFields struct {
	WorkDate    string
	StartTime   string
	EndTime     string
	HoursWorked *float64
	Status      string
	Notes       string
}

func (f *ShiftFields) Normalize() {
	f.WorkDate = strings.TrimSpace(f.WorkDate)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Status = strings.TrimSpace(f.Status)
	f.Notes = strings.TrimSpace(f.Notes)
}

type CreateTimesheetCommand struct {
	EmployeeID id.EmployeeID
	ShiftFields
}

type UpdateTimesheetCommand struct {
	ShiftFields
}

// Create records a shift for an active employee.
func (s *Service) Create(ctx context.Context, cmd *CreateTimesheetCommand) (_ *models.Row, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanTimesheetSave,
		tracer.String(tracer.AttrEmployeeID, cmd.EmployeeID.String()),
	)
	defer func() { span.End(err) }()

	if cmd.EmployeeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee is required")
	}
	cmd.Normalize()
	shift, err := s.parseShift(&cmd.ShiftFields)
	if err != nil {
		return nil, s.rejectShift(err)
	}

	emp, err := s.employees.FindByID(ctx, cmd.EmployeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !emp.IsActive() {
		s.observeRejection("inactive_employee")
		return nil, dErrors.New(dErrors.CodeValidation, "employee is inactive")
	}

	now := requesttime.Now(ctx)
	ts, err := models.NewTimesheet(id.NewTimesheetID(), emp.ID, shift, now)
	if err != nil {
		return nil, s.rejectShift(err)
	}
	if err := s.store.Create(ctx, ts); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create timesheet")
	}
	span.SetAttributes(tracer.String(tracer.AttrTimesheetID, ts.ID.String()))

	s.observeSaved("create", ts)
	s.logger.InfoContext(ctx, "timesheet created", "timesheet_id", ts.ID, "employee_id", emp.ID)
	s.publisher.Publish(ctx, events.New(events.TimesheetCreated, emp.ID, now, map[string]string{
		"timesheet_id": ts.ID.String(),
		"status":       string(ts.Status),
	}))
	return &models.Row{Timesheet: *ts, FirstName: emp.FirstName, LastName: emp.LastName}, nil
}

// Update replaces the shift of an existing timesheet. The employee never changes.
func (s *Service) Update(ctx context.Context, timesheetID id.TimesheetID, cmd *UpdateTimesheetCommand) (_ *models.Row, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanTimesheetSave,
		tracer.String(tracer.AttrTimesheetID, timesheetID.String()),
	)
	defer func() { span.End(err) }()

	if timesheetID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "timesheet ID required")
	}
	cmd.Normalize()
	shift, err := s.parseShift(&cmd.ShiftFields)
	if err != nil {
		return nil, s.rejectShift(err)
	}

	row, err := s.store.FindByID(ctx, timesheetID)
	if err != nil {
		return nil, wrapTimesheetErr(err, "failed to load timesheet")
	}
	now := requesttime.Now(ctx)
	if err := row.Reschedule(shift, now); err != nil {
		return nil, s.rejectShift(err)
	}
	if err := s.store.Update(ctx, &row.Timesheet); err != nil {
		return nil, wrapTimesheetErr(err, "failed to update timesheet")
	}

	s.observeSaved("update", &row.Timesheet)
	s.publisher.Publish(ctx, events.New(events.TimesheetUpdated, row.EmployeeID, now, map[string]string{
		"timesheet_id": row.ID.String(),
		"status":       string(row.Status),
	}))
	return row, nil
}

func (s *Service) Get(ctx context.Context, timesheetID id.TimesheetID) (*models.Row, error) {
	if timesheetID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "timesheet ID required")
	}
	row, err := s.store.FindByID(ctx, timesheetID)
	if err != nil {
		return nil, wrapTimesheetErr(err, "failed to load timesheet")
	}
	return row, nil
}

// List returns all timesheets with employee names, latest shift first.
func (s *Service) List(ctx context.Context) ([]models.Row, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list timesheets")
	}
	if rows == nil {
		rows = []models.Row{}
	}
	return rows, nil
}

// ActiveEmployees lists the employees a new timesheet can be filed for.
func (s *Service) ActiveEmployees(ctx context.Context) ([]empmodels.Employee, error) {
	emps, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active employees")
	}
	if emps == nil {
		emps = []empmodels.Employee{}
	}
	return emps, nil
}

// parseShift turns submitted fields into a shift. When hours are not given they
// are derived from the clock times.
func (s *Service) parseShift(f *ShiftFields) (models.Shift, error) {
	if f.WorkDate == "" {
		return models.Shift{}, dErrors.New(dErrors.CodeValidation, "work_date is required")
	}
	day, err := time.ParseInLocation(time.DateOnly, f.WorkDate, s.location)
	if err != nil {
		return models.Shift{}, dErrors.New(dErrors.CodeValidation, "work_date must be a date in YYYY-MM-DD format")
	}
	start, err := onDay(day, f.StartTime, "start_time")
	if err != nil {
		return models.Shift{}, err
	}
	end, err := onDay(day, f.EndTime, "end_time")
	if err != nil {
		return models.Shift{}, err
	}
	if err := validation.CheckStringLength("notes", f.Notes, validation.MaxNotesLength); err != nil {
		return models.Shift{}, err
	}

	hours := f.HoursWorked
	if hours == nil && end.After(start) {
		h := math.Round(end.Sub(start).Hours()*100) / 100
		hours = &h
	}
	return models.Shift{
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		HoursWorked: hours,
		Status:      models.Status(f.Status),
		Notes:       f.Notes,
	}, nil
}

var clockLayouts = []string{"15:04", time.TimeOnly}

func onDay(day time.Time, clock, field string) (time.Time, error) {
	if clock == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" must be a time in HH:MM format")
}

// rejectShift reports shift invariant violations as validation failures.
func (s *Service) rejectShift(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		s.observeRejection("invalid_shift")
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	s.observeRejection("invalid_input")
	return err
}

func (s *Service) observeRejection(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}

func (s *Service) observeSaved(operation string, t *models.Timesheet) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementSaved(operation, string(t.Status))
	s.metrics.ObserveShiftHours(t.Duration().Hours())
}

func wrapTimesheetErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "timesheet not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
