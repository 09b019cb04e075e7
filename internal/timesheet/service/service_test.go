package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	empmodels "hrcore/internal/employee/models"
	employeestore "hrcore/internal/employee/store/employee"
	"hrcore/internal/events"
	tsmetrics "hrcore/internal/timesheet/metrics"
	"hrcore/internal/timesheet/models"
	timesheetstore "hrcore/internal/timesheet/store/timesheet"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/middleware/requesttime"
)

// TimesheetServiceSuite covers shift parsing and the create/update rules.
//
// Justification: the clock-time combination and the derived hours are only
// implemented here; stores persist whatever they are given.
type TimesheetServiceSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	employees *employeestore.InMemory
	store     *timesheetstore.InMemory
	events    *events.Recorder
	metrics   *tsmetrics.Metrics
	svc       *Service
	active    *empmodels.Employee
	inactive  *empmodels.Employee
}

func TestTimesheetServiceSuite(t *testing.T) {
	suite.Run(t, new(TimesheetServiceSuite))
}

func (s *TimesheetServiceSuite) SetupTest() {
	s.now = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	s.ctx = requesttime.WithTime(context.Background(), s.now)
	s.employees = employeestore.NewInMemory()
	s.store = timesheetstore.NewInMemory(timesheetstore.WithEmployees(s.employees))
	s.events = &events.Recorder{}
	s.metrics = tsmetrics.New(prometheus.NewRegistry())
	s.svc = New(s.store, s.employees, WithPublisher(s.events), WithMetrics(s.metrics))

	s.active = &empmodels.Employee{ID: id.NewEmployeeID(), FirstName: "John", LastName: "Doe"}
	s.inactive = &empmodels.Employee{ID: id.NewEmployeeID(), FirstName: "Bob", LastName: "Brown", Inactive: true, InactiveReason: "Retired"}
	s.Require().NoError(s.employees.Create(s.ctx, s.active))
	s.Require().NoError(s.employees.Create(s.ctx, s.inactive))
}

func (s *TimesheetServiceSuite) createCmd() *CreateTimesheetCommand {
	return &CreateTimesheetCommand{
		EmployeeID: s.active.ID,
		ShiftFields: ShiftFields{
			WorkDate:  "2025-06-02",
			StartTime: "09:00",
			EndTime:   "17:30",
		},
	}
}

func (s *TimesheetServiceSuite) TestCreate() {
	s.Run("combines date and clock times", func() {
		row, err := s.svc.Create(s.ctx, s.createCmd())
		s.Require().NoError(err)
		s.Equal(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), row.StartTime)
		s.Equal(time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC), row.EndTime)
		s.Equal(models.StatusSubmitted, row.Status)
		s.Require().NotNil(row.HoursWorked)
		s.InDelta(8.5, *row.HoursWorked, 0.001, "hours derived from the clock times")
		s.Equal("John Doe", row.EmployeeName())
		s.Equal(s.now, row.CreatedAt)
		s.Equal([]events.Type{events.TimesheetCreated}, s.events.Types())
		s.InDelta(1, testutil.ToFloat64(s.metrics.TimesheetsSaved.WithLabelValues("create", "Submitted")), 0)
	})

	s.Run("explicit hours and status are kept", func() {
		cmd := s.createCmd()
		hours := 7.0
		cmd.HoursWorked = &hours
		cmd.Status = "Approved"
		cmd.StartTime = "09:00:00"
		row, err := s.svc.Create(s.ctx, cmd)
		s.Require().NoError(err)
		s.InDelta(7.0, *row.HoursWorked, 0.001)
		s.Equal(models.StatusApproved, row.Status)
	})

	s.Run("reads clock times in the configured zone", func() {
		beirut := time.FixedZone("EEST", 3*60*60)
		svc := New(s.store, s.employees, WithLocation(beirut))
		row, err := svc.Create(s.ctx, s.createCmd())
		s.Require().NoError(err)
		s.Equal(time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC), row.StartTime)
	})
}

func (s *TimesheetServiceSuite) TestCreateRejections() {
	cases := []struct {
		name   string
		mutate func(*CreateTimesheetCommand)
		code   dErrors.Code
		msg    string
	}{
		{"missing employee", func(c *CreateTimesheetCommand) { c.EmployeeID = id.EmployeeID{} }, dErrors.CodeValidation, "employee is required"},
		{"unknown employee", func(c *CreateTimesheetCommand) { c.EmployeeID = id.NewEmployeeID() }, dErrors.CodeNotFound, "employee not found"},
		{"inactive employee", func(c *CreateTimesheetCommand) { c.EmployeeID = s.inactive.ID }, dErrors.CodeValidation, "employee is inactive"},
		{"missing work date", func(c *CreateTimesheetCommand) { c.WorkDate = "" }, dErrors.CodeValidation, "work_date is required"},
		{"bad work date", func(c *CreateTimesheetCommand) { c.WorkDate = "02/06/2025" }, dErrors.CodeValidation, "work_date must be a date in YYYY-MM-DD format"},
		{"bad clock", func(c *CreateTimesheetCommand) { c.EndTime = "5pm" }, dErrors.CodeValidation, "end_time must be a time in HH:MM format"},
		{"end before start", func(c *CreateTimesheetCommand) { c.EndTime = "08:00" }, dErrors.CodeValidation, "End time must be after start time."},
		{"end equals start", func(c *CreateTimesheetCommand) { c.EndTime = "09:00" }, dErrors.CodeValidation, "End time must be after start time."},
		{"negative hours", func(c *CreateTimesheetCommand) { h := -2.0; c.HoursWorked = &h }, dErrors.CodeValidation, "Hours worked cannot be negative."},
		{"unknown status", func(c *CreateTimesheetCommand) { c.Status = "Pending" }, dErrors.CodeValidation, "status must be one of Submitted, Approved, Rejected"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			cmd := s.createCmd()
			tc.mutate(cmd)
			_, err := s.svc.Create(s.ctx, cmd)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
			s.Equal(tc.msg, err.Error())
		})
	}

	rows, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(rows)
	s.Empty(s.events.Events())
}

func (s *TimesheetServiceSuite) TestUpdate() {
	created, err := s.svc.Create(s.ctx, s.createCmd())
	s.Require().NoError(err)

	s.Run("replaces the shift", func() {
		later := requesttime.WithTime(s.ctx, s.now.Add(time.Hour))
		hours := 3.0
		row, err := s.svc.Update(later, created.ID, &UpdateTimesheetCommand{ShiftFields{
			WorkDate: "2025-06-03", StartTime: "13:00", EndTime: "16:00", HoursWorked: &hours,
			Status: "Approved", Notes: " checked ",
		}})
		s.Require().NoError(err)
		s.Equal("2025-06-03", row.WorkDate())
		s.Equal(models.StatusApproved, row.Status)
		s.Equal("checked", row.Notes)
		s.Equal(s.now.Add(time.Hour), row.UpdatedAt)
		s.Equal(s.active.ID, row.EmployeeID)

		stored, err := s.svc.Get(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, stored.Status)
	})

	s.Run("invalid shift leaves the stored one", func() {
		_, err := s.svc.Update(s.ctx, created.ID, &UpdateTimesheetCommand{ShiftFields{
			WorkDate: "2025-06-03", StartTime: "16:00", EndTime: "13:00",
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		stored, err := s.svc.Get(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("13:00", stored.StartTime.Format("15:04"))
	})

	s.Run("unknown timesheet", func() {
		_, err := s.svc.Update(s.ctx, id.NewTimesheetID(), &UpdateTimesheetCommand{ShiftFields{
			WorkDate: "2025-06-03", StartTime: "09:00", EndTime: "10:00",
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Contains(s.events.Types(), events.TimesheetUpdated)
}

func (s *TimesheetServiceSuite) TestGetAndList() {
	_, err := s.svc.Get(s.ctx, id.TimesheetID{})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = s.svc.Get(s.ctx, id.NewTimesheetID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	first, err := s.svc.Create(s.ctx, s.createCmd())
	s.Require().NoError(err)
	cmd := s.createCmd()
	cmd.WorkDate = "2025-06-03"
	second, err := s.svc.Create(s.ctx, cmd)
	s.Require().NoError(err)

	rows, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(second.ID, rows[0].ID)
	s.Equal(first.ID, rows[1].ID)
}

func (s *TimesheetServiceSuite) TestActiveEmployees() {
	emps, err := s.svc.ActiveEmployees(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(emps, 1)
	s.Equal(s.active.ID, emps[0].ID)
}
