package models

import (
	"strings"
	"time"

	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
)

// Status is the review state of a timesheet.
type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Timesheet is one worked shift. Start and end fall on the same work date.
type Timesheet struct {
	ID          id.TimesheetID
	EmployeeID  id.EmployeeID
	StartTime   time.Time
	EndTime     time.Time
	HoursWorked *float64
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Shift is the time span and outcome of a timesheet, checked as one unit.
type Shift struct {
	StartTime   time.Time
	EndTime     time.Time
	HoursWorked *float64
	Status      Status
	Notes       string
}

// Check enforces the shift invariants. Messages are shown to users as-is.
func (s Shift) Check() error {
	if !s.EndTime.After(s.StartTime) {
		return dErrors.New(dErrors.CodeInvariantViolation, "End time must be after start time.")
	}
	if s.HoursWorked != nil && *s.HoursWorked < 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "Hours worked cannot be negative.")
	}
	if !s.Status.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "status must be one of Submitted, Approved, Rejected")
	}
	return nil
}

func NewTimesheet(timesheetID id.TimesheetID, employeeID id.EmployeeID, shift Shift, now time.Time) (*Timesheet, error) {
	if shift.Status == "" {
		shift.Status = StatusSubmitted
	}
	if err := shift.Check(); err != nil {
		return nil, err
	}
	t := &Timesheet{
		ID:         timesheetID,
		EmployeeID: employeeID,
		CreatedAt:  now,
	}
	t.apply(shift, now)
	return t, nil
}

// Reschedule replaces the shift of an existing timesheet.
func (t *Timesheet) Reschedule(shift Shift, now time.Time) error {
	if shift.Status == "" {
		shift.Status = StatusSubmitted
	}
	if err := shift.Check(); err != nil {
		return err
	}
	t.apply(shift, now)
	return nil
}

func (t *Timesheet) apply(shift Shift, now time.Time) {
	t.StartTime = shift.StartTime
	t.EndTime = shift.EndTime
	t.HoursWorked = shift.HoursWorked
	t.Status = shift.Status
	t.Notes = shift.Notes
	t.UpdatedAt = now
}

// WorkDate is the calendar day of the shift.
func (t *Timesheet) WorkDate() string {
	return t.StartTime.Format(time.DateOnly)
}

// Duration is the elapsed time between start and end.
func (t *Timesheet) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// Row is a timesheet joined with its employee's name.
type Row struct {
	Timesheet
	FirstName string
	LastName  string
}

func (r *Row) EmployeeName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}
