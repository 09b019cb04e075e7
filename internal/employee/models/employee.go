package models

import (
	"time"

	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
)

// Employee is the personal record of a person on staff. Optional text fields use
// the empty string for "not supplied".
type Employee struct {
	ID             id.EmployeeID
	FirstName      string
	LastName       string
	BirthDate      *time.Time
	Email          string
	Phone          string
	Address        string
	PhotoPath      string
	Inactive       bool
	InactiveReason string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewEmployee(employeeID id.EmployeeID, firstName, lastName string, now time.Time) (*Employee, error) {
	if firstName == "" || lastName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "employee name cannot be empty")
	}
	return &Employee{
		ID:        employeeID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) IsActive() bool {
	return !e.Inactive
}

// Deactivate marks the employee inactive with the given reason.
// Returns an error if the employee is already inactive.
func (e *Employee) Deactivate(reason string, now time.Time) error {
	if e.Inactive {
		return dErrors.New(dErrors.CodeInvariantViolation, "employee is already inactive")
	}
	e.Inactive = true
	e.InactiveReason = reason
	e.UpdatedAt = now
	return nil
}

// SetPhoto replaces the photo path and returns the previous one.
func (e *Employee) SetPhoto(path string, now time.Time) string {
	previous := e.PhotoPath
	e.PhotoPath = path
	e.UpdatedAt = now
	return previous
}

// InactivityReasons are the accepted reasons for deactivating an employee.
var InactivityReasons = []string{"Resigned", "Terminated", "On Leave", "Retired"}

// FormatDate renders an optional date as YYYY-MM-DD, or "" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
