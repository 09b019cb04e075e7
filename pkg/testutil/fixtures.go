package testutil

import (
	"time"

	empmodels "hrcore/internal/employee/models"
	tsmodels "hrcore/internal/timesheet/models"
	id "hrcore/pkg/domain"
)

// FixedNow is the reference clock for store and service tests.
var FixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// Date parses YYYY-MM-DD and panics on bad input. Test data only.
func Date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// EmployeeBuilder provides a fluent interface for building test employees.
type EmployeeBuilder struct {
	employee *empmodels.Employee
}

// NewEmployeeBuilder starts from an active adult employee with contact details.
func NewEmployeeBuilder() *EmployeeBuilder {
	return &EmployeeBuilder{
		employee: &empmodels.Employee{
			ID:        id.NewEmployeeID(),
			FirstName: "John",
			LastName:  "Doe",
			BirthDate: Date("1995-01-01"),
			Email:     "john@example.com",
			Phone:     "+961123456789",
			Address:   "123 Main St",
			CreatedAt: FixedNow,
			UpdatedAt: FixedNow,
		},
	}
}

func (b *EmployeeBuilder) WithID(employeeID id.EmployeeID) *EmployeeBuilder {
	b.employee.ID = employeeID
	return b
}

func (b *EmployeeBuilder) WithName(first, last string) *EmployeeBuilder {
	b.employee.FirstName = first
	b.employee.LastName = last
	return b
}

func (b *EmployeeBuilder) WithBirthDate(date string) *EmployeeBuilder {
	if date == "" {
		b.employee.BirthDate = nil
		return b
	}
	b.employee.BirthDate = Date(date)
	return b
}

func (b *EmployeeBuilder) WithEmail(email string) *EmployeeBuilder {
	b.employee.Email = email
	return b
}

func (b *EmployeeBuilder) Inactive(reason string) *EmployeeBuilder {
	b.employee.Inactive = true
	b.employee.InactiveReason = reason
	return b
}

// CreatedAt sets both timestamps; list ordering by id uses created_at.
func (b *EmployeeBuilder) CreatedAt(t time.Time) *EmployeeBuilder {
	b.employee.CreatedAt = t
	b.employee.UpdatedAt = t
	return b
}

func (b *EmployeeBuilder) Build() *empmodels.Employee {
	e := *b.employee
	return &e
}

// ProfessionBuilder provides a fluent interface for building test professions.
type ProfessionBuilder struct {
	profession *empmodels.Profession
}

func NewProfessionBuilder(employeeID id.EmployeeID) *ProfessionBuilder {
	return &ProfessionBuilder{
		profession: &empmodels.Profession{
			ID:         id.NewProfessionID(),
			EmployeeID: employeeID,
			JobTitle:   "Web Developer",
			Department: "Engineering",
			Salary:     Float(100000),
			StartDate:  Date("2025-05-12"),
			CreatedAt:  FixedNow,
			UpdatedAt:  FixedNow,
		},
	}
}

func (b *ProfessionBuilder) WithTitle(title, department string) *ProfessionBuilder {
	b.profession.JobTitle = title
	b.profession.Department = department
	return b
}

func (b *ProfessionBuilder) WithSalary(salary *float64) *ProfessionBuilder {
	b.profession.Salary = salary
	return b
}

func (b *ProfessionBuilder) WithEndDate(date string) *ProfessionBuilder {
	b.profession.EndDate = Date(date)
	return b
}

func (b *ProfessionBuilder) CreatedAt(t time.Time) *ProfessionBuilder {
	b.profession.CreatedAt = t
	b.profession.UpdatedAt = t
	return b
}

func (b *ProfessionBuilder) Build() *empmodels.Profession {
	p := *b.profession
	return &p
}

// NewTimesheet builds a submitted shift for employeeID on day between the given clock hours.
func NewTimesheet(employeeID id.EmployeeID, day string, startHour, endHour int) *tsmodels.Timesheet {
	d := *Date(day)
	start := d.Add(time.Duration(startHour) * time.Hour)
	end := d.Add(time.Duration(endHour) * time.Hour)
	hours := float64(endHour - startHour)
	return &tsmodels.Timesheet{
		ID:          id.NewTimesheetID(),
		EmployeeID:  employeeID,
		StartTime:   start,
		EndTime:     end,
		HoursWorked: &hours,
		Status:      tsmodels.StatusSubmitted,
		CreatedAt:   FixedNow,
		UpdatedAt:   FixedNow,
	}
}
