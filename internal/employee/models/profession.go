package models

import (
	"strconv"
	"time"

	id "hrcore/pkg/domain"
)

// Profession is an employee's job assignment. Only the latest one is current.
type Profession struct {
	ID         id.ProfessionID
	EmployeeID id.EmployeeID
	JobTitle   string
	Department string
	Salary     *float64
	StartDate  *time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SalaryString renders the salary the way it is fed back into the record validator.
func (p *Profession) SalaryString() string {
	if p == nil || p.Salary == nil {
		return ""
	}
	return strconv.FormatFloat(*p.Salary, 'f', -1, 64)
}
