package models

import (
	"time"

	dErrors "hrcore/pkg/domain-errors"
)

// ActiveFilter restricts a listing by employment status.
type ActiveFilter string

const (
	ActiveAll      ActiveFilter = "all"
	ActiveOnly     ActiveFilter = "active"
	ActiveInactive ActiveFilter = "inactive"
)

// SortKey orders an employee listing.
type SortKey string

const (
	// SortByID orders by creation time; IDs are random UUIDs.
	SortByID         SortKey = "id"
	SortByAge        SortKey = "age"
	SortByEndDate    SortKey = "end_date"
	SortByDepartment SortKey = "department"
)

type ListFilter struct {
	Department string
	Active     ActiveFilter
	Search     string
	SortBy     SortKey
}

// Normalize fills defaults and rejects unknown filter values.
func (f *ListFilter) Normalize() error {
	if f.Active == "" {
		f.Active = ActiveAll
	}
	if f.SortBy == "" {
		f.SortBy = SortByID
	}
	switch f.Active {
	case ActiveAll, ActiveOnly, ActiveInactive:
	default:
		return dErrors.New(dErrors.CodeBadRequest, "active must be one of all, active, inactive")
	}
	switch f.SortBy {
	case SortByID, SortByAge, SortByEndDate, SortByDepartment:
	default:
		return dErrors.New(dErrors.CodeBadRequest, "sort_by must be one of id, age, end_date, department")
	}
	return nil
}

// EmployeeRow is one line of the employee listing: the employee joined with the
// latest profession and the latest CV.
type EmployeeRow struct {
	Employee
	JobTitle   string
	Department string
	Salary     *float64
	StartDate  *time.Time
	EndDate    *time.Time
	CVPath     string
	CVFileName string
}
