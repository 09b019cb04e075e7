package handler

import (
	"strings"

	"hrcore/internal/timesheet/service"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/validation"
)

// ShiftRequest holds the fields shared by create and update.
type ShiftRequest struct {
	WorkDate    string   `json:"work_date" validate:"required,isodate"`
	StartTime   string   `json:"start_time" validate:"required,clock"`
	EndTime     string   `json:"end_time" validate:"required,clock"`
	HoursWorked *float64 `json:"hours_worked" validate:"omitempty,gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=Submitted Approved Rejected"`
	Notes       string   `json:"notes" validate:"max=2000"`
}

func (r *ShiftRequest) Normalize() {
	if r == nil {
		return
	}
	r.WorkDate = strings.TrimSpace(r.WorkDate)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Status = strings.TrimSpace(r.Status)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *ShiftRequest) fields() service.ShiftFields {
	return service.ShiftFields{
		WorkDate:    r.WorkDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		HoursWorked: r.HoursWorked,
		Status:      r.Status,
		Notes:       r.Notes,
	}
}

type CreateTimesheetRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	ShiftRequest
}

func (r *CreateTimesheetRequest) Normalize() {
	if r == nil {
		return
	}
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.ShiftRequest.Normalize()
}

func (r *CreateTimesheetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *CreateTimesheetRequest) ToCommand() (*service.CreateTimesheetCommand, error) {
	employeeID, err := id.ParseEmployeeID(r.EmployeeID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "employee_id must be a valid uuid")
	}
	return &service.CreateTimesheetCommand{EmployeeID: employeeID, ShiftFields: r.fields()}, nil
}

type UpdateTimesheetRequest struct {
	ShiftRequest
}

func (r *UpdateTimesheetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *UpdateTimesheetRequest) ToCommand() *service.UpdateTimesheetCommand {
	return &service.UpdateTimesheetCommand{ShiftFields: r.fields()}
}
