package handler

import (
	"time"

	"hrcore/internal/timesheet/models"
)

type TimesheetResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	WorkDate     string    `json:"work_date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	HoursWorked  *float64  `json:"hours_worked"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TimesheetListResponse struct {
	Timesheets []TimesheetResponse `json:"timesheets"`
	Count      int                 `json:"count"`
}

type EmployeeOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeOptionsResponse struct {
	Employees []EmployeeOptionResponse `json:"employees"`
}

func toTimesheetResponse(r *models.Row) *TimesheetResponse {
	return &TimesheetResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		EmployeeName: r.EmployeeName(),
		WorkDate:     r.WorkDate(),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		HoursWorked:  r.HoursWorked,
		Status:       string(r.Status),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toListResponse(rows []models.Row) *TimesheetListResponse {
	out := make([]TimesheetResponse, len(rows))
	for i := range rows {
		out[i] = *toTimesheetResponse(&rows[i])
	}
	return &TimesheetListResponse{Timesheets: out, Count: len(out)}
}
