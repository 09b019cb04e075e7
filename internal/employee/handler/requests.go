package handler

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"hrcore/internal/employee/models"
	"hrcore/internal/employee/service"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/validation"
)

// HTTP Request DTOs - contain JSON tags for API serialization.
// These are converted to service commands before processing.

// FlexString accepts a JSON string or number. Forms post salaries both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// EmployeeRequest is the full employee form: personal fields plus the first profession.
// Field-level rules (formats, date order, minimum wage) are left to the record
// validator so every problem is reported at once.
type EmployeeRequest struct {
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	BirthDate        string     `json:"birth_date"`
	Email            string     `json:"email"`
	PhoneCountryCode string     `json:"phone_country_code" validate:"omitempty,startswith=+"`
	PhoneNumber      string     `json:"phone_number"`
	Address          string     `json:"address"`
	JobTitle         string     `json:"job_title"`
	Department       string     `json:"department"`
	Salary           FlexString `json:"salary"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
}

func (r *EmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneCountryCode = strings.TrimSpace(r.PhoneCountryCode)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Department = strings.TrimSpace(r.Department)
	r.Salary = FlexString(strings.TrimSpace(string(r.Salary)))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
}

func (r *EmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *EmployeeRequest) personal() service.PersonalFields {
	return service.PersonalFields{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		BirthDate:        r.BirthDate,
		Email:            r.Email,
		PhoneCountryCode: r.PhoneCountryCode,
		PhoneNumber:      r.PhoneNumber,
		Address:          r.Address,
	}
}

func (r *EmployeeRequest) profession() service.ProfessionFields {
	return service.ProfessionFields{
		JobTitle:   r.JobTitle,
		Department: r.Department,
		Salary:     string(r.Salary),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

func (r *EmployeeRequest) ToCreateCommand() *service.CreateEmployeeCommand {
	return &service.CreateEmployeeCommand{
		PersonalFields:   r.personal(),
		ProfessionFields: r.profession(),
	}
}

// ValidateRecordRequest previews a submission. HasIDDocument stands in for an ID
// file the client is about to upload.
type ValidateRecordRequest struct {
	EmployeeRequest
	HasIDDocument bool `json:"has_id_document"`
}

// UpdateEmployeeRequest carries personal fields only; profession fields are ignored.
type UpdateEmployeeRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	BirthDate        string `json:"birth_date"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phone_country_code" validate:"omitempty,startswith=+"`
	PhoneNumber      string `json:"phone_number"`
	Address          string `json:"address"`
}

func (r *UpdateEmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneCountryCode = strings.TrimSpace(r.PhoneCountryCode)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *UpdateEmployeeRequest) ToCommand() *service.UpdateEmployeeCommand {
	return &service.UpdateEmployeeCommand{PersonalFields: service.PersonalFields{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		BirthDate:        r.BirthDate,
		Email:            r.Email,
		PhoneCountryCode: r.PhoneCountryCode,
		PhoneNumber:      r.PhoneNumber,
		Address:          r.Address,
	}}
}

type UpdateProfessionRequest struct {
	JobTitle   string     `json:"job_title"`
	Department string     `json:"department"`
	Salary     FlexString `json:"salary"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
}

func (r *UpdateProfessionRequest) Normalize() {
	if r == nil {
		return
	}
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Department = strings.TrimSpace(r.Department)
	r.Salary = FlexString(strings.TrimSpace(string(r.Salary)))
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
}

func (r *UpdateProfessionRequest) ToCommand() *service.UpdateProfessionCommand {
	return &service.UpdateProfessionCommand{ProfessionFields: service.ProfessionFields{
		JobTitle:   r.JobTitle,
		Department: r.Department,
		Salary:     string(r.Salary),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}}
}

type DeactivateRequest struct {
	Reason string `json:"reason" validate:"required,notblank"`
}

func (r *DeactivateRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *DeactivateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

type ReviewMetricRequest struct {
	Key     string `json:"key" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Comment string `json:"comment"`
}

type AddReviewRequest struct {
	ReviewerName    string                `json:"reviewer_name"`
	ReviewDate      string                `json:"review_date" validate:"required,isodate"`
	OverallRating   *int                  `json:"overall_rating" validate:"omitempty,min=1,max=10"`
	OverallComments string                `json:"overall_comments"`
	Metrics         []ReviewMetricRequest `json:"metrics" validate:"max=20,dive"`
}

func (r *AddReviewRequest) Normalize() {
	if r == nil {
		return
	}
	r.ReviewerName = strings.TrimSpace(r.ReviewerName)
	r.ReviewDate = strings.TrimSpace(r.ReviewDate)
	r.OverallComments = strings.TrimSpace(r.OverallComments)
	for i := range r.Metrics {
		r.Metrics[i].Key = strings.TrimSpace(r.Metrics[i].Key)
		r.Metrics[i].Comment = strings.TrimSpace(r.Metrics[i].Comment)
	}
}

func (r *AddReviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

func (r *AddReviewRequest) ToCommand() *service.AddReviewCommand {
	metrics := make([]service.ReviewMetricInput, len(r.Metrics))
	for i, m := range r.Metrics {
		metrics[i] = service.ReviewMetricInput{Key: m.Key, Rating: m.Rating, Comment: m.Comment}
	}
	return &service.AddReviewCommand{
		ReviewerName:    r.ReviewerName,
		ReviewDate:      r.ReviewDate,
		OverallRating:   r.OverallRating,
		OverallComments: r.OverallComments,
		Metrics:         metrics,
	}
}

// listFilterFromQuery reads the listing filters. Unknown values are rejected by the service.
func listFilterFromQuery(q url.Values) models.ListFilter {
	return models.ListFilter{
		Department: strings.TrimSpace(q.Get("department")),
		Active:     models.ActiveFilter(strings.TrimSpace(q.Get("active"))),
		Search:     strings.TrimSpace(q.Get("search")),
		SortBy:     models.SortKey(strings.TrimSpace(q.Get("sort_by"))),
	}
}
