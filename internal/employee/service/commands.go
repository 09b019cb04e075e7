package service

import (
	"io"
	"strings"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/validation"
)

// PersonalFields are the employee's own details as submitted. Dates and amounts
// stay strings so the record validator sees exactly what was sent.
type PersonalFields struct {
	FirstName        string
	LastName         string
	BirthDate        string
	Email            string
	PhoneCountryCode string
	PhoneNumber      string
	Address          string
}

func (p *PersonalFields) normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.Email = strings.TrimSpace(p.Email)
	p.PhoneCountryCode = strings.TrimSpace(p.PhoneCountryCode)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Address = strings.TrimSpace(p.Address)
}

func (p *PersonalFields) validateLengths() error {
	return validation.CheckStringLengths(
		validation.StringLimit{Field: "first_name", Value: p.FirstName, Max: validation.MaxNameLength},
		validation.StringLimit{Field: "last_name", Value: p.LastName, Max: validation.MaxNameLength},
		validation.StringLimit{Field: "email", Value: p.Email, Max: validation.MaxEmailLength},
		validation.StringLimit{Field: "phone_country_code", Value: p.PhoneCountryCode, Max: validation.MaxCountryCodeLength},
		validation.StringLimit{Field: "phone_number", Value: p.PhoneNumber, Max: validation.MaxPhoneLength},
		validation.StringLimit{Field: "address", Value: p.Address, Max: validation.MaxAddressLength},
	)
}

// phone joins the country code and number as stored, e.g. "+96171123456".
// Only the number part is validated.
func (p *PersonalFields) phone(defaultCode string) string {
	if p.PhoneNumber == "" {
		return ""
	}
	code := p.PhoneCountryCode
	if code == "" {
		code = defaultCode
	}
	return code + p.PhoneNumber
}

// ProfessionFields describe a job assignment as submitted.
type ProfessionFields struct {
	JobTitle   string
	Department string
	Salary     string
	StartDate  string
	EndDate    string
}

func (p *ProfessionFields) normalize() {
	p.JobTitle = strings.TrimSpace(p.JobTitle)
	p.Department = strings.TrimSpace(p.Department)
	p.Salary = strings.TrimSpace(p.Salary)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.EndDate = strings.TrimSpace(p.EndDate)
}

func (p *ProfessionFields) validateLengths() error {
	return validation.CheckStringLengths(
		validation.StringLimit{Field: "job_title", Value: p.JobTitle, Max: validation.MaxJobTitleLength},
		validation.StringLimit{Field: "department", Value: p.Department, Max: validation.MaxDepartmentLength},
	)
}

// CreateEmployeeCommand contains the full new-employee submission.
type CreateEmployeeCommand struct {
	PersonalFields
	ProfessionFields
}

func (c *CreateEmployeeCommand) Normalize() {
	c.PersonalFields.normalize()
	c.ProfessionFields.normalize()
}

func (c *CreateEmployeeCommand) Validate() error {
	if err := c.PersonalFields.validateLengths(); err != nil {
		return err
	}
	return c.ProfessionFields.validateLengths()
}

// Record maps the submission onto the record validator's input.
func (c *CreateEmployeeCommand) Record() compliance.EmployeeRecord {
	return compliance.EmployeeRecord{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.PhoneNumber,
		BirthDate: c.BirthDate,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Salary:    c.Salary,
	}
}

// UpdateEmployeeCommand replaces the personal fields of an existing employee.
type UpdateEmployeeCommand struct {
	PersonalFields
}

func (c *UpdateEmployeeCommand) Normalize() {
	c.PersonalFields.normalize()
}

func (c *UpdateEmployeeCommand) Validate() error {
	return c.PersonalFields.validateLengths()
}

// UpdateProfessionCommand replaces the employee's latest profession.
type UpdateProfessionCommand struct {
	ProfessionFields
}

func (c *UpdateProfessionCommand) Normalize() {
	c.ProfessionFields.normalize()
}

func (c *UpdateProfessionCommand) Validate() error {
	return c.ProfessionFields.validateLengths()
}

// DeactivateCommand marks an employee inactive.
type DeactivateCommand struct {
	Reason string
}

func (c *DeactivateCommand) Validate() error {
	c.Reason = strings.TrimSpace(c.Reason)
	if c.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	for _, r := range models.InactivityReasons {
		if r == c.Reason {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeValidation, "reason must be one of Resigned, Terminated, On Leave, Retired")
}

// UploadDocumentCommand carries one uploaded file.
type UploadDocumentCommand struct {
	EmployeeID id.EmployeeID
	Type       models.DocumentType
	FileName   string
	Content    io.Reader
}

func (c *UploadDocumentCommand) Validate() error {
	if !c.Type.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "type must be one of PHOTO, ID, CV")
	}
	if strings.TrimSpace(c.FileName) == "" || c.Content == nil {
		return dErrors.New(dErrors.CodeValidation, "file is required")
	}
	return validation.CheckStringLength("file name", c.FileName, validation.MaxFileNameLength)
}

// ReviewMetricInput is one submitted metric line.
type ReviewMetricInput struct {
	Key     string
	Rating  int
	Comment string
}

// AddReviewCommand records a performance review.
type AddReviewCommand struct {
	ReviewerName    string
	ReviewDate      string
	OverallRating   *int
	OverallComments string
	Metrics         []ReviewMetricInput
}

func (c *AddReviewCommand) Normalize() {
	c.ReviewerName = strings.TrimSpace(c.ReviewerName)
	c.ReviewDate = strings.TrimSpace(c.ReviewDate)
	c.OverallComments = strings.TrimSpace(c.OverallComments)
	for i := range c.Metrics {
		c.Metrics[i].Key = strings.TrimSpace(c.Metrics[i].Key)
		c.Metrics[i].Comment = strings.TrimSpace(c.Metrics[i].Comment)
	}
}

func (c *AddReviewCommand) Validate() error {
	if c.ReviewDate == "" {
		return dErrors.New(dErrors.CodeValidation, "review_date is required")
	}
	if _, ok := compliance.ParseDate(c.ReviewDate); !ok {
		return dErrors.New(dErrors.CodeValidation, "review_date must be a date in YYYY-MM-DD format")
	}
	if c.OverallRating != nil && !validRating(*c.OverallRating) {
		return dErrors.New(dErrors.CodeValidation, "overall_rating must be between 1 and 10")
	}
	if err := validation.CheckSliceCount("metrics", len(c.Metrics), validation.MaxReviewMetrics); err != nil {
		return err
	}
	if err := validation.CheckStringLengths(
		validation.StringLimit{Field: "reviewer_name", Value: c.ReviewerName, Max: validation.MaxNameLength},
		validation.StringLimit{Field: "overall_comments", Value: c.OverallComments, Max: validation.MaxCommentLength},
	); err != nil {
		return err
	}
	for _, m := range c.Metrics {
		if !models.MetricKey(m.Key).IsValid() {
			return dErrors.New(dErrors.CodeValidation, "unknown review metric: "+m.Key)
		}
		if !validRating(m.Rating) {
			return dErrors.New(dErrors.CodeValidation, "metric rating must be between 1 and 10")
		}
		if err := validation.CheckStringLength("metric comment", m.Comment, validation.MaxCommentLength); err != nil {
			return err
		}
	}
	return nil
}

func validRating(r int) bool {
	return r >= models.MinRating && r <= models.MaxRating
}

// RecordPreview is the result of validating a submission without saving it.
type RecordPreview struct {
	Validation compliance.ValidationOutcome
	Compliance compliance.ComplianceOutcome
}

// UploadResult reports where an uploaded file went. Document is nil for photos.
type UploadResult struct {
	Type     models.DocumentType
	Path     string
	Document *models.Document
}
