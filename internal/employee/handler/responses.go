package handler

import (
	"time"

	"hrcore/internal/compliance"
	"hrcore/internal/employee/models"
	"hrcore/internal/employee/service"
)

type EmployeeResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	BirthDate      string    `json:"birth_date,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	PhotoPath      string    `json:"photo_path,omitempty"`
	Active         bool      `json:"active"`
	InactiveReason string    `json:"inactive_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ProfessionResponse struct {
	ID         string   `json:"id"`
	JobTitle   string   `json:"job_title"`
	Department string   `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
}

type DocumentResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	FilePath     string    `json:"file_path"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type ReviewMetricResponse struct {
	Key     string `json:"key"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type ReviewResponse struct {
	ID              string                 `json:"id"`
	ReviewerName    string                 `json:"reviewer_name,omitempty"`
	ReviewDate      string                 `json:"review_date"`
	OverallRating   *int                   `json:"overall_rating,omitempty"`
	OverallComments string                 `json:"overall_comments,omitempty"`
	Metrics         []ReviewMetricResponse `json:"metrics"`
	CreatedAt       time.Time              `json:"created_at"`
}

type EmployeeDetailResponse struct {
	Employee   *EmployeeResponse            `json:"employee"`
	Profession *ProfessionResponse          `json:"profession"`
	Documents  []DocumentResponse           `json:"documents"`
	Reviews    []ReviewResponse             `json:"reviews"`
	Compliance compliance.ComplianceOutcome `json:"compliance"`
}

type EmployeeRowResponse struct {
	EmployeeResponse
	JobTitle   string   `json:"job_title,omitempty"`
	Department string   `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	CVPath     string   `json:"cv_path,omitempty"`
	CVFileName string   `json:"cv_file_name,omitempty"`
}

type EmployeeListResponse struct {
	Employees []EmployeeRowResponse `json:"employees"`
	Count     int                   `json:"count"`
}

type DepartmentsResponse struct {
	Departments []string `json:"departments"`
}

type PreviewResponse struct {
	Valid      bool                         `json:"valid"`
	Problems   []compliance.FieldProblem    `json:"problems"`
	Compliance compliance.ComplianceOutcome `json:"compliance"`
}

// RecordInvalidResponse is the 422 body. Submitted echoes the request so a form
// can be re-rendered with the user's values.
type RecordInvalidResponse struct {
	Error            string                    `json:"error"`
	ErrorDescription string                    `json:"error_description"`
	Problems         []compliance.FieldProblem `json:"problems"`
	Submitted        any                       `json:"submitted,omitempty"`
}

type UploadResponse struct {
	Type     string            `json:"type"`
	Path     string            `json:"path"`
	Document *DocumentResponse `json:"document,omitempty"`
}

// Response mapping functions - convert domain objects to HTTP DTOs

func toEmployeeResponse(e *models.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:             e.ID.String(),
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		BirthDate:      models.FormatDate(e.BirthDate),
		Email:          e.Email,
		Phone:          e.Phone,
		Address:        e.Address,
		PhotoPath:      e.PhotoPath,
		Active:         e.IsActive(),
		InactiveReason: e.InactiveReason,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toProfessionResponse(p *models.Profession) *ProfessionResponse {
	if p == nil {
		return nil
	}
	return &ProfessionResponse{
		ID:         p.ID.String(),
		JobTitle:   p.JobTitle,
		Department: p.Department,
		Salary:     p.Salary,
		StartDate:  models.FormatDate(p.StartDate),
		EndDate:    models.FormatDate(p.EndDate),
	}
}

func toDocumentResponse(d *models.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID.String(),
		Type:         string(d.Type),
		FilePath:     d.FilePath,
		OriginalName: d.OriginalName,
		UploadedAt:   d.UploadedAt,
	}
}

func toReviewResponse(r *models.Review) *ReviewResponse {
	metrics := make([]ReviewMetricResponse, len(r.Metrics))
	for i, m := range r.Metrics {
		metrics[i] = ReviewMetricResponse{Key: string(m.Key), Rating: m.Rating, Comment: m.Comment}
	}
	return &ReviewResponse{
		ID:              r.ID.String(),
		ReviewerName:    r.ReviewerName,
		ReviewDate:      r.ReviewDate.Format(time.DateOnly),
		OverallRating:   r.OverallRating,
		OverallComments: r.OverallComments,
		Metrics:         metrics,
		CreatedAt:       r.CreatedAt,
	}
}

func toEmployeeDetailResponse(d *models.EmployeeDetail) *EmployeeDetailResponse {
	docs := make([]DocumentResponse, len(d.Documents))
	for i := range d.Documents {
		docs[i] = *toDocumentResponse(&d.Documents[i])
	}
	reviews := make([]ReviewResponse, len(d.Reviews))
	for i := range d.Reviews {
		reviews[i] = *toReviewResponse(&d.Reviews[i])
	}
	return &EmployeeDetailResponse{
		Employee:   toEmployeeResponse(d.Employee),
		Profession: toProfessionResponse(d.Profession),
		Documents:  docs,
		Reviews:    reviews,
		Compliance: d.Compliance,
	}
}

func toEmployeeListResponse(rows []models.EmployeeRow) *EmployeeListResponse {
	out := make([]EmployeeRowResponse, len(rows))
	for i := range rows {
		row := &rows[i]
		out[i] = EmployeeRowResponse{
			EmployeeResponse: *toEmployeeResponse(&row.Employee),
			JobTitle:         row.JobTitle,
			Department:       row.Department,
			Salary:           row.Salary,
			StartDate:        models.FormatDate(row.StartDate),
			EndDate:          models.FormatDate(row.EndDate),
			CVPath:           row.CVPath,
			CVFileName:       row.CVFileName,
		}
	}
	return &EmployeeListResponse{Employees: out, Count: len(out)}
}

func toPreviewResponse(p *service.RecordPreview) *PreviewResponse {
	return &PreviewResponse{
		Valid:      p.Validation.OK,
		Problems:   p.Validation.Problems,
		Compliance: p.Compliance,
	}
}

func toUploadResponse(res *service.UploadResult) *UploadResponse {
	out := &UploadResponse{Type: string(res.Type), Path: res.Path}
	if res.Document != nil {
		out.Document = toDocumentResponse(res.Document)
	}
	return out
}
