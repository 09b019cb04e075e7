package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrcore/internal/employee/models"
	"hrcore/internal/employee/service"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/httputil"
	request "hrcore/pkg/platform/middleware/request"
	"hrcore/pkg/platform/validation"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

// Service defines the interface for employee operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Preview(ctx context.Context, cmd *service.CreateEmployeeCommand, hasIDDocument bool) (*service.RecordPreview, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.EmployeeRow, error)
	Departments(ctx context.Context) ([]string, error)
	Create(ctx context.Context, cmd *service.CreateEmployeeCommand) (*models.EmployeeDetail, error)
	Get(ctx context.Context, employeeID id.EmployeeID) (*models.EmployeeDetail, error)
	Update(ctx context.Context, employeeID id.EmployeeID, cmd *service.UpdateEmployeeCommand) (*models.Employee, error)
	Deactivate(ctx context.Context, employeeID id.EmployeeID, cmd *service.DeactivateCommand) (*models.Employee, error)
	UpdateProfession(ctx context.Context, employeeID id.EmployeeID, cmd *service.UpdateProfessionCommand) (*models.Profession, error)
	UploadDocument(ctx context.Context, cmd *service.UploadDocumentCommand) (*service.UploadResult, error)
	DeleteDocument(ctx context.Context, employeeID id.EmployeeID, documentID id.DocumentID) error
	AddReview(ctx context.Context, employeeID id.EmployeeID, cmd *service.AddReviewCommand) (*models.Review, error)
}

type Handler struct {
	service       Service
	logger        *slog.Logger
	maxUploadSize int64
}

type Option func(*Handler)

// WithMaxUploadSize caps the multipart body of document uploads.
func WithMaxUploadSize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadSize = n
		}
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger, maxUploadSize: validation.DefaultMaxUploadSize}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the JSON routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/employees/validate", h.HandleValidate)
	r.Get("/employees", h.HandleList)
	r.Get("/departments", h.HandleDepartments)
	r.Post("/employees", h.HandleCreate)
	r.Get("/employees/{id}", h.HandleGet)
	r.Put("/employees/{id}", h.HandleUpdate)
	r.Post("/employees/{id}/deactivate", h.HandleDeactivate)
	r.Put("/employees/{id}/profession", h.HandleUpdateProfession)
	r.Delete("/employees/{id}/documents/{documentID}", h.HandleDeleteDocument)
	r.Post("/employees/{id}/reviews", h.HandleAddReview)
}

// RegisterUploads mounts the multipart routes. They must sit outside the JSON
// content-type and body-limit middleware.
func (h *Handler) RegisterUploads(r chi.Router) {
	r.Post("/employees/{id}/documents", h.HandleUploadDocument)
}

// HandleValidate runs record validation and compliance on a submission without saving it.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRecordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	preview, err := h.service.Preview(ctx, req.ToCreateCommand(), req.HasIDDocument)
	if err != nil {
		h.logger.ErrorContext(ctx, "validate employee failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPreviewResponse(preview))
}

// HandleList lists employees with their latest profession and CV.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	rows, err := h.service.List(ctx, listFilterFromQuery(r.URL.Query()))
	if err != nil {
		h.logger.ErrorContext(ctx, "list employees failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEmployeeListResponse(rows))
}

func (h *Handler) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	departments, err := h.service.Departments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list departments failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DepartmentsResponse{Departments: departments})
}

// HandleCreate stores a new employee. An invalid record is answered with 422,
// every problem found and the submitted values.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	detail, err := h.service.Create(ctx, req.ToCreateCommand())
	if err != nil {
		h.writeServiceError(ctx, w, err, req, "create employee failed")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toEmployeeDetailResponse(detail))
}

// HandleGet returns the employee page: record, latest profession, documents,
// reviews and compliance.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Get(ctx, employeeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get employee failed", "error", err, "request_id", requestID, "employee_id", employeeID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEmployeeDetailResponse(detail))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateEmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	emp, err := h.service.Update(ctx, employeeID, req.ToCommand())
	if err != nil {
		h.writeServiceError(ctx, w, err, req, "update employee failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[DeactivateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	emp, err := h.service.Deactivate(ctx, employeeID, &service.DeactivateCommand{Reason: req.Reason})
	if err != nil {
		h.logger.ErrorContext(ctx, "deactivate employee failed", "error", err, "request_id", requestID, "employee_id", employeeID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *Handler) HandleUpdateProfession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	prof, err := h.service.UpdateProfession(ctx, employeeID, req.ToCommand())
	if err != nil {
		h.writeServiceError(ctx, w, err, req, "update profession failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfessionResponse(prof))
}

// HandleUploadDocument accepts a multipart form with a "type" field and a "file" part.
func (h *Handler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.logger.WarnContext(ctx, "failed to parse upload", "error", err, "request_id", requestID)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "file is required"))
		return
	}
	defer file.Close()

	res, err := h.service.UploadDocument(ctx, &service.UploadDocumentCommand{
		EmployeeID: employeeID,
		Type:       models.DocumentType(strings.ToUpper(strings.TrimSpace(r.FormValue("type")))),
		FileName:   header.Filename,
		Content:    file,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "upload document failed", "error", err, "request_id", requestID, "employee_id", employeeID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toUploadResponse(res))
}

func (h *Handler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document id"))
		return
	}

	if err := h.service.DeleteDocument(ctx, employeeID, documentID); err != nil {
		h.logger.ErrorContext(ctx, "delete document failed", "error", err, "request_id", requestID,
			"employee_id", employeeID, "document_id", documentID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	employeeID, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddReviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	review, err := h.service.AddReview(ctx, employeeID, req.ToCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "add review failed", "error", err, "request_id", requestID, "employee_id", employeeID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toReviewResponse(review))
}

func parseEmployeeID(w http.ResponseWriter, r *http.Request) (id.EmployeeID, bool) {
	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid employee id"))
		return id.EmployeeID{}, false
	}
	return employeeID, true
}

// writeServiceError renders record validation failures as 422 and everything
// else through the domain error mapping.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, submitted any, msg string) {
	var invalid *models.RecordInvalidError
	if errors.As(err, &invalid) {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, &RecordInvalidResponse{
			Error:            "validation_error",
			ErrorDescription: invalid.Error(),
			Problems:         invalid.Outcome.Problems,
			Submitted:        submitted,
		})
		return
	}
	h.logger.ErrorContext(ctx, msg, "error", err, "request_id", request.GetRequestID(ctx))
	httputil.WriteError(w, err)
}
