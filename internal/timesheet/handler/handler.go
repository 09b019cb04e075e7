package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	empmodels "hrcore/internal/employee/models"
	"hrcore/internal/timesheet/models"
	"hrcore/internal/timesheet/service"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
	"hrcore/pkg/platform/httputil"
	request "hrcore/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

// Service defines the interface for timesheet operations.
type Service interface {
	Create(ctx context.Context, cmd *service.CreateTimesheetCommand) (*models.Row, error)
	Update(ctx context.Context, timesheetID id.TimesheetID, cmd *service.UpdateTimesheetCommand) (*models.Row, error)
	Get(ctx context.Context, timesheetID id.TimesheetID) (*models.Row, error)
	List(ctx context.Context) ([]models.Row, error)
	ActiveEmployees(ctx context.Context) ([]empmodels.Employee, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/timesheets", h.HandleList)
	r.Get("/timesheets/employees", h.HandleActiveEmployees)
	r.Get("/timesheets/{id}", h.HandleGet)
	r.Post("/timesheets", h.HandleCreate)
	r.Put("/timesheets/{id}", h.HandleUpdate)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	rows, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list timesheets failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toListResponse(rows))
}

// HandleActiveEmployees lists the employees a timesheet can be filed for.
func (h *Handler) HandleActiveEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	emps, err := h.service.ActiveEmployees(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list active employees failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	out := make([]EmployeeOptionResponse, len(emps))
	for i := range emps {
		out[i] = EmployeeOptionResponse{ID: emps[i].ID.String(), Name: emps[i].FullName()}
	}
	httputil.WriteJSON(w, http.StatusOK, &EmployeeOptionsResponse{Employees: out})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	timesheetID, ok := parseTimesheetID(w, r)
	if !ok {
		return
	}

	row, err := h.service.Get(ctx, timesheetID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get timesheet failed", "error", err, "request_id", requestID, "timesheet_id", timesheetID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTimesheetResponse(row))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTimesheetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	row, err := h.service.Create(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "create timesheet failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toTimesheetResponse(row))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	timesheetID, ok := parseTimesheetID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTimesheetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	row, err := h.service.Update(ctx, timesheetID, req.ToCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "update timesheet failed", "error", err, "request_id", requestID, "timesheet_id", timesheetID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTimesheetResponse(row))
}

func parseTimesheetID(w http.ResponseWriter, r *http.Request) (id.TimesheetID, bool) {
	timesheetID, err := id.ParseTimesheetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid timesheet id"))
		return id.TimesheetID{}, false
	}
	return timesheetID, true
}
