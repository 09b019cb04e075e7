package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	empmodels "hrcore/internal/employee/models"
	"hrcore/internal/timesheet/handler/mocks"
	"hrcore/internal/timesheet/models"
	"hrcore/internal/timesheet/service"
	id "hrcore/pkg/domain"
	dErrors "hrcore/pkg/domain-errors"
)

// HandlerSuite drives the timesheet routes with a mocked service.
//
// Justification: request-level checks (uuid, date and clock formats, status enum)
// happen in the handler and must stop bad input before the service is called.
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	r := chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func row(employeeID id.EmployeeID) *models.Row {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	hours := 8.0
	return &models.Row{
		Timesheet: models.Timesheet{
			ID: id.NewTimesheetID(), EmployeeID: employeeID,
			StartTime: start, EndTime: start.Add(8 * time.Hour), HoursWorked: &hours,
			Status: models.StatusSubmitted, CreatedAt: start, UpdatedAt: start,
		},
		FirstName: "John",
		LastName:  "Doe",
	}
}

func (s *HandlerSuite) TestCreate() {
	empID := id.NewEmployeeID()

	s.Run("201", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd *service.CreateTimesheetCommand) (*models.Row, error) {
				s.Equal(empID, cmd.EmployeeID)
				s.Equal("2025-06-02", cmd.WorkDate)
				s.Equal("09:00", cmd.StartTime)
				s.Nil(cmd.HoursWorked)
				return row(empID), nil
			})

		rec := s.do(http.MethodPost, "/timesheets", `{
			"employee_id": "`+empID.String()+`", "work_date": "2025-06-02",
			"start_time": "09:00", "end_time": "17:00"
		}`)

		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var body TimesheetResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("John Doe", body.EmployeeName)
		s.Equal("2025-06-02", body.WorkDate)
		s.Equal("Submitted", body.Status)
	})

	s.Run("rejected before the service", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		for _, body := range []string{
			`{"work_date":"2025-06-02","start_time":"09:00","end_time":"17:00"}`,
			`{"employee_id":"nope","work_date":"2025-06-02","start_time":"09:00","end_time":"17:00"}`,
			`{"employee_id":"` + empID.String() + `","work_date":"2025/06/02","start_time":"09:00","end_time":"17:00"}`,
			`{"employee_id":"` + empID.String() + `","work_date":"2025-06-02","start_time":"9am","end_time":"17:00"}`,
			`{"employee_id":"` + empID.String() + `","work_date":"2025-06-02","start_time":"09:00","end_time":"17:00","hours_worked":-1}`,
			`{"employee_id":"` + empID.String() + `","work_date":"2025-06-02","start_time":"09:00","end_time":"17:00","status":"Pending"}`,
		} {
			rec := s.do(http.MethodPost, "/timesheets", body)
			s.Equal(http.StatusBadRequest, rec.Code, body)
		}
	})

	s.Run("service validation surfaces as 400", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "End time must be after start time."))

		rec := s.do(http.MethodPost, "/timesheets", `{
			"employee_id": "`+empID.String()+`", "work_date": "2025-06-02",
			"start_time": "17:00", "end_time": "09:00"
		}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"validation_error","error_description":"End time must be after start time."}`, rec.Body.String())
	})
}

func (s *HandlerSuite) TestUpdate() {
	r := row(id.NewEmployeeID())
	s.service.EXPECT().Update(gomock.Any(), r.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ id.TimesheetID, cmd *service.UpdateTimesheetCommand) (*models.Row, error) {
			s.Equal("Approved", cmd.Status)
			r.Status = models.StatusApproved
			return r, nil
		})

	rec := s.do(http.MethodPut, "/timesheets/"+r.ID.String(),
		`{"work_date":"2025-06-02","start_time":"09:00","end_time":"17:00","status":"Approved"}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"status":"Approved"`)
}

func (s *HandlerSuite) TestGet() {
	s.Run("invalid id", func() {
		rec := s.do(http.MethodGet, "/timesheets/123", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("not found", func() {
		s.service.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeNotFound, "timesheet not found"))
		rec := s.do(http.MethodGet, "/timesheets/"+id.NewTimesheetID().String(), "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.service.EXPECT().List(gomock.Any()).Return([]models.Row{*row(id.NewEmployeeID()), *row(id.NewEmployeeID())}, nil)

	rec := s.do(http.MethodGet, "/timesheets", "")

	s.Equal(http.StatusOK, rec.Code)
	var body TimesheetListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(2, body.Count)
}

func (s *HandlerSuite) TestActiveEmployees() {
	emp := empmodels.Employee{ID: id.NewEmployeeID(), FirstName: "Jane", LastName: "Smith"}
	s.service.EXPECT().ActiveEmployees(gomock.Any()).Return([]empmodels.Employee{emp}, nil)

	rec := s.do(http.MethodGet, "/timesheets/employees", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"employees":[{"id":"`+emp.ID.String()+`","name":"Jane Smith"}]}`, rec.Body.String())
}
