package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	employeehandler "hrcore/internal/employee/handler"
	"hrcore/internal/employee/models"
	employeeservice "hrcore/internal/employee/service"
	documentstore "hrcore/internal/employee/store/document"
	employeestore "hrcore/internal/employee/store/employee"
	professionstore "hrcore/internal/employee/store/profession"
	reviewstore "hrcore/internal/employee/store/review"
	"hrcore/internal/platform/health"
	timesheethandler "hrcore/internal/timesheet/handler"
	timesheetservice "hrcore/internal/timesheet/service"
	timesheetstore "hrcore/internal/timesheet/store/timesheet"
	"hrcore/internal/upload"
	id "hrcore/pkg/domain"
	"hrcore/pkg/platform/validation"
)

// RouterSuite drives the assembled router against in-memory services.
//
// Justification: the middleware split between JSON routes and multipart uploads
// only shows up once every handler is mounted on one mux; handler tests mount a
// single handler without the guards.
type RouterSuite struct {
	suite.Suite
	router    http.Handler
	employees *employeestore.InMemory
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storage, err := upload.NewLocal(s.T().TempDir(), validation.DefaultMaxUploadSize)
	s.Require().NoError(err)

	professions := professionstore.NewInMemory()
	documents := documentstore.NewInMemory()
	s.employees = employeestore.NewInMemory(employeestore.WithJoins(professions, documents))
	timesheets := timesheetstore.NewInMemory(timesheetstore.WithEmployees(s.employees))

	empSvc := employeeservice.New(s.employees, professions, documents, reviewstore.NewInMemory(), storage,
		employeeservice.WithLogger(logger))
	tsSvc := timesheetservice.New(timesheets, s.employees, timesheetservice.WithLogger(logger))

	s.router = NewRouter(Deps{
		Employees:      employeehandler.New(empSvc, logger),
		Timesheets:     timesheethandler.New(tsSvc, logger),
		Health:         health.New("testing"),
		Uploads:        storage.Handler(),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
		RequestTimeout: 5 * time.Second,
	}, logger)
}

func (s *RouterSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) seedEmployee() *models.Employee {
	emp, err := models.NewEmployee(id.NewEmployeeID(), "Jane", "Smith", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.employees.Create(context.Background(), emp))
	return emp
}

func (s *RouterSuite) TestPlatformRoutes() {
	s.Run("liveness", func() {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/health/live", nil))
		s.Equal(http.StatusOK, rec.Code)
		s.NotEmpty(rec.Header().Get("X-Request-ID"))
	})

	s.Run("metrics", func() {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown route is a JSON 404", func() {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/payroll", nil))
		s.Equal(http.StatusNotFound, rec.Code)
		s.JSONEq(`{"error":"not_found","error_description":"route not found"}`, rec.Body.String())
	})
}

func (s *RouterSuite) TestJSONGuards() {
	s.Run("non-JSON content type is rejected", func() {
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("first_name=John"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := s.do(req)
		s.Equal(http.StatusUnsupportedMediaType, rec.Code)
	})

	s.Run("oversized body is rejected", func() {
		body := `{"first_name":"` + strings.Repeat("x", validation.MaxBodySize) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := s.do(req)
		s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	})

	s.Run("timesheets list is mounted", func() {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/timesheets", nil))
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})
}

func (s *RouterSuite) TestUploadIsServed() {
	emp := s.seedEmployee()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	s.Require().NoError(mw.WriteField("type", "photo"))
	part, err := mw.CreateFormFile("file", "portrait.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("png-bytes"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/employees/"+emp.ID.String()+"/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := s.do(req)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded employeehandler.UploadResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&uploaded))
	s.Equal("PHOTO", uploaded.Type)
	s.True(strings.HasPrefix(uploaded.Path, upload.PublicPrefix+"photos/"), uploaded.Path)

	rec = s.do(httptest.NewRequest(http.MethodGet, uploaded.Path, nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("png-bytes", rec.Body.String())
}
