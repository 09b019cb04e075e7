package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	employeehandler "hrcore/internal/employee/handler"
	"hrcore/internal/platform/health"
	timesheethandler "hrcore/internal/timesheet/handler"
	"hrcore/internal/upload"
	"hrcore/pkg/platform/httputil"
	"hrcore/pkg/platform/middleware/request"
	"hrcore/pkg/platform/middleware/requesttime"
	"hrcore/pkg/platform/validation"
)

// DefaultRequestTimeout applies when Deps.RequestTimeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// Deps are the handlers the router mounts. Uploads and Metrics are optional.
type Deps struct {
	Employees  *employeehandler.Handler
	Timesheets *timesheethandler.Handler
	Health     *health.Handler
	Uploads    http.Handler
	Metrics    *request.Metrics

	RequestTimeout time.Duration
	// MetricsHandler overrides the default Prometheus registry handler.
	MetricsHandler http.Handler
}

// NewRouter wires all public endpoints with middleware.
// JSON routes get the content-type and body-size guards; multipart uploads and
// static files are mounted beside them.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(deps.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "route not found",
		})
	})

	if deps.Health != nil {
		deps.Health.Register(r)
	}

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	if deps.Uploads != nil {
		r.Handle(upload.PublicPrefix+"*", deps.Uploads)
	}

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(timeout))
		if deps.Employees != nil {
			deps.Employees.RegisterUploads(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(timeout))
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(request.ContentTypeJSON)
		if deps.Employees != nil {
			deps.Employees.Register(r)
		}
		if deps.Timesheets != nil {
			deps.Timesheets.Register(r)
		}
	})

	return r
}
