package request

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	capture := func(out *string) http.Handler {
		return RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*out = GetRequestID(r.Context())
		}))
	}

	t.Run("generates UUID when header missing", func(t *testing.T) {
		var got string
		w := httptest.NewRecorder()
		capture(&got).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Len(t, got, 36)
		assert.Equal(t, got, w.Header().Get("X-Request-ID"))
	})

	t.Run("reuses a well-formed client ID", func(t *testing.T) {
		var got string
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req.Header.Set("X-Request-ID", "payroll-sync.42_a")
		w := httptest.NewRecorder()
		capture(&got).ServeHTTP(w, req)

		assert.Equal(t, "payroll-sync.42_a", got)
		assert.Equal(t, "payroll-sync.42_a", w.Header().Get("X-Request-ID"))
	})

	t.Run("replaces malformed client IDs", func(t *testing.T) {
		for _, bad := range []string{
			"has space",
			"line\nbreak",
			`quote"d`,
			"semi;colon",
			strings.Repeat("a", MaxRequestIDLength+1),
		} {
			var got string
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			req.Header.Set("X-Request-ID", bad)
			capture(&got).ServeHTTP(httptest.NewRecorder(), req)

			assert.NotEqual(t, bad, got)
			assert.Len(t, got, 36, "input %q", bad)
		}
	})

	t.Run("accepts an ID at exactly the max length", func(t *testing.T) {
		assert.True(t, isValidRequestID(strings.Repeat("x", MaxRequestIDLength)))
		assert.False(t, isValidRequestID(""))
	})

	t.Run("context without middleware has no ID", func(t *testing.T) {
		assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	})
}

func TestRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/timesheets", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","error_description":"internal server error"}`, w.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestLoggerSkipsHealthyProbes(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Empty(t, logs.String())

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.RemoteAddr = "192.168.1.47:40000"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, logs.String(), `"path":"/employees"`)
	assert.Contains(t, logs.String(), `"client_ip":"192.168.1.0"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestContentTypeJSON(t *testing.T) {
	ok := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, "application/json; charset=utf-8", http.StatusNoContent},
		{"no content type", http.MethodPut, "", http.StatusNoContent},
		{"form post", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"get ignores header", http.MethodGet, "text/plain", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/employees", strings.NewReader("{}"))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			w := httptest.NewRecorder()
			ok.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	t.Run("under limit passes through", func(t *testing.T) {
		handler := BodyLimit(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Len(t, data, 64)
		}))
		handler.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))))
	})

	t.Run("over limit fails the read", func(t *testing.T) {
		var readErr error
		handler := BodyLimit(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		handler.ServeHTTP(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 65))))

		var maxErr *http.MaxBytesError
		require.ErrorAs(t, readErr, &maxErr)
		assert.Equal(t, int64(64), maxErr.Limit)
	})
}

func TestLatencyMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(LatencyMiddleware(m))
	r.Get("/employees/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/employees/1", "/employees/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, promtest.ToFloat64(m.responses.WithLabelValues("GET /employees/{id}", "404")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.responses.WithLabelValues("unmatched", "404")), 0)
}
