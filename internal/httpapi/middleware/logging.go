package middleware

import (
	"net/http"
	"strconv"
	"time"

	"domsetbench/internal/logger"
	"domsetbench/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLog logs one line per request and, when m is non-nil,
// records it into the HTTP request duration/count metrics.
func RequestLog(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			logger.Log.Info("http request",
				"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration_ms", duration.Milliseconds())

			if m != nil {
				m.RecordHTTPRequest(r.URL.Path, r.Method, strconv.Itoa(rec.status), duration)
			}
		})
	}
}
