package middleware

import (
	"net/http"
	"strings"
	"time"

	"domsetbench/internal/audit"
)

// methodToAction classifies an admin request. The delete route is a
// GET, so the path is consulted as well as the method.
func methodToAction(method, path string) audit.Action {
	switch {
	case method == http.MethodDelete || strings.Contains(path, "/delete/"):
		return audit.ActionDelete
	case strings.HasSuffix(path, "/new"):
		return audit.ActionCreate
	default:
		return audit.ActionUpdate
	}
}

// Audit records one entry per admin-gated mutation, win or lose. The
// router places it inside AdminAuth, so only routes behind the gate
// pay for it and requests the gate rejects are not recorded.
func Audit(logger audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			outcome := audit.OutcomeSuccess
			if rec.status >= http.StatusBadRequest {
				outcome = audit.OutcomeFailure
			}

			entry := audit.NewEntry().
				Service("domsetbench").
				Method(r.Method).
				Action(methodToAction(r.Method, r.URL.Path)).
				Outcome(outcome).
				Client(clientIP(r), r.UserAgent()).
				Resource(r.URL.Path, "").
				Duration(time.Since(start)).
				Build()

			_ = logger.Log(r.Context(), entry)
		})
	}
}
