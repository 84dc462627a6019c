// Package respond is the single translator from core errors to the
// JSON error envelope spec.md §7 mandates, plus small helpers for the
// success-shaped responses every handler returns.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"domsetbench/internal/apperror"
	"domsetbench/internal/logger"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Error writes err as a JSON error body with the status code its
// apperror.Code maps to. Causes are logged server-side only; the
// client-facing message never includes SQL text or stack traces.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Wrap(err, apperror.CodeDependency, "internal error")
	}

	if appErr.Cause != nil {
		logger.Log.Error("request failed", "kind", appErr.Code, "message", appErr.Message, "cause", appErr.Cause)
	} else if appErr.Code == apperror.CodeDependency || appErr.Code == apperror.CodeIntegrity {
		logger.Log.Error("request failed", "kind", appErr.Code, "message", appErr.Message)
	}

	JSON(w, appErr.StatusCode(), errorBody{
		Status:  "error",
		Message: appErr.Message,
		Kind:    string(appErr.Code),
	})
}

// JSON writes v as an application/json response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode json response", "error", err)
	}
}

// OK writes v as a 200 JSON response.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Text writes a plain-text 200 response.
func Text(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
