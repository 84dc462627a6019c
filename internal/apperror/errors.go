// Package apperror provides the core error taxonomy used across the
// ingestion, storage, and query layers, with a single translator to HTTP
// status codes and JSON error bodies.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the class of failure. Handlers never branch on
// anything finer-grained than this.
type ErrorCode string

const (
	// CodeBadInput covers failed validation: malformed PACE text, an
	// out-of-range node id, a missing required field, an unrecognized
	// filter option.
	CodeBadInput ErrorCode = "BAD_INPUT"
	// CodeNotFound covers a lookup by id or hash that found nothing.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeConflict covers a unique-constraint violation: a duplicate tag
	// name, a second solution for the same (run, instance) pair.
	CodeConflict ErrorCode = "CONFLICT"
	// CodeDependency covers a database or transport failure; the caller
	// may retry.
	CodeDependency ErrorCode = "DEPENDENCY"
	// CodeIntegrity covers an invariant violation surfaced from the
	// store, such as a missing InstanceData row for a live Instance.
	CodeIntegrity ErrorCode = "INTEGRITY"
)

// Severity indicates how loudly an error should be surfaced in logs.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "error"
	}
}

// Error is the core error type. Code selects the HTTP status via
// StatusCode; Message is safe to return to a client verbatim; Cause,
// if set, is logged but never serialized.
type Error struct {
	Code     ErrorCode
	Message  string
	Field    string
	Details  map[string]any
	Cause    error
	Severity Severity
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusCode maps the error's Code to the HTTP status spec.md §7 assigns
// it: BadInput->400, NotFound->404, Conflict->409, Dependency/Integrity->500.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeBadInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeDependency, CodeIntegrity:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityError}
}

func NewWithField(code ErrorCode, message, field string) *Error {
	return &Error{Code: code, Message: message, Field: field, Details: make(map[string]any), Severity: SeverityError}
}

func NewWarning(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityWarning}
}

func NewCritical(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityCritical}
}

// Wrap attaches a Cause to a new Error without leaking the cause's text
// to Message; callers choose what's safe to say to a client.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Details: make(map[string]any), Severity: SeverityError}
}

func (e *Error) WithDetails(key string, value any) *Error {
	e.Details[key] = value
	return e
}

func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// Is reports whether err is an *Error with the given Code.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from err, defaulting to CodeDependency for
// anything that isn't an *Error (an un-typed failure is assumed to be a
// backend problem, not a client mistake).
func Code(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeDependency
}

func IsWarning(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Severity == SeverityWarning
	}
	return false
}

func IsCritical(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Severity == SeverityCritical
	}
	return false
}

// Predefined errors for common scenarios.
var (
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrEmptyUpdate   = New(CodeBadInput, "no fields to update")
	ErrEmptyEdgeSet  = New(CodeBadInput, "no edges to write")
	ErrDuplicateTag  = New(CodeConflict, "tag name already exists")
	ErrDuplicateRun  = New(CodeConflict, "a solution already exists for this run and instance")
	ErrUnknownHash   = New(CodeBadInput, "unknown cached solution hash")
	ErrInvalidDomSet = New(CodeBadInput, "solution is not a valid dominating set for the instance")
)

// ValidationErrors aggregates errors and warnings from a multi-field
// validation pass (e.g. §4.6.4's metadata update).
type ValidationErrors struct {
	Errors   []*Error
	Warnings []*Error
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]*Error, 0), Warnings: make([]*Error, 0)}
}

func (v *ValidationErrors) Add(err *Error) {
	if err.Severity == SeverityWarning {
		v.Warnings = append(v.Warnings, err)
	} else {
		v.Errors = append(v.Errors, err)
	}
}

func (v *ValidationErrors) AddError(code ErrorCode, message string) {
	v.Errors = append(v.Errors, New(code, message))
}

func (v *ValidationErrors) AddErrorWithField(code ErrorCode, message, field string) {
	v.Errors = append(v.Errors, NewWithField(code, message, field))
}

func (v *ValidationErrors) HasErrors() bool { return len(v.Errors) > 0 }

func (v *ValidationErrors) IsValid() bool { return !v.HasErrors() }

func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
}

func (v *ValidationErrors) ErrorMessages() []string {
	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Error()
	}
	return messages
}

// AsError collapses the collected errors into a single *Error carrying
// the first failure's code, for callers that need one error to return.
func (v *ValidationErrors) AsError() *Error {
	if !v.HasErrors() {
		return nil
	}
	first := v.Errors[0]
	err := New(first.Code, first.Message)
	err.Details["all_errors"] = v.ErrorMessages()
	return err
}
