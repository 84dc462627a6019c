package apperror

import (
	"errors"
	"net/http"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"without field", New(CodeBadInput, "bad data"), "[BAD_INPUT] bad data"},
		{"with field", NewWithField(CodeBadInput, "missing name", "name"), "[BAD_INPUT] missing name (field: name)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, CodeDependency, "wrapped")

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeBadInput, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeDependency, http.StatusInternalServerError},
		{CodeIntegrity, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := New(tt.code, "x")
		if got := err.StatusCode(); got != tt.want {
			t.Errorf("StatusCode() for %s = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestIsAndCode(t *testing.T) {
	err := New(CodeConflict, "duplicate")
	if !Is(err, CodeConflict) {
		t.Errorf("Is() should match CodeConflict")
	}
	if Code(err) != CodeConflict {
		t.Errorf("Code() = %v, want CodeConflict", Code(err))
	}
	if Code(errors.New("plain")) != CodeDependency {
		t.Errorf("Code() on a plain error should default to CodeDependency")
	}
}

func TestValidationErrors(t *testing.T) {
	v := NewValidationErrors()
	if !v.IsValid() {
		t.Fatal("empty ValidationErrors should be valid")
	}

	v.AddErrorWithField(CodeBadInput, "degree out of range", "min_deg")
	v.AddErrorWithField(CodeBadInput, "num_ccs inconsistent", "num_ccs")

	if v.IsValid() {
		t.Fatal("ValidationErrors with errors should not be valid")
	}
	if len(v.ErrorMessages()) != 2 {
		t.Fatalf("expected 2 error messages, got %d", len(v.ErrorMessages()))
	}

	asErr := v.AsError()
	if asErr == nil || asErr.Code != CodeBadInput {
		t.Fatalf("AsError() should surface the first error's code")
	}
}
