package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"domsetbench/internal/apperror"
)

func TestParseFilterRejectsLoneOverlaySolver(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/instances?overlay_solver=abc", nil)
	_, err := parseFilter(req, 100, 500)
	if err == nil {
		t.Fatal("expected BadInput for overlay_solver without overlay_run")
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeBadInput {
		t.Fatalf("expected BadInput, got %v", err)
	}
}

func TestParseFilterRejectsLoneOverlayRun(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/instances?overlay_run=r1", nil)
	_, err := parseFilter(req, 100, 500)
	if err == nil {
		t.Fatal("expected BadInput for overlay_run without overlay_solver")
	}
}

func TestParseFilterRejectsOverlayOnlyFilterWithoutOverlay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/instances?overlay_score_min=1", nil)
	_, err := parseFilter(req, 100, 500)
	if err == nil {
		t.Fatal("expected BadInput for overlay_score_min without solver+run")
	}
}

func TestParseFilterRejectsOverlayStatusWithoutOverlay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/instances?overlay_status=Valid", nil)
	_, err := parseFilter(req, 100, 500)
	if err == nil {
		t.Fatal("expected BadInput for overlay_status without solver+run")
	}
}

func TestParseFilterAcceptsFullOverlay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/instances?overlay_solver=abc&overlay_run=r1&overlay_score_min=1&overlay_status=Valid", nil)
	f, err := parseFilter(req, 100, 500)
	if err != nil {
		t.Fatalf("expected valid filter, got %v", err)
	}
	if f.Overlay == nil || f.Overlay.Solver != "abc" || f.Overlay.Run != "r1" {
		t.Fatalf("overlay not populated correctly: %+v", f.Overlay)
	}
	if f.Overlay.ScoreRange.Empty() {
		t.Fatal("expected overlay_score_min to populate ScoreRange")
	}
	if f.Overlay.ResultStatus == nil || *f.Overlay.ResultStatus != "Valid" {
		t.Fatalf("expected overlay_status to populate ResultStatus, got %v", f.Overlay.ResultStatus)
	}
}

func TestParseFilterNoOverlayParamsLeavesOverlayNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/instances?nodes_min=3", nil)
	f, err := parseFilter(req, 100, 500)
	if err != nil {
		t.Fatalf("expected valid filter, got %v", err)
	}
	if f.Overlay != nil {
		t.Fatalf("expected nil overlay, got %+v", f.Overlay)
	}
}

