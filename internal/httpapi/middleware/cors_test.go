package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"domsetbench/internal/config"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.CORSConfig
		requestOrigin  string
		requestMethod  string
		expectedOrigin string
		expectNoOrigin bool
	}{
		{
			name: "allowed origin",
			cfg: config.CORSConfig{
				AllowedOrigins:   []string{"http://localhost:3000"},
				AllowedMethods:   []string{"GET", "POST"},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
			},
			requestOrigin:  "http://localhost:3000",
			requestMethod:  http.MethodGet,
			expectedOrigin: "http://localhost:3000",
		},
		{
			name: "wildcard origin",
			cfg: config.CORSConfig{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET"},
				AllowedHeaders: []string{"Content-Type"},
			},
			requestOrigin:  "http://example.com",
			requestMethod:  http.MethodGet,
			expectedOrigin: "*",
		},
		{
			name: "disallowed origin",
			cfg: config.CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
				AllowedMethods: []string{"GET"},
				AllowedHeaders: []string{"Content-Type"},
			},
			requestOrigin:  "http://evil.example",
			requestMethod:  http.MethodGet,
			expectNoOrigin: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := CORS(tc.cfg)(next)

			req := httptest.NewRequest(tc.requestMethod, "/api/status", nil)
			req.Header.Set("Origin", tc.requestOrigin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tc.expectNoOrigin {
				if got != "" {
					t.Fatalf("expected no Access-Control-Allow-Origin header, got %q", got)
				}
				return
			}
			if got != tc.expectedOrigin {
				t.Fatalf("expected origin %q, got %q", tc.expectedOrigin, got)
			}
		})
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := CORS(cfg)(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/instances", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatal("preflight request must not reach the wrapped handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("expected Max-Age 600, got %q", rec.Header().Get("Access-Control-Max-Age"))
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("expected wildcard headers expanded to a concrete list")
	}
}
