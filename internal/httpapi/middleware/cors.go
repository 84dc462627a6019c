package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"domsetbench/internal/config"
)

// corsPolicy is the CORS configuration resolved once per server
// start, so every request just looks headers up instead of
// re-joining slices or re-scanning for a wildcard.
type corsPolicy struct {
	allowAllOrigins bool
	origins         map[string]bool
	methods         string
	headers         string
	credentials     bool
	maxAge          string
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{
		origins:     make(map[string]bool, len(cfg.AllowedOrigins)),
		methods:     strings.Join(cfg.AllowedMethods, ", "),
		headers:     resolveAllowedHeaders(cfg.AllowedHeaders),
		credentials: cfg.AllowCredentials,
		maxAge:      strconv.Itoa(cfg.MaxAge),
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			p.allowAllOrigins = true
			continue
		}
		p.origins[o] = true
	}
	return p
}

func (p corsPolicy) originFor(requestOrigin string) string {
	if p.allowAllOrigins {
		return "*"
	}
	if p.origins[requestOrigin] {
		return requestOrigin
	}
	return ""
}

// CORS returns a middleware enforcing the configured origin/method/
// header policy for the plain-JSON HTTP API, short-circuiting
// preflight (OPTIONS) requests before they reach the handler chain.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := policy.originFor(r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Methods", policy.methods)
			h.Set("Access-Control-Allow-Headers", policy.headers)
			if policy.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Max-Age", policy.maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requiredCORSHeaders are sent in place of a wildcard configuration,
// since browsers won't attach Authorization to a request under a bare "*".
var requiredCORSHeaders = []string{
	"Accept", "Accept-Language", "Content-Language", "Content-Type",
	"Authorization", "Origin", "X-Requested-With",
}

func resolveAllowedHeaders(configured []string) string {
	for _, h := range configured {
		if h == "*" {
			return strings.Join(requiredCORSHeaders, ", ")
		}
	}

	for _, h := range configured {
		if strings.EqualFold(h, "Authorization") {
			return strings.Join(configured, ", ")
		}
	}
	return strings.Join(append(configured, "Authorization"), ", ")
}
