package httpapi

import (
	"net/http"

	"domsetbench/internal/audit"
	"domsetbench/internal/config"
	"domsetbench/internal/httpapi/middleware"
	"domsetbench/internal/metrics"
	"domsetbench/internal/ratelimit"
)

// chain applies middleware in the order given, so the first listed
// runs outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// NewRouter builds the complete wire surface (spec.md §6): public
// read endpoints, rate-limited public write endpoints, and
// admin-gated + audited mutation endpoints.
func NewRouter(h *Handlers, cfg *config.Config, limiter ratelimit.Limiter, auditLogger audit.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	adminGate := middleware.AdminAuth(cfg.Admin.Enabled, cfg.Admin.JWTSecret)
	rateLimit := middleware.RateLimit(limiter)
	auditLog := middleware.Audit(auditLogger)

	admin := func(handler http.HandlerFunc) http.Handler {
		return chain(handler, rateLimit, adminGate, auditLog)
	}
	limited := func(handler http.HandlerFunc) http.Handler {
		return chain(handler, rateLimit)
	}

	mux.Handle("GET /api/status", http.HandlerFunc(h.Status))
	mux.Handle("GET /api/instances", http.HandlerFunc(h.InstancesList))
	mux.Handle("GET /api/instance_list", http.HandlerFunc(h.InstanceList))
	mux.Handle("GET /api/instances/download/{id}", http.HandlerFunc(h.InstanceDownload))
	mux.Handle("GET /api/tags", http.HandlerFunc(h.TagsList))
	mux.Handle("GET /api/solutions/download/{hash}", http.HandlerFunc(h.SolutionsDownload))
	mux.Handle("GET /api/solution_hashes/{solver_uuid}", http.HandlerFunc(h.SolutionHashes))
	mux.Handle("GET /api/solver_run/list", http.HandlerFunc(h.SolverRunList))
	mux.Handle("GET /api/solver_run/performance", http.HandlerFunc(h.SolverRunPerformance))
	mux.Handle("GET /api/instance_fetch_unsolved", http.HandlerFunc(h.InstanceFetchUnsolved))
	mux.Handle("GET /api/instance_solutions", http.HandlerFunc(h.InstanceSolutions))

	mux.Handle("POST /api/solutions/new", limited(h.SolutionsNew))

	mux.Handle("POST /api/instances/new", admin(h.InstancesNew))
	mux.Handle("POST /api/instances/update", admin(h.InstancesUpdate))
	mux.Handle("GET /api/instances/delete/{id}", admin(h.InstancesDelete))
	mux.Handle("POST /api/tags/new", admin(h.TagsNew))
	mux.Handle("GET /api/solver_run/annotate", admin(h.SolverRunAnnotate))

	var root http.Handler = mux
	if cfg.HTTP.CORS.Enabled {
		root = middleware.CORS(cfg.HTTP.CORS)(root)
	}
	root = middleware.RequestLog(m)(root)

	return root
}
