package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"domsetbench/internal/audit"
	"domsetbench/internal/config"
	"domsetbench/internal/logger"
	"domsetbench/internal/telemetry"
)

// Server owns the http.Server and the audit logger, and shuts down
// the global telemetry provider on exit; the rate limiter is not
// closed here.
// Shutdown sequencing mirrors the teacher's gRPC server: stop
// accepting new work, drain in-flight requests, then close
// everything else.
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	auditLogger audit.Logger
}

func NewServer(cfg *config.Config, handler http.Handler, auditLogger audit.Logger) *Server {
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:      handler,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		},
		auditLogger: auditLogger,
	}
}

// Run starts the server and blocks until a shutdown signal is
// received and the drain completes.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		logger.Log.Info("http server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.auditLogger != nil {
		_ = s.auditLogger.Log(context.Background(), audit.NewEntry().
			Service("domsetbench").Method("startup").Action(audit.ActionCreate).
			Outcome(audit.OutcomeSuccess).Build())
	}

	return s.waitForShutdown(errCh)
}

func (s *Server) waitForShutdown(errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		logger.Log.Info("shutdown signal received", "signal", sig.String())
	}

	if s.auditLogger != nil {
		_ = s.auditLogger.Log(context.Background(), audit.NewEntry().
			Service("domsetbench").Method("shutdown").Action(audit.ActionDelete).
			Outcome(audit.OutcomeSuccess).Build())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Log.Error("http server shutdown error", "error", err)
	}

	if err := telemetry.Get().Shutdown(ctx); err != nil {
		logger.Log.Error("telemetry shutdown error", "error", err)
	}

	if s.auditLogger != nil {
		if err := s.auditLogger.Close(); err != nil {
			logger.Log.Error("audit logger close error", "error", err)
		}
	}

	logger.Log.Info("shutdown complete")
	return nil
}
