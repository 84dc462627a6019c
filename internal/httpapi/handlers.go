package httpapi

import (
	"domsetbench/internal/config"
	"domsetbench/internal/ingest"
	"domsetbench/internal/metrics"
	"domsetbench/internal/storage"
)

// Handlers holds everything the wire-surface handlers need: the raw
// DB handle for read-only queries (the query planner builds its own
// SQL) and the ingest.Service for every write path.
type Handlers struct {
	db        storage.DB
	ingest    *ingest.Service
	ingestCfg config.IngestConfig
	metrics   *metrics.Metrics
}

func NewHandlers(db storage.DB, svc *ingest.Service, ingestCfg config.IngestConfig, m *metrics.Metrics) *Handlers {
	return &Handlers{db: db, ingest: svc, ingestCfg: ingestCfg, metrics: m}
}
