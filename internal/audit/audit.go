// Package audit captures the trail of admin mutations against
// Instance/Tag/SolverRun state (spec.md §8): who changed what, when,
// and whether it succeeded.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names the kind of admin operation an Entry records.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	// ActionUpload marks an instance or solution content-addressed write.
	ActionUpload Action = "UPLOAD"
	// ActionGC marks an orphaned InstanceData/SolutionData row being
	// removed as part of a transactional delete.
	ActionGC Action = "GC"
)

// Outcome is the result of an audited action.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
)

// Entry is one row of the audit trail.
type Entry struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Service    string         `json:"service"`
	Method     string         `json:"method"`
	Action     Action         `json:"action"`
	Outcome    Outcome        `json:"outcome"`
	ClientIP   string         `json:"client_ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Resource   string         `json:"resource,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	DurationMs int64          `json:"duration_ms"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Logger is implemented by every audit backend.
type Logger interface {
	Log(ctx context.Context, entry *Entry) error
	Close() error
}

// Config controls the audit backend. Only the fields a backend in
// this package actually reads are kept; the teacher's gRPC-era
// request/response capture and field-masking knobs had no consumer
// here and have been dropped rather than carried as dead config.
type Config struct {
	Enabled     bool          `koanf:"enabled"`
	Backend     string        `koanf:"backend"` // stdout, file
	FilePath    string        `koanf:"file_path"`
	BufferSize  int           `koanf:"buffer_size"`
	FlushPeriod time.Duration `koanf:"flush_period"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Backend:     "stdout",
		BufferSize:  1000,
		FlushPeriod: 5 * time.Second,
	}
}

// entryBuilder assembles an Entry field by field; the HTTP audit
// middleware and the server's startup/shutdown hooks only ever fill
// in a handful of the fields, so a builder reads more naturally at
// call sites than a struct literal with most fields left zero.
type entryBuilder struct {
	entry *Entry
}

func NewEntry() *entryBuilder {
	return &entryBuilder{entry: &Entry{Timestamp: time.Now(), Metadata: make(map[string]any)}}
}

func (b *entryBuilder) Service(s string) *entryBuilder { b.entry.Service = s; return b }
func (b *entryBuilder) Method(m string) *entryBuilder  { b.entry.Method = m; return b }
func (b *entryBuilder) Action(a Action) *entryBuilder  { b.entry.Action = a; return b }
func (b *entryBuilder) Outcome(o Outcome) *entryBuilder { b.entry.Outcome = o; return b }

func (b *entryBuilder) Client(ip, userAgent string) *entryBuilder {
	b.entry.ClientIP = ip
	b.entry.UserAgent = userAgent
	return b
}

func (b *entryBuilder) Resource(resource, resourceID string) *entryBuilder {
	b.entry.Resource = resource
	b.entry.ResourceID = resourceID
	return b
}

func (b *entryBuilder) Duration(d time.Duration) *entryBuilder {
	b.entry.DurationMs = d.Milliseconds()
	return b
}

func (b *entryBuilder) Meta(key string, value any) *entryBuilder {
	b.entry.Metadata[key] = value
	return b
}

func (b *entryBuilder) Build() *Entry {
	if b.entry.ID == "" {
		b.entry.ID = uuid.NewString()
	}
	return b.entry
}
