package audit

import (
	"context"
	"testing"
	"time"
)

func TestNewEntryAssignsUUID(t *testing.T) {
	e1 := NewEntry().Build()
	e2 := NewEntry().Build()

	if e1.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if e1.ID == e2.ID {
		t.Fatal("expected distinct IDs across entries")
	}
}

func TestEntryBuilderPopulatesFields(t *testing.T) {
	e := NewEntry().
		Service("domsetbench").
		Method("POST").
		Action(ActionUpdate).
		Outcome(OutcomeSuccess).
		Client("10.0.0.1", "curl/8.0").
		Resource("instance", "42").
		Duration(150 * time.Millisecond).
		Meta("tag", "benchmark").
		Build()

	if e.Service != "domsetbench" || e.Method != "POST" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Action != ActionUpdate || e.Outcome != OutcomeSuccess {
		t.Fatalf("unexpected action/outcome: %+v", e)
	}
	if e.ClientIP != "10.0.0.1" || e.UserAgent != "curl/8.0" {
		t.Fatalf("unexpected client fields: %+v", e)
	}
	if e.Resource != "instance" || e.ResourceID != "42" {
		t.Fatalf("unexpected resource fields: %+v", e)
	}
	if e.DurationMs != 150 {
		t.Fatalf("expected duration_ms=150, got %d", e.DurationMs)
	}
	if e.Metadata["tag"] != "benchmark" {
		t.Fatalf("expected metadata to carry tag, got %+v", e.Metadata)
	}
}

func TestNoopLoggerDiscardsEntries(t *testing.T) {
	l := &NoopLogger{}
	if err := l.Log(context.Background(), NewEntry().Build()); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	l, err := New(&Config{Enabled: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := l.(*NoopLogger); !ok {
		t.Fatalf("expected NoopLogger when disabled, got %T", l)
	}
}

func TestNewStdoutBackend(t *testing.T) {
	l, err := New(&Config{Enabled: true, Backend: "stdout"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := l.(*StdoutLogger); !ok {
		t.Fatalf("expected StdoutLogger, got %T", l)
	}
	if err := l.Log(context.Background(), NewEntry().Build()); err != nil {
		t.Fatalf("Log: %v", err)
	}
}

func TestStdoutLoggerSkipsWhenDisabled(t *testing.T) {
	l := NewStdoutLogger(&Config{Enabled: false})
	if err := l.Log(context.Background(), NewEntry().Build()); err != nil {
		t.Fatalf("Log: %v", err)
	}
}
