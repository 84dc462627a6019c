package pace

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteInstanceNormalizesAndRelabels(t *testing.T) {
	edges := []Edge{{U: 3, V: 2}, {U: 1, V: 2}, {U: 1, V: 2}}
	var buf bytes.Buffer
	n, m, err := WriteInstance(&buf, "ds", edges)
	if err != nil {
		t.Fatalf("WriteInstance: %v", err)
	}
	if n != 3 || m != 2 {
		t.Errorf("n/m = %d/%d, want 3/2", n, m)
	}
	want := "p ds 3 2\n1 2\n3 2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteInstanceEmptyRejected(t *testing.T) {
	var buf bytes.Buffer
	if _, _, err := WriteInstance(&buf, "ds", nil); err == nil {
		t.Fatal("expected error writing empty edge set")
	}
}

func TestWriteInstanceRoundTripsThroughReader(t *testing.T) {
	edges := []Edge{{U: 5, V: 6}, {U: 6, V: 7}}
	var buf bytes.Buffer
	if _, _, err := WriteInstance(&buf, "ds", edges); err != nil {
		t.Fatalf("WriteInstance: %v", err)
	}
	r, err := NewReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []Edge{{U: 0, V: 1}, {U: 1, V: 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("round trip edges = %+v, want %+v", got, want)
	}
}
