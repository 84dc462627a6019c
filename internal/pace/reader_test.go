package pace

import (
	"strings"
	"testing"
)

func TestNewReaderHeader(t *testing.T) {
	r, err := NewReader(strings.NewReader("c demo\np ds 4 3\n1 2\n2 3\n3 4\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.ProblemID() != "ds" {
		t.Errorf("ProblemID = %q, want ds", r.ProblemID())
	}
	if r.NumNodes() != 4 || r.NumEdges() != 3 {
		t.Errorf("NumNodes/NumEdges = %d/%d, want 4/3", r.NumNodes(), r.NumEdges())
	}
}

func TestReaderEdgesZeroIndexed(t *testing.T) {
	r, err := NewReader(strings.NewReader("p ds 3 2\n1 2\n2 3\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	edges, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []Edge{{U: 0, V: 1}, {U: 1, V: 2}}
	if len(edges) != len(want) {
		t.Fatalf("got %d edges, want %d", len(edges), len(want))
	}
	for i, e := range edges {
		if e != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestReaderRejectsTrailingHeaderTokens(t *testing.T) {
	_, err := NewReader(strings.NewReader("p ds 3 2 extra\n"))
	if err == nil {
		t.Fatal("expected error for trailing header tokens")
	}
}

func TestReaderRejectsMissingHeader(t *testing.T) {
	_, err := NewReader(strings.NewReader("c only a comment\n"))
	if err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestReaderRejectsNonNumericHeaderField(t *testing.T) {
	_, err := NewReader(strings.NewReader("p ds four 2\n"))
	if err == nil {
		t.Fatal("expected error for non-numeric n")
	}
}

func TestReaderToleratesEdgeBeyondHeaderNodeCount(t *testing.T) {
	// The reader itself does not enforce the header's declared node
	// count against edge endpoints; that's a header-consistency
	// concern left to callers that opt into it (canon.Canonicalize's
	// check_header), so that a caller which doesn't opt in can still
	// read and relabel an instance whose header undercounts nodes.
	r, err := NewReader(strings.NewReader("p ds 2 1\n1 3\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	edges, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(edges) != 1 || edges[0] != (Edge{U: 0, V: 2}) {
		t.Fatalf("edges = %v, want [{0 2}]", edges)
	}
}

func TestReaderRejectsZeroNodeID(t *testing.T) {
	r, err := NewReader(strings.NewReader("p ds 2 1\n0 1\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.ReadAll(); err == nil {
		t.Fatal("expected error for a 0-valued (non-1-indexed) node id")
	}
}

func TestReaderSkipsComments(t *testing.T) {
	r, err := NewReader(strings.NewReader("c first\np ds 2 1\nc middle\n1 2\nc trailing\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	edges, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(edges) != 1 || edges[0] != (Edge{U: 0, V: 1}) {
		t.Errorf("edges = %+v, want single edge {0,1}", edges)
	}
}
