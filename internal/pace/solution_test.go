package pace

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadSolutionBasic(t *testing.T) {
	nodes, err := ReadSolution(strings.NewReader("c comment\n2\n3\n1\n"), 0)
	if err != nil {
		t.Fatalf("ReadSolution: %v", err)
	}
	want := []uint32{0, 2}
	if len(nodes) != len(want) || nodes[0] != want[0] || nodes[1] != want[1] {
		t.Errorf("nodes = %v, want %v", nodes, want)
	}
}

func TestReadSolutionRejectsCountMismatch(t *testing.T) {
	_, err := ReadSolution(strings.NewReader("3\n1\n2\n"), 0)
	if err == nil {
		t.Fatal("expected error for declared/actual size mismatch")
	}
}

func TestReadSolutionRejectsDuplicates(t *testing.T) {
	_, err := ReadSolution(strings.NewReader("2\n1\n1\n"), 0)
	if err == nil {
		t.Fatal("expected error for duplicate node ids")
	}
}

func TestReadSolutionRejectsOutOfBounds(t *testing.T) {
	_, err := ReadSolution(strings.NewReader("1\n5\n"), 3)
	if err == nil {
		t.Fatal("expected error for node id beyond bound")
	}
}

func TestReadSolutionRejectsNonNumeric(t *testing.T) {
	_, err := ReadSolution(strings.NewReader("1\nabc\n"), 0)
	if err == nil {
		t.Fatal("expected error for non-numeric node id")
	}
}

func TestWriteSolutionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSolution(&buf, []uint32{0, 2, 4}); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}
	nodes, err := ReadSolution(strings.NewReader(buf.String()), 0)
	if err != nil {
		t.Fatalf("ReadSolution: %v", err)
	}
	want := []uint32{0, 2, 4}
	for i, n := range want {
		if nodes[i] != n {
			t.Errorf("nodes[%d] = %d, want %d", i, nodes[i], n)
		}
	}
}

func TestWriteSolutionRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSolution(&buf, nil); err == nil {
		t.Fatal("expected error writing empty solution")
	}
}
