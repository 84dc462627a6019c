package verify

import (
	"testing"

	"domsetbench/internal/pace"
)

func TestDominatingSet(t *testing.T) {
	edges := []pace.Edge{{U: 0, V: 1}, {U: 1, V: 2}}

	ok, err := DominatingSet(3, edges, []uint32{1, 2})
	if err != nil || !ok {
		t.Errorf("{1,2} should dominate: ok=%v err=%v", ok, err)
	}

	ok, err = DominatingSet(3, edges, []uint32{0})
	if err != nil || !ok {
		t.Errorf("{0} should dominate via neighbor 1: ok=%v err=%v", ok, err)
	}

	ok, err = DominatingSet(3, edges, []uint32{2})
	if err != nil || ok {
		t.Errorf("{2} should not dominate node 0: ok=%v err=%v", ok, err)
	}
}

func TestDominatingSetRejectsOutOfRangeNode(t *testing.T) {
	edges := []pace.Edge{{U: 0, V: 1}}
	if _, err := DominatingSet(2, edges, []uint32{5}); err == nil {
		t.Fatal("expected error for out-of-range node in set")
	}
}

func TestDominatingSetRejectsOutOfRangeEdge(t *testing.T) {
	edges := []pace.Edge{{U: 0, V: 5}}
	if _, err := DominatingSet(2, edges, []uint32{0}); err == nil {
		t.Fatal("expected error for out-of-range edge endpoint")
	}
}

func TestDominatingSetEmptyGraph(t *testing.T) {
	ok, err := DominatingSet(1, nil, []uint32{0})
	if err != nil || !ok {
		t.Errorf("single isolated node dominated by itself: ok=%v err=%v", ok, err)
	}
}
