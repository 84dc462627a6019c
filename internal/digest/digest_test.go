package digest

import "testing"

func TestSolutionDigestOrderInvariant(t *testing.T) {
	a := Solution([]uint32{0, 2, 1})
	b := Solution([]uint32{1, 0, 2})
	if a != b {
		t.Errorf("digest depends on order: %x vs %x", a, b)
	}
}

func TestSolutionDigestDistinguishesSets(t *testing.T) {
	a := Solution([]uint32{0, 1})
	b := Solution([]uint32{0, 2})
	if a == b {
		t.Error("distinct sets produced the same digest")
	}
}

func TestInstanceDigestStable(t *testing.T) {
	bytes1 := []byte("p ds 3 1\n1 2\n")
	bytes2 := []byte("p ds 3 1\n1 2\n")
	if Instance(bytes1) != Instance(bytes2) {
		t.Error("identical bytes produced different digests")
	}
}
