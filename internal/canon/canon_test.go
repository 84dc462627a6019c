package canon

import (
	"bytes"
	"testing"
)

func TestCanonicalizeDedupAndReorder(t *testing.T) {
	a := []byte("c demo\np ds 4 3\n1 2\n2 3\n3 4\n")
	b := []byte("p ds 4 4\n4 3\n1 2\n1 2\n3 2\n")

	ra, err := Canonicalize(a, false)
	if err != nil {
		t.Fatalf("canonicalize a: %v", err)
	}
	rb, err := Canonicalize(b, false)
	if err != nil {
		t.Fatalf("canonicalize b: %v", err)
	}

	if ra.Hash != rb.Hash {
		t.Errorf("hashes differ: %x vs %x", ra.Hash, rb.Hash)
	}
	if !bytes.Equal(ra.Bytes, rb.Bytes) {
		t.Errorf("bytes differ:\n%s\nvs\n%s", ra.Bytes, rb.Bytes)
	}
	want := []byte("p ds 4 3\n1 2\n2 3\n3 4\n")
	if !bytes.Equal(ra.Bytes, want) {
		t.Errorf("canonical bytes = %q, want %q", ra.Bytes, want)
	}
}

func TestCanonicalizeRejectsEmptyEdgeSet(t *testing.T) {
	_, err := Canonicalize([]byte("p ds 1 0\n"), false)
	if err == nil {
		t.Fatal("expected error for empty edge set")
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	raw := []byte("p ds 5 3\n1 2\n2 3\n3 4\n")
	first, err := Canonicalize(raw, false)
	if err != nil {
		t.Fatalf("first canonicalize: %v", err)
	}
	second, err := Canonicalize(first.Bytes, false)
	if err != nil {
		t.Fatalf("second canonicalize: %v", err)
	}
	if first.Hash != second.Hash || !bytes.Equal(first.Bytes, second.Bytes) {
		t.Errorf("canonicalize is not idempotent: %x/%q vs %x/%q", first.Hash, first.Bytes, second.Hash, second.Bytes)
	}
	if first.NumNodes != second.NumNodes || first.NumEdges != second.NumEdges {
		t.Errorf("n/m changed: %d/%d vs %d/%d", first.NumNodes, first.NumEdges, second.NumNodes, second.NumEdges)
	}
}

func TestCanonicalizeDropsUnusedVertices(t *testing.T) {
	// header claims 5 nodes but only 1,2 are used; dense relabel should
	// produce n'=2.
	raw := []byte("p ds 5 1\n1 2\n")
	res, err := Canonicalize(raw, false)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if res.NumNodes != 2 || res.NumEdges != 1 {
		t.Errorf("n/m = %d/%d, want 2/1", res.NumNodes, res.NumEdges)
	}
}

func TestCanonicalizeCheckHeaderRejectsOutOfRangeEdge(t *testing.T) {
	raw := []byte("p ds 2 1\n1 2\n")
	_, err := Canonicalize(raw, true)
	if err != nil {
		t.Fatalf("expected valid canonicalize, got %v", err)
	}

	lying := []byte("p ds 2 2\n1 2\n")
	if _, err := Canonicalize(lying, true); err == nil {
		t.Fatal("expected error when declared edge count does not match actual count")
	}

	// header claims 2 nodes but edge references node 3: check_header
	// must reject this, since the reader itself no longer bound-checks
	// edges against the header (that's the whole point of
	// ignore_header).
	outOfRange := []byte("p ds 2 1\n1 3\n")
	if _, err := Canonicalize(outOfRange, true); err == nil {
		t.Fatal("expected error when an edge endpoint exceeds the header's node count")
	}
}

func TestCanonicalizeIgnoreHeaderToleratesOutOfRangeEdge(t *testing.T) {
	// header claims 2 nodes but edge references node 3; with
	// check_header disabled (ignore_header: true at the HTTP layer)
	// this must be tolerated and the vertex relabeled densely, not
	// rejected.
	raw := []byte("p ds 2 1\n1 3\n")
	res, err := Canonicalize(raw, false)
	if err != nil {
		t.Fatalf("canonicalize with ignore_header: %v", err)
	}
	if res.NumNodes != 2 || res.NumEdges != 1 {
		t.Errorf("n/m = %d/%d, want 2/1", res.NumNodes, res.NumEdges)
	}
}

func TestCanonicalizeSelfLoopAndDuplicateInsensitive(t *testing.T) {
	withNoise := []byte("p ds 4 5\n1 1\n1 2\n1 2\n2 3\n3 4\n")
	clean := []byte("p ds 4 3\n1 2\n2 3\n3 4\n")

	noisy, err := Canonicalize(withNoise, false)
	if err != nil {
		t.Fatalf("canonicalize noisy: %v", err)
	}
	cleanRes, err := Canonicalize(clean, false)
	if err != nil {
		t.Fatalf("canonicalize clean: %v", err)
	}
	if noisy.Hash != cleanRes.Hash {
		t.Errorf("self-loop/duplicate noise changed the hash: %x vs %x", noisy.Hash, cleanRes.Hash)
	}
}
