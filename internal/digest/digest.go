// Package digest computes the content-address hashes used to
// deduplicate Instance and Solution payloads.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// Instance returns the SHA-256 digest of canonical PACE bytes.
func Instance(canonicalBytes []byte) [32]byte {
	return sha256.Sum256(canonicalBytes)
}

// Solution returns the SHA-1 digest over the little-endian 4-byte
// encodings of each 1-indexed node id, in sorted order. This makes
// the digest insensitive to submission order, matching the identity
// used to deduplicate Solution payloads across runs.
func Solution(zeroIndexedNodes []uint32) [20]byte {
	sorted := make([]uint32, len(zeroIndexedNodes))
	copy(sorted, zeroIndexedNodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	h := sha1.New()
	var buf [4]byte
	for _, node := range sorted {
		binary.LittleEndian.PutUint32(buf[:], node+1)
		h.Write(buf[:])
	}

	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}
