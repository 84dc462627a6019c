// Package verify checks whether a claimed node set dominates a graph.
package verify

import (
	"fmt"

	"domsetbench/internal/pace"
)

// DominatingSet reports whether nodes is a valid dominating set for a
// graph of n nodes described by edges. It builds an adjacency list
// bounded by n, marks every node in the set and its neighbors as
// covered, and succeeds iff every node ends up covered.
func DominatingSet(n uint32, edges []pace.Edge, nodes []uint32) (bool, error) {
	adj := make([][]uint32, n)
	for _, e := range edges {
		if e.U >= n || e.V >= n {
			return false, fmt.Errorf("verify: edge endpoint %d/%d >= n=%d", e.U, e.V, n)
		}
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	covered := make([]bool, n)
	coveredCount := 0

	mark := func(u uint32) {
		if !covered[u] {
			covered[u] = true
			coveredCount++
		}
	}

	for _, u := range nodes {
		if u >= n {
			return false, fmt.Errorf("verify: node id %d >= n=%d", u, n)
		}
		mark(u)
		for _, v := range adj[u] {
			mark(v)
		}
	}

	return coveredCount == int(n), nil
}
