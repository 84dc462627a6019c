package pace

import (
	"fmt"
	"io"
	"sort"
)

// WriteInstance sorts, deduplicates, and writes edges in PACE format,
// relabeling the used node-id range down to start at 1. It returns
// the resulting (n, m) after dedup and relabeling.
func WriteInstance(w io.Writer, problemID string, edges []Edge) (numNodes, numEdges uint32, err error) {
	if len(edges) == 0 {
		return 0, 0, fmt.Errorf("pace: no edges to write")
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].U != sorted[j].U {
			return sorted[i].U < sorted[j].U
		}
		return sorted[i].V < sorted[j].V
	})

	deduped := sorted[:0:0]
	for i, e := range sorted {
		if i == 0 || e != sorted[i-1] {
			deduped = append(deduped, e)
		}
	}

	minNode, maxNode := deduped[0].U, deduped[0].U
	for _, e := range deduped {
		if e.U < minNode {
			minNode = e.U
		}
		if e.V < minNode {
			minNode = e.V
		}
		if e.U > maxNode {
			maxNode = e.U
		}
		if e.V > maxNode {
			maxNode = e.V
		}
	}

	numNodes = maxNode - minNode + 1
	numEdges = uint32(len(deduped))

	if _, err := fmt.Fprintf(w, "p %s %d %d\n", problemID, numNodes, numEdges); err != nil {
		return 0, 0, err
	}

	for _, e := range deduped {
		if _, err := fmt.Fprintf(w, "%d %d\n", e.U-minNode+1, e.V-minNode+1); err != nil {
			return 0, 0, err
		}
	}

	return numNodes, numEdges, nil
}
