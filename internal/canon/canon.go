// Package canon canonicalizes raw PACE instance bytes into a
// deterministic form, so that two inputs differing only in edge
// order, self-loop noise, duplicate edges, comments, whitespace, or
// unused node ids hash to the same content address.
package canon

import (
	"bytes"
	"fmt"
	"sort"

	"domsetbench/internal/digest"
	"domsetbench/internal/pace"
)

const problemID = "ds" // dominating set

// Result is a canonicalized instance ready for content-addressed storage.
type Result struct {
	NumNodes uint32
	NumEdges uint32
	Bytes    []byte
	Hash     [32]byte
}

// Canonicalize parses raw bytes, normalizes edges, relabels used
// nodes into a dense [0, n') range, and re-serializes. When
// checkHeader is true, it also enforces that every edge endpoint is
// within the declared header bound and that the deduplicated edge
// count matches the header's.
func Canonicalize(raw []byte, checkHeader bool) (*Result, error) {
	reader, err := pace.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	headerNodes := reader.NumNodes()
	headerEdges := reader.NumEdges()

	edges := make([]pace.Edge, 0, headerEdges)
	for {
		e, ok := reader.Next()
		if !ok {
			break
		}
		if e.U > e.V {
			e.U, e.V = e.V, e.U
		}
		if checkHeader && e.V >= headerNodes {
			return nil, fmt.Errorf("canon: edge contains node id larger than the number of nodes in the header")
		}
		if e.U == e.V {
			continue // drop self-loops
		}
		edges = append(edges, e)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})
	deduped := edges[:0:0]
	for i, e := range edges {
		if i == 0 || e != edges[i-1] {
			deduped = append(deduped, e)
		}
	}
	edges = deduped

	if checkHeader && uint32(len(edges)) != headerEdges {
		return nil, fmt.Errorf("canon: number of edges after deduplication does not match the header")
	}

	// Under check_header, every edge was already bound-checked above,
	// so headerNodes is a safe bitmap size. Without it, a caller may
	// have declared a header smaller than the nodes actually
	// referenced (ignore_header: true); size the bitmap to whichever
	// is larger so out-of-range edges are tolerated and relabeled
	// instead of panicking on an out-of-bounds index.
	nodeBound := headerNodes
	for _, e := range edges {
		if e.V+1 > nodeBound {
			nodeBound = e.V + 1
		}
	}

	usedNodes := make([]uint32, nodeBound)
	for _, e := range edges {
		usedNodes[e.U] = 1
		usedNodes[e.V] = 1
	}

	sum := uint32(0)
	for i, used := range usedNodes {
		tmp := used
		usedNodes[i] = sum
		sum += tmp
	}

	for i := range edges {
		edges[i].U = usedNodes[edges[i].U]
		edges[i].V = usedNodes[edges[i].V]
	}

	var buf bytes.Buffer
	numNodes, numEdges, err := pace.WriteInstance(&buf, problemID, edges)
	if err != nil {
		return nil, err
	}

	canonicalBytes := buf.Bytes()
	return &Result{
		NumNodes: numNodes,
		NumEdges: numEdges,
		Bytes:    canonicalBytes,
		Hash:     digest.Instance(canonicalBytes),
	}, nil
}
