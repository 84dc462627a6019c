package pace

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ReadSolution parses the solution text format: a line giving the
// declared size, followed by one 1-indexed node id per line (blank
// and comment lines tolerated). nodesUpperBound, if non-zero, rejects
// node ids at or beyond it.
func ReadSolution(r io.Reader, nodesUpperBound uint32) ([]uint32, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	declaredSize, ok := nextSolutionLine(scanner)
	if !ok {
		return nil, fmt.Errorf("pace: no solution size found")
	}
	size, err := strconv.ParseUint(declaredSize, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("pace: cannot parse solution size: %w", err)
	}

	nodes := make([]uint32, 0, size)
	for {
		line, ok := nextSolutionLine(scanner)
		if !ok {
			break
		}
		v, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("pace: non-numeric node id %q", line)
		}
		if v == 0 {
			return nil, fmt.Errorf("pace: node id smaller than 1")
		}
		node := uint32(v - 1)
		if nodesUpperBound > 0 && node >= nodesUpperBound {
			return nil, fmt.Errorf("pace: node id larger than the number of nodes in the header")
		}
		nodes = append(nodes, node)
	}

	if uint64(len(nodes)) != size {
		return nil, fmt.Errorf("pace: number of nodes in solution does not match declared size")
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	deduped := nodes[:0:0]
	for i, n := range nodes {
		if i == 0 || n != nodes[i-1] {
			deduped = append(deduped, n)
		}
	}
	if uint64(len(deduped)) != size {
		return nil, fmt.Errorf("pace: solution contains duplicates")
	}

	return deduped, nil
}

func nextSolutionLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		return line, true
	}
	return "", false
}

// WriteSolution writes the zero-indexed node set as 1-indexed text.
func WriteSolution(w io.Writer, nodes []uint32) error {
	if len(nodes) == 0 {
		return fmt.Errorf("pace: no solution to write")
	}

	if _, err := fmt.Fprintf(w, "%d\n", len(nodes)); err != nil {
		return err
	}
	for _, u := range nodes {
		if _, err := fmt.Fprintf(w, "%d\n", u+1); err != nil {
			return err
		}
	}
	return nil
}
