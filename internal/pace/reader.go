// Package pace implements the PACE DIMACS-style text format used to
// exchange dominating-set instances and solutions.
package pace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Edge is an undirected edge between two zero-indexed nodes.
type Edge struct {
	U, V uint32
}

// Reader streams a PACE instance: eager header, lazy edge iteration.
type Reader struct {
	scanner   *bufio.Scanner
	problemID string
	numNodes  uint32
	numEdges  uint32
	err       error
}

// NewReader parses the header eagerly and leaves edges for Next.
func NewReader(r io.Reader) (*Reader, error) {
	pr := &Reader{scanner: bufio.NewScanner(r)}
	pr.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n, m, err := pr.parseHeader()
	if err != nil {
		return nil, err
	}
	pr.numNodes = n
	pr.numEdges = m
	return pr, nil
}

func (r *Reader) ProblemID() string  { return r.problemID }
func (r *Reader) NumNodes() uint32   { return r.numNodes }
func (r *Reader) NumEdges() uint32   { return r.numEdges }
func (r *Reader) Err() error         { return r.err }

func (r *Reader) nextNonCommentLine() (string, bool) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.HasPrefix(line, "c") {
			continue
		}
		return line, true
	}
	return "", false
}

func (r *Reader) parseHeader() (uint32, uint32, error) {
	line, ok := r.nextNonCommentLine()
	if !ok {
		return 0, 0, fmt.Errorf("pace: no header found")
	}

	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "p") {
		return 0, 0, fmt.Errorf("pace: invalid header, line should start with p")
	}
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("pace: invalid header, no problem id found")
	}
	r.problemID = fields[1]

	if len(fields) < 4 {
		return 0, 0, fmt.Errorf("pace: premature end of header line")
	}

	n, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("pace: cannot parse number of nodes: %w", err)
	}
	m, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("pace: cannot parse number of edges: %w", err)
	}

	if len(fields) > 4 {
		return 0, 0, fmt.Errorf("pace: invalid header, expected end of line")
	}

	return uint32(n), uint32(m), nil
}

// Next returns the next edge, converted to zero-based node ids, or
// false once the stream is exhausted. Check Err after the loop ends.
func (r *Reader) Next() (Edge, bool) {
	if r.err != nil {
		return Edge{}, false
	}

	line, ok := r.nextNonCommentLine()
	if !ok {
		return Edge{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		r.err = fmt.Errorf("pace: premature end of edge line")
		return Edge{}, false
	}

	u, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		r.err = fmt.Errorf("pace: cannot parse source node: %w", err)
		return Edge{}, false
	}
	v, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		r.err = fmt.Errorf("pace: cannot parse target node: %w", err)
		return Edge{}, false
	}

	// Node ids are 1-indexed by format; 0 isn't a representable
	// zero-based id and can't be a parsing ambiguity, so it's rejected
	// here regardless of the header. Whether an edge's endpoint falls
	// within the declared node count is a header-consistency concern,
	// not a wire-format one, and is left to callers that opt into it
	// (see canon.checkHeader) so that a lenient caller can still
	// relabel instances whose header undercounts nodes.
	if u < 1 || v < 1 {
		r.err = fmt.Errorf("pace: edge endpoint must be >= 1")
		return Edge{}, false
	}

	return Edge{U: uint32(u - 1), V: uint32(v - 1)}, true
}

// ReadAll drains the reader into a slice, or returns Err if parsing
// failed partway through.
func (r *Reader) ReadAll() ([]Edge, error) {
	edges := make([]Edge, 0, r.numEdges)
	for {
		e, ok := r.Next()
		if !ok {
			break
		}
		edges = append(edges, e)
	}
	return edges, r.err
}
