// Package hgio reads and writes hypergraphs and partition assignments
// in the plain-text hMetis format, against an afero.Fs so tests run
// entirely in memory.
package hgio

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/wusunjie/kahypar/hgraph"
)

// ErrInputFormat wraps any malformed-input condition hit while parsing
// an hMetis file: wrong token count, non-integer fields, a pin id out
// of range, or a header that doesn't match the line count that follows.
var ErrInputFormat = errors.New("hgio: malformed hypergraph input")

// ReadHypergraph parses the hMetis file at path on fs into a fresh
// Hypergraph. Vertex ids in the file are 1-based; the returned
// Hypergraph uses 0-based VertexId internally, so file id i maps to
// VertexId(i-1).
func ReadHypergraph(fs afero.Fs, path string) (*hgraph.Hypergraph, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, ok := nextDataLine(sc)
	if !ok {
		return nil, fmt.Errorf("%w: empty input", ErrInputFormat)
	}
	fields := strings.Fields(header)
	if len(fields) < 2 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: header %q has %d fields, want 2-4", ErrInputFormat, header, len(fields))
	}
	m, err := strconv.Atoi(fields[0])
	if err != nil || m < 0 {
		return nil, fmt.Errorf("%w: bad hyperedge count %q", ErrInputFormat, fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad vertex count %q", ErrInputFormat, fields[1])
	}
	hasEdgeWeights := false
	hasVertexWeights := false
	if len(fields) >= 3 {
		fmtCode, err := strconv.Atoi(fields[2])
		if err != nil || (fmtCode != 0 && fmtCode != 1 && fmtCode != 10 && fmtCode != 11) {
			return nil, fmt.Errorf("%w: bad fmt code %q", ErrInputFormat, fields[2])
		}
		hasVertexWeights = fmtCode/10 == 1
		hasEdgeWeights = fmtCode%10 == 1
	}

	h := hgraph.New()
	vertices := make([]hgraph.VertexId, n)
	for i := 0; i < n; i++ {
		vertices[i] = h.AddVertex(1)
	}

	for e := 0; e < m; e++ {
		line, ok := nextDataLine(sc)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d hyperedge lines, got %d", ErrInputFormat, m, e)
		}
		toks := strings.Fields(line)
		weight := int64(1)
		start := 0
		if hasEdgeWeights {
			if len(toks) < 1 {
				return nil, fmt.Errorf("%w: hyperedge %d missing weight", ErrInputFormat, e)
			}
			w, err := strconv.ParseInt(toks[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad edge weight %q", ErrInputFormat, toks[0])
			}
			weight = w
			start = 1
		}
		if len(toks) <= start {
			return nil, fmt.Errorf("%w: hyperedge %d has no pins", ErrInputFormat, e)
		}
		pins := make([]hgraph.VertexId, 0, len(toks)-start)
		for _, tok := range toks[start:] {
			id, err := strconv.Atoi(tok)
			if err != nil || id < 1 || id > n {
				return nil, fmt.Errorf("%w: pin id %q out of range 1..%d", ErrInputFormat, tok, n)
			}
			pins = append(pins, vertices[id-1])
		}
		h.AddHyperedge(weight, pins)
	}

	if hasVertexWeights {
		for i := 0; i < n; i++ {
			line, ok := nextDataLine(sc)
			if !ok {
				return nil, fmt.Errorf("%w: expected %d vertex weight lines, got %d", ErrInputFormat, n, i)
			}
			w, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad vertex weight %q", ErrInputFormat, line)
			}
			h.SetVertexWeight(vertices[i], w)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}
	return h, nil
}

// nextDataLine returns the next non-comment, non-blank line, or
// ("", false) at end of input.
func nextDataLine(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, true
	}
	return "", false
}

// WriteAssignment writes one block id per line, in 0-based input
// vertex order, to path on fs.
func WriteAssignment(fs afero.Fs, path string, blocks []hgraph.BlockId) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("hgio: creating %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%d\n", b); err != nil {
			return fmt.Errorf("hgio: writing %q: %w", path, err)
		}
	}
	return w.Flush()
}
