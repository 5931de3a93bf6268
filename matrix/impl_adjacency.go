package matrix

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/dachshund/core"
)

// AdjacencyMatrix wraps a Dense matrix as a graph adjacency representation.
// VertexIndex maps vertex id to row/column index; vertexByIndex is its
// reverse lookup.
type AdjacencyMatrix struct {
	Mat           Matrix
	VertexIndex   map[string]int
	vertexByIndex []string
}

// BuildAdjacency builds a dense adjacency matrix from g's vertices and
// edges, in the policy opts describes. Vertex order is g.Vertices()'s order,
// defensively sorted lexicographically if it wasn't already.
//
// First-edge-wins when AllowMulti is unset: for directed graphs the
// de-duplication key is the ordered pair (src, dst); for undirected graphs
// it is the unordered pair {min, max}. Loops are dropped unless
// WithAllowLoops is set.
//
// Complexity: Time O(V^2 + E), Space O(V^2).
func BuildAdjacency(g *core.Graph, opts Options) (*AdjacencyMatrix, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	vertices := g.Vertices()
	if !isLexSorted(vertices) {
		cp := append([]string(nil), vertices...)
		sort.Strings(cp)
		vertices = cp
	}
	V := len(vertices)
	if V == 0 {
		return &AdjacencyMatrix{Mat: &Dense{}, VertexIndex: map[string]int{}}, nil
	}

	idx := make(map[string]int, V)
	for i, id := range vertices {
		idx[id] = i
	}

	mat, err := NewDense(V, V)
	if err != nil {
		return nil, fmt.Errorf("BuildAdjacency: %w", err)
	}

	type pairKey struct{ u, v int }
	seen := make(map[pairKey]struct{}, V)

	for _, e := range g.Edges() {
		src, ok := idx[e.From]
		if !ok {
			return nil, fmt.Errorf("BuildAdjacency: unknown vertex %q: %w", e.From, ErrUnknownVertex)
		}
		dst, ok := idx[e.To]
		if !ok {
			return nil, fmt.Errorf("BuildAdjacency: unknown vertex %q: %w", e.To, ErrUnknownVertex)
		}
		if src == dst && !opts.allowLoops {
			continue
		}

		var key pairKey
		if !opts.allowMulti {
			if opts.directed {
				key = pairKey{src, dst}
			} else if src <= dst {
				key = pairKey{src, dst}
			} else {
				key = pairKey{dst, src}
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}

		w := 1.0
		if opts.weighted {
			w = float64(e.Weight)
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("BuildAdjacency: invalid weight for %q->%q", e.From, e.To)
			}
		}

		existing, _ := mat.At(src, dst)
		_ = mat.Set(src, dst, existing+w)
		if !opts.directed && src != dst {
			existingRev, _ := mat.At(dst, src)
			_ = mat.Set(dst, src, existingRev+w)
		}
	}

	rev := make([]string, V)
	for id, i := range idx {
		rev[i] = id
	}
	return &AdjacencyMatrix{Mat: mat, VertexIndex: idx, vertexByIndex: rev}, nil
}

func isLexSorted(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// VertexCount returns the adjacency matrix's dimension, checked for
// consistency against the index table.
func (am *AdjacencyMatrix) VertexCount() (int, error) {
	if am == nil || am.Mat == nil {
		return 0, fmt.Errorf("AdjacencyMatrix.VertexCount: %w", ErrNilMatrix)
	}
	if am.Mat.Rows() != len(am.vertexByIndex) {
		return 0, fmt.Errorf("AdjacencyMatrix.VertexCount: %d vs %d: %w", am.Mat.Rows(), len(am.vertexByIndex), ErrDimensionMismatch)
	}
	return am.Mat.Rows(), nil
}
