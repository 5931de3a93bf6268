package algorithms

import (
	"github.com/katalvlaran/dachshund/core"
)

// TriangleCount returns, for each vertex, the number of triangles it
// participates in: for every pair of its neighbors that are themselves
// adjacent, one triangle is shared between the three. Grounded on
// transitivity.rs's `triangle_count`.
func TriangleCount(g *core.Graph) (map[string]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	verts := g.Vertices()
	neighborSets := make(map[string]map[string]struct{}, len(verts))
	for _, v := range verts {
		ids, err := g.NeighborIDs(v)
		if err != nil {
			return nil, err
		}
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		neighborSets[v] = set
	}

	counts := make(map[string]int, len(verts))
	for _, v := range verts {
		total := 0
		for neighbor := range neighborSets[v] {
			for candidate := range neighborSets[neighbor] {
				if _, ok := neighborSets[v][candidate]; ok {
					total++
				}
			}
		}
		counts[v] = total / 2
	}
	return counts, nil
}

// triplesCount returns the number of distinct neighbor pairs ("triples") a
// vertex of the given degree admits: degree*(degree-1)/2.
func triplesCount(degree int) int {
	return degree * (degree - 1) / 2
}

// Transitivity returns three times the node-summed triangle count (each
// triangle counted once per member vertex, as TriangleCount reports it),
// divided by the total triples count. That is three times the textbook
// global clustering coefficient: a single triangle yields 3.0.
// Returns 0 for a graph with no triples (e.g. every vertex has degree < 2).
// Grounded on transitivity.rs's `get_transitivity`; its sampled
// `get_approx_transitivity` variant is not implemented here, since an exact
// answer is always reachable by one pass over the graph at this scale.
func Transitivity(g *core.Graph) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	triangles, err := TriangleCount(g)
	if err != nil {
		return 0, err
	}

	totalTriangles, totalTriples := 0, 0
	for v := range triangles {
		totalTriangles += triangles[v]
		ids, err := g.NeighborIDs(v)
		if err != nil {
			return 0, err
		}
		totalTriples += triplesCount(len(ids))
	}
	if totalTriples == 0 {
		return 0, nil
	}
	return 3 * float64(totalTriangles) / float64(totalTriples), nil
}
