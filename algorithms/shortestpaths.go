package algorithms

import (
	"errors"
	"sort"

	"github.com/katalvlaran/dachshund/core"
	"github.com/katalvlaran/dachshund/dijkstra"
)

// ErrGraphNil is returned when a nil *core.Graph reaches an algorithm in this
// package.
var ErrGraphNil = errors.New("algorithms: graph is nil")

// ErrSourceNotFound is returned when a named source vertex is absent from the
// graph.
var ErrSourceNotFound = errors.New("algorithms: source vertex not found")

// BFSPaths is the result of an unweighted, unit-edge-weight shortest-paths
// scan from one source: for every reachable node, its distance in hops, the
// number of distinct shortest paths reaching it, and every immediate
// predecessor lying on some shortest path (there can be more than one).
// Grounded on shortest_paths.rs's `get_shortest_paths_bfs`, the BFS variant
// it feeds directly into Brandes betweenness.
type BFSPaths struct {
	Order        []string
	Distance     map[string]int
	PathCounts   map[string]int64
	Predecessors map[string][]string
}

// ShortestPathsBFS runs an unweighted BFS from source, recording every
// shortest-path predecessor of every reached node and how many distinct
// shortest paths reach it — the building block Brandes betweenness needs to
// accumulate dependency scores, and a reasonable all-destinations answer for
// an unweighted graph on its own.
func ShortestPathsBFS(g *core.Graph, source string) (*BFSPaths, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(source) {
		return nil, ErrSourceNotFound
	}

	verts := g.Vertices()
	dist := make(map[string]int, len(verts))
	counts := make(map[string]int64, len(verts))
	preds := make(map[string][]string, len(verts))
	dist[source] = 0
	counts[source] = 1

	order := make([]string, 0, len(verts))
	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		neighbors, err := g.NeighborIDs(v)
		if err != nil {
			return nil, err
		}
		for _, w := range neighbors {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				counts[w] += counts[v]
				preds[w] = append(preds[w], v)
			}
		}
	}

	return &BFSPaths{Order: order, Distance: dist, PathCounts: counts, Predecessors: preds}, nil
}

// WeightedDistances runs Dijkstra from source over a weighted graph and
// returns the distance to every reachable vertex, optionally with the
// predecessor map needed for path reconstruction. It is a thin adapter over
// the dijkstra package so callers working through algorithms' unweighted
// companions have a matching weighted entry point without reaching into
// dijkstra directly.
func WeightedDistances(g *core.Graph, source string, withPath bool) (map[string]int64, map[string]string, error) {
	opts := []dijkstra.Option{dijkstra.Source(source)}
	if withPath {
		opts = append(opts, dijkstra.WithReturnPath())
	}
	return dijkstra.Dijkstra(g, opts...)
}

// sortedCopy returns a sorted copy of ids, leaving the input untouched.
func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
