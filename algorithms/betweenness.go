package algorithms

import (
	"errors"

	"github.com/katalvlaran/dachshund/core"
)

// ErrDisconnectedGraph is returned when betweenness centrality is requested
// on a graph that is not fully connected: Brandes' accumulation assumes every
// pair of vertices has at least one shortest path between them.
var ErrDisconnectedGraph = errors.New("algorithms: graph is not connected")

// Betweenness computes node betweenness centrality via Brandes' algorithm:
// for every source, a BFS tracks each node's distance, its shortest-path
// count, and its immediate predecessors, then the exploration order is
// replayed in reverse to accumulate a "dependency" score per node. The 0.5
// factor folded into each step corrects for iterating over every vertex as a
// source on an undirected graph, where each unordered pair would otherwise
// be counted twice. Grounded on betweenness.rs's
// `get_node_betweenness_brandes`.
func Betweenness(g *core.Graph) (map[string]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	verts := g.Vertices()
	if len(verts) == 0 {
		return map[string]float64{}, nil
	}
	if connected, err := isConnected(g, verts); err != nil {
		return nil, err
	} else if !connected {
		return nil, ErrDisconnectedGraph
	}

	betweenness := make(map[string]float64, len(verts))
	for _, v := range verts {
		betweenness[v] = 0
	}

	for _, source := range verts {
		paths, err := ShortestPathsBFS(g, source)
		if err != nil {
			return nil, err
		}

		delta := make(map[string]float64, len(paths.Order))
		for i := len(paths.Order) - 1; i >= 0; i-- {
			w := paths.Order[i]
			for _, v := range paths.Predecessors[w] {
				delta[v] += (0.5 + delta[w]) * (float64(paths.PathCounts[v]) / float64(paths.PathCounts[w]))
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness, nil
}

// isConnected reports whether a single BFS from an arbitrary vertex reaches
// every vertex in the graph.
func isConnected(g *core.Graph, verts []string) (bool, error) {
	paths, err := ShortestPathsBFS(g, verts[0])
	if err != nil {
		return false, err
	}
	return len(paths.Order) == len(verts), nil
}
