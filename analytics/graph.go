package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/dachshund/core"
	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
)

// nodeKey renders a NodeId the way every analytics algorithm keys its
// vertices: the decimal string of the underlying int64.
func nodeKey(id ids.NodeId) string {
	return fmt.Sprintf("%d", int64(id))
}

// BuildGraph constructs an undirected, unweighted core.Graph from a batch
// of simple edge rows, one graph per call (the caller is responsible for
// grouping rows by GraphId, as the streaming driver does). The graph allows
// multi-edges, so a repeated input row adds a parallel edge instead of
// failing; NeighborIDs still reports each neighbor once.
func BuildGraph(rows []row.SimpleEdgeRow) (*core.Graph, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGraph
	}
	g := core.NewGraph(core.WithMultiEdges())
	for _, r := range rows {
		src, dst := nodeKey(r.SourceID), nodeKey(r.TargetID)
		if src == dst {
			if err := g.AddVertex(src); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := g.AddEdge(src, dst, 0); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// adjacency builds a deduplicated neighbor-set map from a batch of simple
// edge rows: adjacency[u][v] exists iff u and v are connected by at least
// one input row, in either direction. Self-loops are recorded as a vertex
// with no neighbors.
func adjacency(rows []row.SimpleEdgeRow) (map[string]map[string]struct{}, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGraph
	}
	adj := make(map[string]map[string]struct{})
	ensure := func(id string) {
		if _, ok := adj[id]; !ok {
			adj[id] = make(map[string]struct{})
		}
	}
	for _, r := range rows {
		src, dst := nodeKey(r.SourceID), nodeKey(r.TargetID)
		ensure(src)
		ensure(dst)
		if src == dst {
			continue
		}
		adj[src][dst] = struct{}{}
		adj[dst][src] = struct{}{}
	}
	return adj, nil
}

// sortedKeys returns m's keys sorted by their parsed int64 value, the
// deterministic iteration order every analytics algorithm relies on (the
// original tool gets the same determinism for free from BTreeSet<NodeId>).
func sortedKeys(m map[string]map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortNodeKeys(out)
	return out
}

func sortNodeKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		ki, _ := strconv.ParseInt(keys[i], 10, 64)
		kj, _ := strconv.ParseInt(keys[j], 10, 64)
		return ki < kj
	})
}
