package analytics

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/dachshund/row"
)

// CorenessRow is one node's entry in the Coreness output: its coreness (the
// largest k-core it survives in), its raw, un-pruned degree, and its
// anomaly score.
type CorenessRow struct {
	NodeID   string
	Coreness int
	Degree   int
	Anomaly  float64
}

// kCorePeel removes every node whose degree is below k, propagating the
// effect onto live neighbors, until no such node remains. Every node —
// including ones removed(k-1, removed) already marked in a prior, smaller-k
// call — is reprocessed on every call: its raw, un-pruned degree is
// recomputed from adj and it is re-queued, so its still-live neighbors get
// decremented for the edge even though the node itself was already removed.
// That reprocessing is what lets `removed` accumulate correctly across
// ascending k calls without the caller re-deriving a shrinking subgraph —
// grounded on coreness.rs's `_get_k_cores`, which rebuilds `num_neighbors`
// from the full node edge list on every call for exactly this reason.
func kCorePeel(adj map[string]map[string]struct{}, k int, removed map[string]bool) {
	degree := make(map[string]int, len(adj))
	for id, neighbors := range adj {
		degree[id] = len(neighbors)
	}

	queue := sortedKeys(adj)
	inQueue := make(map[string]bool, len(adj))
	for _, id := range queue {
		inQueue[id] = true
	}

	for len(queue) > 0 {
		sortNodeKeys(queue)
		id := queue[0]
		queue = queue[1:]
		inQueue[id] = false
		if degree[id] < k {
			removed[id] = true
			for nb := range adj[id] {
				if removed[nb] {
					continue
				}
				if !inQueue[nb] {
					inQueue[nb] = true
					queue = append(queue, nb)
				}
				degree[id]--
				degree[nb]--
			}
		}
	}
}

// KCore returns the set of node ids (as a sorted slice) that survive
// iterative peeling of every node with degree below k.
func KCore(rows []row.SimpleEdgeRow, k int) ([]string, error) {
	if k < 0 {
		return nil, ErrNegativeK
	}
	adj, err := adjacency(rows)
	if err != nil {
		return nil, err
	}
	removed := make(map[string]bool, len(adj))
	kCorePeel(adj, k, removed)

	var out []string
	for id := range adj {
		if !removed[id] {
			out = append(out, id)
		}
	}
	sortNodeKeys(out)
	return out, nil
}

// Coreness computes, for every node, its coreness (the largest k for which
// that node survives in the k-core) — grounded on coreness.rs's
// `get_coreness`: repeatedly peel k=1,2,3,... until every node has been
// removed, then assign each node the highest k-core it belonged to.
func Coreness(rows []row.SimpleEdgeRow) (map[string]int, error) {
	adj, err := adjacency(rows)
	if err != nil {
		return nil, err
	}
	return coreness(adj), nil
}

// CorenessRows computes, for every node, its coreness, raw degree, and
// anomaly score, returning rows sorted ascending by coreness — the exact
// shape and ordering of the external interface's Coreness output, grounded
// on core_transformer.rs's `corenesses.sort_by_key(|(_, coreness)| *coreness)`.
//
// Anomaly is the node's raw degree divided by its coreness (or the raw
// degree itself if coreness is 0): see DESIGN.md's Open Question decisions
// for why, since the original's `get_coreness_anomaly` is not present in
// the available source.
func CorenessRows(rows []row.SimpleEdgeRow) ([]CorenessRow, error) {
	adj, err := adjacency(rows)
	if err != nil {
		return nil, err
	}
	shells := coreness(adj)

	out := make([]CorenessRow, 0, len(adj))
	for id, neighbors := range adj {
		degree := len(neighbors)
		shell := shells[id]
		anomaly := float64(degree)
		if shell > 0 {
			anomaly = float64(degree) / float64(shell)
		}
		out = append(out, CorenessRow{NodeID: id, Coreness: shell, Degree: degree, Anomaly: anomaly})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Coreness != out[j].Coreness {
			return out[i].Coreness < out[j].Coreness
		}
		ki, _ := strconv.ParseInt(out[i].NodeID, 10, 64)
		kj, _ := strconv.ParseInt(out[j].NodeID, 10, 64)
		return ki < kj
	})
	return out, nil
}

// CorenessOutputRows renders CorenessRows as the
// "graph_key\tnode_id\tcoreness\tdegree\tanomaly" lines the external
// interface specifies.
func CorenessOutputRows(graphKey string, rows []CorenessRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, graphKey+"\t"+r.NodeID+"\t"+
			strconv.Itoa(r.Coreness)+"\t"+
			strconv.Itoa(r.Degree)+"\t"+
			strconv.FormatFloat(r.Anomaly, 'f', 6, 64))
	}
	return out
}

// coreness assigns every node the largest k for which it still survives the
// k-core: after each ascending kCorePeel call, every node not yet removed
// has its recorded coreness overwritten to the current k, so its final
// value is the last k it survived before finally dropping out — grounded
// on coreness.rs's `get_coreness` (which derives the same value from
// connected-components snapshots of the survivor set at each k; this is
// the same result without the extra component bookkeeping, which the
// original only needs for its separate, unused-here Vec<Vec<Vec<NodeId>>>
// return value).
func coreness(adj map[string]map[string]struct{}) map[string]int {
	removed := make(map[string]bool, len(adj))
	result := make(map[string]int, len(adj))
	k := 0
	for len(removed) < len(adj) {
		k++
		kCorePeel(adj, k, removed)
		for id := range adj {
			if !removed[id] {
				result[id] = k
			}
		}
	}
	return result
}
