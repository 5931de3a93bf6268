package analytics

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/dachshund/row"
)

// Truss is one maximal k-truss: the edges that survive common-neighbor
// pruning and remain connected to each other, plus their member nodes.
type Truss struct {
	Edges [][2]string
	Nodes []string
}

// KTruss partitions the graph into its k-trusses: first the (k-1)-core is
// peeled to discard nodes that can never sit in a k-truss, then edges whose
// endpoints share fewer than k-2 common neighbors are pruned to a fixed
// point, then the surviving edges are grouped into connected components —
// each becomes one Truss. Grounded on coreness.rs's `get_k_trusses` /
// `_get_k_trusses` (https://louridas.github.io/rwa/assignments/finding-trusses/).
func KTruss(rows []row.SimpleEdgeRow, k int) ([]Truss, error) {
	if k < 0 {
		return nil, ErrNegativeK
	}
	adj, err := adjacency(rows)
	if err != nil {
		return nil, err
	}

	removed := make(map[string]bool, len(adj))
	if k >= 1 {
		kCorePeel(adj, k-1, removed)
	}

	neighbors := make(map[string]map[string]struct{}, len(adj))
	edges := make(map[[2]string]struct{})
	for id, nbrs := range adj {
		if removed[id] {
			continue
		}
		set := make(map[string]struct{}, len(nbrs))
		for nb := range nbrs {
			if removed[nb] {
				continue
			}
			set[nb] = struct{}{}
			edges[orderedPair(id, nb)] = struct{}{}
		}
		neighbors[id] = set
	}

	for changed := true; changed; {
		changed = false
		var toRemove [][2]string
		for e := range edges {
			n1, n2 := neighbors[e[0]], neighbors[e[1]]
			if commonNeighborCount(n1, n2) < k-2 {
				toRemove = append(toRemove, e)
			}
		}
		for _, e := range toRemove {
			changed = true
			delete(edges, e)
			delete(neighbors[e[0]], e[1])
			delete(neighbors[e[1]], e[0])
		}
	}

	return trussesFromEdges(edges), nil
}

// TrussOutputRows renders Trusses as "graph_key\ttruss_index\tnode_id"
// lines, the same partition-into-groups shape ComponentsOutputRows uses —
// no CLI transformer for k-trusses is present in the original source, so
// this mirrors the one analogous grouped output the original does define.
func TrussOutputRows(graphKey string, trusses []Truss) []string {
	out := make([]string, 0)
	for i, truss := range trusses {
		for _, n := range truss.Nodes {
			out = append(out, graphKey+"\t"+strconv.Itoa(i)+"\t"+n)
		}
	}
	return out
}

func orderedPair(a, b string) [2]string {
	if nodeKeyLess(a, b) {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

func nodeKeyLess(a, b string) bool {
	keys := []string{a, b}
	sortNodeKeys(keys)
	return keys[0] == a
}

func commonNeighborCount(a, b map[string]struct{}) int {
	count := 0
	for n := range a {
		if _, ok := b[n]; ok {
			count++
		}
	}
	return count
}

// trussesFromEdges groups surviving edges into connected components via
// union-find, mirroring the original's reuse of connected-components
// membership over the pruned edge set.
func trussesFromEdges(edges map[[2]string]struct{}) []Truss {
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		if _, ok := parent[x]; !ok {
			parent[x] = x
		}
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for e := range edges {
		union(e[0], e[1])
	}

	byRoot := make(map[string][][2]string)
	for e := range edges {
		root := find(e[0])
		byRoot[root] = append(byRoot[root], e)
	}

	out := make([]Truss, 0, len(byRoot))
	for _, edgeList := range byRoot {
		nodeSet := make(map[string]struct{})
		for _, e := range edgeList {
			nodeSet[e[0]] = struct{}{}
			nodeSet[e[1]] = struct{}{}
		}
		nodes := make([]string, 0, len(nodeSet))
		for n := range nodeSet {
			nodes = append(nodes, n)
		}
		sortNodeKeys(nodes)
		sort.Slice(edgeList, func(i, j int) bool {
			if edgeList[i][0] != edgeList[j][0] {
				return nodeKeyLess(edgeList[i][0], edgeList[j][0])
			}
			return nodeKeyLess(edgeList[i][1], edgeList[j][1])
		})
		out = append(out, Truss{Edges: edgeList, Nodes: nodes})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Nodes) == 0 || len(out[j].Nodes) == 0 {
			return len(out[i].Nodes) < len(out[j].Nodes)
		}
		return nodeKeyLess(out[i].Nodes[0], out[j].Nodes[0])
	})
	return out
}
