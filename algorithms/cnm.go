package algorithms

import (
	"sort"

	"github.com/katalvlaran/dachshund/core"
)

// Community is a set of node ids merged together by the greedy
// modularity-maximization procedure.
type Community struct {
	ID    int
	Nodes []string
}

// CNMCommunities partitions the graph into communities via the
// Clauset-Newman-Moore greedy modularity-maximization algorithm: starting
// from every node in its own singleton community, repeatedly merge the pair
// of communities whose merge yields the largest increase in modularity,
// until no merge would increase it further. Returns the final communities
// and the sequence of modularity gains applied, in merge order.
//
// Grounded on cnm_communities.rs's `get_cnm_communities`; its per-community
// nested max-heap bookkeeping is replaced here by directly recomputing every
// candidate merge's exact modularity gain each round (see DESIGN.md's "CNM
// bookkeeping" decision) — the modularity arithmetic and the tie-break rule
// on equal gains (the smaller-indexed community is always the one absorbed)
// are preserved exactly.
func CNMCommunities(g *core.Graph) ([]Community, []float64, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	verts := g.Vertices()
	n := len(verts)
	if n == 0 {
		return nil, nil, nil
	}

	nodeCommunity := make(map[string]int, n)
	members := make(map[int][]string, n)
	degree := make(map[int]int, n)
	totalDegree := 0
	for i, id := range verts {
		nodeCommunity[id] = i
		members[i] = []string{id}
		ids, err := g.NeighborIDs(id)
		if err != nil {
			return nil, nil, err
		}
		degree[i] = len(ids)
		totalDegree += len(ids)
	}
	if totalDegree == 0 {
		return singletonCommunities(verts), nil, nil
	}
	m := float64(totalDegree) / 2

	edges := dedupedEdgePairs(g.Edges())
	var changes []float64
	for {
		counts := make(map[[2]int]int)
		for _, e := range edges {
			ci, cj := nodeCommunity[e.From], nodeCommunity[e.To]
			if ci == cj {
				continue
			}
			counts[communityPair(ci, cj)]++
		}
		if len(counts) == 0 {
			break
		}

		var (
			bestDelta              float64
			bestAbsorbed, bestSurv int
			found                  bool
		)
		for pair, count := range counts {
			p, q := pair[0], pair[1] // p < q, by communityPair's construction
			eij := float64(count) / m
			ai := float64(degree[p]) / (2 * m)
			aj := float64(degree[q]) / (2 * m)
			delta := 2 * (eij - ai*aj)

			if !found || delta > bestDelta ||
				(delta == bestDelta && (p < bestAbsorbed || (p == bestAbsorbed && q < bestSurv))) {
				bestDelta, bestAbsorbed, bestSurv, found = delta, p, q, true
			}
		}
		if bestDelta <= 0 {
			break
		}

		members[bestSurv] = append(members[bestSurv], members[bestAbsorbed]...)
		degree[bestSurv] += degree[bestAbsorbed]
		for _, id := range members[bestAbsorbed] {
			nodeCommunity[id] = bestSurv
		}
		delete(members, bestAbsorbed)
		delete(degree, bestAbsorbed)
		changes = append(changes, bestDelta)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Community, 0, len(ids))
	for _, id := range ids {
		nodes := append([]string(nil), members[id]...)
		sort.Strings(nodes)
		out = append(out, Community{ID: id, Nodes: nodes})
	}
	return out, changes, nil
}

// dedupedEdgePairs collapses parallel edges down to one entry per unordered
// (From, To) pair. core.Graph permits multi-edges (analytics.BuildGraph
// relies on that to tolerate duplicate input rows), but the modularity
// arithmetic below assumes a simple graph, same as cnm_communities.rs, which
// derives edge counts from each node's own deduplicated edge list.
func dedupedEdgePairs(edges []*core.Edge) []*core.Edge {
	seen := make(map[[2]string]bool, len(edges))
	out := make([]*core.Edge, 0, len(edges))
	for _, e := range edges {
		key := [2]string{e.From, e.To}
		if e.To < e.From {
			key = [2]string{e.To, e.From}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// communityPair orders an unordered community-id pair so the first element
// is smaller, matching the "smaller id is absorbed" merge convention.
func communityPair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func singletonCommunities(verts []string) []Community {
	out := make([]Community, len(verts))
	for i, id := range verts {
		out[i] = Community{ID: i, Nodes: []string{id}}
	}
	return out
}
