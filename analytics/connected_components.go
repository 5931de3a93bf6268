package analytics

import (
	"strconv"

	"github.com/katalvlaran/dachshund/bfs"
	"github.com/katalvlaran/dachshund/core"
)

// Component is one connected component: its index (assignment order) and
// its member vertex ids, sorted ascending by numeric value.
type Component struct {
	Index int
	Nodes []string
}

// ConnectedComponents partitions g's vertices into components via
// repeated BFS, one run per still-unvisited vertex in ascending numeric
// order — grounded on the original's BTreeSet-driven component assignment
// in algorithms/connected_components.rs, re-expressed with the bfs package.
func ConnectedComponents(g *core.Graph) ([]Component, error) {
	verts := g.Vertices()
	sortNodeKeys(verts)

	visited := make(map[string]bool, len(verts))
	var components []Component
	for _, start := range verts {
		if visited[start] {
			continue
		}
		result, err := bfs.BFS(g, start)
		if err != nil {
			return nil, err
		}
		nodes := make([]string, len(result.Order))
		copy(nodes, result.Order)
		sortNodeKeys(nodes)
		for _, id := range nodes {
			visited[id] = true
		}
		components = append(components, Component{Index: len(components), Nodes: nodes})
	}
	return components, nil
}

// ComponentsOutputRows renders components as the
// "graph_key\tcomponent_index\tnode_id" lines the external interface
// specifies, one line per (component, node) pair, components and nodes
// both in ascending order.
func ComponentsOutputRows(graphKey string, components []Component) []string {
	out := make([]string, 0)
	for _, c := range components {
		for _, n := range c.Nodes {
			out = append(out, graphKey+"\t"+strconv.Itoa(c.Index)+"\t"+n)
		}
	}
	return out
}
