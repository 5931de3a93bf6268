// Package typedgraph implements the bipartite graph model the beam search
// mines: a set of core nodes and one or more typed non-core node sets, with
// edges only ever running core-to-non-core. It is the Go counterpart of the
// original Rust TypedGraph/Node pair, with an added dense-index bitmap
// (MemberSet) for O(1) candidate membership tests over a fixed universe.
package typedgraph

import "github.com/katalvlaran/dachshund/ids"

// NodeEdge records a typed edge leading to one neighbor of a Node.
type NodeEdge struct {
	EdgeType ids.EdgeTypeId
	TargetID ids.NodeId
}

// Node is a single core or non-core node. Non-core nodes carry a NonCoreType;
// core nodes leave it nil. Neighbors indexes Edges by target id for O(1)
// tie lookups; denseIndex is this node's position in the graph's sorted id
// universe, assigned at construction time for MemberSet bitmap use.
type Node struct {
	ID           ids.NodeId
	IsCore       bool
	NonCoreType  *ids.NodeTypeId
	Edges        []NodeEdge
	Neighbors    map[ids.NodeId][]NodeEdge
	denseIndex   int
}

// NewNode allocates a Node with empty edge/neighbor storage.
func NewNode(id ids.NodeId, isCore bool, nonCoreType *ids.NodeTypeId) *Node {
	return &Node{
		ID:          id,
		IsCore:      isCore,
		NonCoreType: nonCoreType,
		Neighbors:   make(map[ids.NodeId][]NodeEdge),
	}
}

// Degree is this node's edge count in the full graph.
func (n *Node) Degree() int { return len(n.Edges) }

// DenseIndex is this node's position in the graph's sorted id universe.
func (n *Node) DenseIndex() int { return n.denseIndex }

// MaxEdgeCountWithCoreNode returns the non-core type's max-edges-per-core
// cap, or ok=false if this node is core or the cap was never set.
func (n *Node) MaxEdgeCountWithCoreNode() (int64, bool) {
	if n.NonCoreType == nil {
		return 0, false
	}
	return n.NonCoreType.MaxEdgesPerCore()
}

// CountTiesWithIDs counts this node's edges whose target is in ids. It picks
// the cheaper iteration direction depending on which of the two sets
// (neighbors vs. the supplied set) is smaller, matching the adaptive
// optimization in the node this is ported from.
func (n *Node) CountTiesWithIDs(idSet map[ids.NodeId]struct{}) int {
	ties := 0
	if len(n.Neighbors) <= len(idSet) {
		for neighborID, edges := range n.Neighbors {
			if _, ok := idSet[neighborID]; ok {
				ties += len(edges)
			}
		}
	} else {
		for id := range idSet {
			if edges, ok := n.Neighbors[id]; ok {
				ties += len(edges)
			}
		}
	}
	return ties
}
