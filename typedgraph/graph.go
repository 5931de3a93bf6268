package typedgraph

import (
	"sort"

	"github.com/katalvlaran/dachshund/ids"
)

// TypedGraph is a bipartite graph of core and non-core nodes. Edges run only
// core-to-non-core (a same-typed source/target pair never produces a second,
// reverse edge — see builder.New). CoreIDs and NonCoreIDs are kept sorted so
// that iteration order, and therefore every algorithm that walks them, is
// deterministic.
type TypedGraph struct {
	Nodes      map[ids.NodeId]*Node
	CoreIDs    []ids.NodeId
	NonCoreIDs []ids.NodeId

	indexOf map[ids.NodeId]int // dense index, assigned over CoreIDs++NonCoreIDs
}

// New assembles a TypedGraph from already-populated nodes and sorted id
// lists, assigning each node's dense index over the concatenation of core
// then non-core ids.
func New(nodes map[ids.NodeId]*Node, coreIDs, nonCoreIDs []ids.NodeId) *TypedGraph {
	g := &TypedGraph{
		Nodes:      nodes,
		CoreIDs:    coreIDs,
		NonCoreIDs: nonCoreIDs,
		indexOf:    make(map[ids.NodeId]int, len(coreIDs)+len(nonCoreIDs)),
	}
	idx := 0
	for _, id := range coreIDs {
		g.indexOf[id] = idx
		if n, ok := nodes[id]; ok {
			n.denseIndex = idx
		}
		idx++
	}
	for _, id := range nonCoreIDs {
		g.indexOf[id] = idx
		if n, ok := nodes[id]; ok {
			n.denseIndex = idx
		}
		idx++
	}
	return g
}

// HasNode reports whether id names a node in the graph.
func (g *TypedGraph) HasNode(id ids.NodeId) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Node returns the node named id; callers must check HasNode first when id
// may be absent, as direct algorithmic code does (a missing node here is a
// programmer error, not a recoverable condition).
func (g *TypedGraph) Node(id ids.NodeId) *Node { return g.Nodes[id] }

// CountEdges sums every node's out-edge count.
func (g *TypedGraph) CountEdges() int {
	n := 0
	for _, node := range g.Nodes {
		n += len(node.Edges)
	}
	return n
}

// CountNodes returns the total node count (core plus non-core).
func (g *TypedGraph) CountNodes() int { return len(g.Nodes) }

// Universe returns the total number of dense indices assigned — the
// universe size a MemberSet for this graph must be built with.
func (g *TypedGraph) Universe() int { return len(g.indexOf) }

// MemberSet is a fixed-universe bitmap used by Candidate to test and record
// node membership in O(1) without per-candidate hash-set churn. Indices are
// a graph's dense indices, assigned by New.
type MemberSet struct {
	bits []uint64
}

// NewMemberSet allocates an empty MemberSet sized for a graph's universe.
func NewMemberSet(universe int) *MemberSet {
	return &MemberSet{bits: make([]uint64, (universe+63)/64)}
}

// Add marks idx as a member.
func (m *MemberSet) Add(idx int) { m.bits[idx/64] |= 1 << uint(idx%64) }

// Remove clears idx's membership.
func (m *MemberSet) Remove(idx int) { m.bits[idx/64] &^= 1 << uint(idx%64) }

// Contains reports whether idx is a member.
func (m *MemberSet) Contains(idx int) bool {
	return m.bits[idx/64]&(1<<uint(idx%64)) != 0
}

// Clone returns an independent copy.
func (m *MemberSet) Clone() *MemberSet {
	c := &MemberSet{bits: make([]uint64, len(m.bits))}
	copy(c.bits, m.bits)
	return c
}

// SortNodeIDs returns a freshly sorted copy of ids, used anywhere a
// deterministic iteration order over a node-id set is required.
func SortNodeIDs(in []ids.NodeId) []ids.NodeId {
	out := make([]ids.NodeId, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
