// Package ids defines the opaque identifier types shared by the graph and
// mining packages: NodeId, GraphId, NodeTypeId, and EdgeTypeId. All four are
// small value types, safe to copy and to use as map keys.
//
// NodeTypeId additionally tracks whether its type is the core type of a
// bipartite graph, and how many edges a single core node may hold to a
// member of this type (nil/absent until a typespec row increments it).
//
// Node and graph hashing (HashNode, HashGraph) uses a fixed-key FNV-1a
// scheme rather than Go's randomized map hasher, so that candidate checksums
// and PRNG seeds are reproducible across processes and machines.
package ids

import "fmt"

// NodeId uniquely identifies a Node relative to an existing graph.
type NodeId int64

// String renders a NodeId the same way the mining output rows do.
func (n NodeId) String() string { return fmt.Sprintf("Node:%d", int64(n)) }

// GraphId identifies a distinct graph, both as the streaming driver's batch
// key and as the identifier stamped onto a (quasi-)clique once it is output.
type GraphId int64

// String renders a GraphId for logs and output rows.
func (g GraphId) String() string { return fmt.Sprintf("Graph:%d", int64(g)) }

// EdgeTypeId is an opaque identifier for edge types. Mining logic never
// interprets its value; it is carried through purely for provenance and
// output formatting.
type EdgeTypeId int64

// Value returns the underlying integer id.
func (e EdgeTypeId) Value() int64 { return int64(e) }

// noMaxEdges is the sentinel meaning "no typespec row has incremented this
// type's max-edges-per-core counter yet" (Rust's None).
const noMaxEdges = -1

// NodeTypeId is an opaque identifier for node types, carrying whether the
// type is core and, for non-core types, the maximum number of edges a single
// core node may hold to a member of this type.
type NodeTypeId struct {
	id              int64
	isCore          bool
	maxEdgesPerCore int64 // noMaxEdges until the first increment
}

// NewNodeTypeId constructs a non-core NodeTypeId with no edge-count cap yet.
func NewNodeTypeId(id int64) NodeTypeId {
	return NodeTypeId{id: id, maxEdgesPerCore: noMaxEdges}
}

// Value returns the underlying integer id.
func (t NodeTypeId) Value() int64 { return t.id }

// IsCore reports whether this type is the graph's single core type.
func (t NodeTypeId) IsCore() bool { return t.isCore }

// MakeCore marks the receiver as the core type. Returns the updated value;
// NodeTypeId is a value type, so callers must reassign.
func (t NodeTypeId) MakeCore() NodeTypeId {
	t.isCore = true
	return t
}

// MaxEdgesPerCore returns the maximum edges a core node may have to a member
// of this type, and whether any typespec row has set it yet.
func (t NodeTypeId) MaxEdgesPerCore() (int64, bool) {
	if t.maxEdgesPerCore == noMaxEdges {
		return 0, false
	}
	return t.maxEdgesPerCore, true
}

// IncrementPossibleEdgeCount bumps the max-edges-per-core counter by one,
// initializing it to 1 the first time it is called. Returns the updated
// value; callers must reassign.
func (t NodeTypeId) IncrementPossibleEdgeCount() NodeTypeId {
	if t.maxEdgesPerCore == noMaxEdges {
		t.maxEdgesPerCore = 1
	} else {
		t.maxEdgesPerCore++
	}
	return t
}
