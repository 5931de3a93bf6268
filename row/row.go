// Package row defines the tagged record types that flow out of the input
// parser and into the graph builder and beam: EdgeRow (a typed bipartite
// edge), SeedRow (an existing clique node, used to seed a search), and
// SimpleEdgeRow (an untyped edge for the companion analytics front-end).
package row

import (
	"fmt"

	"github.com/katalvlaran/dachshund/ids"
)

// EdgeRow is one typed edge between a core node and a non-core node.
type EdgeRow struct {
	GraphID      ids.GraphId
	SourceID     ids.NodeId
	TargetID     ids.NodeId
	SourceTypeID ids.NodeTypeId
	TargetTypeID ids.NodeTypeId
	EdgeTypeID   ids.EdgeTypeId
}

// String renders an EdgeRow the way the original tool's debug output does.
func (r EdgeRow) String() string {
	return fmt.Sprintf("EdgeRow: %s\t%s\t%s", r.GraphID, r.SourceID, r.TargetID)
}

// SeedRow names one node of a pre-existing clique, used either to seed a
// beam search or to serialize a found candidate back out. TargetType is the
// non-core type of the node, or nil when the node is a core node.
type SeedRow struct {
	GraphID    ids.GraphId
	NodeID     ids.NodeId
	TargetType *ids.NodeTypeId
}

// String renders a SeedRow in the default "short format" output: graph id,
// node id, and the non-core type value, or -1 for a core node.
func (r SeedRow) String() string {
	typeVal := int64(-1)
	if r.TargetType != nil {
		typeVal = r.TargetType.Value()
	}
	return fmt.Sprintf("%d\t%d\t%d", int64(r.GraphID), int64(r.NodeID), typeVal)
}

// SimpleEdgeRow is an untyped edge between two nodes, used by the companion
// analytics front-end (connected components, coreness, k-truss, ...).
type SimpleEdgeRow struct {
	GraphID  ids.GraphId
	SourceID ids.NodeId
	TargetID ids.NodeId
}

// AsTuple returns the (source, target) pair as plain int64s, the shape the
// analytics front-end builds its graphs from.
func (r SimpleEdgeRow) AsTuple() (int64, int64) {
	return int64(r.SourceID), int64(r.TargetID)
}

// Row is implemented by every record the streaming driver can dispatch. A
// given concrete row satisfies exactly one of the As* accessors; the others
// report ok=false.
type Row interface {
	GraphID() ids.GraphId
	AsEdgeRow() (EdgeRow, bool)
	AsSeedRow() (SeedRow, bool)
	AsSimpleEdgeRow() (SimpleEdgeRow, bool)
}

// edgeRowEnvelope, seedRowEnvelope, and simpleEdgeRowEnvelope wrap the plain
// structs above to implement Row without forcing every call site to juggle
// interfaces for the common case of already knowing the concrete type.
type edgeRowEnvelope struct{ EdgeRow }

func (e edgeRowEnvelope) GraphID() ids.GraphId                     { return e.EdgeRow.GraphID }
func (e edgeRowEnvelope) AsEdgeRow() (EdgeRow, bool)               { return e.EdgeRow, true }
func (e edgeRowEnvelope) AsSeedRow() (SeedRow, bool)               { return SeedRow{}, false }
func (e edgeRowEnvelope) AsSimpleEdgeRow() (SimpleEdgeRow, bool)   { return SimpleEdgeRow{}, false }

// NewEdgeRow wraps an EdgeRow so it satisfies Row.
func NewEdgeRow(r EdgeRow) Row { return edgeRowEnvelope{r} }

type seedRowEnvelope struct{ SeedRow }

func (s seedRowEnvelope) GraphID() ids.GraphId                   { return s.SeedRow.GraphID }
func (s seedRowEnvelope) AsEdgeRow() (EdgeRow, bool)             { return EdgeRow{}, false }
func (s seedRowEnvelope) AsSeedRow() (SeedRow, bool)             { return s.SeedRow, true }
func (s seedRowEnvelope) AsSimpleEdgeRow() (SimpleEdgeRow, bool) { return SimpleEdgeRow{}, false }

// NewSeedRow wraps a SeedRow so it satisfies Row.
func NewSeedRow(r SeedRow) Row { return seedRowEnvelope{r} }

type simpleEdgeRowEnvelope struct{ SimpleEdgeRow }

func (s simpleEdgeRowEnvelope) GraphID() ids.GraphId         { return s.SimpleEdgeRow.GraphID }
func (s simpleEdgeRowEnvelope) AsEdgeRow() (EdgeRow, bool)   { return EdgeRow{}, false }
func (s simpleEdgeRowEnvelope) AsSeedRow() (SeedRow, bool)   { return SeedRow{}, false }
func (s simpleEdgeRowEnvelope) AsSimpleEdgeRow() (SimpleEdgeRow, bool) {
	return s.SimpleEdgeRow, true
}

// NewSimpleEdgeRow wraps a SimpleEdgeRow so it satisfies Row.
func NewSimpleEdgeRow(r SimpleEdgeRow) Row { return simpleEdgeRowEnvelope{r} }
