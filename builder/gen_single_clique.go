package builder

import (
	"fmt"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
)

// GenSingleClique returns edge rows forming a complete bipartite graph: every
// one of coreN core nodes tied to every one of nonCorePerType non-core nodes
// of each non-core type in nonCoreTypes, with edge types drawn round-robin
// from edgeTypes. It is a fixture generator for tests and examples, not a
// production ingestion path — ids are deterministic so repeated calls with
// the same arguments produce byte-identical output.
//
// Core node ids are 1..coreN. Non-core node ids are assigned sequentially
// starting at 1000, grouped by type in the order nonCoreTypes is given.
func GenSingleClique(graphID ids.GraphId, coreN int, nonCoreTypes []string, nonCorePerType int, edgeTypes []string) ([]row.EdgeRow, error) {
	if coreN < 1 {
		return nil, fmt.Errorf("%w: coreN=%d", ErrTooFewVertices, coreN)
	}
	if len(nonCoreTypes) == 0 {
		return nil, fmt.Errorf("%w: no non-core types given", ErrTooFewVertices)
	}
	if nonCorePerType < 1 {
		return nil, fmt.Errorf("%w: nonCorePerType=%d", ErrTooFewVertices, nonCorePerType)
	}
	if len(edgeTypes) == 0 {
		return nil, fmt.Errorf("%w: no edge types given", ErrTooFewVertices)
	}

	coreType := ids.NewNodeTypeId(0)

	var rows []row.EdgeRow
	nextNonCoreID := int64(1000)
	edgeTypeCounter := 0

	for typeIdx, typeName := range nonCoreTypes {
		_ = typeName // type identity is carried by NodeTypeId, not the name, past construction
		nonCoreType := ids.NewNodeTypeId(int64(typeIdx + 1))
		for k := 0; k < nonCorePerType; k++ {
			targetID := ids.NodeId(nextNonCoreID)
			nextNonCoreID++

			for c := 1; c <= coreN; c++ {
				edgeType := ids.EdgeTypeId(edgeTypeCounter % len(edgeTypes))
				edgeTypeCounter++

				rows = append(rows, row.EdgeRow{
					GraphID:      graphID,
					SourceID:     ids.NodeId(c),
					TargetID:     targetID,
					SourceTypeID: coreType,
					TargetTypeID: nonCoreType,
					EdgeTypeID:   edgeType,
				})
			}
		}
	}
	return rows, nil
}
