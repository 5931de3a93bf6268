package dfs

import (
	"errors"
)

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is in the recursion stack (visiting).
	Black        // Black: the vertex and all its descendants have been fully explored.
)

// ErrGraphNil reports a nil *core.Graph. DetectCycles does not return it: it
// treats a nil graph as cycle-free and returns (false, nil, nil).
var ErrGraphNil = errors.New("dfs: graph is nil")
