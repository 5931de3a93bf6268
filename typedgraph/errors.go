package typedgraph

import "errors"

// ErrNodeNotCore indicates max-edge-count metadata was requested for a node
// that turned out to be a core node, which carries no non-core type.
var ErrNodeNotCore = errors.New("typedgraph: node is a core node")
