package builder

import "errors"

// ErrTooFewVertices indicates a numeric parameter to GenSingleClique (coreN,
// nonCorePerType, or the length of a type list) was smaller than the
// constructor requires.
var ErrTooFewVertices = errors.New("builder: parameter too small")
