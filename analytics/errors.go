package analytics

import "errors"

// ErrEmptyGraph indicates an analytics operation was given zero rows.
var ErrEmptyGraph = errors.New("analytics: empty graph")

// ErrNegativeK indicates a k-core/k-truss/k-peak request used a negative k.
var ErrNegativeK = errors.New("analytics: k must be >= 0")
