package matrix

// Option mutates an Options value before a builder consumes it.
type Option func(*Options)

// Options configures BuildAdjacency. Defaults (no options applied): undirected,
// unweighted, no loops, first-edge-wins on parallel edges.
type Options struct {
	directed   bool
	weighted   bool
	allowLoops bool
	allowMulti bool
}

// WithDirected builds a directed adjacency matrix (no mirroring).
func WithDirected() Option { return func(o *Options) { o.directed = true } }

// WithWeighted preserves edge weights instead of writing binary 1s.
func WithWeighted() Option { return func(o *Options) { o.weighted = true } }

// WithAllowLoops keeps self-loop edges instead of dropping them.
func WithAllowLoops() Option { return func(o *Options) { o.allowLoops = true } }

// WithAllowMulti keeps every parallel edge's weight (summed into the cell)
// instead of first-edge-wins de-duplication.
func WithAllowMulti() Option { return func(o *Options) { o.allowMulti = true } }

// NewMatrixOptions resolves opts into an Options snapshot.
func NewMatrixOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
