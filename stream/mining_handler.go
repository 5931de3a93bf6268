package stream

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/dachshund/beam"
	"github.com/katalvlaran/dachshund/builder"
	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/registry"
	"github.com/katalvlaran/dachshund/row"
)

// ErrRowNotEdgeOrSeed indicates a row reached a MiningHandler that was
// neither an EdgeRow nor a SeedRow (a SimpleEdgeRow belongs to the analytics
// front-end, not the mining one).
var ErrRowNotEdgeOrSeed = errors.New("stream: row is neither an edge row nor a seed row")

// MiningConfig bundles the parameters every graph's MiningHandler shares.
type MiningConfig struct {
	Registry   *registry.TypeRegistry
	MinDegree  *int
	Problem    beam.SearchProblem
	LongFormat bool

	// Logger, if set, receives one debug event per batch (graph_id,
	// rows_in, nodes_core, nodes_non_core, elapsed_ms) and is attached to
	// the per-batch Beam so Verbose epoch events are emitted too.
	Logger *zerolog.Logger
}

// NewMiningHandlerFactory returns a HandlerFactory producing a fresh
// MiningHandler per batch, sharing cfg across batches.
func NewMiningHandlerFactory(cfg MiningConfig) HandlerFactory {
	return func() BatchHandler {
		return &MiningHandler{cfg: cfg}
	}
}

// MiningHandler accumulates one graph's edge and seed rows, then runs one
// beam search over the resulting typed graph once the batch completes.
type MiningHandler struct {
	cfg   MiningConfig
	edges []row.EdgeRow
	seeds []ids.NodeId
}

// ProcessRow files r into the edge or seed accumulator.
func (h *MiningHandler) ProcessRow(r row.Row) error {
	if e, ok := r.AsEdgeRow(); ok {
		h.edges = append(h.edges, e)
		return nil
	}
	if s, ok := r.AsSeedRow(); ok {
		h.seeds = append(h.seeds, s.NodeID)
		return nil
	}
	return ErrRowNotEdgeOrSeed
}

// ProcessBatch builds the typed graph for graphID from the accumulated
// edges, runs a beam search (seeded from any accumulated seed nodes), and
// serializes the winning candidate.
func (h *MiningHandler) ProcessBatch(graphID ids.GraphId) ([]string, error) {
	if len(h.edges) == 0 {
		return nil, nil
	}
	start := time.Now()

	graph, err := builder.New(graphID, h.edges, h.cfg.MinDegree)
	if err != nil {
		return nil, err
	}

	numNonCoreTypes := len(h.cfg.Registry.NonCoreTypeNames())
	b, err := beam.New(graph, h.seeds, numNonCoreTypes, h.cfg.Problem, graphID)
	if err != nil {
		return nil, err
	}
	b.Logger = h.cfg.Logger
	result, err := b.RunSearch()
	if err != nil {
		return nil, err
	}

	if h.cfg.Logger != nil {
		h.cfg.Logger.Debug().
			Int64("graph_id", int64(graphID)).
			Int("rows_in", len(h.edges)).
			Int("nodes_core", len(graph.CoreIDs)).
			Int("nodes_non_core", len(graph.NonCoreIDs)).
			Dur("elapsed_ms", time.Since(start)).
			Msg("mining batch")
	}
	if result.TopCandidate == nil {
		return nil, nil
	}

	if h.cfg.LongFormat {
		return result.TopCandidate.ToLongRows(graphID, h.cfg.Registry)
	}

	line, err := result.TopCandidate.ToPrintableRow(graphID, h.cfg.Registry)
	if err != nil {
		return nil, err
	}
	return []string{line}, nil
}
