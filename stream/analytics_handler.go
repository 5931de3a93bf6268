package stream

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/dachshund/algorithms"
	"github.com/katalvlaran/dachshund/analytics"
	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
)

// Algorithm names one companion analysis the analyze front-end can run.
type Algorithm string

const (
	ConnectedComponentsAlgorithm Algorithm = "connected-components"
	KCoreAlgorithm               Algorithm = "k-core"
	CorenessAlgorithm            Algorithm = "coreness"
	KTrussAlgorithm              Algorithm = "k-truss"
	KPeaksAlgorithm              Algorithm = "k-peaks"
	BetweennessAlgorithm         Algorithm = "betweenness"
	EigenvectorAlgorithm         Algorithm = "eigenvector"
	TransitivityAlgorithm        Algorithm = "transitivity"
	CNMAlgorithm                 Algorithm = "cnm"
	CyclesAlgorithm              Algorithm = "cycles"
)

// ErrRowNotSimpleEdge indicates a row reached an AnalyticsHandler that was
// not a SimpleEdgeRow (an EdgeRow/SeedRow belongs to the mining front-end,
// not this one).
var ErrRowNotSimpleEdge = errors.New("stream: row is not a simple edge row")

// ErrUnknownAlgorithm indicates an AnalyticsConfig named an Algorithm this
// package does not implement.
var ErrUnknownAlgorithm = errors.New("stream: unknown analytics algorithm")

// AnalyticsConfig bundles the parameters every graph's AnalyticsHandler
// shares: which algorithm to run, and the k parameter KCore/KTruss need.
type AnalyticsConfig struct {
	Algorithm Algorithm
	K         int

	// Logger, if set, receives one debug event per batch (graph_id,
	// rows_in, elapsed_ms), plus a descriptive-stats summary (mean,
	// stddev) of the emitted scores for the centrality algorithms.
	Logger *zerolog.Logger
}

// NewAnalyticsHandlerFactory returns a HandlerFactory producing a fresh
// AnalyticsHandler per batch, sharing cfg across batches.
func NewAnalyticsHandlerFactory(cfg AnalyticsConfig) HandlerFactory {
	return func() BatchHandler {
		return &AnalyticsHandler{cfg: cfg}
	}
}

// AnalyticsHandler accumulates one graph's simple edge rows, then runs the
// configured companion analysis once the batch completes.
type AnalyticsHandler struct {
	cfg  AnalyticsConfig
	rows []row.SimpleEdgeRow
}

// ProcessRow files r into the row accumulator.
func (h *AnalyticsHandler) ProcessRow(r row.Row) error {
	s, ok := r.AsSimpleEdgeRow()
	if !ok {
		return ErrRowNotSimpleEdge
	}
	h.rows = append(h.rows, s)
	return nil
}

// ProcessBatch runs h.cfg.Algorithm over the accumulated rows for graphID
// and serializes the result to the algorithm's output-row shape.
func (h *AnalyticsHandler) ProcessBatch(graphID ids.GraphId) ([]string, error) {
	if len(h.rows) == 0 {
		return nil, nil
	}
	start := time.Now()
	graphKey := strconv.FormatInt(int64(graphID), 10)

	out, err := h.runAlgorithm(graphKey)

	if h.cfg.Logger != nil {
		h.cfg.Logger.Debug().
			Int64("graph_id", int64(graphID)).
			Int("rows_in", len(h.rows)).
			Dur("elapsed_ms", time.Since(start)).
			Msg("analytics batch")
	}
	return out, err
}

func (h *AnalyticsHandler) runAlgorithm(graphKey string) ([]string, error) {
	switch h.cfg.Algorithm {
	case ConnectedComponentsAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		components, err := analytics.ConnectedComponents(g)
		if err != nil {
			return nil, err
		}
		return analytics.ComponentsOutputRows(graphKey, components), nil

	case KCoreAlgorithm:
		survivors, err := analytics.KCore(h.rows, h.cfg.K)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(survivors))
		for i, id := range survivors {
			out[i] = graphKey + "\t" + id
		}
		return out, nil

	case CorenessAlgorithm:
		rows, err := analytics.CorenessRows(h.rows)
		if err != nil {
			return nil, err
		}
		return analytics.CorenessOutputRows(graphKey, rows), nil

	case KTrussAlgorithm:
		trusses, err := analytics.KTruss(h.rows, h.cfg.K)
		if err != nil {
			return nil, err
		}
		return analytics.TrussOutputRows(graphKey, trusses), nil

	case KPeaksAlgorithm:
		assignments, err := analytics.KPeaks(h.rows)
		if err != nil {
			return nil, err
		}
		return analytics.KPeaksOutputRows(graphKey, assignments), nil

	case BetweennessAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		scores, err := algorithms.Betweenness(g)
		if err != nil {
			return nil, err
		}
		return h.centralityOutputRows(graphKey, scores), nil

	case EigenvectorAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		scores, err := algorithms.EigenvectorCentrality(g)
		if err != nil {
			return nil, err
		}
		return h.centralityOutputRows(graphKey, scores), nil

	case TransitivityAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		val, err := algorithms.Transitivity(g)
		if err != nil {
			return nil, err
		}
		return []string{graphKey + "\t" + strconv.FormatFloat(val, 'g', -1, 64)}, nil

	case CNMAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		communities, _, err := algorithms.CNMCommunities(g)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(communities))
		for _, c := range communities {
			for _, node := range c.Nodes {
				out = append(out, graphKey+"\t"+strconv.Itoa(c.ID)+"\t"+node)
			}
		}
		return out, nil

	case CyclesAlgorithm:
		g, err := analytics.BuildGraph(h.rows)
		if err != nil {
			return nil, err
		}
		cycles, err := algorithms.Cycles(g)
		if err != nil {
			return nil, err
		}
		return algorithms.CyclesOutputRows(graphKey, cycles), nil

	default:
		return nil, ErrUnknownAlgorithm
	}
}

// centralityOutputRows renders a per-node score map as
// "graph_key\tnode_id\tscore" lines, sorted by node id for deterministic
// output, and — when a logger is attached — emits a descriptive-stats
// summary (mean, stddev) of the score distribution as a debug event.
func (h *AnalyticsHandler) centralityOutputRows(graphKey string, scores map[string]float64) []string {
	nodeIDs := make([]string, 0, len(scores))
	for id := range scores {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	out := make([]string, len(nodeIDs))
	values := make([]float64, len(nodeIDs))
	for i, id := range nodeIDs {
		out[i] = graphKey + "\t" + id + "\t" + strconv.FormatFloat(scores[id], 'g', -1, 64)
		values[i] = scores[id]
	}

	if h.cfg.Logger != nil && len(values) > 0 {
		mean := stat.Mean(values, nil)
		h.cfg.Logger.Debug().
			Str("graph_key", graphKey).
			Float64("mean", mean).
			Float64("stddev", stat.StdDev(values, nil)).
			Msg("centrality distribution")
	}
	return out
}
