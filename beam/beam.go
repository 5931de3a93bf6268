// Package beam drives the generation-based search for a quasi-biclique:
// starting from a stochastically seeded set of single-node candidates (or a
// supplied existing clique), it repeatedly expands every member of its beam
// by one node, keeps the top-scoring BeamSize results, and stops on
// exhaustion, stagnation, or a repeated top score.
package beam

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/dachshund/candidate"
	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
	"github.com/katalvlaran/dachshund/scorer"
	"github.com/katalvlaran/dachshund/typedgraph"
)

// ErrNoEdges indicates a random walk step landed on a node with no edges
// (an isolated node the pruning pass should have removed).
var ErrNoEdges = errors.New("beam: node has no edges to walk from")

// ErrScoreDecreased indicates a one-step search produced a worse top score
// than the prior epoch, which never happens in a correct run — it signals a
// scorer or candidate bug, not a data condition, so callers should treat it
// as fatal.
var ErrScoreDecreased = errors.New("beam: top score decreased between epochs")

// Result is the outcome of a full beam search.
type Result struct {
	TopCandidate *candidate.Candidate
	NumSteps     int
}

// Beam holds the live state of one graph's search: the current generation
// of candidates, and everything needed to score and expand them.
type Beam struct {
	Candidates []*candidate.Candidate

	// Logger receives one debug event per epoch when problem.Verbose is
	// set (top_score, beam_size, visited, progress). A nil Logger is the
	// zero-cost default; New never assigns one, so emitting per-epoch
	// events is opt-in for callers that want them (the analyze/mine CLI
	// front-end wires one when --debug is passed).
	Logger *zerolog.Logger

	graph          *typedgraph.TypedGraph
	problem        SearchProblem
	scorer         *scorer.Scorer
	rng            *rand.Rand
	visited        map[uint64]struct{}
	numNonCoreType int
}

// New seeds a beam for graph, either from seedNodeIDs (an existing clique,
// if non-empty) or by random walk, until the beam reaches problem.BeamSize
// candidates. The PRNG is seeded from graphID so that repeated runs over
// the same graph and parameters are deterministic.
func New(graph *typedgraph.TypedGraph, seedNodeIDs []ids.NodeId, numNonCoreTypes int, problem SearchProblem, graphID ids.GraphId) (*Beam, error) {
	sc := scorer.New(numNonCoreTypes, problem.Alpha, problem.GlobalThresh, problem.LocalThresh)
	rng := rand.New(rand.NewSource(int64(ids.HashGraph(graphID))))

	b := &Beam{
		graph:          graph,
		problem:        problem,
		scorer:         sc,
		rng:            rng,
		visited:        make(map[uint64]struct{}),
		numNonCoreType: numNonCoreTypes,
	}

	if len(seedNodeIDs) > 0 {
		seed, ok, err := candidate.NewFromSeedNodes(seedNodeIDs, graph, sc)
		if err != nil {
			return nil, err
		}
		if ok {
			b.Candidates = append(b.Candidates, seed)
		}
	}

	for len(b.Candidates) < problem.BeamSize {
		nodeID, err := b.pickRandomRoot()
		if err != nil {
			return nil, err
		}
		walked, err := b.randomWalk(nodeID, 7)
		if err != nil {
			return nil, err
		}
		c, err := candidate.NewFromNode(walked, graph, sc)
		if err != nil {
			return nil, err
		}
		b.Candidates = append(b.Candidates, c)
	}
	return b, nil
}

// pickRandomRoot flips a fair coin to pick the core or non-core id list,
// then picks one id from it uniformly at random.
func (b *Beam) pickRandomRoot() (ids.NodeId, error) {
	idsVec := b.graph.NonCoreIDs
	if b.rng.Float32() > 0.5 {
		idsVec = b.graph.CoreIDs
	}
	if len(idsVec) == 0 {
		return 0, fmt.Errorf("beam: graph has no nodes to seed from")
	}
	return idsVec[b.rng.Intn(len(idsVec))], nil
}

// randomWalk takes length hops along uniformly random out-edges, starting
// at node, and returns the node landed on.
func (b *Beam) randomWalk(node ids.NodeId, length int) (ids.NodeId, error) {
	current := node
	for i := 0; i < length; i++ {
		n := b.graph.Node(current)
		if len(n.Edges) == 0 {
			return 0, ErrNoEdges
		}
		current = n.Edges[b.rng.Intn(len(n.Edges))].TargetID
	}
	return current, nil
}

// recipeEntry pairs a scored Recipe with the parent candidate it refers to
// (by checksum lookup it would otherwise have to repeat), so the beam can
// sort the full recipe space and materialize only the survivors.
type recipeEntry struct {
	recipe *candidate.Recipe
	parent *candidate.Candidate
}

// recipeDedupKey identifies a recipe by (parent checksum, node id) alone —
// exactly the fields Recipe equality is defined over — so the same
// expansion proposed by two different search paths in one epoch collapses
// to a single pool entry.
type recipeDedupKey struct {
	parentChecksum uint64
	hasNode        bool
	nodeID         ids.NodeId
}

func dedupKeyOf(r *candidate.Recipe) recipeDedupKey {
	key := recipeDedupKey{}
	if r.ParentChecksum != nil {
		key.parentChecksum = *r.ParentChecksum
	}
	if r.NodeID != nil {
		key.hasNode = true
		key.nodeID = *r.NodeID
	}
	return key
}

// oneStepSearch emits a scored Recipe per candidate expansion plus one
// "do nothing" recipe per live candidate, sorts the full recipe space
// descending by (score, checksum, node id), and materializes only the top
// BeamSize survivors — so ExpandWithNode never runs on a recipe the beam
// is about to discard. Returns the new top candidate plus whether any
// member was still unvisited (false means the search is exhausted).
func (b *Beam) oneStepSearch() (*candidate.Candidate, bool, error) {
	seen := make(map[recipeDedupKey]struct{})
	var pool []recipeEntry
	hints := make(map[uint64]*candidate.Candidate, len(b.Candidates))
	canContinue := false

	for _, c := range b.Candidates {
		checksum, _ := c.Checksum()
		hints[checksum] = c

		if _, visited := b.visited[checksum]; !visited {
			canContinue = true
			recipes, err := c.GetExpansionRecipes(b.problem.NumToSearch, b.visited, b.scorer)
			if err != nil {
				return nil, false, err
			}
			for _, r := range recipes {
				key := dedupKeyOf(r)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				pool = append(pool, recipeEntry{recipe: r, parent: c})
			}
		}

		doNothing := &candidate.Recipe{ParentChecksum: &checksum}
		if score, err := c.Score(); err == nil {
			doNothing.Score = &score
		}
		key := dedupKeyOf(doNothing)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			pool = append(pool, recipeEntry{recipe: doNothing, parent: c})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		ri, rj := pool[i].recipe, pool[j].recipe
		var si, sj float32
		if ri.Score != nil {
			si = *ri.Score
		}
		if rj.Score != nil {
			sj = *rj.Score
		}
		if si != sj {
			return si > sj
		}
		var ci, cj uint64
		if ri.ParentChecksum != nil {
			ci = *ri.ParentChecksum
		}
		if rj.ParentChecksum != nil {
			cj = *rj.ParentChecksum
		}
		if ci != cj {
			return ci > cj
		}
		var ni, nj ids.NodeId
		if ri.NodeID != nil {
			ni = *ri.NodeID
		}
		if rj.NodeID != nil {
			nj = *rj.NodeID
		}
		return ni > nj
	})

	beamSize := b.problem.BeamSize
	if beamSize > len(pool) {
		beamSize = len(pool)
	}
	newCandidates := make([]*candidate.Candidate, beamSize)
	for i := 0; i < beamSize; i++ {
		entry := pool[i]
		var next *candidate.Candidate
		if entry.recipe.NodeID == nil {
			next = entry.parent.Replicate(true)
		} else {
			expanded, err := entry.parent.ExpandWithNode(*entry.recipe.NodeID)
			if err != nil {
				return nil, false, err
			}
			if entry.recipe.Score != nil {
				if err := expanded.SetScore(*entry.recipe.Score); err != nil {
					return nil, false, err
				}
			}
			next = expanded
		}
		next.SetNeighborhoodWithHint(hints)
		newCandidates[i] = next
	}
	b.Candidates = newCandidates

	return b.Candidates[0].Replicate(true), canContinue, nil
}

// RunSearch runs oneStepSearch for NumEpochs epochs (or, if NumEpochs is 0,
// simply returns the best-scored of the initial beam), terminating early on
// exhaustion or on MaxRepeatedPriorScores consecutive epochs whose top
// score did not change beyond float32 machine epsilon.
func (b *Beam) RunSearch() (Result, error) {
	if b.problem.NumEpochs <= 0 {
		return b.bestOfInitialBeam(), nil
	}

	priorScore := float32(-2.0)
	numRepeated := 0
	numSteps := 0

	for i := 0; i < b.problem.NumEpochs-1; i++ {
		numSteps = i + 1
		top, canContinue, err := b.oneStepSearch()
		if err != nil {
			return Result{}, err
		}
		if !canContinue {
			break
		}
		score, err := top.Score()
		if err != nil {
			return Result{}, err
		}
		if score < priorScore {
			// A correct scorer/candidate never regresses the beam's top
			// score between epochs; this is a programmer error, not a
			// data condition, so it panics rather than returning an error.
			panic(ErrScoreDecreased.Error())
		}
		if float64(absFloat32(score-priorScore)) <= epsilon32 {
			numRepeated++
		} else {
			numRepeated = 0
		}
		if numRepeated == b.problem.MaxRepeatedPriorScores {
			break
		}
		priorScore = score

		if b.problem.Verbose && b.Logger != nil {
			b.Logger.Debug().
				Float32("top_score", score).
				Int("beam_size", len(b.Candidates)).
				Int("visited", len(b.visited)).
				Int("progress", numSteps).
				Msg("beam epoch")
		}
	}

	top, _, err := b.oneStepSearch()
	if err != nil {
		return Result{}, err
	}
	return Result{TopCandidate: top, NumSteps: numSteps}, nil
}

// epsilon32 is float32's machine epsilon, matching Rust's f32::EPSILON.
const epsilon32 = 1.1920929e-7

func absFloat32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func (b *Beam) bestOfInitialBeam() Result {
	best := b.Candidates[0].Replicate(true)
	bestScore := float32(0.0)
	for _, c := range b.Candidates {
		score, err := c.Score()
		if err != nil {
			continue
		}
		if score > bestScore {
			best = c.Replicate(true)
			bestScore = score
		}
	}
	return Result{TopCandidate: best, NumSteps: 0}
}

// SeedNodeIDsFromRows extracts node ids from a run of seed rows sharing one
// graph id, in the order given.
func SeedNodeIDsFromRows(rows []row.SeedRow) []ids.NodeId {
	out := make([]ids.NodeId, len(rows))
	for i, r := range rows {
		out[i] = r.NodeID
	}
	return out
}
