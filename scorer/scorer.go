// Package scorer computes the "cliqueness" objective the beam search
// maximizes: a diversity term (more distinct node types, and more nodes of
// each, score higher) plus an alpha-weighted cliqueness term, gated to zero
// by any configured global or local density threshold the candidate fails.
package scorer

import (
	"errors"
	"math"

	"github.com/katalvlaran/dachshund/candidate"
)

// errNilRecipeNode indicates ScoreRecipe was called on a "do nothing"
// recipe (NodeID nil), which has nothing to project — callers should use
// parent.Score() directly for that case.
var errNilRecipeNode = errors.New("scorer: recipe has no node to score")

// Scorer computes a candidate's score given the search's parameters.
type Scorer struct {
	NumNonCoreTypes int
	Alpha           float32
	GlobalThresh    *float32 // nil disables the global threshold gate
	LocalThresh     *float32 // nil disables the local threshold gate
}

// New returns a Scorer for a graph with the given number of non-core types
// and the search problem's alpha/threshold parameters.
func New(numNonCoreTypes int, alpha float32, globalThresh, localThresh *float32) *Scorer {
	return &Scorer{
		NumNonCoreTypes: numNonCoreTypes,
		Alpha:           alpha,
		GlobalThresh:    globalThresh,
		LocalThresh:     localThresh,
	}
}

// Score computes the candidate's score. A candidate with no core nodes or
// no non-core nodes yet scores -1 (it cannot describe a biclique).
func (s *Scorer) Score(c *candidate.Candidate) (float32, error) {
	if len(c.CoreIDs) == 0 || len(c.NonCoreIDs) == 0 {
		return -1.0, nil
	}

	score := s.diversityScore(c.GetNodeCounts(s.NumNonCoreTypes))

	cliqueness := c.Cliqueness()
	score += cliqueness * s.Alpha

	score *= s.globalThreshScore(cliqueness)
	score *= s.localThreshScore(c)

	return score, nil
}

// ScoreRecipe projects the score that parent.AddNode(*r.NodeID) would
// produce, without materializing the child candidate: it uses only
// parent's counts plus the incremental contribution of the added node, so
// the beam can sort and prune the full recipe space before paying the
// allocation cost of expansion. If r.Score is already set, it is returned
// unchanged. r.NodeID must be non-nil (scoring a "do nothing" recipe is
// just parent.Score(), not a projection).
func (s *Scorer) ScoreRecipe(r *candidate.Recipe, parent *candidate.Candidate) (float32, error) {
	if r.Score != nil {
		return *r.Score, nil
	}
	if r.NodeID == nil {
		return 0, errNilRecipeNode
	}

	projectedSize, err := parent.ProjectedSize(*r.NodeID)
	if err != nil {
		return 0, err
	}
	if projectedSize == 0 {
		return -1.0, nil
	}

	score := s.diversityScore(parent.ProjectedNodeCounts(s.NumNonCoreTypes, *r.NodeID))

	cliqueness, err := parent.ProjectedCliqueness(*r.NodeID)
	if err != nil {
		return 0, err
	}
	score += cliqueness * s.Alpha

	score *= s.globalThreshScore(cliqueness)

	if s.LocalThresh != nil && !parent.ProjectedLocalThreshScoreAtLeast(*s.LocalThresh, *r.NodeID) {
		score = 0.0
	}

	return score, nil
}

// diversityScore increases with node count and is higher for more diverse
// type representation: sum of ln(count+1) across every type bucket.
func (s *Scorer) diversityScore(nodeCounts []int64) float32 {
	var total float64
	for _, count := range nodeCounts {
		total += math.Log(float64(count) + 1.0)
	}
	return float32(total)
}

// globalThreshScore returns 1.0 when no global threshold is configured, or
// when cliqueness meets it; 0.0 otherwise.
func (s *Scorer) globalThreshScore(cliqueness float32) float32 {
	if s.GlobalThresh == nil {
		return 1.0
	}
	if cliqueness >= *s.GlobalThresh {
		return 1.0
	}
	return 0.0
}

// localThreshScore returns 1.0 when no local threshold is configured, or
// when every core node meets it (per Candidate.LocalThreshScoreAtLeast);
// 0.0 otherwise.
func (s *Scorer) localThreshScore(c *candidate.Candidate) float32 {
	if s.LocalThresh == nil {
		return 1.0
	}
	if c.LocalThreshScoreAtLeast(*s.LocalThresh) {
		return 1.0
	}
	return 0.0
}
