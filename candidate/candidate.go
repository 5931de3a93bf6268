// Package candidate implements the mutable quasi-biclique state the beam
// search grows one node at a time: a (fuzzy) subgraph of core and non-core
// node ids, with a running checksum, score, and the bookkeeping the scorer
// needs (ties between nodes, max possible core-node edges, a local density
// guarantee, and a lazily recomputed neighborhood).
//
// Unlike its origin, a Candidate here never stores a back-reference to its
// parent. Recipe records a parent checksum, an optional node to add, and an
// optional precomputed score; the beam supplies a per-epoch hints map when
// it wants a candidate to crib its neighborhood from a known parent instead
// of recomputing it from scratch.
package candidate

import (
	"errors"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/typedgraph"
)

// ErrAlreadyScored indicates SetScore was called on a candidate that
// already carries a score — a programmer error per the mining pipeline's
// error-handling rule (scoring happens exactly once per candidate).
var ErrAlreadyScored = errors.New("candidate: already scored")

// ErrNotScored indicates Score was called before SetScore.
var ErrNotScored = errors.New("candidate: not yet scored")

// ErrNodeNotCore indicates max-edge-count metadata was requested for a core
// node, which carries none.
var ErrNodeNotCore = errors.New("candidate: node has no non-core type")

// LocalDensityGuarantee promises that every core node in a candidate has at
// least NumEdges possible ties, except maybe the nodes listed in
// Exceptions (not yet inspected). Checking a looser threshold than NumEdges
// only requires re-inspecting Exceptions.
type LocalDensityGuarantee struct {
	NumEdges   int
	Exceptions map[ids.NodeId]struct{}
}

// Recipe is an immutable, sortable, hashable description of either "extend
// the candidate identified by ParentChecksum by adding NodeID" (NodeID
// non-nil) or "keep that candidate as-is" (NodeID nil, the beam's "do
// nothing" option). ParentChecksum is nil only for a candidate built from a
// single node (no parent). Score is nil until a Scorer's ScoreRecipe
// projects it; once set, it lets the beam sort and prune the full recipe
// space before paying the allocation cost of materializing a Candidate via
// ExpandWithNode. The beam treats two recipes as equal when (ParentChecksum,
// NodeID) match, and orders them by (Score, ParentChecksum, NodeID), so ties
// are never left unresolved.
type Recipe struct {
	ParentChecksum *uint64
	NodeID         *ids.NodeId
	Score          *float32
}

// Candidate is a (fuzzy) biclique under construction. It enforces no
// consistency guarantees on its own — it is purely the bookkeeping the beam
// and scorer operate on.
type Candidate struct {
	Graph *typedgraph.TypedGraph

	CoreIDs    map[ids.NodeId]struct{}
	NonCoreIDs map[ids.NodeId]struct{}

	checksum *uint64
	score    *float32

	maxCoreNodeEdges int64
	tiesBetweenNodes int64
	localGuarantee   LocalDensityGuarantee
	neighborhood     map[ids.NodeId]int64 // nil until computed
	recipe           *Recipe
}

// InitBlank returns an empty candidate referring to graph.
func InitBlank(graph *typedgraph.TypedGraph) *Candidate {
	return &Candidate{
		Graph:      graph,
		CoreIDs:    make(map[ids.NodeId]struct{}),
		NonCoreIDs: make(map[ids.NodeId]struct{}),
		localGuarantee: LocalDensityGuarantee{
			Exceptions: make(map[ids.NodeId]struct{}),
		},
		neighborhood: make(map[ids.NodeId]int64),
	}
}

// NewFromNode creates a scored single-node candidate.
func NewFromNode(nodeID ids.NodeId, graph *typedgraph.TypedGraph, scorer Scorer) (*Candidate, error) {
	c := InitBlank(graph)
	if err := c.AddNode(nodeID); err != nil {
		return nil, err
	}
	score, err := scorer.Score(c)
	if err != nil {
		return nil, err
	}
	if err := c.SetScore(score); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromSeedNodes creates a scored candidate from a set of pre-existing
// clique node ids, skipping any not present in graph. Returns ok=false if
// none of the ids overlapped the graph.
func NewFromSeedNodes(nodeIDs []ids.NodeId, graph *typedgraph.TypedGraph, scorer Scorer) (*Candidate, bool, error) {
	c := InitBlank(graph)
	for _, nodeID := range nodeIDs {
		if !graph.HasNode(nodeID) {
			continue
		}
		if err := c.AddNode(nodeID); err != nil {
			return nil, false, err
		}
	}
	if _, ok := c.Checksum(); !ok {
		return nil, false, nil
	}
	score, err := scorer.Score(c)
	if err != nil {
		return nil, false, err
	}
	if err := c.SetScore(score); err != nil {
		return nil, false, err
	}
	c.SetNeighborhood()
	return c, true, nil
}

// Checksum returns the candidate's running checksum, or ok=false if the
// candidate has no nodes yet.
func (c *Candidate) Checksum() (uint64, bool) {
	if c.checksum == nil {
		return 0, false
	}
	return *c.checksum, true
}

// Recipe returns how this candidate was built, if it was built by AddNode.
func (c *Candidate) Recipe() *Recipe { return c.recipe }

// AddNode adds nodeID to the candidate, updating its checksum, ties count,
// max-core-node-edges total, local density guarantee, recipe, and (for the
// first node only) its neighborhood. The score is reset to unset.
func (c *Candidate) AddNode(nodeID ids.NodeId) error {
	nodeHash := ids.HashNode(nodeID)

	parentChecksum := c.checksum
	addedNodeID := nodeID
	c.recipe = &Recipe{ParentChecksum: parentChecksum, NodeID: &addedNodeID}

	if c.checksum != nil {
		sum := *c.checksum + nodeHash
		c.checksum = &sum
	} else {
		sum := nodeHash
		c.checksum = &sum
	}

	node := c.Graph.Node(nodeID)
	if node.IsCore {
		c.CoreIDs[nodeID] = struct{}{}
		c.localGuarantee.Exceptions[nodeID] = struct{}{}
	} else {
		c.NonCoreIDs[nodeID] = struct{}{}
		if err := c.incrementMaxCoreNodeEdges(nodeID); err != nil {
			return err
		}
	}
	c.incrementTiesBetweenNodes(nodeID)
	c.score = nil

	if parentChecksum == nil {
		c.neighborhood = c.calculateNeighborhood()
	} else {
		c.neighborhood = nil
	}
	return nil
}

// SortedCoreIDs returns the candidate's core ids in ascending order.
func (c *Candidate) SortedCoreIDs() []ids.NodeId {
	return sortedKeys(c.CoreIDs)
}

// SortedNonCoreIDs returns the candidate's non-core ids in ascending order.
func (c *Candidate) SortedNonCoreIDs() []ids.NodeId {
	return sortedKeys(c.NonCoreIDs)
}

func sortedKeys(m map[ids.NodeId]struct{}) []ids.NodeId {
	out := make([]ids.NodeId, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return typedgraph.SortNodeIDs(out)
}

// SetScore records score on the candidate. Returns ErrAlreadyScored if the
// candidate was already scored.
func (c *Candidate) SetScore(score float32) error {
	if c.score != nil {
		return ErrAlreadyScored
	}
	c.score = &score
	return nil
}

// Score returns the candidate's score, or ErrNotScored if unset.
func (c *Candidate) Score() (float32, error) {
	if c.score == nil {
		return 0, ErrNotScored
	}
	return *c.score, nil
}

// Node returns the graph node named nodeID.
func (c *Candidate) Node(nodeID ids.NodeId) *typedgraph.Node { return c.Graph.Node(nodeID) }

// GetNodeCounts returns, for a graph with numNonCoreTypes non-core types,
// a slice of length numNonCoreTypes+1: index 0 is the candidate's core node
// count, index i (i>=1) is its count of non-core type i members. This is
// the diversity score's input: more node types present, and more nodes of
// each, score higher.
func (c *Candidate) GetNodeCounts(numNonCoreTypes int) []int64 {
	counts := make([]int64, numNonCoreTypes+1)
	counts[0] = int64(len(c.CoreIDs))
	for nonCoreID := range c.NonCoreIDs {
		if t := c.Node(nonCoreID).NonCoreType; t != nil {
			counts[t.Value()]++
		}
	}
	return counts
}

// GetNeighborhood returns a copy of the nodes adjacent to the candidate,
// mapped to their tie count with the candidate, recomputing from scratch if
// not yet known.
func (c *Candidate) GetNeighborhood() map[ids.NodeId]int64 {
	if c.neighborhood == nil {
		return c.calculateNeighborhood()
	}
	out := make(map[ids.NodeId]int64, len(c.neighborhood))
	for k, v := range c.neighborhood {
		out[k] = v
	}
	return out
}

// GetLocalGuarantee returns a copy of the candidate's local density
// guarantee.
func (c *Candidate) GetLocalGuarantee() LocalDensityGuarantee {
	exceptions := make(map[ids.NodeId]struct{}, len(c.localGuarantee.Exceptions))
	for id := range c.localGuarantee.Exceptions {
		exceptions[id] = struct{}{}
	}
	return LocalDensityGuarantee{NumEdges: c.localGuarantee.NumEdges, Exceptions: exceptions}
}

// GetSize returns the maximum number of edges that could connect every node
// currently in the candidate.
func (c *Candidate) GetSize() int64 {
	return int64(len(c.CoreIDs)) * c.maxCoreNodeEdges
}

func (c *Candidate) incrementMaxCoreNodeEdges(nodeID ids.NodeId) error {
	n, ok := c.Node(nodeID).MaxEdgeCountWithCoreNode()
	if !ok {
		return ErrNodeNotCore
	}
	c.maxCoreNodeEdges += n
	return nil
}

// ProjectedNodeCounts returns what GetNodeCounts(numNonCoreTypes) would
// become if nodeID were added, without mutating c. Used by ScoreRecipe to
// project a diversity score without materializing the child candidate.
func (c *Candidate) ProjectedNodeCounts(numNonCoreTypes int, nodeID ids.NodeId) []int64 {
	counts := c.GetNodeCounts(numNonCoreTypes)
	node := c.Node(nodeID)
	if node.IsCore {
		counts[0]++
	} else if t := node.NonCoreType; t != nil {
		counts[t.Value()]++
	}
	return counts
}

// ProjectedSize returns what GetSize() would become if nodeID were added.
func (c *Candidate) ProjectedSize(nodeID ids.NodeId) (int64, error) {
	node := c.Node(nodeID)
	coreCount := int64(len(c.CoreIDs))
	maxCoreNodeEdges := c.maxCoreNodeEdges
	if node.IsCore {
		coreCount++
	} else {
		n, ok := node.MaxEdgeCountWithCoreNode()
		if !ok {
			return 0, ErrNodeNotCore
		}
		maxCoreNodeEdges += n
	}
	return coreCount * maxCoreNodeEdges, nil
}

// ProjectedCliqueness returns what Cliqueness() would become if nodeID were
// added, without mutating c's ties or size bookkeeping.
func (c *Candidate) ProjectedCliqueness(nodeID ids.NodeId) (float32, error) {
	size, err := c.ProjectedSize(nodeID)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return 1.0, nil
	}
	node := c.Node(nodeID)
	var newTies int
	if node.IsCore {
		newTies = node.CountTiesWithIDs(c.NonCoreIDs)
	} else {
		newTies = node.CountTiesWithIDs(c.CoreIDs)
	}
	ties := c.tiesBetweenNodes + int64(newTies)
	return float32(ties) / float32(size), nil
}

// ProjectedLocalThreshScoreAtLeast reports whether every core node would
// still carry at least thresh fraction of its possible edges if nodeID were
// added. Unlike LocalThreshScoreAtLeast, this never reads or updates the
// local density guarantee cache — it is a pure projection used only to
// score an unmaterialized Recipe, not a repeated hot-path query.
func (c *Candidate) ProjectedLocalThreshScoreAtLeast(thresh float32, nodeID ids.NodeId) bool {
	if thresh == 0 {
		return true
	}

	node := c.Node(nodeID)
	maxCoreNodeEdges := c.maxCoreNodeEdges
	coreIDs := c.CoreIDs
	nonCoreIDs := c.NonCoreIDs

	if node.IsCore {
		coreIDs = make(map[ids.NodeId]struct{}, len(c.CoreIDs)+1)
		for id := range c.CoreIDs {
			coreIDs[id] = struct{}{}
		}
		coreIDs[nodeID] = struct{}{}
	} else {
		if n, ok := node.MaxEdgeCountWithCoreNode(); ok {
			maxCoreNodeEdges += n
		}
		nonCoreIDs = make(map[ids.NodeId]struct{}, len(c.NonCoreIDs)+1)
		for id := range c.NonCoreIDs {
			nonCoreIDs[id] = struct{}{}
		}
		nonCoreIDs[nodeID] = struct{}{}
	}

	impliedEdgeThresh := ceilInt64(thresh * float32(maxCoreNodeEdges))
	for coreID := range coreIDs {
		if int64(c.Node(coreID).CountTiesWithIDs(nonCoreIDs)) < impliedEdgeThresh {
			return false
		}
	}
	return true
}

// Cliqueness is the density of ties between core and non-core nodes: 1.0
// for an empty candidate (size zero), otherwise ties/size.
func (c *Candidate) Cliqueness() float32 {
	size := c.GetSize()
	if size > 0 {
		return float32(c.tiesBetweenNodes) / float32(size)
	}
	return 1.0
}

// LocalThreshScoreAtLeast reports whether every core node has at least
// thresh fraction of its possible edges, using and refreshing the local
// density guarantee so repeated calls at the same threshold only re-inspect
// the nodes added since the last call.
func (c *Candidate) LocalThreshScoreAtLeast(thresh float32) bool {
	if thresh == 0 {
		return true
	}

	impliedEdgeThresh := ceilInt64(thresh * float32(c.maxCoreNodeEdges))
	checkAll := int64(c.localGuarantee.NumEdges) < impliedEdgeThresh

	var nodesToCheck map[ids.NodeId]struct{}
	if checkAll {
		nodesToCheck = c.CoreIDs
	} else {
		nodesToCheck = c.localGuarantee.Exceptions
	}

	var minEdges *int64
	for nodeID := range nodesToCheck {
		edgeCount := int64(c.Node(nodeID).CountTiesWithIDs(c.NonCoreIDs))
		if edgeCount < impliedEdgeThresh {
			return false
		}
		if minEdges == nil || edgeCount < *minEdges {
			e := edgeCount
			minEdges = &e
		}
	}

	newNumEdges := c.localGuarantee.NumEdges
	if minEdges != nil {
		newNumEdges = int(*minEdges)
	}
	if !checkAll && newNumEdges > c.localGuarantee.NumEdges {
		newNumEdges = c.localGuarantee.NumEdges
	}

	c.localGuarantee = LocalDensityGuarantee{
		NumEdges:   newNumEdges,
		Exceptions: make(map[ids.NodeId]struct{}),
	}
	return true
}

// IsClique reports whether the candidate is a true (complete) clique: every
// possible tie between its core and non-core nodes is present.
func (c *Candidate) IsClique() bool {
	return c.tiesBetweenNodes == c.GetSize()
}

// TiesBetweenNodes returns the candidate's running tie count.
func (c *Candidate) TiesBetweenNodes() int64 { return c.tiesBetweenNodes }

func (c *Candidate) incrementTiesBetweenNodes(nodeID ids.NodeId) {
	node := c.Node(nodeID)
	var newTies int
	if node.IsCore {
		newTies = node.CountTiesWithIDs(c.NonCoreIDs)
	} else {
		newTies = node.CountTiesWithIDs(c.CoreIDs)
	}
	c.tiesBetweenNodes += int64(newTies)
}

func ceilInt64(f float32) int64 {
	i := int64(f)
	if float32(i) < f {
		i++
	}
	return i
}
