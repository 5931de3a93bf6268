package candidate

import (
	"container/heap"
	"errors"

	"github.com/katalvlaran/dachshund/ids"
)

// ErrEmptyCandidate indicates an operation that requires at least one node
// (graph id) was attempted against a candidate with no checksum yet.
var ErrEmptyCandidate = errors.New("candidate: empty candidate has no checksum")

// Scorer is implemented by the scorer package's Scorer type. It lives here,
// rather than being imported from scorer, to avoid a dependency cycle:
// scorer.Score/ScoreRecipe take a *Candidate, and Candidate's search
// helpers need to call them.
type Scorer interface {
	Score(c *Candidate) (float32, error)
	ScoreRecipe(r *Recipe, parent *Candidate) (float32, error)
}

// Replicate returns an independent copy of c. Core/non-core id sets and the
// local guarantee are deep-copied; the neighborhood is intentionally
// dropped (expansion needs it, scoring does not, so it is rebuilt lazily
// only for candidates the beam decides to keep).
func (c *Candidate) Replicate(keepScore bool) *Candidate {
	out := &Candidate{
		Graph:            c.Graph,
		CoreIDs:          copyIDSet(c.CoreIDs),
		NonCoreIDs:       copyIDSet(c.NonCoreIDs),
		checksum:         c.checksum,
		maxCoreNodeEdges: c.maxCoreNodeEdges,
		tiesBetweenNodes: c.tiesBetweenNodes,
		localGuarantee: LocalDensityGuarantee{
			NumEdges:   c.localGuarantee.NumEdges,
			Exceptions: copyIDSet(c.localGuarantee.Exceptions),
		},
		neighborhood: nil,
		recipe:       c.recipe,
	}
	if keepScore {
		out.score = c.score
	}
	return out
}

func copyIDSet(m map[ids.NodeId]struct{}) map[ids.NodeId]struct{} {
	out := make(map[ids.NodeId]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

// ExpandWithNode returns a replica of c with nodeID added. nodeID must not
// already belong to c.
func (c *Candidate) ExpandWithNode(nodeID ids.NodeId) (*Candidate, error) {
	next := c.Replicate(false)
	if err := next.AddNode(nodeID); err != nil {
		return nil, err
	}
	return next, nil
}

// tieCount pairs a node id with its tie count, for the bounded min-heap in
// GetExpansionCandidates.
type tieCount struct {
	nodeID ids.NodeId
	ties   int64
}

// tieCountHeap is a min-heap over tieCount by ties (ties ascending), so
// popping the root discards the current weakest candidate and keeps the
// heap bounded to the top numToSearch by tie count.
type tieCountHeap []tieCount

func (h tieCountHeap) Len() int { return len(h) }
func (h tieCountHeap) Less(i, j int) bool {
	if h[i].ties != h[j].ties {
		return h[i].ties < h[j].ties
	}
	// On an equal tie count, the larger node id sorts toward the root so it
	// is the one discarded on overflow, matching the Rust
	// BinaryHeap<(Reverse(num_ties), node_id)>, which pops (discards) the
	// larger node id and so keeps the smaller one.
	return h[i].nodeID > h[j].nodeID
}
func (h tieCountHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *tieCountHeap) Push(x interface{}) { *h = append(*h, x.(tieCount)) }
func (h *tieCountHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// boundedNeighborIDs returns up to numToSearch of the candidate's
// neighborhood node ids, the ones with the highest tie counts into the
// candidate, in descending-tie order (ties broken toward the smaller node
// id, via tieCountHeap's bounded min-heap).
func (c *Candidate) boundedNeighborIDs(numToSearch int) []ids.NodeId {
	neighborhood := c.GetNeighborhood()
	h := &tieCountHeap{}
	heap.Init(h)
	for nodeID, ties := range neighborhood {
		heap.Push(h, tieCount{nodeID: nodeID, ties: ties})
		if h.Len() > numToSearch {
			heap.Pop(h)
		}
	}

	kept := make([]ids.NodeId, h.Len())
	for i := len(kept) - 1; i >= 0; i-- {
		kept[i] = heap.Pop(h).(tieCount).nodeID
	}
	return kept
}

// GetExpansionCandidates finds nodes already tied to the candidate's
// members but not themselves members, keeps at most numToSearch of them
// (those with the highest tie counts), and returns one expanded candidate
// per kept node, skipping any whose checksum has already been visited.
func (c *Candidate) GetExpansionCandidates(numToSearch int, visited map[uint64]struct{}) ([]*Candidate, error) {
	checksum, ok := c.Checksum()
	if !ok {
		return nil, ErrEmptyCandidate
	}
	if _, seen := visited[checksum]; seen {
		return nil, errors.New("candidate: checksum already visited")
	}

	out := make([]*Candidate, 0, numToSearch)
	for _, nodeID := range c.boundedNeighborIDs(numToSearch) {
		expanded, err := c.ExpandWithNode(nodeID)
		if err != nil {
			return nil, err
		}
		expandedChecksum, _ := expanded.Checksum()
		if _, seen := visited[expandedChecksum]; !seen {
			out = append(out, expanded)
		}
	}
	visited[checksum] = struct{}{}
	return out, nil
}

// GetExpansionRecipes finds nodes already tied to the candidate's members
// but not themselves members, keeps at most numToSearch of them (those with
// the highest tie counts), and returns one scored Recipe per kept node,
// skipping any whose resulting checksum has already been visited — without
// materializing a single expanded Candidate, so the beam can sort the full
// recipe space by projected score before paying the allocation cost of
// ExpandWithNode on only the survivors.
func (c *Candidate) GetExpansionRecipes(numToSearch int, visited map[uint64]struct{}, scorer Scorer) ([]*Recipe, error) {
	checksum, ok := c.Checksum()
	if !ok {
		return nil, ErrEmptyCandidate
	}
	if _, seen := visited[checksum]; seen {
		return nil, errors.New("candidate: checksum already visited")
	}

	out := make([]*Recipe, 0, numToSearch)
	for _, nodeID := range c.boundedNeighborIDs(numToSearch) {
		childChecksum := checksum + ids.HashNode(nodeID)
		if _, seen := visited[childChecksum]; seen {
			continue
		}
		nodeID := nodeID
		recipe := &Recipe{ParentChecksum: &checksum, NodeID: &nodeID}
		score, err := scorer.ScoreRecipe(recipe, c)
		if err != nil {
			return nil, err
		}
		recipe.Score = &score
		out = append(out, recipe)
	}
	visited[checksum] = struct{}{}
	return out, nil
}
