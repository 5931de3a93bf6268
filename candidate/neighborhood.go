package candidate

import "github.com/katalvlaran/dachshund/ids"

// calculateNeighborhood recomputes, from scratch, the map of every node
// adjacent to the candidate to its tie count with the candidate.
func (c *Candidate) calculateNeighborhood() map[ids.NodeId]int64 {
	neighborhood := make(map[ids.NodeId]int64)
	for nodeID := range c.CoreIDs {
		c.adjustNeighborhood(neighborhood, nodeID)
	}
	for nodeID := range c.NonCoreIDs {
		c.adjustNeighborhood(neighborhood, nodeID)
	}
	return neighborhood
}

// adjustNeighborhood updates neighborhood to account for nodeID having just
// joined the candidate: every one of nodeID's edge targets not already on
// the opposite shore gets its tie count bumped, and nodeID itself (no
// longer adjacent to the clique, now a member of it) is removed.
func (c *Candidate) adjustNeighborhood(neighborhood map[ids.NodeId]int64, nodeID ids.NodeId) {
	node := c.Node(nodeID)

	var oppositeShore map[ids.NodeId]struct{}
	if node.IsCore {
		oppositeShore = c.NonCoreIDs
	} else {
		oppositeShore = c.CoreIDs
	}

	for _, edge := range node.Edges {
		if _, onOppositeShore := oppositeShore[edge.TargetID]; !onOppositeShore {
			neighborhood[edge.TargetID]++
		}
	}
	delete(neighborhood, nodeID)
}

// SetNeighborhood recomputes the candidate's neighborhood from scratch.
func (c *Candidate) SetNeighborhood() {
	c.neighborhood = c.calculateNeighborhood()
}

// SetNeighborhoodWithHint recomputes the candidate's neighborhood, cribbing
// from a known parent in hints (keyed by checksum) when the candidate's
// recipe names one and the parent's own neighborhood is already known;
// otherwise it falls back to a full recomputation. This is both a
// correctness fallback (an absent hint is never an error) and the
// perf-sensitive common path once the beam has scored a few epochs.
func (c *Candidate) SetNeighborhoodWithHint(hints map[uint64]*Candidate) {
	if c.recipe == nil || c.recipe.ParentChecksum == nil {
		c.neighborhood = c.calculateNeighborhood()
		return
	}

	hint, ok := hints[*c.recipe.ParentChecksum]
	if !ok || hint.neighborhood == nil || c.recipe.NodeID == nil {
		c.neighborhood = c.calculateNeighborhood()
		return
	}

	newNeighborhood := make(map[ids.NodeId]int64, len(hint.neighborhood))
	for k, v := range hint.neighborhood {
		newNeighborhood[k] = v
	}
	c.adjustNeighborhood(newNeighborhood, *c.recipe.NodeID)
	c.neighborhood = newNeighborhood
}
