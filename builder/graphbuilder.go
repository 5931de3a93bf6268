// Package builder constructs a typedgraph.TypedGraph from a stream of typed
// edge rows, optionally pruning nodes below a minimum degree.
//
// New and Prune are a faithful port of the original graph-builder trait:
// init_nodes seeds every node with empty edge/neighbor storage, populate
// edges fills them in (a same-typed source/target pair gets no reverse
// edge), and Prune iteratively removes nodes under the degree floor before
// fully reconstructing the graph from the surviving rows — degree is only
// meaningful relative to a graph, so there is no partial in-place deletion.
package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/row"
	"github.com/katalvlaran/dachshund/typedgraph"
)

// ErrGraphIDMismatch indicates a row's graph id did not match the batch
// being constructed.
var ErrGraphIDMismatch = errors.New("builder: row graph id mismatch")

// New builds a TypedGraph from rows, all of which must carry graphID. If
// minDegree is non-nil, the graph is additionally pruned so every remaining
// node has degree at least *minDegree.
func New(graphID ids.GraphId, rows []row.EdgeRow, minDegree *int) (*typedgraph.TypedGraph, error) {
	for _, r := range rows {
		if r.GraphID != graphID {
			return nil, fmt.Errorf("%w: want %s, got %s", ErrGraphIDMismatch, graphID, r.GraphID)
		}
	}

	coreIDs, nonCoreIDs, targetTypes := collectIDs(rows)
	nodes := initNodes(coreIDs, nonCoreIDs, targetTypes)
	if err := populateEdges(rows, nodes); err != nil {
		return nil, err
	}
	graph := typedgraph.New(nodes, coreIDs, nonCoreIDs)

	if minDegree != nil {
		return prune(graph, rows, *minDegree)
	}
	return graph, nil
}

func collectIDs(rows []row.EdgeRow) (coreIDs, nonCoreIDs []ids.NodeId, targetTypes map[ids.NodeId]ids.NodeTypeId) {
	coreSet := make(map[ids.NodeId]struct{})
	nonCoreSet := make(map[ids.NodeId]struct{})
	targetTypes = make(map[ids.NodeId]ids.NodeTypeId)
	for _, r := range rows {
		coreSet[r.SourceID] = struct{}{}
		nonCoreSet[r.TargetID] = struct{}{}
		targetTypes[r.TargetID] = r.TargetTypeID
	}
	coreIDs = typedgraph.SortNodeIDs(setKeys(coreSet))
	nonCoreIDs = typedgraph.SortNodeIDs(setKeys(nonCoreSet))
	return coreIDs, nonCoreIDs, targetTypes
}

func setKeys(m map[ids.NodeId]struct{}) []ids.NodeId {
	out := make([]ids.NodeId, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func initNodes(coreIDs, nonCoreIDs []ids.NodeId, targetTypes map[ids.NodeId]ids.NodeTypeId) map[ids.NodeId]*typedgraph.Node {
	nodes := make(map[ids.NodeId]*typedgraph.Node, len(coreIDs)+len(nonCoreIDs))
	for _, id := range coreIDs {
		nodes[id] = typedgraph.NewNode(id, true, nil)
	}
	for _, id := range nonCoreIDs {
		t := targetTypes[id]
		nodes[id] = typedgraph.NewNode(id, false, &t)
	}
	return nodes
}

func populateEdges(rows []row.EdgeRow, nodes map[ids.NodeId]*typedgraph.Node) error {
	for _, r := range rows {
		source, ok := nodes[r.SourceID]
		if !ok {
			return fmt.Errorf("builder: row references unknown source %s", r.SourceID)
		}
		target, ok := nodes[r.TargetID]
		if !ok {
			return fmt.Errorf("builder: row references unknown target %s", r.TargetID)
		}

		fwd := typedgraph.NodeEdge{EdgeType: r.EdgeTypeID, TargetID: r.TargetID}
		source.Neighbors[r.TargetID] = append(source.Neighbors[r.TargetID], fwd)
		source.Edges = append(source.Edges, fwd)

		// Same-typed source/target never gets a reverse edge: the teacher's
		// bipartite assumption is that source and target types differ.
		if r.SourceTypeID.Value() != r.TargetTypeID.Value() {
			rev := typedgraph.NodeEdge{EdgeType: r.EdgeTypeID, TargetID: r.SourceID}
			target.Neighbors[r.SourceID] = append(target.Neighbors[r.SourceID], rev)
			target.Edges = append(target.Edges, rev)
		}
	}
	return nil
}

// prune rebuilds graph from rows, excluding any node whose degree falls
// below minDegree after iterative peeling.
func prune(graph *typedgraph.TypedGraph, rows []row.EdgeRow, minDegree int) (*typedgraph.TypedGraph, error) {
	exclude := trimEdges(graph, minDegree)

	var filteredCore, filteredNonCore []ids.NodeId
	for _, id := range graph.CoreIDs {
		if _, excluded := exclude[id]; !excluded {
			filteredCore = append(filteredCore, id)
		}
	}
	for _, id := range graph.NonCoreIDs {
		if _, excluded := exclude[id]; !excluded {
			filteredNonCore = append(filteredNonCore, id)
		}
	}

	var filteredRows []row.EdgeRow
	targetTypes := make(map[ids.NodeId]ids.NodeTypeId)
	for _, r := range rows {
		targetTypes[r.TargetID] = r.TargetTypeID
		_, srcExcluded := exclude[r.SourceID]
		_, dstExcluded := exclude[r.TargetID]
		if !srcExcluded && !dstExcluded {
			filteredRows = append(filteredRows, r)
		}
	}

	nodes := initNodes(filteredCore, filteredNonCore, targetTypes)
	if err := populateEdges(filteredRows, nodes); err != nil {
		return nil, err
	}
	return typedgraph.New(nodes, filteredCore, filteredNonCore), nil
}

// trimEdges iteratively identifies nodes whose degree (in the original
// graph) falls below minDegree, propagating each removal's effect on its
// neighbors' remaining degree, until no more nodes qualify. It does not
// mutate graph; it only computes which node ids must be excluded.
func trimEdges(graph *typedgraph.TypedGraph, minDegree int) map[ids.NodeId]struct{} {
	degree := make(map[ids.NodeId]int, len(graph.Nodes))
	for id, node := range graph.Nodes {
		degree[id] = node.Degree()
	}

	toDelete := make(map[ids.NodeId]struct{})
	for {
		var toUpdate []ids.NodeId
		for id, d := range degree {
			if d < minDegree {
				if _, already := toDelete[id]; !already {
					toDelete[id] = struct{}{}
					toUpdate = append(toUpdate, id)
				}
			}
		}
		if len(toUpdate) == 0 {
			break
		}
		for _, id := range toUpdate {
			for _, edge := range graph.Nodes[id].Edges {
				degree[edge.TargetID]--
			}
		}
	}
	return toDelete
}
