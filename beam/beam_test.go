package beam_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dachshund/beam"
	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/typedgraph"
)

// buildClique returns a complete n-core x m-non-core bipartite graph, all
// nodes sharing one non-core type, every possible tie present.
func buildClique(t *testing.T, numCore, numNonCore int) *typedgraph.TypedGraph {
	t.Helper()
	nonCoreType := ids.NewNodeTypeId(1)
	nonCoreType = nonCoreType.IncrementPossibleEdgeCount()

	nodes := make(map[ids.NodeId]*typedgraph.Node)
	var coreIDs, nonCoreIDs []ids.NodeId
	for i := 0; i < numCore; i++ {
		id := ids.NodeId(i + 1)
		nodes[id] = typedgraph.NewNode(id, true, nil)
		coreIDs = append(coreIDs, id)
	}
	for i := 0; i < numNonCore; i++ {
		id := ids.NodeId(100 + i)
		nodes[id] = typedgraph.NewNode(id, false, &nonCoreType)
		nonCoreIDs = append(nonCoreIDs, id)
	}

	link := func(a, b *typedgraph.Node) {
		e := typedgraph.NodeEdge{EdgeType: ids.EdgeTypeId(0), TargetID: b.ID}
		a.Edges = append(a.Edges, e)
		a.Neighbors[b.ID] = append(a.Neighbors[b.ID], e)
	}
	for _, cid := range coreIDs {
		for _, nid := range nonCoreIDs {
			link(nodes[cid], nodes[nid])
			link(nodes[nid], nodes[cid])
		}
	}
	return typedgraph.New(nodes, coreIDs, nonCoreIDs)
}

func defaultProblem() beam.SearchProblem {
	return beam.SearchProblem{
		BeamSize:               4,
		Alpha:                  1.0,
		NumToSearch:            4,
		NumEpochs:              5,
		MaxRepeatedPriorScores: 2,
	}
}

func TestBeamFindsCompleteBiclique(t *testing.T) {
	g := buildClique(t, 3, 3)
	b, err := beam.New(g, nil, 1, defaultProblem(), ids.GraphId(1))
	require.NoError(t, err)

	result, err := b.RunSearch()
	require.NoError(t, err)
	require.NotNil(t, result.TopCandidate)
	require.True(t, result.TopCandidate.IsClique())
}

func TestBeamDeterministicAcrossRuns(t *testing.T) {
	g1 := buildClique(t, 3, 3)
	g2 := buildClique(t, 3, 3)

	b1, err := beam.New(g1, nil, 1, defaultProblem(), ids.GraphId(42))
	require.NoError(t, err)
	r1, err := b1.RunSearch()
	require.NoError(t, err)
	sum1, _ := r1.TopCandidate.Checksum()

	b2, err := beam.New(g2, nil, 1, defaultProblem(), ids.GraphId(42))
	require.NoError(t, err)
	r2, err := b2.RunSearch()
	require.NoError(t, err)
	sum2, _ := r2.TopCandidate.Checksum()

	require.Equal(t, sum1, sum2, "same graph id seeds an identical search")
}

func TestBeamZeroEpochsReturnsBestOfInitial(t *testing.T) {
	g := buildClique(t, 2, 2)
	problem := defaultProblem()
	problem.NumEpochs = 0
	b, err := beam.New(g, nil, 1, problem, ids.GraphId(7))
	require.NoError(t, err)

	result, err := b.RunSearch()
	require.NoError(t, err)
	require.Equal(t, 0, result.NumSteps)
	require.NotNil(t, result.TopCandidate)
}
