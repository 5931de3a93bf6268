package ids_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dachshund/ids"
)

func TestNodeTypeIdEdgeCounter(t *testing.T) {
	tid := ids.NewNodeTypeId(3)

	_, ok := tid.MaxEdgesPerCore()
	require.False(t, ok, "fresh NodeTypeId must report no edge cap")

	tid = tid.IncrementPossibleEdgeCount()
	n, ok := tid.MaxEdgesPerCore()
	require.True(t, ok)
	require.Equal(t, int64(1), n)

	tid = tid.IncrementPossibleEdgeCount()
	n, ok = tid.MaxEdgesPerCore()
	require.True(t, ok)
	require.Equal(t, int64(2), n)
}

func TestNodeTypeIdMakeCore(t *testing.T) {
	tid := ids.NewNodeTypeId(0)
	require.False(t, tid.IsCore())
	tid = tid.MakeCore()
	require.True(t, tid.IsCore())
}

func TestHashIsDeterministic(t *testing.T) {
	a := ids.HashNode(ids.NodeId(42))
	b := ids.HashNode(ids.NodeId(42))
	require.Equal(t, a, b)

	c := ids.HashNode(ids.NodeId(43))
	require.NotEqual(t, a, c)

	g1 := ids.HashGraph(ids.GraphId(7))
	g2 := ids.HashGraph(ids.GraphId(7))
	require.Equal(t, g1, g2)
}

func TestStringers(t *testing.T) {
	require.Equal(t, "Node:5", ids.NodeId(5).String())
	require.Equal(t, "Graph:9", ids.GraphId(9).String())
}
