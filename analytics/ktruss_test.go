package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dachshund/analytics"
)

// k4WithPendant is a 4-clique {1,2,3,4} plus a degree-1 pendant node 5
// attached to node 1: the pendant cannot belong to any 3-truss.
func k4WithPendant() [][2]int64 {
	return [][2]int64{
		{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
		{1, 5},
	}
}

func TestKTrussRejectsNegativeK(t *testing.T) {
	_, err := analytics.KTruss(edges([2]int64{1, 2}), -1)
	require.ErrorIs(t, err, analytics.ErrNegativeK)
}

func TestKTrussOfCliqueExcludesPendant(t *testing.T) {
	trusses, err := analytics.KTruss(edges(k4WithPendant()...), 3)
	require.NoError(t, err)
	require.Len(t, trusses, 1)
	require.Equal(t, []string{"1", "2", "3", "4"}, trusses[0].Nodes)
	require.Len(t, trusses[0].Edges, 6)
}

func TestKTrussSplitsTwoDisjointCliques(t *testing.T) {
	a := k4WithPendant()
	b := [][2]int64{{10, 11}, {10, 12}, {10, 13}, {11, 12}, {11, 13}, {12, 13}}
	all := append(append([][2]int64{}, a...), b...)

	trusses, err := analytics.KTruss(edges(all...), 3)
	require.NoError(t, err)
	require.Len(t, trusses, 2)
	require.Equal(t, []string{"1", "2", "3", "4"}, trusses[0].Nodes)
	require.Equal(t, []string{"10", "11", "12", "13"}, trusses[1].Nodes)
}
