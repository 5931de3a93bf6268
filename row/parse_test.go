package row_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/registry"
	"github.com/katalvlaran/dachshund/row"
)

func newRegistry(t *testing.T) *registry.TypeRegistry {
	t.Helper()
	r, err := registry.NewTypeRegistry([]registry.TypeSpecRow{
		{CoreType: "author", EdgeType: "works_at", NonCoreType: "university"},
	})
	require.NoError(t, err)
	return r
}

func TestTypedLineProcessorEdgeRow(t *testing.T) {
	p := &row.TypedLineProcessor{CoreType: "author", Registry: newRegistry(t)}
	r, err := p.ProcessLine("1\t10\t20\tauthor\tworks_at\tuniversity")
	require.NoError(t, err)

	e, ok := r.AsEdgeRow()
	require.True(t, ok)
	require.Equal(t, ids.GraphId(1), e.GraphID)
	require.Equal(t, ids.NodeId(10), e.SourceID)
	require.Equal(t, ids.NodeId(20), e.TargetID)
}

func TestTypedLineProcessorSeedRow(t *testing.T) {
	p := &row.TypedLineProcessor{CoreType: "author", Registry: newRegistry(t)}
	r, err := p.ProcessLine("1\t10\tauthor")
	require.NoError(t, err)

	s, ok := r.AsSeedRow()
	require.True(t, ok)
	require.Nil(t, s.TargetType)

	r2, err := p.ProcessLine("1\t20\tuniversity")
	require.NoError(t, err)
	s2, ok := r2.AsSeedRow()
	require.True(t, ok)
	require.NotNil(t, s2.TargetType)
}

func TestTypedLineProcessorMalformed(t *testing.T) {
	p := &row.TypedLineProcessor{CoreType: "author", Registry: newRegistry(t)}

	_, err := p.ProcessLine("not\tenough")
	require.ErrorIs(t, err, row.ErrMalformedLine)

	_, err = p.ProcessLine("1\tabc\tauthor")
	require.ErrorIs(t, err, row.ErrMalformedToken)

	_, err = p.ProcessLine("1\t10\t20\tauthor\tworks_at\tunknown_type")
	require.ErrorIs(t, err, registry.ErrUnknownType)
}

func TestSimpleLineProcessor(t *testing.T) {
	p := row.NewSimpleLineProcessor()

	r1, err := p.ProcessLine("batchA\t1\t2")
	require.NoError(t, err)
	e1, ok := r1.AsSimpleEdgeRow()
	require.True(t, ok)
	require.Equal(t, ids.GraphId(0), e1.GraphID)

	r2, err := p.ProcessLine("batchB\t3\t4")
	require.NoError(t, err)
	e2, ok := r2.AsSimpleEdgeRow()
	require.True(t, ok)
	require.Equal(t, ids.GraphId(1), e2.GraphID)

	r3, err := p.ProcessLine("batchA\t5\t6")
	require.NoError(t, err)
	e3, _ := r3.AsSimpleEdgeRow()
	require.Equal(t, ids.GraphId(0), e3.GraphID, "repeat key reuses its graph id")

	key, ok := p.OriginalKey(ids.GraphId(1))
	require.True(t, ok)
	require.Equal(t, "batchB", key)
}
