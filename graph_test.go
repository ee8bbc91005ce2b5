package radixgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forwardstar/radixgraph"
)

func newTestGraph(t *testing.T, enableQuery bool, extra ...radixgraph.Option) *radixgraph.Graph {
	t.Helper()
	opts := append([]radixgraph.Option{radixgraph.WithCapacityHint(4096)}, extra...)
	g, err := radixgraph.New(4, []int{16, 16, 16, 16}, enableQuery, opts...)
	require.NoError(t, err)
	return g
}

func TestNewRejectsMismatchedDepth(t *testing.T) {
	_, err := radixgraph.New(3, []int{16, 16}, true)
	require.ErrorIs(t, err, radixgraph.ErrInvalidConfiguration)
}

func TestInsertEdgeCreatesBothEndpoints(t *testing.T) {
	g := newTestGraph(t, true)

	require.True(t, g.InsertEdge(10, 20, 1.5))
	require.Equal(t, 2, g.NumVertices())

	_, ok := g.OffsetOf(10)
	require.True(t, ok)
	_, ok = g.OffsetOf(20)
	require.True(t, ok)
}

func TestInsertEdgeIsIdempotentOnRepeat(t *testing.T) {
	g := newTestGraph(t, true)

	g.InsertEdge(1, 2, 1.0)
	g.InsertEdge(1, 2, 9.0) // re-insert: overwrites the live weight, not a new neighbor

	neighbours, ok := g.GetNeighbours(1, -1)
	require.True(t, ok)
	require.Len(t, neighbours, 1)
	require.Equal(t, float32(9.0), neighbours[0].Weight)
}

func TestUpdateEdgeRequiresBothEndpoints(t *testing.T) {
	g := newTestGraph(t, true)
	g.InsertEdge(1, 2, 1.0)

	require.False(t, g.UpdateEdge(1, 99, 2.0)) // dest absent
	require.False(t, g.UpdateEdge(99, 2, 2.0)) // src absent
	require.True(t, g.UpdateEdge(1, 2, 2.0))

	neighbours, _ := g.GetNeighbours(1, -1)
	require.Len(t, neighbours, 1)
	require.Equal(t, float32(2.0), neighbours[0].Weight)
}

func TestDeleteEdgeOfNeverInsertedIsBenign(t *testing.T) {
	g := newTestGraph(t, true)
	g.InsertEdge(2, 1, 1.0) // creates vertex 2 without an edge 1 -> 2
	g.InsertEdge(1, 3, 1.0)

	require.True(t, g.DeleteEdge(1, 2))

	neighbours, ok := g.GetNeighbours(1, -1)
	require.True(t, ok)
	require.Len(t, neighbours, 1)
	require.Equal(t, int32(mustOffset(t, g, 3)), neighbours[0].DestOffset)
}

func TestGetNeighboursFailsForAbsentSource(t *testing.T) {
	g := newTestGraph(t, true)
	_, ok := g.GetNeighbours(42, -1)
	require.False(t, ok)
}

func TestGetNeighboursDisabledWithoutQueryMode(t *testing.T) {
	g := newTestGraph(t, false)
	g.InsertEdge(1, 2, 1.0)

	_, ok := g.GetNeighbours(1, -1)
	require.False(t, ok)
}

func TestTimestampZeroYieldsEmptyNeighborhood(t *testing.T) {
	g := newTestGraph(t, true)
	g.InsertEdge(1, 2, 1.0)

	neighbours, ok := g.GetNeighbours(1, 0)
	require.True(t, ok)
	require.Empty(t, neighbours)
}

func TestConcurrentInsertEdgeAllEdgesSurvive(t *testing.T) {
	g := newTestGraph(t, true)
	const fanOut = 500

	done := make(chan struct{})
	for i := 0; i < fanOut; i++ {
		go func(dest uint64) {
			g.InsertEdge(1, dest, float32(dest))
			done <- struct{}{}
		}(uint64(i))
	}
	for i := 0; i < fanOut; i++ {
		<-done
	}

	neighbours, ok := g.GetNeighbours(1, -1)
	require.True(t, ok)
	require.Len(t, neighbours, fanOut)
}

func TestDegreeMirrorsInsertsAndDeletes(t *testing.T) {
	g := newTestGraph(t, true)
	g.InsertEdge(1, 2, 1.0)
	g.InsertEdge(1, 3, 1.0)

	off := mustOffset(t, g, 1)
	deg, ok := g.Degree(off)
	require.True(t, ok)
	require.Equal(t, int32(2), deg)

	g.DeleteEdge(1, 2)
	deg, ok = g.Degree(off)
	require.True(t, ok)
	require.Equal(t, int32(1), deg)
}

func mustOffset(t *testing.T, g *radixgraph.Graph, id uint64) int32 {
	t.Helper()
	off, ok := g.OffsetOf(id)
	require.True(t, ok)
	return off
}
