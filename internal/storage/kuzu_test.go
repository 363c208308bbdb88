//go:build cgo

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// newTestKuzuStore creates a fresh in-memory KuzuStore with an initialized
// schema. It registers a cleanup function to close the store when the test
// finishes.
func newTestKuzuStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	// First call creates the tables.
	require.NoError(t, s.InitSchema(ctx))

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_RoundTrip(t *testing.T) {
	s := newTestKuzuStore(t)
	ctx := context.Background()

	src := buildSampleGraph(t)
	require.NoError(t, s.SaveGraph(ctx, src))

	got, err := s.LoadGraph(ctx, graph.Options{})
	require.NoError(t, err)

	assert.Equal(t, src.Stats(), got.Stats())

	// Nodes come back under their original ids, kinds, and names.
	for _, want := range src.Nodes() {
		n := got.NodeByID(want.ID())
		require.NotNil(t, n, "node %d", want.ID())
		assert.Equal(t, want.Kind(), n.Kind())
		assert.Equal(t, want.FullName(), n.FullName())
	}

	// Edges come back registered on both endpoints.
	for _, want := range src.Edges() {
		var e *graph.Edge
		for _, cand := range got.Edges() {
			if cand.ID() == want.ID() {
				e = cand
				break
			}
		}
		require.NotNil(t, e, "edge %d", want.ID())
		assert.Equal(t, want.Kind(), e.Kind())
		assert.Equal(t, want.From().ID(), e.From().ID())
		assert.Equal(t, want.To().ID(), e.To().ID())
		assert.Contains(t, e.From().Edges(), e)
		assert.Contains(t, e.To().Edges(), e)
	}

	// Components survive the RELATES properties.
	member := findEdgeByKind(got, graph.EdgeMember, "app::Widget")
	require.NotNil(t, member)
	require.NotNil(t, member.ComponentAccess())
	assert.Equal(t, graph.AccessPublic, member.ComponentAccess().Access())

	agg := findEdgeByKind(got, graph.EdgeAggregation, "app::render")
	require.NotNil(t, agg)
	require.NotNil(t, agg.ComponentAggregation())
	assert.Equal(t, 3, agg.ComponentAggregation().Count())

	// Edges without components come back bare.
	call := findEdgeByKind(got, graph.EdgeCall, "app::render")
	require.NotNil(t, call)
	assert.Nil(t, call.ComponentAccess())
	assert.Nil(t, call.ComponentAggregation())
}

func TestKuzuStore_RestoredIDsDoNotCollide(t *testing.T) {
	s := newTestKuzuStore(t)
	ctx := context.Background()

	src := buildSampleGraph(t)
	require.NoError(t, s.SaveGraph(ctx, src))

	got, err := s.LoadGraph(ctx, graph.Options{})
	require.NoError(t, err)

	fresh := got.CreateNode(graph.NodeFunction, "app::newcomer")
	for _, n := range src.Nodes() {
		assert.NotEqual(t, n.ID(), fresh.ID())
	}
}

func TestKuzuStore_SaveReplacesPreviousGraph(t *testing.T) {
	s := newTestKuzuStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveGraph(ctx, buildSampleGraph(t)))

	small := graph.New(graph.Options{})
	small.CreateNode(graph.NodeNamespace, "tiny")
	require.NoError(t, s.SaveGraph(ctx, small))

	got, err := s.LoadGraph(ctx, graph.Options{})
	require.NoError(t, err)
	assert.Equal(t, graph.Stats{NodeCount: 1, EdgeCount: 0}, got.Stats())
	assert.NotNil(t, got.FindNode("tiny"))
}

func TestKuzuStore_LoadEmptyGraph(t *testing.T) {
	s := newTestKuzuStore(t)

	got, err := s.LoadGraph(context.Background(), graph.Options{})
	require.NoError(t, err)
	assert.Equal(t, graph.Stats{}, got.Stats())
}

func TestKuzuStore_Close(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)

	// Close should succeed without error.
	require.NoError(t, s.Close())
}
