package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/symgraph/internal/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(graph.Options{Reporter: graph.ReporterFunc(func(string) {})})

	ns := g.CreateNode(graph.NodeNamespace, "app")
	cls := g.CreateNode(graph.NodeClass, "app::Widget")
	fn := g.CreateNode(graph.NodeFunction, "app::render")
	orphan := g.CreateNode(graph.NodeUndefinedType, "Dimension")

	_, err := g.CreateEdge(graph.EdgeMember, ns, cls)
	require.NoError(t, err)
	_, err = g.CreateEdge(graph.EdgeMember, ns, fn)
	require.NoError(t, err)

	member, err := g.CreateEdge(graph.EdgeMember, cls, orphan)
	require.NoError(t, err)
	g.AttachAccess(member, graph.AccessPrivate)

	agg, err := g.CreateEdge(graph.EdgeAggregation, fn, cls)
	require.NoError(t, err)
	g.AttachAggregation(agg, 4)

	return g
}

func TestExportGraph(t *testing.T) {
	g := sampleGraph(t)
	out := ExportGraph(g, "demo")

	assert.Equal(t, "demo", out.Name)
	assert.NotEmpty(t, out.ExportedAt)
	assert.Equal(t, g.Stats(), out.Stats)
	assert.Len(t, out.Nodes, 4)
	assert.Len(t, out.Edges, 4)

	// Ordered by id.
	for i := 1; i < len(out.Nodes); i++ {
		assert.Less(t, out.Nodes[i-1].ID, out.Nodes[i].ID)
	}

	byKind := map[string]EdgeExport{}
	for _, e := range out.Edges {
		byKind[e.Kind] = e
	}
	agg, ok := byKind["aggregation"]
	require.True(t, ok)
	assert.Equal(t, 4, agg.AggCount)
	assert.Empty(t, agg.Access)

	// The access-carrying member edge serializes its visibility.
	found := false
	for _, e := range out.Edges {
		if e.Access == "private" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWriteJSON(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g, "demo"))

	var decoded GraphExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "demo", decoded.Name)
	assert.Len(t, decoded.Nodes, 4)
	assert.Len(t, decoded.Edges, 4)
}

func TestGenerateMermaid(t *testing.T) {
	g := sampleGraph(t)
	out := GenerateMermaid(g)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `subgraph`)
	assert.Contains(t, out, `["app"]`)
	assert.Contains(t, out, `["Widget"]`)
	// Orphan node rendered outside any subgraph.
	assert.Contains(t, out, `["Dimension"]`)
	// Aggregation edges carry their count.
	assert.Contains(t, out, `aggregation (4)`)
	// Membership shows up structurally, not as arrows.
	assert.NotContains(t, out, `"child"`)
}
