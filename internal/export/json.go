// Package export renders a symbol graph into shareable formats: a JSON
// document for tooling and a Mermaid diagram for humans.
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// GraphExport is the top-level JSON export structure.
type GraphExport struct {
	Name       string       `json:"name"`
	ExportedAt string       `json:"exportedAt"`
	Stats      graph.Stats  `json:"stats"`
	Nodes      []NodeExport `json:"nodes"`
	Edges      []EdgeExport `json:"edges"`
}

// NodeExport describes one symbol node.
type NodeExport struct {
	ID       uint64 `json:"id"`
	Kind     string `json:"kind"`
	FullName string `json:"fullName"`
	Name     string `json:"name"`
}

// EdgeExport describes one relationship, endpoints referenced by node id.
// Access and AggCount mirror the edge's optional components.
type EdgeExport struct {
	ID       uint64 `json:"id"`
	Kind     string `json:"kind"`
	FromID   uint64 `json:"fromId"`
	ToID     uint64 `json:"toId"`
	Access   string `json:"access,omitempty"`
	AggCount int    `json:"aggCount,omitempty"`
}

// ExportGraph flattens g into its JSON export form. Nodes and edges come
// out ordered by id, so exports of the same graph are byte-identical.
func ExportGraph(g *graph.Graph, name string) *GraphExport {
	out := &GraphExport{
		Name:       name,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Stats:      g.Stats(),
		Nodes:      make([]NodeExport, 0, g.Stats().NodeCount),
		Edges:      make([]EdgeExport, 0, g.Stats().EdgeCount),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, NodeExport{
			ID:       n.ID(),
			Kind:     n.Kind().String(),
			FullName: n.FullName(),
			Name:     n.Name(),
		})
	}
	for _, e := range g.Edges() {
		ee := EdgeExport{
			ID:     e.ID(),
			Kind:   e.Kind().String(),
			FromID: e.From().ID(),
			ToID:   e.To().ID(),
		}
		if c := e.ComponentAccess(); c != nil {
			ee.Access = c.Access().String()
		}
		if c := e.ComponentAggregation(); c != nil {
			ee.AggCount = c.Count()
		}
		out.Edges = append(out.Edges, ee)
	}
	return out
}

// WriteJSON writes the indented JSON export of g to w.
func WriteJSON(w io.Writer, g *graph.Graph, name string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportGraph(g, name))
}
