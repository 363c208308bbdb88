package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a symbol graph.
// Namespaces become subgraphs holding their direct members; every other
// edge becomes a labeled arrow. Aggregation edges carry their collapsed
// count in the label.
func GenerateMermaid(g *graph.Graph) string {
	// Node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[uint64]string)
	getID := func(n *graph.Node) string {
		if id, ok := nodeIDs[n.ID()]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", n.ID())
		nodeIDs[n.ID()] = id
		return id
	}

	// Namespace membership: node id → owning namespace, taken from member
	// edges leaving namespace nodes.
	owner := make(map[uint64]*graph.Node)
	for _, e := range g.Edges() {
		if e.Kind() == graph.EdgeMember && e.From().Kind() == graph.NodeNamespace {
			owner[e.To().ID()] = e.From()
		}
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Emit namespace subgraphs with their direct members.
	for _, ns := range g.Nodes() {
		if ns.Kind() != graph.NodeNamespace {
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%.40s\"]\n", getID(ns), ns.FullName()))
		for _, n := range g.Nodes() {
			if owner[n.ID()] == ns {
				sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(n), n.Name()))
			}
		}
		sb.WriteString("  end\n")
	}

	// Emit nodes outside any namespace.
	for _, n := range g.Nodes() {
		if n.Kind() == graph.NodeNamespace || owner[n.ID()] != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(n), n.Name()))
	}

	// Emit relationship arrows. Membership is already shown structurally.
	for _, e := range g.Edges() {
		if e.Kind() == graph.EdgeMember {
			continue
		}
		label := e.Kind().String()
		if c := e.ComponentAggregation(); c != nil {
			label = fmt.Sprintf("%s (%d)", label, c.Count())
		}
		sb.WriteString(fmt.Sprintf("  %s -- \"%s\" --> %s\n",
			getID(e.From()), label, getID(e.To())))
	}

	return sb.String()
}
