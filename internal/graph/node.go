package graph

import (
	"fmt"
	"strings"
)

// Node is one symbol in the graph: a namespace, type, function, variable,
// or template parameter. A node owns its fully qualified name and tracks
// every edge incident to it. Kind and id are immutable after creation.
type Node struct {
	token
	kind     NodeKind
	fullName string
	edges    []*Edge
}

func newNode(kind NodeKind, fullName string) *Node {
	return &Node{token: newToken(), kind: kind, fullName: fullName}
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// IsKind reports whether the node's kind intersects the given mask. This is
// the sole primitive the edge schema check is built on.
func (n *Node) IsKind(mask NodeKind) bool {
	return n.kind&mask != 0
}

// FullName returns the fully qualified, "::"-separated name.
func (n *Node) FullName() string {
	return n.fullName
}

// Name returns the unqualified name, the last segment of the full name.
func (n *Node) Name() string {
	if i := strings.LastIndex(n.fullName, "::"); i >= 0 {
		return n.fullName[i+2:]
	}
	return n.fullName
}

// Edges returns a copy of the node's incident edge list.
func (n *Node) Edges() []*Edge {
	out := make([]*Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// EdgeCount returns the number of incident edges.
func (n *Node) EdgeCount() int {
	return len(n.edges)
}

// addEdge registers an incident edge. Called only from edge construction;
// each edge registers exactly once per endpoint.
func (n *Node) addEdge(e *Edge) {
	n.edges = append(n.edges, e)
}

// removeEdge unregisters an incident edge. Called only from edge teardown,
// paired exactly once with the matching addEdge.
func (n *Node) removeEdge(e *Edge) {
	for i, cur := range n.edges {
		if cur == e {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			return
		}
	}
}

// IsNode reports true for nodes.
func (n *Node) IsNode() bool {
	return true
}

// IsEdge reports false for nodes.
func (n *Node) IsEdge() bool {
	return false
}

// String renders the node for diagnostics and debug output.
func (n *Node) String() string {
	return fmt.Sprintf("[%d] %s: %q", n.ID(), n.kind, n.fullName)
}
