package graph

import (
	"fmt"
	"strings"
)

// Edge is a directed, kind-tagged relation between two nodes. An edge does
// not own its endpoints, but a live edge is always registered in both
// endpoints' incidence lists; registration and unregistration happen only
// in edge construction and teardown. Kind and endpoints are immutable.
type Edge struct {
	token
	kind EdgeKind
	from *Node
	to   *Node
	rep  Reporter
}

// newEdge constructs an edge and registers it with both endpoints, from
// first. The schema check runs after registration; a violation is reported
// but the edge stays in the graph.
func newEdge(kind EdgeKind, from, to *Node, rep Reporter) *Edge {
	e := &Edge{token: newToken(), kind: kind, from: from, to: to, rep: rep}
	from.addEdge(e)
	to.addEdge(e)
	e.validate()
	return e
}

// newEdgeClone transplants other's kind, id, and components onto a new pair
// of endpoints. The endpoints must be distinct object instances from the
// originals while carrying the originals' ids; this is how an edge crosses
// into a separately owned isomorphic graph. A violated precondition is
// reported but does not stop the clone.
func newEdgeClone(other *Edge, from, to *Node, rep Reporter) *Edge {
	e := &Edge{token: tokenWithID(other.ID()), kind: other.kind, from: from, to: to, rep: rep}
	e.access = other.access
	e.aggregation = other.aggregation
	from.addEdge(e)
	to.addEdge(e)

	if from == other.from || to == other.to ||
		from.ID() != other.from.ID() || to.ID() != other.to.ID() {
		rep.Report("clone endpoints are not plain copies of the original nodes")
	}

	e.validate()
	return e
}

// detach unregisters the edge from both endpoints.
func (e *Edge) detach() {
	e.from.removeEdge(e)
	e.to.removeEdge(e)
}

// Kind returns the edge's kind.
func (e *Edge) Kind() EdgeKind {
	return e.kind
}

// IsKind reports whether the edge's kind intersects the given mask.
func (e *Edge) IsKind(mask EdgeKind) bool {
	return e.kind&mask != 0
}

// From returns the source endpoint.
func (e *Edge) From() *Node {
	return e.from
}

// To returns the target endpoint.
func (e *Edge) To() *Node {
	return e.to
}

// Name returns "<label>:<fromFullName>-><toFullName>".
func (e *Edge) Name() string {
	return e.kind.String() + ":" + e.from.FullName() + "->" + e.to.FullName()
}

// IsNode reports false for edges.
func (e *Edge) IsNode() bool {
	return false
}

// IsEdge reports true for edges.
func (e *Edge) IsEdge() bool {
	return true
}

// AddComponentAccess attaches a visibility component. The attachment is
// rejected, with a diagnostic, if an access component is already present or
// the edge is not a member or inheritance edge. Returns whether the
// component was attached.
func (e *Edge) AddComponentAccess(c *ComponentAccess) bool {
	if e.access != nil {
		e.rep.Report("access component has already been set on " + e.Name())
		return false
	}
	if e.kind != EdgeMember && e.kind != EdgeInheritance {
		e.rep.Report("access component can't be set on edge of kind: " + e.kind.String())
		return false
	}
	e.access = c
	return true
}

// AddComponentAggregation attaches a collapsed-relationship count. The
// attachment is rejected, with a diagnostic, if an aggregation component is
// already present or the edge is not an aggregation edge. Returns whether
// the component was attached.
func (e *Edge) AddComponentAggregation(c *ComponentAggregation) bool {
	if e.aggregation != nil {
		e.rep.Report("aggregation component has already been set on " + e.Name())
		return false
	}
	if e.kind != EdgeAggregation {
		e.rep.Report("aggregation component can't be set on edge of kind: " + e.kind.String())
		return false
	}
	e.aggregation = c
	return true
}

// String renders the edge for diagnostics and debug output, appending the
// access label and aggregation count when those components are attached.
func (e *Edge) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] %s: %q -> %q", e.ID(), e.kind, e.from.FullName(), e.to.FullName())
	if e.access != nil {
		sb.WriteString(" " + e.access.String())
	}
	if e.aggregation != nil {
		fmt.Fprintf(&sb, " %d", e.aggregation.Count())
	}
	return sb.String()
}

// validate runs the schema compatibility check and reports a violation.
// The result is advisory: an invalid edge stays in the graph.
func (e *Edge) validate() bool {
	if checkEdgeKinds(e.kind, e.from.Kind(), e.to.Kind()) {
		return true
	}
	e.rep.Report(fmt.Sprintf(
		"edge %s can't go from node %s to node %s",
		e.kind, e.from.Kind(), e.to.Kind(),
	))
	return false
}
