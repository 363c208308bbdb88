package graph

import (
	"fmt"
	"sort"
)

// Options configures graph construction behavior.
type Options struct {
	// Strict turns schema violations into errors that prevent edge
	// creation. The default keeps schema-invalid edges in the graph and
	// only reports them, matching the best-effort indexing model where a
	// malformed relation must stay traversable for later inspection.
	Strict bool

	// Reporter receives diagnostics. Defaults to the standard logger.
	Reporter Reporter
}

// Graph owns every node and edge of one symbol graph and is the only way
// to create or destroy them. It is mutated by a single producer; consumers
// needing concurrent access must build the graph fully first and share it
// read-only.
type Graph struct {
	strict bool
	rep    Reporter

	nodes  map[uint64]*Node
	edges  map[uint64]*Edge
	byName map[string]*Node
}

// New creates an empty graph.
func New(opts Options) *Graph {
	rep := opts.Reporter
	if rep == nil {
		rep = logReporter{}
	}
	return &Graph{
		strict: opts.Strict,
		rep:    rep,
		nodes:  make(map[uint64]*Node),
		edges:  make(map[uint64]*Edge),
		byName: make(map[string]*Node),
	}
}

// CreateNode creates a node with a fresh id. The first node registered
// under a full name is the one FindNode returns.
func (g *Graph) CreateNode(kind NodeKind, fullName string) *Node {
	n := newNode(kind, fullName)
	g.nodes[n.ID()] = n
	if _, ok := g.byName[fullName]; !ok {
		g.byName[fullName] = n
	}
	return n
}

// CloneNode creates a plain copy of src in this graph, preserving src's id,
// kind, and full name. Used to build an isomorphic graph that cloned edges
// can be transplanted onto.
func (g *Graph) CloneNode(src *Node) *Node {
	n := &Node{token: tokenWithID(src.ID()), kind: src.Kind(), fullName: src.FullName()}
	g.nodes[n.ID()] = n
	if _, ok := g.byName[n.fullName]; !ok {
		g.byName[n.fullName] = n
	}
	return n
}

// RestoreNode recreates a persisted node under its original id. Restoring
// advances the id counter so later CreateNode calls never collide.
func (g *Graph) RestoreNode(id uint64, kind NodeKind, fullName string) *Node {
	n := &Node{token: tokenWithID(id), kind: kind, fullName: fullName}
	g.nodes[n.ID()] = n
	if _, ok := g.byName[fullName]; !ok {
		g.byName[fullName] = n
	}
	return n
}

// RestoreEdge recreates a persisted edge under its original id. The schema
// check runs like on any other construction, with the same advisory policy.
func (g *Graph) RestoreEdge(id uint64, kind EdgeKind, from, to *Node) (*Edge, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("graph: edge %s requires two endpoints", kind)
	}
	e := &Edge{token: tokenWithID(id), kind: kind, from: from, to: to, rep: g.rep}
	from.addEdge(e)
	to.addEdge(e)
	e.validate()
	g.edges[e.ID()] = e
	return e, nil
}

// FindNode returns the node registered under the given full name, or nil.
func (g *Graph) FindNode(fullName string) *Node {
	return g.byName[fullName]
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id uint64) *Node {
	return g.nodes[id]
}

// CreateEdge creates a directed edge and registers it with both endpoints.
// Under the default policy a schema violation is reported but the edge is
// created anyway; with Options.Strict the violation is an error and no
// edge is created.
func (g *Graph) CreateEdge(kind EdgeKind, from, to *Node) (*Edge, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("graph: edge %s requires two endpoints", kind)
	}
	if g.strict && !checkEdgeKinds(kind, from.Kind(), to.Kind()) {
		return nil, fmt.Errorf("graph: edge %s can't go from node %s to node %s",
			kind, from.Kind(), to.Kind())
	}
	e := newEdge(kind, from, to, g.rep)
	g.edges[e.ID()] = e
	return e, nil
}

// CloneEdge transplants src's kind, id, and components onto from and to,
// which must be plain copies (distinct objects, same ids) of src's
// endpoints in this graph. A violated precondition is reported as a
// diagnostic but never fails the clone.
func (g *Graph) CloneEdge(src *Edge, from, to *Node) (*Edge, error) {
	if src == nil || from == nil || to == nil {
		return nil, fmt.Errorf("graph: clone requires a source edge and two endpoints")
	}
	e := newEdgeClone(src, from, to, g.rep)
	// A clone within the owning graph reuses src's id and replaces it in
	// the edge map. Detach the replaced edge so no endpoint keeps a
	// reference the graph no longer tracks.
	if old, ok := g.edges[e.ID()]; ok && old != e {
		old.detach()
	}
	g.edges[e.ID()] = e
	return e, nil
}

// AttachAccess attaches a visibility component to e. Returns whether the
// component was attached; rejections are reported by the edge.
func (g *Graph) AttachAccess(e *Edge, access AccessKind) bool {
	return e.AddComponentAccess(NewComponentAccess(access))
}

// AttachAggregation attaches a collapsed-relationship count to e. Returns
// whether the component was attached.
func (g *Graph) AttachAggregation(e *Edge, count int) bool {
	return e.AddComponentAggregation(NewComponentAggregation(count))
}

// RemoveEdge unregisters e from both endpoints and removes it from the
// graph. Both sides are updated in the same operation so an edge is never
// observable on only one endpoint.
func (g *Graph) RemoveEdge(e *Edge) {
	if _, ok := g.edges[e.ID()]; !ok {
		return
	}
	e.detach()
	delete(g.edges, e.ID())
}

// RemoveNode removes n and every edge incident to it. Incident edges go
// first so no edge ever outlives an endpoint.
func (g *Graph) RemoveNode(n *Node) {
	if _, ok := g.nodes[n.ID()]; !ok {
		return
	}
	for _, e := range n.Edges() {
		g.RemoveEdge(e)
	}
	delete(g.nodes, n.ID())
	if g.byName[n.fullName] == n {
		delete(g.byName, n.fullName)
	}
}

// Nodes returns all nodes ordered by id.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Edges returns all edges ordered by id.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Stats summarizes the graph.
type Stats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	return Stats{NodeCount: len(g.nodes), EdgeCount: len(g.edges)}
}
