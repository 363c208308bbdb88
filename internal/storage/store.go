// Package storage persists symbol graphs. The Kuzu-backed store keeps the
// graph queryable across sessions; the memory store backs tests and builds
// without cgo.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// Store persists and restores whole symbol graphs.
type Store interface {
	io.Closer

	// InitSchema creates the backing tables if they do not exist.
	InitSchema(ctx context.Context) error

	// SaveGraph replaces the stored graph with g.
	SaveGraph(ctx context.Context, g *graph.Graph) error

	// LoadGraph rebuilds the stored graph. Restored tokens keep their
	// original ids, and opts controls diagnostics the same way it does
	// for a freshly built graph.
	LoadGraph(ctx context.Context, opts graph.Options) (*graph.Graph, error)
}

// nodeRecord is the persisted form of a node.
type nodeRecord struct {
	ID       uint64
	FullName string
	Kind     string
}

// edgeRecord is the persisted form of an edge, including its optional
// components. An empty Access and a zero AggCount mean the component is
// absent.
type edgeRecord struct {
	ID       uint64
	FromID   uint64
	ToID     uint64
	Kind     string
	Access   string
	AggCount int
}

// restore rebuilds a graph from flattened records. Edge records reference
// nodes by id, so nodes must be complete before any edge is restored.
func restore(opts graph.Options, nodes []nodeRecord, edges []edgeRecord) (*graph.Graph, error) {
	g := graph.New(opts)
	for _, rec := range nodes {
		kind, ok := graph.NodeKindFromString(rec.Kind)
		if !ok {
			return nil, fmt.Errorf("storage: node %d has unknown kind %q", rec.ID, rec.Kind)
		}
		g.RestoreNode(rec.ID, kind, rec.FullName)
	}
	for _, rec := range edges {
		kind, ok := graph.EdgeKindFromString(rec.Kind)
		if !ok {
			return nil, fmt.Errorf("storage: edge %d has unknown kind %q", rec.ID, rec.Kind)
		}
		from := g.NodeByID(rec.FromID)
		to := g.NodeByID(rec.ToID)
		if from == nil || to == nil {
			return nil, fmt.Errorf("storage: edge %d references missing node", rec.ID)
		}
		e, err := g.RestoreEdge(rec.ID, kind, from, to)
		if err != nil {
			return nil, err
		}
		if rec.Access != "" {
			access, ok := graph.AccessKindFromString(rec.Access)
			if !ok {
				return nil, fmt.Errorf("storage: edge %d has unknown access %q", rec.ID, rec.Access)
			}
			g.AttachAccess(e, access)
		}
		if rec.AggCount > 0 {
			g.AttachAggregation(e, rec.AggCount)
		}
	}
	return g, nil
}

// recordNode flattens n for persistence.
func recordNode(n *graph.Node) nodeRecord {
	return nodeRecord{ID: n.ID(), FullName: n.FullName(), Kind: n.Kind().String()}
}

// recordEdge flattens e for persistence.
func recordEdge(e *graph.Edge) edgeRecord {
	rec := edgeRecord{
		ID:     e.ID(),
		FromID: e.From().ID(),
		ToID:   e.To().ID(),
		Kind:   e.Kind().String(),
	}
	if c := e.ComponentAccess(); c != nil {
		rec.Access = c.Access().String()
	}
	if c := e.ComponentAggregation(); c != nil {
		rec.AggCount = c.Count()
	}
	return rec
}
