package storage

import (
	"context"
	"sync"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go slices of flattened records.
// Thread-safe via sync.RWMutex. It backs tests and builds without cgo; it
// does not persist anything past process exit.
type MemStore struct {
	mu    sync.RWMutex
	nodes []nodeRecord
	edges []edgeRecord
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// SaveGraph replaces the stored records with a flattened copy of g.
func (m *MemStore) SaveGraph(_ context.Context, g *graph.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = m.nodes[:0]
	m.edges = m.edges[:0]
	for _, n := range g.Nodes() {
		m.nodes = append(m.nodes, recordNode(n))
	}
	for _, e := range g.Edges() {
		m.edges = append(m.edges, recordEdge(e))
	}
	return nil
}

// LoadGraph rebuilds the stored graph with its original token ids.
func (m *MemStore) LoadGraph(_ context.Context, opts graph.Options) (*graph.Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return restore(opts, m.nodes, m.edges)
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
