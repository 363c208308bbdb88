// Package mcptools exposes the symbol graph over the Model Context
// Protocol: indexing a repository and querying the resulting graph.
package mcptools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/symgraph/internal/graph"
	"github.com/dusk-indust/symgraph/internal/indexer"
	"github.com/dusk-indust/symgraph/internal/storage"
)

// GraphService holds the parser, the optional persistent store, and the
// graph produced by the most recent index_repo call. Query tools operate on
// that graph; if none was built this session, the service falls back to the
// store.
type GraphService struct {
	parser indexer.Parser
	store  storage.Store

	mu    sync.RWMutex
	graph *graph.Graph
	diags []string
}

// NewGraphService creates a GraphService. store may be nil, in which case
// indexed graphs live only for the lifetime of the process.
func NewGraphService(parser indexer.Parser, store storage.Store) *GraphService {
	return &GraphService{parser: parser, store: store}
}

// IndexRepo indexes a repository into a fresh symbol graph and makes it the
// graph the query tools operate on.
func (s *GraphService) IndexRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexRepoInput,
) (*mcp.CallToolResult, IndexRepoOutput, error) {
	if input.RepoPath == "" {
		return nil, IndexRepoOutput{}, fmt.Errorf("repoPath is required")
	}

	var langs []indexer.Language
	for _, l := range input.Languages {
		langs = append(langs, indexer.Language(strings.ToLower(l)))
	}

	var (
		diagMu sync.Mutex
		diags  []string
	)
	rep := graph.ReporterFunc(func(msg string) {
		diagMu.Lock()
		diags = append(diags, msg)
		diagMu.Unlock()
	})

	ix := indexer.New(s.parser, indexer.Options{
		Languages:        langs,
		ExcludeDirs:      input.ExcludeDirs,
		Strict:           input.Strict,
		CollapseParallel: input.CollapseParallel,
		Reporter:         rep,
	})

	g, err := ix.IndexRepo(ctx, input.RepoPath)
	if err != nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("index repo: %w", err)
	}

	s.mu.Lock()
	s.graph = g
	s.diags = diags
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.InitSchema(ctx); err != nil {
			log.Printf("mcptools: init schema: %v", err)
		} else if err := s.store.SaveGraph(ctx, g); err != nil {
			log.Printf("mcptools: persist graph: %v", err)
		}
	}

	return nil, IndexRepoOutput{Stats: g.Stats(), Diagnostics: diags}, nil
}

// QueryNodes searches symbol nodes by full-name substring match.
func (s *GraphService) QueryNodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryNodesInput,
) (*mcp.CallToolResult, QueryNodesOutput, error) {
	g, err := s.current(ctx)
	if err != nil {
		return nil, QueryNodesOutput{}, err
	}

	var kindFilter graph.NodeKind
	if input.Kind != "" {
		kind, ok := graph.NodeKindFromString(strings.ToLower(input.Kind))
		if !ok {
			return nil, QueryNodesOutput{}, fmt.Errorf("unknown node kind: %s", input.Kind)
		}
		kindFilter = kind
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	out := QueryNodesOutput{}
	for _, n := range g.Nodes() {
		if input.Query != "" && !strings.Contains(n.FullName(), input.Query) {
			continue
		}
		if kindFilter != 0 && !n.IsKind(kindFilter) {
			continue
		}
		out.Total++
		if len(out.Nodes) < limit {
			out.Nodes = append(out.Nodes, NodeView{
				ID:       n.ID(),
				Kind:     n.Kind().String(),
				FullName: n.FullName(),
				Name:     n.Name(),
				Degree:   n.EdgeCount(),
			})
		}
	}
	return nil, out, nil
}

// GetEdges returns the relationships incident to one symbol.
func (s *GraphService) GetEdges(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEdgesInput,
) (*mcp.CallToolResult, GetEdgesOutput, error) {
	if input.FullName == "" {
		return nil, GetEdgesOutput{}, fmt.Errorf("fullName is required")
	}

	g, err := s.current(ctx)
	if err != nil {
		return nil, GetEdgesOutput{}, err
	}

	n := g.FindNode(input.FullName)
	if n == nil {
		return nil, GetEdgesOutput{}, fmt.Errorf("unknown symbol: %s", input.FullName)
	}

	var kindFilter graph.EdgeKind
	if input.Kind != "" {
		kind, ok := graph.EdgeKindFromString(strings.ToLower(input.Kind))
		if !ok {
			return nil, GetEdgesOutput{}, fmt.Errorf("unknown edge kind: %s", input.Kind)
		}
		kindFilter = kind
	}

	dir := strings.ToLower(input.Direction)
	if dir == "" {
		dir = "both"
	}
	if dir != "out" && dir != "in" && dir != "both" {
		return nil, GetEdgesOutput{}, fmt.Errorf("unknown direction: %s", input.Direction)
	}

	out := GetEdgesOutput{}
	for _, e := range n.Edges() {
		if kindFilter != 0 && e.Kind() != kindFilter {
			continue
		}
		if dir == "out" && e.From() != n {
			continue
		}
		if dir == "in" && e.To() != n {
			continue
		}
		view := EdgeView{
			ID:   e.ID(),
			Kind: e.Kind().String(),
			From: e.From().FullName(),
			To:   e.To().FullName(),
		}
		if c := e.ComponentAccess(); c != nil {
			view.Access = c.Access().String()
		}
		if c := e.ComponentAggregation(); c != nil {
			view.AggCount = c.Count()
		}
		out.Edges = append(out.Edges, view)
	}
	out.Total = len(out.Edges)
	return nil, out, nil
}

// GraphStats summarizes the current graph: total counts plus a breakdown
// per node and edge kind.
func (s *GraphService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GraphStatsInput,
) (*mcp.CallToolResult, GraphStatsOutput, error) {
	g, err := s.current(ctx)
	if err != nil {
		return nil, GraphStatsOutput{}, err
	}

	out := GraphStatsOutput{
		Stats:     g.Stats(),
		NodeKinds: make(map[string]int),
		EdgeKinds: make(map[string]int),
	}
	for _, n := range g.Nodes() {
		out.NodeKinds[n.Kind().String()]++
	}
	for _, e := range g.Edges() {
		out.EdgeKinds[e.Kind().String()]++
	}
	return nil, out, nil
}

// current returns the active graph, loading it from the store when nothing
// was indexed this session.
func (s *GraphService) current(ctx context.Context) (*graph.Graph, error) {
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()
	if g != nil {
		return g, nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("no graph indexed; call index_repo first")
	}

	loaded, err := s.store.LoadGraph(ctx, graph.Options{})
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	if loaded.Stats().NodeCount == 0 {
		return nil, fmt.Errorf("no graph indexed; call index_repo first")
	}

	s.mu.Lock()
	s.graph = loaded
	s.mu.Unlock()
	return loaded, nil
}
