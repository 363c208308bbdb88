package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewGraphMCPServer creates an MCP server with all symbol graph tools
// registered.
func NewGraphMCPServer(svc *GraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "symgraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_repo",
		Description: "Index a repository into a typed symbol graph. Walks the file tree, parses source files using tree-sitter, extracts symbols and their relationships, and validates edges against the kind schema.",
	}, svc.IndexRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_nodes",
		Description: "Search symbol nodes by fully qualified name substring. Optionally filter by node kind and limit results.",
	}, svc.QueryNodes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_edges",
		Description: "Return the relationships incident to one symbol, optionally filtered by edge kind and direction. Edges carry visibility and aggregation annotations where present.",
	}, svc.GetEdges)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Summarize the current symbol graph: node and edge totals plus a per-kind breakdown.",
	}, svc.GraphStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the symbol graph MCP tools.
func RunMCPServer(ctx context.Context, svc *GraphService, addr string) error {
	server := NewGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
