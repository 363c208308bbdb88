package mcptools

import "github.com/dusk-indust/symgraph/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// IndexRepoInput is the input for the index_repo MCP tool.
type IndexRepoInput struct {
	RepoPath         string   `json:"repoPath" jsonschema:"the absolute path to the repository to index"`
	Languages        []string `json:"languages,omitempty" jsonschema:"languages to index (default: all supported). Values: go, typescript, python, rust"`
	ExcludeDirs      []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from indexing (e.g. vendor, node_modules)"`
	Strict           bool     `json:"strict,omitempty" jsonschema:"reject relationships that violate the edge schema instead of keeping them with a diagnostic"`
	CollapseParallel bool     `json:"collapseParallel,omitempty" jsonschema:"add aggregation edges that summarize parallel relationships between the same two symbols"`
}

// IndexRepoOutput is the result of the index_repo MCP tool.
type IndexRepoOutput struct {
	Stats       graph.Stats `json:"stats"`
	Diagnostics []string    `json:"diagnostics,omitempty"`
}

// QueryNodesInput is the input for the query_nodes MCP tool.
type QueryNodesInput struct {
	Query string `json:"query,omitempty" jsonschema:"substring match against fully qualified symbol names; empty matches everything"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by node kind, e.g. class, struct, function, method, field, namespace"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// NodeView is the wire form of a symbol node.
type NodeView struct {
	ID       uint64 `json:"id"`
	Kind     string `json:"kind"`
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	Degree   int    `json:"degree"`
}

// QueryNodesOutput is the result of the query_nodes MCP tool.
type QueryNodesOutput struct {
	Nodes []NodeView `json:"nodes"`
	Total int        `json:"total"`
}

// GetEdgesInput is the input for the get_edges MCP tool.
type GetEdgesInput struct {
	FullName  string `json:"fullName" jsonschema:"fully qualified name of the symbol whose relationships to return"`
	Kind      string `json:"kind,omitempty" jsonschema:"filter by edge kind, e.g. call, inheritance, usage, aggregation"`
	Direction string `json:"direction,omitempty" jsonschema:"out (edges leaving the symbol), in (edges arriving), or both. Default: both"`
}

// EdgeView is the wire form of a relationship, endpoints by full name.
type EdgeView struct {
	ID       uint64 `json:"id"`
	Kind     string `json:"kind"`
	From     string `json:"from"`
	To       string `json:"to"`
	Access   string `json:"access,omitempty"`
	AggCount int    `json:"aggCount,omitempty"`
}

// GetEdgesOutput is the result of the get_edges MCP tool.
type GetEdgesOutput struct {
	Edges []EdgeView `json:"edges"`
	Total int        `json:"total"`
}

// GraphStatsInput is the input for the graph_stats MCP tool.
type GraphStatsInput struct{}

// GraphStatsOutput is the result of the graph_stats MCP tool.
type GraphStatsOutput struct {
	Stats     graph.Stats    `json:"stats"`
	NodeKinds map[string]int `json:"nodeKinds"`
	EdgeKinds map[string]int `json:"edgeKinds"`
}
