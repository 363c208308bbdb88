//go:build cgo

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// KuzuStore implements Store using KuzuDB as the graph backend. It requires
// CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself, so only
// the parent has to exist. This is what makes a saved index survive across
// sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema. The node
// table must precede the relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Symbol(
		id INT64,
		full_name STRING,
		kind STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS RELATES(
		FROM Symbol TO Symbol,
		edge_id INT64,
		kind STRING,
		access STRING,
		agg_count INT64
	)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// SaveGraph replaces the stored graph with g. Edges go first on delete and
// last on insert so the relationship table never references a missing
// symbol.
func (s *KuzuStore) SaveGraph(_ context.Context, g *graph.Graph) error {
	if err := s.exec("MATCH ()-[r:RELATES]->() DELETE r", nil); err != nil {
		return err
	}
	if err := s.exec("MATCH (n:Symbol) DELETE n", nil); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		rec := recordNode(n)
		err := s.exec(
			"CREATE (n:Symbol {id: $id, full_name: $fn, kind: $kind})",
			map[string]any{
				"id":   int64(rec.ID),
				"fn":   rec.FullName,
				"kind": rec.Kind,
			},
		)
		if err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		rec := recordEdge(e)
		err := s.exec(
			`MATCH (a:Symbol {id: $src}), (b:Symbol {id: $dst})
			 CREATE (a)-[:RELATES {
				edge_id: $eid,
				kind: $kind,
				access: $access,
				agg_count: $agg
			 }]->(b)`,
			map[string]any{
				"src":    int64(rec.FromID),
				"dst":    int64(rec.ToID),
				"eid":    int64(rec.ID),
				"kind":   rec.Kind,
				"access": rec.Access,
				"agg":    int64(rec.AggCount),
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadGraph rebuilds the stored graph with its original token ids.
func (s *KuzuStore) LoadGraph(_ context.Context, opts graph.Options) (*graph.Graph, error) {
	nodeRows, err := s.query(
		"MATCH (n:Symbol) RETURN n.id, n.full_name, n.kind ORDER BY n.id", nil)
	if err != nil {
		return nil, err
	}
	nodes := make([]nodeRecord, 0, len(nodeRows))
	for _, r := range nodeRows {
		nodes = append(nodes, nodeRecord{
			ID:       uint64(toInt(r[0])),
			FullName: toString(r[1]),
			Kind:     toString(r[2]),
		})
	}

	edgeRows, err := s.query(
		`MATCH (a:Symbol)-[r:RELATES]->(b:Symbol)
		 RETURN r.edge_id, a.id, b.id, r.kind, r.access, r.agg_count
		 ORDER BY r.edge_id`, nil)
	if err != nil {
		return nil, err
	}
	edges := make([]edgeRecord, 0, len(edgeRows))
	for _, r := range edgeRows {
		edges = append(edges, edgeRecord{
			ID:       uint64(toInt(r[0])),
			FromID:   uint64(toInt(r[1])),
			ToID:     uint64(toInt(r[2])),
			Kind:     toString(r[3]),
			Access:   toString(r[4]),
			AggCount: toInt(r[5]),
		})
	}

	return restore(opts, nodes, edges)
}

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	if len(params) == 0 {
		res, err := s.conn.Query(cypher)
		if err != nil {
			return fmt.Errorf("kuzu: query: %w", err)
		}
		res.Close()
		return nil
	}
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// KuzuDB returns typed Go values (int64, string). These helpers coerce
// any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
