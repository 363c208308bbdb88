package indexer

import (
	"context"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// Language identifies a programming language for parsing.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// DefaultLanguages are the languages indexed when no explicit set is given.
var DefaultLanguages = []Language{LangGo, LangTypeScript, LangPython, LangRust}

// Symbol is one declaration discovered in a source file. FullName is the
// fully qualified, "::"-separated name; Access is the visibility of the
// symbol within its parent scope, AccessNone when not a member.
type Symbol struct {
	FullName string
	Kind     graph.NodeKind
	Access   graph.AccessKind
}

// Relation is a raw, name-based relationship between two symbols. To may
// be unresolved; the builder turns unresolved targets into placeholder
// nodes of an undefined kind.
type Relation struct {
	Kind graph.EdgeKind
	From string
	To   string
}

// ParseResult holds the symbols and relations extracted from one file.
type ParseResult struct {
	Path      string
	Language  Language
	Symbols   []Symbol
	Relations []Relation
}

// Parser extracts structural information from source files.
// Implementations: TreeSitterParser (production), stub parsers in tests.
type Parser interface {
	// Parse extracts symbols and relations from a single source file.
	Parse(ctx context.Context, path string, source []byte, lang Language) (*ParseResult, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources.
	Close() error
}
