package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// extToLanguage maps file extensions to languages.
var extToLanguage = map[string]Language{
	".go":  LangGo,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".py":  LangPython,
	".rs":  LangRust,
}

// Options configures a repository indexing run.
type Options struct {
	// Languages to index. Empty means DefaultLanguages.
	Languages []Language

	// ExcludeDirs are directory names skipped during the walk, in
	// addition to .git.
	ExcludeDirs []string

	// Strict propagates to the graph: schema-invalid edges are rejected
	// instead of kept-and-reported.
	Strict bool

	// CollapseParallel adds aggregation edges summarizing node pairs
	// connected by multiple parallel edges.
	CollapseParallel bool

	// Reporter receives graph diagnostics. Defaults to the standard
	// logger.
	Reporter graph.Reporter

	// Concurrency bounds parallel file parsing. Defaults to GOMAXPROCS.
	Concurrency int
}

// Indexer builds a symbol graph from a source tree. Files are parsed in
// parallel; the graph itself is populated by a single goroutine afterwards,
// keeping graph mutation single-producer.
type Indexer struct {
	parser Parser
	opts   Options
}

// New creates an Indexer using the given parser.
func New(parser Parser, opts Options) *Indexer {
	return &Indexer{parser: parser, opts: opts}
}

// IndexRepo walks root, parses every matching source file, and builds the
// symbol graph. Unreadable or unparsable files are skipped; the walk only
// fails on errors that abort it entirely.
func (ix *Indexer) IndexRepo(ctx context.Context, root string) (*graph.Graph, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("indexer: cannot access root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("indexer: root is not a directory: %s", root)
	}

	files, err := ix.collectFiles(root)
	if err != nil {
		return nil, err
	}

	results, err := ix.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	// Deterministic build order regardless of parse completion order.
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	g := graph.New(graph.Options{Strict: ix.opts.Strict, Reporter: ix.opts.Reporter})
	return newBuilder(g).build(results, ix.opts.CollapseParallel), nil
}

// indexedFile pairs a path with its detected language.
type indexedFile struct {
	path string
	lang Language
}

// collectFiles walks root and returns every file matching the configured
// languages.
func (ix *Indexer) collectFiles(root string) ([]indexedFile, error) {
	langs := ix.opts.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	allowed := make(map[Language]bool, len(langs))
	for _, l := range langs {
		allowed[l] = true
	}

	exclude := make(map[string]bool, len(ix.opts.ExcludeDirs))
	for _, d := range ix.opts.ExcludeDirs {
		exclude[d] = true
	}

	var files []indexedFile
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || exclude[name] {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := extToLanguage[filepath.Ext(path)]
		if !ok || !allowed[lang] {
			return nil
		}
		files = append(files, indexedFile{path: path, lang: lang})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("indexer: walk %s: %w", root, walkErr)
	}
	return files, nil
}

// parseAll reads and parses files in parallel, bounded by Concurrency.
// Files that fail to read or parse are skipped.
func (ix *Indexer) parseAll(ctx context.Context, files []indexedFile) ([]*ParseResult, error) {
	results := make([]*ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	limit := ix.opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, f := range files {
		g.Go(func() error {
			source, err := os.ReadFile(f.path)
			if err != nil {
				return nil
			}
			res, err := ix.parser.Parse(gctx, f.path, source, f.lang)
			if err != nil {
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*ParseResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}
