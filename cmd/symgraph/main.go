package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dusk-indust/symgraph/internal/config"
	"github.com/dusk-indust/symgraph/internal/export"
	"github.com/dusk-indust/symgraph/internal/graph"
	"github.com/dusk-indust/symgraph/internal/indexer"
	"github.com/dusk-indust/symgraph/internal/mcptools"
	"github.com/dusk-indust/symgraph/internal/storage"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot      string
	Languages        string
	ExcludeDirs      string
	Strict           bool
	CollapseParallel bool
	DBPath           string
	Format           string
	ServeMCP         bool
	Addr             string
	Verbose          bool
	Version          bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("symgraph", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the repository to index")
	fs.StringVar(&flags.Languages, "languages", "", "comma-separated languages to index (default: all supported)")
	fs.StringVar(&flags.ExcludeDirs, "exclude-dirs", "", "comma-separated directory names to skip")
	fs.BoolVar(&flags.Strict, "strict", false, "reject schema-invalid edges instead of keeping them with a diagnostic")
	fs.BoolVar(&flags.CollapseParallel, "collapse-parallel", false, "add aggregation edges summarizing parallel relationships")
	fs.StringVar(&flags.DBPath, "db", "", "path to a persistent graph database directory")
	fs.StringVar(&flags.Format, "format", "stats", "output format: stats, json, or mermaid")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server instead of indexing once")
	fs.StringVar(&flags.Addr, "addr", "localhost:8517", "listen address for the MCP server")
	fs.BoolVar(&flags.Verbose, "verbose", false, "print schema diagnostics while indexing")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyConfig(&flags, cfg)

	parser := indexer.NewTreeSitterParser()
	defer parser.Close()

	var store storage.Store
	if flags.DBPath != "" {
		store, err = openStore(flags.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if flags.ServeMCP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		svc := mcptools.NewGraphService(parser, store)
		return mcptools.RunMCPServer(ctx, svc, flags.Addr)
	}

	return indexOnce(context.Background(), parser, store, flags)
}

// applyConfig fills flags left at their zero value from the project config.
func applyConfig(flags *cliFlags, cfg *config.ProjectConfig) {
	if flags.Languages == "" {
		flags.Languages = strings.Join(cfg.Languages, ",")
	}
	if flags.ExcludeDirs == "" {
		flags.ExcludeDirs = strings.Join(cfg.ExcludeDirs, ",")
	}
	if flags.DBPath == "" {
		flags.DBPath = cfg.DBPath
	}
	flags.Strict = flags.Strict || cfg.Strict
	flags.CollapseParallel = flags.CollapseParallel || cfg.CollapseParallel
	flags.Verbose = flags.Verbose || cfg.Verbose
}

// indexOnce builds the graph for the project root and writes the chosen
// output format to stdout.
func indexOnce(ctx context.Context, parser indexer.Parser, store storage.Store, flags cliFlags) error {
	rep := graph.ReporterFunc(func(string) {})
	if flags.Verbose {
		rep = graph.ReporterFunc(func(msg string) { log.Print(msg) })
	}

	ix := indexer.New(parser, indexer.Options{
		Languages:        splitList(flags.Languages),
		ExcludeDirs:      strings.Split(flags.ExcludeDirs, ","),
		Strict:           flags.Strict,
		CollapseParallel: flags.CollapseParallel,
		Reporter:         rep,
	})

	g, err := ix.IndexRepo(ctx, flags.ProjectRoot)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.InitSchema(ctx); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
		if err := store.SaveGraph(ctx, g); err != nil {
			return fmt.Errorf("save graph: %w", err)
		}
	}

	switch flags.Format {
	case "stats":
		stats := g.Stats()
		fmt.Printf("%d nodes, %d edges\n", stats.NodeCount, stats.EdgeCount)
		return nil
	case "json":
		return export.WriteJSON(os.Stdout, g, flags.ProjectRoot)
	case "mermaid":
		fmt.Print(export.GenerateMermaid(g))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", flags.Format)
	}
}

// splitList turns a comma-separated language list into indexer languages.
func splitList(csv string) []indexer.Language {
	var out []indexer.Language
	for _, item := range strings.Split(csv, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, indexer.Language(strings.ToLower(item)))
		}
	}
	return out
}
