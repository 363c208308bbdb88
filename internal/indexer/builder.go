package indexer

import (
	"strings"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// builder turns parse results into a symbol graph. Symbols from every file
// are registered first so that cross-file relations resolve against the
// full name space; unresolved targets become placeholder nodes of an
// undefined kind rather than being dropped.
type builder struct {
	g          *graph.Graph
	byShort    map[string]*graph.Node
	memberSeen map[[2]uint64]bool
}

func newBuilder(g *graph.Graph) *builder {
	return &builder{
		g:          g,
		byShort:    make(map[string]*graph.Node),
		memberSeen: make(map[[2]uint64]bool),
	}
}

// build populates the graph from the given results and returns it.
func (b *builder) build(results []*ParseResult, collapseParallel bool) *graph.Graph {
	for _, res := range results {
		for _, sym := range res.Symbols {
			b.ensureNode(sym.FullName, sym.Kind)
		}
	}

	for _, res := range results {
		for _, sym := range res.Symbols {
			b.addMemberEdge(sym)
		}
	}

	for _, res := range results {
		for _, rel := range res.Relations {
			b.addRelationEdge(rel)
		}
	}

	if collapseParallel {
		b.collapseParallelEdges()
	}

	return b.g
}

// ensureNode returns the node registered under fullName, creating it if
// needed. The first registration wins; later kinds for the same name are
// ignored.
func (b *builder) ensureNode(fullName string, kind graph.NodeKind) *graph.Node {
	if n := b.g.FindNode(fullName); n != nil {
		return n
	}
	n := b.g.CreateNode(kind, fullName)
	short := n.Name()
	if _, ok := b.byShort[short]; !ok {
		b.byShort[short] = n
	}
	return n
}

// addMemberEdge connects a symbol to its parent scope with a member edge,
// attaching the symbol's visibility when the parent is a type. Parents
// missing from the index become undefined placeholders.
func (b *builder) addMemberEdge(sym Symbol) {
	i := strings.LastIndex(sym.FullName, "::")
	if i < 0 {
		return
	}
	parent := b.ensureNode(sym.FullName[:i], graph.NodeUndefined)
	child := b.g.FindNode(sym.FullName)
	if child == nil {
		return
	}

	key := [2]uint64{parent.ID(), child.ID()}
	if b.memberSeen[key] {
		return
	}
	b.memberSeen[key] = true

	e, err := b.g.CreateEdge(graph.EdgeMember, parent, child)
	if err != nil || e == nil {
		return
	}
	if sym.Access != graph.AccessNone && parent.IsKind(graph.MaskComplexType|graph.NodeEnum) {
		e.AddComponentAccess(graph.NewComponentAccess(sym.Access))
	}
}

// addRelationEdge resolves a raw relation and creates the edge. The source
// must already exist; an unresolvable target is created as a placeholder
// whose kind matches what the relation expects.
func (b *builder) addRelationEdge(rel Relation) {
	from := b.g.FindNode(rel.From)
	if from == nil {
		return
	}
	to := b.resolve(rel.To, placeholderKind(rel.Kind))
	if to == from {
		return
	}
	b.g.CreateEdge(rel.Kind, from, to)
}

// resolve looks a name up by full name, then by unqualified name, and
// finally creates a placeholder node of the given kind.
func (b *builder) resolve(name string, kind graph.NodeKind) *graph.Node {
	if n := b.g.FindNode(name); n != nil {
		return n
	}
	short := name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		short = name[i+2:]
	}
	if n := b.byShort[short]; n != nil {
		return n
	}
	return b.ensureNode(name, kind)
}

// placeholderKind picks the undefined node kind a relation target defaults
// to when it can't be resolved.
func placeholderKind(kind graph.EdgeKind) graph.NodeKind {
	switch kind {
	case graph.EdgeCall, graph.EdgeOverride:
		return graph.NodeUndefinedFunction
	case graph.EdgeTypeOf, graph.EdgeReturnTypeOf, graph.EdgeParameterTypeOf,
		graph.EdgeTypeUsage, graph.EdgeTypedefOf, graph.EdgeInheritance,
		graph.EdgeTemplateArgumentOf, graph.EdgeTemplateDefaultArgumentOf:
		return graph.NodeUndefinedType
	case graph.EdgeUsage:
		return graph.NodeUndefinedVariable
	}
	return graph.NodeUndefined
}

// aggregatable covers every kind that may sit on an aggregation edge.
const aggregatable = graph.MaskTypeLike | graph.MaskVariableLike | graph.MaskFunctionLike

// collapseParallelEdges adds one aggregation edge, annotated with a count,
// for every node pair connected by more than one edge in the same
// direction. The individual edges stay in the graph; the aggregation edge
// gives display layers a single collapsed relationship to draw.
func (b *builder) collapseParallelEdges() {
	type pair struct{ from, to uint64 }
	counts := make(map[pair]int)
	for _, e := range b.g.Edges() {
		if e.Kind() == graph.EdgeAggregation {
			continue
		}
		counts[pair{e.From().ID(), e.To().ID()}]++
	}

	for _, e := range b.g.Edges() {
		p := pair{e.From().ID(), e.To().ID()}
		count, ok := counts[p]
		if !ok || count < 2 {
			continue
		}
		delete(counts, p)

		from, to := e.From(), e.To()
		if !from.IsKind(aggregatable) || !to.IsKind(aggregatable) {
			continue
		}
		agg, err := b.g.CreateEdge(graph.EdgeAggregation, from, to)
		if err != nil || agg == nil {
			continue
		}
		agg.AddComponentAggregation(graph.NewComponentAggregation(count))
	}
}
