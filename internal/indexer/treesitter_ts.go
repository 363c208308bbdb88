package indexer

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// tsExtractor extracts symbols and relations from TypeScript source files.
// Each file is a module and becomes a namespace node; interfaces map to
// class nodes, type aliases to typedefs, enums to enum nodes.
type tsExtractor struct{}

func (e *tsExtractor) Extract(root *tree_sitter.Node, source []byte, path string) ([]Symbol, []Relation) {
	st := &tsState{source: source}

	base := filepath.Base(path)
	module := strings.TrimSuffix(base, filepath.Ext(base))
	if module != "" {
		st.addSymbol(module, graph.NodeNamespace, graph.AccessNone)
	}

	st.walk(root, module, "", false)
	return st.symbols, st.relations
}

type tsState struct {
	source    []byte
	symbols   []Symbol
	relations []Relation
}

func (st *tsState) addSymbol(fullName string, kind graph.NodeKind, access graph.AccessKind) {
	st.symbols = append(st.symbols, Symbol{FullName: fullName, Kind: kind, Access: access})
}

func (st *tsState) addRelation(kind graph.EdgeKind, from, to string) {
	if from == "" || to == "" {
		return
	}
	st.relations = append(st.relations, Relation{Kind: kind, From: from, To: to})
}

func (st *tsState) walk(node *tree_sitter.Node, scope, enclosing string, inClass bool) {
	switch node.Kind() {
	case "class_declaration":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeClass, graph.AccessPublic)
			st.extractHeritage(node, fullName)
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, fullName, enclosing, true)
			}
			return
		}

	case "interface_declaration":
		if name := st.fieldText(node, "name"); name != "" {
			st.addSymbol(qualify(scope, name), graph.NodeClass, graph.AccessPublic)
		}

	case "enum_declaration":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeEnum, graph.AccessPublic)
			st.extractEnumMembers(node, fullName)
			return
		}

	case "type_alias_declaration":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeTypedef, graph.AccessPublic)
			if value := node.ChildByFieldName("value"); value != nil {
				if tn := tsTypeName(value, st.source); tn != "" {
					st.addRelation(graph.EdgeTypedefOf, fullName, tn)
				}
			}
		}

	case "internal_module":
		// namespace X { ... }
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeNamespace, graph.AccessNone)
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, fullName, enclosing, false)
			}
			return
		}

	case "function_declaration":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeFunction, graph.AccessPublic)
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, scope, fullName, false)
			}
			return
		}

	case "method_definition":
		if inClass {
			if name := st.fieldText(node, "name"); name != "" {
				fullName := qualify(scope, name)
				st.addSymbol(fullName, graph.NodeMethod, st.accessibility(node))
				if body := node.ChildByFieldName("body"); body != nil {
					st.walk(body, scope, fullName, false)
				}
				return
			}
		}

	case "public_field_definition":
		if inClass {
			if name := st.fieldText(node, "name"); name != "" {
				fullName := qualify(scope, name)
				st.addSymbol(fullName, graph.NodeField, st.accessibility(node))
				if tn := node.ChildByFieldName("type"); tn != nil {
					if typeName := tsTypeName(tn, st.source); typeName != "" {
						st.addRelation(graph.EdgeTypeOf, fullName, typeName)
					}
				}
			}
		}

	case "call_expression":
		st.extractCall(node, enclosing)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			st.walk(child, scope, enclosing, inClass)
		}
	}
}

// extractHeritage emits inheritance relations for extends and implements
// clauses.
func (st *tsState) extractHeritage(classDecl *tree_sitter.Node, fullName string) {
	for i := uint(0); i < classDecl.ChildCount(); i++ {
		child := classDecl.Child(i)
		if child == nil || child.Kind() != "class_heritage" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			clause := child.Child(j)
			if clause == nil {
				continue
			}
			switch clause.Kind() {
			case "extends_clause", "implements_clause":
				for k := uint(0); k < clause.ChildCount(); k++ {
					c := clause.Child(k)
					if c == nil {
						continue
					}
					if c.Kind() == "identifier" || c.Kind() == "type_identifier" {
						st.addRelation(graph.EdgeInheritance, fullName, c.Utf8Text(st.source))
					}
				}
			}
		}
	}
}

// extractEnumMembers records enum members as fields, matching the schema's
// rule that enums contain nothing but fields.
func (st *tsState) extractEnumMembers(enumDecl *tree_sitter.Node, fullName string) {
	body := enumDecl.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		var nameNode *tree_sitter.Node
		switch child.Kind() {
		case "enum_assignment":
			nameNode = child.ChildByFieldName("name")
		case "property_identifier":
			nameNode = child
		}
		if nameNode != nil {
			name := nameNode.Utf8Text(st.source)
			st.addSymbol(qualify(fullName, name), graph.NodeField, graph.AccessPublic)
		}
	}
}

// extractCall records a call relation from the enclosing function.
func (st *tsState) extractCall(node *tree_sitter.Node, enclosing string) {
	if enclosing == "" {
		return
	}
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return
	}
	switch fnNode.Kind() {
	case "identifier":
		st.addRelation(graph.EdgeCall, enclosing, fnNode.Utf8Text(st.source))
	case "member_expression":
		if prop := fnNode.ChildByFieldName("property"); prop != nil {
			st.addRelation(graph.EdgeCall, enclosing, prop.Utf8Text(st.source))
		}
	}
}

// accessibility reads an explicit accessibility modifier, defaulting to
// public like TypeScript itself does.
func (st *tsState) accessibility(node *tree_sitter.Node) graph.AccessKind {
	if mod := firstOfKind(node, "accessibility_modifier"); mod != nil {
		switch mod.Utf8Text(st.source) {
		case "private":
			return graph.AccessPrivate
		case "protected":
			return graph.AccessProtected
		}
	}
	return graph.AccessPublic
}

func (st *tsState) fieldText(node *tree_sitter.Node, field string) string {
	if c := node.ChildByFieldName(field); c != nil {
		return c.Utf8Text(st.source)
	}
	return ""
}

// tsBuiltinTypes are primitive annotations that never become graph nodes.
var tsBuiltinTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "void": true,
	"any": true, "unknown": true, "never": true, "object": true,
	"null": true, "undefined": true,
}

// tsTypeName returns the first named type identifier in a type annotation.
func tsTypeName(node *tree_sitter.Node, source []byte) string {
	ident := findKind(node, "type_identifier")
	if ident == nil {
		return ""
	}
	name := ident.Utf8Text(source)
	if tsBuiltinTypes[name] {
		return ""
	}
	return name
}
