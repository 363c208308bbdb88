package indexer

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// pyExtractor extracts symbols and relations from Python source files. The
// module (derived from the file name) becomes a namespace node; classes,
// functions, methods, and module-level assignments nest under it.
type pyExtractor struct{}

func (e *pyExtractor) Extract(root *tree_sitter.Node, source []byte, path string) ([]Symbol, []Relation) {
	st := &pyState{source: source}

	module := strings.TrimSuffix(filepath.Base(path), ".py")
	if module != "" {
		st.addSymbol(module, graph.NodeNamespace, graph.AccessNone)
	}

	st.walk(root, module, "", false)
	return st.symbols, st.relations
}

type pyState struct {
	source    []byte
	symbols   []Symbol
	relations []Relation
}

func (st *pyState) addSymbol(fullName string, kind graph.NodeKind, access graph.AccessKind) {
	st.symbols = append(st.symbols, Symbol{FullName: fullName, Kind: kind, Access: access})
}

func (st *pyState) addRelation(kind graph.EdgeKind, from, to string) {
	if from == "" || to == "" {
		return
	}
	st.relations = append(st.relations, Relation{Kind: kind, From: from, To: to})
}

// walk descends the AST. scope is the qualified name declarations nest
// under, enclosing the surrounding function, and inClass whether scope is
// a class body (which turns functions into methods and assignments into
// fields).
func (st *pyState) walk(node *tree_sitter.Node, scope, enclosing string, inClass bool) {
	switch node.Kind() {
	case "class_definition":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeClass, pyAccess(name))
			st.extractBases(node, fullName)
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, fullName, enclosing, true)
			}
			return
		}

	case "function_definition":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			kind := graph.NodeFunction
			if inClass {
				kind = graph.NodeMethod
			}
			st.addSymbol(fullName, kind, pyAccess(name))
			if ret := node.ChildByFieldName("return_type"); ret != nil {
				if tn := pyTypeName(ret, st.source); tn != "" {
					st.addRelation(graph.EdgeReturnTypeOf, fullName, tn)
				}
			}
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, scope, fullName, false)
			}
			return
		}

	case "assignment":
		st.extractAssignment(node, scope, enclosing, inClass)

	case "call":
		st.extractCall(node, enclosing)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			st.walk(child, scope, enclosing, inClass)
		}
	}
}

// extractBases emits inheritance relations for each named superclass.
func (st *pyState) extractBases(classDef *tree_sitter.Node, fullName string) {
	supers := classDef.ChildByFieldName("superclasses")
	if supers == nil {
		return
	}
	for i := uint(0); i < supers.ChildCount(); i++ {
		child := supers.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			st.addRelation(graph.EdgeInheritance, fullName, child.Utf8Text(st.source))
		case "attribute":
			if attr := child.ChildByFieldName("attribute"); attr != nil {
				st.addRelation(graph.EdgeInheritance, fullName, attr.Utf8Text(st.source))
			}
		}
	}
}

// extractAssignment records module-level assignments as global variables
// and class-body assignments as fields. Assignments inside functions are
// locals and are skipped.
func (st *pyState) extractAssignment(node *tree_sitter.Node, scope, enclosing string, inClass bool) {
	if enclosing != "" {
		return
	}
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	name := left.Utf8Text(st.source)
	fullName := qualify(scope, name)
	if inClass {
		st.addSymbol(fullName, graph.NodeField, pyAccess(name))
	} else {
		st.addSymbol(fullName, graph.NodeGlobalVariable, pyAccess(name))
	}
	if tn := node.ChildByFieldName("type"); tn != nil {
		if typeName := pyTypeName(tn, st.source); typeName != "" {
			st.addRelation(graph.EdgeTypeOf, fullName, typeName)
		}
	}
}

// extractCall records a call relation from the enclosing function.
func (st *pyState) extractCall(node *tree_sitter.Node, enclosing string) {
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
	case "attribute":
		if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
			st.addRelation(graph.EdgeCall, enclosing, attr.Utf8Text(st.source))
		}
	}
}

func (st *pyState) fieldText(node *tree_sitter.Node, field string) string {
	if c := node.ChildByFieldName(field); c != nil {
		return c.Utf8Text(st.source)
	}
	return ""
}

// pyBuiltinTypes are builtin annotations that never become graph nodes.
var pyBuiltinTypes = map[string]bool{
	"int": true, "float": true, "str": true, "bool": true, "bytes": true,
	"list": true, "dict": true, "set": true, "tuple": true, "None": true,
	"object": true, "Any": true,
}

// pyTypeName returns the first plain identifier in a type annotation.
func pyTypeName(node *tree_sitter.Node, source []byte) string {
	ident := findKind(node, "identifier")
	if ident == nil {
		return ""
	}
	name := ident.Utf8Text(source)
	if pyBuiltinTypes[name] {
		return ""
	}
	return name
}

// pyAccess maps Python naming conventions onto a visibility qualifier:
// leading underscore means private, dunder names stay public.
func pyAccess(name string) graph.AccessKind {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return graph.AccessPublic
	}
	if strings.HasPrefix(name, "_") {
		return graph.AccessPrivate
	}
	return graph.AccessPublic
}
