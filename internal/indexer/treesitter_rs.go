package indexer

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// rsExtractor extracts symbols and relations from Rust source files. The
// crate-level module (derived from the file name) becomes a namespace;
// traits map to class nodes, and trait impls become inheritance relations
// from the implementing type to the trait.
type rsExtractor struct{}

func (e *rsExtractor) Extract(root *tree_sitter.Node, source []byte, path string) ([]Symbol, []Relation) {
	st := &rsState{source: source}

	module := strings.TrimSuffix(filepath.Base(path), ".rs")
	if module != "" {
		st.addSymbol(module, graph.NodeNamespace, graph.AccessNone)
	}

	st.walk(root, module, "", "")
	return st.symbols, st.relations
}

type rsState struct {
	source    []byte
	symbols   []Symbol
	relations []Relation
}

func (st *rsState) addSymbol(fullName string, kind graph.NodeKind, access graph.AccessKind) {
	st.symbols = append(st.symbols, Symbol{FullName: fullName, Kind: kind, Access: access})
}

func (st *rsState) addRelation(kind graph.EdgeKind, from, to string) {
	if from == "" || to == "" {
		return
	}
	st.relations = append(st.relations, Relation{Kind: kind, From: from, To: to})
}

// walk descends the AST. implOwner is the qualified name of the type an
// impl block belongs to; functions inside one become methods.
func (st *rsState) walk(node *tree_sitter.Node, scope, enclosing, implOwner string) {
	switch node.Kind() {
	case "mod_item":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeNamespace, graph.AccessNone)
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, fullName, enclosing, implOwner)
			}
			return
		}

	case "struct_item":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeStruct, st.visibility(node))
			if body := node.ChildByFieldName("body"); body != nil {
				st.extractStructFields(body, fullName)
			}
			return
		}

	case "enum_item":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeEnum, st.visibility(node))
			if body := node.ChildByFieldName("body"); body != nil {
				st.extractEnumVariants(body, fullName)
			}
			return
		}

	case "trait_item":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeClass, st.visibility(node))
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, fullName, enclosing, fullName)
			}
			return
		}

	case "type_item":
		if name := st.fieldText(node, "name"); name != "" {
			fullName := qualify(scope, name)
			st.addSymbol(fullName, graph.NodeTypedef, st.visibility(node))
			if tn := node.ChildByFieldName("type"); tn != nil {
				if typeName := rsTypeName(tn, st.source); typeName != "" {
					st.addRelation(graph.EdgeTypedefOf, fullName, typeName)
				}
			}
		}

	case "static_item", "const_item":
		if enclosing == "" {
			if name := st.fieldText(node, "name"); name != "" {
				fullName := qualify(scope, name)
				st.addSymbol(fullName, graph.NodeGlobalVariable, st.visibility(node))
				if tn := node.ChildByFieldName("type"); tn != nil {
					if typeName := rsTypeName(tn, st.source); typeName != "" {
						st.addRelation(graph.EdgeTypeOf, fullName, typeName)
					}
				}
			}
		}

	case "impl_item":
		st.extractImpl(node, scope, enclosing)
		return

	case "function_item", "function_signature_item":
		if name := st.fieldText(node, "name"); name != "" {
			var fullName string
			kind := graph.NodeFunction
			if implOwner != "" {
				fullName = qualify(implOwner, name)
				kind = graph.NodeMethod
			} else {
				fullName = qualify(scope, name)
			}
			st.addSymbol(fullName, kind, st.visibility(node))
			if ret := node.ChildByFieldName("return_type"); ret != nil {
				if tn := rsTypeName(ret, st.source); tn != "" {
					st.addRelation(graph.EdgeReturnTypeOf, fullName, tn)
				}
			}
			if body := node.ChildByFieldName("body"); body != nil {
				st.walk(body, scope, fullName, implOwner)
			}
			return
		}

	case "call_expression":
		st.extractCall(node, enclosing)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			st.walk(child, scope, enclosing, implOwner)
		}
	}
}

// extractImpl walks an impl block. Inherent impls contribute methods to
// the type; trait impls additionally record an inheritance relation.
func (st *rsState) extractImpl(node *tree_sitter.Node, scope, enclosing string) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	typeName := rsTypeName(typeNode, st.source)
	if typeName == "" {
		return
	}
	owner := qualify(scope, typeName)

	if traitNode := node.ChildByFieldName("trait"); traitNode != nil {
		if traitName := rsTypeName(traitNode, st.source); traitName != "" {
			st.addRelation(graph.EdgeInheritance, owner, traitName)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		st.walk(body, scope, enclosing, owner)
	}
}

// extractStructFields records named struct fields and their types.
func (st *rsState) extractStructFields(body *tree_sitter.Node, owner string) {
	for i := uint(0); i < body.ChildCount(); i++ {
		decl := body.Child(i)
		if decl == nil || decl.Kind() != "field_declaration" {
			continue
		}
		name := st.fieldText(decl, "name")
		if name == "" {
			continue
		}
		fullName := qualify(owner, name)
		st.addSymbol(fullName, graph.NodeField, st.visibility(decl))
		if tn := decl.ChildByFieldName("type"); tn != nil {
			if typeName := rsTypeName(tn, st.source); typeName != "" {
				st.addRelation(graph.EdgeTypeOf, fullName, typeName)
			}
		}
	}
}

// extractEnumVariants records enum variants as fields.
func (st *rsState) extractEnumVariants(body *tree_sitter.Node, owner string) {
	for i := uint(0); i < body.ChildCount(); i++ {
		variant := body.Child(i)
		if variant == nil || variant.Kind() != "enum_variant" {
			continue
		}
		if name := st.fieldText(variant, "name"); name != "" {
			st.addSymbol(qualify(owner, name), graph.NodeField, graph.AccessPublic)
		}
	}
}

// extractCall records a call relation from the enclosing function.
func (st *rsState) extractCall(node *tree_sitter.Node, enclosing string) {
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
	case "field_expression":
		if field := fnNode.ChildByFieldName("field"); field != nil {
			st.addRelation(graph.EdgeCall, enclosing, field.Utf8Text(st.source))
		}
	case "scoped_identifier":
		if name := fnNode.ChildByFieldName("name"); name != nil {
			st.addRelation(graph.EdgeCall, enclosing, name.Utf8Text(st.source))
		}
	}
}

// visibility maps an optional pub modifier onto a visibility qualifier.
func (st *rsState) visibility(node *tree_sitter.Node) graph.AccessKind {
	if firstOfKind(node, "visibility_modifier") != nil {
		return graph.AccessPublic
	}
	return graph.AccessPrivate
}

func (st *rsState) fieldText(node *tree_sitter.Node, field string) string {
	if c := node.ChildByFieldName(field); c != nil {
		return c.Utf8Text(st.source)
	}
	return ""
}

// rsBuiltinTypes are primitive types that never become graph nodes.
var rsBuiltinTypes = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"f32": true, "f64": true, "isize": true, "usize": true,
	"bool": true, "char": true, "str": true, "String": true,
	"Self": true,
}

// rsTypeName returns the first named type identifier in a type expression.
func rsTypeName(node *tree_sitter.Node, source []byte) string {
	ident := findKind(node, "type_identifier")
	if ident == nil {
		return ""
	}
	name := ident.Utf8Text(source)
	if rsBuiltinTypes[name] {
		return ""
	}
	return name
}
