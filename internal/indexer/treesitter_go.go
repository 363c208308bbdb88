package indexer

import (
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// goExtractor extracts symbols and relations from Go source files. The
// package becomes a namespace node, declarations become symbols qualified
// under it, and calls/type references become relations resolved later by
// the builder.
type goExtractor struct{}

func (e *goExtractor) Extract(root *tree_sitter.Node, source []byte, path string) ([]Symbol, []Relation) {
	st := &goState{source: source}

	pkg := st.packageName(root)
	if pkg != "" {
		st.addSymbol(pkg, graph.NodeNamespace, graph.AccessNone)
	}

	st.walk(root, pkg, "")
	return st.symbols, st.relations
}

type goState struct {
	source    []byte
	symbols   []Symbol
	relations []Relation
}

func (st *goState) addSymbol(fullName string, kind graph.NodeKind, access graph.AccessKind) {
	st.symbols = append(st.symbols, Symbol{FullName: fullName, Kind: kind, Access: access})
}

func (st *goState) addRelation(kind graph.EdgeKind, from, to string) {
	if from == "" || to == "" {
		return
	}
	st.relations = append(st.relations, Relation{Kind: kind, From: from, To: to})
}

// packageName returns the identifier of the file's package clause.
func (st *goState) packageName(root *tree_sitter.Node) string {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil || child.Kind() != "package_clause" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			c := child.Child(j)
			if c != nil && c.Kind() == "package_identifier" {
				return c.Utf8Text(st.source)
			}
		}
	}
	return ""
}

// walk descends the AST. scope is the qualified name new declarations nest
// under; enclosing is the qualified name of the surrounding function, used
// as the source of call relations.
func (st *goState) walk(node *tree_sitter.Node, scope, enclosing string) {
	switch node.Kind() {
	case "function_declaration":
		enclosing = st.extractFunction(node, scope, graph.NodeFunction)

	case "method_declaration":
		enclosing = st.extractMethod(node, scope)

	case "type_declaration":
		st.extractTypeDeclaration(node, scope)

	case "const_declaration", "var_declaration":
		st.extractValueDeclaration(node, scope, enclosing)

	case "call_expression":
		st.extractCall(node, enclosing)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			st.walk(child, scope, enclosing)
		}
	}
}

// extractFunction records a function symbol plus its parameter and return
// type relations, and returns its qualified name.
func (st *goState) extractFunction(node *tree_sitter.Node, scope string, kind graph.NodeKind) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	name := nameNode.Utf8Text(st.source)
	fullName := qualify(scope, name)
	st.addSymbol(fullName, kind, goAccess(name))
	st.extractSignatureTypes(node, fullName)
	return fullName
}

// extractMethod records a method symbol under its receiver type.
func (st *goState) extractMethod(node *tree_sitter.Node, scope string) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	recv := st.receiverType(node)
	if recv == "" {
		return ""
	}
	name := nameNode.Utf8Text(st.source)
	fullName := qualify(qualify(scope, recv), name)
	st.addSymbol(fullName, graph.NodeMethod, goAccess(name))
	st.extractSignatureTypes(node, fullName)
	return fullName
}

// receiverType returns the bare type identifier of a method receiver.
func (st *goState) receiverType(node *tree_sitter.Node) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	// The receiver type may sit under a pointer or generic wrapper.
	if ident := findKind(recv, "type_identifier"); ident != nil {
		return ident.Utf8Text(st.source)
	}
	return ""
}

// extractSignatureTypes emits parameter_type and return_type relations for
// every named type appearing in the signature.
func (st *goState) extractSignatureTypes(node *tree_sitter.Node, fn string) {
	if params := node.ChildByFieldName("parameters"); params != nil {
		for _, tn := range typeIdents(params, st.source) {
			st.addRelation(graph.EdgeParameterTypeOf, fn, tn)
		}
	}
	if result := node.ChildByFieldName("result"); result != nil {
		for _, tn := range typeIdents(result, st.source) {
			st.addRelation(graph.EdgeReturnTypeOf, fn, tn)
		}
	}
}

// extractTypeDeclaration handles each type_spec in a type declaration.
// Structs map to struct nodes, interfaces to class nodes, everything else
// to typedefs pointing at their underlying type.
func (st *goState) extractTypeDeclaration(node *tree_sitter.Node, scope string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || (spec.Kind() != "type_spec" && spec.Kind() != "type_alias") {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(st.source)
		fullName := qualify(scope, name)
		typeNode := spec.ChildByFieldName("type")

		switch {
		case typeNode != nil && typeNode.Kind() == "struct_type":
			st.addSymbol(fullName, graph.NodeStruct, goAccess(name))
			st.extractStructFields(typeNode, fullName)
		case typeNode != nil && typeNode.Kind() == "interface_type":
			st.addSymbol(fullName, graph.NodeClass, goAccess(name))
		default:
			st.addSymbol(fullName, graph.NodeTypedef, goAccess(name))
			if typeNode != nil {
				for _, tn := range typeIdents(typeNode, st.source) {
					st.addRelation(graph.EdgeTypedefOf, fullName, tn)
				}
			}
		}
	}
}

// extractStructFields records field symbols and their type relations.
func (st *goState) extractStructFields(structType *tree_sitter.Node, owner string) {
	list := firstOfKind(structType, "field_declaration_list")
	if list == nil {
		return
	}
	for i := uint(0); i < list.ChildCount(); i++ {
		decl := list.Child(i)
		if decl == nil || decl.Kind() != "field_declaration" {
			continue
		}
		var names []string
		for j := uint(0); j < decl.ChildCount(); j++ {
			c := decl.Child(j)
			if c != nil && c.Kind() == "field_identifier" {
				names = append(names, c.Utf8Text(st.source))
			}
		}
		fieldTypes := []string(nil)
		if tn := decl.ChildByFieldName("type"); tn != nil {
			fieldTypes = typeIdents(tn, st.source)
		}
		for _, name := range names {
			fullName := qualify(owner, name)
			st.addSymbol(fullName, graph.NodeField, goAccess(name))
			for _, tn := range fieldTypes {
				st.addRelation(graph.EdgeTypeOf, fullName, tn)
			}
		}
	}
}

// extractValueDeclaration records package-level consts and vars as global
// variables. Declarations inside functions are skipped.
func (st *goState) extractValueDeclaration(node *tree_sitter.Node, scope, enclosing string) {
	if enclosing != "" {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || (spec.Kind() != "const_spec" && spec.Kind() != "var_spec") {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(st.source)
		fullName := qualify(scope, name)
		st.addSymbol(fullName, graph.NodeGlobalVariable, goAccess(name))
		if tn := spec.ChildByFieldName("type"); tn != nil {
			for _, t := range typeIdents(tn, st.source) {
				st.addRelation(graph.EdgeTypeOf, fullName, t)
			}
		}
	}
}

// extractCall records a call relation from the enclosing function. Only
// plain identifiers and selector expressions are extracted; the builder
// resolves or creates a placeholder for the callee.
func (st *goState) extractCall(node *tree_sitter.Node, enclosing string) {
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
	case "selector_expression":
		if field := fnNode.ChildByFieldName("field"); field != nil {
			st.addRelation(graph.EdgeCall, enclosing, field.Utf8Text(st.source))
		}
	}
}

// goBuiltinTypes are predeclared identifiers that never become graph nodes.
var goBuiltinTypes = map[string]bool{
	"bool": true, "byte": true, "complex64": true, "complex128": true,
	"error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"any": true,
}

// typeIdents collects the named, non-builtin type identifiers under node.
func typeIdents(node *tree_sitter.Node, source []byte) []string {
	var out []string
	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		if n.Kind() == "type_identifier" {
			name := n.Utf8Text(source)
			if !goBuiltinTypes[name] {
				out = append(out, name)
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil {
				visit(child)
			}
		}
	}
	visit(node)
	return out
}

// findKind returns the first descendant of the given kind, depth first.
func findKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			if found := findKind(child, kind); found != nil {
				return found
			}
		}
	}
	return nil
}

// firstOfKind returns the first direct child of the given kind, or nil.
func firstOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

// qualify joins a scope and a name with the "::" separator.
func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "::" + name
}

// goAccess maps Go exportedness onto a visibility qualifier.
func goAccess(name string) graph.AccessKind {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return graph.AccessPublic
	}
	return graph.AccessPrivate
}
