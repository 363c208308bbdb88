package indexer

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/symgraph/internal/graph"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// findSymbol returns the first Symbol with the given full name, or nil.
func findSymbol(symbols []Symbol, fullName string) *Symbol {
	for i := range symbols {
		if symbols[i].FullName == fullName {
			return &symbols[i]
		}
	}
	return nil
}

// hasRelation reports whether a relation with the given triple exists.
func hasRelation(relations []Relation, kind graph.EdgeKind, from, to string) bool {
	for _, r := range relations {
		if r.Kind == kind && r.From == from && r.To == to {
			return true
		}
	}
	return false
}

// readFixture reads a test fixture file relative to the project root.
// Tests run from internal/indexer/, so the relative path is ../../testdata/...
func readFixture(t *testing.T, relPath string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../" + relPath)
	require.NoError(t, err, "reading fixture %s", relPath)
	return data
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_SupportedLanguages
// ---------------------------------------------------------------------------

func TestTreeSitterParser_SupportedLanguages(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	langs := p.SupportedLanguages()
	assert.Len(t, langs, 4, "should support exactly 4 languages")

	langSet := make(map[Language]bool, len(langs))
	for _, l := range langs {
		langSet[l] = true
	}
	assert.True(t, langSet[LangGo])
	assert.True(t, langSet[LangTypeScript])
	assert.True(t, langSet[LangPython])
	assert.True(t, langSet[LangRust])
}

func TestTreeSitterParser_UnsupportedLanguage(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), "x.zig", []byte("fn main() {}"), Language("zig"))
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_Go
// ---------------------------------------------------------------------------

func TestTreeSitterParser_Go(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()
	ctx := context.Background()

	t.Run("model.go", func(t *testing.T) {
		src := readFixture(t, "testdata/fixtures/go_project/model.go")
		res, err := p.Parse(ctx, "model.go", src, LangGo)
		require.NoError(t, err)
		require.NotNil(t, res)

		pkg := findSymbol(res.Symbols, "project")
		require.NotNil(t, pkg, "package namespace should exist")
		assert.Equal(t, graph.NodeNamespace, pkg.Kind)

		user := findSymbol(res.Symbols, "project::User")
		require.NotNil(t, user)
		assert.Equal(t, graph.NodeStruct, user.Kind)
		assert.Equal(t, graph.AccessPublic, user.Access)

		id := findSymbol(res.Symbols, "project::User::ID")
		require.NotNil(t, id, "struct fields should be extracted")
		assert.Equal(t, graph.NodeField, id.Kind)

		repo := findSymbol(res.Symbols, "project::Repository")
		require.NotNil(t, repo)
		assert.Equal(t, graph.NodeClass, repo.Kind, "interfaces map to class nodes")

		newUser := findSymbol(res.Symbols, "project::newUser")
		require.NotNil(t, newUser)
		assert.Equal(t, graph.NodeFunction, newUser.Kind)
		assert.Equal(t, graph.AccessPrivate, newUser.Access)

		assert.True(t, hasRelation(res.Relations, graph.EdgeReturnTypeOf, "project::newUser", "User"))
	})

	t.Run("service.go", func(t *testing.T) {
		src := readFixture(t, "testdata/fixtures/go_project/service.go")
		res, err := p.Parse(ctx, "service.go", src, LangGo)
		require.NoError(t, err)

		getUser := findSymbol(res.Symbols, "project::UserService::GetUser")
		require.NotNil(t, getUser, "methods should nest under their receiver")
		assert.Equal(t, graph.NodeMethod, getUser.Kind)
		assert.Equal(t, graph.AccessPublic, getUser.Access)

		repoField := findSymbol(res.Symbols, "project::UserService::repo")
		require.NotNil(t, repoField)
		assert.Equal(t, graph.NodeField, repoField.Kind)
		assert.Equal(t, graph.AccessPrivate, repoField.Access)

		assert.True(t, hasRelation(res.Relations, graph.EdgeTypeOf, "project::UserService::repo", "Repository"))
		assert.True(t, hasRelation(res.Relations, graph.EdgeParameterTypeOf, "project::NewUserService", "Repository"))
		assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "project::UserService::GetUser", "FindByID"))
		assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "project::UserService::CreateUser", "newUser"))
	})
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_Python
// ---------------------------------------------------------------------------

func TestTreeSitterParser_Python(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	src := readFixture(t, "testdata/fixtures/py_project/shapes.py")
	res, err := p.Parse(context.Background(), "shapes.py", src, LangPython)
	require.NoError(t, err)

	module := findSymbol(res.Symbols, "shapes")
	require.NotNil(t, module)
	assert.Equal(t, graph.NodeNamespace, module.Kind)

	shape := findSymbol(res.Symbols, "shapes::Shape")
	require.NotNil(t, shape)
	assert.Equal(t, graph.NodeClass, shape.Kind)

	area := findSymbol(res.Symbols, "shapes::Shape::area")
	require.NotNil(t, area)
	assert.Equal(t, graph.NodeMethod, area.Kind)

	init := findSymbol(res.Symbols, "shapes::Circle::__init__")
	require.NotNil(t, init)
	assert.Equal(t, graph.AccessPublic, init.Access, "dunder methods stay public")

	scale := findSymbol(res.Symbols, "shapes::Circle::_scale")
	require.NotNil(t, scale)
	assert.Equal(t, graph.AccessPrivate, scale.Access)

	scaleVar := findSymbol(res.Symbols, "shapes::DEFAULT_SCALE")
	require.NotNil(t, scaleVar)
	assert.Equal(t, graph.NodeGlobalVariable, scaleVar.Kind)

	formatArea := findSymbol(res.Symbols, "shapes::format_area")
	require.NotNil(t, formatArea)
	assert.Equal(t, graph.NodeFunction, formatArea.Kind)

	assert.True(t, hasRelation(res.Relations, graph.EdgeInheritance, "shapes::Circle", "Shape"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "shapes::Shape::describe", "format_area"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "shapes::total_area", "area"))
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_TypeScript
// ---------------------------------------------------------------------------

func TestTreeSitterParser_TypeScript(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	src := readFixture(t, "testdata/fixtures/ts_project/orders.ts")
	res, err := p.Parse(context.Background(), "orders.ts", src, LangTypeScript)
	require.NoError(t, err)

	status := findSymbol(res.Symbols, "orders::OrderStatus")
	require.NotNil(t, status)
	assert.Equal(t, graph.NodeEnum, status.Kind)

	pending := findSymbol(res.Symbols, "orders::OrderStatus::Pending")
	require.NotNil(t, pending, "enum members become fields")
	assert.Equal(t, graph.NodeField, pending.Kind)

	orderID := findSymbol(res.Symbols, "orders::OrderId")
	require.NotNil(t, orderID)
	assert.Equal(t, graph.NodeTypedef, orderID.Kind)

	idField := findSymbol(res.Symbols, "orders::Order::id")
	require.NotNil(t, idField)
	assert.Equal(t, graph.AccessPrivate, idField.Access)

	statusField := findSymbol(res.Symbols, "orders::Order::status")
	require.NotNil(t, statusField)
	assert.Equal(t, graph.AccessProtected, statusField.Access)

	ship := findSymbol(res.Symbols, "orders::Order::ship")
	require.NotNil(t, ship)
	assert.Equal(t, graph.NodeMethod, ship.Kind)

	assert.True(t, hasRelation(res.Relations, graph.EdgeTypeOf, "orders::Order::id", "OrderId"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeInheritance, "orders::PriorityOrder", "Order"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeInheritance, "orders::PriorityOrder", "Persistable"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "orders::Order::ship", "notify"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "orders::persist", "notify"))
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_Rust
// ---------------------------------------------------------------------------

func TestTreeSitterParser_Rust(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	src := readFixture(t, "testdata/fixtures/rs_project/inventory.rs")
	res, err := p.Parse(context.Background(), "inventory.rs", src, LangRust)
	require.NoError(t, err)

	item := findSymbol(res.Symbols, "inventory::Item")
	require.NotNil(t, item)
	assert.Equal(t, graph.NodeStruct, item.Kind)
	assert.Equal(t, graph.AccessPublic, item.Access)

	count := findSymbol(res.Symbols, "inventory::Item::count")
	require.NotNil(t, count)
	assert.Equal(t, graph.AccessPrivate, count.Access)

	countType := findSymbol(res.Symbols, "inventory::Count")
	require.NotNil(t, countType)
	assert.Equal(t, graph.NodeTypedef, countType.Kind)

	category := findSymbol(res.Symbols, "inventory::Category")
	require.NotNil(t, category)
	assert.Equal(t, graph.NodeEnum, category.Kind)
	assert.NotNil(t, findSymbol(res.Symbols, "inventory::Category::Tools"))

	stock := findSymbol(res.Symbols, "inventory::Stock")
	require.NotNil(t, stock)
	assert.Equal(t, graph.NodeClass, stock.Kind, "traits map to class nodes")

	onHand := findSymbol(res.Symbols, "inventory::Item::on_hand")
	require.NotNil(t, onHand, "impl functions become methods of the type")
	assert.Equal(t, graph.NodeMethod, onHand.Kind)

	maxItems := findSymbol(res.Symbols, "inventory::MAX_ITEMS")
	require.NotNil(t, maxItems)
	assert.Equal(t, graph.NodeGlobalVariable, maxItems.Kind)

	assert.True(t, hasRelation(res.Relations, graph.EdgeTypeOf, "inventory::Item::count", "Count"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeInheritance, "inventory::Item", "Stock"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeReturnTypeOf, "inventory::Item::new", "Item"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "inventory::restock", "audit"))
	assert.True(t, hasRelation(res.Relations, graph.EdgeCall, "inventory::restock", "on_hand"))
}
