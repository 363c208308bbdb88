package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// schemaCase is one representative (edge kind, from kind, to kind) triple.
type schemaCase struct {
	kind EdgeKind
	from NodeKind
	to   NodeKind
	ok   bool
}

func TestCheckEdgeKinds_Member(t *testing.T) {
	cases := []schemaCase{
		{EdgeMember, NodeNamespace, NodeClass, true},
		{EdgeMember, NodeNamespace, NodeNamespace, true},
		{EdgeMember, NodeNamespace, NodeFunction, true},
		{EdgeMember, NodeNamespace, NodeGlobalVariable, true},
		{EdgeMember, NodeUndefined, NodeNamespace, true},
		{EdgeMember, NodeClass, NodeMethod, true},
		{EdgeMember, NodeClass, NodeField, true},
		{EdgeMember, NodeStruct, NodeField, true},
		{EdgeMember, NodeEnum, NodeField, true},

		// From must be type-like or a namespace.
		{EdgeMember, NodeFunction, NodeField, false},
		{EdgeMember, NodeGlobalVariable, NodeField, false},
		// Only undefined nodes and namespaces contain namespaces.
		{EdgeMember, NodeClass, NodeNamespace, false},
		{EdgeMember, NodeStruct, NodeNamespace, false},
		// Enums contain nothing but their enumerator fields.
		{EdgeMember, NodeEnum, NodeMethod, false},
		{EdgeMember, NodeEnum, NodeClass, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_TypeOf(t *testing.T) {
	cases := []schemaCase{
		{EdgeTypeOf, NodeField, NodeClass, true},
		{EdgeTypeOf, NodeGlobalVariable, NodeUndefinedType, true},
		{EdgeTypeOf, NodeUndefinedVariable, NodeTypedef, true},
		{EdgeTypeOf, NodeUndefined, NodeEnum, true},

		{EdgeTypeOf, NodeFunction, NodeClass, false},
		{EdgeTypeOf, NodeField, NodeFunction, false},
		{EdgeTypeOf, NodeField, NodeNamespace, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_FunctionToType(t *testing.T) {
	var cases []schemaCase
	for _, kind := range []EdgeKind{EdgeReturnTypeOf, EdgeParameterTypeOf, EdgeTypeUsage} {
		cases = append(cases,
			schemaCase{kind, NodeFunction, NodeClass, true},
			schemaCase{kind, NodeMethod, NodeStruct, true},
			schemaCase{kind, NodeUndefinedFunction, NodeUndefinedType, true},
			schemaCase{kind, NodeFunction, NodeTypedef, true},

			schemaCase{kind, NodeField, NodeClass, false},
			schemaCase{kind, NodeFunction, NodeMethod, false},
			schemaCase{kind, NodeNamespace, NodeClass, false},
		)
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Inheritance(t *testing.T) {
	cases := []schemaCase{
		{EdgeInheritance, NodeClass, NodeClass, true},
		{EdgeInheritance, NodeStruct, NodeClass, true},
		{EdgeInheritance, NodeClass, NodeUndefinedType, true},

		// Inheritance is between complex types only; plain undefined,
		// enums and typedefs don't qualify.
		{EdgeInheritance, NodeUndefined, NodeClass, false},
		{EdgeInheritance, NodeEnum, NodeClass, false},
		{EdgeInheritance, NodeClass, NodeTypedef, false},
		{EdgeInheritance, NodeFunction, NodeClass, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Override(t *testing.T) {
	cases := []schemaCase{
		{EdgeOverride, NodeMethod, NodeMethod, true},
		{EdgeOverride, NodeMethod, NodeUndefinedFunction, true},
		{EdgeOverride, NodeUndefinedFunction, NodeMethod, true},

		{EdgeOverride, NodeFunction, NodeMethod, false},
		{EdgeOverride, NodeMethod, NodeFunction, false},
		{EdgeOverride, NodeClass, NodeMethod, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Call(t *testing.T) {
	cases := []schemaCase{
		{EdgeCall, NodeFunction, NodeFunction, true},
		{EdgeCall, NodeMethod, NodeUndefinedFunction, true},
		{EdgeCall, NodeGlobalVariable, NodeFunction, true},
		{EdgeCall, NodeField, NodeMethod, true},

		{EdgeCall, NodeFunction, NodeField, false},
		{EdgeCall, NodeClass, NodeFunction, false},
		{EdgeCall, NodeNamespace, NodeFunction, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Usage(t *testing.T) {
	cases := []schemaCase{
		{EdgeUsage, NodeFunction, NodeGlobalVariable, true},
		{EdgeUsage, NodeMethod, NodeField, true},
		{EdgeUsage, NodeUndefinedFunction, NodeUndefinedVariable, true},

		{EdgeUsage, NodeGlobalVariable, NodeField, false},
		{EdgeUsage, NodeFunction, NodeFunction, false},
		{EdgeUsage, NodeFunction, NodeClass, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_TypedefOf(t *testing.T) {
	cases := []schemaCase{
		{EdgeTypedefOf, NodeTypedef, NodeClass, true},
		{EdgeTypedefOf, NodeTypedef, NodeTypedef, true},
		{EdgeTypedefOf, NodeTypedef, NodeUndefinedType, true},

		{EdgeTypedefOf, NodeClass, NodeClass, false},
		{EdgeTypedefOf, NodeTypedef, NodeFunction, false},
		{EdgeTypedefOf, NodeTypedef, NodeNamespace, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Templates(t *testing.T) {
	cases := []schemaCase{
		{EdgeTemplateParameterOf, NodeTemplateParameterType, NodeClass, true},
		{EdgeTemplateParameterOf, NodeTemplateParameterType, NodeFunction, true},
		{EdgeTemplateParameterOf, NodeClass, NodeClass, false},
		{EdgeTemplateParameterOf, NodeTemplateParameterType, NodeNamespace, false},

		{EdgeTemplateArgumentOf, NodeClass, NodeClass, true},
		{EdgeTemplateArgumentOf, NodeEnum, NodeStruct, true},
		{EdgeTemplateArgumentOf, NodeFunction, NodeClass, false},
		{EdgeTemplateArgumentOf, NodeClass, NodeFunction, false},

		{EdgeTemplateDefaultArgumentOf, NodeTypedef, NodeClass, true},
		{EdgeTemplateDefaultArgumentOf, NodeMethod, NodeClass, false},

		{EdgeTemplateSpecializationOf, NodeClass, NodeClass, true},
		{EdgeTemplateSpecializationOf, NodeFunction, NodeFunction, true},
		{EdgeTemplateSpecializationOf, NodeClass, NodeFunction, true},
		{EdgeTemplateSpecializationOf, NodeField, NodeClass, false},
		{EdgeTemplateSpecializationOf, NodeNamespace, NodeClass, false},
	}
	runSchemaCases(t, cases)
}

func TestCheckEdgeKinds_Aggregation(t *testing.T) {
	cases := []schemaCase{
		{EdgeAggregation, NodeClass, NodeClass, true},
		{EdgeAggregation, NodeFunction, NodeGlobalVariable, true},
		{EdgeAggregation, NodeField, NodeMethod, true},
		{EdgeAggregation, NodeEnum, NodeStruct, true},

		{EdgeAggregation, NodeNamespace, NodeClass, false},
		{EdgeAggregation, NodeClass, NodeNamespace, false},
		{EdgeAggregation, NodeTemplateParameterType, NodeClass, false},
	}
	runSchemaCases(t, cases)
}

func runSchemaCases(t *testing.T, cases []schemaCase) {
	t.Helper()
	for _, c := range cases {
		name := fmt.Sprintf("%s/%s->%s", c.kind, c.from, c.to)
		assert.Equal(t, c.ok, checkEdgeKinds(c.kind, c.from, c.to), name)
	}
}

// The undefined kind doubles as both a type-like and a variable-like
// placeholder, but never as a function-like one.
func TestCheckEdgeKinds_UndefinedCategories(t *testing.T) {
	assert.True(t, checkEdgeKinds(EdgeTypeOf, NodeUndefined, NodeUndefined))
	assert.True(t, checkEdgeKinds(EdgeCall, NodeUndefined, NodeFunction))
	assert.False(t, checkEdgeKinds(EdgeCall, NodeFunction, NodeUndefined))
	assert.False(t, checkEdgeKinds(EdgeInheritance, NodeUndefined, NodeUndefined))
}
