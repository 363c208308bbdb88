package graph

// NodeKind classifies a symbol node. Kinds are bit flags so that category
// tests over several kinds reduce to a single mask intersection.
type NodeKind uint32

const (
	NodeUndefined NodeKind = 1 << iota
	NodeUndefinedVariable
	NodeUndefinedFunction
	NodeClass
	NodeStruct
	NodeUndefinedType
	NodeEnum
	NodeTypedef
	NodeNamespace
	NodeGlobalVariable
	NodeField
	NodeFunction
	NodeMethod
	NodeTemplateParameterType
)

// Composite node kind masks used by the edge schema.
const (
	MaskComplexType  = NodeUndefinedType | NodeClass | NodeStruct
	MaskTypeLike     = NodeUndefined | NodeEnum | NodeTypedef | MaskComplexType
	MaskVariableLike = NodeUndefined | NodeUndefinedVariable | NodeGlobalVariable | NodeField
	MaskFunctionLike = NodeUndefinedFunction | NodeFunction | NodeMethod
)

// nodeKindLabels maps each node kind to its diagnostic label.
var nodeKindLabels = map[NodeKind]string{
	NodeUndefined:             "undefined",
	NodeUndefinedVariable:     "undefined_variable",
	NodeUndefinedFunction:     "undefined_function",
	NodeClass:                 "class",
	NodeStruct:                "struct",
	NodeUndefinedType:         "undefined_type",
	NodeEnum:                  "enum",
	NodeTypedef:               "typedef",
	NodeNamespace:             "namespace",
	NodeGlobalVariable:        "global_variable",
	NodeField:                 "field",
	NodeFunction:              "function",
	NodeMethod:                "method",
	NodeTemplateParameterType: "template_parameter_type",
}

// String returns the node kind's diagnostic label.
func (k NodeKind) String() string {
	if s, ok := nodeKindLabels[k]; ok {
		return s
	}
	return "unknown"
}

// NodeKindFromString returns the node kind with the given label.
func NodeKindFromString(s string) (NodeKind, bool) {
	for k, label := range nodeKindLabels {
		if label == s {
			return k, true
		}
	}
	return 0, false
}

// EdgeKind classifies a relationship between two symbol nodes. Like
// NodeKind, edge kinds are bit flags.
type EdgeKind uint32

const (
	EdgeMember EdgeKind = 1 << iota
	EdgeTypeOf
	EdgeReturnTypeOf
	EdgeParameterTypeOf
	EdgeTypeUsage
	EdgeInheritance
	EdgeOverride
	EdgeCall
	EdgeUsage
	EdgeTypedefOf
	EdgeTemplateParameterOf
	EdgeTemplateArgumentOf
	EdgeTemplateDefaultArgumentOf
	EdgeTemplateSpecializationOf
	EdgeAggregation
)

// edgeKindLabels maps each edge kind to its fixed display label. These
// labels appear in rendered edges and diagnostics and must stay stable.
var edgeKindLabels = map[EdgeKind]string{
	EdgeMember:                    "child",
	EdgeTypeOf:                    "type_use",
	EdgeReturnTypeOf:              "return_type",
	EdgeParameterTypeOf:           "parameter_type",
	EdgeTypeUsage:                 "type_usage",
	EdgeInheritance:               "inheritance",
	EdgeOverride:                  "override",
	EdgeCall:                      "call",
	EdgeUsage:                     "usage",
	EdgeTypedefOf:                 "typedef",
	EdgeTemplateParameterOf:       "template parameter",
	EdgeTemplateArgumentOf:        "template argument",
	EdgeTemplateDefaultArgumentOf: "template default argument",
	EdgeTemplateSpecializationOf:  "template specialization",
	EdgeAggregation:               "aggregation",
}

// String returns the edge kind's display label.
func (k EdgeKind) String() string {
	if s, ok := edgeKindLabels[k]; ok {
		return s
	}
	return ""
}

// EdgeKindFromString returns the edge kind with the given label.
func EdgeKindFromString(s string) (EdgeKind, bool) {
	for k, label := range edgeKindLabels {
		if label == s {
			return k, true
		}
	}
	return 0, false
}

// AllEdgeKinds lists every edge kind once, in declaration order.
var AllEdgeKinds = []EdgeKind{
	EdgeMember,
	EdgeTypeOf,
	EdgeReturnTypeOf,
	EdgeParameterTypeOf,
	EdgeTypeUsage,
	EdgeInheritance,
	EdgeOverride,
	EdgeCall,
	EdgeUsage,
	EdgeTypedefOf,
	EdgeTemplateParameterOf,
	EdgeTemplateArgumentOf,
	EdgeTemplateDefaultArgumentOf,
	EdgeTemplateSpecializationOf,
	EdgeAggregation,
}

// AllNodeKinds lists every node kind once, in declaration order.
var AllNodeKinds = []NodeKind{
	NodeUndefined,
	NodeUndefinedVariable,
	NodeUndefinedFunction,
	NodeClass,
	NodeStruct,
	NodeUndefinedType,
	NodeEnum,
	NodeTypedef,
	NodeNamespace,
	NodeGlobalVariable,
	NodeField,
	NodeFunction,
	NodeMethod,
	NodeTemplateParameterType,
}
