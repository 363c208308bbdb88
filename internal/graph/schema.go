package graph

// checkEdgeKinds reports whether an edge of the given kind may connect a
// from-node of kind from to a to-node of kind to. The rules form a closed
// schema over the node kind categories; callers decide what to do with a
// violation (the default policy keeps the edge and reports a diagnostic).
func checkEdgeKinds(kind EdgeKind, from, to NodeKind) bool {
	switch kind {
	case EdgeMember:
		// Only undefined nodes and namespaces may contain namespaces, and
		// enums may only contain their enumerator fields.
		if from&(MaskTypeLike|NodeNamespace) == 0 {
			return false
		}
		if to&NodeNamespace != 0 && from&(NodeUndefined|NodeNamespace) == 0 {
			return false
		}
		if from&NodeEnum != 0 && to&NodeField == 0 {
			return false
		}
		return true

	case EdgeTypeOf:
		return from&MaskVariableLike != 0 && to&MaskTypeLike != 0

	case EdgeReturnTypeOf, EdgeParameterTypeOf, EdgeTypeUsage:
		return from&MaskFunctionLike != 0 && to&MaskTypeLike != 0

	case EdgeInheritance:
		return from&MaskComplexType != 0 && to&MaskComplexType != 0

	case EdgeOverride:
		return from&(NodeUndefinedFunction|NodeMethod) != 0 &&
			to&(NodeUndefinedFunction|NodeMethod) != 0

	case EdgeCall:
		return from&(MaskVariableLike|MaskFunctionLike) != 0 && to&MaskFunctionLike != 0

	case EdgeUsage:
		return from&MaskFunctionLike != 0 && to&MaskVariableLike != 0

	case EdgeTypedefOf:
		return from&NodeTypedef != 0 && to&MaskTypeLike != 0

	case EdgeTemplateParameterOf:
		return from&NodeTemplateParameterType != 0 &&
			to&(MaskTypeLike|MaskFunctionLike) != 0

	case EdgeTemplateArgumentOf, EdgeTemplateDefaultArgumentOf:
		return from&MaskTypeLike != 0 && to&MaskTypeLike != 0

	case EdgeTemplateSpecializationOf:
		return from&(MaskTypeLike|MaskFunctionLike) != 0 &&
			to&(MaskTypeLike|MaskFunctionLike) != 0

	case EdgeAggregation:
		return from&(MaskTypeLike|MaskVariableLike|MaskFunctionLike) != 0 &&
			to&(MaskTypeLike|MaskVariableLike|MaskFunctionLike) != 0
	}

	return false
}
