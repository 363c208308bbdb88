package graph

import "sync/atomic"

// nextTokenID hands out process-wide unique token ids. A single counter for
// all graphs keeps ids comparable across graph instances, which the edge
// cloning precondition relies on.
var nextTokenID atomic.Uint64

// Token is the identity shared by nodes and edges: a unique id, a display
// name, and the fixed set of optional component slots.
type Token interface {
	ID() uint64
	Name() string
	IsNode() bool
	IsEdge() bool
}

// token carries the id and the component slots embedded in Node and Edge.
// The component kind set is closed, so components live in fixed optional
// slots rather than behind a dynamic type lookup.
type token struct {
	id          uint64
	access      *ComponentAccess
	aggregation *ComponentAggregation
}

func newToken() token {
	return token{id: nextTokenID.Add(1)}
}

// tokenWithID builds a token carrying a pre-assigned id. Used when cloning
// tokens across isomorphic graphs and when restoring persisted graphs. The
// counter is advanced past id so freshly created tokens never collide with
// restored ones.
func tokenWithID(id uint64) token {
	for {
		cur := nextTokenID.Load()
		if cur >= id || nextTokenID.CompareAndSwap(cur, id) {
			break
		}
	}
	return token{id: id}
}

// ID returns the token's unique id. Ids are immutable once assigned.
func (t *token) ID() uint64 {
	return t.id
}

// ComponentAccess returns the attached access component, or nil.
func (t *token) ComponentAccess() *ComponentAccess {
	return t.access
}

// ComponentAggregation returns the attached aggregation component, or nil.
func (t *token) ComponentAggregation() *ComponentAggregation {
	return t.aggregation
}
