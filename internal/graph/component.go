package graph

// AccessKind is the visibility qualifier carried by an access component.
type AccessKind uint8

const (
	AccessNone AccessKind = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the visibility label used in rendered edges.
func (a AccessKind) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return "none"
}

// AccessKindFromString returns the access kind with the given label.
func AccessKindFromString(s string) (AccessKind, bool) {
	switch s {
	case "public":
		return AccessPublic, true
	case "protected":
		return AccessProtected, true
	case "private":
		return AccessPrivate, true
	case "none":
		return AccessNone, true
	}
	return AccessNone, false
}

// ComponentAccess annotates a member or inheritance edge with the
// visibility of the relationship. Components are immutable after creation
// and may be shared between an edge and external holders; all attachment
// validation happens in Edge, not here.
type ComponentAccess struct {
	access AccessKind
}

// NewComponentAccess creates an access component for the given visibility.
func NewComponentAccess(access AccessKind) *ComponentAccess {
	return &ComponentAccess{access: access}
}

// Access returns the visibility qualifier.
func (c *ComponentAccess) Access() AccessKind {
	return c.access
}

// String returns the visibility label.
func (c *ComponentAccess) String() string {
	return c.access.String()
}

// ComponentAggregation annotates an aggregation edge with the number of
// individual relationships the edge stands in for.
type ComponentAggregation struct {
	count int
}

// NewComponentAggregation creates an aggregation component for the given
// collapsed relationship count.
func NewComponentAggregation(count int) *ComponentAggregation {
	return &ComponentAggregation{count: count}
}

// Count returns the number of collapsed relationships.
func (c *ComponentAggregation) Count() int {
	return c.count
}
