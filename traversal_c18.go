package autopas

// C18Traversal embeds C08Traversal unchanged: same 8-coloring
// ((x,y,z) mod 2), same 13-offset forward neighborhood, same
// color-then-cell sweep. Only GetTraversalType differs; it is kept as a
// distinct TraversalOption, and the containers that accept c18 are the
// same ones that accept c08.
type C18Traversal struct {
	*C08Traversal
}

func NewC18Traversal(f Functor, layout DataLayoutOption, newton3 bool) *C18Traversal {
	inner := NewC08Traversal(f, layout, newton3)
	inner.kind = TraversalC18
	return &C18Traversal{C08Traversal: inner}
}

func (t *C18Traversal) GetTraversalType() TraversalOption { return TraversalC18 }
