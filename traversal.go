package autopas

// Traversal specifies a total order of self-cell and cell-pair tasks
// compatible with some subset of containers.
type Traversal interface {
	// IsApplicable checks this traversal against the container's current
	// dimensions, Newton-3 policy, data layout, and (for cluster
	// traversals) cluster width.
	IsApplicable() bool

	// InitTraversal performs any bulk AoS->SoA conversion the traversal's
	// data layout requires before TraverseParticlePairs runs.
	InitTraversal()

	// TraverseParticlePairs runs the schedule. When it returns, every
	// required task has executed exactly once.
	TraverseParticlePairs()

	// EndTraversal performs the matching SoA->AoS conversion.
	EndTraversal()

	GetDataLayout() DataLayoutOption
	GetUseNewton3() bool
	GetTraversalType() TraversalOption
}

// baseTraversal factors the fields every traversal implementation shares.
type baseTraversal struct {
	dataLayout DataLayoutOption
	newton3    bool
	kind       TraversalOption
	functor    Functor
}

func (b *baseTraversal) GetDataLayout() DataLayoutOption { return b.dataLayout }
func (b *baseTraversal) GetUseNewton3() bool             { return b.newton3 }
func (b *baseTraversal) GetTraversalType() TraversalOption { return b.kind }

// newton3Applicable is the common isApplicable sub-check shared by every
// traversal: the functor must allow whichever Newton-3 mode the traversal
// is configured for.
func newton3Applicable(f Functor, newton3 bool) bool {
	if newton3 {
		return f.AllowsNewton3()
	}
	return f.AllowsNonNewton3()
}
