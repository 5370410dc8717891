package autopas

// Container is the common contract every spatial container satisfies.
// AutoPas drives containers exclusively through this interface; the
// façade never type-switches on the concrete container except to decide
// whether a cheap in-place reconfiguration is possible.
type Container interface {
	// Add inserts an owned particle. pos must lie in [boxMin, boxMax);
	// violating this is a programmer error reported as
	// InvariantViolationError.
	Add(p Particle) error

	// AddHalo inserts a halo particle. Its position must lie outside
	// [boxMin, boxMax); violating this is reported the same way.
	AddHalo(p Particle) error

	// UpdateHalo looks for a previously-added halo particle with the same
	// id and overwrites its state from p, returning whether one was
	// found. Callers that get false typically fall back to AddHalo.
	UpdateHalo(p Particle) (found bool, err error)

	// DeleteHalo discards every halo particle.
	DeleteHalo()

	// Update repartitions owned particles that drifted out of their
	// owning cell since the last call, and returns every particle whose
	// position is now outside [boxMin, boxMax).
	Update() []Particle

	// IsUpdateNeeded reports whether a neighbor-list substrate (if any)
	// requires a rebuild before the next IteratePairwise call.
	IsUpdateNeeded() bool

	// Iterate returns an iterator over every particle matching behavior.
	Iterate(behavior IteratorBehavior) *Iterator

	// RegionIterate returns an iterator over every particle in [lo, hi]
	// matching behavior.
	RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator

	// IteratePairwise runs traversal, invoking functor for every particle
	// pair within interaction length exactly once. Returns
	// ConfigurationError if traversal is not applicable to this container
	// in its current state.
	IteratePairwise(traversal Traversal, functor Functor) error

	// RebuildNeighborLists forces an immediate neighbor-list rebuild
	// (Verlet variants) or is a no-op (DirectSum, LinkedCells).
	RebuildNeighborLists(traversal Traversal) error

	// Kind reports which ContainerOption this value implements.
	Kind() ContainerOption

	// CutoffAndSkin returns the cutoff and skin this container was built
	// with, from which interaction length is derived.
	CutoffAndSkin() (cutoff, skin float64)

	// NumParticles counts particles matching behavior.
	NumParticles(behavior IteratorBehavior) int
}

// cellBlockOwner is implemented by containers backed by a regular 3D grid
// (LinkedCells and its reference variant); traversals that operate over a
// grid use it instead of type-switching on the concrete container.
type cellBlockOwner interface {
	GetCellBlock() *CellBlock3D
}

func interactionLength(cutoff, skin float64) float64 { return cutoff + skin }
