package autopas

// Functor is the capability the user's pair-interaction kernel must
// expose. The core never evaluates physics itself; it only ever calls
// through this interface and never reaches into a particle's fields
// directly.
//
// newton3 is passed explicitly on every AoS call so a single functor value
// can serve both Newton-3-on and Newton-3-off traversals without branching
// on hidden state.
type Functor interface {
	// AoSPair evaluates the kernel for a single ordered pair (i, j).
	// When newton3 is true the functor updates both particles' forces
	// from one call; when false, only i's force is updated and the
	// caller is expected to invoke the reverse-ordered pair itself to
	// cover j's side.
	AoSPair(i, j Particle, newton3 bool)

	// SoAPairSelf evaluates every unique pair within a single SoA
	// buffer. Unlike AoSPair there is no reverse-ordered call the caller
	// can make for a self-cell: the whole cell is one task, so when
	// newton3 is false the implementation itself must still update both
	// particles of every pair (e.g. by summing over every ordered pair
	// rather than just i<j) or force on one side of each pair is lost.
	SoAPairSelf(buf *SoABuffer, newton3 bool)

	// SoAPairCross evaluates all pairs between two SoA buffers. Mirrors
	// AoSPair's newton3 contract: false updates only buf1, and the
	// caller invokes the buffer-swapped call to cover buf2's side.
	SoAPairCross(buf1, buf2 *SoABuffer, newton3 bool)

	// SoAVerlet evaluates particle i in buf against the given neighbor
	// indices (indices into the same buffer, used by Verlet-list
	// traversals). Follows AoSPair's contract per neighbor: when newton3
	// is false only i's force is updated here, and any owned neighbor j
	// gets its own reaction from its own call to SoAVerlet, since
	// neighbor lists are built symmetrically (j's list also includes i).
	SoAVerlet(buf *SoABuffer, i int, neighbors []int, newton3 bool)

	// SoALoad lists the attribute handles this functor needs gathered
	// into an SoA buffer before a SoA-path call.
	SoALoad() []AttributeHandle

	// SoAComputed lists the attribute handles this functor writes; only
	// these are scattered back into AoS by ExtractSoA.
	SoAComputed() []AttributeHandle

	// AllowsNewton3 reports whether this functor can be called with
	// newton3=true.
	AllowsNewton3() bool

	// AllowsNonNewton3 reports whether this functor can be called with
	// newton3=false.
	AllowsNonNewton3() bool

	// IsAppropriateClusterSize reports whether this functor can be used
	// with a given fixed cluster width and data layout (VerletClusterLists
	// is only ever built with width 4; a functor that requires a wider
	// SIMD lane would reject it here).
	IsAppropriateClusterSize(width int, layout DataLayoutOption) bool

	// IsRelevantForTuning reports whether iterations using this functor
	// should feed the auto-tuner at all; a functor that is only used for
	// one-off diagnostics can opt out.
	IsRelevantForTuning() bool
}
