package autopas

// IteratorBehavior selects which ownership classes an iterator surfaces.
// The zero value, OwnedOnly, is the common case for physics loops that
// must never touch halo copies.
type IteratorBehavior int

const (
	OwnedOnly IteratorBehavior = iota
	HaloOnly
	OwnedOrHalo
	OwnedOrHaloOrDummy
)

func (b IteratorBehavior) matches(p Particle) bool {
	switch b {
	case OwnedOnly:
		return p.IsOwned()
	case HaloOnly:
		return p.IsHalo()
	case OwnedOrHalo:
		return p.IsOwned() || p.IsHalo()
	case OwnedOrHaloOrDummy:
		return true
	default:
		return false
	}
}

// Contains reports whether p's ownership is included in this behavior's
// set.
func (b IteratorBehavior) Contains(p Particle) bool { return b.matches(p) }

// Iterator walks particles a container exposes, filtered by behavior.
// It borrows the underlying storage; it must not outlive structural
// mutation of the container.
type Iterator struct {
	particles []Particle
	pos       int
}

func newIterator(all []Particle, behavior IteratorBehavior) *Iterator {
	filtered := make([]Particle, 0, len(all))
	for _, p := range all {
		if behavior.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return &Iterator{particles: filtered}
}

// Valid reports whether Get would return a particle.
func (it *Iterator) Valid() bool { return it.pos < len(it.particles) }

// Get returns the current particle.
func (it *Iterator) Get() Particle { return it.particles[it.pos] }

// Next advances the iterator.
func (it *Iterator) Next() { it.pos++ }

// Deleted marks the current particle dummy in place; the container
// compacts dummies away on its next Update call.
func (it *Iterator) Deleted() {
	it.particles[it.pos].SetOwnershipState(Dummy)
}

// ForEach applies fn to every particle an iterator would yield.
func ForEach(it *Iterator, fn func(Particle)) {
	for it.Valid() {
		fn(it.Get())
		it.Next()
	}
}

// Reduce folds fn over every particle an iterator would yield, in the
// same order ForEach would visit them.
func Reduce[T any](it *Iterator, init T, fn func(T, Particle) T) T {
	acc := init
	for it.Valid() {
		acc = fn(acc, it.Get())
		it.Next()
	}
	return acc
}

// regionContains reports whether pos lies in the closed box [lo, hi].
func regionContains(lo, hi, pos Vec3) bool {
	return pos.X() >= lo.X() && pos.X() <= hi.X() &&
		pos.Y() >= lo.Y() && pos.Y() <= hi.Y() &&
		pos.Z() >= lo.Z() && pos.Z() <= hi.Z()
}
