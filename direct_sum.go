package autopas

// DirectSum is one owned cell plus one halo cell; O(N^2) but it is the
// correctness baseline every other container's forces are checked against.
type DirectSum struct {
	boxMin, boxMax Vec3
	cutoff, skin   float64
	owned          *Cell
	halo           *Cell
}

func NewDirectSum(boxMin, boxMax Vec3, cutoff, skin float64) *DirectSum {
	return &DirectSum{
		boxMin: boxMin,
		boxMax: boxMax,
		cutoff: cutoff,
		skin:   skin,
		owned:  NewCell(),
		halo:   NewCell(),
	}
}

func (d *DirectSum) Kind() ContainerOption { return ContainerDirectSum }

func (d *DirectSum) CutoffAndSkin() (float64, float64) { return d.cutoff, d.skin }

// insideBox reports whether pos lies in the half-open box [boxMin, boxMax).
func insideBox(boxMin, boxMax, pos Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		v := axisOf(pos, axis)
		if v < axisOf(boxMin, axis) || v >= axisOf(boxMax, axis) {
			return false
		}
	}
	return true
}

func (d *DirectSum) Add(p Particle) error {
	if !insideBox(d.boxMin, d.boxMax, p.GetR()) {
		return &InvariantViolationError{Invariant: "owned particle outside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Owned)
	d.owned.Add(p)
	return nil
}

func (d *DirectSum) AddHalo(p Particle) error {
	if insideBox(d.boxMin, d.boxMax, p.GetR()) {
		return &InvariantViolationError{Invariant: "halo particle inside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Halo)
	d.halo.Add(p)
	return nil
}

func (d *DirectSum) UpdateHalo(p Particle) (bool, error) {
	for _, existing := range d.halo.Particles(true) {
		if existing.GetID() == p.GetID() {
			existing.SetR(p.GetR())
			existing.SetV(p.GetV())
			return true, nil
		}
	}
	return false, nil
}

func (d *DirectSum) DeleteHalo() { d.halo.Clear() }

func (d *DirectSum) Update() []Particle {
	removed := d.owned.RemoveIf(func(p Particle) bool {
		return p.IsDummy() || !insideBox(d.boxMin, d.boxMax, p.GetR())
	})
	d.halo.RemoveIf(func(p Particle) bool { return p.IsDummy() })
	var left []Particle
	for _, p := range removed {
		if !p.IsDummy() {
			left = append(left, p)
		}
	}
	return left
}

func (d *DirectSum) IsUpdateNeeded() bool { return false }

func (d *DirectSum) RebuildNeighborLists(Traversal) error { return nil }

func (d *DirectSum) allParticles(includeDummies bool) []Particle {
	all := d.owned.Particles(includeDummies)
	all = append(all, d.halo.Particles(includeDummies)...)
	return all
}

func (d *DirectSum) Iterate(behavior IteratorBehavior) *Iterator {
	return newIterator(d.allParticles(behavior == OwnedOrHaloOrDummy), behavior)
}

func (d *DirectSum) RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	all := d.allParticles(behavior == OwnedOrHaloOrDummy)
	var filtered []Particle
	for _, p := range all {
		if regionContains(lo, hi, p.GetR()) {
			filtered = append(filtered, p)
		}
	}
	return newIterator(filtered, behavior)
}

func (d *DirectSum) NumParticles(behavior IteratorBehavior) int {
	it := d.Iterate(behavior)
	n := 0
	for it.Valid() {
		n++
		it.Next()
	}
	return n
}

func (d *DirectSum) IteratePairwise(traversal Traversal, functor Functor) error {
	dt, ok := traversal.(*DirectSumTraversal)
	if !ok || !traversal.IsApplicable() {
		return &ConfigurationError{Container: ContainerDirectSum, Traversal: traversal.GetTraversalType(), Reason: "traversal not applicable to DirectSum"}
	}
	dt.owned = d.owned
	dt.halo = d.halo
	traversal.InitTraversal()
	traversal.TraverseParticlePairs()
	traversal.EndTraversal()
	return nil
}
