package autopas

// LinkedCells stores particles directly inside the cell matching their
// coordinate. Moving particles may leave their owning cell
// between calls to Update; Update repartitions by pulling out every
// particle no longer in its cell and re-inserting it into the correct one,
// returning particles that left the domain entirely.
type LinkedCells struct {
	cellBlock      *CellBlock3D
	cutoff, skin   float64
	cellSizeFactor float64
}

func NewLinkedCells(boxMin, boxMax Vec3, cutoff, skin, cellSizeFactor float64) *LinkedCells {
	il := interactionLength(cutoff, skin)
	return &LinkedCells{
		cellBlock:      NewCellBlock3D(boxMin, boxMax, il, cellSizeFactor),
		cutoff:         cutoff,
		skin:           skin,
		cellSizeFactor: cellSizeFactor,
	}
}

func (lc *LinkedCells) Kind() ContainerOption         { return ContainerLinkedCells }
func (lc *LinkedCells) CutoffAndSkin() (float64, float64) { return lc.cutoff, lc.skin }
func (lc *LinkedCells) GetCellBlock() *CellBlock3D    { return lc.cellBlock }

func (lc *LinkedCells) Add(p Particle) error {
	cb := lc.cellBlock
	if !cb.IsInsideOwned(p.GetR()) {
		return &InvariantViolationError{Invariant: "owned particle outside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Owned)
	x, y, z := cb.CellIndexOf(p.GetR())
	cb.CellAt(x, y, z).Add(p)
	return nil
}

func (lc *LinkedCells) AddHalo(p Particle) error {
	cb := lc.cellBlock
	if cb.IsInsideOwned(p.GetR()) {
		return &InvariantViolationError{Invariant: "halo particle inside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Halo)
	x, y, z := cb.CellIndexOf(p.GetR())
	cb.CellAt(x, y, z).Add(p)
	return nil
}

func (lc *LinkedCells) UpdateHalo(p Particle) (bool, error) {
	cb := lc.cellBlock
	x, y, z := cb.CellIndexOf(p.GetR())
	cell := cb.CellAt(x, y, z)
	for _, existing := range cell.Particles(true) {
		if existing.IsHalo() && existing.GetID() == p.GetID() {
			existing.SetR(p.GetR())
			existing.SetV(p.GetV())
			return true, nil
		}
	}
	// Fall back to a full halo scan: the particle may have drifted into a
	// different halo cell since it was last added.
	found := false
	cb.ForEachCellIndex1D(func(idx int) {
		if found {
			return
		}
		c := cb.CellByIndex1D(idx)
		for _, existing := range c.Particles(true) {
			if existing.IsHalo() && existing.GetID() == p.GetID() {
				existing.SetR(p.GetR())
				existing.SetV(p.GetV())
				found = true
				return
			}
		}
	})
	return found, nil
}

func (lc *LinkedCells) DeleteHalo() {
	cb := lc.cellBlock
	dims := cb.DimsWithHalo()
	owned := cb.CellsPerDim()
	for x := 0; x < dims[0]; x++ {
		for y := 0; y < dims[1]; y++ {
			for z := 0; z < dims[2]; z++ {
				if cb.IsOwnedCell(x, y, z) {
					continue
				}
				_ = owned
				cb.CellAt(x, y, z).Clear()
			}
		}
	}
}

// Update repartitions owned cells: every particle that drifted out of its
// owning cell is pulled out, then re-inserted into the correct cell (or,
// if it left [boxMin,boxMax), returned to the caller).
func (lc *LinkedCells) Update() []Particle {
	cb := lc.cellBlock
	dims := cb.DimsWithHalo()
	type displaced struct {
		p Particle
	}
	var strays []Particle
	var leftDomain []Particle

	for x := 0; x < dims[0]; x++ {
		for y := 0; y < dims[1]; y++ {
			for z := 0; z < dims[2]; z++ {
				cell := cb.CellAt(x, y, z)
				if !cb.IsOwnedCell(x, y, z) {
					cell.RemoveIf(func(p Particle) bool { return p.IsDummy() })
					continue
				}
				moved := cell.RemoveIf(func(p Particle) bool {
					if p.IsDummy() {
						return true
					}
					ox, oy, oz := cb.CellIndexOf(p.GetR())
					return ox != x || oy != y || oz != z
				})
				strays = append(strays, moved...)
			}
		}
	}

	for _, p := range strays {
		if p.IsDummy() {
			continue
		}
		if !cb.IsInsideOwned(p.GetR()) {
			leftDomain = append(leftDomain, p)
			continue
		}
		x, y, z := cb.CellIndexOf(p.GetR())
		cb.CellAt(x, y, z).Add(p)
	}
	return leftDomain
}

func (lc *LinkedCells) IsUpdateNeeded() bool { return false }

func (lc *LinkedCells) RebuildNeighborLists(Traversal) error { return nil }

func (lc *LinkedCells) allParticles(includeDummies bool) []Particle {
	var out []Particle
	lc.cellBlock.ForEachCellIndex1D(func(idx int) {
		out = append(out, lc.cellBlock.CellByIndex1D(idx).Particles(includeDummies)...)
	})
	return out
}

func (lc *LinkedCells) Iterate(behavior IteratorBehavior) *Iterator {
	return newIterator(lc.allParticles(behavior == OwnedOrHaloOrDummy), behavior)
}

func (lc *LinkedCells) RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	all := lc.allParticles(behavior == OwnedOrHaloOrDummy)
	var filtered []Particle
	for _, p := range all {
		if regionContains(lo, hi, p.GetR()) {
			filtered = append(filtered, p)
		}
	}
	return newIterator(filtered, behavior)
}

func (lc *LinkedCells) NumParticles(behavior IteratorBehavior) int {
	it := lc.Iterate(behavior)
	n := 0
	for it.Valid() {
		n++
		it.Next()
	}
	return n
}

func (lc *LinkedCells) IteratePairwise(traversal Traversal, functor Functor) error {
	gt, ok := traversal.(gridTraversal)
	if !ok || !traversal.IsApplicable() {
		return &ConfigurationError{Container: ContainerLinkedCells, Traversal: traversal.GetTraversalType(), Reason: "traversal not applicable to LinkedCells"}
	}
	gt.bindCellBlock(lc.cellBlock)
	traversal.InitTraversal()
	traversal.TraverseParticlePairs()
	traversal.EndTraversal()
	return nil
}

// gridTraversal is implemented by every traversal that drives a regular
// CellBlock3D grid (c08, sliced, balancedSliced, c18); it lets
// LinkedCells and its reference variant bind the grid without a type
// switch per traversal kind.
type gridTraversal interface {
	bindCellBlock(cb *CellBlock3D)
}
