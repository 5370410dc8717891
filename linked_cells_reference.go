package autopas

// ReferenceLinkedCells stores every particle in one central slice and
// places *references* (indices) into cells, rather than copying particles
// into their owning cell's own storage. This makes whole-domain resorts cheap: Update only needs
// to recompute which cell each index belongs to, never moving the
// particle's backing memory.
//
// The central vector exposes a "dirty" flag; cells' reference lists are
// rebuilt in bulk only when dirty, so repeated Iterate/RegionIterate calls
// between structural changes are free of rebuild cost.
type ReferenceLinkedCells struct {
	cellBlock    *CellBlock3D
	cutoff, skin float64

	storage []Particle
	dirty   bool
	// refs[cellIndex1D] = indices into storage
	refs [][]int
}

func NewReferenceLinkedCells(boxMin, boxMax Vec3, cutoff, skin, cellSizeFactor float64) *ReferenceLinkedCells {
	il := interactionLength(cutoff, skin)
	cb := NewCellBlock3D(boxMin, boxMax, il, cellSizeFactor)
	return &ReferenceLinkedCells{
		cellBlock: cb,
		cutoff:    cutoff,
		skin:      skin,
		refs:      make([][]int, cb.NumCells()),
	}
}

func (rc *ReferenceLinkedCells) Kind() ContainerOption         { return ContainerLinkedCellsReferences }
func (rc *ReferenceLinkedCells) CutoffAndSkin() (float64, float64) { return rc.cutoff, rc.skin }
func (rc *ReferenceLinkedCells) GetCellBlock() *CellBlock3D    { return rc.cellBlock }

func (rc *ReferenceLinkedCells) Add(p Particle) error {
	if !rc.cellBlock.IsInsideOwned(p.GetR()) {
		return &InvariantViolationError{Invariant: "owned particle outside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Owned)
	rc.storage = append(rc.storage, p)
	rc.dirty = true
	return nil
}

func (rc *ReferenceLinkedCells) AddHalo(p Particle) error {
	if rc.cellBlock.IsInsideOwned(p.GetR()) {
		return &InvariantViolationError{Invariant: "halo particle inside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Halo)
	rc.storage = append(rc.storage, p)
	rc.dirty = true
	return nil
}

func (rc *ReferenceLinkedCells) UpdateHalo(p Particle) (bool, error) {
	for _, existing := range rc.storage {
		if existing.IsHalo() && existing.GetID() == p.GetID() {
			existing.SetR(p.GetR())
			existing.SetV(p.GetV())
			rc.dirty = true
			return true, nil
		}
	}
	return false, nil
}

func (rc *ReferenceLinkedCells) DeleteHalo() {
	kept := rc.storage[:0:0]
	for _, p := range rc.storage {
		if !p.IsHalo() {
			kept = append(kept, p)
		}
	}
	rc.storage = kept
	rc.dirty = true
}

// rebuildReferences recomputes refs from storage in bulk; a no-op if not
// dirty.
func (rc *ReferenceLinkedCells) rebuildReferences() {
	if !rc.dirty {
		return
	}
	for i := range rc.refs {
		rc.refs[i] = rc.refs[i][:0]
	}
	cb := rc.cellBlock
	for i, p := range rc.storage {
		if p.IsDummy() {
			continue
		}
		x, y, z := cb.CellIndexOf(p.GetR())
		idx := cb.index3DToIndex1D(x, y, z)
		rc.refs[idx] = append(rc.refs[idx], i)
	}
	rc.dirty = false
}

func (rc *ReferenceLinkedCells) Update() []Particle {
	cb := rc.cellBlock
	var leftDomain []Particle
	kept := rc.storage[:0:0]
	for _, p := range rc.storage {
		if p.IsDummy() {
			continue
		}
		if p.IsOwned() && !cb.IsInsideOwned(p.GetR()) {
			leftDomain = append(leftDomain, p)
			continue
		}
		kept = append(kept, p)
	}
	rc.storage = kept
	rc.dirty = true
	rc.rebuildReferences()
	return leftDomain
}

func (rc *ReferenceLinkedCells) IsUpdateNeeded() bool { return rc.dirty }

func (rc *ReferenceLinkedCells) RebuildNeighborLists(Traversal) error {
	rc.rebuildReferences()
	return nil
}

func (rc *ReferenceLinkedCells) Iterate(behavior IteratorBehavior) *Iterator {
	return newIterator(rc.storage, behavior)
}

func (rc *ReferenceLinkedCells) RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	var filtered []Particle
	for _, p := range rc.storage {
		if regionContains(lo, hi, p.GetR()) {
			filtered = append(filtered, p)
		}
	}
	return newIterator(filtered, behavior)
}

func (rc *ReferenceLinkedCells) NumParticles(behavior IteratorBehavior) int {
	it := rc.Iterate(behavior)
	n := 0
	for it.Valid() {
		n++
		it.Next()
	}
	return n
}

// cellParticles returns, for a flat cell index, the particles its
// reference list points at. Not part of the Container interface: only
// IteratePairwise uses it, to fill the shadow cells a traversal runs on.
func (rc *ReferenceLinkedCells) cellParticles(idx int) []Particle {
	rc.rebuildReferences()
	refs := rc.refs[idx]
	out := make([]Particle, len(refs))
	for i, r := range refs {
		out[i] = rc.storage[r]
	}
	return out
}

func (rc *ReferenceLinkedCells) IteratePairwise(traversal Traversal, functor Functor) error {
	if _, ok := traversal.(gridTraversal); !ok || !traversal.IsApplicable() {
		return &ConfigurationError{Container: ContainerLinkedCellsReferences, Traversal: traversal.GetTraversalType(), Reason: "traversal not applicable to ReferenceLinkedCells"}
	}
	rc.rebuildReferences()
	// The reference variant materializes temporary owning Cells for the
	// duration of one traversal so the existing grid traversals (which
	// bind a *CellBlock3D of *Cell) can drive it unmodified; this keeps
	// one traversal implementation serving both container flavors.
	shadow := NewCellBlock3D(rc.cellBlock.boxMin, rc.cellBlock.boxMax, rc.cellBlock.interactionLength, rc.cellBlock.cellSizeFactor)
	for idx := 0; idx < rc.cellBlock.NumCells(); idx++ {
		for _, p := range rc.cellParticles(idx) {
			shadow.CellByIndex1D(idx).Add(p)
		}
	}
	gt := traversal.(gridTraversal)
	gt.bindCellBlock(shadow)
	traversal.InitTraversal()
	traversal.TraverseParticlePairs()
	traversal.EndTraversal()
	return nil
}
