package autopas

// VerletLists maintains a per-particle neighbor list built from an
// internal LinkedCells substrate. Update repartitions the substrate
// whenever it is called, rebuilds or not; the stored lists hold particle
// references rather than cell positions. Iteration over particles is
// always allowed, but interaction only ever uses the stored lists, not a
// fresh geometric query.
type VerletLists struct {
	substrate *LinkedCells
	skin      float64

	neighbors    map[uint64][]Particle
	buildR       map[uint64]Vec3
	rebuildEvery int
	sinceRebuild int
}

func NewVerletLists(boxMin, boxMax Vec3, cutoff, skin float64, cellSizeFactor float64, rebuildFrequency int) *VerletLists {
	return &VerletLists{
		substrate:    NewLinkedCells(boxMin, boxMax, cutoff, skin, cellSizeFactor),
		skin:         skin,
		neighbors:    make(map[uint64][]Particle),
		buildR:       make(map[uint64]Vec3),
		rebuildEvery: rebuildFrequency,
	}
}

func (v *VerletLists) Kind() ContainerOption             { return ContainerVerletLists }
func (v *VerletLists) CutoffAndSkin() (float64, float64) { return v.substrate.CutoffAndSkin() }

func (v *VerletLists) Add(p Particle) error      { return v.substrate.Add(p) }
func (v *VerletLists) AddHalo(p Particle) error  { return v.substrate.AddHalo(p) }
func (v *VerletLists) UpdateHalo(p Particle) (bool, error) { return v.substrate.UpdateHalo(p) }
func (v *VerletLists) DeleteHalo()               { v.substrate.DeleteHalo() }

// Update repartitions the substrate and returns the particles that left
// the domain. Drift since the last build is checked by IsUpdateNeeded,
// not here.
func (v *VerletLists) Update() []Particle {
	left := v.substrate.Update()
	return left
}

func (v *VerletLists) IsUpdateNeeded() bool {
	if v.sinceRebuild >= v.rebuildEvery && v.rebuildEvery > 0 {
		return true
	}
	halfSkin := v.skin / 2
	needed := false
	v.substrate.cellBlock.ForEachCellIndex1D(func(idx int) {
		if needed {
			return
		}
		for _, p := range v.substrate.cellBlock.CellByIndex1D(idx).Particles(false) {
			if !p.IsOwned() {
				continue
			}
			built, ok := v.buildR[p.GetID()]
			if !ok {
				needed = true
				return
			}
			if built.Sub(p.GetR()).Len() > halfSkin {
				needed = true
				return
			}
		}
	})
	return needed
}

// RebuildNeighborLists rebuilds every owned particle's candidate-partner
// list from the current substrate state: idempotent if
// nothing moved, since the list contents depend only on current positions.
func (v *VerletLists) RebuildNeighborLists(Traversal) error {
	cutoff, skin := v.substrate.CutoffAndSkin()
	il := interactionLength(cutoff, skin)
	il2 := il * il

	owned := v.substrate.allParticles(false)
	v.neighbors = make(map[uint64][]Particle, len(owned))
	v.buildR = make(map[uint64]Vec3, len(owned))

	all := v.substrate.allParticles(false)
	for _, p := range owned {
		if !p.IsOwned() {
			continue
		}
		var list []Particle
		pr := p.GetR()
		for _, q := range all {
			if q.GetID() == p.GetID() {
				continue
			}
			d := pr.Sub(q.GetR())
			if d.Dot(d) <= il2 {
				list = append(list, q)
			}
		}
		v.neighbors[p.GetID()] = list
		v.buildR[p.GetID()] = pr
	}
	v.sinceRebuild = 0
	return nil
}

func (v *VerletLists) Iterate(behavior IteratorBehavior) *Iterator {
	return v.substrate.Iterate(behavior)
}

func (v *VerletLists) RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	return v.substrate.RegionIterate(lo, hi, behavior)
}

func (v *VerletLists) NumParticles(behavior IteratorBehavior) int {
	return v.substrate.NumParticles(behavior)
}

func (v *VerletLists) IteratePairwise(traversal Traversal, functor Functor) error {
	vt, ok := traversal.(*VerletListTraversal)
	if !ok || !traversal.IsApplicable() {
		return &ConfigurationError{Container: ContainerVerletLists, Traversal: traversal.GetTraversalType(), Reason: "traversal not applicable to VerletLists"}
	}
	if v.IsUpdateNeeded() {
		if err := v.RebuildNeighborLists(traversal); err != nil {
			return err
		}
	}
	vt.container = v
	traversal.InitTraversal()
	traversal.TraverseParticlePairs()
	traversal.EndTraversal()
	v.sinceRebuild++
	return nil
}

// neighborsOf returns the candidate partners recorded for particle id at
// the last rebuild.
func (v *VerletLists) neighborsOf(id uint64) []Particle { return v.neighbors[id] }

func (v *VerletLists) ownedParticles() []Particle {
	var owned []Particle
	for _, p := range v.substrate.allParticles(false) {
		if p.IsOwned() {
			owned = append(owned, p)
		}
	}
	return owned
}
