package autopas

// c08Offsets are the 13 neighbor-cell offsets forming the forward half of
// a 3x3x3 neighborhood: together with the
// self-cell that is 14 tasks per base cell, and applying the base step at
// every cell in range covers every unordered pair exactly once.
var c08Offsets = computeC08Offsets()

func computeC08Offsets() [][3]int {
	var offsets [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if dz > 0 || (dz == 0 && dy > 0) || (dz == 0 && dy == 0 && dx > 0) {
					offsets = append(offsets, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return offsets
}

// C08Traversal applies the c08 base step across the grid, parallelized by
// an 8-coloring of (x,y,z) mod 2: cells sharing a color have disjoint
// write sets by construction, so the traversal processes one color at a
// time and fans each color's cells out across goroutines via parallelFor.
type C08Traversal struct {
	baseTraversal
	cb *CellBlock3D
	cf *CellFunctor

	colorBuckets [8][]int // flat cell indices for base cells, by color
}

func NewC08Traversal(f Functor, layout DataLayoutOption, newton3 bool) *C08Traversal {
	return &C08Traversal{
		baseTraversal: baseTraversal{dataLayout: layout, newton3: newton3, kind: TraversalC08, functor: f},
		cf:            NewCellFunctor(f, layout, newton3),
	}
}

func (t *C08Traversal) bindCellBlock(cb *CellBlock3D) {
	t.cb = cb
	t.buildColorBuckets()
}

func (t *C08Traversal) buildColorBuckets() {
	for i := range t.colorBuckets {
		t.colorBuckets[i] = nil
	}
	dims := t.cb.DimsWithHalo()
	for x := 0; x < dims[0]; x++ {
		for y := 0; y < dims[1]; y++ {
			for z := 0; z < dims[2]; z++ {
				color := (x % 2) + 2*(y%2) + 4*(z%2)
				idx := t.cb.index3DToIndex1D(x, y, z)
				t.colorBuckets[color] = append(t.colorBuckets[color], idx)
			}
		}
	}
}

func (t *C08Traversal) IsApplicable() bool {
	if !newton3Applicable(t.functor, t.newton3) {
		return false
	}
	dims := t.cb.DimsWithHalo()
	return dims[0] >= 2 && dims[1] >= 2 && dims[2] >= 2
}

func (t *C08Traversal) InitTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.cb.ForEachCellIndex1D(func(idx int) {
		t.cb.CellByIndex1D(idx).LoadSoA(t.functor)
	})
}

func (t *C08Traversal) EndTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.cb.ForEachCellIndex1D(func(idx int) {
		t.cb.CellByIndex1D(idx).ExtractSoA(t.functor)
	})
}

func (t *C08Traversal) TraverseParticlePairs() {
	for _, bucket := range t.colorBuckets {
		if len(bucket) == 0 {
			continue
		}
		_ = parallelForEach(bucket, func(idx int) {
			t.processBaseCell(idx)
		})
	}
}

func (t *C08Traversal) processBaseCell(idx int) {
	x, y, z := t.cb.Index1DToIndex3D(idx)
	base := t.cb.CellByIndex1D(idx)
	t.cf.ProcessCell(base)
	for _, off := range c08Offsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		dims := t.cb.DimsWithHalo()
		if nx < 0 || ny < 0 || nz < 0 || nx >= dims[0] || ny >= dims[1] || nz >= dims[2] {
			continue
		}
		neighbor := t.cb.CellAt(nx, ny, nz)
		t.cf.ProcessCellPair(base, neighbor)
	}
}
