package autopas

import "sync"

// LoadEstimator selects how BalancedSlicedTraversal weighs cells when
// choosing slab boundaries.
type LoadEstimator int

const (
	LoadEstimatorNone LoadEstimator = iota
	LoadEstimatorSquaredCellSize
)

// SlicedTraversal cuts the grid's longest dimension into one slab per
// thread; each thread owns its slab and runs the c08 base step over it.
// A mutex per slab boundary serializes only the cross-slab pairs, so the
// interior of each slab is never blocked.
type SlicedTraversal struct {
	baseTraversal
	cb            *CellBlock3D
	cf            *CellFunctor
	loadEstimator LoadEstimator

	sliceAxis   int
	boundaries  []int // slab start coordinates along sliceAxis, len = workers+1
	wallLocks   []sync.Mutex
}

func NewSlicedTraversal(f Functor, layout DataLayoutOption, newton3 bool) *SlicedTraversal {
	return &SlicedTraversal{
		baseTraversal: baseTraversal{dataLayout: layout, newton3: newton3, kind: TraversalSliced, functor: f},
		cf:            NewCellFunctor(f, layout, newton3),
	}
}

func NewBalancedSlicedTraversal(f Functor, layout DataLayoutOption, newton3 bool, estimator LoadEstimator) *SlicedTraversal {
	t := NewSlicedTraversal(f, layout, newton3)
	t.kind = TraversalBalancedSliced
	t.loadEstimator = estimator
	return t
}

func (t *SlicedTraversal) bindCellBlock(cb *CellBlock3D) {
	t.cb = cb
	t.planSlabs()
}

func (t *SlicedTraversal) longestAxis() int {
	dims := t.cb.DimsWithHalo()
	axis := 0
	for a := 1; a < 3; a++ {
		if dims[a] > dims[axis] {
			axis = a
		}
	}
	return axis
}

// planSlabs decides slab boundaries along the longest axis. With
// LoadEstimatorNone every slab gets an equal number of cells; with
// LoadEstimatorSquaredCellSize slabs are sized so each carries
// approximately equal sum-of-squared-cell-particle-counts, a proxy for
// pair count.
func (t *SlicedTraversal) planSlabs() {
	t.sliceAxis = t.longestAxis()
	dims := t.cb.DimsWithHalo()
	upper := dims[t.sliceAxis] // matches c08's loop bound
	if upper < 1 {
		upper = 1
	}
	workers := numWorkers(upper)
	if workers < 1 {
		workers = 1
	}

	if t.loadEstimator == LoadEstimatorSquaredCellSize {
		t.boundaries = t.planSlabsByLoad(upper, workers)
	} else {
		t.boundaries = make([]int, workers+1)
		chunk := upper / workers
		rem := upper % workers
		pos := 0
		for w := 0; w < workers; w++ {
			t.boundaries[w] = pos
			size := chunk
			if w < rem {
				size++
			}
			pos += size
		}
		t.boundaries[workers] = upper
	}
	t.wallLocks = make([]sync.Mutex, len(t.boundaries))
}

func (t *SlicedTraversal) planSlabsByLoad(upper, workers int) []int {
	dims := t.cb.DimsWithHalo()
	otherAxes := [2]int{}
	k := 0
	for a := 0; a < 3; a++ {
		if a != t.sliceAxis {
			otherAxes[k] = a
			k++
		}
	}
	load := make([]int, upper)
	for c := 0; c < upper; c++ {
		var sum int
		// Sum squared particle counts of every cell whose sliced-axis
		// coordinate is c, across the other two axes.
		for a := 0; a < dims[otherAxes[0]]; a++ {
			for b := 0; b < dims[otherAxes[1]]; b++ {
				x, y, z := t.coordsFor(c, a, b, otherAxes)
				n := t.cb.CellAt(x, y, z).Size()
				sum += n * n
			}
		}
		load[c] = sum
	}
	total := 0
	for _, v := range load {
		total += v
	}
	target := total / workers
	boundaries := make([]int, 0, workers+1)
	boundaries = append(boundaries, 0)
	acc := 0
	for c := 0; c < upper && len(boundaries) < workers; c++ {
		acc += load[c]
		if acc >= target*(len(boundaries)) && c > boundaries[len(boundaries)-1] {
			boundaries = append(boundaries, c)
		}
	}
	for len(boundaries) < workers+1 {
		boundaries = append(boundaries, upper)
	}
	boundaries[len(boundaries)-1] = upper
	return boundaries
}

func (t *SlicedTraversal) IsApplicable() bool {
	if !newton3Applicable(t.functor, t.newton3) {
		return false
	}
	dims := t.cb.DimsWithHalo()
	// A zero-area slab is an error, not
	// silently tolerated: reject if any dimension collapses to nothing.
	return dims[0] >= 2 && dims[1] >= 2 && dims[2] >= 2
}

func (t *SlicedTraversal) InitTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.cb.ForEachCellIndex1D(func(idx int) {
		t.cb.CellByIndex1D(idx).LoadSoA(t.functor)
	})
}

func (t *SlicedTraversal) EndTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.cb.ForEachCellIndex1D(func(idx int) {
		t.cb.CellByIndex1D(idx).ExtractSoA(t.functor)
	})
}

func (t *SlicedTraversal) TraverseParticlePairs() {
	workers := len(t.boundaries) - 1
	_ = parallelFor(workers, func(w int) {
		t.processSlab(w)
	})
}

func (t *SlicedTraversal) processSlab(w int) {
	dims := t.cb.DimsWithHalo()
	lo, hi := t.boundaries[w], t.boundaries[w+1]
	otherAxes := [2]int{}
	k := 0
	for a := 0; a < 3; a++ {
		if a != t.sliceAxis {
			otherAxes[k] = a
			k++
		}
	}
	for c := lo; c < hi; c++ {
		for a := 0; a < dims[otherAxes[0]]; a++ {
			for b := 0; b < dims[otherAxes[1]]; b++ {
				x, y, z := t.coordsFor(c, a, b, otherAxes)
				t.processBaseCell(x, y, z, w, lo, hi)
			}
		}
	}
}

func (t *SlicedTraversal) coordsFor(sliceCoord, a, b int, otherAxes [2]int) (x, y, z int) {
	coords := [3]int{}
	coords[t.sliceAxis] = sliceCoord
	coords[otherAxes[0]] = a
	coords[otherAxes[1]] = b
	return coords[0], coords[1], coords[2]
}

func (t *SlicedTraversal) processBaseCell(x, y, z, worker, slabLo, slabHi int) {
	base := t.cb.CellAt(x, y, z)
	t.cf.ProcessCell(base)
	dims := t.cb.DimsWithHalo()
	sliceCoord := [3]int{x, y, z}[t.sliceAxis]
	atUpperWall := sliceCoord == slabHi-1

	for _, off := range c08Offsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if nx < 0 || ny < 0 || nz < 0 || nx >= dims[0] || ny >= dims[1] || nz >= dims[2] {
			continue
		}
		neighbor := t.cb.CellAt(nx, ny, nz)
		neighborSliceCoord := [3]int{nx, ny, nz}[t.sliceAxis]
		crossesWall := atUpperWall && neighborSliceCoord >= slabHi
		if crossesWall {
			t.wallLocks[worker+1].Lock()
			t.cf.ProcessCellPair(base, neighbor)
			t.wallLocks[worker+1].Unlock()
		} else {
			t.cf.ProcessCellPair(base, neighbor)
		}
	}
}
