package autopas

// CellFunctor binds a user Functor to a container's cells and handles the
// AoS/SoA dispatch for the self-cell and cell-pair task shapes a grid
// traversal hands it; the Verlet-list and cluster traversals call the
// Functor's AoS/Verlet methods directly instead, since they have no
// cell-pair structure to dispatch through.
type CellFunctor struct {
	functor    Functor
	dataLayout DataLayoutOption
	newton3    bool
}

func NewCellFunctor(f Functor, layout DataLayoutOption, newton3 bool) *CellFunctor {
	return &CellFunctor{functor: f, dataLayout: layout, newton3: newton3}
}

// ProcessCellAoS evaluates every unique pair inside one cell in AoS mode.
// A self-cell task owns its whole cell outright and has no mirrored task
// to hand the reverse direction to, so when Newton-3 is off both
// directions of each pair are evaluated right here.
func (cf *CellFunctor) ProcessCellAoS(c *Cell) {
	particles := c.Particles(true)
	for i := 0; i < len(particles); i++ {
		if particles[i].IsDummy() {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			if particles[j].IsDummy() {
				continue
			}
			cf.functor.AoSPair(particles[i], particles[j], cf.newton3)
			if !cf.newton3 {
				cf.functor.AoSPair(particles[j], particles[i], false)
			}
		}
	}
}

// ProcessCellSoA evaluates one cell's attached SoA buffer in self mode.
func (cf *CellFunctor) ProcessCellSoA(c *Cell) {
	buf := c.SoA()
	if buf == nil {
		buf = c.LoadSoA(cf.functor)
	}
	cf.functor.SoAPairSelf(buf, cf.newton3)
}

// ProcessCellPairAoS evaluates the cross product of two cells' particles
// in AoS mode. Both ordered directions are emitted when Newton-3 is off,
// so c1 and c2 each only ever receive force through a call where they are
// the first argument; the traversals that call this rely on that (c08's
// coloring and sliced's wall locks already make it safe to write into
// both c1 and c2 from a single task).
func (cf *CellFunctor) ProcessCellPairAoS(c1, c2 *Cell) {
	p1 := c1.Particles(true)
	p2 := c2.Particles(true)
	for _, a := range p1 {
		if a.IsDummy() {
			continue
		}
		for _, b := range p2 {
			if b.IsDummy() {
				continue
			}
			cf.functor.AoSPair(a, b, cf.newton3)
			if !cf.newton3 {
				cf.functor.AoSPair(b, a, false)
			}
		}
	}
}

// ProcessCellPairSoA evaluates the cross product of two cells' attached
// SoA buffers. Mirrors ProcessCellPairAoS: both ordered directions are
// evaluated when Newton-3 is off.
func (cf *CellFunctor) ProcessCellPairSoA(c1, c2 *Cell) {
	buf1 := c1.SoA()
	if buf1 == nil {
		buf1 = c1.LoadSoA(cf.functor)
	}
	buf2 := c2.SoA()
	if buf2 == nil {
		buf2 = c2.LoadSoA(cf.functor)
	}
	cf.functor.SoAPairCross(buf1, buf2, cf.newton3)
	if !cf.newton3 {
		cf.functor.SoAPairCross(buf2, buf1, false)
	}
}

// ProcessCell dispatches to the AoS or SoA path for a self-cell task.
func (cf *CellFunctor) ProcessCell(c *Cell) {
	if cf.dataLayout == SoA {
		cf.ProcessCellSoA(c)
	} else {
		cf.ProcessCellAoS(c)
	}
}

// ProcessCellPair dispatches to the AoS or SoA path for a cell-pair task.
func (cf *CellFunctor) ProcessCellPair(c1, c2 *Cell) {
	if cf.dataLayout == SoA {
		cf.ProcessCellPairSoA(c1, c2)
	} else {
		cf.ProcessCellPairAoS(c1, c2)
	}
}
