package autopas

// DirectSumTraversal processes the self-pair of the owned cell and the
// cross-pair with the halo cell, single-threaded: there is exactly one owned cell, so there is
// nothing to fork.
type DirectSumTraversal struct {
	baseTraversal
	owned, halo *Cell
	cf          *CellFunctor
}

func NewDirectSumTraversal(f Functor, layout DataLayoutOption, newton3 bool) *DirectSumTraversal {
	return &DirectSumTraversal{
		baseTraversal: baseTraversal{dataLayout: layout, newton3: newton3, kind: TraversalDirectSum, functor: f},
		cf:            NewCellFunctor(f, layout, newton3),
	}
}

func (t *DirectSumTraversal) IsApplicable() bool {
	return newton3Applicable(t.functor, t.newton3)
}

func (t *DirectSumTraversal) InitTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.owned.LoadSoA(t.functor)
	t.halo.LoadSoA(t.functor)
}

func (t *DirectSumTraversal) TraverseParticlePairs() {
	t.cf.ProcessCell(t.owned)
	t.cf.ProcessCellPair(t.owned, t.halo)
}

func (t *DirectSumTraversal) EndTraversal() {
	if t.dataLayout != SoA {
		return
	}
	t.owned.ExtractSoA(t.functor)
	t.halo.ExtractSoA(t.functor)
}
