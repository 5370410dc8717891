package autopas

// VerletListTraversal iterates owned particles and invokes the functor's
// Verlet-path against each one's stored neighbor list. The container
// builds each owned particle's list symmetrically (every partner within
// interaction length, regardless of id order), so with newton3 off every
// owned particle's own call sees its complete neighborhood and updates
// only itself; with newton3 on, owned-owned pairs are deduplicated here
// by skipping the pair in the higher-id side's call, since the lower-id
// side's call already updates both particles.
type VerletListTraversal struct {
	baseTraversal
	container *VerletLists
}

func NewVerletListTraversal(f Functor, layout DataLayoutOption, newton3 bool) *VerletListTraversal {
	return &VerletListTraversal{
		baseTraversal: baseTraversal{dataLayout: layout, newton3: newton3, kind: TraversalVerletList, functor: f},
	}
}

func (t *VerletListTraversal) IsApplicable() bool {
	return newton3Applicable(t.functor, t.newton3)
}

func (t *VerletListTraversal) InitTraversal() {}
func (t *VerletListTraversal) EndTraversal()  {}

func (t *VerletListTraversal) TraverseParticlePairs() {
	owned := t.container.ownedParticles()
	_ = parallelFor(len(owned), func(i int) {
		p := owned[i]
		for _, q := range t.container.neighborsOf(p.GetID()) {
			if t.newton3 && q.IsOwned() && q.GetID() < p.GetID() {
				// q's own call already processed this pair (its list
				// includes p) and updated both sides.
				continue
			}
			t.functor.AoSPair(p, q, t.newton3)
		}
	})
}
