package autopas

// ClusterTraversal iterates the precomputed cluster-thread partition; for
// each assigned cluster it invokes self-cluster and cluster-pair
// interactions via the container's cluster neighbor list. Each partition
// slice is handled by its own goroutine; slices are disjoint cluster
// ranges, so no locking is needed between them.
type ClusterTraversal struct {
	baseTraversal
	container *VerletClusterLists
}

func NewClusterTraversal(f Functor, layout DataLayoutOption, newton3 bool) *ClusterTraversal {
	return &ClusterTraversal{
		baseTraversal: baseTraversal{dataLayout: layout, newton3: newton3, kind: TraversalVerletCluster, functor: f},
	}
}

func (t *ClusterTraversal) IsApplicable() bool {
	if !newton3Applicable(t.functor, t.newton3) {
		return false
	}
	return t.functor.IsAppropriateClusterSize(clusterSize, t.dataLayout)
}

func (t *ClusterTraversal) InitTraversal() {}
func (t *ClusterTraversal) EndTraversal()  {}

func (t *ClusterTraversal) TraverseParticlePairs() {
	partition := t.container.partition
	_ = parallelFor(len(partition), func(w int) {
		for _, ref := range partition[w] {
			t.processCluster(ref)
		}
	})
}

func (t *ClusterTraversal) processCluster(ref clusterRef) {
	tw := t.container.towers[ref.towerIdx]
	members := tw.clusterParticles(ref.clusterIdx)

	for i := 0; i < len(members); i++ {
		if members[i].IsDummy() {
			continue
		}
		for j := i + 1; j < len(members); j++ {
			if members[j].IsDummy() {
				continue
			}
			t.functor.AoSPair(members[i], members[j], t.newton3)
			if !t.newton3 {
				t.functor.AoSPair(members[j], members[i], false)
			}
		}
	}

	for _, other := range t.container.clusterNeighbors[ref] {
		if t.newton3 && clusterRefLess(other, ref) {
			// other's own task already processed this pair (its
			// neighbor list also contains ref) and updated both sides.
			continue
		}
		otherTw := t.container.towers[other.towerIdx]
		otherMembers := otherTw.clusterParticles(other.clusterIdx)
		for _, a := range members {
			if a.IsDummy() {
				continue
			}
			for _, b := range otherMembers {
				if b.IsDummy() {
					continue
				}
				// With newton3 off this only ever updates a (ref's own
				// members); other's symmetric list gives it its own
				// task to update its own members from this same pair.
				t.functor.AoSPair(a, b, t.newton3)
			}
		}
	}
}
