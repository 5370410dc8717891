package autopas

import "math"

const clusterSize = 4

// tower is a vertical column of fixed-width clusters in the xy-grid of a
// VerletClusterLists container. Particles
// are kept sorted by z ascending; the particle slice length is always a
// multiple of clusterSize, padded at the end with dummies.
type tower struct {
	particles []Particle // len is always a multiple of clusterSize
}

func (tw *tower) numClusters() int { return len(tw.particles) / clusterSize }

func (tw *tower) clusterParticles(clusterIdx int) []Particle {
	lo := clusterIdx * clusterSize
	return tw.particles[lo : lo+clusterSize]
}

// clusterRef addresses one cluster by its tower and position within it.
type clusterRef struct {
	towerIdx, clusterIdx int
}

// VerletClusterLists reassigns particles into 2D xy towers on Rebuild;
// within each tower the z-sort then cluster-grouping produces fixed-width
// clusters of 4. Cluster neighbor
// lists record pairs of clusters whose AABBs are within interactionLength.
type VerletClusterLists struct {
	boxMin, boxMax  Vec3
	cutoff, skin    float64
	towerSideLength float64

	towersPerDim [2]int
	towers       []*tower

	clusterNeighbors map[clusterRef][]clusterRef
	partition        [][]clusterRef // cluster-thread partition

	buildR       map[uint64]Vec3
	rebuildEvery int
	sinceRebuild int
}

func NewVerletClusterLists(boxMin, boxMax Vec3, cutoff, skin float64, rebuildFrequency int) *VerletClusterLists {
	il := interactionLength(cutoff, skin)
	vcl := &VerletClusterLists{
		boxMin:          boxMin,
		boxMax:          boxMax,
		cutoff:          cutoff,
		skin:            skin,
		towerSideLength: il,
		buildR:          make(map[uint64]Vec3),
		rebuildEvery:    rebuildFrequency,
	}
	sizeX := boxMax.X() - boxMin.X()
	sizeY := boxMax.Y() - boxMin.Y()
	nx := int(math.Max(1, math.Floor(sizeX/il)))
	ny := int(math.Max(1, math.Floor(sizeY/il)))
	vcl.towersPerDim = [2]int{nx, ny}
	vcl.towers = make([]*tower, nx*ny)
	for i := range vcl.towers {
		vcl.towers[i] = &tower{}
	}
	return vcl
}

func (vcl *VerletClusterLists) Kind() ContainerOption         { return ContainerVerletClusterLists }
func (vcl *VerletClusterLists) CutoffAndSkin() (float64, float64) { return vcl.cutoff, vcl.skin }

func (vcl *VerletClusterLists) towerIndex(pos Vec3) (ix, iy int) {
	ix = int(math.Floor((pos.X() - vcl.boxMin.X()) / vcl.towerSideLength))
	iy = int(math.Floor((pos.Y() - vcl.boxMin.Y()) / vcl.towerSideLength))
	if ix < 0 {
		ix = 0
	}
	if ix >= vcl.towersPerDim[0] {
		ix = vcl.towersPerDim[0] - 1
	}
	if iy < 0 {
		iy = 0
	}
	if iy >= vcl.towersPerDim[1] {
		iy = vcl.towersPerDim[1] - 1
	}
	return
}

func (vcl *VerletClusterLists) towerFlat(ix, iy int) int { return ix + iy*vcl.towersPerDim[0] }

// particlesFlat returns every particle currently placed into towers,
// padding dummies only when includeDummies is set (used for iteration
// without touching cluster structure).
func (vcl *VerletClusterLists) particlesFlat(includeDummies bool) []Particle {
	var out []Particle
	for _, tw := range vcl.towers {
		if includeDummies {
			out = append(out, tw.particles...)
		} else {
			for _, p := range tw.particles {
				if !p.IsDummy() {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

func (vcl *VerletClusterLists) Add(p Particle) error {
	if !insideBox(vcl.boxMin, vcl.boxMax, p.GetR()) {
		return &InvariantViolationError{Invariant: "owned particle outside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Owned)
	ix, iy := vcl.towerIndex(p.GetR())
	tw := vcl.towers[vcl.towerFlat(ix, iy)]
	tw.particles = append(tw.particles, p)
	return nil
}

func (vcl *VerletClusterLists) AddHalo(p Particle) error {
	if insideBox(vcl.boxMin, vcl.boxMax, p.GetR()) {
		return &InvariantViolationError{Invariant: "halo particle inside box", ParticleID: p.GetID(), Position: p.GetR()}
	}
	p.SetOwnershipState(Halo)
	ix, iy := vcl.towerIndex(p.GetR())
	tw := vcl.towers[vcl.towerFlat(ix, iy)]
	tw.particles = append(tw.particles, p)
	return nil
}

func (vcl *VerletClusterLists) UpdateHalo(p Particle) (bool, error) {
	for _, existing := range vcl.particlesFlat(true) {
		if existing.IsHalo() && existing.GetID() == p.GetID() {
			existing.SetR(p.GetR())
			existing.SetV(p.GetV())
			return true, nil
		}
	}
	return false, nil
}

func (vcl *VerletClusterLists) DeleteHalo() {
	for _, tw := range vcl.towers {
		kept := tw.particles[:0:0]
		for _, p := range tw.particles {
			if !p.IsHalo() {
				kept = append(kept, p)
			}
		}
		tw.particles = kept
	}
	// Towers lost their padding; forget the build positions so the next
	// IsUpdateNeeded forces a rebuild that re-pads them.
	vcl.buildR = make(map[uint64]Vec3)
}

func (vcl *VerletClusterLists) Update() []Particle {
	all := vcl.particlesFlat(false)
	var leftDomain []Particle
	for _, tw := range vcl.towers {
		tw.particles = tw.particles[:0]
	}
	for _, p := range all {
		if p.IsOwned() && !insideBox(vcl.boxMin, vcl.boxMax, p.GetR()) {
			leftDomain = append(leftDomain, p)
			continue
		}
		ix, iy := vcl.towerIndex(p.GetR())
		tw := vcl.towers[vcl.towerFlat(ix, iy)]
		tw.particles = append(tw.particles, p)
	}
	// Towers lost their padding; forget the build positions so the next
	// IsUpdateNeeded forces a rebuild that re-pads them.
	vcl.buildR = make(map[uint64]Vec3)
	return leftDomain
}

func (vcl *VerletClusterLists) IsUpdateNeeded() bool {
	if vcl.sinceRebuild >= vcl.rebuildEvery && vcl.rebuildEvery > 0 {
		return true
	}
	halfSkin := vcl.skin / 2
	for _, p := range vcl.particlesFlat(false) {
		built, ok := vcl.buildR[p.GetID()]
		if !ok {
			return true
		}
		if built.Sub(p.GetR()).Len() > halfSkin {
			return true
		}
	}
	return false
}

// RebuildNeighborLists re-towers particles, z-sorts each tower, pads the
// last cluster with dummies, and recomputes cluster-cluster neighbor
// pairs plus the cluster-thread partition.
func (vcl *VerletClusterLists) RebuildNeighborLists(Traversal) error {
	il := interactionLength(vcl.cutoff, vcl.skin)

	all := vcl.particlesFlat(false)
	for _, tw := range vcl.towers {
		tw.particles = nil
	}
	for _, p := range all {
		ix, iy := vcl.towerIndex(p.GetR())
		tw := vcl.towers[vcl.towerFlat(ix, iy)]
		tw.particles = append(tw.particles, p)
	}
	for _, tw := range vcl.towers {
		real := tw.particles
		sortParticlesByZ(real)
		pad := (clusterSize - len(real)%clusterSize) % clusterSize
		for i := 0; i < pad; i++ {
			real = append(real, NewDummyParticle())
		}
		tw.particles = real
	}

	vcl.buildR = make(map[uint64]Vec3)
	for _, p := range vcl.particlesFlat(false) {
		vcl.buildR[p.GetID()] = p.GetR()
	}

	vcl.buildClusterNeighbors(il)
	vcl.buildClusterThreadPartition()
	vcl.sinceRebuild = 0
	return nil
}

func sortParticlesByZ(particles []Particle) {
	// Insertion sort: tower occupancy is small (a handful of clusters),
	// and it is stable, which keeps z-ordering deterministic across
	// rebuilds when particles tie on z.
	for i := 1; i < len(particles); i++ {
		for j := i; j > 0 && particles[j-1].GetR().Z() > particles[j].GetR().Z(); j-- {
			particles[j-1], particles[j] = particles[j], particles[j-1]
		}
	}
}

func towerAABB(tw *tower, ix, iy int, side float64, boxMin Vec3) (min, max [2]float64) {
	min = [2]float64{boxMin.X() + float64(ix)*side, boxMin.Y() + float64(iy)*side}
	max = [2]float64{min[0] + side, min[1] + side}
	return
}

// aabbXYDistance returns the closest distance between two axis-aligned xy
// rectangles, 0 if they overlap or touch. buildClusterNeighbors checks it
// in addition to the z-range test; for the 3x3 block of towers it scans,
// every tower touches the centre one (diagonal ones at a corner), so the
// distance is always 0 there and the z-range test does the filtering.
func aabbXYDistance(min1, max1, min2, max2 [2]float64) float64 {
	dx := math.Max(0, math.Max(min1[0]-max2[0], min2[0]-max1[0]))
	dy := math.Max(0, math.Max(min1[1]-max2[1], min2[1]-max1[1]))
	return math.Hypot(dx, dy)
}

func (vcl *VerletClusterLists) clusterZRange(towerIdx, clusterIdx int) (lo, hi float64) {
	tw := vcl.towers[towerIdx]
	particles := tw.clusterParticles(clusterIdx)
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range particles {
		if p.IsDummy() {
			continue
		}
		z := p.GetR().Z()
		if z < lo {
			lo = z
		}
		if z > hi {
			hi = z
		}
	}
	if lo > hi {
		lo, hi = 0, 0
	}
	return
}

// buildClusterNeighbors records, for every cluster, the clusters in the
// same or a neighboring tower whose AABBs (xy from the tower grid, z from
// the cluster's own particles) come within interactionLength. The list is
// symmetric (if B is in A's list, A is in B's): processCluster relies on
// that to give each Newton-3-off cluster its own complete neighborhood
// without ever having to write into a cluster a different partition slice
// owns.
func (vcl *VerletClusterLists) buildClusterNeighbors(il float64) {
	vcl.clusterNeighbors = make(map[clusterRef][]clusterRef)
	nx, ny := vcl.towersPerDim[0], vcl.towersPerDim[1]

	for tIdx, tw := range vcl.towers {
		tx := tIdx % nx
		ty := tIdx / nx
		tMin, tMax := towerAABB(tw, tx, ty, vcl.towerSideLength, vcl.boxMin)
		for c := 0; c < tw.numClusters(); c++ {
			ref := clusterRef{tIdx, c}
			cLo, cHi := vcl.clusterZRange(tIdx, c)

			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					ox, oy := tx+dx, ty+dy
					if ox < 0 || oy < 0 || ox >= nx || oy >= ny {
						continue
					}
					oIdx := vcl.towerFlat(ox, oy)
					otherTw := vcl.towers[oIdx]
					oMin, oMax := towerAABB(otherTw, ox, oy, vcl.towerSideLength, vcl.boxMin)
					if aabbXYDistance(tMin, tMax, oMin, oMax) > il {
						continue
					}
					for oc := 0; oc < otherTw.numClusters(); oc++ {
						other := clusterRef{oIdx, oc}
						if other == ref {
							continue
						}
						oLo, oHi := vcl.clusterZRange(oIdx, oc)
						if rangesWithin(cLo, cHi, oLo, oHi, il) {
							vcl.clusterNeighbors[ref] = append(vcl.clusterNeighbors[ref], other)
						}
					}
				}
			}
		}
	}
}

func clusterRefLess(a, b clusterRef) bool {
	if a.towerIdx != b.towerIdx {
		return a.towerIdx < b.towerIdx
	}
	return a.clusterIdx < b.clusterIdx
}

func rangesWithin(lo1, hi1, lo2, hi2, tolerance float64) bool {
	if hi1 < lo2 {
		return lo2-hi1 <= tolerance
	}
	if hi2 < lo1 {
		return lo1-hi2 <= tolerance
	}
	return true
}

// buildClusterThreadPartition assigns contiguous ranges of clusters to
// threads with approximately equal cluster-pair count.
func (vcl *VerletClusterLists) buildClusterThreadPartition() {
	var all []clusterRef
	for tIdx, tw := range vcl.towers {
		for c := 0; c < tw.numClusters(); c++ {
			all = append(all, clusterRef{tIdx, c})
		}
	}
	if len(all) == 0 {
		vcl.partition = nil
		return
	}
	workers := numWorkers(len(all))
	weight := make([]int, len(all))
	total := 0
	for i, ref := range all {
		w := len(vcl.clusterNeighbors[ref]) + 1
		weight[i] = w
		total += w
	}
	target := total / workers
	if target == 0 {
		target = 1
	}

	partition := make([][]clusterRef, 0, workers)
	start := 0
	acc := 0
	for i := range all {
		acc += weight[i]
		isLast := i == len(all)-1
		if acc >= target && len(partition) < workers-1 {
			partition = append(partition, all[start:i+1])
			start = i + 1
			acc = 0
		} else if isLast {
			partition = append(partition, all[start:])
		}
	}
	vcl.partition = partition
}

func (vcl *VerletClusterLists) Iterate(behavior IteratorBehavior) *Iterator {
	return newIterator(vcl.particlesFlat(behavior == OwnedOrHaloOrDummy), behavior)
}

func (vcl *VerletClusterLists) RegionIterate(lo, hi Vec3, behavior IteratorBehavior) *Iterator {
	all := vcl.particlesFlat(behavior == OwnedOrHaloOrDummy)
	var filtered []Particle
	for _, p := range all {
		if regionContains(lo, hi, p.GetR()) {
			filtered = append(filtered, p)
		}
	}
	return newIterator(filtered, behavior)
}

func (vcl *VerletClusterLists) NumParticles(behavior IteratorBehavior) int {
	it := vcl.Iterate(behavior)
	n := 0
	for it.Valid() {
		n++
		it.Next()
	}
	return n
}

func (vcl *VerletClusterLists) IteratePairwise(traversal Traversal, functor Functor) error {
	ct, ok := traversal.(*ClusterTraversal)
	if !ok || !traversal.IsApplicable() {
		return &ConfigurationError{Container: ContainerVerletClusterLists, Traversal: traversal.GetTraversalType(), Reason: "traversal not applicable to VerletClusterLists"}
	}
	if vcl.IsUpdateNeeded() {
		if err := vcl.RebuildNeighborLists(traversal); err != nil {
			return err
		}
	}
	ct.container = vcl
	traversal.InitTraversal()
	traversal.TraverseParticlePairs()
	traversal.EndTraversal()
	vcl.sinceRebuild++
	return nil
}
