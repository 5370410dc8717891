package autopas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forcesOf runs one full IteratePairwise-equivalent pass over a freshly
// populated container and returns each particle's resulting force,
// indexed by id.
func forcesOf(t *testing.T, container Container, traversal Traversal, functor Functor) map[uint64]Vec3 {
	t.Helper()
	require.NoError(t, container.IteratePairwise(traversal, functor))
	out := make(map[uint64]Vec3)
	it := container.Iterate(OwnedOnly)
	for it.Valid() {
		p := it.Get()
		out[p.GetID()] = p.GetF()
		it.Next()
	}
	return out
}

func randomCloud(n int, boxMin, boxMax Vec3, seed uint64) []*testParticle {
	rng := &simpleRNG{state: seed}
	out := make([]*testParticle, n)
	for i := 0; i < n; i++ {
		out[i] = newTestParticle(uint64(i+1), rng.vec3(boxMin.X(), boxMax.X()))
	}
	return out
}

// DirectSum and LinkedCells must agree on forces for the same particle set.
func TestDirectSumMatchesLinkedCellsForces(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	cutoff, skin := 1.0, 0.2
	particles := randomCloud(200, boxMin, boxMax, 42)

	ds := NewDirectSum(boxMin, boxMax, cutoff, skin)
	lc := NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0)
	for _, p := range particles {
		require.NoError(t, ds.Add(newTestParticle(p.GetID(), p.GetR())))
		require.NoError(t, lc.Add(newTestParticle(p.GetID(), p.GetR())))
	}

	f := newLJFunctor(1, 1, cutoff)
	dsForces := forcesOf(t, ds, NewDirectSumTraversal(f, AoS, true), f)
	lcForces := forcesOf(t, lc, NewC08Traversal(f, AoS, true), f)

	require.Equal(t, len(dsForces), len(lcForces))
	for id, want := range dsForces {
		got, ok := lcForces[id]
		require.True(t, ok, "particle %d missing from LinkedCells result", id)
		diff := want.Sub(got).Len()
		scale := math.Max(want.Len(), 1e-300)
		assert.LessOrEqual(t, diff/scale, 1.5e-9, "particle %d force mismatch", id)
	}
}

// Under Newton-3, total force across all particles must sum to zero.
func TestNewton3ForceSumIsZero(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	cutoff, skin := 1.0, 0.2
	particles := randomCloud(150, boxMin, boxMax, 7)

	lc := NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0)
	for _, p := range particles {
		require.NoError(t, lc.Add(newTestParticle(p.GetID(), p.GetR())))
	}
	f := newLJFunctor(1, 1, cutoff)
	forces := forcesOf(t, lc, NewC08Traversal(f, AoS, true), f)

	sum := Vec3{}
	for _, fv := range forces {
		sum = sum.Add(fv)
	}
	assert.LessOrEqual(t, sum.Len(), 1e-8)
}

// Force agreement across the LinkedCells and LinkedCellsReferences
// traversal/layout combinations listed below, each checked against the
// DirectSum+AoS baseline.
func TestLinkedCellsConfigurationsMatchBaseline(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{8, 8, 8}
	cutoff, skin := 1.0, 0.3
	particles := randomCloud(120, boxMin, boxMax, 99)

	f := newLJFunctor(1, 1, cutoff)
	ds := NewDirectSum(boxMin, boxMax, cutoff, skin)
	for _, p := range particles {
		require.NoError(t, ds.Add(newTestParticle(p.GetID(), p.GetR())))
	}
	baseline := forcesOf(t, ds, NewDirectSumTraversal(f, AoS, true), f)

	type combo struct {
		name      string
		build     func() Container
		traversal func() Traversal
	}
	combos := []combo{
		{"LinkedCells/c08/AoS/N3", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC08Traversal(f, AoS, true) }},
		{"LinkedCells/c08/SoA/N3", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC08Traversal(f, SoA, true) }},
		{"LinkedCells/sliced/AoS/N3", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewSlicedTraversal(f, AoS, true) }},
		{"LinkedCells/c18/AoS/N3", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC18Traversal(f, AoS, true) }},
		{"LinkedCellsReferences/c08/AoS/N3", func() Container { return NewReferenceLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC08Traversal(f, AoS, true) }},
	}

	for _, c := range combos {
		t.Run(c.name, func(t *testing.T) {
			container := c.build()
			for _, p := range particles {
				require.NoError(t, container.Add(newTestParticle(p.GetID(), p.GetR())))
			}
			got := forcesOf(t, container, c.traversal(), f)
			require.Equal(t, len(baseline), len(got))
			for id, want := range baseline {
				g, ok := got[id]
				require.True(t, ok)
				diff := want.Sub(g).Len()
				scale := math.Max(want.Len(), 1e-300)
				assert.LessOrEqual(t, diff/scale, 1.5e-9, "particle %d force mismatch in %s", id, c.name)
			}
		})
	}
}

// Newton-3 only changes how a traversal schedules and deduplicates pair
// tasks; the resulting forces must match the Newton-3-on baseline exactly
// for each traversal/layout combination listed below.
func TestNewton3OffMatchesBaselineAcrossTraversals(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{8, 8, 8}
	cutoff, skin := 1.0, 0.3
	particles := randomCloud(150, boxMin, boxMax, 2024)

	f := newLJFunctor(1, 1, cutoff)
	ds := NewDirectSum(boxMin, boxMax, cutoff, skin)
	for _, p := range particles {
		require.NoError(t, ds.Add(newTestParticle(p.GetID(), p.GetR())))
	}
	baseline := forcesOf(t, ds, NewDirectSumTraversal(f, AoS, true), f)

	type combo struct {
		name      string
		build     func() Container
		traversal func() Traversal
	}
	combos := []combo{
		{"LinkedCells/c08/AoS/N3Off", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC08Traversal(f, AoS, false) }},
		{"LinkedCells/c08/SoA/N3Off", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewC08Traversal(f, SoA, false) }},
		{"LinkedCells/sliced/AoS/N3Off", func() Container { return NewLinkedCells(boxMin, boxMax, cutoff, skin, 1.0) }, func() Traversal { return NewSlicedTraversal(f, AoS, false) }},
		{"VerletList/AoS/N3Off", func() Container { return NewVerletLists(boxMin, boxMax, cutoff, skin, 1.0, 10) }, func() Traversal { return NewVerletListTraversal(f, AoS, false) }},
		{"VerletClusterLists/AoS/N3Off", func() Container { return NewVerletClusterLists(boxMin, boxMax, cutoff, skin, 10) }, func() Traversal { return NewClusterTraversal(f, AoS, false) }},
	}

	for _, c := range combos {
		t.Run(c.name, func(t *testing.T) {
			container := c.build()
			for _, p := range particles {
				require.NoError(t, container.Add(newTestParticle(p.GetID(), p.GetR())))
			}
			got := forcesOf(t, container, c.traversal(), f)
			require.Equal(t, len(baseline), len(got))
			for id, want := range baseline {
				g, ok := got[id]
				require.True(t, ok)
				diff := want.Sub(g).Len()
				scale := math.Max(want.Len(), 1e-300)
				assert.LessOrEqual(t, diff/scale, 1.5e-9, "particle %d force mismatch in %s", id, c.name)
			}
		})
	}
}
