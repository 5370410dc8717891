package autopas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RebuildNeighborLists must be idempotent if nothing
// moved.
func TestVerletListsRebuildIdempotentWhenNothingMoved(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	v := NewVerletLists(boxMin, boxMax, 1.0, 0.3, 1.0, 100)
	for i, r := range []Vec3{{1, 1, 1}, {1.5, 1, 1}, {5, 5, 5}} {
		require.NoError(t, v.Add(newTestParticle(uint64(i+1), r)))
	}
	require.NoError(t, v.RebuildNeighborLists(nil))
	first := v.neighbors[1]
	require.NoError(t, v.RebuildNeighborLists(nil))
	second := v.neighbors[1]
	assert.Equal(t, len(first), len(second))
}

// A Verlet list built with skin s remains valid
// as long as no owned particle has drifted more than s/2.
func TestVerletListsValidUntilHalfSkinDrift(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	skin := 0.4
	v := NewVerletLists(boxMin, boxMax, 1.0, skin, 1.0, 100)
	p := newTestParticle(1, Vec3{5, 5, 5})
	require.NoError(t, v.Add(p))
	require.NoError(t, v.RebuildNeighborLists(nil))
	assert.False(t, v.IsUpdateNeeded())

	p.SetR(Vec3{5 + skin/2 - 0.01, 5, 5})
	assert.False(t, v.IsUpdateNeeded(), "drift under skin/2 must not force a rebuild")

	p.SetR(Vec3{5 + skin/2 + 0.01, 5, 5})
	assert.True(t, v.IsUpdateNeeded(), "drift over skin/2 must force a rebuild")
}

func TestVerletListsMatchesDirectSumForces(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	cutoff, skin := 1.0, 0.3
	particles := randomCloud(100, boxMin, boxMax, 17)

	ds := NewDirectSum(boxMin, boxMax, cutoff, skin)
	vl := NewVerletLists(boxMin, boxMax, cutoff, skin, 1.0, 1)
	for _, p := range particles {
		require.NoError(t, ds.Add(newTestParticle(p.GetID(), p.GetR())))
		require.NoError(t, vl.Add(newTestParticle(p.GetID(), p.GetR())))
	}

	f := newLJFunctor(1, 1, cutoff)
	baseline := forcesOf(t, ds, NewDirectSumTraversal(f, AoS, true), f)
	got := forcesOf(t, vl, NewVerletListTraversal(f, AoS, true), f)

	require.Equal(t, len(baseline), len(got))
	for id, want := range baseline {
		g, ok := got[id]
		require.True(t, ok)
		assert.InDelta(t, want.X(), g.X(), 1e-9)
		assert.InDelta(t, want.Y(), g.Y(), 1e-9)
		assert.InDelta(t, want.Z(), g.Z(), 1e-9)
	}
}

// Cluster padding: a tower whose occupancy isn't a multiple of
// clusterSize (4) pads its last cluster with dummies so every cluster
// holds exactly 4 slots.
func TestVerletClusterListsPadsLastCluster(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{4, 4, 4}
	vcl := NewVerletClusterLists(boxMin, boxMax, 1.0, 0.2, 100)
	// Cram 6 particles into one tower, all inside the box.
	for i := 0; i < 6; i++ {
		require.NoError(t, vcl.Add(newTestParticle(uint64(i+1), Vec3{0.1, 0.1, 0.5 * float64(i)})))
	}
	require.NoError(t, vcl.RebuildNeighborLists(nil))

	for _, tw := range vcl.towers {
		if len(tw.particles) == 0 {
			continue
		}
		assert.Equal(t, 0, len(tw.particles)%clusterSize, "tower occupancy must be a multiple of clusterSize")
		realCount := 0
		for _, p := range tw.particles {
			if !p.IsDummy() {
				realCount++
			}
		}
		assert.Equal(t, 6, realCount)
		assert.Equal(t, 2, len(tw.particles)-realCount, "expected 2 padding dummies for 6 real particles")
	}
}

func TestVerletClusterListsMatchesDirectSumForces(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	cutoff, skin := 1.0, 0.3
	particles := randomCloud(80, boxMin, boxMax, 55)

	ds := NewDirectSum(boxMin, boxMax, cutoff, skin)
	vcl := NewVerletClusterLists(boxMin, boxMax, cutoff, skin, 1)
	for _, p := range particles {
		require.NoError(t, ds.Add(newTestParticle(p.GetID(), p.GetR())))
		require.NoError(t, vcl.Add(newTestParticle(p.GetID(), p.GetR())))
	}

	f := newLJFunctor(1, 1, cutoff)
	baseline := forcesOf(t, ds, NewDirectSumTraversal(f, AoS, true), f)
	got := forcesOf(t, vcl, NewClusterTraversal(f, AoS, true), f)

	require.Equal(t, len(baseline), len(got))
	for id, want := range baseline {
		g, ok := got[id]
		require.True(t, ok)
		assert.InDelta(t, want.X(), g.X(), 1e-8)
		assert.InDelta(t, want.Y(), g.Y(), 1e-8)
		assert.InDelta(t, want.Z(), g.Z(), 1e-8)
	}
}
