package autopas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoPasTuningPhaseSettlesAndReusesConfiguration(t *testing.T) {
	ap := NewAutoPas(NewNopLogger())
	ap.SetBoxMin(Vec3{0, 0, 0})
	ap.SetBoxMax(Vec3{8, 8, 8})
	ap.SetCutoff(1.0)
	ap.SetVerletSkin(0.2)
	ap.SetAllowedContainers([]ContainerOption{ContainerLinkedCells})
	ap.SetAllowedTraversals([]TraversalOption{TraversalC08, TraversalSliced})
	ap.SetAllowedDataLayouts([]DataLayoutOption{AoS})
	ap.SetAllowedNewton3Options([]Newton3Option{Newton3On})
	ap.SetAllowedCellSizeFactors([]float64{1.0})
	ap.SetNumSamples(1)
	ap.SetTuningInterval(1)
	require.NoError(t, ap.Init())

	size, err := ap.ConfigurationSpaceSize()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	rng := &simpleRNG{state: 123}
	for i := 0; i < 50; i++ {
		require.NoError(t, ap.AddParticle(newTestParticle(uint64(i+1), rng.vec3(0, 8))))
	}

	f := newLJFunctor(1, 1, 1.0)
	sawTuning := false
	for i := 0; i < 4; i++ {
		wasTuning, err := ap.IteratePairwise(f)
		require.NoError(t, err)
		if wasTuning {
			sawTuning = true
		}
	}
	assert.True(t, sawTuning, "expected at least one tuning iteration within the phase")

	cfg := ap.CurrentConfiguration()
	assert.Contains(t, []TraversalOption{TraversalC08, TraversalSliced}, cfg.Traversal)
}

func TestAutoPasRejectsEmptySearchSpace(t *testing.T) {
	ap := NewAutoPas(NewNopLogger())
	ap.SetAllowedContainers([]ContainerOption{ContainerDirectSum})
	ap.SetAllowedTraversals([]TraversalOption{TraversalC08}) // incompatible with DirectSum
	ap.SetAllowedDataLayouts([]DataLayoutOption{AoS})
	ap.SetAllowedNewton3Options([]Newton3Option{Newton3On})
	ap.SetAllowedCellSizeFactors([]float64{1.0})

	err := ap.Init()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRegionIterateVisitsOnlyMatchingParticles(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	lc := NewLinkedCells(boxMin, boxMax, 1.0, 0.2, 1.0)
	inside := newTestParticle(1, Vec3{1, 1, 1})
	outside := newTestParticle(2, Vec3{9, 9, 9})
	require.NoError(t, lc.Add(inside))
	require.NoError(t, lc.Add(outside))

	it := lc.RegionIterate(Vec3{0, 0, 0}, Vec3{2, 2, 2}, OwnedOnly)
	var seen []uint64
	for it.Valid() {
		seen = append(seen, it.Get().GetID())
		it.Next()
	}
	assert.Equal(t, []uint64{1}, seen)
}

func TestUpdateContainerReturnsParticlesThatLeftDomain(t *testing.T) {
	boxMin, boxMax := Vec3{0, 0, 0}, Vec3{10, 10, 10}
	lc := NewLinkedCells(boxMin, boxMax, 1.0, 0.2, 1.0)
	p := newTestParticle(1, Vec3{5, 5, 5})
	require.NoError(t, lc.Add(p))

	p.SetR(Vec3{20, 20, 20})
	left := lc.Update()
	require.Len(t, left, 1)
	assert.Equal(t, uint64(1), left[0].GetID())
	assert.Equal(t, 0, lc.NumParticles(OwnedOnly))
}
