package domaintools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToDomainPowerMetricIsZeroInside(t *testing.T) {
	boxMin := [3]float64{0, 0, 0}
	boxMax := [3]float64{10, 10, 10}
	got := DistanceToDomainPowerMetric(boxMin, boxMax, [3]float64{5, 5, 5}, 3)
	assert.Equal(t, 0.0, got)
}

func TestDistanceToDomainPowerMetricAppliesInverseExponent(t *testing.T) {
	boxMin := [3]float64{0, 0, 0}
	boxMax := [3]float64{10, 10, 10}
	// 8 units outside along x only: euclidean distance is 8, then raised
	// to the power 1/n as the (non-canonical) source formula does.
	got := DistanceToDomainPowerMetric(boxMin, boxMax, [3]float64{18, 5, 5}, 3)
	assert.InDelta(t, 2.0, got, 1e-9) // 8^(1/3) == 2
}
