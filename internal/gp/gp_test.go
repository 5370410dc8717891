package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegressorInterpolatesObservedPoints(t *testing.T) {
	r := NewRegressor(Kernel{Variance: 1, LengthScale: 1}, 1e-8)
	xs := [][]float64{{0}, {1}, {2}}
	ys := []float64{1, 4, 9}
	r.Fit(xs, ys)

	for i, x := range xs {
		mean, variance := r.Predict(x)
		assert.InDelta(t, ys[i], mean, 1e-3)
		assert.LessOrEqual(t, variance, 0.01)
	}
}

func TestRegressorHighVarianceFarFromObservations(t *testing.T) {
	r := NewRegressor(Kernel{Variance: 1, LengthScale: 0.5}, 1e-6)
	r.Fit([][]float64{{0}}, []float64{1})

	_, nearVariance := r.Predict([]float64{0})
	_, farVariance := r.Predict([]float64{100})
	assert.Less(t, nearVariance, farVariance)
}

func TestRegressorWithNoObservationsReturnsPriorVariance(t *testing.T) {
	r := NewRegressor(Kernel{Variance: 2, LengthScale: 1}, 0.5)
	mean, variance := r.Predict([]float64{0})
	assert.Equal(t, 0.0, mean)
	assert.InDelta(t, 2.5, variance, 1e-12)
}
