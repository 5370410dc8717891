package classlibrary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometricMixingIsSquareRootOfProduct(t *testing.T) {
	cl := New(GeometricMixing)
	cl.Register(1, Properties{Epsilon: 4, Sigma: 1})
	cl.Register(2, Properties{Epsilon: 9, Sigma: 3})

	epsilon, sigma, ok := cl.Mixed(1, 2)
	assert.True(t, ok)
	assert.InDelta(t, 6.0, epsilon, 1e-12)
	assert.InDelta(t, 2.0, sigma, 1e-12)
}

func TestSuspectAdditiveMixingIsSquareRootOfSum(t *testing.T) {
	cl := New(SuspectAdditiveMixing)
	cl.Register(1, Properties{Epsilon: 3, Sigma: 1})
	cl.Register(2, Properties{Epsilon: 6, Sigma: 1})

	epsilon, _, ok := cl.Mixed(1, 2)
	assert.True(t, ok)
	assert.InDelta(t, math.Sqrt(9), epsilon, 1e-12)
}

func TestMixedReportsUnknownType(t *testing.T) {
	cl := New(GeometricMixing)
	cl.Register(1, Properties{Epsilon: 1, Sigma: 1})
	_, _, ok := cl.Mixed(1, 2)
	assert.False(t, ok)
}
