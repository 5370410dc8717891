package autopas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A LoadSoA/ExtractSoA round trip must not
// change an attribute the functor did not declare as computed. This
// functor only computes force, so velocity, id, typeID and ownership must
// survive untouched even though they were gathered into the buffer.
func TestSoALoadExtractRoundTripLeavesUncomputedAttributesUntouched(t *testing.T) {
	p := newTestParticle(7, Vec3{1, 2, 3})
	p.SetV(Vec3{0.1, 0.2, 0.3})
	p.SetTypeID(9)
	p.SetOwnershipState(Owned)
	f := newLJFunctor(1, 1, 2.5)

	buf := LoadSoA([]Particle{p}, f)
	// Mutate every column in the buffer, including ones the functor never
	// declared as computed.
	buf.velX[0], buf.velY[0], buf.velZ[0] = 99, 99, 99
	buf.SetForce(0, Vec3{5, 5, 5})
	buf.typeID[0] = 123

	buf.ExtractSoA(f)

	assert.Equal(t, Vec3{0.1, 0.2, 0.3}, p.GetV(), "velocity was not declared computed and must be left alone")
	assert.Equal(t, uint32(9), p.GetTypeID(), "typeID has no SoA write-back path and must be untouched")
	assert.Equal(t, Owned, p.GetOwnershipState())
	assert.Equal(t, Vec3{5, 5, 5}, p.GetF(), "force is the one attribute this functor computes")
}

func TestCellBlock3DIndexMappingRoundTrips(t *testing.T) {
	cb := NewCellBlock3D(Vec3{0, 0, 0}, Vec3{10, 10, 10}, 1.0, 1.0)
	d := cb.DimsWithHalo()
	for x := 0; x < d[0]; x++ {
		for y := 0; y < d[1]; y++ {
			for z := 0; z < d[2]; z++ {
				idx := cb.index3DToIndex1D(x, y, z)
				gx, gy, gz := cb.Index1DToIndex3D(idx)
				assert.Equal(t, [3]int{x, y, z}, [3]int{gx, gy, gz})
			}
		}
	}
}

func TestCellBlock3DOwnedPositionsMapToOwnedCells(t *testing.T) {
	cb := NewCellBlock3D(Vec3{0, 0, 0}, Vec3{10, 10, 10}, 1.0, 1.0)
	x, y, z := cb.CellIndexOf(Vec3{5, 5, 5})
	assert.True(t, cb.IsOwnedCell(x, y, z))

	// Just past the box max along x drifts into the halo shell.
	hx, hy, hz := cb.CellIndexOf(Vec3{10.5, 5, 5})
	assert.False(t, cb.IsOwnedCell(hx, hy, hz))
	assert.Equal(t, hy, y)
	assert.Equal(t, hz, z)
}

func TestCellBlock3DClampsFarOutsidePositionsIntoOutermostHalo(t *testing.T) {
	cb := NewCellBlock3D(Vec3{0, 0, 0}, Vec3{10, 10, 10}, 1.0, 1.0)
	d := cb.DimsWithHalo()
	x, _, _ := cb.CellIndexOf(Vec3{1000, 5, 5})
	assert.Equal(t, d[0]-1, x)
}
