package autopas

import "math"

// CellBlock3D is a regular 3D grid of cells covering the owned box plus
// one layer of halo cells on every face. It generalizes the
// teacher's SpatialHashGrid (mod_spatialgrid.go): where that grid hashed
// sparse entity AABBs into a map keyed by a 3D-to-uint64 hash, this grid
// is dense (cells are stored in a flat slice, indexed by a proper 3D→1D
// mapping) because every cell, owned or halo, is always materialized for
// the lifetime of the container.
type CellBlock3D struct {
	boxMin, boxMax     Vec3
	interactionLength  float64
	cellSizeFactor     float64

	cellsPerDim  [3]int // owned cells per axis
	cellLength   [3]float64
	// dimsWithHalo[i] = cellsPerDim[i] + 2
	dimsWithHalo [3]int

	cells []*Cell
}

// NewCellBlock3D builds the grid. interactionLength is cutoff+skin;
// cellSizeFactor scales the minimum cell side length.
func NewCellBlock3D(boxMin, boxMax Vec3, interactionLength, cellSizeFactor float64) *CellBlock3D {
	cb := &CellBlock3D{
		boxMin:            boxMin,
		boxMax:            boxMax,
		interactionLength: interactionLength,
		cellSizeFactor:    cellSizeFactor,
	}
	minCellLen := interactionLength * cellSizeFactor
	boxSize := boxMax.Sub(boxMin)
	for i := 0; i < 3; i++ {
		size := axisOf(boxSize, i)
		n := int(math.Floor(size / minCellLen))
		if n < 1 {
			n = 1
		}
		cb.cellsPerDim[i] = n
		cb.cellLength[i] = size / float64(n)
		cb.dimsWithHalo[i] = n + 2
	}
	total := cb.dimsWithHalo[0] * cb.dimsWithHalo[1] * cb.dimsWithHalo[2]
	cb.cells = make([]*Cell, total)
	for i := range cb.cells {
		cb.cells[i] = NewCell()
	}
	return cb
}

func axisOf(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

// CellsPerDim returns the owned (non-halo) cell counts per axis.
func (cb *CellBlock3D) CellsPerDim() [3]int { return cb.cellsPerDim }

// DimsWithHalo returns the full grid dimensions including the halo shell.
func (cb *CellBlock3D) DimsWithHalo() [3]int { return cb.dimsWithHalo }

// NumCells returns the total number of cells, owned and halo.
func (cb *CellBlock3D) NumCells() int { return len(cb.cells) }

// index3DToIndex1D maps halo-inclusive 3D coordinates to a flat index.
func (cb *CellBlock3D) index3DToIndex1D(x, y, z int) int {
	d := cb.dimsWithHalo
	return x + d[0]*(y+d[1]*z)
}

// Index1DToIndex3D is the inverse mapping.
func (cb *CellBlock3D) Index1DToIndex3D(idx int) (x, y, z int) {
	d := cb.dimsWithHalo
	x = idx % d[0]
	idx /= d[0]
	y = idx % d[1]
	z = idx / d[1]
	return
}

// CellAt returns the cell at halo-inclusive 3D coordinates.
func (cb *CellBlock3D) CellAt(x, y, z int) *Cell {
	return cb.cells[cb.index3DToIndex1D(x, y, z)]
}

// CellByIndex1D returns the cell for a flat index.
func (cb *CellBlock3D) CellByIndex1D(idx int) *Cell {
	return cb.cells[idx]
}

// cellCoordinateFloat returns, per axis, the (possibly out-of-[0,dims))
// owned-relative cell coordinate for a position, before clamping into the
// halo shell.
func (cb *CellBlock3D) cellCoordinateFloat(pos Vec3, axis int) int {
	rel := axisOf(pos, axis) - axisOf(cb.boxMin, axis)
	c := int(math.Floor(rel / cb.cellLength[axis]))
	return c
}

// CellIndexOf maps a position to halo-inclusive 3D coordinates. Positions
// inside [boxMin,boxMax) map to owned cells (coordinate in [1,n]);
// positions in the one-deep halo shell map to halo cells (coordinate 0 or
// n+1); positions further out are clamped into the outermost halo cell,
// since the container contract guarantees callers never add particles
// beyond the halo shell for a valid interactionLength.
func (cb *CellBlock3D) CellIndexOf(pos Vec3) (x, y, z int) {
	coords := [3]int{}
	for axis := 0; axis < 3; axis++ {
		c := cb.cellCoordinateFloat(pos, axis) + 1 // +1 shifts into halo-inclusive coordinates
		if c < 0 {
			c = 0
		}
		if c > cb.dimsWithHalo[axis]-1 {
			c = cb.dimsWithHalo[axis] - 1
		}
		coords[axis] = c
	}
	return coords[0], coords[1], coords[2]
}

// IsInsideOwned reports whether pos lies in [boxMin, boxMax).
func (cb *CellBlock3D) IsInsideOwned(pos Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		v := axisOf(pos, axis)
		if v < axisOf(cb.boxMin, axis) || v >= axisOf(cb.boxMax, axis) {
			return false
		}
	}
	return true
}

// IsOwnedCell reports whether halo-inclusive coordinates address an owned
// (not halo) cell.
func (cb *CellBlock3D) IsOwnedCell(x, y, z int) bool {
	return x >= 1 && x <= cb.cellsPerDim[0] &&
		y >= 1 && y <= cb.cellsPerDim[1] &&
		z >= 1 && z <= cb.cellsPerDim[2]
}

// BoxMin / BoxMax expose the owned domain bounds.
func (cb *CellBlock3D) BoxMin() Vec3 { return cb.boxMin }
func (cb *CellBlock3D) BoxMax() Vec3 { return cb.boxMax }

// ForEachCellIndex1D calls fn once per flat cell index.
func (cb *CellBlock3D) ForEachCellIndex1D(fn func(idx int)) {
	for i := range cb.cells {
		fn(i)
	}
}
