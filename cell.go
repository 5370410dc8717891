package autopas

import (
	"sort"
	"sync"
)

// Cell is a thread-safe bag of particles plus an attached SoA buffer.
// The mutex guards concurrent Add calls from different traversal tasks
// rather than any lock-free structure: containers in this core favor one
// mutex per cell over a single global lock so disjoint-cell tasks never
// contend.
type Cell struct {
	mu        sync.Mutex
	particles []Particle
	soa       *SoABuffer
	soaStale  bool
}

func NewCell() *Cell {
	return &Cell{}
}

// Add appends a particle to the cell. Safe for concurrent use; never
// fails except on OOM.
func (c *Cell) Add(p Particle) {
	c.mu.Lock()
	c.particles = append(c.particles, p)
	c.soaStale = true
	c.mu.Unlock()
}

// Size returns the total particle count, including dummies.
func (c *Cell) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.particles)
}

// ActiveSize returns the count of non-dummy particles.
func (c *Cell) ActiveSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.particles {
		if !p.IsDummy() {
			n++
		}
	}
	return n
}

// Particles returns the cell's particles in insertion/sort order. When
// includeDummies is false, dummy particles are skipped.
func (c *Cell) Particles(includeDummies bool) []Particle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if includeDummies {
		out := make([]Particle, len(c.particles))
		copy(out, c.particles)
		return out
	}
	out := make([]Particle, 0, len(c.particles))
	for _, p := range c.particles {
		if !p.IsDummy() {
			out = append(out, p)
		}
	}
	return out
}

// Clear empties the cell (used by container repartitioning).
func (c *Cell) Clear() {
	c.mu.Lock()
	c.particles = c.particles[:0]
	c.soaStale = true
	c.mu.Unlock()
}

// RemoveIf removes every particle for which pred returns true, returning
// the removed particles. Used by LinkedCells.Update to pull out particles
// that drifted out of their owning cell.
func (c *Cell) RemoveIf(pred func(Particle) bool) []Particle {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.particles[:0:0]
	var removed []Particle
	for _, p := range c.particles {
		if pred(p) {
			removed = append(removed, p)
		} else {
			kept = append(kept, p)
		}
	}
	c.particles = kept
	c.soaStale = true
	return removed
}

// SortByAxis stably orders particles by the given coordinate (0=x,1=y,2=z),
// used when building fixed-width clusters for VerletClusterLists.
func (c *Cell) SortByAxis(axis int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(c.particles, func(i, j int) bool {
		return coord(c.particles[i].GetR(), axis) < coord(c.particles[j].GetR(), axis)
	})
}

func coord(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

// LoadSoA gathers this cell's particles into its attached SoA buffer and
// returns it. Subsequent AoS reads are undefined until ExtractSoA runs.
func (c *Cell) LoadSoA(f Functor) *SoABuffer {
	c.mu.Lock()
	particles := make([]Particle, len(c.particles))
	copy(particles, c.particles)
	c.mu.Unlock()

	buf := LoadSoA(particles, f)
	c.mu.Lock()
	c.soa = buf
	c.soaStale = false
	c.mu.Unlock()
	return buf
}

// ExtractSoA scatters the attached SoA buffer's computed attributes back
// into AoS and detaches the buffer.
func (c *Cell) ExtractSoA(f Functor) {
	c.mu.Lock()
	buf := c.soa
	c.soa = nil
	c.mu.Unlock()
	if buf == nil {
		return
	}
	buf.ExtractSoA(f)
}

// SoA returns the currently attached buffer, if any.
func (c *Cell) SoA() *SoABuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.soa
}
