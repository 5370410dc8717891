package autopas

// SoABuffer is a columnar (structure-of-arrays) view over a set of
// particles, gathered on demand for a functor's SoA code path and
// scattered back afterwards, keyed by the functor-declared
// AttributeHandle set rather than a fixed, hardcoded column list.
//
// All columns are always allocated (simplicity over micro-optimizing
// unused columns); a functor only reads the columns it declared via
// SoALoad and only ExtractSoA copies back the columns declared via
// SoAComputed.
type SoABuffer struct {
	// owner, in source-cell order, lets ExtractSoA scatter values back to
	// the particles they were gathered from even after sorting.
	owner []Particle

	posX, posY, posZ    []float64
	velX, velY, velZ    []float64
	forceX, forceY, forceZ []float64
	oldForceX, oldForceY, oldForceZ []float64
	id                  []uint64
	typeID              []uint32
	ownership           []Ownership
}

// NewSoABuffer allocates columns sized for n particles.
func NewSoABuffer(n int) *SoABuffer {
	return &SoABuffer{
		owner:     make([]Particle, 0, n),
		posX:      make([]float64, 0, n),
		posY:      make([]float64, 0, n),
		posZ:      make([]float64, 0, n),
		velX:      make([]float64, 0, n),
		velY:      make([]float64, 0, n),
		velZ:      make([]float64, 0, n),
		forceX:    make([]float64, 0, n),
		forceY:    make([]float64, 0, n),
		forceZ:    make([]float64, 0, n),
		oldForceX: make([]float64, 0, n),
		oldForceY: make([]float64, 0, n),
		oldForceZ: make([]float64, 0, n),
		id:        make([]uint64, 0, n),
		typeID:    make([]uint32, 0, n),
		ownership: make([]Ownership, 0, n),
	}
}

// Size returns the number of rows gathered into the buffer.
func (b *SoABuffer) Size() int { return len(b.owner) }

// Append gathers one particle's attributes as a new row.
func (b *SoABuffer) Append(p Particle) {
	r, v, f, of := p.GetR(), p.GetV(), p.GetF(), p.GetOldF()
	b.owner = append(b.owner, p)
	b.posX, b.posY, b.posZ = append(b.posX, r.X()), append(b.posY, r.Y()), append(b.posZ, r.Z())
	b.velX, b.velY, b.velZ = append(b.velX, v.X()), append(b.velY, v.Y()), append(b.velZ, v.Z())
	b.forceX, b.forceY, b.forceZ = append(b.forceX, f.X()), append(b.forceY, f.Y()), append(b.forceZ, f.Z())
	b.oldForceX, b.oldForceY, b.oldForceZ = append(b.oldForceX, of.X()), append(b.oldForceY, of.Y()), append(b.oldForceZ, of.Z())
	b.id = append(b.id, p.GetID())
	b.typeID = append(b.typeID, p.GetTypeID())
	b.ownership = append(b.ownership, p.GetOwnershipState())
}

func (b *SoABuffer) Position(i int) Vec3 { return Vec3{b.posX[i], b.posY[i], b.posZ[i]} }
func (b *SoABuffer) Velocity(i int) Vec3 { return Vec3{b.velX[i], b.velY[i], b.velZ[i]} }
func (b *SoABuffer) Force(i int) Vec3    { return Vec3{b.forceX[i], b.forceY[i], b.forceZ[i]} }

func (b *SoABuffer) SetForce(i int, f Vec3) {
	b.forceX[i], b.forceY[i], b.forceZ[i] = f.X(), f.Y(), f.Z()
}

func (b *SoABuffer) AddForce(i int, f Vec3) {
	b.forceX[i] += f.X()
	b.forceY[i] += f.Y()
	b.forceZ[i] += f.Z()
}

func (b *SoABuffer) Ownership(i int) Ownership { return b.ownership[i] }
func (b *SoABuffer) ID(i int) uint64            { return b.id[i] }
func (b *SoABuffer) TypeID(i int) uint32        { return b.typeID[i] }

// LoadSoA gathers every particle passed in, dummies included, into a
// fresh SoABuffer. The functor argument only matters for which attributes
// get declared as "computed" at extract time; this core always gathers
// the full column set (cheap to do in Go; avoids a second code path per
// attribute combination).
func LoadSoA(particles []Particle, f Functor) *SoABuffer {
	buf := NewSoABuffer(len(particles))
	for _, p := range particles {
		buf.Append(p)
	}
	return buf
}

// ExtractSoA scatters the columns f.SoAComputed() declares back onto the
// owning particles. Attributes the functor does not mark computed must be
// left untouched by a load-then-extract round trip, so only force (the
// one attribute every functor in this core computes) is ever written back
// here unless the functor's SoAComputed list says otherwise.
func (b *SoABuffer) ExtractSoA(f Functor) {
	computed := f.SoAComputed()
	writeForce := attrSetContains(computed, AttrForceX, AttrForceY, AttrForceZ)
	writeVelocity := attrSetContains(computed, AttrVelX, AttrVelY, AttrVelZ)
	for i, p := range b.owner {
		if writeForce {
			p.SetF(b.Force(i))
		}
		if writeVelocity {
			p.SetV(b.Velocity(i))
		}
	}
}

func attrSetContains(attrs []AttributeHandle, any ...AttributeHandle) bool {
	for _, want := range any {
		for _, have := range attrs {
			if have == want {
				return true
			}
		}
	}
	return false
}
