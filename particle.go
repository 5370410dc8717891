package autopas

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is the position/velocity/force type used throughout the core. The
// teacher uses mgl32.Vec3 for its graphics-speed vector math
// (mod_spatialgrid.go, particles_ecs.go, physics.go); the core needs
// double precision to meet the 1e-10/1e-12 force-tolerance invariants, so
// it standardizes on mgl64.Vec3 instead.
type Vec3 = mgl64.Vec3

// Ownership tags exactly one state a particle is in at any time.
type Ownership int

const (
	Owned Ownership = iota
	Halo
	Dummy
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Halo:
		return "halo"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// AttributeHandle enumerates the fields a functor may request for its SoA
// buffers. LoadSoA currently gathers every one of them for every functor.
type AttributeHandle int

const (
	AttrPosX AttributeHandle = iota
	AttrPosY
	AttrPosZ
	AttrVelX
	AttrVelY
	AttrVelZ
	AttrForceX
	AttrForceY
	AttrForceZ
	AttrOldForceX
	AttrOldForceY
	AttrOldForceZ
	AttrID
	AttrTypeID
	AttrOwnershipState
)

// Particle is the capability the user's particle type must expose. AutoPas
// never defines a concrete particle struct: containers, cells, and
// traversals are generic over any type satisfying this interface.
type Particle interface {
	GetID() uint64
	SetID(id uint64)

	GetR() Vec3
	SetR(r Vec3)

	GetV() Vec3
	SetV(v Vec3)

	GetF() Vec3
	SetF(f Vec3)
	AddF(f Vec3)

	GetOldF() Vec3
	SetOldF(f Vec3)

	GetTypeID() uint32
	SetTypeID(t uint32)

	GetOwnershipState() Ownership
	SetOwnershipState(o Ownership)

	IsOwned() bool
	IsHalo() bool
	IsDummy() bool
}

// BaseParticle is a ready-to-embed implementation of the Particle
// capability; user particle types typically embed it and add their own
// physics-specific fields: unexported fields behind small receiver
// methods, no interfaces forced on the embedder beyond what's needed.
type BaseParticle struct {
	id        uint64
	r, v, f   Vec3
	oldF      Vec3
	typeID    uint32
	ownership Ownership
}

func NewBaseParticle(id uint64, r Vec3) *BaseParticle {
	return &BaseParticle{id: id, r: r, ownership: Owned}
}

func (p *BaseParticle) GetID() uint64     { return p.id }
func (p *BaseParticle) SetID(id uint64)   { p.id = id }
func (p *BaseParticle) GetR() Vec3        { return p.r }
func (p *BaseParticle) SetR(r Vec3)       { p.r = r }
func (p *BaseParticle) GetV() Vec3        { return p.v }
func (p *BaseParticle) SetV(v Vec3)       { p.v = v }
func (p *BaseParticle) GetF() Vec3        { return p.f }
func (p *BaseParticle) SetF(f Vec3)       { p.f = f }
func (p *BaseParticle) AddF(f Vec3)       { p.f = p.f.Add(f) }
func (p *BaseParticle) GetOldF() Vec3     { return p.oldF }
func (p *BaseParticle) SetOldF(f Vec3)    { p.oldF = f }
func (p *BaseParticle) GetTypeID() uint32 { return p.typeID }
func (p *BaseParticle) SetTypeID(t uint32) { p.typeID = t }

func (p *BaseParticle) GetOwnershipState() Ownership  { return p.ownership }
func (p *BaseParticle) SetOwnershipState(o Ownership) { p.ownership = o }

func (p *BaseParticle) IsOwned() bool { return p.ownership == Owned }
func (p *BaseParticle) IsHalo() bool  { return p.ownership == Halo }
func (p *BaseParticle) IsDummy() bool { return p.ownership == Dummy }

// dummySentinel is the position assigned to padding particles in
// fixed-width cluster storage: far enough outside any realistic domain
// that no real particle is ever within cutoff of it.
var dummySentinel = Vec3{mgl64DummyCoord, mgl64DummyCoord, mgl64DummyCoord}

const mgl64DummyCoord = 1.0e300

// NewDummyParticle builds a padding particle for fixed-width clusters.
func NewDummyParticle() *BaseParticle {
	p := NewBaseParticle(0, dummySentinel)
	p.ownership = Dummy
	return p
}
