package autopas

import "math"

// testParticle is the package's test-only Particle: BaseParticle plus
// nothing extra, since the physics in these tests needs no per-particle
// properties beyond what a Lennard-Jones functor with a single global
// epsilon/sigma requires.
type testParticle struct {
	*BaseParticle
}

func newTestParticle(id uint64, r Vec3) *testParticle {
	return &testParticle{BaseParticle: NewBaseParticle(id, r)}
}

// ljFunctor is a single-species Lennard-Jones force kernel used across the
// package's tests as the stand-in for "the user's functor".
type ljFunctor struct {
	epsilon, sigma, cutoff float64
	newton3On, newton3Off  bool
}

func newLJFunctor(epsilon, sigma, cutoff float64) *ljFunctor {
	return &ljFunctor{epsilon: epsilon, sigma: sigma, cutoff: cutoff, newton3On: true, newton3Off: true}
}

func (f *ljFunctor) force(rij Vec3) Vec3 {
	r2 := rij.Dot(rij)
	if r2 > f.cutoff*f.cutoff || r2 == 0 {
		return Vec3{}
	}
	sigma6 := math.Pow(f.sigma, 6)
	invR2 := 1.0 / r2
	invR6 := sigma6 * invR2 * invR2 * invR2
	scalar := 24 * f.epsilon * invR2 * invR6 * (2*invR6 - 1)
	return rij.Mul(scalar)
}

func (f *ljFunctor) AoSPair(i, j Particle, newton3 bool) {
	rij := i.GetR().Sub(j.GetR())
	fij := f.force(rij)
	i.AddF(fij)
	if newton3 {
		j.AddF(fij.Mul(-1))
	}
}

func (f *ljFunctor) SoAPairSelf(buf *SoABuffer, newton3 bool) {
	n := buf.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rij := buf.Position(i).Sub(buf.Position(j))
			fij := f.force(rij)
			buf.AddForce(i, fij)
			// A self-cell call has no mirrored task to cover j's side,
			// so the reaction is applied here regardless of newton3.
			buf.AddForce(j, fij.Mul(-1))
		}
	}
}

func (f *ljFunctor) SoAPairCross(buf1, buf2 *SoABuffer, newton3 bool) {
	for i := 0; i < buf1.Size(); i++ {
		for j := 0; j < buf2.Size(); j++ {
			rij := buf1.Position(i).Sub(buf2.Position(j))
			fij := f.force(rij)
			buf1.AddForce(i, fij)
			if newton3 {
				buf2.AddForce(j, fij.Mul(-1))
			}
		}
	}
}

func (f *ljFunctor) SoAVerlet(buf *SoABuffer, i int, neighbors []int, newton3 bool) {
	for _, j := range neighbors {
		rij := buf.Position(i).Sub(buf.Position(j))
		fij := f.force(rij)
		buf.AddForce(i, fij)
		if newton3 {
			buf.AddForce(j, fij.Mul(-1))
		}
	}
}

func (f *ljFunctor) SoALoad() []AttributeHandle {
	return []AttributeHandle{AttrPosX, AttrPosY, AttrPosZ, AttrForceX, AttrForceY, AttrForceZ}
}

func (f *ljFunctor) SoAComputed() []AttributeHandle {
	return []AttributeHandle{AttrForceX, AttrForceY, AttrForceZ}
}

func (f *ljFunctor) AllowsNewton3() bool    { return f.newton3On }
func (f *ljFunctor) AllowsNonNewton3() bool { return f.newton3Off }

func (f *ljFunctor) IsAppropriateClusterSize(width int, layout DataLayoutOption) bool {
	return width == 4
}

func (f *ljFunctor) IsRelevantForTuning() bool { return true }

// simpleRNG is a tiny deterministic linear-congruential generator so tests
// get reproducible "random" particle clouds without pulling entropy from
// math/rand's global state.
type simpleRNG struct{ state uint64 }

func (r *simpleRNG) next() float64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return float64(r.state>>11) / float64(1<<53)
}

func (r *simpleRNG) vec3(lo, hi float64) Vec3 {
	span := hi - lo
	return Vec3{lo + r.next()*span, lo + r.next()*span, lo + r.next()*span}
}
