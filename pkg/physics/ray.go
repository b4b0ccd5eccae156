package physics

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// ParallelEpsilon is the direction magnitude below which a ray is treated
// as parallel to a slab.
const ParallelEpsilon = 1e-6

// Ray is a half-line in 4D space. Direction is unit length, or zero when
// built from a degenerate direction.
type Ray struct {
	Origin    math4d.Vec4
	Direction math4d.Vec4
}

// NewRay creates a ray and normalizes its direction.
func NewRay(origin, direction math4d.Vec4) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) math4d.Vec4 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Intersects runs the slab test on X, Y, Z and W in turn.
// On a hit it reports the entry and exit distances along the ray.
// Entry is clamped to 0 when the origin is inside the box.
func (r Ray) Intersects(box AABB) (hit bool, tMin, tMax float32) {
	tMin = 0
	tMax = math32.MaxFloat32

	if !slab(r.Direction.X, r.Origin.X, box.Min.X, box.Max.X, &tMin, &tMax) {
		return false, 0, 0
	}
	if !slab(r.Direction.Y, r.Origin.Y, box.Min.Y, box.Max.Y, &tMin, &tMax) {
		return false, 0, 0
	}
	if !slab(r.Direction.Z, r.Origin.Z, box.Min.Z, box.Max.Z, &tMin, &tMax) {
		return false, 0, 0
	}
	if !slab(r.Direction.W, r.Origin.W, box.Min.W, box.Max.W, &tMin, &tMax) {
		return false, 0, 0
	}
	return true, tMin, tMax
}

// slab narrows [tMin, tMax] against one axis.
func slab(dir, origin, lo, hi float32, tMin, tMax *float32) bool {
	if math32.Abs(dir) < ParallelEpsilon {
		return origin >= lo && origin <= hi
	}

	t1 := (lo - origin) / dir
	t2 := (hi - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tMin {
		*tMin = t1
	}
	if t2 < *tMax {
		*tMax = t2
	}
	return *tMin <= *tMax && *tMax >= 0
}
