// Package physics provides 4D bounding volumes, ray casting and a simple
// rigid-body integrator with floor collision.
package physics

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// AABB represents a 4D axis-aligned bounding box.
type AABB struct {
	Min math4d.Vec4
	Max math4d.Vec4
}

// NewAABB creates an AABB from min and max corners.
func NewAABB(min, max math4d.Vec4) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: math4d.V4(inf, inf, inf, inf),
		Max: math4d.V4(-inf, -inf, -inf, -inf),
	}
}

// FromCenterSize creates an AABB centered at center with full extents size.
func FromCenterSize(center, size math4d.Vec4) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// BoundsOf returns the smallest AABB containing all points.
// With no points it returns EmptyAABB.
func BoundsOf(points ...math4d.Vec4) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the box grown to include p.
func (b AABB) Extend(p math4d.Vec4) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// IsEmpty reports whether the box is inverted on any axis.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z || b.Min.W > b.Max.W
}

// Center returns the center of the box.
func (b AABB) Center() math4d.Vec4 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the full extents of the box.
func (b AABB) Size() math4d.Vec4 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p math4d.Vec4) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z &&
		p.W >= b.Min.W && p.W <= b.Max.W
}

// Intersects reports whether two boxes overlap on all four axes.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z &&
		b.Min.W <= o.Max.W && b.Max.W >= o.Min.W
}
