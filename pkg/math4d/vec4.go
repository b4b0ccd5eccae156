// Package math4d provides the 4D math primitives for the Dimenshift engine.
package math4d

import (
	"fmt"

	"github.com/chewxy/math32"
)

// NormalizeEpsilon is the length below which Normalize returns the zero vector.
const NormalizeEpsilon = 1e-6

// Vec4 represents a point or direction in 4D Euclidean space.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 creates a new Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Zero4 returns the zero vector.
func Zero4() Vec4 {
	return Vec4{}
}

// One4 returns (1, 1, 1, 1).
func One4() Vec4 {
	return Vec4{1, 1, 1, 1}
}

// UnitX returns the X basis vector.
func UnitX() Vec4 {
	return Vec4{1, 0, 0, 0}
}

// UnitY returns the Y basis vector (world up).
func UnitY() Vec4 {
	return Vec4{0, 1, 0, 0}
}

// UnitZ returns the Z basis vector.
func UnitZ() Vec4 {
	return Vec4{0, 0, 1, 0}
}

// UnitW returns the W basis vector (ana).
func UnitW() Vec4 {
	return Vec4{0, 0, 0, 1}
}

// Add returns the vector sum a + b.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference a - b.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Negate returns -v.
func (v Vec4) Negate() Vec4 {
	return Vec4{-v.X, -v.Y, -v.Z, -v.W}
}

// Scale returns the scalar product v * s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Div returns v / s. Division by zero follows IEEE rules.
func (v Vec4) Div(s float32) Vec4 {
	return v.Scale(1 / s)
}

// Mul returns the component-wise product a * b.
//
//nolint:st1016 // a*b naming convention is clearer for vector operations
func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

// Dot returns the dot product a · b.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// LenSq returns the squared length (no sqrt).
func (v Vec4) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

// Len returns the length of the vector.
func (v Vec4) Len() float32 {
	return math32.Sqrt(v.LenSq())
}

// Normalize returns the unit vector in the same direction.
// Vectors shorter than NormalizeEpsilon normalize to the zero vector.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l < NormalizeEpsilon {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between a and b.
// t is clamped to [0, 1] before blending.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float32) Vec4 {
	t = Clamp(t, 0, 1)
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec4) Min(b Vec4) Vec4 {
	return Vec4{
		math32.Min(a.X, b.X),
		math32.Min(a.Y, b.Y),
		math32.Min(a.Z, b.Z),
		math32.Min(a.W, b.W),
	}
}

// Max returns the component-wise maximum.
func (a Vec4) Max(b Vec4) Vec4 {
	return Vec4{
		math32.Max(a.X, b.X),
		math32.Max(a.Y, b.Y),
		math32.Max(a.Z, b.Z),
		math32.Max(a.W, b.W),
	}
}

// Distance returns the Euclidean distance between two points.
func (a Vec4) Distance(b Vec4) float32 {
	return a.Sub(b).Len()
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec4) ApproxEqual(b Vec4, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps &&
		math32.Abs(a.W-b.W) <= eps
}

// String formats the vector with two decimals per component.
func (v Vec4) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", v.X, v.Y, v.Z, v.W)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
