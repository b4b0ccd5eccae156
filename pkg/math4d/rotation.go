package math4d

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Plane names one of the six simple rotation planes of 4D space.
// A plane rotation turns the two named axes and leaves the other two fixed.
type Plane int

const (
	PlaneXY Plane = iota // Z, W invariant
	PlaneYZ              // X, W invariant
	PlaneZX              // Y, W invariant
	PlaneXW              // Y, Z invariant
	PlaneYW              // X, Z invariant
	PlaneZW              // X, Y invariant
)

// Planes lists all rotation planes in declaration order.
var Planes = [6]Plane{PlaneXY, PlaneYZ, PlaneZX, PlaneXW, PlaneYW, PlaneZW}

var planeNames = [6]string{"XY", "YZ", "ZX", "XW", "YW", "ZW"}

func (p Plane) String() string {
	if p < 0 || int(p) >= len(planeNames) {
		return fmt.Sprintf("Plane(%d)", int(p))
	}
	return planeNames[p]
}

// ParsePlane parses a plane name such as "xw" or "ZX". "XZ" is accepted as ZX.
func ParsePlane(s string) (Plane, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "XZ" {
		return PlaneZX, nil
	}
	for i, n := range planeNames {
		if n == name {
			return Plane(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rotation plane %q: %w", s, ErrInvalidArgument)
}

// The six generators are spelled out as explicit templates. Their sign
// layouts are conventions shared with the camera and controller code.

// RotationXY rotates in the XY plane.
func RotationXY(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		c, -s, 0, 0, 0,
		s, c, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	}
}

// RotationYZ rotates in the YZ plane.
func RotationYZ(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		1, 0, 0, 0, 0,
		0, c, -s, 0, 0,
		0, s, c, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	}
}

// RotationZX rotates in the ZX plane (the horizontal plane).
func RotationZX(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		c, 0, s, 0, 0,
		0, 1, 0, 0, 0,
		-s, 0, c, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	}
}

// RotationXW rotates in the XW plane.
func RotationXW(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		c, 0, 0, -s, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		s, 0, 0, c, 0,
		0, 0, 0, 0, 1,
	}
}

// RotationYW rotates in the YW plane.
func RotationYW(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		1, 0, 0, 0, 0,
		0, c, 0, -s, 0,
		0, 0, 1, 0, 0,
		0, s, 0, c, 0,
		0, 0, 0, 0, 1,
	}
}

// RotationZW rotates in the ZW plane.
func RotationZW(angle float32) Mat5 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return Mat5{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, c, -s, 0,
		0, 0, s, c, 0,
		0, 0, 0, 0, 1,
	}
}

// PlaneRotation returns the generator for plane p.
func PlaneRotation(p Plane, angle float32) Mat5 {
	switch p {
	case PlaneXY:
		return RotationXY(angle)
	case PlaneYZ:
		return RotationYZ(angle)
	case PlaneZX:
		return RotationZX(angle)
	case PlaneXW:
		return RotationXW(angle)
	case PlaneYW:
		return RotationYW(angle)
	case PlaneZW:
		return RotationZW(angle)
	}
	return Identity5()
}

// Rotor is a rotation-only transform. It can only be built from the plane
// generators and composition, so its linear block is always orthonormal
// and its inverse is its transpose.
type Rotor struct {
	m Mat5
}

// IdentityRotor returns the rotor that leaves every vector unchanged.
func IdentityRotor() Rotor {
	return Rotor{m: Identity5()}
}

// NewRotor returns a rotation by angle (radians) in plane p.
func NewRotor(p Plane, angle float32) Rotor {
	return Rotor{m: PlaneRotation(p, angle)}
}

// Mul composes two rotors: a * b applies b first, then a.
//
//nolint:st1016 // a*b naming convention is clearer for composition
func (a Rotor) Mul(b Rotor) Rotor {
	if a.isZero() {
		a = IdentityRotor()
	}
	if b.isZero() {
		b = IdentityRotor()
	}
	return Rotor{m: a.m.Mul(b.m)}
}

// Inverse returns the opposite rotation (the transpose).
func (r Rotor) Inverse() Rotor {
	if r.isZero() {
		return IdentityRotor()
	}
	return Rotor{m: r.m.Transpose()}
}

// Mat5 returns the rotor as an affine transform.
// The zero Rotor behaves as the identity.
func (r Rotor) Mat5() Mat5 {
	if r.isZero() {
		return Identity5()
	}
	return r.m
}

// Apply rotates v.
func (r Rotor) Apply(v Vec4) Vec4 {
	return r.Mat5().MulDir(v)
}

// ApplyInverse rotates v by the inverse rotation without building it.
func (r Rotor) ApplyInverse(v Vec4) Vec4 {
	m := r.Mat5()
	return Vec4{
		m[0]*v.X + m[5]*v.Y + m[10]*v.Z + m[15]*v.W,
		m[1]*v.X + m[6]*v.Y + m[11]*v.Z + m[16]*v.W,
		m[2]*v.X + m[7]*v.Y + m[12]*v.Z + m[17]*v.W,
		m[3]*v.X + m[8]*v.Y + m[13]*v.Z + m[18]*v.W,
	}
}

// isZero reports whether r is the uninitialised zero value.
func (r Rotor) isZero() bool {
	return r.m == Mat5{}
}

// Angles4 holds one angle per rotation plane, in radians.
type Angles4 struct {
	XY, YZ, ZX, XW, YW, ZW float32
}

// Rotor composes all six plane rotations. ZW is applied first and XY last.
func (a Angles4) Rotor() Rotor {
	r := NewRotor(PlaneXY, a.XY)
	r = r.Mul(NewRotor(PlaneYZ, a.YZ))
	r = r.Mul(NewRotor(PlaneZX, a.ZX))
	r = r.Mul(NewRotor(PlaneXW, a.XW))
	r = r.Mul(NewRotor(PlaneYW, a.YW))
	r = r.Mul(NewRotor(PlaneZW, a.ZW))
	return r
}
