package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/physics"
)

// DefaultFocalLength is the distance along the camera's W axis from the
// eye to the 3-flat the scene is projected onto.
const DefaultFocalLength = 2.0

// MinDepthDivisor keeps the 4D perspective divide away from zero.
const MinDepthDivisor = 1e-4

// Camera is a 4D viewpoint. It looks along its local W axis and projects
// the world onto a 3D hyperplane, which ScreenProjection then maps to pixels.
type Camera struct {
	Position    math4d.Vec4
	Orientation math4d.Rotor

	FocalLength float32
	Screen      ScreenProjection
}

// NewCamera creates a camera at pos with identity orientation.
func NewCamera(pos math4d.Vec4) *Camera {
	return &Camera{
		Position:    pos,
		Orientation: math4d.IdentityRotor(),
		FocalLength: DefaultFocalLength,
		Screen:      DefaultScreenProjection(),
	}
}

// Move translates the camera by a delta given in its local frame:
// X right, Y up, Z forward, W ana/kata.
func (c *Camera) Move(localDelta math4d.Vec4) {
	c.Position = c.Position.Add(c.Orientation.Apply(localDelta))
}

// Rotate post-multiplies the orientation, turning in the camera's local frame.
func (c *Camera) Rotate(r math4d.Rotor) {
	c.Orientation = c.Orientation.Mul(r)
}

// SetOrientation replaces the orientation.
func (c *Camera) SetOrientation(r math4d.Rotor) {
	c.Orientation = r
}

// LookAlong resets the orientation to a single rotation in plane p.
func (c *Camera) LookAlong(p math4d.Plane, angle float32) {
	c.Orientation = math4d.NewRotor(p, angle)
}

// WorldToCamera maps a world point into the camera frame.
func (c *Camera) WorldToCamera(p math4d.Vec4) math4d.Vec4 {
	return c.Orientation.ApplyInverse(p.Sub(c.Position))
}

// Project maps a world point onto the camera's 3-flat. Camera-space W is
// the depth; the result has W = 0.
func (c *Camera) Project(p math4d.Vec4) math4d.Vec4 {
	v := c.WorldToCamera(p)

	div := c.FocalLength - v.W
	if math32.Abs(div) < MinDepthDivisor {
		if div < 0 {
			div = -MinDepthDivisor
		} else {
			div = MinDepthDivisor
		}
	}
	scale := 1 / div

	return math4d.V4(v.X*scale, v.Y*scale, v.Z*scale, 0)
}

// ProjectToScreen projects a world point all the way to pixels.
func (c *Camera) ProjectToScreen(p math4d.Vec4, width, height int) ScreenPoint {
	return c.Screen.Project(c.Project(p), width, height)
}

// ScreenPointToRay builds a picking ray from the camera position through
// the pixel (sx, sy), unprojected onto the w = 0 hyperplane at z = 0.
func (c *Camera) ScreenPointToRay(sx, sy float32, width, height int) physics.Ray {
	target := c.Screen.Unproject(sx, sy, width, height, 0)
	return physics.NewRay(c.Position, target.Sub(c.Position))
}
