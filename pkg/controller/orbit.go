// Package controller drives the camera and the displayed polytope over
// time: the cinematic orbit, spring-smoothed manual flight, focal zoom and
// the compound 4D spin.
package controller

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// Orbit circles the origin in the XZ plane at a fixed height while bobbing
// along W.
type Orbit struct {
	Radius float32
	Speed  float32 // radians per second around Y
	Height float32

	WCenter    float32
	WAmplitude float32
	WSpeed     float32 // radians per second of the W bob
}

// DefaultOrbit returns the demo flight path: radius 6 at height 2, with W
// swinging between -6 and -2.
func DefaultOrbit() Orbit {
	return Orbit{
		Radius:     6,
		Speed:      0.5,
		Height:     2,
		WCenter:    -4,
		WAmplitude: 2,
		WSpeed:     0.3,
	}
}

// Pose returns the camera position at time t (seconds) and the yaw in the
// ZX plane that turns it back toward the center.
func (o Orbit) Pose(t float32) (math4d.Vec4, float32) {
	a := t * o.Speed
	pos := math4d.V4(
		math32.Sin(a)*o.Radius,
		o.Height,
		math32.Cos(a)*o.Radius,
		math32.Sin(t*o.WSpeed)*o.WAmplitude+o.WCenter,
	)
	return pos, math32.Pi - a
}

// Spinner accumulates the two angles of the showcase rotation.
type Spinner struct {
	AlphaRate float32 // radians per second
	BetaRate  float32

	Alpha, Beta float32
}

// NewSpinner returns a spinner with the default rates.
func NewSpinner() *Spinner {
	return &Spinner{AlphaRate: 1, BetaRate: 0.3}
}

// Update advances both angles by dt seconds.
func (s *Spinner) Update(dt float32) {
	s.Alpha += s.AlphaRate * dt
	s.Beta += s.BetaRate * dt
}

// Reset zeroes both angles.
func (s *Spinner) Reset() {
	s.Alpha, s.Beta = 0, 0
}

// Rotor returns XW(α)·ZW(β)·XY(α/2): the XY half-angle turn is applied
// first and the XW turn last.
func (s *Spinner) Rotor() math4d.Rotor {
	return math4d.NewRotor(math4d.PlaneXW, s.Alpha).
		Mul(math4d.NewRotor(math4d.PlaneZW, s.Beta)).
		Mul(math4d.NewRotor(math4d.PlaneXY, s.Alpha/2))
}
