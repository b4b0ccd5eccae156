package controller

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/render"
)

// Default spring tuning: moderate speed, critically damped (no overshoot).
const (
	DefaultFrequency = 4.0
	DefaultDamping   = 1.0
)

// Frame times within this fraction of the current spring step reuse it.
const stepTolerance = 0.1

// CameraRig moves a camera through critically damped springs. In orbit mode
// the springs chase Orbit.Pose; in manual mode they chase a target moved by
// Nudge and Turn.
type CameraRig struct {
	Orbit  Orbit
	manual bool

	spring    harmonica.Spring
	step      float32
	frequency float64
	damping   float64

	// spring state per axis: X, Y, Z, W, yaw
	pos [5]float64
	vel [5]float64

	target    math4d.Vec4
	targetYaw float32
	turn      math4d.Rotor
}

// NewCameraRig creates a rig whose springs step at fps frames per second.
func NewCameraRig(orbit Orbit, fps int, frequency, damping float64) *CameraRig {
	return &CameraRig{
		Orbit:     orbit,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		step:      float32(harmonica.FPS(fps)),
		frequency: frequency,
		damping:   damping,
		turn:      math4d.IdentityRotor(),
	}
}

// SetStep retunes the springs for frames of dt seconds. Steps within
// stepTolerance of the current one, and non-positive dt, are ignored.
func (r *CameraRig) SetStep(dt float32) {
	if dt <= 0 || math32.Abs(dt-r.step) <= r.step*stepTolerance {
		return
	}
	r.step = dt
	r.spring = harmonica.NewSpring(float64(dt), r.frequency, r.damping)
}

// Step reports the frame time the springs are tuned for.
func (r *CameraRig) Step() float32 {
	return r.step
}

// Manual reports whether the rig is in manual flight.
func (r *CameraRig) Manual() bool {
	return r.manual
}

// SetManual switches between orbit and manual flight. Entering manual mode
// holds the camera where it is; leaving it drops manual turns so the orbit
// pose is a pure yaw again.
func (r *CameraRig) SetManual(manual bool) {
	if manual && !r.manual {
		r.target = r.current()
		r.targetYaw = float32(r.pos[4])
	}
	if !manual {
		r.turn = math4d.IdentityRotor()
	}
	r.manual = manual
}

// Hold enters manual mode at cam's current pose with zero velocity. The
// camera orientation becomes the rig's turn and yaw restarts at zero.
func (r *CameraRig) Hold(cam *render.Camera) {
	p := cam.Position
	r.pos = [5]float64{float64(p.X), float64(p.Y), float64(p.Z), float64(p.W), 0}
	r.vel = [5]float64{}
	r.turn = cam.Orientation
	r.target = p
	r.targetYaw = 0
	r.manual = true
}

// Nudge moves the manual target by delta in the camera's local frame.
// Ignored in orbit mode.
func (r *CameraRig) Nudge(localDelta math4d.Vec4) {
	if !r.manual {
		return
	}
	r.target = r.target.Add(r.orientation(r.targetYaw).Apply(localDelta))
}

// Turn adds a local rotation to the manual camera. Yaw (the ZX plane) is
// spring-smoothed; other planes apply immediately. Ignored in orbit mode.
func (r *CameraRig) Turn(p math4d.Plane, angle float32) {
	if !r.manual {
		return
	}
	if p == math4d.PlaneZX {
		r.targetYaw += angle
		return
	}
	r.turn = r.turn.Mul(math4d.NewRotor(p, angle))
}

// Update steps the springs once toward the current target and writes the
// result to cam. t is the scene clock in seconds. Each call advances the
// springs by Step seconds; see SetStep.
func (r *CameraRig) Update(cam *render.Camera, t float32) {
	target, yaw := r.goal(t)
	goals := [5]float64{
		float64(target.X), float64(target.Y), float64(target.Z), float64(target.W), float64(yaw),
	}
	for i := range r.pos {
		r.pos[i], r.vel[i] = r.spring.Update(r.pos[i], r.vel[i], goals[i])
	}
	r.apply(cam)
}

// Snap jumps straight to the target with zero velocity.
func (r *CameraRig) Snap(cam *render.Camera, t float32) {
	target, yaw := r.goal(t)
	r.pos = [5]float64{
		float64(target.X), float64(target.Y), float64(target.Z), float64(target.W), float64(yaw),
	}
	r.vel = [5]float64{}
	r.apply(cam)
}

// Reset returns to orbit mode and clears manual turns.
func (r *CameraRig) Reset(cam *render.Camera, t float32) {
	r.manual = false
	r.turn = math4d.IdentityRotor()
	r.Snap(cam, t)
}

func (r *CameraRig) goal(t float32) (math4d.Vec4, float32) {
	if r.manual {
		return r.target, r.targetYaw
	}
	return r.Orbit.Pose(t)
}

func (r *CameraRig) current() math4d.Vec4 {
	return math4d.V4(float32(r.pos[0]), float32(r.pos[1]), float32(r.pos[2]), float32(r.pos[3]))
}

func (r *CameraRig) orientation(yaw float32) math4d.Rotor {
	return math4d.NewRotor(math4d.PlaneZX, yaw).Mul(r.turn)
}

func (r *CameraRig) apply(cam *render.Camera) {
	cam.Position = r.current()
	cam.SetOrientation(r.orientation(float32(r.pos[4])))
}
