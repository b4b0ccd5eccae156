package physics

import (
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// Default body and floor parameters.
const (
	DefaultMass          = 1.0
	DefaultDrag          = 0.05
	DefaultBounciness    = 0.7
	DefaultFloorHeight   = -1.0
	DefaultFloorFriction = 0.9
)

// RigidBody holds the linear state of a simulated body. Position lives in
// the owner's transform, not here.
type RigidBody struct {
	Velocity     math4d.Vec4
	Acceleration math4d.Vec4 // accumulator, cleared after each step
	Mass         float32     // must be > 0
	Drag         float32
	Static       bool
	Bounciness   float32 // 0 = no bounce, 1 = perfectly elastic
}

// NewRigidBody creates a dynamic body with default parameters.
func NewRigidBody() *RigidBody {
	return &RigidBody{
		Mass:       DefaultMass,
		Drag:       DefaultDrag,
		Bounciness: DefaultBounciness,
	}
}

// AddForce accumulates force/mass into the acceleration.
// Static bodies ignore forces.
func (b *RigidBody) AddForce(force math4d.Vec4) {
	if b.Static {
		return
	}
	b.Acceleration = b.Acceleration.Add(force.Scale(1 / b.Mass))
}

// ApplyImpulse changes velocity by impulse/mass immediately.
func (b *RigidBody) ApplyImpulse(impulse math4d.Vec4) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// Stop clears velocity and acceleration.
func (b *RigidBody) Stop() {
	b.Velocity = math4d.Vec4{}
	b.Acceleration = math4d.Vec4{}
}

// Integrate advances b and pos by one explicit Euler step of dt seconds
// after accumulating the given forces. The drag factor 1-drag*dt is not
// clamped, so drag*dt > 1 reverses the velocity.
func Integrate(b *RigidBody, pos *math4d.Vec4, dt float32, forces ...math4d.Vec4) {
	integrate(b, pos, dt, false, forces)
}

func integrate(b *RigidBody, pos *math4d.Vec4, dt float32, clampDrag bool, forces []math4d.Vec4) {
	if b.Static {
		return
	}
	for _, f := range forces {
		b.AddForce(f)
	}

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))

	damping := 1 - b.Drag*dt
	if clampDrag && damping < 0 {
		damping = 0
	}
	b.Velocity = b.Velocity.Scale(damping)

	*pos = pos.Add(b.Velocity.Scale(dt))
	b.Acceleration = math4d.Vec4{}
}

// Floor is a horizontal plane at Y = Height.
type Floor struct {
	Height   float32
	Friction float32 // multiplier applied to X, Z and W velocity on contact
}

// DefaultFloor returns the floor used by the demo scene.
func DefaultFloor() Floor {
	return Floor{Height: DefaultFloorHeight, Friction: DefaultFloorFriction}
}

// Resolve handles contact when pos has dropped below the floor. It clamps
// Y, reflects vertical velocity scaled by bounciness and applies friction
// to the other three axes. It reports whether contact happened.
func (f Floor) Resolve(b *RigidBody, pos *math4d.Vec4) bool {
	if b.Static || pos.Y >= f.Height {
		return false
	}
	pos.Y = f.Height
	b.Velocity.Y = -b.Velocity.Y * b.Bounciness
	b.Velocity.X *= f.Friction
	b.Velocity.Z *= f.Friction
	b.Velocity.W *= f.Friction
	return true
}

// World bundles gravity, the floor and the drag policy.
type World struct {
	Gravity   math4d.Vec4
	Floor     Floor
	ClampDrag bool
}

// NewWorld returns a world with standard gravity along -Y and the default floor.
func NewWorld() *World {
	return &World{
		Gravity: math4d.V4(0, -9.8, 0, 0),
		Floor:   DefaultFloor(),
	}
}

// Step applies gravity and the extra forces, integrates one step and then
// resolves floor contact. It reports whether the body touched the floor.
func (w *World) Step(b *RigidBody, pos *math4d.Vec4, dt float32, forces ...math4d.Vec4) bool {
	if b.Static {
		return false
	}
	all := make([]math4d.Vec4, 0, len(forces)+1)
	all = append(all, w.Gravity.Scale(b.Mass))
	all = append(all, forces...)
	integrate(b, pos, dt, w.ClampDrag, all)
	return w.Floor.Resolve(b, pos)
}
