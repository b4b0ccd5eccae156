// Package scene provides the 4D scene graph: local transforms, a tree of
// nodes with cached world matrices, and the entities drawn by the renderer.
package scene

import "github.com/taigrr/dimenshift/pkg/math4d"

// Transform is a node's local placement: scale, then rotate, then translate.
type Transform struct {
	Position math4d.Vec4
	Scale    math4d.Vec4
	Rotation math4d.Rotor
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Scale:    math4d.One4(),
		Rotation: math4d.IdentityRotor(),
	}
}

// Matrix composes T·R·S.
func (t Transform) Matrix() math4d.Mat5 {
	return math4d.Translate5(t.Position).
		Mul(t.Rotation.Mat5()).
		Mul(math4d.Scale5(t.Scale))
}
