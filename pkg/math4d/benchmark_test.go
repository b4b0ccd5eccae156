package math4d

import (
	"testing"
)

func BenchmarkMat5Mul(b *testing.B) {
	m1 := Translate5(V4(1, 2, 3, 4))
	m2 := RotationXW(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat5MulVec4(b *testing.B) {
	m := Translate5(V4(1, 2, 3, 4)).Mul(RotationZW(0.5))
	v := V4(1, 2, 3, 4)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkTRSCompose(b *testing.B) {
	// Same composition a scene node performs on every recompute
	t := Translate5(V4(1, 2, 3, 4))
	r := NewRotor(PlaneXW, 0.3).Mul(NewRotor(PlaneZW, 0.2)).Mat5()
	s := Scale5(V4(2, 2, 2, 2))

	for b.Loop() {
		_ = t.Mul(r.Mul(s))
	}
}

func BenchmarkRotorInverseApply(b *testing.B) {
	r := NewRotor(PlaneXW, 0.3).Mul(NewRotor(PlaneZX, 1.2))
	v := V4(1, 2, 3, 4)

	for b.Loop() {
		_ = r.ApplyInverse(v)
	}
}

func BenchmarkVec4Normalize(b *testing.B) {
	v := V4(1, 2, 3, 4)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec4Dot(b *testing.B) {
	v1 := V4(1, 2, 3, 4)
	v2 := V4(5, 6, 7, 8)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}
