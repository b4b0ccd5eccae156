package math4d

import (
	"errors"
	"testing"
)

func TestIdentityLeavesPointsUnchanged(t *testing.T) {
	points := []Vec4{
		Zero4(),
		V4(1, 2, 3, 4),
		V4(-5, 0.25, 100, -0.5),
	}
	id := Identity5()
	for _, p := range points {
		assertVec(t, "identity", id.MulVec4(p), p)
	}
}

func TestMulByIdentity(t *testing.T) {
	a := Translate5(V4(1, 2, 3, 4)).Mul(RotationXW(0.3)).Mul(Scale5(V4(2, 3, 4, 5)))
	if got := a.Mul(Identity5()); got != a {
		t.Errorf("A * I != A")
	}
	if got := Identity5().Mul(a); got != a {
		t.Errorf("I * A != A")
	}
}

func TestTranslationOfOrigin(t *testing.T) {
	v := V4(1, -2, 3, -4)
	assertVec(t, "translate origin", Translate5(v).MulVec4(Zero4()), v)
	assertVec(t, "translation column", Translate5(v).Translation(), v)
}

func TestScale(t *testing.T) {
	p := V4(1, 1, 1, 1)
	assertVec(t, "per-axis", Scale5(V4(2, 3, 4, 5)).MulVec4(p), V4(2, 3, 4, 5))
	assertVec(t, "uniform", ScaleUniform5(3).MulVec4(p), V4(3, 3, 3, 3))
}

func TestMulOrderAppliesRightFirst(t *testing.T) {
	// Scale then translate: (1,0,0,0) -> (2,0,0,0) -> (3,0,0,0)
	m := Translate5(V4(1, 0, 0, 0)).Mul(ScaleUniform5(2))
	assertVec(t, "T*S", m.MulVec4(V4(1, 0, 0, 0)), V4(3, 0, 0, 0))

	// Translate then scale: (1,0,0,0) -> (2,0,0,0) -> (4,0,0,0)
	m = ScaleUniform5(2).Mul(Translate5(V4(1, 0, 0, 0)))
	assertVec(t, "S*T", m.MulVec4(V4(1, 0, 0, 0)), V4(4, 0, 0, 0))
}

func TestMulDirIgnoresTranslation(t *testing.T) {
	m := Translate5(V4(10, 10, 10, 10))
	assertVec(t, "dir", m.MulDir(V4(1, 2, 3, 4)), V4(1, 2, 3, 4))
}

func TestNewMat5(t *testing.T) {
	rows := [][]float32{
		{1, 0, 0, 0, 7},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}
	m, err := NewMat5(rows)
	if err != nil {
		t.Fatalf("NewMat5: %v", err)
	}
	if m.Get(0, 4) != 7 {
		t.Errorf("m[0,4] = %v, want 7", m.Get(0, 4))
	}

	bad := []struct {
		name string
		rows [][]float32
	}{
		{"nil", nil},
		{"4 rows", rows[:4]},
		{"short row", [][]float32{
			{1, 0, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0, 0},
			{0, 0, 0, 1, 0},
			{0, 0, 0, 0, 1},
		}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMat5(tc.rows)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestTransposeAndAccessors(t *testing.T) {
	var m Mat5
	m.Set(1, 3, 9)
	if m.Transpose().Get(3, 1) != 9 {
		t.Errorf("transpose did not move (1,3) to (3,1)")
	}
	if m.Transpose().Transpose() != m {
		t.Errorf("double transpose changed matrix")
	}

	id := Identity5()
	id.SetTranslation(V4(1, 2, 3, 4))
	assertVec(t, "SetTranslation", id.MulVec4(Zero4()), V4(1, 2, 3, 4))
}
