package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

func unitBox() AABB {
	return NewAABB(math4d.V4(-1, -1, -1, -1), math4d.V4(1, 1, 1, 1))
}

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(math4d.Zero4(), math4d.V4(0, 0, 0, 5))
	assert.Equal(t, math4d.UnitW(), r.Direction)

	r = NewRay(math4d.Zero4(), math4d.Zero4())
	assert.Equal(t, math4d.Zero4(), r.Direction)
}

func TestRayAt(t *testing.T) {
	r := NewRay(math4d.V4(0, 0, 0, -10), math4d.UnitW())
	assert.True(t, r.At(9).ApproxEqual(math4d.V4(0, 0, 0, -1), 1e-6))
}

func TestRayHitsAlongW(t *testing.T) {
	r := NewRay(math4d.V4(0, 0, 0, -10), math4d.V4(0, 0, 0, 1))

	hit, tMin, tMax := r.Intersects(unitBox())
	require.True(t, hit)
	assert.InDelta(t, 9, tMin, 1e-5, "entry at w=-1")
	assert.InDelta(t, 11, tMax, 1e-5, "exit at w=1")
	assert.InDelta(t, -1, r.At(tMin).W, 1e-5)
	assert.InDelta(t, 1, r.At(tMax).W, 1e-5)
}

func TestRayPointingAwayMisses(t *testing.T) {
	r := NewRay(math4d.V4(0, 0, 0, -10), math4d.V4(0, 0, 0, -1))

	hit, _, _ := r.Intersects(unitBox())
	assert.False(t, hit)
}

func TestRayIntersectCases(t *testing.T) {
	tests := []struct {
		name   string
		origin math4d.Vec4
		dir    math4d.Vec4
		hit    bool
	}{
		{"along X", math4d.V4(-5, 0, 0, 0), math4d.UnitX(), true},
		{"along Y", math4d.V4(0, 5, 0, 0), math4d.UnitY().Negate(), true},
		{"along Z", math4d.V4(0, 0, -5, 0), math4d.UnitZ(), true},
		{"diagonal", math4d.V4(-5, -5, -5, -5), math4d.One4(), true},
		{"parallel outside slab", math4d.V4(0, 2, 0, -10), math4d.UnitW(), false},
		{"parallel on slab edge", math4d.V4(0, 1, 0, -10), math4d.UnitW(), true},
		{"offset miss", math4d.V4(3, 0, 0, -10), math4d.V4(0, 0.01, 0, 1), false},
		{"box behind origin", math4d.V4(0, 0, 0, 5), math4d.UnitW(), false},
		{"zero direction inside", math4d.Zero4(), math4d.Zero4(), true},
		{"zero direction outside", math4d.V4(5, 0, 0, 0), math4d.Zero4(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, tMin, tMax := NewRay(tc.origin, tc.dir).Intersects(unitBox())
			assert.Equal(t, tc.hit, hit)
			if hit {
				assert.LessOrEqual(t, tMin, tMax)
				assert.GreaterOrEqual(t, tMin, float32(0))
			}
		})
	}
}

func TestRayFromInsideBox(t *testing.T) {
	hit, tMin, tMax := NewRay(math4d.Zero4(), math4d.UnitX()).Intersects(unitBox())
	require.True(t, hit)
	assert.Equal(t, float32(0), tMin)
	assert.InDelta(t, 1, tMax, 1e-6)
}
