package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/physics"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestProjectScalesByDepth(t *testing.T) {
	cam := NewCamera(math4d.V4(0, 0, 0, -3.5))

	got := cam.Project(math4d.V4(1, 2, 3, -3.5))
	want := math4d.V4(0.5, 1, 1.5, 0)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("Project = %v, want %v", got, want)
	}

	got = cam.Project(math4d.V4(0, 0, 0, -3.5))
	if got != math4d.Zero4() {
		t.Errorf("camera position should project to origin, got %v", got)
	}
}

func TestProjectOutputIsOnThreeFlat(t *testing.T) {
	cam := NewCamera(math4d.V4(1, -2, 3, -5))
	cam.Rotate(math4d.NewRotor(math4d.PlaneXW, 0.7))

	for _, p := range []math4d.Vec4{
		math4d.V4(1, 1, 1, 1),
		math4d.V4(-3, 0, 2, 9),
		math4d.V4(0, 0, 0, -100),
	} {
		if w := cam.Project(p).W; w != 0 {
			t.Errorf("Project(%v).W = %v, want 0", p, w)
		}
	}
}

func TestProjectClampsDivisor(t *testing.T) {
	cam := NewCamera(math4d.Zero4())

	tests := []struct {
		name  string
		w     float32
		wantX float32
	}{
		{"exactly at focal", 2, 1 / MinDepthDivisor},
		{"just before focal", 1.99995, 1 / MinDepthDivisor},
		{"just past focal", 2.00005, -1 / MinDepthDivisor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cam.Project(math4d.V4(1, 0, 0, tc.w))
			if math32.IsInf(got.X, 0) || math32.IsNaN(got.X) {
				t.Fatalf("X = %v, want finite", got.X)
			}
			if math32.Abs(got.X-tc.wantX) > 1 {
				t.Errorf("X = %v, want %v", got.X, tc.wantX)
			}
		})
	}
}

func TestWorldToCameraInvertsOrientation(t *testing.T) {
	cam := NewCamera(math4d.V4(1, 2, 3, 4))
	cam.SetOrientation(math4d.NewRotor(math4d.PlaneXY, math32.Pi/2).Mul(math4d.NewRotor(math4d.PlaneZW, 0.3)))

	local := math4d.V4(0.5, -1, 2, 0.25)
	world := cam.Position.Add(cam.Orientation.Apply(local))
	if got := cam.WorldToCamera(world); !got.ApproxEqual(local, eps) {
		t.Errorf("WorldToCamera = %v, want %v", got, local)
	}
}

func TestMoveUsesLocalFrame(t *testing.T) {
	cam := NewCamera(math4d.Zero4())
	cam.LookAlong(math4d.PlaneXY, math32.Pi/2)

	cam.Move(math4d.UnitX())
	if !cam.Position.ApproxEqual(math4d.UnitY(), eps) {
		t.Errorf("Position = %v, want %v", cam.Position, math4d.UnitY())
	}
}

func TestRotateComposesOnTheRight(t *testing.T) {
	a := math4d.NewRotor(math4d.PlaneXY, 0.4)
	b := math4d.NewRotor(math4d.PlaneXW, 1.1)

	cam := NewCamera(math4d.Zero4())
	cam.SetOrientation(a)
	cam.Rotate(b)

	want := a.Mul(b).Mat5()
	if !cam.Orientation.Mat5().ApproxEqual(want, eps) {
		t.Error("Rotate should post-multiply the orientation")
	}
}

func TestScreenProjection(t *testing.T) {
	s := DefaultScreenProjection()

	tests := []struct {
		name  string
		v     math4d.Vec4
		x, y  float32
		valid bool
	}{
		{"origin centers", math4d.Zero4(), 400, 300, true},
		{"+X right, +Y up", math4d.V4(1, 1, 0, 0), 550, 150, true},
		{"closer is bigger", math4d.V4(1, 0, 2, 0), 700, 300, true},
		{"behind near plane", math4d.V4(0, 0, 3.95, 0), 0, 0, false},
		{"behind viewer", math4d.V4(0, 0, 10, 0), 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := s.Project(tc.v, 800, 600)
			if p.Valid != tc.valid {
				t.Fatalf("Valid = %v, want %v", p.Valid, tc.valid)
			}
			if tc.valid && (!near(p.X, tc.x) || !near(p.Y, tc.y)) {
				t.Errorf("got (%v, %v), want (%v, %v)", p.X, p.Y, tc.x, tc.y)
			}
		})
	}
}

func TestUnprojectInvertsProject(t *testing.T) {
	s := DefaultScreenProjection()
	for _, v := range []math4d.Vec4{
		math4d.V4(0.3, -0.7, 0, 0),
		math4d.V4(-2, 1.5, 1, 0),
		math4d.V4(1, 1, -3, 0),
	} {
		p := s.Project(v, 1280, 720)
		got := s.Unproject(p.X, p.Y, 1280, 720, v.Z)
		if !got.ApproxEqual(v, eps) {
			t.Errorf("Unproject(Project(%v)) = %v", v, got)
		}
	}
}

func TestScreenPointToRay(t *testing.T) {
	cam := NewCamera(math4d.V4(0, 0, 0, -3.5))
	box := physics.NewAABB(math4d.V4(-1, -1, -1, -1), math4d.V4(1, 1, 1, 1))

	ray := cam.ScreenPointToRay(640, 360, 1280, 720)
	if ray.Origin != cam.Position {
		t.Errorf("Origin = %v, want camera position", ray.Origin)
	}
	if !ray.Direction.ApproxEqual(math4d.UnitW(), eps) {
		t.Errorf("center pixel Direction = %v, want +W", ray.Direction)
	}
	hit, tMin, _ := ray.Intersects(box)
	if !hit || !near(tMin, 2.5) {
		t.Errorf("center ray: hit=%v tMin=%v, want hit at 2.5", hit, tMin)
	}

	ray = cam.ScreenPointToRay(0, 0, 1280, 720)
	if hit, _, _ := ray.Intersects(box); hit {
		t.Error("corner ray should miss the unit box")
	}
	if ray.Direction.X >= 0 || ray.Direction.Y <= 0 {
		t.Errorf("top-left pixel should point -X and +Y, got %v", ray.Direction)
	}
}
