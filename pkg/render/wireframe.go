package render

import (
	"image/color"

	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/scene"
)

// HighlightColor replaces the depth gradient on highlighted entities.
var HighlightColor = color.RGBA{255, 0, 0, 255}

// DepthGradient colors a vertex by its world W coordinate.
type DepthGradient struct {
	Far, Near  [4]float32 // RGBA in 0-1 range
	WMin, WMax float32
}

// DefaultGradient fades from translucent purple at w = -2 to opaque cyan
// at w = 2.
func DefaultGradient() DepthGradient {
	return DepthGradient{
		Far:  [4]float32{0.5, 0, 1, 0.4},
		Near: [4]float32{0, 1, 1, 1},
		WMin: -2,
		WMax: 2,
	}
}

// At returns the gradient color for w as 0-1 RGBA.
func (g DepthGradient) At(w float32) [4]float32 {
	t := math4d.Clamp((w-g.WMin)/(g.WMax-g.WMin), 0, 1)
	var out [4]float32
	for i := range out {
		out[i] = g.Far[i] + (g.Near[i]-g.Far[i])*t
	}
	return out
}

// Wireframe draws meshes through a camera onto a LineDrawer.
type Wireframe struct {
	Camera   *Camera
	Target   LineDrawer
	Gradient DepthGradient

	// scratch buffers reused across meshes
	points []ScreenPoint
	depths []float32
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, target LineDrawer) *Wireframe {
	return &Wireframe{
		Camera:   camera,
		Target:   target,
		Gradient: DefaultGradient(),
	}
}

// DrawMesh draws every edge of mesh placed by world. Each vertex is
// projected once; edges with an endpoint behind the camera are skipped.
// Meshes are expected to pass Mesh.Validate when built or loaded; an edge
// index outside the vertex list is skipped rather than drawn. Edge color is
// the gradient at the endpoints' mean W multiplied by tint, with tint's
// alpha. Highlighted meshes use HighlightColor. Returns the number of
// edges drawn.
func (w *Wireframe) DrawMesh(mesh *models.Mesh, world math4d.Mat5, tint color.RGBA, highlighted bool) int {
	width, height := w.Target.Size()

	w.points = w.points[:0]
	w.depths = w.depths[:0]
	for _, v := range mesh.Vertices {
		p := world.MulVec4(v)
		w.points = append(w.points, w.Camera.ProjectToScreen(p, width, height))
		w.depths = append(w.depths, p.W)
	}

	drawn := 0
	for _, e := range mesh.Edges {
		if e[0] < 0 || e[0] >= len(w.points) || e[1] < 0 || e[1] >= len(w.points) {
			continue
		}
		a, b := w.points[e[0]], w.points[e[1]]
		if !a.Valid || !b.Valid {
			continue
		}

		c := HighlightColor
		if !highlighted {
			c = w.edgeColor(w.depths[e[0]], w.depths[e[1]], tint)
		}

		x0, y0 := a.Pixel()
		x1, y1 := b.Pixel()
		w.Target.DrawLine(x0, y0, x1, y1, c)
		drawn++
	}
	return drawn
}

func (w *Wireframe) edgeColor(w0, w1 float32, tint color.RGBA) color.RGBA {
	g0 := w.Gradient.At(w0)
	g1 := w.Gradient.At(w1)
	return color.RGBA{
		R: uint8((g0[0] + g1[0]) / 2 * float32(tint.R)),
		G: uint8((g0[1] + g1[1]) / 2 * float32(tint.G)),
		B: uint8((g0[2] + g1[2]) / 2 * float32(tint.B)),
		A: tint.A,
	}
}

// DrawScene draws every visible node with a mesh. Hidden nodes hide their
// whole subtree. World matrices are read as cached by the last Update.
// Returns the number of edges drawn.
func (w *Wireframe) DrawScene(root *scene.Node) int {
	drawn := 0
	root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh != nil {
			drawn += w.DrawMesh(n.Mesh, n.WorldMatrix(), n.Color, n.Highlighted)
		}
		return true
	})
	return drawn
}

// DrawAxes draws the four world axes from the origin: X red, Y green,
// Z blue and W magenta.
func (w *Wireframe) DrawAxes(length float32) {
	width, height := w.Target.Size()
	origin := w.Camera.ProjectToScreen(math4d.Zero4(), width, height)
	if !origin.Valid {
		return
	}
	ox, oy := origin.Pixel()

	axes := []struct {
		dir math4d.Vec4
		c   color.RGBA
	}{
		{math4d.UnitX(), ColorRed},
		{math4d.UnitY(), ColorGreen},
		{math4d.UnitZ(), ColorBlue},
		{math4d.UnitW(), ColorMagenta},
	}
	for _, a := range axes {
		end := w.Camera.ProjectToScreen(a.dir.Scale(length), width, height)
		if !end.Valid {
			continue
		}
		x, y := end.Pixel()
		w.Target.DrawLine(ox, oy, x, y, a.c)
	}
}
