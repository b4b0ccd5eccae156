package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/scene"
)

type line struct {
	x0, y0, x1, y1 int
	c              color.RGBA
}

// recorder is a LineDrawer that keeps every call.
type recorder struct {
	w, h  int
	lines []line
}

func (r *recorder) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, c})
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func TestDrawMeshTesseract(t *testing.T) {
	rec := &recorder{w: 1280, h: 720}
	wf := NewWireframe(NewCamera(math4d.V4(0, 0, 0, -3.5)), rec)

	n := wf.DrawMesh(models.Tesseract(), math4d.Identity5(), color.RGBA{0, 255, 128, 255}, false)
	if n != 32 || len(rec.lines) != 32 {
		t.Errorf("drew %d edges (%d lines), want 32", n, len(rec.lines))
	}
}

func TestDrawMeshSkipsInvalidEndpoints(t *testing.T) {
	rec := &recorder{w: 800, h: 600}
	wf := NewWireframe(NewCamera(math4d.Zero4()), rec)

	m := models.NewMesh("probe")
	m.AddVertex(math4d.Zero4())
	m.AddVertex(math4d.V4(1, 0, 0, 0))
	m.AddVertex(math4d.V4(0, 0, 8, 0)) // lands on the viewer
	m.AddEdge(0, 1)
	m.AddEdge(0, 2)
	m.AddEdge(1, 2)
	m.AddEdge(0, 9) // out of range

	if n := wf.DrawMesh(m, math4d.Identity5(), ColorWhite, false); n != 1 {
		t.Errorf("drew %d edges, want 1", n)
	}
}

func TestDrawMeshColors(t *testing.T) {
	rec := &recorder{w: 800, h: 600}
	wf := NewWireframe(NewCamera(math4d.Zero4()), rec)

	m := models.NewMesh("segment")
	m.AddVertex(math4d.V4(-1, 0, 0, 0))
	m.AddVertex(math4d.V4(1, 0, 0, 0))
	m.AddEdge(0, 1)

	wf.DrawMesh(m, math4d.Identity5(), color.RGBA{255, 255, 255, 200}, false)
	want := color.RGBA{63, 127, 255, 200}
	if got := rec.lines[0].c; got != want {
		t.Errorf("gradient color = %v, want %v", got, want)
	}

	wf.DrawMesh(m, math4d.Identity5(), color.RGBA{255, 255, 255, 200}, true)
	if got := rec.lines[1].c; got != HighlightColor {
		t.Errorf("highlight color = %v, want %v", got, HighlightColor)
	}
}

func TestDepthGradientClamps(t *testing.T) {
	g := DefaultGradient()
	if got := g.At(-10); got != g.Far {
		t.Errorf("At(-10) = %v, want Far", got)
	}
	if got := g.At(10); got != g.Near {
		t.Errorf("At(10) = %v, want Near", got)
	}
}

func TestDrawSceneSkipsHiddenSubtrees(t *testing.T) {
	rec := &recorder{w: 800, h: 600}
	wf := NewWireframe(NewCamera(math4d.V4(0, 0, 0, -3.5)), rec)

	root := scene.NewNode("root")
	shown := scene.NewEntity("shown", models.Pentatope())
	hidden := scene.NewEntity("hidden", models.Tesseract())
	nested := scene.NewEntity("nested", models.SixteenCell())
	root.AddChild(shown)
	root.AddChild(hidden)
	hidden.AddChild(nested)
	hidden.Visible = false
	root.Update(0)

	if n := wf.DrawScene(root); n != 10 {
		t.Errorf("DrawScene drew %d edges, want 10 (pentatope only)", n)
	}
}

func TestDrawAxes(t *testing.T) {
	rec := &recorder{w: 800, h: 600}
	wf := NewWireframe(NewCamera(math4d.V4(0, 0, 0, -3.5)), rec)
	wf.DrawAxes(1)

	if len(rec.lines) != 4 {
		t.Fatalf("drew %d axes, want 4", len(rec.lines))
	}
	if rec.lines[0].x0 != 400 || rec.lines[0].y0 != 300 {
		t.Errorf("axes should start at screen center, got (%d, %d)", rec.lines[0].x0, rec.lines[0].y0)
	}
}

func TestFramebufferBlend(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)

	fb.SetPixel(1, 1, color.RGBA{255, 0, 0, 128})
	if got := fb.GetPixel(1, 1); got != (color.RGBA{128, 0, 0, 255}) {
		t.Errorf("blended pixel = %v", got)
	}

	fb.SetPixel(2, 2, color.RGBA{0, 255, 0, 0})
	if got := fb.GetPixel(2, 2); got != ColorBlack {
		t.Errorf("transparent write changed pixel to %v", got)
	}

	fb.SetPixel(-1, 10, ColorWhite)
	if got := fb.GetPixel(-1, 10); got != (color.RGBA{}) {
		t.Errorf("out of bounds read = %v", got)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 5, 9, 5, ColorWhite)

	for x := range 10 {
		if fb.GetPixel(x, 5) != ColorWhite {
			t.Errorf("pixel (%d, 5) not set", x)
		}
	}
	if fb.GetPixel(0, 4) == ColorWhite {
		t.Error("line bled into row 4")
	}

	// clipped line must not panic
	fb.DrawLine(-20, -20, 30, 30, ColorRed)
	if fb.GetPixel(3, 3) != ColorRed {
		t.Error("diagonal not drawn through the buffer")
	}
}

func TestFramebufferResizeAndPNG(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Resize(8, 6)
	if w, h := fb.Size(); w != 8 || h != 6 || len(fb.Pixels) != 48 {
		t.Fatalf("Resize gave %dx%d with %d pixels", w, h, len(fb.Pixels))
	}

	fb.Clear(ColorBlue)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}
