// Package ebitenview draws Dimenshift wireframes in an ebiten window.
package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Target is a render.LineDrawer that strokes onto an ebiten image.
type Target struct {
	Image     *ebiten.Image
	Width     float32 // stroke width in pixels
	Antialias bool
}

// NewTarget creates a target with 1px antialiased strokes.
func NewTarget(img *ebiten.Image) *Target {
	return &Target{Image: img, Width: 1, Antialias: true}
}

// DrawLine strokes a line through pixel centers.
func (t *Target) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	vector.StrokeLine(t.Image,
		float32(x0)+0.5, float32(y0)+0.5,
		float32(x1)+0.5, float32(y1)+0.5,
		t.Width, c, t.Antialias)
}

// Size returns the image bounds.
func (t *Target) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}
