package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chewxy/math32"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// ErrUnknownShape is returned by ByName for unregistered polytope names.
var ErrUnknownShape = errors.New("unknown shape")

// Tesseract returns the 8-cell: 16 vertices at (±1, ±1, ±1, ±1) and
// 32 edges of length 2.
func Tesseract() *Mesh {
	m := NewMesh("tesseract")
	for i := range 16 {
		m.AddVertex(math4d.V4(bitSign(i, 1), bitSign(i, 2), bitSign(i, 4), bitSign(i, 8)))
	}
	ConnectByDistance(m, 2, 0.01)
	m.CalculateBounds()
	return m
}

// Pentatope returns the 5-cell: a tetrahedron at w = -1 and an apex on
// the W axis, every vertex joined to every other (10 edges).
func Pentatope() *Mesh {
	m := NewMesh("pentatope")
	m.AddVertex(math4d.V4(1, 1, 1, -1))
	m.AddVertex(math4d.V4(1, -1, -1, -1))
	m.AddVertex(math4d.V4(-1, 1, -1, -1))
	m.AddVertex(math4d.V4(-1, -1, 1, -1))
	m.AddVertex(math4d.V4(0, 0, 0, math32.Sqrt(5)-1))

	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			m.AddEdge(i, j)
		}
	}
	m.CalculateBounds()
	return m
}

// SixteenCell returns the cross-polytope: the 8 unit axis points, each
// joined to every other except its opposite (24 edges).
func SixteenCell() *Mesh {
	m := NewMesh("16-cell")
	for _, axis := range []math4d.Vec4{math4d.UnitX(), math4d.UnitY(), math4d.UnitZ(), math4d.UnitW()} {
		m.AddVertex(axis)
		m.AddVertex(axis.Negate())
	}
	ConnectByDistance(m, math32.Sqrt(2), 0.01)
	m.CalculateBounds()
	return m
}

// TwentyFourCell returns the 24-cell: every permutation of (±1, ±1, 0, 0),
// joined at distance √2 (96 edges).
func TwentyFourCell() *Mesh {
	m := NewMesh("24-cell")
	for a := range 4 {
		for b := a + 1; b < 4; b++ {
			for _, sa := range []float32{-1, 1} {
				for _, sb := range []float32{-1, 1} {
					var c [4]float32
					c[a], c[b] = sa, sb
					m.AddVertex(math4d.V4(c[0], c[1], c[2], c[3]))
				}
			}
		}
	}
	ConnectByDistance(m, math32.Sqrt(2), 0.01)
	m.CalculateBounds()
	return m
}

// HyperGrid returns a square grid of lines in the XZ plane at height y and
// w = 0, with 2*halfSize+1 lines along each axis spaced step apart.
func HyperGrid(halfSize int, step, y float32) *Mesh {
	m := NewMesh("grid")
	extent := float32(halfSize) * step

	// Lines along X
	for i := -halfSize; i <= halfSize; i++ {
		z := float32(i) * step
		a := m.AddVertex(math4d.V4(-extent, y, z, 0))
		b := m.AddVertex(math4d.V4(extent, y, z, 0))
		m.AddEdge(a, b)
	}
	// Lines along Z
	for i := -halfSize; i <= halfSize; i++ {
		x := float32(i) * step
		a := m.AddVertex(math4d.V4(x, y, -extent, 0))
		b := m.AddVertex(math4d.V4(x, y, extent, 0))
		m.AddEdge(a, b)
	}
	m.CalculateBounds()
	return m
}

// ConnectByDistance adds an edge between every vertex pair whose distance
// is within eps of dist.
func ConnectByDistance(m *Mesh, dist, eps float32) {
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			if math32.Abs(m.Vertices[i].Distance(m.Vertices[j])-dist) < eps {
				m.AddEdge(i, j)
			}
		}
	}
}

var shapes = map[string]func() *Mesh{
	"tesseract": Tesseract,
	"pentatope": Pentatope,
	"16-cell":   SixteenCell,
	"24-cell":   TwentyFourCell,
}

// ShapeNames returns the registered polytope names, sorted.
func ShapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName builds a fresh copy of the named polytope. Matching ignores case.
func ByName(name string) (*Mesh, error) {
	build, ok := shapes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q (known: %s): %w", name, strings.Join(ShapeNames(), ", "), ErrUnknownShape)
	}
	return build(), nil
}

func bitSign(i, bit int) float32 {
	if i&bit == 0 {
		return -1
	}
	return 1
}
