// Package models provides 4D wireframe meshes for Dimenshift: the built-in
// polytopes and glTF loading and saving.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/physics"
)

// ErrEdgeOutOfRange is returned by Validate when an edge references a
// vertex that does not exist.
var ErrEdgeOutOfRange = errors.New("edge index out of range")

// Mesh is a 4D wireframe: a vertex list and index pairs joining them.
type Mesh struct {
	Name     string
	Vertices []math4d.Vec4
	Edges    [][2]int

	// Bounding box in local space (see CalculateBounds)
	BoundsMin math4d.Vec4
	BoundsMax math4d.Vec4
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math4d.Vec4, 0),
		Edges:    make([][2]int, 0),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math4d.Vec4) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddEdge joins vertices a and b. Indices are not checked here; see Validate.
func (m *Mesh) AddEdge(a, b int) {
	m.Edges = append(m.Edges, [2]int{a, b})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math4d.Vec4 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math4d.Vec4 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// Validate checks that every edge references existing vertices.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, e := range m.Edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return fmt.Errorf("mesh %q edge %d (%d, %d) with %d vertices: %w",
				m.Name, i, e[0], e[1], n, ErrEdgeOutOfRange)
		}
	}
	return nil
}

// Transform applies mat to every vertex in place.
func (m *Mesh) Transform(mat math4d.Mat5) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec4(m.Vertices[i])
	}
	m.CalculateBounds()
}

// WorldBounds returns the bounding box of the vertices after mat is
// applied. It is recomputed on every call; the mesh is not modified.
func (m *Mesh) WorldBounds(mat math4d.Mat5) physics.AABB {
	box := physics.EmptyAABB()
	for _, v := range m.Vertices {
		box = box.Extend(mat.MulVec4(v))
	}
	return box
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math4d.Vec4, len(m.Vertices)),
		Edges:     make([][2]int, len(m.Edges)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Edges, m.Edges)
	return clone
}
