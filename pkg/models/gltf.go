package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/dimenshift/pkg/math4d"
)

// Position4D is the custom vertex attribute that carries 4D positions.
// Application-specific glTF attributes must start with an underscore.
const Position4D = "_POSITION4D"

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// W is assigned to vertices that only have a 3D POSITION attribute.
	W float32
	// Triangles turns triangle primitives into their unique edges.
	// When false they are skipped.
	Triangles bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{Triangles: true}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. All primitives of all
// meshes are merged into one.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(doc.Meshes) == 1 && doc.Meshes[0].Name != "" {
		name = doc.Meshes[0].Name
	}
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		var stride int
		switch prim.Mode {
		case gltf.PrimitiveLines:
			stride = 2
		case gltf.PrimitiveTriangles:
			if !l.Triangles {
				continue
			}
			stride = 3
		default:
			// Points, strips and fans
			continue
		}

		positions, err := l.readPositions(doc, prim)
		if err != nil {
			return err
		}
		if positions == nil {
			continue
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// Indices are local to the primitive; rebasing must not reach
		// into a neighbour's vertices.
		for _, ix := range indices {
			if ix >= len(positions) {
				return fmt.Errorf("index %d, primitive has %d vertices: %w", ix, len(positions), ErrEdgeOutOfRange)
			}
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if stride == 2 {
			for i := 0; i+1 < len(indices); i += 2 {
				mesh.AddEdge(baseVertex+indices[i], baseVertex+indices[i+1])
			}
			continue
		}

		seen := make(map[[2]int]bool)
		for i := 0; i+2 < len(indices); i += 3 {
			tri := [3]int{indices[i], indices[i+1], indices[i+2]}
			for k := range 3 {
				a, b := tri[k], tri[(k+1)%3]
				if a > b {
					a, b = b, a
				}
				if seen[[2]int{a, b}] {
					continue
				}
				seen[[2]int{a, b}] = true
				mesh.AddEdge(baseVertex+a, baseVertex+b)
			}
		}
	}

	return nil
}

// readPositions prefers the 4D attribute and falls back to POSITION lifted
// to the loader's W. It returns nil when the primitive has neither.
func (l *GLTFLoader) readPositions(doc *gltf.Document, prim *gltf.Primitive) ([]math4d.Vec4, error) {
	if idx, ok := prim.Attributes[Position4D]; ok {
		positions, err := readVec4Accessor(doc, idx)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", Position4D, err)
		}
		return positions, nil
	}

	idx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	flat, err := readVec3Accessor(doc, idx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	positions := make([]math4d.Vec4, len(flat))
	for i, p := range flat {
		positions[i] = math4d.V4(p[0], p[1], p[2], l.W)
	}
	return positions, nil
}

// SaveGLB writes meshes to a binary glTF file, one glTF mesh and node per
// Mesh. Each becomes a LINES primitive carrying a _POSITION4D attribute and
// a 3D POSITION (the XYZ part) so ordinary viewers can still open it.
func SaveGLB(path string, meshes ...*Mesh) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "dimenshift"

	for _, m := range meshes {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("save %q: %w", m.Name, err)
		}

		pos4 := make([][4]float32, len(m.Vertices))
		pos3 := make([][3]float32, len(m.Vertices))
		for i, v := range m.Vertices {
			pos4[i] = [4]float32{v.X, v.Y, v.Z, v.W}
			pos3[i] = [3]float32{v.X, v.Y, v.Z}
		}

		prim := &gltf.Primitive{
			Mode: gltf.PrimitiveLines,
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, pos3),
				Position4D:    modeler.WriteAccessor(doc, gltf.TargetArrayBuffer, pos4),
			},
		}
		if len(m.Edges) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, edgeIndices(m)))
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// edgeIndices flattens edges into the smallest index type that fits.
func edgeIndices(m *Mesh) any {
	if len(m.Vertices) <= math.MaxUint16 {
		out := make([]uint16, 0, len(m.Edges)*2)
		for _, e := range m.Edges {
			out = append(out, uint16(e[0]), uint16(e[1]))
		}
		return out
	}
	out := make([]uint32, 0, len(m.Edges)*2)
	for _, e := range m.Edges {
		out = append(out, uint32(e[0]), uint32(e[1]))
	}
	return out
}

// readVec4Accessor reads Vec4 data from a GLTF accessor.
func readVec4Accessor(doc *gltf.Document, accessorIdx int) ([]math4d.Vec4, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("expected VEC4, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC4")
	}

	result := make([]math4d.Vec4, len(floats))
	for i, f := range floats {
		result[i] = math4d.V4(f[0], f[1], f[2], f[3])
	}

	return result, nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([][3]float32, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	return floats, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]

	// gltf.Open resolves both embedded GLB chunks and external .bin files
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec4, gltf.AccessorVec3:
		if accessor.ComponentType != gltf.ComponentFloat {
			break
		}
		n := 4
		if accessor.Type == gltf.AccessorVec3 {
			n = 3
		}
		if stride == 0 {
			stride = n * 4
		}
		if start+(count-1)*stride+n*4 > len(bufData) && count > 0 {
			return nil, fmt.Errorf("accessor overruns buffer (%d bytes)", len(bufData))
		}
		if n == 4 {
			result := make([][4]float32, count)
			for i := range count {
				offset := start + i*stride
				for j := range 4 {
					result[i][j] = readFloat32(bufData[offset+j*4:])
				}
			}
			return result, nil
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		size := 0
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			size = 1
		case gltf.ComponentUshort:
			size = 2
		case gltf.ComponentUint:
			size = 4
		}
		if size == 0 {
			break
		}
		if stride == 0 {
			stride = size
		}
		if count > 0 && start+(count-1)*stride+size > len(bufData) {
			return nil, fmt.Errorf("accessor overruns buffer (%d bytes)", len(bufData))
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				result[i] = binary.LittleEndian.Uint16(bufData[start+i*stride:])
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				result[i] = binary.LittleEndian.Uint32(bufData[start+i*stride:])
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
