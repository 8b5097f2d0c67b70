package kernel

import "fmt"

// Mesh is an indexed triangle mesh. Vertices and Normals hold 3 floats per
// mesh vertex; Indices holds 3 vertex indices per triangle.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
	Name     string // optional, exported as the detail "name" attribute
}

// VertexCount returns the number of mesh vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Validate checks buffer lengths and that every index is in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("kernel: mesh has %d vertex floats, not a multiple of 3", len(m.Vertices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("kernel: mesh has %d normal floats for %d vertex floats", len(m.Normals), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("kernel: mesh has %d indices, not a multiple of 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("kernel: index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}
