// Package tessellate converts kernel triangle meshes into exportable
// geometry. Mesh corners that share a position are welded into one point;
// every triangle becomes a three-vertex primitive.
package tessellate

import (
	"fmt"

	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/kernel"
	"github.com/samber/lo"
)

// Attribute names written by ToGeometry.
const (
	PositionName = "P"
	NormalName   = "N"
	PartName     = "name"
)

// welder assigns point numbers to distinct positions in first-seen order.
type welder struct {
	index map[[3]float32]int
	order [][3]float32
}

func newWelder() *welder {
	return &welder{index: make(map[[3]float32]int)}
}

func (w *welder) point(p [3]float32) int {
	if n, ok := w.index[p]; ok {
		return n
	}
	n := len(w.order)
	w.index[p] = n
	w.order = append(w.order, p)
	return n
}

func corner(buf []float32, i uint32) [3]float32 {
	return [3]float32{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

// ToGeometry builds a geometry from m. Points carry P, vertices carry N
// when the mesh has normals, and the detail carries name when the mesh is
// named. A nil or empty mesh yields a geometry with no elements.
func ToGeometry(m *kernel.Mesh) (*geo.Geometry, error) {
	g := geo.New()
	if m == nil {
		return g, nil
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}

	w := newWelder()
	tris := make([][3]int, m.TriangleCount())
	for t := range tris {
		for j := 0; j < 3; j++ {
			tris[t][j] = w.point(corner(m.Vertices, m.Indices[t*3+j]))
		}
	}

	g.AddPoints(len(w.order))
	for _, tri := range tris {
		if _, err := g.AddPrim(tri[0], tri[1], tri[2]); err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
	}

	if err := g.AddAttrib(geo.Point, PositionName, geo.Float, 3); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	positions := lo.FlatMap(w.order, func(p [3]float32, _ int) []float64 {
		return []float64{float64(p[0]), float64(p[1]), float64(p[2])}
	})
	if err := g.SetValues(geo.Point, PositionName, positions); err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}

	if len(m.Normals) > 0 {
		if err := g.AddAttrib(geo.Vertex, NormalName, geo.Float, 3); err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		// Vertices are numbered in primitive order, which is index order.
		normals := lo.FlatMap(m.Indices, func(i uint32, _ int) []float64 {
			n := corner(m.Normals, i)
			return []float64{float64(n[0]), float64(n[1]), float64(n[2])}
		})
		if err := g.SetValues(geo.Vertex, NormalName, normals); err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
	}

	if m.Name != "" {
		if err := g.AddAttrib(geo.Detail, PartName, geo.String, 1); err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		if err := g.SetValues(geo.Detail, PartName, []string{m.Name}); err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
	}
	return g, nil
}

// Tessellate meshes s with k and converts the result, naming the part.
// A kernel panic is returned as an error.
func Tessellate(k kernel.Kernel, s kernel.Solid, name string) (g *geo.Geometry, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("tessellate: ToMesh panicked for %s: %v", name, r)
		}
	}()
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", name, err)
	}
	m.Name = name
	return ToGeometry(m)
}
