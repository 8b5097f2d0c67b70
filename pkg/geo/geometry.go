package geo

import "fmt"

// Compile-time interface check.
var _ Provider = (*Geometry)(nil)

// column holds the values of one attribute for every element of its
// domain, flattened: element i owns [i*Size, (i+1)*Size).
type column struct {
	Attrib
	ints   []int64
	floats []float64
	strs   []string
	dicts  []map[string]any
}

func (c *column) grow(n int) {
	k := n * c.Size
	switch c.Type {
	case Int:
		c.ints = append(c.ints, make([]int64, k)...)
	case Float:
		c.floats = append(c.floats, make([]float64, k)...)
	case String:
		c.strs = append(c.strs, make([]string, k)...)
	case Dict:
		c.dicts = append(c.dicts, make([]map[string]any, k)...)
	}
}

func (c *column) value(i int) any {
	lo, hi := i*c.Size, (i+1)*c.Size
	switch c.Type {
	case Int:
		if c.Size == 1 {
			return c.ints[lo]
		}
		return append([]int64(nil), c.ints[lo:hi]...)
	case Float:
		if c.Size == 1 {
			return c.floats[lo]
		}
		return append([]float64(nil), c.floats[lo:hi]...)
	case String:
		if c.Size == 1 {
			return c.strs[lo]
		}
		return append([]string(nil), c.strs[lo:hi]...)
	case Dict:
		if c.Size == 1 {
			return c.dicts[lo]
		}
		return append([]map[string]any(nil), c.dicts[lo:hi]...)
	}
	return nil
}

type point struct {
	g   *Geometry
	num int
}

func (p *point) Number() int                 { return p.num }
func (p *point) AttribValue(name string) any { return p.g.value(Point, p.num, name) }

type vertex struct {
	g   *Geometry
	num int // linear vertex number, in primitive order
	pt  int
}

func (v *vertex) Number() int                 { return v.num }
func (v *vertex) Point() PointElem            { return v.g.points[v.pt] }
func (v *vertex) AttribValue(name string) any { return v.g.value(Vertex, v.num, name) }

type prim struct {
	g     *Geometry
	num   int
	verts []VertexElem
}

func (p *prim) Number() int                 { return p.num }
func (p *prim) Vertices() []VertexElem      { return p.verts }
func (p *prim) AttribValue(name string) any { return p.g.value(Primitive, p.num, name) }

// Geometry is an in-memory Provider. Elements and attributes are appended
// through its builder methods; there is no removal.
type Geometry struct {
	points   []PointElem
	prims    []PrimElem
	vertices int
	columns  [len(Domains)][]*column
	index    [len(Domains)]map[string]*column
}

// New creates an empty geometry.
func New() *Geometry {
	g := &Geometry{}
	for i := range g.index {
		g.index[i] = make(map[string]*column)
	}
	return g
}

// Count returns the number of elements in d.
func (g *Geometry) Count(d Domain) int {
	switch d {
	case Point:
		return len(g.points)
	case Vertex:
		return g.vertices
	case Primitive:
		return len(g.prims)
	case Detail:
		return 1
	}
	return 0
}

// AddPoints appends n points and returns the number of the first one.
func (g *Geometry) AddPoints(n int) int {
	first := len(g.points)
	for i := 0; i < n; i++ {
		g.points = append(g.points, &point{g: g, num: first + i})
	}
	g.grow(Point, n)
	return first
}

// AddPrim appends a polygon whose vertices reference the given points, in
// order, and returns its primitive number.
func (g *Geometry) AddPrim(pts ...int) (int, error) {
	for _, pt := range pts {
		if pt < 0 || pt >= len(g.points) {
			return 0, fmt.Errorf("geo: primitive references point %d, geometry has %d points", pt, len(g.points))
		}
	}
	p := &prim{g: g, num: len(g.prims)}
	for _, pt := range pts {
		p.verts = append(p.verts, &vertex{g: g, num: g.vertices, pt: pt})
		g.vertices++
	}
	g.prims = append(g.prims, p)
	g.grow(Vertex, len(pts))
	g.grow(Primitive, 1)
	return p.num, nil
}

// AddAttrib declares a new attribute on d. Existing elements get zero values.
func (g *Geometry) AddAttrib(d Domain, name string, t AttribType, size int) error {
	if name == "" {
		return fmt.Errorf("geo: %s attribute name is empty", d)
	}
	if size < 1 {
		return fmt.Errorf("geo: %s attribute %q has size %d, want >= 1", d, name, size)
	}
	if _, ok := g.index[d][name]; ok {
		return fmt.Errorf("geo: %s attribute %q already exists", d, name)
	}
	c := &column{Attrib: Attrib{Name: name, Type: t, Size: size}}
	c.grow(g.Count(d))
	g.columns[d] = append(g.columns[d], c)
	g.index[d][name] = c
	return nil
}

// SetValues replaces every value of an attribute. values must be a flat
// slice matching the attribute type ([]int64, []float64, []string or
// []map[string]any) of length Count(d)*Size.
func (g *Geometry) SetValues(d Domain, name string, values any) error {
	c, ok := g.index[d][name]
	if !ok {
		return fmt.Errorf("geo: no %s attribute %q", d, name)
	}
	want := g.Count(d) * c.Size
	var got int
	switch v := values.(type) {
	case []int64:
		if c.Type != Int {
			return fmt.Errorf("geo: %s attribute %q is %s, got int values", d, name, c.Type)
		}
		got = len(v)
		if got == want {
			c.ints = append([]int64(nil), v...)
		}
	case []float64:
		if c.Type != Float {
			return fmt.Errorf("geo: %s attribute %q is %s, got float values", d, name, c.Type)
		}
		got = len(v)
		if got == want {
			c.floats = append([]float64(nil), v...)
		}
	case []string:
		if c.Type != String {
			return fmt.Errorf("geo: %s attribute %q is %s, got string values", d, name, c.Type)
		}
		got = len(v)
		if got == want {
			c.strs = append([]string(nil), v...)
		}
	case []map[string]any:
		if c.Type != Dict {
			return fmt.Errorf("geo: %s attribute %q is %s, got dict values", d, name, c.Type)
		}
		got = len(v)
		if got == want {
			c.dicts = append([]map[string]any(nil), v...)
		}
	default:
		return fmt.Errorf("geo: %s attribute %q: unsupported value slice %T", d, name, values)
	}
	if got != want {
		return fmt.Errorf("geo: %s attribute %q needs %d values, got %d", d, name, want, got)
	}
	return nil
}

// Attribs returns the attributes of d in declaration order.
func (g *Geometry) Attribs(d Domain) []Attrib {
	attrs := make([]Attrib, 0, len(g.columns[d]))
	for _, c := range g.columns[d] {
		attrs = append(attrs, c.Attrib)
	}
	return attrs
}

func (g *Geometry) Points() []PointElem { return g.points }
func (g *Geometry) Prims() []PrimElem   { return g.prims }
func (g *Geometry) PointCount() int     { return len(g.points) }
func (g *Geometry) PrimCount() int      { return len(g.prims) }
func (g *Geometry) VertexCount() int    { return g.vertices }

// AttribValue reads a Detail attribute.
func (g *Geometry) AttribValue(name string) any {
	return g.value(Detail, 0, name)
}

func (g *Geometry) value(d Domain, i int, name string) any {
	c, ok := g.index[d][name]
	if !ok {
		return nil
	}
	return c.value(i)
}

func (g *Geometry) grow(d Domain, n int) {
	for _, c := range g.columns[d] {
		c.grow(n)
	}
}
