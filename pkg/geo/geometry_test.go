package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainString(t *testing.T) {
	tests := []struct {
		d    Domain
		want string
	}{
		{Point, "Point"},
		{Vertex, "Vertex"},
		{Primitive, "Primitive"},
		{Detail, "Detail"},
		{Domain(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestAttribTypeString(t *testing.T) {
	assert.Equal(t, "int", Int.String())
	assert.Equal(t, "float", Float.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "dict", Dict.String())
}

func TestAddPrimBuildsVerticesInPrimitiveOrder(t *testing.T) {
	g := New()
	assert.Equal(t, 0, g.AddPoints(5))

	p0, err := g.AddPrim(0, 1, 2)
	require.NoError(t, err)
	p1, err := g.AddPrim(2, 3, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p0)
	assert.Equal(t, 1, p1)

	assert.Equal(t, 5, g.PointCount())
	assert.Equal(t, 2, g.PrimCount())
	assert.Equal(t, 7, g.VertexCount())
	assert.Equal(t, 7, g.Count(Vertex))
	assert.Equal(t, 1, g.Count(Detail))

	var nums, pts []int
	for _, p := range g.Prims() {
		for _, v := range p.Vertices() {
			nums = append(nums, v.Number())
			pts = append(pts, v.Point().Number())
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, nums)
	assert.Equal(t, []int{0, 1, 2, 2, 3, 4, 0}, pts)
}

func TestAddPrimRejectsUnknownPoint(t *testing.T) {
	g := New()
	g.AddPoints(2)
	_, err := g.AddPrim(0, 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point 2")
	assert.Equal(t, 0, g.PrimCount())
}

func TestAttribValues(t *testing.T) {
	g := New()
	g.AddPoints(2)
	_, err := g.AddPrim(0, 1)
	require.NoError(t, err)

	require.NoError(t, g.AddAttrib(Point, "P", Float, 3))
	require.NoError(t, g.SetValues(Point, "P", []float64{0, 1, 2, 3, 4, 5}))
	require.NoError(t, g.AddAttrib(Primitive, "id", Int, 1))
	require.NoError(t, g.SetValues(Primitive, "id", []int64{9}))
	require.NoError(t, g.AddAttrib(Detail, "name", String, 1))
	require.NoError(t, g.SetValues(Detail, "name", []string{"quad"}))

	assert.Equal(t, []float64{3, 4, 5}, g.Points()[1].AttribValue("P"))
	assert.Equal(t, int64(9), g.Prims()[0].AttribValue("id"))
	assert.Equal(t, "quad", g.AttribValue("name"))
	assert.Nil(t, g.AttribValue("missing"))

	// Returned tuples are copies.
	v := g.Points()[0].AttribValue("P").([]float64)
	v[0] = 100
	assert.Equal(t, []float64{0, 1, 2}, g.Points()[0].AttribValue("P"))
}

func TestAttribsKeepDeclarationOrder(t *testing.T) {
	g := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, g.AddAttrib(Point, name, Float, 1))
	}
	names := []string{}
	for _, a := range g.Attribs(Point) {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	assert.Empty(t, g.Attribs(Vertex))
}

func TestAttribGrowsWithElements(t *testing.T) {
	g := New()
	require.NoError(t, g.AddAttrib(Point, "Cd", Float, 3))
	g.AddPoints(3)
	assert.Equal(t, []float64{0, 0, 0}, g.Points()[2].AttribValue("Cd"))
	require.NoError(t, g.SetValues(Point, "Cd", make([]float64, 9)))
}

func TestAddAttribErrors(t *testing.T) {
	g := New()
	require.NoError(t, g.AddAttrib(Point, "P", Float, 3))

	tests := []struct {
		name   string
		domain Domain
		attr   string
		size   int
	}{
		{"empty name", Point, "", 1},
		{"zero size", Point, "x", 0},
		{"duplicate", Point, "P", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, g.AddAttrib(tt.domain, tt.attr, Float, tt.size))
		})
	}

	// Same name in another domain is fine.
	assert.NoError(t, g.AddAttrib(Vertex, "P", Float, 3))
}

func TestSetValuesErrors(t *testing.T) {
	g := New()
	g.AddPoints(2)
	require.NoError(t, g.AddAttrib(Point, "id", Int, 1))

	assert.Error(t, g.SetValues(Point, "missing", []int64{1, 2}))
	assert.Error(t, g.SetValues(Point, "id", []float64{1, 2}))
	assert.Error(t, g.SetValues(Point, "id", []int64{1}))
	assert.Error(t, g.SetValues(Point, "id", []int{1, 2}))
	assert.NoError(t, g.SetValues(Point, "id", []int64{1, 2}))
}
