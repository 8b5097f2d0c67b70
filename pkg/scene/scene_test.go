package scene

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/kernel"
	"github.com/chazu/geoschema/pkg/kernel/sdfx"
)

const quadScene = `
; a single quad with positions and a class attribute
(setframe 24)
(defgeo "/obj/quad"
  (points 4)
  (prim 0 1 2 3)
  (attrib :point "P" :float 3 [0 0 0  1 0 0  1 1 0  0 1 0])
  (attrib :prim "class" :int [7])
  (attrib :vertex "uv" :float 2 [0 0 1 0 1 1 0 1])
  (attrib :detail "label" :string ["quad"]))
`

func loadString(t *testing.T, src string, frame *int, opts ...Option) (*Scene, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scenes/test.lisp", []byte(src), 0o644))
	opts = append([]Option{WithKernel(sdfx.New(12))}, opts...)
	return Load(fs, "/scenes/test.lisp", frame, opts...)
}

func TestLoadQuad(t *testing.T) {
	s, err := loadString(t, quadScene, nil)
	require.NoError(t, err)

	assert.Equal(t, "/scenes/test.lisp", s.Path())
	assert.Equal(t, 24, s.Frame())
	assert.Equal(t, []string{"/obj/quad"}, s.Paths())

	p, err := s.Node("/obj/quad")
	require.NoError(t, err)
	assert.Equal(t, 4, p.PointCount())
	assert.Equal(t, 1, p.PrimCount())

	assert.Equal(t, []geo.Attrib{{Name: "P", Type: geo.Float, Size: 3}}, p.Attribs(geo.Point))
	assert.Equal(t, []float64{1, 1, 0}, p.Points()[2].AttribValue("P"))
	assert.Equal(t, int64(7), p.Prims()[0].AttribValue("class"))
	assert.Equal(t, []float64{1, 0}, p.Prims()[0].Vertices()[1].AttribValue("uv"))
	assert.Equal(t, "quad", p.AttribValue("label"))
}

func TestLoadFrame(t *testing.T) {
	src := `(defgeo "/obj/f" (attrib :detail "frame" :int (list (frame))))`
	tests := []struct {
		name     string
		src      string
		override *int
		want     int
	}{
		{"default", src, nil, DefaultFrame},
		{"setframe", "(setframe 12)\n" + src, nil, 12},
		{"override wins", "(setframe 12)\n" + src, intPtr(3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadString(t, tt.src, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Frame())

			p, err := s.Node("/obj/f")
			require.NoError(t, err)
			assert.Equal(t, int64(tt.want), p.AttribValue("frame"))
		})
	}
}

func TestLoadEmptyGeometry(t *testing.T) {
	s, err := loadString(t, `(defgeo "/obj/empty")`, nil)
	require.NoError(t, err)

	p, err := s.Node("/obj/empty")
	require.NoError(t, err)
	assert.Equal(t, 0, p.PointCount())
	assert.Equal(t, 0, p.PrimCount())
}

func TestLoadEmptySource(t *testing.T) {
	s, err := loadString(t, "  \n", nil)
	require.NoError(t, err)
	assert.Empty(t, s.Paths())
}

func TestNodeUnknownPath(t *testing.T) {
	s, err := loadString(t, quadScene, nil)
	require.NoError(t, err)

	_, err = s.Node("/obj/missing")
	assert.True(t, errors.Is(err, ErrResolution), "got %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.lisp", nil)
	assert.True(t, errors.Is(err, ErrLoad), "got %v", err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `(defgeo "/obj/x" (points 4)`},
		{"prim out of range", `(defgeo "/obj/x" (points 2) (prim 0 1 2))`},
		{"wrong value count", `(defgeo "/obj/x" (points 2) (attrib :point "P" :float 3 [0 0 0]))`},
		{"attrib before points", `(defgeo "/obj/x" (attrib :point "P" :float [1]) (points 1))`},
		{"unknown domain", `(defgeo "/obj/x" (attrib :edge "e" :int))`},
		{"unknown type", `(defgeo "/obj/x" (attrib :point "e" :matrix))`},
		{"duplicate node", `(defgeo "/obj/x") (defgeo "/obj/x")`},
		{"non-positive box", `(defsolid "/obj/b" (box 1 0 1))`},
		{"defsolid without solid", `(defsolid "/obj/b" 5)`},
		{"dict values", `(defgeo "/obj/x" (attrib :detail "d" :dict ["a"]))`},
		{"unknown attrib keyword", `(defgeo "/obj/x" (points 1) (attrib :point "P" :float :width 3))`},
		{"extra attrib argument", `(defgeo "/obj/x" (points 1) (attrib :point "id" :int 1 [4] [5]))`},
		{"non-integer size keyword", `(defgeo "/obj/x" (points 1) (attrib :point "P" :float :size 1.5))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.src, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoad), "got %v", err)

			var evalErr EvalError
			assert.True(t, errors.As(err, &evalErr), "got %v", err)
		})
	}
}

func TestAttribKeywordArguments(t *testing.T) {
	src := `
(defgeo "/obj/kw"
  (points 2)
  (prim 0 1)
  (attrib :point "P" :float :size 3 :values [0 0 0  1 2 3])
  (attrib :point "id" :int :values [10 20])
  (attrib :vertex "uv" :float :values [0 0  1 1] :size 2)
  (attrib :prim "tag" :string :size 2))`
	s, err := loadString(t, src, nil)
	require.NoError(t, err)

	p, err := s.Node("/obj/kw")
	require.NoError(t, err)
	assert.Equal(t, []geo.Attrib{
		{Name: "P", Type: geo.Float, Size: 3},
		{Name: "id", Type: geo.Int, Size: 1},
	}, p.Attribs(geo.Point))
	assert.Equal(t, []float64{1, 2, 3}, p.Points()[1].AttribValue("P"))
	assert.Equal(t, int64(20), p.Points()[1].AttribValue("id"))
	assert.Equal(t, []float64{1, 1}, p.Prims()[0].Vertices()[1].AttribValue("uv"))
	assert.Equal(t, []string{"", ""}, p.Prims()[0].AttribValue("tag"))
}

func TestLoadDictAttributeWithoutValues(t *testing.T) {
	s, err := loadString(t, `(defgeo "/obj/x" (points 1) (attrib :point "meta" :dict))`, nil)
	require.NoError(t, err)

	p, err := s.Node("/obj/x")
	require.NoError(t, err)
	assert.Equal(t, []geo.Attrib{{Name: "meta", Type: geo.Dict, Size: 1}}, p.Attribs(geo.Point))
}

func TestSolidNode(t *testing.T) {
	src := `
(def peg (translate (cylinder 10 2) 0 0 5))
(defsolid "/obj/part" (difference (box 10 10 10) peg))`
	s, err := loadString(t, src, nil)
	require.NoError(t, err)

	p, err := s.Node("/obj/part")
	require.NoError(t, err)
	require.NotZero(t, p.PrimCount())
	assert.Equal(t, "/obj/part", p.AttribValue("name"))
	for _, pr := range p.Prims() {
		require.Len(t, pr.Vertices(), 3)
	}

	again, err := s.Node("/obj/part")
	require.NoError(t, err)
	assert.Same(t, p, again)
}

type panickingKernel struct{ *sdfx.Kernel }

func (panickingKernel) ToMesh(kernel.Solid) (*kernel.Mesh, error) {
	panic("sdfx: degenerate solid")
}

func TestSolidNodeKernelPanic(t *testing.T) {
	s, err := loadString(t, `(defsolid "/obj/part" (box 2 2 2))`, nil, WithKernel(panickingKernel{sdfx.New(8)}))
	require.NoError(t, err)

	var p geo.Provider
	require.NotPanics(t, func() {
		p, err = s.Node("/obj/part")
	})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), `node "/obj/part"`)
}

func intPtr(v int) *int { return &v }

func TestLoadExampleScene(t *testing.T) {
	s, err := Load(afero.NewOsFs(), "../../examples/table.lisp", nil, WithKernel(sdfx.New(12)))
	require.NoError(t, err)
	assert.Equal(t, []string{"/obj/table", "/obj/peg", "/obj/quad"}, s.Paths())

	p, err := s.Node("/obj/quad")
	require.NoError(t, err)
	assert.Equal(t, "mm", p.AttribValue("units"))
}
