package scene

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/kernel"
)

// node is one named entry of a scene: either explicit geometry or a solid
// that is tessellated on first resolution.
type node struct {
	geometry *geo.Geometry
	solid    kernel.Solid
}

// builder collects the results of builtin calls during evaluation.
type builder struct {
	k           kernel.Kernel
	frame       int
	frameLocked bool // set when the caller supplied the frame
	nodes       map[string]*node
	order       []string
}

func newBuilder(k kernel.Kernel, frame *int) *builder {
	b := &builder{k: k, frame: DefaultFrame, nodes: make(map[string]*node)}
	if frame != nil {
		b.frame = *frame
		b.frameLocked = true
	}
	return b
}

func (b *builder) define(path string, n *node) error {
	if path == "" {
		return fmt.Errorf("node path is empty")
	}
	if _, ok := b.nodes[path]; ok {
		return fmt.Errorf("node %q is already defined", path)
	}
	b.nodes[path] = n
	b.order = append(b.order, path)
	return nil
}

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

// geoOp is one step of a defgeo body, applied in source order.
type geoOp interface {
	zygo.Sexp
	apply(g *geo.Geometry) error
}

type sexpPoints struct {
	n int
}

func (p *sexpPoints) SexpString(ps *zygo.PrintState) string { return fmt.Sprintf("(points %d)", p.n) }
func (p *sexpPoints) Type() *zygo.RegisteredType            { return nil }

func (p *sexpPoints) apply(g *geo.Geometry) error {
	g.AddPoints(p.n)
	return nil
}

type sexpPrim struct {
	pts []int
}

func (p *sexpPrim) SexpString(ps *zygo.PrintState) string { return fmt.Sprintf("(prim %v)", p.pts) }
func (p *sexpPrim) Type() *zygo.RegisteredType            { return nil }

func (p *sexpPrim) apply(g *geo.Geometry) error {
	_, err := g.AddPrim(p.pts...)
	return err
}

type sexpAttrib struct {
	domain geo.Domain
	attrib geo.Attrib
	values any // nil keeps the zero defaults
}

func (a *sexpAttrib) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(attrib %s %q %s %d)", a.domain, a.attrib.Name, a.attrib.Type, a.attrib.Size)
}
func (a *sexpAttrib) Type() *zygo.RegisteredType { return nil }

func (a *sexpAttrib) apply(g *geo.Geometry) error {
	if err := g.AddAttrib(a.domain, a.attrib.Name, a.attrib.Type, a.attrib.Size); err != nil {
		return err
	}
	if a.values == nil {
		return nil
	}
	return g.SetValues(a.domain, a.attrib.Name, a.values)
}

type sexpSolid struct {
	s kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.s.BoundingBox()
	return fmt.Sprintf("(solid %v %v)", min, max)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef is returned by defgeo and defsolid.
type sexpNodeRef struct {
	path string
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string { return fmt.Sprintf("(node %q)", n.path) }
func (n *sexpNodeRef) Type() *zygo.RegisteredType            { return nil }

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

var domainNames = map[string]geo.Domain{
	"point":     geo.Point,
	"vertex":    geo.Vertex,
	"prim":      geo.Primitive,
	"primitive": geo.Primitive,
	"detail":    geo.Detail,
	"global":    geo.Detail,
}

var typeNames = map[string]geo.AttribType{
	"int":    geo.Int,
	"float":  geo.Float,
	"string": geo.String,
	"dict":   geo.Dict,
}

func toDomain(s zygo.Sexp) (geo.Domain, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	d, ok := domainNames[name]
	if !ok {
		return 0, fmt.Errorf("invalid domain %q, expected point, vertex, prim or detail", name)
	}
	return d, nil
}

func toAttribType(s zygo.Sexp) (geo.AttribType, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	t, ok := typeNames[name]
	if !ok {
		return 0, fmt.Errorf("invalid attribute type %q, expected int, float, string or dict", name)
	}
	return t, nil
}

// toValues converts a flat list of literals to the slice SetValues takes
// for t.
func toValues(t geo.AttribType, items []zygo.Sexp) (any, error) {
	switch t {
	case geo.Int:
		out := make([]int64, len(items))
		for i, it := range items {
			v, ok := it.(*zygo.SexpInt)
			if !ok {
				return nil, fmt.Errorf("value %d: expected integer, got %s", i, it.SexpString(nil))
			}
			out[i] = v.Val
		}
		return out, nil
	case geo.Float:
		out := make([]float64, len(items))
		for i, it := range items {
			f, err := toFloat64(it)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	case geo.String:
		out := make([]string, len(items))
		for i, it := range items {
			s, err := toString(it)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s attributes cannot be given values", t)
}

func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toPositive reads n numeric arguments that must all be greater than zero.
func toPositive(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires %d arguments, got %d", fn, len(names), len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		if f <= 0 {
			return nil, fmt.Errorf("%s: %s must be positive, got %g", fn, names[i], f)
		}
		out[i] = f
	}
	return out, nil
}

// toXYZ reads a solid followed by three numbers.
func toXYZ(fn string, args []zygo.Sexp) (kernel.Solid, [3]float64, error) {
	var v [3]float64
	if len(args) != 4 {
		return nil, v, fmt.Errorf("%s requires a solid and x y z, got %d arguments", fn, len(args))
	}
	s, err := toSolid(args[0])
	if err != nil {
		return nil, v, fmt.Errorf("%s: %w", fn, err)
	}
	for i := range v {
		if v[i], err = toFloat64(args[i+1]); err != nil {
			return nil, v, fmt.Errorf("%s: %c: %w", fn, "xyz"[i], err)
		}
	}
	return s, v, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL into env. Source must go through
// preprocessSource first so keywords are recognizable.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (frame)
	env.AddFunction("frame", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(b.frame)}, nil
	})

	// (setframe 24) sets the frame unless the caller fixed one.
	env.AddFunction("setframe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("setframe requires exactly 1 argument, got %d", len(args))
		}
		f, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("setframe: %w", err)
		}
		if !b.frameLocked {
			b.frame = f
		}
		return &zygo.SexpInt{Val: int64(b.frame)}, nil
	})

	// (points 4)
	env.AddFunction("points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("points requires exactly 1 argument, got %d", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("points: %w", err)
		}
		if n < 0 {
			return zygo.SexpNull, fmt.Errorf("points: count must not be negative, got %d", n)
		}
		return &sexpPoints{n: n}, nil
	})

	// (prim 0 1 2 3)
	env.AddFunction("prim", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p := &sexpPrim{pts: make([]int, len(args))}
		for i, a := range args {
			n, err := toInt(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("prim: point %d: %w", i, err)
			}
			p.pts[i] = n
		}
		return p, nil
	})

	// (attrib :point "P" :float 3 [0 0 0 ...])
	// (attrib :point "P" :float :size 3 :values [0 0 0 ...])
	// (attrib :detail "tag" :string)           ; zero defaults
	//
	// Domain, name and type are always positional. Size and values may be
	// given positionally, in that order, or as :size and :values.
	env.AddFunction("attrib", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 3 {
			return zygo.SexpNull, fmt.Errorf("attrib requires a domain, name, type, optional size and optional values")
		}
		d, err := toDomain(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attrib: domain: %w", err)
		}
		attrName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attrib: name: %w", err)
		}
		t, err := toAttribType(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("attrib %q: type: %w", attrName, err)
		}

		pa := parseArgs(args[3:])
		for k := range pa.kw {
			if k != "size" && k != "values" {
				return zygo.SexpNull, fmt.Errorf("attrib %q: unknown keyword :%s", attrName, k)
			}
		}
		size, hasSize := pa.kw["size"]
		values, hasValues := pa.kw["values"]
		rest := pa.positional
		if !hasSize && len(rest) > 0 {
			if _, isInt := rest[0].(*zygo.SexpInt); isInt {
				size, hasSize = rest[0], true
				rest = rest[1:]
			}
		}
		if !hasValues && len(rest) > 0 {
			values, hasValues = rest[0], true
			rest = rest[1:]
		}
		if len(rest) > 0 {
			return zygo.SexpNull, fmt.Errorf("attrib %q: unexpected argument %s", attrName, rest[0].SexpString(nil))
		}

		a := &sexpAttrib{domain: d, attrib: geo.Attrib{Name: attrName, Type: t, Size: 1}}
		if hasSize {
			if a.attrib.Size, err = toInt(size); err != nil {
				return zygo.SexpNull, fmt.Errorf("attrib %q: size: %w", attrName, err)
			}
		}
		if hasValues {
			items, err := sexpListToSlice(values)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("attrib %q: values: %w", attrName, err)
			}
			if a.values, err = toValues(t, items); err != nil {
				return zygo.SexpNull, fmt.Errorf("attrib %q: %w", attrName, err)
			}
		}
		return a, nil
	})

	// (defgeo "/obj/quad" (points 4) (prim 0 1 2 3) (attrib ...) ...)
	//
	// Body forms are applied in order; attributes must follow the points
	// and primitives they describe.
	env.AddFunction("defgeo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("defgeo requires a node path")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defgeo: path: %w", err)
		}
		g := geo.New()
		for i, a := range args[1:] {
			op, ok := a.(geoOp)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("defgeo %q: form %d: expected points, prim or attrib, got %s",
					path, i+1, a.SexpString(nil))
			}
			if err := op.apply(g); err != nil {
				return zygo.SexpNull, fmt.Errorf("defgeo %q: %s: %w", path, op.SexpString(nil), err)
			}
		}
		if err := b.define(path, &node{geometry: g}); err != nil {
			return zygo.SexpNull, fmt.Errorf("defgeo: %w", err)
		}
		return &sexpNodeRef{path: path}, nil
	})

	// (box 100 50 25)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := toPositive("box", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: b.k.Box(d[0], d[1], d[2])}, nil
	})

	// (cylinder height radius)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := toPositive("cylinder", args, "height", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: b.k.Cylinder(d[0], d[1])}, nil
	})

	// (sphere radius)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := toPositive("sphere", args, "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: b.k.Sphere(d[0])}, nil
	})

	// (union a b) (difference a b) (intersection a b)
	for fn, op := range map[string]func(a, c kernel.Solid) kernel.Solid{
		"union":        b.k.Union,
		"difference":   b.k.Difference,
		"intersection": b.k.Intersection,
	} {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 solids, got %d arguments", fn, len(args))
			}
			s0, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			s1, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
			}
			return &sexpSolid{s: op(s0, s1)}, nil
		})
	}

	// (translate solid x y z)
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, v, err := toXYZ("translate", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: b.k.Translate(s, v[0], v[1], v[2])}, nil
	})

	// (rotate solid x y z), degrees
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, v, err := toXYZ("rotate", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: b.k.Rotate(s, v[0], v[1], v[2])}, nil
	})

	// (defsolid "/obj/box" (box 1 2 3))
	env.AddFunction("defsolid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defsolid requires a node path and a solid")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid: path: %w", err)
		}
		s, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid %q: %w", path, err)
		}
		if err := b.define(path, &node{solid: s}); err != nil {
			return zygo.SexpNull, fmt.Errorf("defsolid: %w", err)
		}
		return &sexpNodeRef{path: path}, nil
	})
}
