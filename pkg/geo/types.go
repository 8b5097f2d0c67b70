package geo

// Domain enumerates the element classes an attribute can attach to.
type Domain int

const (
	Point     Domain = iota // shared positions
	Vertex                  // primitive corners, each referencing one point
	Primitive               // polygons, an ordered list of vertices
	Detail                  // the geometry as a whole (one element)
)

// Domains lists every domain in export order.
var Domains = [...]Domain{Point, Vertex, Primitive, Detail}

func (d Domain) String() string {
	switch d {
	case Point:
		return "Point"
	case Vertex:
		return "Vertex"
	case Primitive:
		return "Primitive"
	case Detail:
		return "Detail"
	default:
		return "unknown"
	}
}

// AttribType is the declared storage type of an attribute.
type AttribType int

const (
	Int    AttribType = iota // int64 components
	Float                    // float64 components
	String                   // string components
	Dict                     // dictionary values; declared by some providers, never exported
)

func (t AttribType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Dict:
		return "dict"
	default:
		return "unknown"
	}
}

// Attrib describes one attribute of a domain.
type Attrib struct {
	Name string
	Type AttribType
	Size int // tuple width, >= 1
}

// Element is anything attribute values can be read from.
//
// AttribValue returns a scalar (int64, float64, string) for attributes of
// size 1 and a slice ([]int64, []float64, []string) otherwise. It returns nil
// when the attribute does not exist.
type Element interface {
	AttribValue(name string) any
}

// PointElem is one element of the Point domain.
type PointElem interface {
	Element
	Number() int
}

// VertexElem is one element of the Vertex domain.
type VertexElem interface {
	Element
	Number() int
	Point() PointElem
}

// PrimElem is one element of the Primitive domain.
type PrimElem interface {
	Element
	Number() int
	Vertices() []VertexElem
}

// Provider is a read-only view of a geometry. The provider itself is the
// single element of the Detail domain.
type Provider interface {
	Element

	// Attribs returns the attributes of d in declaration order.
	Attribs(d Domain) []Attrib

	Points() []PointElem
	Prims() []PrimElem

	// Intrinsic counters. These are authoritative and do not depend on
	// which attributes exist.
	PointCount() int
	PrimCount() int
}
