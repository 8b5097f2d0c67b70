// Package manifest builds the metadata record written next to an export:
// identity, storage format, element counts and an index of every exported
// attribute with its type and tuple size.
package manifest

import (
	"bytes"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/chazu/geoschema/pkg/geo"
)

// Descriptor is the per-attribute entry of the index.
type Descriptor struct {
	Type string `json:"type" codec:"type"`
	Size int    `json:"size" codec:"size"`
}

// Entry is a named Descriptor.
type Entry struct {
	Name string `json:"name" codec:"name"`
	Descriptor
}

// Index lists the attributes of one domain in export order. It encodes to
// JSON as an object whose keys keep that order.
type Index []Entry

func (ix Index) MarshalJSON() ([]byte, error) {
	m := orderedmap.New()
	for _, e := range ix {
		m.Set(e.Name, e.Descriptor)
	}
	// orderedmap escapes HTML characters in keys, so the pairs are written
	// here in its key order.
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalLiteral(k)
		if err != nil {
			return nil, err
		}
		val, err := marshalLiteral(m.GetOrNil(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Attributes groups the per-domain indexes.
type Attributes struct {
	Point     Index `json:"Point" codec:"Point"`
	Vertex    Index `json:"Vertex" codec:"Vertex"`
	Primitive Index `json:"Primitive" codec:"Primitive"`
	Detail    Index `json:"Detail" codec:"Detail"`
}

func (a *Attributes) domain(d geo.Domain) *Index {
	switch d {
	case geo.Point:
		return &a.Point
	case geo.Vertex:
		return &a.Vertex
	case geo.Primitive:
		return &a.Primitive
	default:
		return &a.Detail
	}
}

// Storage records how payloads were written.
type Storage struct {
	Format string `json:"format" codec:"format"`
}

// Counts are the geometry's intrinsic element counts.
type Counts struct {
	Points     int `json:"points" codec:"points"`
	Primitives int `json:"primitives" codec:"primitives"`
}

// Manifest is the metadata record of one export. Field order is the key
// order of the text form.
type Manifest struct {
	Name            string     `json:"name" codec:"name"`
	Frame           int        `json:"frame" codec:"frame"`
	Node            string     `json:"node" codec:"node"`
	Source          string     `json:"source" codec:"source"`
	ProducerVersion string     `json:"producer_version" codec:"producer_version"`
	Storage         Storage    `json:"storage" codec:"storage"`
	Counts          Counts     `json:"counts" codec:"counts"`
	Attributes      Attributes `json:"attributes" codec:"attributes"`
}

// Lookup returns the descriptor of an attribute.
func (m *Manifest) Lookup(d geo.Domain, name string) (Descriptor, bool) {
	for _, e := range *m.Attributes.domain(d) {
		if e.Name == name {
			return e.Descriptor, true
		}
	}
	return Descriptor{}, false
}

// Info identifies an export.
type Info struct {
	Name            string
	Frame           int
	Node            string
	Source          string
	ProducerVersion string
	Format          string
}

// Builder collects descriptors while attributes are exported.
type Builder struct {
	m Manifest
}

// NewBuilder starts a manifest for the given export.
func NewBuilder(info Info) *Builder {
	return &Builder{m: Manifest{
		Name:            info.Name,
		Frame:           info.Frame,
		Node:            info.Node,
		Source:          info.Source,
		ProducerVersion: info.ProducerVersion,
		Storage:         Storage{Format: info.Format},
	}}
}

// Add records an exported attribute. Calls must follow export order.
func (b *Builder) Add(d geo.Domain, a geo.Attrib) {
	ix := b.m.Attributes.domain(d)
	*ix = append(*ix, Entry{Name: a.Name, Descriptor: Descriptor{Type: a.Type.String(), Size: a.Size}})
}

// Build finishes the manifest with the provider's intrinsic counts.
func (b *Builder) Build(p geo.Provider) *Manifest {
	m := b.m
	m.Counts = Counts{Points: p.PointCount(), Primitives: p.PrimCount()}
	return &m
}
