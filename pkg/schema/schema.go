// Package schema exports a geometry into the attribute schema: one typed
// array per attribute, grouped by domain, plus the topology arrays needed to
// rebuild connectivity and a manifest describing the export.
package schema

import (
	"errors"

	"github.com/chazu/geoschema/pkg/geo"
)

var (
	// ErrUnsupportedAttributeType is returned for attributes whose declared
	// type is not int, float or string.
	ErrUnsupportedAttributeType = errors.New("unsupported attribute type")
	// ErrValueShape is returned when a value does not match the declared
	// tuple size or type of its attribute.
	ErrValueShape = errors.New("value does not match attribute declaration")
	// ErrValueRange is returned when an int value does not fit in int32.
	ErrValueRange = errors.New("value out of range")
)

// Names of the topology arrays written to the Vertex domain.
const (
	PointRefName     = "pointref"
	VertexCountName  = "vertexcount"
	NVerticesRLEName = "nvertices_rle"
)

// Context identifies where an exported geometry came from. It is fixed for
// the lifetime of an Exporter.
type Context struct {
	Source          string // scene file the geometry was loaded from
	Node            string // node path inside the scene
	Frame           int    // current frame, used when Export gets no frame
	ProducerVersion string
}

// Elements returns the live elements of d in iteration order: points and
// primitives by number, vertices primitive by primitive, and the provider
// itself for the detail.
func Elements(p geo.Provider, d geo.Domain) []geo.Element {
	var elems []geo.Element
	switch d {
	case geo.Point:
		for _, pt := range p.Points() {
			elems = append(elems, pt)
		}
	case geo.Vertex:
		for _, pr := range p.Prims() {
			for _, v := range pr.Vertices() {
				elems = append(elems, v)
			}
		}
	case geo.Primitive:
		for _, pr := range p.Prims() {
			elems = append(elems, pr)
		}
	case geo.Detail:
		elems = append(elems, p)
	}
	return elems
}
