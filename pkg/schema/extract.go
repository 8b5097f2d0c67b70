package schema

import (
	"fmt"

	"github.com/chazu/geoschema/pkg/geo"
)

// extract reads the raw value of a for every element, in element order.
func extract(elems []geo.Element, a geo.Attrib) ([]any, error) {
	switch a.Type {
	case geo.Int, geo.Float, geo.String:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAttributeType, a.Type)
	}
	values := make([]any, len(elems))
	for i, e := range elems {
		values[i] = e.AttribValue(a.Name)
	}
	return values, nil
}
