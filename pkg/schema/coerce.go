package schema

import (
	"fmt"
	"math"

	"github.com/chazu/geoschema/pkg/array"
	"github.com/chazu/geoschema/pkg/geo"
)

// coerce converts raw element values into a typed array. The tuple width is
// taken from the declaration, never from the values.
func coerce(a geo.Attrib, raw []any) (*array.Array, error) {
	switch a.Type {
	case geo.Int:
		flat, err := flatten(raw, a.Size, intComponents)
		if err != nil {
			return nil, err
		}
		return array.NewInt32(flat, a.Size), nil
	case geo.Float:
		flat, err := flatten(raw, a.Size, floatComponents)
		if err != nil {
			return nil, err
		}
		return array.NewFloat32(flat, a.Size), nil
	case geo.String:
		flat, err := flatten(raw, a.Size, stringComponents)
		if err != nil {
			return nil, err
		}
		return array.NewText(flat, a.Size), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedAttributeType, a.Type)
}

// flatten concatenates the components of every value, checking that each
// value has exactly size components.
func flatten[T any](raw []any, size int, components func(any) ([]T, error)) ([]T, error) {
	flat := make([]T, 0, len(raw)*size)
	for i, v := range raw {
		c, err := components(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if len(c) != size {
			return nil, fmt.Errorf("%w: element %d has %d components, want %d", ErrValueShape, i, len(c), size)
		}
		flat = append(flat, c...)
	}
	return flat, nil
}

func unexpected(v any) error {
	return fmt.Errorf("%w: value of type %T", ErrValueShape, v)
}

// toInt32 narrows v, failing instead of wrapping around.
func toInt32(v int64) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit in int32", ErrValueRange, v)
	}
	return int32(v), nil
}

func intComponents(v any) ([]int32, error) {
	var wide []int64
	switch x := v.(type) {
	case int32:
		return []int32{x}, nil
	case []int32:
		return x, nil
	case int64:
		wide = []int64{x}
	case int:
		wide = []int64{int64(x)}
	case []int64:
		wide = x
	case []int:
		wide = make([]int64, len(x))
		for i, c := range x {
			wide[i] = int64(c)
		}
	default:
		return nil, unexpected(v)
	}
	out := make([]int32, len(wide))
	for i, c := range wide {
		n, err := toInt32(c)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func floatComponents(v any) ([]float32, error) {
	switch x := v.(type) {
	case float64:
		return []float32{float32(x)}, nil
	case float32:
		return []float32{x}, nil
	case []float64:
		out := make([]float32, len(x))
		for i, c := range x {
			out[i] = float32(c)
		}
		return out, nil
	case []float32:
		return x, nil
	}
	return nil, unexpected(v)
}

func stringComponents(v any) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	}
	return nil, unexpected(v)
}
