package schema

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/chazu/geoschema/pkg/geo"
)

// Topology is the connectivity needed to rebuild primitives from the flat
// attribute arrays.
type Topology struct {
	PointRef    []int32 // point number of every vertex, primitives in order
	VertexCount []int32 // vertex count of every primitive
	RLE         []int32 // VertexCount as flat (value, run) pairs
}

// DeriveTopology walks the primitives of p in order.
func DeriveTopology(p geo.Provider) Topology {
	prims := p.Prims()
	counts := lo.Map(prims, func(pr geo.PrimElem, _ int) int32 {
		return int32(len(pr.Vertices()))
	})
	refs := lo.FlatMap(prims, func(pr geo.PrimElem, _ int) []int32 {
		return lo.Map(pr.Vertices(), func(v geo.VertexElem, _ int) int32 {
			return int32(v.Point().Number())
		})
	})
	if refs == nil {
		refs = []int32{}
	}
	return Topology{
		PointRef:    refs,
		VertexCount: counts,
		RLE:         EncodeRLE(counts),
	}
}

// EncodeRLE merges runs of consecutive equal values into (value, run)
// pairs. Equal values that are not adjacent stay in separate runs.
func EncodeRLE(values []int32) []int32 {
	out := []int32{}
	if len(values) == 0 {
		return out
	}
	cur, run := values[0], int32(1)
	for _, v := range values[1:] {
		if v == cur {
			run++
			continue
		}
		out = append(out, cur, run)
		cur, run = v, 1
	}
	return append(out, cur, run)
}

// DecodeRLE expands (value, run) pairs produced by EncodeRLE.
func DecodeRLE(pairs []int32) ([]int32, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("schema: rle has odd length %d", len(pairs))
	}
	out := []int32{}
	for i := 0; i < len(pairs); i += 2 {
		v, run := pairs[i], pairs[i+1]
		if run <= 0 {
			return nil, fmt.Errorf("schema: rle run %d at pair %d is not positive", run, i/2)
		}
		for j := int32(0); j < run; j++ {
			out = append(out, v)
		}
	}
	return out, nil
}
