package format

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/geoschema/pkg/array"
)

// WriteASCII writes one value per line for rank-1 arrays and one
// space-separated row per line for rank-2 arrays.
func WriteASCII(w io.Writer, a *array.Array) error {
	if a.Rank() > 2 {
		return fmt.Errorf("ascii: %w: %d", ErrUnsupportedRank, a.Rank())
	}
	if err := a.Validate(); err != nil {
		return err
	}

	width := 1
	if a.Rank() == 2 {
		width = a.Shape[1]
	}

	bw := bufio.NewWriter(w)
	row := make([]string, 0, width)
	for i := 0; i < a.Size(); i++ {
		row = append(row, formatValue(a, i))
		if len(row) < width {
			continue
		}
		bw.WriteString(strings.Join(row, " "))
		bw.WriteByte('\n')
		row = row[:0]
	}
	return bw.Flush()
}

func formatValue(a *array.Array, i int) string {
	switch a.DType {
	case array.Int32:
		return strconv.FormatInt(int64(a.Int[i]), 10)
	case array.Float32:
		return formatFloat32(a.Float[i])
	default:
		return a.Text[i]
	}
}

// formatFloat32 prints the shortest representation that round-trips through
// float32. Magnitudes in [1e-4, 1e16) and zero are positional with a ".0"
// kept on integral values; everything else is scientific, as numpy prints
// float32 scalars.
func formatFloat32(f float32) string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 32)
	}
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
