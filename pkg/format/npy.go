package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/geoschema/pkg/array"
)

// npyMagic opens every .npy file, followed by the format version.
const npyMagic = "\x93NUMPY"

// npyAlign is the boundary the header is padded to.
const npyAlign = 64

// WriteNPY writes a numeric array as a NumPy .npy v1.0 file: magic,
// version, little-endian header length, a Python dict literal carrying
// dtype, order and shape, then the row-major little-endian data.
func WriteNPY(w io.Writer, a *array.Array) error {
	if err := a.Validate(); err != nil {
		return err
	}

	var descr string
	var data any
	switch a.DType {
	case array.Int32:
		descr, data = "<i4", a.Int
	case array.Float32:
		descr, data = "<f4", a.Float
	default:
		return fmt.Errorf("npy: %s arrays have no dense encoding", a.DType)
	}

	header := npyHeader(descr, a.Shape)

	var buf bytes.Buffer
	buf.WriteString(npyMagic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// npyHeader builds the space-padded, newline-terminated header dict so that
// magic + version + length + header is a multiple of npyAlign bytes.
func npyHeader(descr string, shape []int) string {
	h := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, npyShape(shape))
	prefix := len(npyMagic) + 2 + 2
	pad := (npyAlign - (prefix+len(h)+1)%npyAlign) % npyAlign
	return h + strings.Repeat(" ", pad) + "\n"
}

// npyShape formats a shape as a Python tuple literal: (), (4,), (4, 3).
func npyShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	if len(dims) == 1 {
		return "(" + dims[0] + ",)"
	}
	return "(" + strings.Join(dims, ", ") + ")"
}
