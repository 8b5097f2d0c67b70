// Package format writes typed arrays to disk. Numeric arrays are written as
// ASCII text or as NumPy .npy files; text arrays are always written as
// ASCII. The single-archive layout collects everything into one
// MessagePack object instead.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/chazu/geoschema/pkg/array"
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnsupportedRank is returned when an array cannot be laid out as text.
	ErrUnsupportedRank = errors.New("unsupported rank")
)

// Format is a canonical storage format name.
type Format string

const (
	ASCII  Format = "ascii"  // one text file per attribute
	NPY    Format = "npy"    // one dense binary file per attribute
	Single Format = "single" // one MessagePack archive for the whole export
)

// Default is used when no format is requested.
const Default = NPY

// aliases maps accepted names onto canonical formats. "binary" is the
// legacy name of the dense binary format.
var aliases = map[string]Format{
	"ascii":        ASCII,
	"npy":          NPY,
	"binary":       NPY,
	"dense-binary": NPY,
	"binary-dense": NPY,
	"single":       Single,
}

// Normalize resolves a user-supplied format name. Names are
// case-insensitive and the empty name selects Default.
func Normalize(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	f, ok := aliases[key]
	if !ok {
		return "", fmt.Errorf("format: %w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case ASCII:
		return ".txt"
	case NPY:
		return ".npy"
	case Single:
		return ".msgpack"
	}
	return ""
}

// WriteArray writes a to base plus the extension of f and returns the path
// written. Text arrays always go to base.txt.
func WriteArray(fs afero.Fs, base string, a *array.Array, f Format) (string, error) {
	if a.DType == array.Text {
		f = ASCII
	}

	var write func(afero.File) error
	switch f {
	case ASCII:
		write = func(w afero.File) error { return WriteASCII(w, a) }
	case NPY:
		write = func(w afero.File) error { return WriteNPY(w, a) }
	default:
		return "", fmt.Errorf("format: %w: %q cannot write individual arrays", ErrUnsupportedFormat, f)
	}

	path := base + f.Ext()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	file, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return "", fmt.Errorf("format: %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return path, nil
}
