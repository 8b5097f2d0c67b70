package format

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/ugorji/go/codec"

	"github.com/chazu/geoschema/pkg/array"
	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/manifest"
)

// Archive is the in-memory capture of a whole export for the single-file
// layout: every domain's arrays plus the manifest.
type Archive struct {
	Point     map[string]*array.Array `codec:"Point"`
	Vertex    map[string]*array.Array `codec:"Vertex"`
	Primitive map[string]*array.Array `codec:"Primitive"`
	Detail    map[string]*array.Array `codec:"Detail"`
	Metadata  *manifest.Manifest      `codec:"metadata"`
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{
		Point:     map[string]*array.Array{},
		Vertex:    map[string]*array.Array{},
		Primitive: map[string]*array.Array{},
		Detail:    map[string]*array.Array{},
	}
}

// Domain returns the array map of d.
func (ar *Archive) Domain(d geo.Domain) map[string]*array.Array {
	switch d {
	case geo.Point:
		return ar.Point
	case geo.Vertex:
		return ar.Vertex
	case geo.Primitive:
		return ar.Primitive
	default:
		return ar.Detail
	}
}

// Add stores a under name in domain d, replacing any earlier array.
func (ar *Archive) Add(d geo.Domain, name string, a *array.Array) {
	ar.Domain(d)[name] = a
}

// archiveHandle returns the MessagePack handle used for archives. Map keys
// are sorted so that identical exports encode to identical bytes.
func archiveHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{WriteExt: true}
	h.Canonical = true
	return h
}

// Encode writes the archive as MessagePack.
func (ar *Archive) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := codec.NewEncoder(bw, archiveHandle()).Encode(ar); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return bw.Flush()
}

// DecodeArchive reads an archive written by Encode.
func DecodeArchive(r io.Reader) (*Archive, error) {
	ar := NewArchive()
	if err := codec.NewDecoder(r, archiveHandle()).Decode(ar); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return ar, nil
}

// WriteFile encodes the archive to path, creating parent directories.
func (ar *Archive) WriteFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if err := ar.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
