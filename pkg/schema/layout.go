package schema

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/chazu/geoschema/pkg/array"
	"github.com/chazu/geoschema/pkg/format"
	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/manifest"
)

// layout receives exported arrays and the final manifest.
type layout interface {
	put(d geo.Domain, name string, a *array.Array) error
	finish(m *manifest.Manifest) (string, error)
}

// dirLayout writes <root>/<Domain>/<name>.<ext> for every array and
// <root>/metadata.json at the end.
type dirLayout struct {
	fs   afero.Fs
	root string
	f    format.Format
}

func newDirLayout(fs afero.Fs, root string, f format.Format) (*dirLayout, error) {
	for _, d := range geo.Domains {
		if err := fs.MkdirAll(filepath.Join(root, d.String()), 0o755); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}
	return &dirLayout{fs: fs, root: root, f: f}, nil
}

func (l *dirLayout) put(d geo.Domain, name string, a *array.Array) error {
	_, err := format.WriteArray(l.fs, filepath.Join(l.root, d.String(), name), a, l.f)
	return err
}

func (l *dirLayout) finish(m *manifest.Manifest) (string, error) {
	text, err := m.Text()
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(l.fs, filepath.Join(l.root, manifest.FileName), text, 0o644); err != nil {
		return "", fmt.Errorf("schema: %w", err)
	}
	return l.root, nil
}

// archiveLayout keeps every array in memory and writes one archive file
// next to the root.
type archiveLayout struct {
	fs   afero.Fs
	path string
	ar   *format.Archive
}

func newArchiveLayout(fs afero.Fs, outRoot, root string) (*archiveLayout, error) {
	if err := fs.MkdirAll(outRoot, 0o755); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &archiveLayout{fs: fs, path: root + format.Single.Ext(), ar: format.NewArchive()}, nil
}

func (l *archiveLayout) put(d geo.Domain, name string, a *array.Array) error {
	l.ar.Add(d, name, a)
	return nil
}

func (l *archiveLayout) finish(m *manifest.Manifest) (string, error) {
	l.ar.Metadata = m
	if err := l.ar.WriteFile(l.fs, l.path); err != nil {
		return "", err
	}
	return l.path, nil
}
