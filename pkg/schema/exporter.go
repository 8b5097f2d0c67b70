package schema

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/chazu/geoschema/pkg/array"
	"github.com/chazu/geoschema/pkg/format"
	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/manifest"
)

// Exporter writes geometries into the attribute schema. An Exporter holds
// no state between calls; each Export works on its own snapshot.
type Exporter struct {
	fs     afero.Fs
	ctx    Context
	logger *zap.SugaredLogger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// NewExporter creates an exporter writing to fs.
func NewExporter(fs afero.Fs, ctx Context, opts ...Option) *Exporter {
	e := &Exporter{fs: fs, ctx: ctx, logger: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// RootName returns the deterministic export root name, <name>_F<frame>.
func RootName(name string, frame int) string {
	return fmt.Sprintf("%s_F%d", name, frame)
}

// Export writes p under outRoot and returns the export directory, or the
// archive path for the single layout. A nil frame selects the context
// frame; an empty format name selects format.Default.
//
// Export stops at the first error. Files written before the error are left
// in place.
func (e *Exporter) Export(p geo.Provider, outRoot, name string, frame *int, formatName string) (string, error) {
	f, err := format.Normalize(formatName)
	if err != nil {
		return "", err
	}
	fr := e.ctx.Frame
	if frame != nil {
		fr = *frame
	}
	root := filepath.Join(outRoot, RootName(name, fr))

	var out layout
	if f == format.Single {
		out, err = newArchiveLayout(e.fs, outRoot, root)
	} else {
		out, err = newDirLayout(e.fs, root, f)
	}
	if err != nil {
		return "", err
	}
	e.logger.Debugw("layout selected", "root", root, "format", f)

	mb := manifest.NewBuilder(manifest.Info{
		Name:            name,
		Frame:           fr,
		Node:            e.ctx.Node,
		Source:          e.ctx.Source,
		ProducerVersion: e.ctx.ProducerVersion,
		Format:          string(f),
	})

	for _, d := range geo.Domains {
		elems := Elements(p, d)
		for _, a := range p.Attribs(d) {
			arr, err := exportAttrib(elems, a)
			if err != nil {
				return "", fmt.Errorf("schema: %s attribute %q: %w", d, a.Name, err)
			}
			if err := out.put(d, a.Name, arr); err != nil {
				return "", fmt.Errorf("schema: %s attribute %q: %w", d, a.Name, err)
			}
			mb.Add(d, a)
			e.logger.Debugw("exported attribute", "domain", d, "name", a.Name, "dtype", arr.DType, "shape", arr.Shape)
		}
	}

	topo := DeriveTopology(p)
	for _, t := range []struct {
		name string
		data []int32
	}{
		{PointRefName, topo.PointRef},
		{VertexCountName, topo.VertexCount},
		{NVerticesRLEName, topo.RLE},
	} {
		if err := out.put(geo.Vertex, t.name, array.NewInt32(t.data, 1)); err != nil {
			return "", fmt.Errorf("schema: topology %s: %w", t.name, err)
		}
	}
	e.logger.Debugw("exported topology", "vertices", len(topo.PointRef), "primitives", len(topo.VertexCount))

	path, err := out.finish(mb.Build(p))
	if err != nil {
		return "", err
	}
	e.logger.Infow("export finished", "path", path, "points", p.PointCount(), "primitives", p.PrimCount())
	return path, nil
}

func exportAttrib(elems []geo.Element, a geo.Attrib) (*array.Array, error) {
	raw, err := extract(elems, a)
	if err != nil {
		return nil, err
	}
	return coerce(a, raw)
}
