// Package scene loads Lisp scene files into named geometry nodes.
//
// A scene file is evaluated once, in a fresh zygomys sandbox, and declares
// nodes by path:
//
//	(setframe 24)
//	(defgeo "/obj/quad"
//	  (points 4)
//	  (prim 0 1 2 3)
//	  (attrib :point "P" :float 3 [0 0 0  1 0 0  1 1 0  0 1 0]))
//	(defsolid "/obj/peg" (translate (cylinder 10 2) 0 0 5))
//
// Solids are tessellated through a kernel.Kernel the first time their node
// is resolved.
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/chazu/geoschema/pkg/geo"
	"github.com/chazu/geoschema/pkg/kernel"
	"github.com/chazu/geoschema/pkg/kernel/sdfx"
	"github.com/chazu/geoschema/pkg/tessellate"
)

// DefaultFrame is the frame of a scene that neither the caller nor the
// scene source sets.
const DefaultFrame = 1

var (
	// ErrLoad is returned when a scene file cannot be read or evaluated.
	ErrLoad = errors.New("scene: load failed")
	// ErrResolution is returned when a node path names nothing in the scene.
	ErrResolution = errors.New("scene: node not found")
)

// Scene is an evaluated scene file. It is not safe for concurrent use:
// resolving a solid node caches its tessellation.
type Scene struct {
	path   string
	frame  int
	k      kernel.Kernel
	nodes  map[string]*node
	order  []string
	logger *zap.SugaredLogger
}

type options struct {
	kernel  kernel.Kernel
	logger  *zap.SugaredLogger
	timeout time.Duration
}

// Option configures Load.
type Option func(*options)

// WithKernel sets the kernel used for solids. The default is an sdfx
// kernel at sdfx.DefaultMeshCells.
func WithKernel(k kernel.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Load reads and evaluates the scene file at path. A non-nil frame fixes
// the scene frame: (frame) returns it and (setframe ...) is ignored.
func Load(fs afero.Fs, path string, frame *int, opts ...Option) (*Scene, error) {
	o := options{logger: zap.NewNop().Sugar(), timeout: EvalTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.kernel == nil {
		o.kernel = sdfx.New(sdfx.DefaultMeshCells)
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	b := newBuilder(o.kernel, frame)
	if err := evaluate(string(src), b, o.timeout); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	o.logger.Debugw("scene loaded", "path", path, "frame", b.frame, "nodes", len(b.order))
	return &Scene{
		path:   path,
		frame:  b.frame,
		k:      o.kernel,
		nodes:  b.nodes,
		order:  b.order,
		logger: o.logger,
	}, nil
}

// Path returns the file the scene was loaded from.
func (s *Scene) Path() string { return s.path }

// Frame returns the scene's current frame.
func (s *Scene) Frame() int { return s.frame }

// Paths returns the node paths in definition order.
func (s *Scene) Paths() []string {
	return append([]string(nil), s.order...)
}

// Node resolves path to its geometry.
func (s *Scene) Node(path string) (geo.Provider, error) {
	n, ok := s.nodes[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrResolution, path, s.path)
	}
	if n.geometry == nil {
		g, err := tessellate.Tessellate(s.k, n.solid, path)
		if err != nil {
			return nil, fmt.Errorf("scene: node %q: %w", path, err)
		}
		s.logger.Debugw("tessellated solid", "node", path, "points", g.PointCount(), "primitives", g.PrimCount())
		n.geometry = g
	}
	return n.geometry, nil
}
