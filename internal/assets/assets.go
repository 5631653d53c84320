// Package assets loads mesh files on worker goroutines and hands the results
// back to the main loop through pollable slots.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/windturbine/internal/engine/model"
	"github.com/Faultbox/windturbine/pkg/formats"
	"github.com/Faultbox/windturbine/pkg/math"
)

// ErrClosed is returned by slots requested after the loader was closed.
var ErrClosed = errors.New("asset loader closed")

// DefaultFallbackSize is the edge length of the placeholder box.
const DefaultFallbackSize = 0.2

// Ref identifies a mesh asset.
type Ref struct {
	// Name is used for logging and as the fallback mesh name.
	Name string
	// Path is the file to read.
	Path string
	// FallbackSize is the placeholder box size. Zero means DefaultFallbackSize on every axis.
	FallbackSize math.Vec3
}

// Options configures a Loader.
type Options struct {
	// Fallback substitutes a box mesh when a file cannot be loaded.
	Fallback bool
	// Build is passed to the mesh builder.
	Build model.BuildOptions
}

// Loader reads and parses mesh files asynchronously.
// Requests for the same path share one slot.
type Loader struct {
	opts  Options
	log   *zap.Logger
	cache *Cache

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(opts Options, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		opts:  opts,
		log:   log,
		cache: NewCache(),
	}
}

// Load starts loading ref and returns its slot. It never blocks.
func (l *Loader) Load(ref Ref) *Slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		s := newSlot(ref)
		s.resolve(nil, ErrClosed)
		return s
	}

	if s, ok := l.cache.Get(ref.Path); ok {
		return s
	}

	s := newSlot(ref)
	l.cache.Set(ref.Path, s)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		s.resolve(l.load(ref))
	}()
	return s
}

// Close waits for in-flight loads and rejects further requests.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.wg.Wait()
	l.cache.Clear()
}

// Stats returns cache hit and miss counts.
func (l *Loader) Stats() (hits, misses int) {
	return l.cache.Stats()
}

func (l *Loader) load(ref Ref) (*model.Mesh, error) {
	mesh, err := readMesh(ref.Path, l.opts.Build)
	if err == nil {
		l.log.Info("asset loaded",
			zap.String("name", ref.Name),
			zap.String("path", ref.Path),
			zap.Int("triangles", mesh.TriangleCount()))
		return mesh, nil
	}

	if !l.opts.Fallback {
		l.log.Error("asset load failed",
			zap.String("name", ref.Name),
			zap.String("path", ref.Path),
			zap.Error(err))
		return nil, err
	}

	l.log.Warn("asset load failed, using placeholder box",
		zap.String("name", ref.Name),
		zap.String("path", ref.Path),
		zap.Error(err))
	return model.Box(ref.Name, fallbackSize(ref.FallbackSize)), nil
}

func readMesh(path string, opts model.BuildOptions) (*model.Mesh, error) {
	stl, err := formats.ParseSTLFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := model.FromSTL(stl, opts)
	if err != nil {
		return nil, fmt.Errorf("building mesh %s: %w", path, err)
	}
	return mesh, nil
}

func fallbackSize(size math.Vec3) math.Vec3 {
	if size == (math.Vec3{}) {
		return math.Vec3{X: DefaultFallbackSize, Y: DefaultFallbackSize, Z: DefaultFallbackSize}
	}
	return size
}
