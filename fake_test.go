package magnify

import (
	"log/slog"

	"github.com/gogpu/magnify/render"
)

// fakeSurface is a pixmap surface that remembers being destroyed.
type fakeSurface struct {
	*render.PixmapTarget
	label     string
	destroyed bool
}

func (s *fakeSurface) Destroy() { s.destroyed = true }

type passCall struct {
	dst       render.Target
	composite CompositeUniforms
	antialias AntialiasUniforms
}

// recordingBackend records every call the Magnifier makes.
type recordingBackend struct {
	ratio     float64
	size      Size
	maxDims   Size
	autoClear bool
	logger    *slog.Logger

	surfaces   []*fakeSurface
	composites []passCall
	antialias  []passCall
	closed     bool

	compositeErr error
}

func newRecordingBackend(w, h float64) *recordingBackend {
	return &recordingBackend{ratio: 1, size: Sz(w, h)}
}

func (b *recordingBackend) Name() string             { return "recording" }
func (b *recordingBackend) PixelRatio() float64      { return b.ratio }
func (b *recordingBackend) Size() Size               { return b.size }
func (b *recordingBackend) MaxViewportDims() Size    { return b.maxDims }
func (b *recordingBackend) AutoClear() bool          { return b.autoClear }
func (b *recordingBackend) SetAutoClear(on bool)     { b.autoClear = on }
func (b *recordingBackend) SetLogger(l *slog.Logger) { b.logger = l }
func (b *recordingBackend) Close()                   { b.closed = true }

func (b *recordingBackend) NewSurface(label string) (render.Surface, error) {
	s := &fakeSurface{PixmapTarget: render.NewPixmapTarget(0, 0), label: label}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

func (b *recordingBackend) CompositePass(dst render.Target, u CompositeUniforms) error {
	b.composites = append(b.composites, passCall{dst: dst, composite: u})
	return b.compositeErr
}

func (b *recordingBackend) AntialiasPass(dst render.Target, u AntialiasUniforms) error {
	b.antialias = append(b.antialias, passCall{dst: dst, antialias: u})
	return nil
}

// sceneCall is one invocation of a recorded scene.
type sceneCall struct {
	target    render.Target
	viewport  render.Viewport
	autoClear bool
}

// sceneRecorder is a SceneFunc source that records its calls.
type sceneRecorder struct {
	backend Backend
	calls   []sceneCall
	err     error
}

func (r *sceneRecorder) draw(target render.Target) error {
	c := sceneCall{target: target, autoClear: r.backend.AutoClear()}
	if target != nil {
		c.viewport = target.Viewport()
	}
	r.calls = append(r.calls, c)
	return r.err
}
