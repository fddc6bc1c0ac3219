package magnify

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/magnify/render"
)

// Frame is the input of one Magnifier.Render call.
type Frame struct {
	// Backend renders the passes. Nil aborts the frame with ErrNoRenderer.
	Backend Backend

	// Scene draws the host's scene into a target.
	Scene SceneFunc

	// Params describes the lens. A nil Params.Position passes the frame
	// through to Scene(Output).
	Params Params

	// Input is the already rendered normal view. When nil the Magnifier
	// renders the normal view itself into an owned surface.
	Input render.Target

	// Output receives the final pass. Nil means the presentation surface.
	Output render.Target
}

// Magnifier composites a magnified lens over a scene.
//
// A Magnifier owns its offscreen surfaces for its whole lifetime and
// reuses them across frames. Render may be called from any goroutine but
// frames never overlap: each call runs to completion under a lock.
type Magnifier struct {
	mu sync.Mutex

	opts       options
	pool       targetPool
	propagated *slog.Logger
	clamped    bool
	closed     bool
}

// New creates a Magnifier.
func New(opts ...Option) *Magnifier {
	m := &Magnifier{}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

func (m *Magnifier) log() *slog.Logger {
	if m.opts.logger != nil {
		return m.opts.logger
	}
	return Logger()
}

// Render draws one frame.
//
// Without a pointer the scene is drawn once into f.Output and nothing else
// happens. With a pointer the scene is drawn into the zoom surface through
// the magnifying viewport with auto-clear forced on, the two views are
// composited, and the result is antialiased when f.Params.Antialias is set.
//
// The backend's auto-clear flag is restored before Render returns, whether
// or not the scene callback fails.
func (m *Magnifier) Render(f Frame) error {
	if f.Backend == nil {
		m.log().Warn("magnify: no renderer attached, frame skipped")
		return ErrNoRenderer
	}
	if f.Scene == nil {
		return ErrNoScene
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	p := f.Params
	if p.Position == nil {
		return f.Scene(f.Output)
	}
	if m.opts.limits != nil {
		p = p.Clamp(*m.opts.limits)
	}

	b := f.Backend
	if m.pool.bind(b) {
		m.log().Info("magnify: backend attached", "backend", b.Name())
		m.propagated = nil
	}
	if l := m.log(); l != m.propagated {
		propagateLogger(b, l)
		m.propagated = l
	}

	ratio := b.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	w, h := b.Size().Mul(ratio).Pixels()
	if w <= 0 || h <= 0 {
		return f.Scene(f.Output)
	}
	size := Sz(float64(w), float64(h))
	pos := p.Position.Mul(ratio)

	vp, res := ZoomViewport(size, pos, p.Zoom, b.MaxViewportDims())
	m.noteClamp(res != size, size, res, p.Zoom)

	original := f.Input
	if original == nil {
		src, err := m.pool.get(surfaceSource, w, h, m.log())
		if err != nil {
			return err
		}
		if err := withAutoClear(b, func() error { return f.Scene(src) }); err != nil {
			return fmt.Errorf("magnify: render normal scene: %w", err)
		}
		original = src
	}

	zoom, err := m.pool.get(surfaceZoom, w, h, m.log())
	if err != nil {
		return err
	}
	zoom.SetViewport(vp)
	m.log().Debug("magnify: zoom viewport", "viewport", vp, "resolution", res)

	if err := withAutoClear(b, func() error { return f.Scene(zoom) }); err != nil {
		return fmt.Errorf("magnify: render zoomed scene: %w", err)
	}

	u := CompositeUniforms{
		Original:         original,
		Zoomed:           zoom,
		Pos:              pos,
		Resolution:       size,
		MagResolution:    res,
		Zoom:             p.Zoom,
		Radius:           p.Radius * ratio,
		OutlineThickness: p.OutlineThickness * ratio,
		Exponent:         p.Exponent,
		OutlineColor:     p.OutlineColor,
	}

	if !p.Antialias {
		if err := b.CompositePass(f.Output, u); err != nil {
			return fmt.Errorf("magnify: composite pass: %w", err)
		}
		return nil
	}

	aa, err := m.pool.get(surfaceAntialias, w, h, m.log())
	if err != nil {
		return err
	}
	if err := b.CompositePass(aa, u); err != nil {
		return fmt.Errorf("magnify: composite pass: %w", err)
	}
	au := AntialiasUniforms{Source: aa, InvResolution: size.Inv()}
	if err := b.AntialiasPass(f.Output, au); err != nil {
		return fmt.Errorf("magnify: antialias pass: %w", err)
	}
	return nil
}

// noteClamp logs once each time the zoom resolution starts being clamped.
func (m *Magnifier) noteClamp(clamped bool, size, res Size, zoom float64) {
	if clamped && !m.clamped {
		m.log().Warn("magnify: zoom viewport exceeds backend limit, resolution reduced",
			"width", size.W, "height", size.H, "zoom", zoom,
			"resWidth", res.W, "resHeight", res.H)
	}
	m.clamped = clamped
}

// Surface returns the zoom, antialias or source surface for inspection, or
// nil if it has not been allocated. Valid names are "zoom", "antialias"
// and "source".
func (m *Magnifier) Surface(name string) render.Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch name {
	case "zoom":
		return m.pool.peek(surfaceZoom)
	case "antialias":
		return m.pool.peek(surfaceAntialias)
	case "source":
		return m.pool.peek(surfaceSource)
	}
	return nil
}

// Close releases the offscreen surfaces. Render returns ErrClosed
// afterwards. Close does not close the backend.
func (m *Magnifier) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool.release()
	m.closed = true
}
