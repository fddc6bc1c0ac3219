// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements a magnify backend that runs on the CPU.
//
// Surfaces are *image.RGBA pixmaps. The composite and antialias passes run
// the same math as the GPU shaders, split into row bands across worker
// goroutines. Scenes are drawn with render.SoftwareRenderer.
//
// Importing the package registers it with the backend registry:
//
//	import _ "github.com/gogpu/magnify/backend/software"
package software

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend"
	"github.com/gogpu/magnify/internal/shade"
	"github.com/gogpu/magnify/render"
)

func init() {
	backend.Register(backend.BackendSoftware, func(cfg backend.Config) (magnify.Backend, error) {
		return New(cfg.Width, cfg.Height, WithPixelRatio(cfg.Ratio())), nil
	})
}

// Backend is the CPU magnify backend. It is safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	opts     options
	size     magnify.Size
	present  *render.PixmapTarget
	renderer *render.SoftwareRenderer
	log      *slog.Logger
	closed   bool
}

// New creates a software backend with a logical surface of w×h.
func New(w, h int, opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Backend{
		opts:     o,
		size:     magnify.Sz(float64(max(w, 0)), float64(max(h, 0))),
		renderer: render.NewSoftwareRenderer(),
		log:      magnify.Logger(),
	}
	pw, ph := b.size.Mul(o.ratio).Pixels()
	b.present = render.NewPixmapTarget(pw, ph)
	return b
}

// Name returns "software".
func (b *Backend) Name() string { return backend.BackendSoftware }

// PixelRatio returns the physical to logical pixel ratio.
func (b *Backend) PixelRatio() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts.ratio
}

// Size returns the logical surface size.
func (b *Backend) Size() magnify.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// MaxViewportDims returns the configured viewport limit.
func (b *Backend) MaxViewportDims() magnify.Size {
	return b.opts.maxDims
}

// AutoClear reports whether scene draws clear their target first.
func (b *Backend) AutoClear() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opts.autoClear
}

// SetAutoClear sets the auto-clear flag.
func (b *Backend) SetAutoClear(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts.autoClear = on
}

// SetLogger sets the logger used for pass diagnostics.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l == nil {
		l = magnify.Logger()
	}
	b.log = l
}

// Resize changes the logical surface size and reallocates the
// presentation pixmap.
func (b *Backend) Resize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("software: resize %dx%d: %w", w, h, render.ErrInvalidSize)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = magnify.Sz(float64(w), float64(h))
	pw, ph := b.size.Mul(b.opts.ratio).Pixels()
	return b.present.SetSize(pw, ph)
}

// Presentation returns the presentation surface. A nil target passed to a
// scene or a pass means this pixmap.
func (b *Backend) Presentation() *render.PixmapTarget {
	return b.present
}

// NewSurface allocates an empty pixmap surface. The label is unused.
func (b *Backend) NewSurface(string) (render.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, magnify.ErrClosed
	}
	return render.NewPixmapTarget(0, 0), nil
}

// DrawScene returns a SceneFunc that draws scene with the backend's
// renderer, honoring the target viewport and the auto-clear flag.
func (b *Backend) DrawScene(scene *render.Scene) magnify.SceneFunc {
	return func(target render.Target) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return magnify.ErrClosed
		}
		if target == nil {
			target = b.present
		}
		b.renderer.AutoClear = b.opts.autoClear
		b.renderer.ClearColor = b.opts.clearColor
		return b.renderer.Render(target, scene)
	}
}

// CompositePass blends u.Original and u.Zoomed into dst.
func (b *Backend) CompositePass(dst render.Target, u magnify.CompositeUniforms) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return magnify.ErrClosed
	}
	if u.Original == nil || u.Zoomed == nil {
		return magnify.ErrNilTarget
	}

	out, err := b.image(dst)
	if err != nil {
		return err
	}
	orig, err := b.image(u.Original)
	if err != nil {
		return err
	}
	zoomed, err := b.image(u.Zoomed)
	if err != nil {
		return err
	}

	c := u.OutlineColor
	lens := shade.Lens{
		PosX: u.Pos.X, PosY: u.Pos.Y,
		ResW: u.Resolution.W, ResH: u.Resolution.H,
		MagW: u.MagResolution.W, MagH: u.MagResolution.H,
		Zoom:       u.Zoom,
		Radius:     u.Radius,
		Outline:    u.OutlineThickness,
		Exponent:   u.Exponent,
		OutlineRGB: [3]float64{c.R, c.G, c.B},
	}
	b.log.Debug("software: composite pass",
		"width", out.Rect.Dx(), "height", out.Rect.Dy(), "workers", b.opts.workers)
	return shade.Composite(out, orig, zoomed, lens, b.opts.workers)
}

// AntialiasPass applies FXAA to u.Source and writes dst.
func (b *Backend) AntialiasPass(dst render.Target, u magnify.AntialiasUniforms) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return magnify.ErrClosed
	}
	if u.Source == nil {
		return magnify.ErrNilTarget
	}

	out, err := b.image(dst)
	if err != nil {
		return err
	}
	src, err := b.image(u.Source)
	if err != nil {
		return err
	}
	b.log.Debug("software: antialias pass",
		"width", out.Rect.Dx(), "height", out.Rect.Dy())
	return shade.FXAA(out, src, u.InvResolution.W, u.InvResolution.H, b.opts.workers)
}

// Close marks the backend closed. Later passes return magnify.ErrClosed.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// image returns the pixel memory of t as an *image.RGBA. Nil means the
// presentation surface. Targets without CPU pixels are foreign.
func (b *Backend) image(t render.Target) (*image.RGBA, error) {
	if t == nil {
		return b.present.Image(), nil
	}
	if pt, ok := t.(*render.PixmapTarget); ok {
		return pt.Image(), nil
	}
	pix := t.Pixels()
	if pix == nil {
		return nil, fmt.Errorf("software: %T: %w", t, magnify.ErrForeignTarget)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}, nil
}

var _ magnify.Backend = (*Backend)(nil)
