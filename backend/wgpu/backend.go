// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend"
	"github.com/gogpu/magnify/internal/gpu"
	"github.com/gogpu/magnify/render"
	"github.com/gogpu/wgpu/hal"
)

// ErrNotHALProvider is returned by NewFromProvider when the provider does
// not expose HAL device and queue types.
var ErrNotHALProvider = errors.New("wgpu: provider does not expose HAL types")

// Backend is the GPU magnify backend. It is safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	opts     options
	device   hal.Device
	queue    hal.Queue
	owned    *ownedDevice
	caps     render.DeviceCapabilities
	alloc    *gpu.Allocator
	pipeline *gpu.LensPipeline
	size     magnify.Size
	present  render.Target
	log      *slog.Logger
	closed   bool
}

// New creates a backend on the host's device and queue with a logical
// surface of w×h. The device is assumed to have the WebGPU default limits.
// The lens pipeline is compiled immediately.
func New(device hal.Device, queue hal.Queue, w, h int, opts ...Option) (*Backend, error) {
	caps := render.CapabilitiesFromLimits("", gputypes.DefaultLimits())
	return newBackend(device, queue, caps, w, h, opts...)
}

func newBackend(device hal.Device, queue hal.Queue, caps render.DeviceCapabilities, w, h int, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: %w", gpu.ErrNoDevice)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pipeline := gpu.NewLensPipeline(device, queue)
	b := &Backend{
		opts:     o,
		device:   device,
		queue:    queue,
		caps:     caps,
		alloc:    gpu.NewAllocator(device, pipeline),
		pipeline: pipeline,
		size:     magnify.Sz(float64(max(w, 0)), float64(max(h, 0))),
		log:      magnify.Logger(),
	}
	if err := b.pipeline.Init(); err != nil {
		return nil, fmt.Errorf("wgpu: init lens pipeline: %w", err)
	}
	return b, nil
}

// NewFromProvider creates a backend sharing the device of a host, such as
// a gogpu window. Besides render.DeviceHandle the provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
// The provider's surface format, when it has one, becomes the default lens
// surface format.
func NewFromProvider(provider render.DeviceHandle, w, h int, opts ...Option) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}
	opts = append([]Option{WithSurfaceFormat(provider.SurfaceFormat())}, opts...)
	caps := render.CapabilitiesFromLimits(provider.AdapterInfo().Name, gputypes.DefaultLimits())
	return newBackend(device, queue, caps, w, h, opts...)
}

// Name returns "wgpu".
func (b *Backend) Name() string { return backend.BackendWGPU }

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

// MaxViewportDims returns the WithMaxViewport override or, by default,
// the device's texture limit.
func (b *Backend) MaxViewportDims() magnify.Size {
	if b.opts.maxDims != nil {
		return *b.opts.maxDims
	}
	return magnify.Sz(b.caps.MaxViewport())
}

// Capabilities returns what the backend knows about its device.
func (b *Backend) Capabilities() render.DeviceCapabilities { return b.caps }

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

// SetLogger sets the logger used for pass diagnostics. The logger is also
// handed to the GPU pipeline package.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l == nil {
		l = magnify.Logger()
	}
	b.log = l
	gpu.SetLogger(l)
}

// Resize changes the logical surface size.
func (b *Backend) Resize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("wgpu: resize %dx%d: %w", w, h, render.ErrInvalidSize)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = magnify.Sz(float64(w), float64(h))
	b.pipeline.Reclaim()
	return nil
}

// SetPresentation sets the target a nil destination refers to, typically
// the current swapchain frame wrapped in a render.SurfaceTarget.
func (b *Backend) SetPresentation(t render.Target) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.present = t
	b.pipeline.Reclaim()
}

// Presentation returns the current presentation target, or nil.
func (b *Backend) Presentation() render.Target {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.present
}

// Device returns the HAL device the backend renders with.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue the backend submits to.
func (b *Backend) Queue() hal.Queue { return b.queue }

// NewSurface allocates an empty texture surface. The texture is created on
// the first non-empty SetSize.
func (b *Backend) NewSurface(label string) (render.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, magnify.ErrClosed
	}
	return render.NewTextureTarget(b.alloc, "magnify_"+label, 0, 0, b.opts.format)
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

	out, err := b.attachment(dst)
	if err != nil {
		return err
	}
	orig, err := source(u.Original)
	if err != nil {
		return err
	}
	zoomed, err := source(u.Zoomed)
	if err != nil {
		return err
	}

	c := u.OutlineColor
	lens := gpu.LensUniforms{
		Pos:              gpu.Vec2(u.Pos.X, u.Pos.Y),
		Resolution:       gpu.Vec2(u.Resolution.W, u.Resolution.H),
		MagResolution:    gpu.Vec2(u.MagResolution.W, u.MagResolution.H),
		Zoom:             gpu.F32(u.Zoom),
		Radius:           gpu.F32(u.Radius),
		OutlineThickness: gpu.F32(u.OutlineThickness),
		Exponent:         gpu.F32(u.Exponent),
		OutlineColor:     gpu.Color(c.R, c.G, c.B),
	}
	b.log.Debug("wgpu: composite pass", "width", out.Width, "height", out.Height)
	if err := b.pipeline.Composite(out, orig, zoomed, lens); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	return nil
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

	out, err := b.attachment(dst)
	if err != nil {
		return err
	}
	src, err := source(u.Source)
	if err != nil {
		return err
	}
	fx := gpu.FXAAUniforms{
		InvResolution: gpu.Vec2(u.InvResolution.W, u.InvResolution.H),
	}
	b.log.Debug("wgpu: antialias pass", "width", out.Width, "height", out.Height)
	if err := b.pipeline.Antialias(out, src, fx); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	return nil
}

// Close waits for outstanding passes, releases the lens pipeline and, when
// the backend opened the device itself, the device. Later passes return
// magnify.ErrClosed.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.pipeline.Destroy()
	if b.owned != nil {
		b.owned.destroy()
		b.owned = nil
	}
}

// attachment resolves a pass destination. Nil means the presentation
// target.
func (b *Backend) attachment(t render.Target) (gpu.Attachment, error) {
	if t == nil {
		t = b.present
	}
	if t == nil {
		return gpu.Attachment{}, fmt.Errorf("wgpu: no presentation target: %w", magnify.ErrNilTarget)
	}
	view, tex, ok := gpu.HalView(t.TextureView())
	if !ok {
		return gpu.Attachment{}, fmt.Errorf("wgpu: %T: %w", t, magnify.ErrForeignTarget)
	}
	return gpu.Attachment{
		View:    view,
		Texture: tex,
		Format:  t.Format(),
		Width:   uint32(max(t.Width(), 0)),  //nolint:gosec // G115: clamped non-negative
		Height:  uint32(max(t.Height(), 0)), //nolint:gosec // G115: clamped non-negative
	}, nil
}

func source(t render.Target) (gpu.Source, error) {
	view, tex, ok := gpu.HalView(t.TextureView())
	if !ok {
		return gpu.Source{}, fmt.Errorf("wgpu: %T: %w", t, magnify.ErrForeignTarget)
	}
	return gpu.Source{View: view, Texture: tex}, nil
}

var _ magnify.Backend = (*Backend)(nil)
