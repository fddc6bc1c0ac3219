// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// ErrInvalidSize is returned when a target is sized with a negative dimension.
var ErrInvalidSize = errors.New("render: invalid target size")

// Target defines where rendering output goes.
//
// A Target is an abstraction over different rendering destinations:
//   - PixmapTarget: CPU-backed *image.RGBA for software rendering
//   - TextureTarget: GPU texture for offscreen rendering
//   - SurfaceTarget: window surface from the host application
//
// Targets may support CPU access (Pixels), GPU access (TextureView), or both.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int

	// Viewport returns the rectangle scene draws are mapped into.
	Viewport() Viewport
}

// Surface is an offscreen Target owned by its creator. Its size and viewport
// are mutable so a single surface can be reused across frames.
type Surface interface {
	Target

	// SetSize changes the surface dimensions and resets the viewport to the
	// full surface. Contents are undefined afterwards. Calling SetSize with
	// the current dimensions only resets the viewport.
	SetSize(width, height int) error

	// SetViewport sets the rectangle subsequent scene draws are mapped into.
	SetViewport(v Viewport)

	// Destroy releases resources held by the surface.
	Destroy()
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// This target supports software rendering and provides direct pixel access.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	renderer.Render(target, scene)
//	img := target.Image()
type PixmapTarget struct {
	img      *image.RGBA
	viewport Viewport
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		viewport: FullViewport(width, height),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	b := img.Bounds()
	return &PixmapTarget{img: img, viewport: FullViewport(b.Dx(), b.Dy())}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Viewport returns the current scene viewport.
func (t *PixmapTarget) Viewport() Viewport {
	return t.viewport
}

// SetViewport sets the scene viewport.
func (t *PixmapTarget) SetViewport(v Viewport) {
	t.viewport = v
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color, ignoring the viewport.
func (t *PixmapTarget) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: shift leaves 8 significant bits
	px := [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}

	pix := t.img.Pix
	if len(pix) < 4 {
		return
	}
	copy(pix, px[:])
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// SetSize resizes the target in place. The pixel buffer is reused when its
// capacity suffices, so repeated resizing between a few sizes does not
// allocate. Contents are undefined afterwards and the viewport is reset.
func (t *PixmapTarget) SetSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	t.viewport = FullViewport(width, height)
	if width == t.Width() && height == t.Height() {
		return nil
	}
	n := width * height * 4
	pix := t.img.Pix
	if cap(pix) >= n {
		pix = pix[:n]
	} else {
		pix = make([]byte, n)
	}
	t.img = &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return nil
}

// Destroy is a no-op for CPU targets.
func (t *PixmapTarget) Destroy() {}

// Ensure PixmapTarget implements Surface.
var _ Surface = (*PixmapTarget)(nil)

// TextureTarget is a GPU texture-backed render surface.
//
// It allocates textures through a TextureAllocator and reallocates only when
// the requested size changes, so the same TextureTarget can serve as a
// per-frame offscreen surface.
type TextureTarget struct {
	alloc    TextureAllocator
	label    string
	width    int
	height   int
	format   gputypes.TextureFormat
	usage    TextureUsage
	texture  Texture
	view     TextureView
	viewport Viewport
}

// NewTextureTarget creates a new GPU texture render target.
// A zero width or height defers texture allocation until SetSize.
func NewTextureTarget(alloc TextureAllocator, label string, width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	t := &TextureTarget{
		alloc:  alloc,
		label:  label,
		format: format,
		usage:  TextureUsageTextureBinding | TextureUsageRenderAttachment | TextureUsageCopySrc,
	}
	if err := t.SetSize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.height
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the GPU texture view, or nil before the first
// non-empty SetSize.
func (t *TextureTarget) TextureView() TextureView {
	return t.view
}

// Texture returns the backing texture, or nil before allocation.
func (t *TextureTarget) Texture() Texture {
	return t.texture
}

// Pixels returns nil as this is a GPU-only target.
func (t *TextureTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as this is a GPU-only target.
func (t *TextureTarget) Stride() int {
	return 0
}

// Viewport returns the current scene viewport.
func (t *TextureTarget) Viewport() Viewport {
	return t.viewport
}

// SetViewport sets the scene viewport.
func (t *TextureTarget) SetViewport(v Viewport) {
	t.viewport = v
}

// SetSize resizes the target, reallocating the texture only when the
// dimensions change.
func (t *TextureTarget) SetSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	t.viewport = FullViewport(width, height)
	if width == t.width && height == t.height && (t.texture != nil || width == 0 || height == 0) {
		return nil
	}
	t.release()
	t.width, t.height = width, height
	if width == 0 || height == 0 {
		return nil
	}

	desc := DefaultTextureDescriptor(uint32(width), uint32(height), t.format) //nolint:gosec // G115: checked non-negative
	desc.Label = t.label
	desc.Usage = t.usage
	tex, err := t.alloc.CreateTexture(desc)
	if err != nil {
		return fmt.Errorf("render: allocate %s texture %dx%d: %w", t.label, width, height, err)
	}
	t.texture = tex
	t.view = tex.CreateView()
	return nil
}

// Destroy releases GPU resources.
func (t *TextureTarget) Destroy() {
	t.release()
	t.width, t.height = 0, 0
}

func (t *TextureTarget) release() {
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Destroy()
		t.texture = nil
	}
}

// Ensure TextureTarget implements Surface.
var _ Surface = (*TextureTarget)(nil)

// SurfaceTarget wraps a window surface from the host application.
//
// The host owns the surface and swaps the view every frame with SetView.
// Surfaces always draw to the full area.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   TextureView
}

// NewSurfaceTarget creates a render target from a window surface.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view TextureView) *SurfaceTarget {
	return &SurfaceTarget{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// SetView replaces the current frame's texture view and size.
func (t *SurfaceTarget) SetView(view TextureView, width, height int) {
	t.view = view
	t.width = width
	t.height = height
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int {
	return t.width
}

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int {
	return t.height
}

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the current frame's texture view.
func (t *SurfaceTarget) TextureView() TextureView {
	return t.view
}

// Pixels returns nil as surfaces do not support CPU access.
func (t *SurfaceTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as surfaces do not support CPU access.
func (t *SurfaceTarget) Stride() int {
	return 0
}

// Viewport returns the full surface.
func (t *SurfaceTarget) Viewport() Viewport {
	return FullViewport(t.width, t.height)
}

// Ensure SurfaceTarget implements Target.
var _ Target = (*SurfaceTarget)(nil)
