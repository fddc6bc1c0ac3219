//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/magnify/render"
	"github.com/gogpu/wgpu/hal"
)

// Releaser delays destroying GPU objects until the work that may still
// use them has completed. LensPipeline implements it.
type Releaser interface {
	Defer(free func())
}

// Allocator creates lens textures on a HAL device. It implements
// render.TextureAllocator so render.TextureTarget can back the lens
// surfaces with device textures.
type Allocator struct {
	device hal.Device
	rel    Releaser
}

// NewAllocator returns an allocator for device. Textures and views it
// creates are destroyed through rel; a nil rel destroys them at once.
func NewAllocator(device hal.Device, rel Releaser) *Allocator {
	return &Allocator{device: device, rel: rel}
}

func release(rel Releaser, free func()) {
	if rel == nil {
		free()
		return
	}
	rel.Defer(free)
}

// CreateTexture allocates a 2D texture.
func (a *Allocator) CreateTexture(desc render.TextureDescriptor) (render.Texture, error) {
	if a.device == nil {
		return nil, ErrNoDevice
	}
	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: max(desc.Depth, 1),
		},
		MipLevelCount: max(desc.MipLevelCount, 1),
		SampleCount:   max(desc.SampleCount, 1),
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         halUsage(desc.Usage),
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}
	return &Texture{
		device: a.device,
		rel:    a.rel,
		tex:    tex,
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
	}, nil
}

var _ render.TextureAllocator = (*Allocator)(nil)

func halUsage(u render.TextureUsage) gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u&render.TextureUsageCopySrc != 0 {
		out |= gputypes.TextureUsageCopySrc
	}
	if u&render.TextureUsageCopyDst != 0 {
		out |= gputypes.TextureUsageCopyDst
	}
	if u&render.TextureUsageTextureBinding != 0 {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u&render.TextureUsageStorageBinding != 0 {
		out |= gputypes.TextureUsageStorageBinding
	}
	if u&render.TextureUsageRenderAttachment != 0 {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

// Texture is a device texture created by Allocator.
type Texture struct {
	device hal.Device
	rel    Releaser
	tex    hal.Texture
	label  string
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// HalTexture returns the underlying HAL texture.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// CreateView creates a full 2D view of the texture. It returns nil if the
// texture was destroyed or the device refuses the view; the failure is
// logged.
func (t *Texture) CreateView() render.TextureView {
	if t.tex == nil {
		return nil
	}
	view, err := t.device.CreateTextureView(t.tex, &hal.TextureViewDescriptor{
		Label:           t.label + "_view",
		Format:          t.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
	})
	if err != nil {
		slogger().Warn("gpu: create texture view failed", "label", t.label, "err", err)
		return nil
	}
	return &TextureView{device: t.device, rel: t.rel, view: view, tex: t.tex}
}

// Destroy releases the texture. Safe to call multiple times.
func (t *Texture) Destroy() {
	if t.tex == nil {
		return
	}
	device, tex := t.device, t.tex
	t.tex = nil
	release(t.rel, func() { device.DestroyTexture(tex) })
}

var _ render.Texture = (*Texture)(nil)

// TextureView is a view created by Texture.CreateView.
type TextureView struct {
	device hal.Device
	rel    Releaser
	view   hal.TextureView
	tex    hal.Texture
}

// HalView returns the underlying HAL texture view.
func (v *TextureView) HalView() hal.TextureView { return v.view }

// HalTexture returns the texture the view was created from.
func (v *TextureView) HalTexture() hal.Texture { return v.tex }

// Destroy releases the view. Safe to call multiple times.
func (v *TextureView) Destroy() {
	if v.view == nil {
		return
	}
	device, view := v.device, v.view
	v.view = nil
	release(v.rel, func() { device.DestroyTextureView(view) })
}

var _ render.TextureView = (*TextureView)(nil)

// HalView extracts the HAL view behind a render.TextureView.
//
// Any view exposing HalView() hal.TextureView is accepted, so hosts can
// wrap their own swapchain views. The texture is returned when the view
// also exposes HalTexture() hal.Texture; it is nil otherwise and the
// caller skips usage transitions for it.
func HalView(v render.TextureView) (hal.TextureView, hal.Texture, bool) {
	type halViewer interface {
		HalView() hal.TextureView
	}
	type halTexturer interface {
		HalTexture() hal.Texture
	}
	hv, ok := v.(halViewer)
	if !ok || hv.HalView() == nil {
		return nil, nil, false
	}
	var tex hal.Texture
	if ht, ok := v.(halTexturer); ok {
		tex = ht.HalTexture()
	}
	return hv.HalView(), tex, true
}
