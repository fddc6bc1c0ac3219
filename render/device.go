// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle is the host's GPU device, as a gpucontext.DeviceProvider.
//
// Handing one to the wgpu backend's NewFromProvider makes the lens share
// the host's device and queue, so the scene and lens textures live on one
// device and are sampled without copies.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes a texture for a TextureAllocator. Zero
// Depth, MipLevelCount and SampleCount are treated as 1.
type TextureDescriptor struct {
	Label         string
	Width         uint32
	Height        uint32
	Depth         uint32
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	Usage         TextureUsage
}

// TextureUsage is a set of texture usage flags.
type TextureUsage uint32

// Lens surfaces are sampled by the composite and FXAA passes and rendered
// to by the scene and the passes, so they carry at least TextureBinding
// and RenderAttachment.
const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// Texture is a device texture owned by a TextureTarget.
//
// Destroy may defer the actual release until in-flight GPU work that uses
// the texture has completed.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat

	// CreateView returns a full 2D view, or nil if the device refused one.
	CreateView() TextureView

	Destroy()
}

// TextureView is a view of a Texture. Backends recover their native view
// from it with a type assertion.
type TextureView interface {
	Destroy()
}

// DefaultTextureDescriptor returns a single-sample, single-mip 2D
// descriptor usable as a lens surface.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:         width,
		Height:        height,
		Depth:         1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        format,
		Usage:         TextureUsageTextureBinding | TextureUsageRenderAttachment,
	}
}

// TextureAllocator creates GPU textures. GPU backends implement it so
// TextureTarget can reallocate its texture on resize.
type TextureAllocator interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
}

// DeviceCapabilities is what a lens backend needs to know about its
// device.
type DeviceCapabilities struct {
	// DeviceName is the adapter name, empty when the host did not say.
	DeviceName string

	// MaxTextureSize is the largest 2D texture dimension. Zero means
	// unknown, and no limit is applied.
	MaxTextureSize uint32
}

// CapabilitiesFromLimits derives the capabilities of a device opened with
// limits.
func CapabilitiesFromLimits(name string, limits gputypes.Limits) DeviceCapabilities {
	return DeviceCapabilities{
		DeviceName:     name,
		MaxTextureSize: limits.MaxTextureDimension2D,
	}
}

// MaxViewport returns the largest viewport an offscreen target can hold.
// A lens surface is a texture, so both axes are bounded by MaxTextureSize;
// zero means unlimited.
func (c DeviceCapabilities) MaxViewport() (w, h float64) {
	return float64(c.MaxTextureSize), float64(c.MaxTextureSize)
}

// NullDeviceHandle is a DeviceHandle without a device. It stands in for
// the host on CPU-only setups; GPU backends reject it.
type NullDeviceHandle struct{}

func (NullDeviceHandle) Device() gpucontext.Device   { return nil }
func (NullDeviceHandle) Queue() gpucontext.Queue     { return nil }
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat reports no surface.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
