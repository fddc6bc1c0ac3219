// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}

	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() should return nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() should return nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() should return nil")
	}
	if handle.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Error("NullDeviceHandle.SurfaceFormat() should return Undefined")
	}
	if got := handle.AdapterInfo().Type; got != gpucontext.AdapterTypeUnknown {
		t.Errorf("NullDeviceHandle.AdapterInfo().Type = %v, want Unknown", got)
	}
}

func TestTextureDescriptorDefault(t *testing.T) {
	desc := DefaultTextureDescriptor(256, 128, gputypes.TextureFormatRGBA8Unorm)

	if desc.Width != 256 || desc.Height != 128 {
		t.Errorf("size = %dx%d, want 256x128", desc.Width, desc.Height)
	}
	if desc.Depth != 1 || desc.MipLevelCount != 1 || desc.SampleCount != 1 {
		t.Errorf("Depth/Mips/Samples = %d/%d/%d, want 1/1/1", desc.Depth, desc.MipLevelCount, desc.SampleCount)
	}
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", desc.Format)
	}

	expectedUsage := TextureUsageTextureBinding | TextureUsageRenderAttachment
	if desc.Usage != expectedUsage {
		t.Errorf("Usage = %v, want %v", desc.Usage, expectedUsage)
	}
}

func TestDeviceHandleAlias(t *testing.T) {
	acceptProvider := func(_ gpucontext.DeviceProvider) {}
	acceptProvider(NullDeviceHandle{})
}

func TestCapabilitiesFromLimits(t *testing.T) {
	limits := gputypes.DefaultLimits()
	caps := CapabilitiesFromLimits("test gpu", limits)
	if caps.DeviceName != "test gpu" || caps.MaxTextureSize != limits.MaxTextureDimension2D {
		t.Errorf("caps = %+v", caps)
	}
	w, h := caps.MaxViewport()
	if want := float64(limits.MaxTextureDimension2D); w != want || h != want {
		t.Errorf("MaxViewport() = %vx%v, want %vx%v", w, h, want, want)
	}

	// Unknown limits are unlimited.
	if w, h := (DeviceCapabilities{}).MaxViewport(); w != 0 || h != 0 {
		t.Errorf("zero MaxViewport() = %vx%v, want 0x0", w, h)
	}
}
