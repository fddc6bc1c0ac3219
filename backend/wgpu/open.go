// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend"
	"github.com/gogpu/magnify/render"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.BackendWGPU, func(cfg backend.Config) (magnify.Backend, error) {
		return Open(cfg.Width, cfg.Height, WithPixelRatio(cfg.Ratio()))
	})
}

// ownedDevice is a device the backend opened itself and must release.
type ownedDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     gputypes.AdapterInfo
	limits   gputypes.Limits
}

func (d *ownedDevice) destroy() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

// Open creates a backend on a newly opened Vulkan device, preferring a
// discrete or integrated GPU. It fails with backend.ErrBackendNotAvailable
// when Vulkan is missing or no adapter is found, which lets the registry
// fall back to the software backend.
func Open(w, h int, opts ...Option) (*Backend, error) {
	dev, err := openDevice()
	if err != nil {
		return nil, err
	}
	caps := render.CapabilitiesFromLimits(dev.info.Name, dev.limits)
	b, err := newBackend(dev.device, dev.queue, caps, w, h, opts...)
	if err != nil {
		dev.destroy()
		return nil, err
	}
	b.owned = dev
	b.log.Info("wgpu: lens backend initialized", "gpu", dev.info.Name, "type", dev.info.DeviceType)
	return b, nil
}

func openDevice() (*ownedDevice, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan: %w", backend.ErrBackendNotAvailable)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no GPU adapters found: %w", backend.ErrBackendNotAvailable)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	return &ownedDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     selected.Info,
		limits:   limits,
	}, nil
}
