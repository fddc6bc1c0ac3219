// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements a magnify backend on a gogpu/wgpu HAL device.
//
// Lens surfaces are device textures allocated through internal/gpu, and the
// composite and antialias passes run as WGSL render pipelines. The backend
// either shares the host's device (New, NewFromProvider) or opens its own
// Vulkan device (Open), which is what the registry factory does:
//
//	import _ "github.com/gogpu/magnify/backend/wgpu"
//
//	be, err := backend.Get(backend.BackendWGPU, backend.Config{Width: 800, Height: 600})
//
// The presentation surface belongs to the host. Hand the current swapchain
// target to the backend with SetPresentation before each frame; a nil
// destination in a pass then refers to it.
//
// Build with the nogpu tag to leave the package empty.
package wgpu
