// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package gpu implements the lens composite and FXAA passes on a wgpu HAL
// device.
//
// Both passes draw a single full-screen triangle with a fragment shader
// that mirrors the CPU kernels in internal/shade. The package owns the
// shader modules, bind group layouts, the clamp-to-edge sampler and one
// uniform buffer per pass. Render pipelines are created lazily per target
// format, so the same LensPipeline can write into offscreen RGBA textures
// and BGRA window surfaces.
//
// Architecture:
//
//	backend/wgpu.Backend  owns device, queue and lens surfaces
//	LensPipeline          owns shaders, layouts, sampler, uniform buffers
//	per pass              bind group + command buffer, retired by
//	                      submission index and released once complete
package gpu
