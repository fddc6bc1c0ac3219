// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides render targets, viewports and a retained scene
// for the lens compositor.
//
// # Core Types
//
//   - Target: where rendering output goes (Pixmap, Texture, Surface)
//   - Surface: an offscreen Target with mutable size and viewport
//   - Viewport: the sub-rectangle a scene draw is mapped into
//   - Scene: retained drawing commands authored in full-target coordinates
//   - Renderer: executes a Scene into a Target through its viewport
//   - DeviceHandle: GPU device access from the host application
//
// # Targets
//
//   - PixmapTarget: CPU-backed *image.RGBA, resized in place
//   - TextureTarget: GPU texture allocated through a TextureAllocator
//   - SurfaceTarget: window surface owned by the host
//
// # Viewports
//
// A viewport may be larger than its target or start at a negative offset.
// That is how the lens magnifies: the zoom surface keeps the size of the
// screen while its viewport scales and shifts the scene so the pointer
// stays fixed. Drawing is clipped to the target.
//
//	target := render.NewPixmapTarget(800, 600)
//	target.SetViewport(render.Viewport{X: -400, Y: -300, Width: 1600, Height: 1200})
//	render.NewSoftwareRenderer().Render(target, scene) // 2x around (400, 300)
//
// # Thread Safety
//
// Renderers and targets are NOT thread-safe. Each should be used from a
// single goroutine, or external synchronization must be used.
package render
