// Package magnify renders a magnifying-glass lens over a live scene.
//
// Around a pointer, a circular region shows a zoomed, re-projected view of
// the same scene, composited over the normal view with a smooth falloff and
// an outline ring, then optionally antialiased with FXAA.
//
// # How it works
//
// Each frame with an active lens:
//
//  1. ZoomViewport computes a viewport for the zoom surface. Drawing the
//     unmodified scene through it magnifies the scene around the pointer.
//  2. The host's SceneFunc draws into the zoom surface with auto-clear
//     forced on. The caller's flag is restored afterwards, even on error.
//  3. The composite pass blends the normal and zoomed views by distance
//     from the pointer. Inside the radius only zoomed content is shown,
//     warped so it meets the normal view seamlessly at the rim.
//  4. FXAA smooths the composite into the output, or the composite is
//     written to the output directly.
//
// Without a pointer the frame passes straight through to the scene.
//
// # Quick start
//
//	import (
//	    "github.com/gogpu/magnify"
//	    "github.com/gogpu/magnify/backend/software"
//	)
//
//	be := software.New(800, 600)
//	m := magnify.New()
//	defer m.Close()
//
//	err := m.Render(magnify.Frame{
//	    Backend: be,
//	    Scene:   be.DrawScene(scene),
//	    Params:  magnify.DefaultParams().At(400, 300),
//	})
//	img := be.Presentation().Image()
//
// # Backends
//
// A Backend provides the pixel ratio, surface size, viewport limits, the
// auto-clear flag, offscreen surfaces and the two passes. The software
// backend runs the passes on the CPU. The wgpu backend runs them as WGSL
// shaders on a gogpu/wgpu HAL device, typically shared with the host via
// gpucontext.DeviceProvider. See the backend package for the registry.
//
// # Coordinates
//
// Params are logical pixels with a top-left origin. Everything passed to a
// backend is physical pixels.
package magnify
