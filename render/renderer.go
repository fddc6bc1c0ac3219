// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Renderer executes drawing commands to a render target.
//
// Renderers are stateless between Render calls, allowing the same renderer
// to be used with different targets and scenes. In particular the lens
// draws one scene into the normal target and again into the zoom surface
// with a magnified viewport.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
type Renderer interface {
	// Render draws the scene to the target through the target's viewport.
	//
	// The scene is not modified by this operation and can be rendered
	// multiple times to different targets.
	Render(target Target, scene *Scene) error

	// Flush ensures all pending rendering operations are complete.
	Flush() error
}
