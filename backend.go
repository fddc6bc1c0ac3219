package magnify

import "github.com/gogpu/magnify/render"

// Backend is the renderer capability the Magnifier drives.
//
// A backend owns the presentation surface, the pass programs (shaders or
// CPU kernels) and allocates offscreen surfaces. Scene drawing stays with
// the host: the Magnifier only tells the host which target to draw into.
//
// A nil dst in CompositePass or AntialiasPass means the presentation
// surface.
type Backend interface {
	// Name identifies the backend, e.g. "software" or "wgpu".
	Name() string

	// PixelRatio is the ratio of physical to logical pixels.
	PixelRatio() float64

	// Size is the logical size of the presentation surface.
	Size() Size

	// MaxViewportDims is the largest viewport, in physical pixels, the
	// backend can render into.
	MaxViewportDims() Size

	// AutoClear reports whether scene draws clear their target first.
	AutoClear() bool

	// SetAutoClear changes the auto-clear flag.
	SetAutoClear(on bool)

	// NewSurface allocates an empty offscreen surface the passes can read.
	NewSurface(label string) (render.Surface, error)

	// CompositePass blends the normal and zoomed views into dst.
	CompositePass(dst render.Target, u CompositeUniforms) error

	// AntialiasPass applies FXAA to u.Source and writes dst.
	AntialiasPass(dst render.Target, u AntialiasUniforms) error

	// Close releases the pass programs.
	Close()
}

// SceneFunc draws the host's scene into target. A nil target means the
// presentation surface. The scene must honor the target's viewport and the
// backend's auto-clear flag.
type SceneFunc func(target render.Target) error
