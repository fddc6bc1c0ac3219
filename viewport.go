package magnify

import (
	"math"

	"github.com/gogpu/magnify/render"
)

// ZoomViewport computes the viewport of the zoom surface.
//
// size is the physical surface size (W, H), pos the pointer in physical
// pixels and maxDims the backend's maximum viewport dimensions. Rendering
// the unmodified scene into the returned viewport on a W×H surface
// magnifies it by zoom around pos: the content under pos stays under pos.
//
// The second result is the render resolution the composite samples the
// zoom surface at. It equals size unless W*zoom or H*zoom exceeds maxDims,
// in which case both dimensions are scaled up by the same factor so that
// the viewport shrinks back within the limit; the surface itself stays W×H.
// A non-positive maxDims component means unlimited.
func ZoomViewport(size Size, pos Point, zoom float64, maxDims Size) (render.Viewport, Size) {
	res := size
	factor := 0.0
	if maxDims.W > 0 {
		factor = size.W * zoom / maxDims.W
	}
	if maxDims.H > 0 {
		factor = math.Max(factor, size.H*zoom/maxDims.H)
	}
	if factor > 1 {
		res = size.Mul(factor)
	}

	if res.W <= 0 || res.H <= 0 {
		return render.Viewport{}, res
	}
	return render.Viewport{
		X:      -pos.X * (zoom - 1) * size.W / res.W,
		Y:      -pos.Y * (zoom - 1) * size.H / res.H,
		Width:  size.W * size.W / res.W * zoom,
		Height: size.H * size.H / res.H * zoom,
	}, res
}
