// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

var (
	// ErrNilTarget is returned when rendering into a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNotCPUTarget is returned when a GPU-only target is passed to the
	// software renderer.
	ErrNotCPUTarget = errors.New("render: target does not support CPU rendering")
)

// curveSegments is the number of line segments a curve is flattened into
// for stroking.
const curveSegments = 16

// SoftwareRenderer is a CPU renderer built on golang.org/x/image/vector.
//
// Scenes are drawn through the target's viewport: a scene point (x, y) lands
// at viewport.Map(x, y), and stroke widths scale with the viewport. Pixels
// outside the target are clipped.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	scene := render.NewScene()
//
//	scene.SetFillColor(color.RGBA{255, 0, 0, 255})
//	scene.Circle(400, 300, 100)
//	scene.Fill()
//
//	renderer.Render(target, scene)
//	img := target.Image()
type SoftwareRenderer struct {
	// AutoClear clears the whole target with ClearColor before drawing.
	AutoClear bool

	// ClearColor is used by AutoClear. Nil means transparent.
	ClearColor color.Color

	raster *vector.Rasterizer
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the scene to the target.
//
// Returns an error if the target is GPU-only (no Pixels() support).
func (r *SoftwareRenderer) Render(target Target, scene *Scene) error {
	if target == nil {
		return ErrNilTarget
	}
	img, ok := rgbaView(target)
	if !ok {
		return ErrNotCPUTarget
	}

	if r.AutoClear {
		fillUniform(img, r.ClearColor)
	}
	if scene == nil || scene.IsEmpty() {
		return nil
	}

	vp := target.Viewport()
	w, h := target.Width(), target.Height()
	if vp.IsEmpty() {
		vp = FullViewport(w, h)
	}
	if w == 0 || h == 0 {
		return nil
	}

	for _, cmd := range scene.commands {
		switch cmd.op {
		case opClear:
			fillUniform(img, cmd.color)
		case opFill:
			r.fill(img, vp, cmd.path, cmd.color)
		case opStroke:
			r.stroke(img, vp, cmd.path, cmd.color, cmd.width)
		}
	}
	return nil
}

// Flush ensures all rendering is complete.
// For the software renderer, this is a no-op as operations are synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// rgbaView wraps the pixel memory of a CPU target as an *image.RGBA without
// copying.
func rgbaView(t Target) (*image.RGBA, bool) {
	if pt, ok := t.(*PixmapTarget); ok {
		return pt.Image(), true
	}
	pix := t.Pixels()
	if pix == nil {
		return nil, false
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}, true
}

func fillUniform(img *image.RGBA, c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *SoftwareRenderer) rasterizer(b image.Rectangle) *vector.Rasterizer {
	if r.raster == nil {
		r.raster = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		r.raster.Reset(b.Dx(), b.Dy())
	}
	r.raster.DrawOp = draw.Over
	return r.raster
}

func (r *SoftwareRenderer) fill(img *image.RGBA, vp Viewport, path *pathBuilder, c color.Color) {
	if path == nil || len(path.verbs) == 0 {
		return
	}
	b := img.Bounds()
	z := r.rasterizer(b)
	w, h := b.Dx(), b.Dy()
	pt := func(x, y float64) (float32, float32) {
		mx, my := vp.Map(x, y, w, h)
		return float32(mx), float32(my)
	}

	pts := path.points
	open := false
	for _, verb := range path.verbs {
		switch verb {
		case verbMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(pts[0], pts[1]))
			open = true
		case verbLineTo:
			z.LineTo(pt(pts[0], pts[1]))
		case verbQuadTo:
			bx, by := pt(pts[0], pts[1])
			cx, cy := pt(pts[2], pts[3])
			z.QuadTo(bx, by, cx, cy)
		case verbCubicTo:
			bx, by := pt(pts[0], pts[1])
			cx, cy := pt(pts[2], pts[3])
			dx, dy := pt(pts[4], pts[5])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case verbClose:
			z.ClosePath()
			open = false
		}
		pts = pts[pointsPerVerb[verb]:]
	}
	if open {
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// stroke draws each flattened segment as a quad and each vertex as a round
// join. All polygons share one winding so overlaps saturate instead of
// cancelling.
func (r *SoftwareRenderer) stroke(img *image.RGBA, vp Viewport, path *pathBuilder, c color.Color, width float64) {
	if path == nil || len(path.verbs) == 0 || width <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sx, sy := vp.Scale(w, h)
	hw := width * math.Sqrt(math.Abs(sx*sy)) / 2
	if hw <= 0 {
		return
	}

	z := r.rasterizer(b)
	for _, poly := range flatten(path) {
		for i := range poly {
			x, y := vp.Map(poly[i][0], poly[i][1], w, h)
			poly[i] = [2]float64{x, y}
		}
		for i := 0; i+1 < len(poly); i++ {
			strokeSegment(z, poly[i], poly[i+1], hw)
		}
		for _, p := range poly {
			strokeJoin(z, p, hw)
		}
	}
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

func strokeSegment(z *vector.Rasterizer, a, b [2]float64, hw float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
	z.LineTo(float32(b[0]+nx), float32(b[1]+ny))
	z.LineTo(float32(b[0]-nx), float32(b[1]-ny))
	z.LineTo(float32(a[0]-nx), float32(a[1]-ny))
	z.ClosePath()
}

func strokeJoin(z *vector.Rasterizer, p [2]float64, hw float64) {
	const sides = 12
	for i := 0; i <= sides; i++ {
		// Decreasing angle matches the winding of strokeSegment quads.
		a := -2 * math.Pi * float64(i) / sides
		x := float32(p[0] + hw*math.Cos(a))
		y := float32(p[1] + hw*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// flatten converts a path into polylines, one per subpath, in scene
// coordinates.
func flatten(path *pathBuilder) [][][2]float64 {
	var (
		polys [][][2]float64
		cur   [][2]float64
		start [2]float64
	)
	last := func() [2]float64 {
		if len(cur) == 0 {
			return start
		}
		return cur[len(cur)-1]
	}
	flush := func() {
		if len(cur) > 1 {
			polys = append(polys, cur)
		}
		cur = nil
	}

	pts := path.points
	for _, verb := range path.verbs {
		switch verb {
		case verbMoveTo:
			flush()
			start = [2]float64{pts[0], pts[1]}
			cur = append(cur, start)
		case verbLineTo:
			cur = append(cur, [2]float64{pts[0], pts[1]})
		case verbQuadTo:
			p0 := last()
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				cur = append(cur, [2]float64{
					mt*mt*p0[0] + 2*mt*t*pts[0] + t*t*pts[2],
					mt*mt*p0[1] + 2*mt*t*pts[1] + t*t*pts[3],
				})
			}
		case verbCubicTo:
			p0 := last()
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				cur = append(cur, [2]float64{
					a*p0[0] + b*pts[0] + c*pts[2] + d*pts[4],
					a*p0[1] + b*pts[1] + c*pts[3] + d*pts[5],
				})
			}
		case verbClose:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
			flush()
		}
		pts = pts[pointsPerVerb[verb]:]
	}
	flush()
	return polys
}

// Ensure SoftwareRenderer implements Renderer.
var _ Renderer = (*SoftwareRenderer)(nil)
