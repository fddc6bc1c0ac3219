package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend/software"
	"github.com/gogpu/magnify/render"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// demoScene builds the default scene for a w×h physical target: a
// checkerboard with fine grid lines, so magnification and the lens rim are
// easy to judge, plus a few shapes.
func demoScene(w, h int) *render.Scene {
	s := render.NewScene()
	s.Clear(color.RGBA{0xF4, 0xF1, 0xEA, 0xFF})

	const cell = 40.0
	s.SetFillColor(color.RGBA{0xDD, 0xD8, 0xCC, 0xFF})
	for y := 0.0; y < float64(h); y += cell {
		for x := 0.0; x < float64(w); x += cell {
			if int(x/cell+y/cell)%2 == 0 {
				s.Rectangle(x, y, cell, cell)
			}
		}
	}
	s.Fill()

	s.SetStrokeColor(color.RGBA{0x99, 0x99, 0x99, 0xFF})
	s.SetStrokeWidth(1)
	for x := 0.0; x <= float64(w); x += cell / 4 {
		s.MoveTo(x, 0)
		s.LineTo(x, float64(h))
	}
	s.Stroke()

	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) / 3
	palette := []color.RGBA{
		{0xE0, 0x4F, 0x3F, 0xFF},
		{0x3F, 0x8E, 0xE0, 0xFF},
		{0x4F, 0xB0, 0x5A, 0xFF},
	}
	for i, c := range palette {
		a := float64(i) * 2 * math.Pi / float64(len(palette))
		s.SetFillColor(c)
		s.Circle(cx+r*math.Cos(a), cy+r*math.Sin(a), r*0.8)
		s.Fill()
	}

	// A five-pointed star with thin edges to show off the antialias pass.
	s.SetFillColor(color.RGBA{0xF2, 0xC1, 0x2E, 0xFF})
	for i := range 10 {
		a := float64(i)*math.Pi/5 - math.Pi/2
		rr := r * 0.9
		if i%2 == 1 {
			rr = r * 0.4
		}
		x, y := cx+rr*math.Cos(a), cy+rr*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
	s.Fill()
	return s
}

// imageScene returns a SceneFunc that draws img stretched over each
// target's viewport with bilinear filtering.
func imageScene(b *software.Backend, img image.Image) magnify.SceneFunc {
	sb := img.Bounds()
	return func(target render.Target) error {
		if target == nil {
			target = b.Presentation()
		}
		pix := target.Pixels()
		if pix == nil {
			return fmt.Errorf("image scene: %T has no pixels", target)
		}
		dst := &image.RGBA{
			Pix:    pix,
			Stride: target.Stride(),
			Rect:   image.Rect(0, 0, target.Width(), target.Height()),
		}
		if b.AutoClear() {
			clear(dst.Pix)
		}

		vp := target.Viewport()
		if vp.IsEmpty() {
			vp = render.FullViewport(target.Width(), target.Height())
		}
		sx := vp.Width / float64(sb.Dx())
		sy := vp.Height / float64(sb.Dy())
		s2d := f64.Aff3{
			sx, 0, vp.X - float64(sb.Min.X)*sx,
			0, sy, vp.Y - float64(sb.Min.Y)*sy,
		}
		xdraw.BiLinear.Transform(dst, s2d, img, sb, xdraw.Src, nil)
		return nil
	}
}

// loadScene picks the scene for cfg: the image file when set, the demo
// otherwise.
func loadScene(cfg config, b *software.Backend) (magnify.SceneFunc, error) {
	if cfg.Image == "" {
		p := b.Presentation()
		return b.DrawScene(demoScene(p.Width(), p.Height())), nil
	}
	img, err := imgio.Open(cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("open scene image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("scene image %s is empty", cfg.Image)
	}
	return imageScene(b, img), nil
}
