// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shade implements the lens composite and FXAA passes on the CPU.
//
// The kernels mirror the WGSL shaders used by the GPU backend: the same
// falloff curve, the same outline ring, the same FXAA constants. Rows are
// processed in parallel bands.
package shade

import (
	"errors"
	"image"
	"math"
)

// ErrNilImage is returned when a pass is given a nil image.
var ErrNilImage = errors.New("shade: nil image")

// Lens holds the composite parameters in physical pixels.
type Lens struct {
	PosX, PosY float64

	// ResW, ResH is the size the original view is sampled against.
	ResW, ResH float64

	// MagW, MagH is the zoom render resolution.
	MagW, MagH float64

	Zoom       float64
	Radius     float64
	Outline    float64
	Exponent   float64
	OutlineRGB [3]float64
}

// Composite writes the lens composite of original and zoomed into dst.
//
// For a fragment at distance d from the lens centre:
//
//	d < Radius:              zoomed, sampled at pos + (f-pos)*m
//	                         m = mix(1, Zoom, (d/Radius)^Exponent)
//	d < Radius+Outline:      outline color, fading to original over 1px
//	otherwise:               original
//
// m is 1 at the centre, giving full magnification, and Zoom at the rim,
// where the zoomed surface shows exactly the original content, so the lens
// has no seam when Outline is 0.
func Composite(dst, original, zoomed *image.RGBA, l Lens, workers int) error {
	if dst == nil || original == nil || zoomed == nil {
		return ErrNilImage
	}
	original = detach(dst, original)
	zoomed = detach(dst, zoomed)

	orig := newSampler(original)
	zoom := newSampler(zoomed)
	outline := texel{l.OutlineRGB[0] * 255, l.OutlineRGB[1] * 255, l.OutlineRGB[2] * 255, 255}
	invRes := [2]float64{safeInv(l.ResW), safeInv(l.ResH)}
	invMag := [2]float64{safeInv(l.MagW), safeInv(l.MagH)}
	ring := l.Radius + math.Max(0, l.Outline)

	b := dst.Bounds()
	w := b.Dx()
	return forRows(b.Dy(), workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Pix[y*dst.Stride:]
			fy := float64(y) + 0.5
			for x := 0; x < w; x++ {
				fx := float64(x) + 0.5
				dx, dy := fx-l.PosX, fy-l.PosY
				d := math.Hypot(dx, dy)

				var c texel
				switch {
				case d < l.Radius:
					wgt := math.Pow(d/l.Radius, l.Exponent)
					m := 1 + (l.Zoom-1)*wgt
					px := l.PosX + dx*m
					py := l.PosY + dy*m
					c = zoom.uv(px*invMag[0], py*invMag[1])
				case d < ring:
					c = outline
					if edge := smoothstep(ring-1, ring, d); edge > 0 {
						c = mix(outline, orig.uv(fx*invRes[0], fy*invRes[1]), edge)
					}
				default:
					c = orig.uv(fx*invRes[0], fy*invRes[1])
				}
				c.store(row[x*4 : x*4+4])
			}
		}
	})
}

func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := math.Max(0, math.Min(1, (x-e0)/(e1-e0)))
	return t * t * (3 - 2*t)
}

func safeInv(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// detach returns src, or a copy of it when it shares pixel memory with dst,
// so a pass never reads pixels it has already overwritten.
func detach(dst, src *image.RGBA) *image.RGBA {
	if len(dst.Pix) == 0 || len(src.Pix) == 0 || &dst.Pix[0] != &src.Pix[0] {
		return src
	}
	cp := &image.RGBA{
		Pix:    make([]byte, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(cp.Pix, src.Pix)
	return cp
}
