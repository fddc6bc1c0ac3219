// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"image"
	"math"
)

// texel is an RGBA sample in [0, 255], premultiplied like image.RGBA.
type texel [4]float64

func (t texel) add(u texel) texel {
	return texel{t[0] + u[0], t[1] + u[1], t[2] + u[2], t[3] + u[3]}
}

func (t texel) scale(s float64) texel {
	return texel{t[0] * s, t[1] * s, t[2] * s, t[3] * s}
}

func mix(a, b texel, t float64) texel {
	return a.scale(1 - t).add(b.scale(t))
}

// luma uses the Rec. 601 weights of classic FXAA.
func (t texel) luma() float64 {
	return (t[0]*0.299 + t[1]*0.587 + t[2]*0.114) / 255
}

func (t texel) store(pix []byte) {
	for i := range 4 {
		pix[i] = to8(t[i])
	}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5) //nolint:gosec // G115: range checked above
}

// sampler reads an *image.RGBA with bilinear filtering in normalized
// coordinates. Reads outside the image return the nearest edge texel.
type sampler struct {
	img  *image.RGBA
	w, h int
}

func newSampler(img *image.RGBA) sampler {
	b := img.Bounds()
	return sampler{img: img, w: b.Dx(), h: b.Dy()}
}

func (s sampler) at(x, y int) texel {
	x = min(max(x, 0), s.w-1)
	y = min(max(y, 0), s.h-1)
	i := y*s.img.Stride + x*4
	p := s.img.Pix[i : i+4 : i+4]
	return texel{float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])}
}

// uv samples at normalized coordinates; texel centres sit at (i+0.5)/w.
func (s sampler) uv(u, v float64) texel {
	if s.w == 0 || s.h == 0 {
		return texel{}
	}
	x := u*float64(s.w) - 0.5
	y := v*float64(s.h) - 0.5
	if math.IsNaN(x) || math.IsNaN(y) {
		return texel{}
	}
	// Far outside reads collapse to the edge before the int conversion.
	x = math.Max(-1, math.Min(float64(s.w), x))
	y = math.Max(-1, math.Min(float64(s.h), y))

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := mix(s.at(ix, iy), s.at(ix+1, iy), fx)
	bottom := mix(s.at(ix, iy+1), s.at(ix+1, iy+1), fx)
	return mix(top, bottom, fy)
}
