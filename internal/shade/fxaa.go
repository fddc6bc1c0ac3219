// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"image"
	"math"
)

// FXAA constants, shared with the WGSL shader.
const (
	FXAAReduceMin = 1.0 / 128.0
	FXAAReduceMul = 1.0 / 8.0
	FXAASpanMax   = 8.0
)

// FXAA applies fast approximate antialiasing to src and writes dst.
//
// invW and invH are the reciprocal physical resolution; fragment (x, y)
// samples src at ((x+0.5)*invW, (y+0.5)*invH). Alpha is taken from the
// centre sample.
func FXAA(dst, src *image.RGBA, invW, invH float64, workers int) error {
	if dst == nil || src == nil {
		return ErrNilImage
	}
	src = detach(dst, src)
	s := newSampler(src)

	b := dst.Bounds()
	w := b.Dx()
	return forRows(b.Dy(), workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Pix[y*dst.Stride:]
			for x := 0; x < w; x++ {
				c := fxaaPixel(s, float64(x)+0.5, float64(y)+0.5, invW, invH)
				c.store(row[x*4 : x*4+4])
			}
		}
	})
}

func fxaaPixel(s sampler, fx, fy, invW, invH float64) texel {
	at := func(ox, oy float64) texel {
		return s.uv((fx+ox)*invW, (fy+oy)*invH)
	}

	rgbM := at(0, 0)
	lumaNW := at(-1, -1).luma()
	lumaNE := at(1, -1).luma()
	lumaSW := at(-1, 1).luma()
	lumaSE := at(1, 1).luma()
	lumaM := rgbM.luma()

	lumaMin := math.Min(lumaM, math.Min(math.Min(lumaNW, lumaNE), math.Min(lumaSW, lumaSE)))
	lumaMax := math.Max(lumaM, math.Max(math.Max(lumaNW, lumaNE), math.Max(lumaSW, lumaSE)))

	dirX := -((lumaNW + lumaNE) - (lumaSW + lumaSE))
	dirY := (lumaNW + lumaSW) - (lumaNE + lumaSE)

	dirReduce := math.Max((lumaNW+lumaNE+lumaSW+lumaSE)*(0.25*FXAAReduceMul), FXAAReduceMin)
	rcpDirMin := 1 / (math.Min(math.Abs(dirX), math.Abs(dirY)) + dirReduce)

	// Direction in pixels; the sampler converts through invW/invH.
	dirX = math.Min(FXAASpanMax, math.Max(-FXAASpanMax, dirX*rcpDirMin))
	dirY = math.Min(FXAASpanMax, math.Max(-FXAASpanMax, dirY*rcpDirMin))

	rgbA := at(dirX*(1.0/3.0-0.5), dirY*(1.0/3.0-0.5)).
		add(at(dirX*(2.0/3.0-0.5), dirY*(2.0/3.0-0.5))).
		scale(0.5)
	rgbB := rgbA.scale(0.5).add(
		at(-dirX*0.5, -dirY*0.5).add(at(dirX*0.5, dirY*0.5)).scale(0.25))

	out := rgbB
	if lumaB := rgbB.luma(); lumaB < lumaMin || lumaB > lumaMax {
		out = rgbA
	}
	out[3] = rgbM[3]
	return out
}
