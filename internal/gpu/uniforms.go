//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// lensUniformSize is the byte size of the composite uniform buffer.
// Layout, matching struct Lens in composite.wgsl:
//
//	pos               vec2<f32>  offset  0
//	resolution        vec2<f32>  offset  8
//	mag_resolution    vec2<f32>  offset 16
//	zoom              f32        offset 24
//	radius            f32        offset 28
//	outline_thickness f32        offset 32
//	exponent          f32        offset 36
//	_pad              vec2<f32>  offset 40
//	outline_color     vec4<f32>  offset 48
const lensUniformSize = 64

// fxaaUniformSize is the byte size of the FXAA uniform buffer:
// inv_resolution (vec2<f32>) padded to 16 bytes.
const fxaaUniformSize = 16

// LensUniforms is the composite pass input in physical pixels.
type LensUniforms struct {
	Pos              [2]float32
	Resolution       [2]float32
	MagResolution    [2]float32
	Zoom             float32
	Radius           float32
	OutlineThickness float32
	Exponent         float32

	// OutlineColor is straight RGBA in [0, 1].
	OutlineColor [4]float32
}

// Bytes packs the uniforms in the WGSL std140-compatible layout.
func (u *LensUniforms) Bytes() []byte {
	buf := make([]byte, lensUniformSize)
	putVec2(buf[0:], u.Pos)
	putVec2(buf[8:], u.Resolution)
	putVec2(buf[16:], u.MagResolution)
	putF32(buf[24:], u.Zoom)
	putF32(buf[28:], u.Radius)
	putF32(buf[32:], u.OutlineThickness)
	putF32(buf[36:], u.Exponent)
	for i, c := range u.OutlineColor {
		putF32(buf[48+i*4:], c)
	}
	return buf
}

// FXAAUniforms is the antialias pass input.
type FXAAUniforms struct {
	InvResolution [2]float32
}

// Bytes packs the uniforms in the WGSL layout.
func (u *FXAAUniforms) Bytes() []byte {
	buf := make([]byte, fxaaUniformSize)
	putVec2(buf, u.InvResolution)
	return buf
}

// F32 narrows v for a uniform. NaN becomes 0 and values outside the
// float32 range saturate, so one bad parameter cannot turn every fragment
// of a pass into NaN.
func F32(v float64) float32 {
	f := float32(v)
	switch {
	case math32.IsNaN(f):
		return 0
	case math32.IsInf(f, 1):
		return math.MaxFloat32
	case math32.IsInf(f, -1):
		return -math.MaxFloat32
	}
	return f
}

// Vec2 narrows a pair with F32.
func Vec2(x, y float64) [2]float32 {
	return [2]float32{F32(x), F32(y)}
}

// Color packs an opaque straight RGB color, each channel clamped to [0, 1].
func Color(r, g, b float64) [4]float32 {
	unit := func(v float64) float32 {
		return math32.Max(0, math32.Min(1, F32(v)))
	}
	return [4]float32{unit(r), unit(g), unit(b), 1}
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec2(b []byte, v [2]float32) {
	putF32(b[0:], v[0])
	putF32(b[4:], v[1])
}
