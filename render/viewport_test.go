// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"testing"
)

func TestViewportMap(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		x, y   float64
		wx, wy float64
	}{
		{"full is identity", FullViewport(800, 600), 123, 456, 123, 456},
		{"double size", Viewport{Width: 1600, Height: 1200}, 100, 50, 200, 100},
		{"offset", Viewport{X: -400, Y: -300, Width: 1600, Height: 1200}, 400, 300, 400, 300},
		{"origin moves", Viewport{X: 10, Y: 20, Width: 800, Height: 600}, 0, 0, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.vp.Map(tt.x, tt.y, 800, 600)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Map(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestViewportClipTransform(t *testing.T) {
	const w, h = 800, 600
	vp := Viewport{X: -400, Y: -150, Width: 1600, Height: 1200}
	sx, sy, ox, oy := vp.ClipTransform(w, h)

	// Clip-space corners of the full target must land on the viewport corners.
	toPixel := func(cx, cy float64) (float64, float64) {
		cx = cx*sx + ox
		cy = cy*sy + oy
		return (cx + 1) / 2 * w, (1 - cy) / 2 * h
	}
	px, py := toPixel(-1, 1)
	if math.Abs(px-vp.X) > 1e-9 || math.Abs(py-vp.Y) > 1e-9 {
		t.Errorf("top-left = (%v, %v), want (%v, %v)", px, py, vp.X, vp.Y)
	}
	px, py = toPixel(1, -1)
	if math.Abs(px-(vp.X+vp.Width)) > 1e-9 || math.Abs(py-(vp.Y+vp.Height)) > 1e-9 {
		t.Errorf("bottom-right = (%v, %v), want (%v, %v)", px, py, vp.X+vp.Width, vp.Y+vp.Height)
	}

	sx, sy, ox, oy = FullViewport(w, h).ClipTransform(w, h)
	if sx != 1 || sy != 1 || ox != 0 || oy != 0 {
		t.Errorf("full viewport transform = (%v, %v, %v, %v), want identity", sx, sy, ox, oy)
	}
}

func TestViewportPredicates(t *testing.T) {
	if !(Viewport{}).IsEmpty() {
		t.Error("zero viewport should be empty")
	}
	if FullViewport(4, 4).IsEmpty() {
		t.Error("full viewport should not be empty")
	}
	if (Viewport{X: 1, Width: 4, Height: 4}).IsFull(4, 4) {
		t.Error("offset viewport should not be full")
	}
	if sx, sy := (Viewport{Width: 8, Height: 2}).Scale(4, 4); sx != 2 || sy != 0.5 {
		t.Errorf("Scale() = (%v, %v), want (2, 0.5)", sx, sy)
	}
}
