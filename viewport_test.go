package magnify

import (
	"math"
	"testing"

	"github.com/gogpu/magnify/render"
)

func TestZoomViewport(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		pos     Point
		zoom    float64
		maxDims Size
		want    render.Viewport
	}{
		{"zoom 1 is identity", Sz(800, 600), Pt(123, 45), 1, Size{}, render.Viewport{Width: 800, Height: 600}},
		{"origin pointer", Sz(800, 600), Pt(0, 0), 3, Size{}, render.Viewport{Width: 2400, Height: 1800}},
		{"centre zoom 2", Sz(800, 600), Pt(400, 300), 2, Size{}, render.Viewport{X: -400, Y: -300, Width: 1600, Height: 1200}},
		{"within limit", Sz(800, 600), Pt(400, 300), 2, Sz(16384, 16384), render.Viewport{X: -400, Y: -300, Width: 1600, Height: 1200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := ZoomViewport(tt.size, tt.pos, tt.zoom, tt.maxDims)
			if got != tt.want {
				t.Errorf("ZoomViewport() = %v, want %v", got, tt.want)
			}
			if res != tt.size {
				t.Errorf("resolution = %v, want %v", res, tt.size)
			}
		})
	}
}

func TestZoomViewportGrowsWithZoom(t *testing.T) {
	size, pos := Sz(640, 480), Pt(100, 200)
	prev, _ := ZoomViewport(size, pos, 1, Size{})
	for zoom := 1.5; zoom <= 15; zoom += 0.5 {
		vp, _ := ZoomViewport(size, pos, zoom, Size{})
		if vp.Width <= prev.Width || vp.Height <= prev.Height {
			t.Fatalf("zoom %v: viewport %v did not grow from %v", zoom, vp, prev)
		}
		prev = vp
	}
}

func TestZoomViewportKeepsPointerFixed(t *testing.T) {
	size := Sz(800, 600)
	for _, pos := range []Point{Pt(0, 0), Pt(400, 300), Pt(13.5, 590), Pt(799, 1)} {
		for _, zoom := range []float64{1, 2, 3.7, 15} {
			vp, _ := ZoomViewport(size, pos, zoom, Size{})
			x, y := vp.Map(pos.X, pos.Y, 800, 600)
			if math.Abs(x-pos.X) > 1e-9 || math.Abs(y-pos.Y) > 1e-9 {
				t.Errorf("pos %v zoom %v: mapped to (%v, %v)", pos, zoom, x, y)
			}
		}
	}
}

func TestZoomViewportClamped(t *testing.T) {
	size, pos, maxDims := Sz(800, 600), Pt(400, 300), Sz(2048, 2048)
	vp, res := ZoomViewport(size, pos, 4, maxDims)

	if !(res.W > size.W && res.H > size.H) {
		t.Fatalf("resolution = %v, want larger than %v", res, size)
	}
	if math.Abs(res.W/size.W-res.H/size.H) > 1e-12 {
		t.Errorf("resolution %v is not a uniform scale of %v", res, size)
	}
	if vp.Width > maxDims.W || vp.Height > maxDims.H {
		t.Errorf("viewport %v exceeds %v", vp, maxDims)
	}
	if res.W >= size.W*4 {
		t.Errorf("res.W = %v, want less than W*zoom = %v", res.W, size.W*4)
	}

	// The pointer content lands where the composite samples it: at
	// pos * size / res on the surface.
	x, y := vp.Map(pos.X, pos.Y, 800, 600)
	if math.Abs(x-pos.X*size.W/res.W) > 1e-9 || math.Abs(y-pos.Y*size.H/res.H) > 1e-9 {
		t.Errorf("pointer mapped to (%v, %v)", x, y)
	}
}

func TestZoomViewportSingleAxisLimit(t *testing.T) {
	// Only the height limit is set.
	_, res := ZoomViewport(Sz(100, 1000), Pt(0, 0), 3, Sz(0, 1500))
	if res != Sz(200, 2000) {
		t.Errorf("resolution = %v, want 200x2000", res)
	}
}
