// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "fmt"

// Viewport is the sub-rectangle of a target that a scene draw is mapped into.
//
// Coordinates are physical pixels with a top-left origin. A viewport may
// extend past the target bounds (negative offsets, sizes larger than the
// target); drawing is clipped to the target, so only the overlapping part
// receives pixels.
//
// A scene is always authored in full-target coordinates (0..Width, 0..Height).
// The viewport scales and offsets that coordinate space the way a graphics
// API viewport transform does.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// FullViewport returns the viewport covering a whole w×h target.
func FullViewport(w, h int) Viewport {
	return Viewport{Width: float64(w), Height: float64(h)}
}

// IsEmpty reports whether the viewport has no area.
func (v Viewport) IsEmpty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// IsFull reports whether v covers exactly a w×h target.
func (v Viewport) IsFull(w, h int) bool {
	return v == FullViewport(w, h)
}

// Map converts a point in full-target scene coordinates of a w×h target
// into target pixel coordinates.
func (v Viewport) Map(x, y float64, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return v.X, v.Y
	}
	return v.X + x*v.Width/float64(w), v.Y + y*v.Height/float64(h)
}

// Scale returns the horizontal and vertical magnification the viewport
// applies to a w×h target.
func (v Viewport) Scale(w, h int) (sx, sy float64) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	return v.Width / float64(w), v.Height / float64(h)
}

// ClipTransform returns the scale and offset that move clip-space positions
// rendered for the full w×h target into the viewport:
//
//	clip' = clip*scale + offset
//
// GPU APIs such as WebGPU require the viewport rectangle to lie inside the
// attachment. Hosts apply this transform in their vertex stage and render
// with a full viewport instead, which yields the same pixels while clipping
// to the target. Clip-space y points up.
func (v Viewport) ClipTransform(w, h int) (scaleX, scaleY, offsetX, offsetY float64) {
	if w <= 0 || h <= 0 {
		return 1, 1, 0, 0
	}
	fw, fh := float64(w), float64(h)
	scaleX = v.Width / fw
	scaleY = v.Height / fh
	offsetX = (2*v.X+v.Width)/fw - 1
	offsetY = 1 - (2*v.Y+v.Height)/fh
	return scaleX, scaleY, offsetX, offsetY
}

// String returns a human-readable representation.
func (v Viewport) String() string {
	return fmt.Sprintf("Viewport(%.2f,%.2f %.2fx%.2f)", v.X, v.Y, v.Width, v.Height)
}
