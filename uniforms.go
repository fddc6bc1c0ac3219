package magnify

import "github.com/gogpu/magnify/render"

// CompositeUniforms is everything the composite pass reads for one frame.
// It is built whole by the Magnifier and handed to the backend in a single
// call, so a pass never observes a half-updated parameter set.
//
// All lengths are physical pixels.
type CompositeUniforms struct {
	// Original is the normal view, sampled at fragCoord / Resolution.
	Original render.Target

	// Zoomed is the zoom surface, sampled at the lens-warped coordinate
	// divided by MagResolution.
	Zoomed render.Target

	// Pos is the lens centre.
	Pos Point

	// Resolution is the physical surface size.
	Resolution Size

	// MagResolution is the zoom render resolution from ZoomViewport.
	MagResolution Size

	Zoom             float64
	Radius           float64
	OutlineThickness float64
	Exponent         float64
	OutlineColor     RGB
}

// AntialiasUniforms is the input of the antialias pass.
type AntialiasUniforms struct {
	// Source is the composite output to smooth.
	Source render.Target

	// InvResolution is (1/W, 1/H) of the physical surface.
	InvResolution Size
}
