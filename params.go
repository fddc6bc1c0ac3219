package magnify

import "math"

// Params describes the lens for one frame. It is rebuilt every frame from
// input and UI state and never stored by the Magnifier.
//
// Position, Radius and OutlineThickness are in logical pixels; the
// Magnifier scales them by the backend pixel ratio.
type Params struct {
	// Position is the pointer location with a top-left origin.
	// Nil means the lens is inactive and the frame passes through.
	Position *Point

	// Zoom is the magnification factor at the lens centre (>= 1).
	Zoom float64

	// Exponent controls falloff sharpness (> 0). Larger values keep the
	// full magnification further out and make the rim transition harder.
	Exponent float64

	// Radius is the lens radius.
	Radius float64

	// OutlineThickness is the width of the ring drawn around the lens.
	OutlineThickness float64

	// OutlineColor is the ring color.
	OutlineColor RGB

	// Antialias runs an FXAA pass over the composite.
	Antialias bool
}

// DefaultParams returns the library defaults with no pointer set.
func DefaultParams() Params {
	return Params{
		Zoom:             2,
		Exponent:         35,
		Radius:           100,
		OutlineThickness: 8,
		OutlineColor:     HexRGB(0xCCCCCC),
		Antialias:        true,
	}
}

// SampleParams returns the defaults used by interactive demos: a slightly
// larger, softer lens with a thin dark outline.
func SampleParams() Params {
	return Params{
		Zoom:             2,
		Exponent:         30,
		Radius:           110,
		OutlineThickness: 4,
		OutlineColor:     HexRGB(0x555555),
		Antialias:        true,
	}
}

// At returns a copy of p with the lens positioned at (x, y).
func (p Params) At(x, y float64) Params {
	pt := Pt(x, y)
	p.Position = &pt
	return p
}

// Active reports whether the lens has a position.
func (p Params) Active() bool {
	return p.Position != nil
}

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Limits bounds the tunable lens parameters.
type Limits struct {
	Zoom             Range
	Exponent         Range
	Radius           Range
	OutlineThickness Range
}

// DefaultLimits returns the interactive parameter bounds.
func DefaultLimits() Limits {
	return Limits{
		Zoom:             Range{Min: 1, Max: 15},
		Exponent:         Range{Min: 1, Max: 100},
		Radius:           Range{Min: 10, Max: 500},
		OutlineThickness: Range{Min: 0, Max: 50},
	}
}

// Clamp returns p with every tunable parameter limited to l.
// NaN values are replaced by the lower bound.
func (p Params) Clamp(l Limits) Params {
	p.Zoom = clampRange(l.Zoom, p.Zoom)
	p.Exponent = clampRange(l.Exponent, p.Exponent)
	p.Radius = clampRange(l.Radius, p.Radius)
	p.OutlineThickness = clampRange(l.OutlineThickness, p.OutlineThickness)
	return p
}

func clampRange(r Range, v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return r.Clamp(v)
}
