// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
)

// Scene is a retained list of drawing commands.
//
// A scene is authored once in full-target coordinates and can be drawn any
// number of times, into any target and through any viewport. This is what
// lets the lens draw the same content twice per frame: once normally and
// once through the magnified viewport of the zoom surface.
//
// Example:
//
//	scene := render.NewScene()
//	scene.SetFillColor(color.RGBA{255, 0, 0, 255})
//	scene.MoveTo(100, 50)
//	scene.LineTo(150, 150)
//	scene.LineTo(50, 150)
//	scene.ClosePath()
//	scene.Fill()
//
//	renderer.Render(target1, scene)
//	renderer.Render(target2, scene)
type Scene struct {
	commands []drawCommand

	path pathBuilder

	fillColor   color.Color
	strokeColor color.Color
	strokeWidth float64
}

type drawCommand struct {
	op    drawOp
	path  *pathBuilder
	color color.Color
	width float64
}

type drawOp uint8

const (
	opFill drawOp = iota
	opStroke
	opClear
)

type pathVerb uint8

const (
	verbMoveTo pathVerb = iota
	verbLineTo
	verbQuadTo
	verbCubicTo
	verbClose
)

// pointsPerVerb is the number of float64 coordinates each verb consumes.
var pointsPerVerb = [...]int{
	verbMoveTo:  2,
	verbLineTo:  2,
	verbQuadTo:  4,
	verbCubicTo: 6,
	verbClose:   0,
}

type pathBuilder struct {
	verbs  []pathVerb
	points []float64
}

// NewScene creates a new empty Scene.
func NewScene() *Scene {
	return &Scene{
		commands:    make([]drawCommand, 0, 16),
		fillColor:   color.Black,
		strokeColor: color.Black,
		strokeWidth: 1.0,
	}
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	s.commands = s.commands[:0]
	s.path = pathBuilder{}
	s.fillColor = color.Black
	s.strokeColor = color.Black
	s.strokeWidth = 1.0
}

// SetFillColor sets the color for subsequent fill operations.
func (s *Scene) SetFillColor(c color.Color) {
	s.fillColor = c
}

// SetStrokeColor sets the color for subsequent stroke operations.
func (s *Scene) SetStrokeColor(c color.Color) {
	s.strokeColor = c
}

// SetStrokeWidth sets the width for subsequent stroke operations.
func (s *Scene) SetStrokeWidth(width float64) {
	s.strokeWidth = width
}

// MoveTo starts a new subpath at the given point.
func (s *Scene) MoveTo(x, y float64) {
	s.path.verbs = append(s.path.verbs, verbMoveTo)
	s.path.points = append(s.path.points, x, y)
}

// LineTo draws a line from the current point to the given point.
func (s *Scene) LineTo(x, y float64) {
	s.path.verbs = append(s.path.verbs, verbLineTo)
	s.path.points = append(s.path.points, x, y)
}

// QuadTo draws a quadratic Bezier curve.
func (s *Scene) QuadTo(cx, cy, x, y float64) {
	s.path.verbs = append(s.path.verbs, verbQuadTo)
	s.path.points = append(s.path.points, cx, cy, x, y)
}

// CubicTo draws a cubic Bezier curve.
func (s *Scene) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.path.verbs = append(s.path.verbs, verbCubicTo)
	s.path.points = append(s.path.points, c1x, c1y, c2x, c2y, x, y)
}

// ClosePath closes the current subpath.
func (s *Scene) ClosePath() {
	s.path.verbs = append(s.path.verbs, verbClose)
}

// Rectangle adds a rectangle to the current path.
func (s *Scene) Rectangle(x, y, width, height float64) {
	s.MoveTo(x, y)
	s.LineTo(x+width, y)
	s.LineTo(x+width, y+height)
	s.LineTo(x, y+height)
	s.ClosePath()
}

// Circle adds a circle to the current path using cubic Bezier approximation.
func (s *Scene) Circle(cx, cy, r float64) {
	// kappa = 4 * (sqrt(2) - 1) / 3
	const kappa = 0.5522847498307936

	k := r * kappa

	s.MoveTo(cx+r, cy)
	s.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.ClosePath()
}

// Fill fills the current path and clears it.
func (s *Scene) Fill() {
	if len(s.path.verbs) == 0 {
		return
	}
	s.commands = append(s.commands, drawCommand{
		op:    opFill,
		path:  s.snapshotPath(),
		color: s.fillColor,
	})
	s.path = pathBuilder{}
}

// Stroke strokes the current path and clears it.
func (s *Scene) Stroke() {
	if len(s.path.verbs) == 0 {
		return
	}
	s.commands = append(s.commands, drawCommand{
		op:    opStroke,
		path:  s.snapshotPath(),
		color: s.strokeColor,
		width: s.strokeWidth,
	})
	s.path = pathBuilder{}
}

// Clear adds a clear operation that fills the entire target.
// Clears ignore the viewport.
func (s *Scene) Clear(c color.Color) {
	s.commands = append(s.commands, drawCommand{
		op:    opClear,
		color: c,
	})
}

func (s *Scene) snapshotPath() *pathBuilder {
	path := &pathBuilder{
		verbs:  make([]pathVerb, len(s.path.verbs)),
		points: make([]float64, len(s.path.points)),
	}
	copy(path.verbs, s.path.verbs)
	copy(path.points, s.path.points)
	return path
}

// IsEmpty returns true if the scene has no commands.
func (s *Scene) IsEmpty() bool {
	return len(s.commands) == 0
}

// CommandCount returns the number of drawing commands in the scene.
func (s *Scene) CommandCount() int {
	return len(s.commands)
}
