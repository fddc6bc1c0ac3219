// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"testing"
)

func TestNewScene(t *testing.T) {
	scene := NewScene()

	if !scene.IsEmpty() {
		t.Error("New scene should be empty")
	}
	if scene.CommandCount() != 0 {
		t.Errorf("CommandCount() = %d, want 0", scene.CommandCount())
	}
}

func TestSceneReset(t *testing.T) {
	scene := NewScene()
	scene.SetFillColor(color.RGBA{255, 0, 0, 255})
	scene.Circle(100, 100, 50)
	scene.Fill()

	if scene.IsEmpty() {
		t.Error("Scene should not be empty after Fill()")
	}

	scene.Reset()

	if !scene.IsEmpty() {
		t.Error("Scene should be empty after Reset()")
	}
	if scene.fillColor != color.Black {
		t.Errorf("fill color after Reset = %v, want black", scene.fillColor)
	}
}

func TestSceneFillSnapshotsPath(t *testing.T) {
	scene := NewScene()
	scene.Rectangle(0, 0, 10, 10)
	scene.Fill()

	// The recorded path must not alias the builder.
	scene.MoveTo(50, 50)

	cmd := scene.commands[0]
	if cmd.op != opFill {
		t.Fatalf("op = %v, want opFill", cmd.op)
	}
	if got := len(cmd.path.verbs); got != 5 {
		t.Errorf("verbs = %d, want 5", got)
	}
	if got := len(cmd.path.points); got != 8 {
		t.Errorf("points = %d, want 8", got)
	}
}

func TestSceneEmptyPathIsIgnored(t *testing.T) {
	scene := NewScene()
	scene.Fill()
	scene.Stroke()

	if !scene.IsEmpty() {
		t.Errorf("CommandCount() = %d, want 0", scene.CommandCount())
	}
}

func TestSceneStrokeRecordsWidth(t *testing.T) {
	scene := NewScene()
	scene.SetStrokeColor(color.White)
	scene.SetStrokeWidth(3)
	scene.MoveTo(0, 0)
	scene.QuadTo(5, 5, 10, 0)
	scene.CubicTo(12, 2, 14, 2, 16, 0)
	scene.Stroke()

	cmd := scene.commands[0]
	if cmd.op != opStroke || cmd.width != 3 || cmd.color != color.White {
		t.Errorf("command = %+v, want white stroke of width 3", cmd)
	}

	var want int
	for _, v := range cmd.path.verbs {
		want += pointsPerVerb[v]
	}
	if len(cmd.path.points) != want {
		t.Errorf("points = %d, want %d", len(cmd.path.points), want)
	}
}

func TestFlattenCircle(t *testing.T) {
	scene := NewScene()
	scene.Circle(0, 0, 10)
	scene.Fill()

	polys := flatten(scene.commands[0].path)
	if len(polys) != 1 {
		t.Fatalf("polylines = %d, want 1", len(polys))
	}
	poly := polys[0]
	if poly[0] != poly[len(poly)-1] {
		t.Errorf("closed polyline should end at its start: %v != %v", poly[0], poly[len(poly)-1])
	}
	for _, p := range poly {
		r2 := p[0]*p[0] + p[1]*p[1]
		if r2 < 99 || r2 > 101 {
			t.Fatalf("point %v is not on the circle (r^2 = %.3f)", p, r2)
		}
	}
}
