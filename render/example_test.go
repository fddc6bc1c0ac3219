// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/magnify/render"
)

// ExampleNewSoftwareRenderer demonstrates CPU-based software rendering.
func ExampleNewSoftwareRenderer() {
	renderer := render.NewSoftwareRenderer()
	target := render.NewPixmapTarget(200, 200)

	scene := render.NewScene()
	scene.Clear(color.White)
	scene.SetFillColor(color.RGBA{R: 0, G: 0, B: 255, A: 255})
	scene.Circle(100, 100, 50)
	scene.Fill()

	if err := renderer.Render(target, scene); err != nil {
		fmt.Println("render failed:", err)
		return
	}

	fmt.Printf("centre: %v\n", target.GetPixel(100, 100))
	// Output: centre: {0 0 255 255}
}

// ExampleScene demonstrates building a scene with various drawing commands.
func ExampleScene() {
	scene := render.NewScene()
	scene.Clear(color.White)

	scene.SetFillColor(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	scene.MoveTo(100, 50)
	scene.LineTo(150, 150)
	scene.LineTo(50, 150)
	scene.ClosePath()
	scene.Fill()

	scene.SetStrokeColor(color.RGBA{R: 0, G: 255, B: 0, A: 255})
	scene.SetStrokeWidth(2.0)
	scene.Rectangle(20, 20, 60, 40)
	scene.Stroke()

	fmt.Printf("scene has %d commands\n", scene.CommandCount())
	// Output: scene has 3 commands
}

// ExamplePixmapTarget_SetViewport draws the same scene magnified twice
// around the point (50, 50).
func ExamplePixmapTarget_SetViewport() {
	scene := render.NewScene()
	scene.SetFillColor(color.RGBA{R: 255, A: 255})
	scene.Rectangle(45, 45, 10, 10)
	scene.Fill()

	target := render.NewPixmapTarget(100, 100)
	target.SetViewport(render.Viewport{X: -50, Y: -50, Width: 200, Height: 200})

	_ = render.NewSoftwareRenderer().Render(target, scene)

	fmt.Println(target.GetPixel(41, 50).R, target.GetPixel(39, 50).R)
	// Output: 255 0
}

// ExampleNewPixmapTarget demonstrates creating and using a CPU render target.
func ExampleNewPixmapTarget() {
	target := render.NewPixmapTarget(400, 300)

	fmt.Printf("target size: %dx%d\n", target.Width(), target.Height())
	fmt.Printf("stride: %d bytes per row\n", target.Stride())
	fmt.Printf("viewport: %v\n", target.Viewport())
	// Output:
	// target size: 400x300
	// stride: 1600 bytes per row
	// viewport: Viewport(0.00,0.00 400.00x300.00)
}

// ExampleNullDeviceHandle demonstrates the null device for testing.
func ExampleNullDeviceHandle() {
	handle := render.NullDeviceHandle{}

	fmt.Printf("device: %v\n", handle.Device())
	fmt.Printf("adapter: %v\n", handle.AdapterInfo().Type)
	// Output:
	// device: <nil>
	// adapter: Unknown
}
