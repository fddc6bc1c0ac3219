// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/magnify"
	"github.com/gogpu/magnify/backend/software"
	"github.com/gogpu/magnify/render"
)

func ExampleNew() {
	scene := render.NewScene()
	scene.Clear(color.White)
	scene.SetFillColor(color.RGBA{0, 0, 255, 255})
	scene.Circle(400, 300, 30)
	scene.Fill()

	be := software.New(800, 600)
	m := magnify.New()
	defer m.Close()

	err := m.Render(magnify.Frame{
		Backend: be,
		Scene:   be.DrawScene(scene),
		Params:  magnify.DefaultParams().At(400, 300),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	img := be.Presentation()
	// 45px from the centre is outside the disc, but inside the lens it is
	// drawn at twice its size.
	fmt.Println("lens:", img.GetPixel(445, 300))
	fmt.Println("outside:", img.GetPixel(10, 10))
	// Output:
	// lens: {0 0 255 255}
	// outside: {255 255 255 255}
}
