// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image/color"
	"runtime"

	"github.com/gogpu/magnify"
)

// DefaultMaxViewport is the viewport limit of the software backend in
// physical pixels, matching the common GPU maxTextureDimension2D.
const DefaultMaxViewport = 16384

// Option configures a Backend during creation.
//
// Example:
//
//	be := software.New(800, 600,
//	    software.WithPixelRatio(2),
//	    software.WithWorkers(4),
//	)
type Option func(*options)

type options struct {
	ratio      float64
	workers    int
	maxDims    magnify.Size
	clearColor color.Color
	autoClear  bool
}

func defaultOptions() options {
	return options{
		ratio:      1,
		workers:    runtime.GOMAXPROCS(0),
		maxDims:    magnify.Sz(DefaultMaxViewport, DefaultMaxViewport),
		clearColor: color.Transparent,
		autoClear:  true,
	}
}

// WithPixelRatio sets the ratio of physical to logical pixels.
// Non-positive values are ignored.
func WithPixelRatio(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.ratio = r
		}
	}
}

// WithWorkers sets how many goroutines a pass may use. Values below 1 run
// passes on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// WithMaxViewport sets the largest viewport the backend reports, in
// physical pixels. Non-positive dimensions mean unlimited.
func WithMaxViewport(w, h float64) Option {
	return func(o *options) {
		o.maxDims = magnify.Sz(w, h)
	}
}

// WithClearColor sets the color auto-clear fills targets with.
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithAutoClear sets the initial auto-clear flag. The default is on.
func WithAutoClear(on bool) Option {
	return func(o *options) {
		o.autoClear = on
	}
}
