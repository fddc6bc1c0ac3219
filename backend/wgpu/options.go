// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/magnify"
)

// Option configures a Backend during creation.
//
// Example:
//
//	be, err := wgpu.New(device, queue, 800, 600,
//	    wgpu.WithPixelRatio(2),
//	    wgpu.WithSurfaceFormat(gputypes.TextureFormatBGRA8Unorm),
//	)
type Option func(*options)

type options struct {
	ratio     float64
	maxDims   *magnify.Size
	format    gputypes.TextureFormat
	autoClear bool
}

func defaultOptions() options {
	return options{
		ratio:     1,
		format:    gputypes.TextureFormatRGBA8Unorm,
		autoClear: true,
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

// WithMaxViewport sets the largest viewport the backend reports, in
// physical pixels. The default comes from the device capabilities.
func WithMaxViewport(w, h float64) Option {
	return func(o *options) {
		dims := magnify.Sz(w, h)
		o.maxDims = &dims
	}
}

// WithSurfaceFormat sets the texture format of the lens surfaces.
// Undefined formats are ignored.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}

// WithAutoClear sets the initial auto-clear flag. The default is on.
func WithAutoClear(on bool) Option {
	return func(o *options) {
		o.autoClear = on
	}
}
