// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"golang.org/x/sync/errgroup"
)

// minBand is the smallest number of rows handed to one goroutine.
const minBand = 16

// forRows calls fn over [0, h) split into row bands, running at most
// workers bands concurrently. It returns after every band has finished,
// so a pass is complete when forRows returns.
func forRows(h, workers int, fn func(y0, y1 int)) error {
	if workers <= 1 || h < 2*minBand {
		fn(0, h)
		return nil
	}

	band := max(minBand, (h+workers*4-1)/(workers*4))

	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < h; y += band {
		y0, y1 := y, min(y+band, h)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	return g.Wait()
}
