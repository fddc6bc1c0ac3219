package magnify

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/magnify/render"
)

// surfaceKind names the offscreen surfaces a Magnifier owns.
type surfaceKind int

const (
	surfaceZoom surfaceKind = iota
	surfaceAntialias
	surfaceSource
	surfaceKinds
)

var surfaceLabels = [surfaceKinds]string{
	surfaceZoom:      "magnify_zoom",
	surfaceAntialias: "magnify_antialias",
	surfaceSource:    "magnify_source",
}

// targetPool holds the offscreen surfaces of one Magnifier. Surfaces are
// allocated lazily from the current backend and then only resized, so a
// steady-state frame allocates nothing. Switching backends releases the old
// surfaces because they belong to the old backend's device.
type targetPool struct {
	backend  Backend
	surfaces [surfaceKinds]render.Surface
}

// bind makes b the pool's backend, releasing surfaces of any previous one.
// It reports whether the backend changed.
func (p *targetPool) bind(b Backend) bool {
	if p.backend == b {
		return false
	}
	p.release()
	p.backend = b
	return true
}

// get returns the surface of the given kind sized to w×h with a full
// viewport.
func (p *targetPool) get(kind surfaceKind, w, h int, log *slog.Logger) (render.Surface, error) {
	s := p.surfaces[kind]
	if s == nil {
		var err error
		s, err = p.backend.NewSurface(surfaceLabels[kind])
		if err != nil {
			return nil, fmt.Errorf("magnify: allocate %s: %w", surfaceLabels[kind], err)
		}
		p.surfaces[kind] = s
	}
	if s.Width() != w || s.Height() != h {
		log.Debug("magnify: resize surface",
			"surface", surfaceLabels[kind], "width", w, "height", h)
	}
	if err := s.SetSize(w, h); err != nil {
		return nil, fmt.Errorf("magnify: resize %s: %w", surfaceLabels[kind], err)
	}
	return s, nil
}

// peek returns the surface of the given kind without allocating or
// resizing it.
func (p *targetPool) peek(kind surfaceKind) render.Surface {
	return p.surfaces[kind]
}

func (p *targetPool) release() {
	for i, s := range p.surfaces {
		if s != nil {
			s.Destroy()
			p.surfaces[i] = nil
		}
	}
	p.backend = nil
}
