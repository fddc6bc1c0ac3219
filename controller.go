package magnify

import (
	"sync"

	"github.com/gogpu/gpucontext"
)

// Controller turns host input events into lens parameters.
//
// Pointer movement places the lens and leaving the window hides it. The
// wheel adjusts the lens in wheel units, three per mouse notch: with Shift
// it changes the zoom by a tenth of a unit per unit, with Control the
// exponent by one per unit, and otherwise the radius by one pixel per unit.
// Every adjustment is clamped to the controller's limits.
//
// Event handlers may run on the UI thread while the render loop calls
// Params, so the controller is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	params Params
	limits Limits
}

// NewController creates a controller starting from p with no pointer.
func NewController(p Params, l Limits) *Controller {
	p.Position = nil
	return &Controller{params: p.Clamp(l), limits: l}
}

// Params returns a snapshot of the current lens parameters.
func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.params
	if p.Position != nil {
		pos := *p.Position
		p.Position = &pos
	}
	return p
}

// Update replaces the tunable parameters, keeping the pointer position.
func (c *Controller) Update(p Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.Position = c.params.Position
	c.params = p.Clamp(c.limits)
}

// HandlePointer consumes a pointer event.
func (c *Controller) HandlePointer(ev gpucontext.PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Type {
	case gpucontext.PointerMove, gpucontext.PointerEnter, gpucontext.PointerDown:
		pos := Pt(ev.X, ev.Y)
		c.params.Position = &pos
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		c.params.Position = nil
	}
}

// Scroll deltas per wheel unit. A notch is 120 pixels or 3 lines, which
// is 3 units either way.
const (
	wheelPixelsPerUnit = 40
	wheelUnitsPerPage  = 30
)

// wheelUnits converts a vertical scroll delta to wheel units. Scrolling
// up is positive.
func wheelUnits(ev gpucontext.ScrollEvent) float64 {
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaLine:
		return -ev.DeltaY
	case gpucontext.ScrollDeltaPage:
		return -ev.DeltaY * wheelUnitsPerPage
	default:
		return -ev.DeltaY / wheelPixelsPerUnit
	}
}

// HandleScroll consumes a scroll event. Positive DeltaY shrinks the lens
// property being adjusted, matching "scroll down to reduce".
func (c *Controller) HandleScroll(ev gpucontext.ScrollEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delta := wheelUnits(ev)
	switch {
	case ev.Modifiers.HasShift():
		c.params.Zoom = clampRange(c.limits.Zoom, c.params.Zoom+delta/10)
	case ev.Modifiers.HasControl():
		c.params.Exponent = clampRange(c.limits.Exponent, c.params.Exponent+delta)
	default:
		c.params.Radius = clampRange(c.limits.Radius, c.params.Radius+delta)
	}
}

// Attach registers the controller's handlers on an event source. Sources
// without pointer or scroll events are skipped.
func (c *Controller) Attach(src any) {
	if ps, ok := src.(gpucontext.PointerEventSource); ok {
		ps.OnPointer(c.HandlePointer)
	}
	if ss, ok := src.(gpucontext.ScrollEventSource); ok {
		ss.OnScrollEvent(c.HandleScroll)
	}
}
