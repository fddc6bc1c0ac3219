package magnify

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/magnify/render"
)

func activeParams(x, y float64) Params {
	p := DefaultParams().At(x, y)
	p.Antialias = false
	return p
}

func TestRenderNoBackend(t *testing.T) {
	var buf bytes.Buffer
	m := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	called := false
	err := m.Render(Frame{
		Scene:  func(render.Target) error { called = true; return nil },
		Params: activeParams(1, 1),
	})
	if !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("Render() error = %v, want ErrNoRenderer", err)
	}
	if called {
		t.Error("scene should not be drawn without a backend")
	}
	if !strings.Contains(buf.String(), "no renderer") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestRenderNoScene(t *testing.T) {
	m := New()
	err := m.Render(Frame{Backend: newRecordingBackend(10, 10)})
	if !errors.Is(err, ErrNoScene) {
		t.Errorf("Render() error = %v, want ErrNoScene", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	b := newRecordingBackend(10, 10)
	rec := &sceneRecorder{backend: b}
	m := New()
	m.Close()
	if err := m.Render(Frame{Backend: b, Scene: rec.draw}); !errors.Is(err, ErrClosed) {
		t.Errorf("Render() error = %v, want ErrClosed", err)
	}
	if b.closed {
		t.Error("Magnifier.Close must not close the backend")
	}
}

func TestRenderPassthrough(t *testing.T) {
	b := newRecordingBackend(800, 600)
	rec := &sceneRecorder{backend: b}
	output := render.NewPixmapTarget(800, 600)
	m := New()
	defer m.Close()

	err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: DefaultParams(), Output: output})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("scene calls = %d, want 1", len(rec.calls))
	}
	if rec.calls[0].target != output {
		t.Errorf("scene target = %v, want Output", rec.calls[0].target)
	}
	if len(b.composites) != 0 || len(b.antialias) != 0 {
		t.Errorf("passes ran without a pointer: %d composite, %d antialias", len(b.composites), len(b.antialias))
	}
	if m.Surface("zoom") != nil || len(b.surfaces) != 0 {
		t.Error("no surface should be allocated without a pointer")
	}
}

func TestRenderPassthroughZeroSize(t *testing.T) {
	b := newRecordingBackend(0, 0)
	rec := &sceneRecorder{backend: b}
	m := New()
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(1, 1)}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(rec.calls) != 1 || rec.calls[0].target != nil {
		t.Errorf("scene calls = %+v, want one call with the presentation target", rec.calls)
	}
	if len(b.composites) != 0 {
		t.Error("composite should not run on an empty surface")
	}
}

func TestRenderLensWithInput(t *testing.T) {
	b := newRecordingBackend(800, 600)
	rec := &sceneRecorder{backend: b}
	input := render.NewPixmapTarget(800, 600)
	m := New()
	defer m.Close()

	p := activeParams(400, 300)
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: p, Input: input}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	zoom := m.Surface("zoom")
	if zoom == nil {
		t.Fatal("zoom surface not allocated")
	}
	if zoom.Width() != 800 || zoom.Height() != 600 {
		t.Errorf("zoom surface = %dx%d, want 800x600", zoom.Width(), zoom.Height())
	}
	if m.Surface("source") != nil {
		t.Error("source surface should not be allocated when Input is set")
	}

	if len(rec.calls) != 1 {
		t.Fatalf("scene calls = %d, want 1", len(rec.calls))
	}
	want := render.Viewport{X: -400, Y: -300, Width: 1600, Height: 1200}
	if got := rec.calls[0]; got.target != zoom || got.viewport != want {
		t.Errorf("scene call = %v %v, want zoom surface with %v", got.target, got.viewport, want)
	}

	if len(b.composites) != 1 {
		t.Fatalf("composite passes = %d, want 1", len(b.composites))
	}
	c := b.composites[0]
	if c.dst != nil {
		t.Errorf("composite dst = %v, want Output (nil)", c.dst)
	}
	u := c.composite
	if u.Original != input || u.Zoomed != zoom {
		t.Error("composite should read Input and the zoom surface")
	}
	if u.Pos != Pt(400, 300) || u.Resolution != Sz(800, 600) || u.MagResolution != Sz(800, 600) {
		t.Errorf("uniforms pos %v res %v mag %v", u.Pos, u.Resolution, u.MagResolution)
	}
	if u.Zoom != p.Zoom || u.Radius != p.Radius || u.OutlineThickness != p.OutlineThickness ||
		u.Exponent != p.Exponent || u.OutlineColor != p.OutlineColor {
		t.Errorf("uniforms = %+v, want params %+v", u, p)
	}
	if len(b.antialias) != 0 {
		t.Error("antialias pass ran with Antialias off")
	}
}

func TestRenderOwnsSourceSurface(t *testing.T) {
	b := newRecordingBackend(64, 48)
	rec := &sceneRecorder{backend: b}
	m := New()
	defer m.Close()

	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(10, 10)}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	src := m.Surface("source")
	if src == nil {
		t.Fatal("source surface not allocated")
	}
	if len(rec.calls) != 2 {
		t.Fatalf("scene calls = %d, want 2", len(rec.calls))
	}
	if rec.calls[0].target != src || rec.calls[0].viewport != render.FullViewport(64, 48) {
		t.Errorf("first scene call = %v %v, want source surface with full viewport",
			rec.calls[0].target, rec.calls[0].viewport)
	}
	if rec.calls[1].target != m.Surface("zoom") {
		t.Error("second scene call should draw the zoom surface")
	}
	if b.composites[0].composite.Original != src {
		t.Error("composite should read the source surface")
	}
}

func TestRenderAntialias(t *testing.T) {
	b := newRecordingBackend(200, 100)
	rec := &sceneRecorder{backend: b}
	output := render.NewPixmapTarget(200, 100)
	m := New()
	defer m.Close()

	p := DefaultParams().At(50, 50)
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: p, Output: output}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	aa := m.Surface("antialias")
	if aa == nil {
		t.Fatal("antialias surface not allocated")
	}
	if len(b.composites) != 1 || b.composites[0].dst != aa {
		t.Fatalf("composite should write the antialias surface, got %+v", b.composites)
	}
	if len(b.antialias) != 1 {
		t.Fatalf("antialias passes = %d, want 1", len(b.antialias))
	}
	a := b.antialias[0]
	if a.dst != output {
		t.Errorf("antialias dst = %v, want Output", a.dst)
	}
	if a.antialias.Source != aa {
		t.Error("antialias should read the antialias surface")
	}
	if want := Sz(1.0/200, 1.0/100); a.antialias.InvResolution != want {
		t.Errorf("InvResolution = %v, want %v", a.antialias.InvResolution, want)
	}
}

func TestRenderPixelRatio(t *testing.T) {
	b := newRecordingBackend(400, 300)
	b.ratio = 2
	rec := &sceneRecorder{backend: b}
	m := New()
	defer m.Close()

	p := activeParams(100, 50)
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: p}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	zoom := m.Surface("zoom")
	if zoom.Width() != 800 || zoom.Height() != 600 {
		t.Errorf("zoom surface = %dx%d, want physical 800x600", zoom.Width(), zoom.Height())
	}
	u := b.composites[0].composite
	if u.Pos != Pt(200, 100) {
		t.Errorf("Pos = %v, want (200, 100)", u.Pos)
	}
	if u.Radius != p.Radius*2 || u.OutlineThickness != p.OutlineThickness*2 {
		t.Errorf("Radius %v Outline %v, want doubled", u.Radius, u.OutlineThickness)
	}
	if u.Resolution != Sz(800, 600) {
		t.Errorf("Resolution = %v, want 800x600", u.Resolution)
	}
}

func TestRenderForcesAndRestoresAutoClear(t *testing.T) {
	b := newRecordingBackend(32, 32)
	rec := &sceneRecorder{backend: b}
	m := New()
	defer m.Close()

	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(5, 5)}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i, c := range rec.calls {
		if !c.autoClear {
			t.Errorf("scene call %d ran with auto-clear off", i)
		}
	}
	if b.autoClear {
		t.Error("auto-clear should be restored to false")
	}
}

func TestRenderRestoresAutoClearOnSceneError(t *testing.T) {
	b := newRecordingBackend(32, 32)
	sceneErr := errors.New("scene exploded")
	rec := &sceneRecorder{backend: b, err: sceneErr}
	m := New()
	defer m.Close()

	err := m.Render(Frame{
		Backend: b,
		Scene:   rec.draw,
		Params:  activeParams(5, 5),
		Input:   render.NewPixmapTarget(32, 32),
	})
	if !errors.Is(err, sceneErr) {
		t.Fatalf("Render() error = %v, want wrapped scene error", err)
	}
	if b.autoClear {
		t.Error("auto-clear should be restored after a failing scene")
	}
	if len(b.composites) != 0 {
		t.Error("composite should not run after a failing scene")
	}
}

func TestRenderCompositeError(t *testing.T) {
	b := newRecordingBackend(32, 32)
	b.compositeErr = ErrForeignTarget
	rec := &sceneRecorder{backend: b}
	m := New()
	err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(5, 5)})
	if !errors.Is(err, ErrForeignTarget) {
		t.Errorf("Render() error = %v, want ErrForeignTarget", err)
	}
}

func TestRenderWithLimits(t *testing.T) {
	b := newRecordingBackend(100, 100)
	rec := &sceneRecorder{backend: b}
	m := New(WithLimits(DefaultLimits()))

	p := activeParams(50, 50)
	p.Zoom = 100
	p.Radius = 1
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: p}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	u := b.composites[0].composite
	if u.Zoom != 15 || u.Radius != 10 {
		t.Errorf("Zoom %v Radius %v, want 15 and 10", u.Zoom, u.Radius)
	}
}

func TestRenderClampedViewportWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	b := newRecordingBackend(800, 600)
	b.maxDims = Sz(2048, 2048)
	rec := &sceneRecorder{backend: b}
	m := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	p := activeParams(400, 300)
	p.Zoom = 4
	for range 3 {
		if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: p}); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	if n := strings.Count(buf.String(), "exceeds backend limit"); n != 1 {
		t.Errorf("clamp warnings = %d, want 1", n)
	}
	for _, c := range rec.calls {
		if c.viewport.Width > 2048+1e-9 || c.viewport.Height > 2048+1e-9 {
			t.Errorf("viewport %v exceeds the 2048 limit", c.viewport)
		}
	}
	u := b.composites[0].composite
	if !(u.MagResolution.W > 800) {
		t.Errorf("MagResolution = %v, want it scaled up", u.MagResolution)
	}
}

func TestRenderPropagatesLogger(t *testing.T) {
	b := newRecordingBackend(16, 16)
	rec := &sceneRecorder{backend: b}
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	m := New(WithLogger(l))

	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(1, 1)}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b.logger != l {
		t.Error("backend did not receive the Magnifier logger")
	}
}

func TestRenderBackendSwitchReleasesSurfaces(t *testing.T) {
	first := newRecordingBackend(16, 16)
	second := newRecordingBackend(16, 16)
	m := New()
	defer m.Close()

	for _, b := range []*recordingBackend{first, second} {
		rec := &sceneRecorder{backend: b}
		if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(1, 1)}); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	if len(first.surfaces) == 0 {
		t.Fatal("first backend allocated no surfaces")
	}
	for _, s := range first.surfaces {
		if !s.destroyed {
			t.Errorf("surface %s of the old backend was not destroyed", s.label)
		}
	}
	for _, s := range second.surfaces {
		if s.destroyed {
			t.Errorf("surface %s of the current backend was destroyed", s.label)
		}
	}
}

func TestRenderReusesSurfaces(t *testing.T) {
	b := newRecordingBackend(16, 16)
	rec := &sceneRecorder{backend: b}
	m := New()
	defer m.Close()

	for range 3 {
		if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: DefaultParams().At(3, 3)}); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	// zoom, source and antialias, allocated once.
	if len(b.surfaces) != 3 {
		t.Errorf("surfaces allocated = %d, want 3", len(b.surfaces))
	}
}

func TestSurfaceUnknownName(t *testing.T) {
	if s := New().Surface("bogus"); s != nil {
		t.Errorf("Surface(bogus) = %v, want nil", s)
	}
}

func TestCloseDestroysSurfaces(t *testing.T) {
	b := newRecordingBackend(16, 16)
	rec := &sceneRecorder{backend: b}
	m := New()
	if err := m.Render(Frame{Backend: b, Scene: rec.draw, Params: activeParams(1, 1)}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	m.Close()
	for _, s := range b.surfaces {
		if !s.destroyed {
			t.Errorf("surface %s not destroyed by Close", s.label)
		}
	}
	if m.Surface("zoom") != nil {
		t.Error("Surface(zoom) should be nil after Close")
	}
}
