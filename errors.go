package magnify

import "errors"

var (
	// ErrNoRenderer is returned by Magnifier.Render when the frame has no
	// backend. Nothing is rendered and a warning is logged.
	ErrNoRenderer = errors.New("magnify: no renderer attached")

	// ErrNoScene is returned when the frame has no scene callback.
	ErrNoScene = errors.New("magnify: no scene callback")

	// ErrNilTarget is returned by backends when a pass is missing a source
	// texture.
	ErrNilTarget = errors.New("magnify: nil target")

	// ErrForeignTarget is returned by backends for targets they did not
	// create and cannot read or write.
	ErrForeignTarget = errors.New("magnify: target not usable by this backend")

	// ErrClosed is returned after a Magnifier or backend has been closed.
	ErrClosed = errors.New("magnify: closed")
)
