package backend

import (
	"errors"

	"github.com/gogpu/magnify"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or none of the registered backends could be created.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidConfig is returned by factories for a non-positive surface
	// size.
	ErrInvalidConfig = errors.New("backend: invalid config")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend on gogpu/wgpu HAL.
	BackendWGPU = "wgpu"
)

// Config describes the presentation surface a factory creates a backend
// for.
type Config struct {
	// Width and Height are the logical surface size.
	Width, Height int

	// PixelRatio is the ratio of physical to logical pixels. Zero means 1.
	PixelRatio float64
}

// Validate reports ErrInvalidConfig for an unusable config.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.PixelRatio < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Ratio returns PixelRatio, defaulting to 1.
func (c Config) Ratio() float64 {
	if c.PixelRatio <= 0 {
		return 1
	}
	return c.PixelRatio
}

// Factory creates a backend for cfg. A factory returns an error when its
// backend cannot run here, e.g. no GPU adapter.
type Factory func(cfg Config) (magnify.Backend, error)
