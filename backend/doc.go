// Package backend is the registry of magnify backends.
//
// Backend packages register a factory from init(), so importing them is
// enough to make them selectable:
//
//	import (
//		_ "github.com/gogpu/magnify/backend/software"
//		_ "github.com/gogpu/magnify/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default to create the best backend that opens on this machine, or
// Get to request one by name:
//
//	cfg := backend.Config{Width: 800, Height: 600}
//
//	// GPU if an adapter is found, software otherwise
//	b, err := backend.Default(cfg)
//
//	// Or request a specific backend
//	b, err := backend.Get(backend.BackendSoftware, cfg)
//
// # Available Backends
//
//   - "wgpu": composite and FXAA as WGSL shaders on a gogpu/wgpu HAL device
//   - "software": the same passes on the CPU (always available)
package backend
