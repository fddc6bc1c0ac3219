//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources.

//go:embed shaders/composite.wgsl
var compositeShaderSource string

//go:embed shaders/fxaa.wgsl
var fxaaShaderSource string

// compileSPIRV compiles WGSL source to SPIR-V words with naga.
//
// Backends that consume WGSL directly ignore the SPIR-V; compiling up front
// still rejects a broken shader before any device object is created.
func compileSPIRV(label, wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, fmt.Errorf("%s shader source is empty", label)
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", label, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile %s shader: SPIR-V length %d not a multiple of 4", label, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
