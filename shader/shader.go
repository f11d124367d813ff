// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the WGSL program that renders glyph meshes and the
// pipeline pieces that must agree with the mesh vertex layout.
package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphmesh/mesh"
)

//go:embed shaders/glyph.wgsl
var glyphShaderWGSL string

// Entry points in the glyph shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// UniformSize is the byte size of the shader's uniform block: a 4x4
// transform followed by an RGBA color.
const UniformSize = 16*4 + 4*4

// IndexFormat is the index format of every pooled index buffer.
const IndexFormat = gputypes.IndexFormatUint32

// Source returns the WGSL source.
func Source() string {
	return glyphShaderWGSL
}

// CompileSPIRV compiles the shader to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(glyphShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: compile glyph shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// CreateModule compiles the shader and creates a module on device.
func CreateModule(device hal.Device) (hal.ShaderModule, error) {
	words, err := CompileSPIRV()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_shader",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("shader: create glyph module: %w", err)
	}
	return module, nil
}

// VertexLayout describes mesh.Vertex as serialized by the pool: position
// at location 0 and curve tag at location 1.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: mesh.VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x2,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         gputypes.VertexFormatFloat32x2,
				Offset:         8,
				ShaderLocation: 1,
			},
		},
	}
}

// Primitive returns the primitive state for fan meshes. Fans overlap in
// both windings, so nothing is culled.
func Primitive() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}
}

// ParityBlend toggles the destination between 0 and the source color:
// each covering triangle writes src * (1 - dst). Drawn with a white color
// into a cleared target, pixels covered an odd number of times end up
// filled.
func ParityBlend() gputypes.BlendState {
	c := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOneMinusDst,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: c, Alpha: c}
}
