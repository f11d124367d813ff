// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/glyphmesh/mesh"
)

func TestCompileSPIRV(t *testing.T) {
	if Source() == "" {
		t.Fatal("glyph shader source is empty")
	}
	for _, entry := range []string{VertexEntryPoint, FragmentEntryPoint} {
		if !strings.Contains(Source(), "fn "+entry) {
			t.Errorf("shader has no entry point %q", entry)
		}
	}

	words, err := CompileSPIRV()
	if err != nil {
		t.Fatalf("CompileSPIRV() error = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("SPIR-V output is empty")
	}
	// Verify SPIR-V magic number
	if words[0] != 0x07230203 {
		t.Errorf("magic = %#x, want 0x07230203", words[0])
	}
}

func TestCreateModule(t *testing.T) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer openDev.Device.Destroy()

	module, err := CreateModule(openDev.Device)
	if err != nil {
		t.Fatalf("CreateModule() error = %v", err)
	}
	if module == nil {
		t.Fatal("CreateModule() returned nil module")
	}
	openDev.Device.DestroyShaderModule(module)
}

func TestVertexLayout(t *testing.T) {
	l := VertexLayout()
	if l.ArrayStride != mesh.VertexSize {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, mesh.VertexSize)
	}
	if len(l.Attributes) != 2 {
		t.Fatalf("attributes = %d, want 2", len(l.Attributes))
	}
	// The tag follows the two position floats of Vertex.AppendBytes.
	if l.Attributes[1].Offset != 8 || l.Attributes[1].ShaderLocation != 1 {
		t.Errorf("tag attribute = %+v", l.Attributes[1])
	}
	if got := Primitive().CullMode; got != gputypes.CullModeNone {
		t.Errorf("CullMode = %v, want none", got)
	}
	if b := ParityBlend(); b.Color.SrcFactor != gputypes.BlendFactorOneMinusDst {
		t.Errorf("parity blend src = %v", b.Color.SrcFactor)
	}
}
