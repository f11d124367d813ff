// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glyphmesh/mesh"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// recordingDevice counts buffer creation and destruction.
type recordingDevice struct {
	hal.Device
	labels    []string
	usages    []gputypes.BufferUsage
	destroyed int
	fail      error
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.fail != nil {
		return nil, d.fail
	}
	d.labels = append(d.labels, desc.Label)
	d.usages = append(d.usages, desc.Usage)
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(b hal.Buffer) {
	d.destroyed++
	d.Device.DestroyBuffer(b)
}

type failingWriter struct {
	Writer
	failAfter int
	calls     int
}

var errUpload = errors.New("upload failed")

func (w *failingWriter) WriteBuffer(b hal.Buffer, offset uint64, data []byte) error {
	w.calls++
	if w.calls > w.failAfter {
		return errUpload
	}
	return w.Writer.WriteBuffer(b, offset, data)
}

// fanMesh returns a mesh of n line vertices forming n-1 fan triangles.
func fanMesh(n int) mesh.Mesh {
	m := mesh.Mesh{}
	for i := range n {
		m.Vertices = append(m.Vertices, mesh.Vertex{Position: [2]float32{float32(i), 1}, Tag: mesh.TagFlop})
	}
	for i := 1; i < n; i++ {
		m.Indices = append(m.Indices, 0, uint32(i), uint32(i+1))
	}
	return m
}

func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, offset, size uint64) []byte {
	t.Helper()
	mapping, err := device.MapBuffer(buf, offset, size)
	if err != nil {
		t.Fatalf("MapBuffer failed: %v", err)
	}
	return append([]byte(nil), unsafe.Slice((*byte)(mapping.Ptr), size)...)
}

func TestPool_AppendAndDrawInfo(t *testing.T) {
	device, queue := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	p := New[string](rec, queue)

	if err := p.Append("a", fanMesh(3)); err != nil {
		t.Fatalf("Append(a) error = %v", err)
	}
	if err := p.Append("b", fanMesh(4)); err != nil {
		t.Fatalf("Append(b) error = %v", err)
	}

	a, err := p.DrawInfo("a")
	if err != nil {
		t.Fatalf("DrawInfo(a) error = %v", err)
	}
	b, err := p.DrawInfo("b")
	if err != nil {
		t.Fatalf("DrawInfo(b) error = %v", err)
	}
	if a.IndexStart != 0 || a.IndexEnd != 6 {
		t.Errorf("a range = [%d,%d), want [0,6)", a.IndexStart, a.IndexEnd)
	}
	if b.IndexStart != 6 || b.IndexEnd != 15 || b.IndexCount() != 9 {
		t.Errorf("b range = [%d,%d), want [6,15)", b.IndexStart, b.IndexEnd)
	}
	if a.VertexBuffer != b.VertexBuffer || a.IndexBuffer != b.IndexBuffer {
		t.Error("small meshes should share one chunk")
	}

	wantLabels := []string{"glyph vertex buffer #0", "glyph index buffer #0"}
	if diff := cmp.Diff(wantLabels, rec.labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if rec.usages[0] != gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst {
		t.Errorf("vertex usage = %v", rec.usages[0])
	}
	if rec.usages[1] != gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst {
		t.Errorf("index usage = %v", rec.usages[1])
	}
	if diff := cmp.Diff([]string{"a", "b"}, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_Rebase(t *testing.T) {
	device, queue := createNoopDevice(t)
	p := New[int](device, queue)

	if err := p.Append(1, fanMesh(3)); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(2, fanMesh(3)); err != nil {
		t.Fatal(err)
	}
	info, _ := p.DrawInfo(2)

	got := readBuffer(t, device, info.IndexBuffer, uint64(info.IndexStart)*mesh.IndexSize, uint64(info.IndexCount())*mesh.IndexSize)
	var indices []uint32
	for i := 0; i < len(got); i += 4 {
		indices = append(indices, binary.LittleEndian.Uint32(got[i:]))
	}
	// The first mesh occupies vertices 1..3, so the second is shifted by 3
	// while the origin index stays 0.
	want := []uint32{0, 4, 5, 0, 5, 6}
	if diff := cmp.Diff(want, indices); diff != "" {
		t.Errorf("rebased indices mismatch (-want +got):\n%s", diff)
	}

	origin := readBuffer(t, device, info.VertexBuffer, 0, mesh.VertexSize)
	if diff := cmp.Diff(mesh.Origin.AppendBytes(nil), origin); diff != "" {
		t.Errorf("origin vertex mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_MultipleChunks(t *testing.T) {
	device, queue := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	// 4 vertices (64 bytes) per chunk: the origin plus three mesh vertices.
	p := New[int](rec, queue, WithChunkSize(64), WithLabelPrefix("test"))

	for i := range 3 {
		if err := p.Append(i, fanMesh(3)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	s := p.Stats()
	if len(s.VertexChunks) != 3 {
		t.Errorf("vertex chunks = %d, want 3", len(s.VertexChunks))
	}
	for _, c := range append(s.VertexChunks, s.IndexChunks...) {
		if c.Offset > c.Capacity {
			t.Errorf("%s offset %d exceeds capacity %d", c.Label, c.Offset, c.Capacity)
		}
	}
	if s.VertexChunks[2].Label != "test vertex buffer #2" {
		t.Errorf("label = %q", s.VertexChunks[2].Label)
	}

	first, _ := p.DrawInfo(0)
	last, _ := p.DrawInfo(2)
	if first.VertexBuffer == last.VertexBuffer {
		t.Error("meshes should land in different vertex chunks")
	}
	for i := range 3 {
		info, _ := p.DrawInfo(i)
		if info.IndexCount() != 6 {
			t.Errorf("key %d index count = %d, want 6", i, info.IndexCount())
		}
	}
}

func TestPool_FirstFit(t *testing.T) {
	device, queue := createNoopDevice(t)
	p := New[int](device, queue, WithChunkSize(96))

	// 5 slots after the origin: 4 + 1 leaves room for a later small mesh.
	if err := p.Append(0, fanMesh(4)); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(1, fanMesh(3)); err != nil {
		t.Fatal(err)
	}
	if err := p.Append(2, mesh.Mesh{Vertices: fanMesh(1).Vertices, Indices: []uint32{0, 1, 1}}); err != nil {
		t.Fatal(err)
	}
	a, _ := p.DrawInfo(0)
	c, _ := p.DrawInfo(2)
	if a.VertexBuffer != c.VertexBuffer {
		t.Error("small mesh should fill the first chunk")
	}
}

func TestPool_CapacityExceeded(t *testing.T) {
	device, queue := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	p := New[int](rec, queue, WithChunkSize(64))

	err := p.Append(0, fanMesh(4))
	var capErr *CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("Append() error = %v, want CapacityExceededError", err)
	}
	if capErr.Kind != BufferKindVertex || capErr.Size != 64 || capErr.Capacity != 48 {
		t.Errorf("error = %+v", capErr)
	}
	if len(rec.labels) != 0 || p.Len() != 0 {
		t.Error("pool state changed after capacity error")
	}

	big := mesh.Mesh{Vertices: fanMesh(1).Vertices, Indices: make([]uint32, 18)}
	if err := p.Append(1, big); !errors.As(err, &capErr) || capErr.Kind != BufferKindIndex {
		t.Errorf("Append() error = %v, want index CapacityExceededError", err)
	}
}

func TestPool_Failures(t *testing.T) {
	device, queue := createNoopDevice(t)

	t.Run("create buffer", func(t *testing.T) {
		errCreate := errors.New("out of memory")
		p := New[int](&recordingDevice{Device: device, fail: errCreate}, queue)
		if err := p.Append(0, fanMesh(3)); !errors.Is(err, errCreate) {
			t.Errorf("Append() error = %v, want wrapped create error", err)
		}
		if p.Contains(0) {
			t.Error("key recorded after failed allocation")
		}
	})

	t.Run("upload", func(t *testing.T) {
		// origin write succeeds, vertex upload fails.
		p := New[int](device, &failingWriter{Writer: queue, failAfter: 1})
		if err := p.Append(0, fanMesh(3)); !errors.Is(err, errUpload) {
			t.Errorf("Append() error = %v, want wrapped upload error", err)
		}
		if p.Contains(0) {
			t.Error("key recorded after failed upload")
		}
		if s := p.Stats(); s.VertexChunks[0].Offset != mesh.VertexSize {
			t.Errorf("vertex offset advanced to %d", s.VertexChunks[0].Offset)
		}
	})

	t.Run("invalid mesh panics", func(t *testing.T) {
		p := New[int](device, queue)
		defer func() {
			if recover() == nil {
				t.Error("expected panic for out-of-range index")
			}
		}()
		_ = p.Append(0, mesh.Mesh{Vertices: fanMesh(1).Vertices, Indices: []uint32{0, 1, 2}})
	})

	t.Run("empty mesh", func(t *testing.T) {
		p := New[int](device, queue)
		if err := p.Append(0, mesh.Mesh{}); !errors.Is(err, mesh.ErrEmptyMesh) {
			t.Errorf("Append() error = %v, want ErrEmptyMesh", err)
		}
	})
}

func TestPool_KeyNotFoundAndDestroy(t *testing.T) {
	device, queue := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	p := New[rune](rec, queue)

	if _, err := p.DrawInfo('x'); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("DrawInfo() error = %v, want ErrKeyNotFound", err)
	}
	if err := p.Append('x', fanMesh(3)); err != nil {
		t.Fatal(err)
	}

	p.Destroy()
	p.Destroy()
	if rec.destroyed != 2 {
		t.Errorf("destroyed buffers = %d, want 2", rec.destroyed)
	}
	if _, err := p.DrawInfo('x'); !errors.Is(err, ErrDestroyed) {
		t.Errorf("DrawInfo() after Destroy error = %v, want ErrDestroyed", err)
	}
	if err := p.Append('y', fanMesh(3)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Append() after Destroy error = %v, want ErrDestroyed", err)
	}
}

func TestWithChunkSize(t *testing.T) {
	tests := []struct {
		in, want uint64
	}{
		{1 << 20, 1 << 20},
		{70, 64},
		{1, minChunkSize},
	}
	for _, tt := range tests {
		o := defaultOptions()
		WithChunkSize(tt.in)(&o)
		if o.chunkSize != tt.want {
			t.Errorf("WithChunkSize(%d) = %d, want %d", tt.in, o.chunkSize, tt.want)
		}
	}
}

func TestBufferKind_String(t *testing.T) {
	if BufferKindVertex.String() != "vertex" || BufferKindIndex.String() != "index" {
		t.Error("unexpected BufferKind names")
	}
	if BufferKind(9).String() != "unknown" {
		t.Error("unexpected name for invalid kind")
	}
}
