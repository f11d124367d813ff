// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphmesh/mesh"
)

// Writer uploads bytes into a GPU buffer. hal.Queue satisfies it.
type Writer interface {
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error
}

// DrawInfo locates one appended mesh. IndexStart and IndexEnd count indices,
// not bytes, within IndexBuffer.
type DrawInfo struct {
	VertexBuffer hal.Buffer
	IndexBuffer  hal.Buffer
	IndexStart   uint32
	IndexEnd     uint32
}

// IndexCount returns the number of indices to draw.
func (d DrawInfo) IndexCount() uint32 {
	return d.IndexEnd - d.IndexStart
}

// ChunkStats describes one allocated buffer.
type ChunkStats struct {
	Label    string
	Offset   uint64
	Capacity uint64
}

// Stats is a snapshot of pool usage.
type Stats struct {
	Keys         int
	VertexChunks []ChunkStats
	IndexChunks  []ChunkStats
}

// VertexBytes returns the used bytes across all vertex chunks, including
// the per-chunk origin vertex.
func (s Stats) VertexBytes() uint64 {
	return usedBytes(s.VertexChunks)
}

// IndexBytes returns the used bytes across all index chunks.
func (s Stats) IndexBytes() uint64 {
	return usedBytes(s.IndexChunks)
}

func usedBytes(chunks []ChunkStats) uint64 {
	var n uint64
	for _, c := range chunks {
		n += c.Offset
	}
	return n
}

// chunk is one GPU buffer with a bump offset.
type chunk struct {
	buffer   hal.Buffer
	label    string
	offset   uint64
	capacity uint64
}

func (c *chunk) fits(size uint64) bool {
	return c.offset+size <= c.capacity
}

// Pool appends meshes into pooled vertex and index buffers and remembers
// where each key landed.
//
// Pool is not safe for concurrent use. Callers serialize Append, DrawInfo
// and Destroy.
type Pool[K comparable] struct {
	device hal.Device
	queue  Writer
	opts   options

	vertices []*chunk
	indices  []*chunk
	entries  map[K]DrawInfo
	order    []K

	destroyed bool
}

// New creates an empty pool. No buffer is allocated until the first Append.
func New[K comparable](device hal.Device, queue Writer, opts ...Option) *Pool[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[K]{
		device:  device,
		queue:   queue,
		opts:    o,
		entries: make(map[K]DrawInfo),
	}
}

// ChunkSize returns the byte size of each buffer this pool allocates.
func (p *Pool[K]) ChunkSize() uint64 {
	return p.opts.chunkSize
}

// Append uploads m and records its draw range under key.
//
// A mesh that breaks the triangle-list invariants is a programming error
// and panics. A mesh too large for an empty chunk returns
// *CapacityExceededError without touching the pool. Appending an existing
// key records the new location and leaves the old bytes in place.
func (p *Pool[K]) Append(key K, m mesh.Mesh) error {
	if p.destroyed {
		return ErrDestroyed
	}
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("pool: invalid mesh for key %v: %v", key, err))
	}
	if m.IsEmpty() {
		return fmt.Errorf("pool: append %v: %w", key, mesh.ErrEmptyMesh)
	}

	vertexSize, indexSize := m.VertexByteSize(), m.IndexByteSize()
	if limit := p.opts.chunkSize - mesh.VertexSize; vertexSize > limit {
		return &CapacityExceededError{Kind: BufferKindVertex, Size: vertexSize, Capacity: limit}
	}
	if limit := p.opts.chunkSize; indexSize > limit {
		return &CapacityExceededError{Kind: BufferKindIndex, Size: indexSize, Capacity: limit}
	}

	vc, err := p.chunkFor(BufferKindVertex, vertexSize)
	if err != nil {
		return err
	}
	ic, err := p.chunkFor(BufferKindIndex, indexSize)
	if err != nil {
		return err
	}

	base := uint32(vc.offset/mesh.VertexSize) - 1 //nolint:gosec // offset is bounded by chunk size
	if err := p.queue.WriteBuffer(vc.buffer, vc.offset, m.VertexBytes()); err != nil {
		return fmt.Errorf("pool: upload vertices to %s: %w", vc.label, err)
	}
	if err := p.queue.WriteBuffer(ic.buffer, ic.offset, m.IndexBytes(base)); err != nil {
		return fmt.Errorf("pool: upload indices to %s: %w", ic.label, err)
	}

	start := uint32(ic.offset / mesh.IndexSize) //nolint:gosec // offset is bounded by chunk size
	info := DrawInfo{
		VertexBuffer: vc.buffer,
		IndexBuffer:  ic.buffer,
		IndexStart:   start,
		IndexEnd:     start + uint32(len(m.Indices)), //nolint:gosec // bounded by chunk size
	}
	vc.offset += vertexSize
	ic.offset += indexSize

	if _, ok := p.entries[key]; !ok {
		p.order = append(p.order, key)
	}
	p.entries[key] = info
	return nil
}

// chunkFor returns the first chunk of kind with room for size bytes,
// allocating a new one if none has.
func (p *Pool[K]) chunkFor(kind BufferKind, size uint64) (*chunk, error) {
	list := p.list(kind)
	for _, c := range *list {
		if c.fits(size) {
			return c, nil
		}
	}

	c, err := p.allocate(kind, len(*list))
	if err != nil {
		return nil, err
	}
	*list = append(*list, c)
	return c, nil
}

func (p *Pool[K]) list(kind BufferKind) *[]*chunk {
	if kind == BufferKindVertex {
		return &p.vertices
	}
	return &p.indices
}

func (p *Pool[K]) allocate(kind BufferKind, n int) (*chunk, error) {
	label := fmt.Sprintf("%s %s buffer #%d", p.opts.labelPrefix, kind, n)
	usage := gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	if kind == BufferKindVertex {
		usage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	}

	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  p.opts.chunkSize,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("pool: create %s: %w", label, err)
	}
	c := &chunk{buffer: buf, label: label, capacity: p.opts.chunkSize}

	if kind == BufferKindVertex {
		if err := p.queue.WriteBuffer(buf, 0, mesh.Origin.AppendBytes(nil)); err != nil {
			p.device.DestroyBuffer(buf)
			return nil, fmt.Errorf("pool: write origin to %s: %w", label, err)
		}
		c.offset = mesh.VertexSize
	}

	slogger().Debug("pool: allocated chunk", "label", label, "size", p.opts.chunkSize)
	return c, nil
}

// DrawInfo returns where key was appended.
func (p *Pool[K]) DrawInfo(key K) (DrawInfo, error) {
	if p.destroyed {
		return DrawInfo{}, ErrDestroyed
	}
	info, ok := p.entries[key]
	if !ok {
		return DrawInfo{}, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return info, nil
}

// Contains reports whether key has been appended.
func (p *Pool[K]) Contains(key K) bool {
	_, ok := p.entries[key]
	return ok
}

// Keys returns the appended keys in first-append order.
func (p *Pool[K]) Keys() []K {
	return append([]K(nil), p.order...)
}

// Len returns the number of recorded keys.
func (p *Pool[K]) Len() int {
	return len(p.entries)
}

// Stats returns a snapshot of chunk usage.
func (p *Pool[K]) Stats() Stats {
	s := Stats{Keys: len(p.entries)}
	for _, c := range p.vertices {
		s.VertexChunks = append(s.VertexChunks, ChunkStats{Label: c.label, Offset: c.offset, Capacity: c.capacity})
	}
	for _, c := range p.indices {
		s.IndexChunks = append(s.IndexChunks, ChunkStats{Label: c.label, Offset: c.offset, Capacity: c.capacity})
	}
	return s
}

// Destroy releases every buffer. The pool rejects further use.
// Calling Destroy more than once is safe.
func (p *Pool[K]) Destroy() {
	if p.destroyed {
		return
	}
	for _, c := range p.vertices {
		p.device.DestroyBuffer(c.buffer)
	}
	for _, c := range p.indices {
		p.device.DestroyBuffer(c.buffer)
	}
	p.vertices, p.indices = nil, nil
	p.entries = make(map[K]DrawInfo)
	p.order = nil
	p.destroyed = true
}
