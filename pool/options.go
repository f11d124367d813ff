// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import "github.com/gogpu/glyphmesh/mesh"

// ChunkSize is the default size of every vertex and index buffer.
const ChunkSize uint64 = 1 << 20

// minChunkSize holds the origin vertex plus one more vertex.
const minChunkSize = 2 * mesh.VertexSize

// Option configures a Pool.
type Option func(*options)

type options struct {
	chunkSize   uint64
	labelPrefix string
}

func defaultOptions() options {
	return options{
		chunkSize:   ChunkSize,
		labelPrefix: "glyph",
	}
}

// WithChunkSize sets the byte size of newly allocated buffers.
// The size is rounded down to a multiple of the vertex size and clamped to
// fit at least two vertices.
func WithChunkSize(size uint64) Option {
	return func(o *options) {
		size -= size % mesh.VertexSize
		o.chunkSize = max(size, minChunkSize)
	}
}

// WithLabelPrefix sets the first word of buffer debug labels.
// The default produces labels like "glyph vertex buffer #0".
func WithLabelPrefix(prefix string) Option {
	return func(o *options) {
		o.labelPrefix = prefix
	}
}
