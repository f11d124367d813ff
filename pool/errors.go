// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pool package.
var (
	// ErrKeyNotFound is returned by DrawInfo for a key that was never appended.
	ErrKeyNotFound = errors.New("pool: key not found")

	// ErrDestroyed is returned after Destroy released the buffers.
	ErrDestroyed = errors.New("pool: destroyed")
)

// BufferKind selects the vertex or the index chunk list.
type BufferKind uint8

const (
	// BufferKindVertex is the vertex chunk list.
	BufferKindVertex BufferKind = iota

	// BufferKindIndex is the index chunk list.
	BufferKindIndex
)

// String returns the kind name used in buffer labels.
func (k BufferKind) String() string {
	switch k {
	case BufferKindVertex:
		return "vertex"
	case BufferKindIndex:
		return "index"
	default:
		return "unknown"
	}
}

// CapacityExceededError is returned when a single mesh does not fit into an
// empty chunk. Nothing is allocated or written in that case.
type CapacityExceededError struct {
	Kind     BufferKind
	Size     uint64 // bytes requested
	Capacity uint64 // bytes available in an empty chunk
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("pool: %s data of %d bytes exceeds chunk capacity %d", e.Kind, e.Size, e.Capacity)
}
