// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool packs many small meshes into a few large GPU buffers.
//
// Buffers are allocated in fixed-size chunks (1 MiB by default), one list
// for vertices and one for indices. Every vertex chunk starts with the
// shared origin vertex, so a mesh appended at byte offset o is rebased by
// o/16 - 1 and its index 0 keeps pointing at the chunk's origin.
//
// Chunks are filled first-fit and never compacted. A recorded [DrawInfo]
// stays valid until [Pool.Destroy].
//
// Example:
//
//	p := pool.New[rune](device, queue)
//	if err := p.Append('A', m); err != nil {
//		return err
//	}
//	info, _ := p.DrawInfo('A')
//	pass.SetVertexBuffer(0, info.VertexBuffer, 0)
//	pass.SetIndexBuffer(info.IndexBuffer, gputypes.IndexFormatUint32, 0)
//	pass.DrawIndexed(info.IndexCount(), 1, info.IndexStart, 0, 0)
package pool
