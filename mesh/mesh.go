package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Sentinel errors for mesh package.
var (
	// ErrEmptyMesh is returned when a shape produces no triangles.
	ErrEmptyMesh = errors.New("mesh: no triangles")

	// ErrCubicSegment is returned when a cubic segment reaches the
	// tessellator. Shapes must be reduced to lines and quadratics first.
	ErrCubicSegment = errors.New("mesh: cubic segment not reduced")

	// ErrIndexCount is returned when the index count is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count is not a multiple of 3")
)

// IndexRangeError reports an index that points past the mesh's vertices.
type IndexRangeError struct {
	Position int    // position in Indices
	Index    uint32 // offending value
	Max      uint32 // largest valid value
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("mesh: index %d at position %d exceeds %d", e.Index, e.Position, e.Max)
}

// Mesh is a triangle list anchored at the shared origin vertex.
//
// Indices are local and 1-based: vertex i of Vertices is referenced as i+1,
// and 0 refers to the origin vertex that sits at the start of every vertex
// buffer. When a mesh is appended to a shared buffer, every index except 0
// is shifted by the number of vertices already stored there.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no triangles.
func (m Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexByteSize returns the size of the serialized vertices.
func (m Mesh) VertexByteSize() uint64 {
	return uint64(len(m.Vertices)) * VertexSize
}

// IndexByteSize returns the size of the serialized indices.
func (m Mesh) IndexByteSize() uint64 {
	return uint64(len(m.Indices)) * IndexSize
}

// VertexBytes serializes the vertices.
func (m Mesh) VertexBytes() []byte {
	buf := make([]byte, 0, m.VertexByteSize())
	for _, v := range m.Vertices {
		buf = v.AppendBytes(buf)
	}
	return buf
}

// IndexBytes serializes the indices shifted by base. The origin index 0 is
// never shifted.
func (m Mesh) IndexBytes(base uint32) []byte {
	buf := make([]byte, 0, m.IndexByteSize())
	for _, idx := range m.Indices {
		if idx != 0 {
			idx += base
		}
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

// Validate checks the triangle-list invariants: the index count is a
// multiple of 3 and every index refers to the origin or a mesh vertex.
func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(m.Indices))
	}
	maxIndex := uint32(len(m.Vertices)) //nolint:gosec // vertex counts are bounded by buffer capacity
	for i, idx := range m.Indices {
		if idx > maxIndex {
			return &IndexRangeError{Position: i, Index: idx, Max: maxIndex}
		}
	}
	return nil
}
