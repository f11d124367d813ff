package mesh

import (
	"encoding/binary"
	"math"
)

// Serialized sizes, matching the vertex layout the glyph shader reads:
// position as two float32 values followed by the curve tag as two float32
// values, and unsigned 32-bit indices.
const (
	VertexSize = 16
	IndexSize  = 4
)

// CurveTag tells the fragment stage which role a vertex plays in a curve
// triangle. Interpolated across a triangle, the tag gives the parametric
// coordinates the implicit quadratic test is evaluated with.
type CurveTag uint8

const (
	// TagFlip marks an on-curve vertex. It alternates with TagFlop so that
	// the two end points of a curve triangle never share a tag.
	TagFlip CurveTag = iota

	// TagFlop marks an on-curve vertex following a TagFlip one.
	TagFlop

	// TagControl marks the control point of a quadratic curve.
	TagControl
)

// UV returns the two-component value written to the vertex buffer.
func (t CurveTag) UV() [2]float32 {
	switch t {
	case TagFlop:
		return [2]float32{0, 1}
	case TagControl:
		return [2]float32{1, 0}
	default:
		return [2]float32{0, 0}
	}
}

// next returns the tag for the following on-curve vertex.
func (t CurveTag) next() CurveTag {
	switch t {
	case TagFlip:
		return TagFlop
	case TagFlop:
		return TagFlip
	default:
		return t
	}
}

// String returns the tag name.
func (t CurveTag) String() string {
	switch t {
	case TagFlip:
		return "Flip"
	case TagFlop:
		return "Flop"
	case TagControl:
		return "Control"
	default:
		return "Unknown"
	}
}

// Vertex is one mesh vertex in normalized coordinates.
type Vertex struct {
	Position [2]float32
	Tag      CurveTag
}

// Origin is the shared fan center every mesh indexes as 0. It is stored once
// at the start of each vertex buffer and never inside a Mesh.
var Origin = Vertex{Position: [2]float32{0, 0}, Tag: TagFlip}

// AppendBytes appends the serialized vertex to dst.
func (v Vertex) AppendBytes(dst []byte) []byte {
	uv := v.Tag.UV()
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[0]))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[1]))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(uv[0]))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(uv[1]))
	return dst
}
