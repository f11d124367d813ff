package mesh

import (
	"fmt"

	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// initialVertexCapacity is the starting capacity of the vertex slice.
// A typical Latin glyph needs 30-60 vertices, a CJK glyph a few hundred.
const initialVertexCapacity = 128

// Normalization maps source coordinates into mesh space:
//
//	position = ((p - Center) / UnitEm) * Scale
//
// A zero UnitEm is treated as 1 and a zero Scale as (1, 1).
type Normalization struct {
	Center curve.Point
	UnitEm float64
	Scale  curve.Vec2
}

// NormalizationFor centers on bbox and divides by unitEm.
func NormalizationFor(bbox curve.Rect, unitEm float64) Normalization {
	return Normalization{Center: bbox.Center(), UnitEm: unitEm}
}

// Apply maps p into mesh space.
func (n Normalization) Apply(p curve.Point) [2]float32 {
	unit := n.UnitEm
	if unit == 0 {
		unit = 1
	}
	scale := n.Scale
	if scale.X == 0 && scale.Y == 0 {
		scale = curve.Vec(1, 1)
	}
	x := (p.X - n.Center.X) / unit * scale.X
	y := (p.Y - n.Center.Y) / unit * scale.Y
	return [2]float32{float32(x), float32(y)}
}

// Tessellator converts resolved shapes into fan meshes.
//
// Every contour edge becomes a triangle anchored at the shared origin
// (index 0). A quadratic edge additionally emits a curve triangle
// (from, control, to) whose curve tags let the fragment stage discard the
// part outside the curve. Coverage is counted by overlap parity, so the
// fan works for any contour topology as long as same-sense overlaps were
// resolved beforehand.
//
// The tessellator is designed to be reused via Reset. It is not safe for
// concurrent use.
type Tessellator struct {
	vertices []Vertex
	indices  []uint32
	current  uint32
	toggle   CurveTag
	norm     Normalization
}

// NewTessellator creates a tessellator with pre-allocated capacity.
func NewTessellator() *Tessellator {
	return &Tessellator{
		vertices: make([]Vertex, 0, initialVertexCapacity),
		indices:  make([]uint32, 0, initialVertexCapacity*3),
	}
}

// Reset clears the tessellator state for reuse without releasing memory.
func (t *Tessellator) Reset() {
	t.vertices = t.vertices[:0]
	t.indices = t.indices[:0]
	t.current = 0
	t.toggle = TagFlip
	t.norm = Normalization{}
}

// Tessellate builds a mesh from s. The returned mesh owns its slices.
//
// It returns ErrCubicSegment if s still contains cubics and ErrEmptyMesh if
// no triangle was produced.
func (t *Tessellator) Tessellate(s outline.Shape, norm Normalization) (Mesh, error) {
	t.Reset()
	t.norm = norm

	for ci, c := range s {
		if len(c) == 0 {
			continue
		}
		t.moveTo(c.Start())
		for si, seg := range c {
			switch seg.Kind {
			case curve.LineKind:
				t.lineTo(seg.P1)
			case curve.QuadKind:
				t.quadTo(seg.P1, seg.P2)
			case curve.CubicKind:
				return Mesh{}, fmt.Errorf("%w: contour %d segment %d", ErrCubicSegment, ci, si)
			}
		}
	}

	if len(t.indices) == 0 {
		return Mesh{}, ErrEmptyMesh
	}
	m := Mesh{
		Vertices: append([]Vertex(nil), t.vertices...),
		Indices:  append([]uint32(nil), t.indices...),
	}
	return m, nil
}

func (t *Tessellator) nextTag() CurveTag {
	t.toggle = t.toggle.next()
	return t.toggle
}

func (t *Tessellator) push(p curve.Point, tag CurveTag) {
	t.vertices = append(t.vertices, Vertex{Position: t.norm.Apply(p), Tag: tag})
}

func (t *Tessellator) moveTo(p curve.Point) {
	t.push(p, t.nextTag())
	t.current++
}

// lineTo emits the flat triangle (origin, previous, p).
func (t *Tessellator) lineTo(p curve.Point) {
	t.push(p, t.nextTag())
	t.indices = append(t.indices, 0, t.current, t.current+1)
	t.current++
}

// quadTo emits the flat triangle (origin, previous, p) and the curve
// triangle (previous, ctrl, p).
func (t *Tessellator) quadTo(ctrl, p curve.Point) {
	tag := t.nextTag()
	t.push(ctrl, TagControl)
	t.push(p, tag)
	t.indices = append(t.indices,
		0, t.current, t.current+2,
		t.current, t.current+1, t.current+2,
	)
	t.current += 2
}
