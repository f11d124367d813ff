package outline

import (
	"math"

	"honnef.co/go/curve"
)

// DefaultTolerance is the maximum distance between a cubic and its quadratic
// approximation used when a caller passes a non-positive tolerance. It is
// meant for shapes normalized to roughly unit size; font units need
// a tolerance scaled by units-per-em.
const DefaultTolerance = 1e-3

// ReduceCubic approximates c with quadratic Béziers whose distance from the
// cubic stays within tolerance. The result is ordered from c.P0 to c.P3 and
// never empty.
//
// A cubic whose control points lie within tolerance of its chord collapses
// to a single line.
func ReduceCubic(c curve.CubicBez, tolerance float64) []Segment {
	if tolerance <= 0 || math.IsNaN(tolerance) {
		tolerance = DefaultTolerance
	}
	if nearlyLinear(c, tolerance) {
		return []Segment{Line(c.P0, c.P3)}
	}

	var out []Segment
	for q := range c.Quadratics(tolerance) {
		seg := Quad(q.Segment.P0, q.Segment.P1, q.Segment.P2)
		if n := len(out); n > 0 {
			seg = withStart(seg, out[n-1].P2)
		}
		out = append(out, seg)
	}
	out[0] = withStart(out[0], c.P0)
	out[len(out)-1] = withEnd(out[len(out)-1], c.P3)
	return out
}

// nearlyLinear reports whether both control points are within tolerance of
// the chord and project inside it.
func nearlyLinear(c curve.CubicBez, tolerance float64) bool {
	chord := c.P3.Sub(c.P0)
	length2 := chord.Hypot2()
	if length2 <= tolerance*tolerance {
		return c.P1.Distance(c.P0) <= tolerance && c.P2.Distance(c.P0) <= tolerance
	}
	length := math.Sqrt(length2)
	for _, p := range [2]curve.Point{c.P1, c.P2} {
		v := p.Sub(c.P0)
		if math.Abs(chord.Cross(v))/length > tolerance {
			return false
		}
		t := chord.Dot(v) / length2
		if t < 0 || t > 1 {
			return false
		}
	}
	return true
}

// ReduceCubics returns a copy of the shape in which every cubic segment has
// been replaced by the output of ReduceCubic.
func (s Shape) ReduceCubics(tolerance float64) Shape {
	out := make(Shape, 0, len(s))
	for _, c := range s {
		rc := make(Contour, 0, len(c))
		for _, seg := range c {
			if seg.Kind != curve.CubicKind {
				rc = append(rc, seg)
				continue
			}
			rc = append(rc, ReduceCubic(seg.Cubic(), tolerance)...)
		}
		out = append(out, rc)
	}
	return out
}
