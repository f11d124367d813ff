package outline

import (
	"math"

	"honnef.co/go/curve"
)

// Segment is one piece of a contour: a line, a quadratic or a cubic Bézier.
//
// Lines use P0 and P1. Quadratics keep their control point in P1 and end in
// P2. Cubics keep their controls in P1 and P2 and end in P3.
type Segment = curve.PathSegment

// Line returns a line segment.
func Line(from, to curve.Point) Segment {
	return Segment{Kind: curve.LineKind, P0: from, P1: to}
}

// Quad returns a quadratic Bézier segment.
func Quad(from, ctrl, to curve.Point) Segment {
	return Segment{Kind: curve.QuadKind, P0: from, P1: ctrl, P2: to}
}

// Cubic returns a cubic Bézier segment.
func Cubic(from, ctrl1, ctrl2, to curve.Point) Segment {
	return Segment{Kind: curve.CubicKind, P0: from, P1: ctrl1, P2: ctrl2, P3: to}
}

// transformSegment applies aff to every point of seg.
func transformSegment(seg Segment, aff curve.Affine) Segment {
	seg.P0 = seg.P0.Transform(aff)
	seg.P1 = seg.P1.Transform(aff)
	seg.P2 = seg.P2.Transform(aff)
	seg.P3 = seg.P3.Transform(aff)
	return seg
}

// segmentBounds returns the bounding box of seg with X0 <= X1 and Y0 <= Y1.
// curve reports line boxes in point order.
func segmentBounds(seg Segment) curve.Rect {
	return seg.BoundingBox().Abs()
}

// withStart returns seg with its first point moved to p.
func withStart(seg Segment, p curve.Point) Segment {
	seg.P0 = p
	return seg
}

// withEnd returns seg with its last point moved to p.
func withEnd(seg Segment, p curve.Point) Segment {
	switch seg.Kind {
	case curve.LineKind:
		seg.P1 = p
	case curve.QuadKind:
		seg.P2 = p
	case curve.CubicKind:
		seg.P3 = p
	}
	return seg
}

// hullPoints appends the segment's start point and control points to dst.
// The end point is left out because it is the next segment's start.
func hullPoints(dst []curve.Point, seg Segment) []curve.Point {
	switch seg.Kind {
	case curve.LineKind:
		return append(dst, seg.P0)
	case curve.QuadKind:
		return append(dst, seg.P0, seg.P1)
	case curve.CubicKind:
		return append(dst, seg.P0, seg.P1, seg.P2)
	}
	return dst
}

// segmentsMatch reports whether two segments have the same kind and points
// within eps.
func segmentsMatch(a, b Segment, eps float64) bool {
	if a.Kind != b.Kind {
		return false
	}
	if !near(a.P0, b.P0, eps) || !near(a.P1, b.P1, eps) {
		return false
	}
	switch a.Kind {
	case curve.QuadKind:
		return near(a.P2, b.P2, eps)
	case curve.CubicKind:
		return near(a.P2, b.P2, eps) && near(a.P3, b.P3, eps)
	}
	return true
}

func near(a, b curve.Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func isFinite(p curve.Point) bool {
	return !p.IsNaN() && !p.IsInf()
}
