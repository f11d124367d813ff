package outline

import (
	"math"

	"honnef.co/go/curve"
)

// PolygonsOverlap reports whether two polygons overlap according to the
// separating-axis test. The axes are the edge normals (y2-y1, x1-x2) of both
// polygons. Polygons that merely touch are reported as overlapping.
//
// The test is exact for convex polygons. For concave input it can report
// overlap where there is none, never the reverse.
func PolygonsOverlap(a, b []curve.Point) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return !hasSeparatingAxis(a, a, b) && !hasSeparatingAxis(b, a, b)
}

// hasSeparatingAxis tests the normals of edges against both polygons.
func hasSeparatingAxis(edges, a, b []curve.Point) bool {
	for i, p1 := range edges {
		p2 := edges[(i+1)%len(edges)]
		axis := curve.Vec(p2.Y-p1.Y, p1.X-p2.X)
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

func project(poly []curve.Point, axis curve.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := p.X*axis.X + p.Y*axis.Y
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
