package outline

import (
	"math"
	"slices"

	"honnef.co/go/curve"
)

const (
	// maxSubdivisionDepth bounds curve/curve intersection refinement.
	maxSubdivisionDepth = 32

	// intersectionBudget is the number of bounding-box tests allowed for one
	// curve/curve pair before the search gives up.
	intersectionBudget = 1 << 14
)

// splits holds, per segment of each contour, the parameters at which the
// segment touches or crosses the other contour.
type splits struct {
	a, b [][]float64
	hits int
}

// intersect finds every crossing or touching point between a and b. It
// returns false when a curve pair exhausts its search budget.
func (r *resolver) intersect(a, b Contour) (splits, bool) {
	x := splits{
		a: make([][]float64, len(a)),
		b: make([][]float64, len(b)),
	}
	for i, sa := range a {
		boxA := segmentBounds(sa)
		for j, sb := range b {
			if !rectsTouch(boxA, segmentBounds(sb), r.eps) {
				continue
			}
			ok := r.intersectSegments(sa, sb, func(ta, tb float64) {
				x.a[i] = append(x.a[i], ta)
				x.b[j] = append(x.b[j], tb)
				x.hits++
			})
			if !ok {
				return x, false
			}
			// Collinear overlaps and T-junctions produce no proper crossing,
			// so end points lying on the other segment are split points too.
			if t, on := r.onSegment(sa, sb.P0); on {
				x.a[i] = append(x.a[i], t)
				x.hits++
			}
			if t, on := r.onSegment(sb, sa.P0); on {
				x.b[j] = append(x.b[j], t)
				x.hits++
			}
		}
	}
	return x, true
}

func (r *resolver) intersectSegments(a, b Segment, emit func(ta, tb float64)) bool {
	switch {
	case b.Kind == curve.LineKind:
		hits, n := a.IntersectLine(b.Line())
		for _, h := range hits[:n] {
			emit(h.SegmentT, h.LineT)
		}
	case a.Kind == curve.LineKind:
		hits, n := b.IntersectLine(a.Line())
		for _, h := range hits[:n] {
			emit(h.LineT, h.SegmentT)
		}
	default:
		return r.intersectCurves(a, b, emit)
	}
	return true
}

type curveHit struct {
	ta, tb float64
	pt     curve.Point
}

// intersectCurves finds crossings of two curves by recursive subdivision of
// their bounding boxes.
func (r *resolver) intersectCurves(a, b Segment, emit func(ta, tb float64)) bool {
	budget := intersectionBudget
	var found []curveHit

	var walk func(a, b Segment, a0, a1, b0, b1 float64, depth int) bool
	walk = func(a, b Segment, a0, a1, b0, b1 float64, depth int) bool {
		budget--
		if budget < 0 {
			return false
		}
		boxA, boxB := segmentBounds(a), segmentBounds(b)
		if !rectsTouch(boxA, boxB, r.eps) {
			return true
		}
		if depth >= maxSubdivisionDepth || (extent(boxA) <= r.eps && extent(boxB) <= r.eps) {
			pt := a.Eval(0.5)
			for _, f := range found {
				if near(f.pt, pt, 4*r.eps) {
					return true
				}
			}
			found = append(found, curveHit{ta: (a0 + a1) / 2, tb: (b0 + b1) / 2, pt: pt})
			return true
		}
		al, ar := a.Subdivide()
		bl, br := b.Subdivide()
		am, bm := (a0+a1)/2, (b0+b1)/2
		return walk(al, bl, a0, am, b0, bm, depth+1) &&
			walk(al, br, a0, am, bm, b1, depth+1) &&
			walk(ar, bl, am, a1, b0, bm, depth+1) &&
			walk(ar, br, am, a1, bm, b1, depth+1)
	}

	if !walk(a, b, 0, 1, 0, 1, 0) {
		return false
	}
	for _, f := range found {
		emit(f.ta, f.tb)
	}
	return true
}

// onSegment reports whether p lies on seg, and at which parameter.
func (r *resolver) onSegment(seg Segment, p curve.Point) (float64, bool) {
	box := segmentBounds(seg)
	if p.X < box.X0-r.eps || p.X > box.X1+r.eps || p.Y < box.Y0-r.eps || p.Y > box.Y1+r.eps {
		return 0, false
	}
	distSq, t := seg.Nearest(p, r.eps*1e-3)
	if distSq > r.eps*r.eps {
		return 0, false
	}
	return t, true
}

// splitContour cuts each segment at its split parameters. Parameters whose
// points coincide with a segment end or with each other are ignored, so
// the pieces never degenerate to a point.
func (r *resolver) splitContour(c Contour, params [][]float64) []Segment {
	out := make([]Segment, 0, len(c))
	for i, seg := range c {
		ts := r.cleanParams(seg, params[i])
		if len(ts) == 0 {
			out = append(out, seg)
			continue
		}
		prev, start := 0.0, seg.P0
		for _, t := range append(ts, 1) {
			piece := withStart(seg.Subsegment(prev, t), start)
			if t == 1 {
				piece = withEnd(piece, seg.End())
			}
			out = append(out, piece)
			start, prev = piece.End(), t
		}
	}
	return out
}

func (r *resolver) cleanParams(seg Segment, ts []float64) []float64 {
	if len(ts) == 0 {
		return nil
	}
	ts = slices.Clone(ts)
	slices.Sort(ts)
	out := ts[:0]
	last := seg.P0
	end := seg.End()
	for _, t := range ts {
		if t <= 0 || t >= 1 || math.IsNaN(t) {
			continue
		}
		p := seg.Eval(t)
		if near(p, last, 4*r.eps) || near(p, end, 4*r.eps) {
			continue
		}
		out = append(out, t)
		last = p
	}
	return out
}

func extent(r curve.Rect) float64 {
	r = r.Abs()
	return math.Max(r.Width(), r.Height())
}

func sortPoints(pts []curve.Point) {
	slices.SortFunc(pts, func(a, b curve.Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	})
}

func dedupePoints(pts []curve.Point) []curve.Point {
	return slices.Compact(pts)
}
