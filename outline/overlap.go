package outline

import (
	"math"

	"honnef.co/go/curve"
)

const (
	// relativeEpsilon scales with the shape's extent to give the distance
	// under which two points are considered equal.
	relativeEpsilon = 1e-7

	// minAreaRatio drops contours whose area is negligible against the
	// squared extent of the shape.
	minAreaRatio = 1e-12

	// mergeBudgetPerContour bounds the number of pair merges per input contour.
	mergeBudgetPerContour = 4
)

// Resolve orients and merges the contours of s so that every covered point
// is covered by exactly one same-sense contour. The result is ready for fan
// tessellation.
//
// Contours with negligible area are dropped. Pairs of contours with the same
// orientation are checked for overlap with a separating-axis test over their
// control hulls; overlapping pairs are then
//
//   - deduplicated when they trace the same path (any start, any direction),
//   - reduced to the outer contour when one is fully covered by the other and
//     no hole of opposite orientation separates them,
//   - unioned by splitting both at their intersections and keeping the parts
//     outside the other contour.
//
// When the union pieces cannot be chained back into closed loops, the pair
// is replaced by the convex hull of both. Contours of opposite orientation
// (outer contours and their holes) are never merged.
//
// Resolve never fails. Degenerate input yields an empty shape. The result
// is a best-effort approximation for self-intersecting contours.
func Resolve(s Shape) Shape {
	r := newResolver(s)
	r.run()
	return r.shape()
}

type contourItem struct {
	id     int
	c      Contour
	hull   []curve.Point
	orient Orientation
	bbox   curve.Rect
}

type resolver struct {
	items   []*contourItem
	nextID  int
	eps     float64
	minArea float64
	settled map[[2]int]bool
}

func newResolver(s Shape) *resolver {
	bbox := s.BoundingBox()
	scale := math.Max(math.Max(bbox.Width(), bbox.Height()), 1)
	r := &resolver{
		eps:     scale * relativeEpsilon,
		minArea: scale * scale * minAreaRatio,
		settled: make(map[[2]int]bool),
	}
	for _, c := range s {
		r.add(c)
	}
	return r
}

// add wraps a contour, ignoring degenerate ones.
func (r *resolver) add(c Contour) {
	if len(c) == 0 {
		return
	}
	area := c.SignedArea()
	if math.IsNaN(area) || math.IsInf(area, 0) || math.Abs(area) <= r.minArea {
		return
	}
	orient := CounterClockwise
	if area < 0 {
		orient = Clockwise
	}
	r.items = append(r.items, &contourItem{
		id:     r.nextID,
		c:      c,
		hull:   c.Hull(),
		orient: orient,
		bbox:   c.BoundingBox(),
	})
	r.nextID++
}

func (r *resolver) shape() Shape {
	if len(r.items) == 0 {
		return nil
	}
	out := make(Shape, len(r.items))
	for i, it := range r.items {
		out[i] = it.c
	}
	return out
}

func (r *resolver) run() {
	budget := mergeBudgetPerContour*len(r.items) + 16
	for ; budget > 0; budget-- {
		i, j, ok := r.nextPair()
		if !ok {
			return
		}
		r.merge(i, j)
	}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// nextPair finds the first unsettled pair of same-sense contours whose
// hulls overlap. Pairs found to be apart are settled on the way.
func (r *resolver) nextPair() (int, int, bool) {
	for i := 0; i < len(r.items); i++ {
		for j := i + 1; j < len(r.items); j++ {
			a, b := r.items[i], r.items[j]
			if a.orient != b.orient {
				continue
			}
			key := pairKey(a.id, b.id)
			if r.settled[key] {
				continue
			}
			if !rectsTouch(a.bbox, b.bbox, r.eps) || !PolygonsOverlap(a.hull, b.hull) {
				r.settled[key] = true
				continue
			}
			return i, j, true
		}
	}
	return 0, 0, false
}

func (r *resolver) merge(i, j int) {
	a, b := r.items[i], r.items[j]
	if sameContour(a.c, b.c, r.eps) {
		r.remove(j)
		return
	}

	x, ok := r.intersect(a.c, b.c)
	if !ok {
		// Too many candidate crossings, typically coincident curves.
		r.settled[pairKey(a.id, b.id)] = true
		return
	}
	if x.hits == 0 {
		switch {
		case r.redundant(b, a):
			r.remove(j)
		case r.redundant(a, b):
			r.remove(i)
		default:
			r.settled[pairKey(a.id, b.id)] = true
		}
		return
	}

	loops, ok := r.union(a.c, b.c, x)
	if !ok {
		hull := convexHull(append(append([]curve.Point(nil), a.hull...), b.hull...), a.orient)
		loops = nil
		if hull != nil {
			loops = []Contour{hull}
		}
	}
	r.remove(j)
	r.remove(i)
	for _, c := range loops {
		r.add(c)
	}
}

func (r *resolver) remove(i int) {
	r.items = append(r.items[:i], r.items[i+1:]...)
}

// redundant reports whether inner adds no coverage: every sample point of
// inner is inside outer, and the other contours already cover it with the
// same sense. The second condition keeps islands that sit inside a hole.
func (r *resolver) redundant(inner, outer *contourItem) bool {
	for _, seg := range inner.c {
		for _, p := range [2]curve.Point{seg.P0, seg.Eval(0.5)} {
			w := outer.c.Winding(p)
			if w == 0 {
				return false
			}
			total := 0
			for _, it := range r.items {
				if it != inner {
					total += it.c.Winding(p)
				}
			}
			if total == 0 || (total > 0) != (w > 0) {
				return false
			}
		}
	}
	return true
}

// sameContour reports whether a and b trace the same path, starting at any
// segment and running in either direction.
func sameContour(a, b Contour, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for _, cand := range [2]Contour{b, b.Reverse()} {
		for k := range n {
			match := true
			for i := range n {
				if !segmentsMatch(a[i], cand[(i+k)%n], eps) {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// union splits both contours at x, keeps the pieces outside the other
// contour and chains them into closed loops.
func (r *resolver) union(a, b Contour, x splits) ([]Contour, bool) {
	pa := r.splitContour(a, x.a)
	pb := r.splitContour(b, x.b)

	kept := make([]Segment, 0, len(pa)+len(pb))
	dropB := make([]bool, len(pb))
	for _, p := range pa {
		if k, same := r.findTwin(p, pb); k >= 0 {
			// Shared boundary: one copy survives when both run the same way,
			// none when the regions meet from opposite sides.
			dropB[k] = true
			if same {
				kept = append(kept, p)
			}
			continue
		}
		if !b.Contains(p.Eval(0.5)) {
			kept = append(kept, p)
		}
	}
	for k, p := range pb {
		if dropB[k] {
			continue
		}
		if !a.Contains(p.Eval(0.5)) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return r.chain(kept)
}

// findTwin returns the index of the piece in pieces tracing the same path as
// p, and whether it runs in the same direction. It returns -1 when there is
// no twin.
func (r *resolver) findTwin(p Segment, pieces []Segment) (int, bool) {
	eps := 8 * r.eps
	mid := p.Eval(0.5)
	for k, q := range pieces {
		if !near(mid, q.Eval(0.5), eps) {
			continue
		}
		if near(p.Start(), q.Start(), eps) && near(p.End(), q.End(), eps) {
			return k, true
		}
		if near(p.Start(), q.End(), eps) && near(p.End(), q.Start(), eps) {
			return k, false
		}
	}
	return -1, false
}

// chain links pieces end to start into closed loops.
func (r *resolver) chain(pieces []Segment) ([]Contour, bool) {
	eps := 8 * r.eps
	used := make([]bool, len(pieces))
	var loops []Contour
	for first := range pieces {
		if used[first] {
			continue
		}
		used[first] = true
		start := pieces[first].P0
		loop := Contour{pieces[first]}
		for !near(loop[len(loop)-1].End(), start, eps) {
			end := loop[len(loop)-1].End()
			next := -1
			for k := range pieces {
				if !used[k] && near(pieces[k].P0, end, eps) {
					next = k
					break
				}
			}
			if next < 0 {
				return nil, false
			}
			used[next] = true
			loop = append(loop, withStart(pieces[next], end))
		}
		loop[len(loop)-1] = withEnd(loop[len(loop)-1], start)
		loops = append(loops, loop)
	}
	return loops, true
}

// convexHull returns the convex hull of pts as a line contour with the
// requested orientation, or nil when the points are collinear.
func convexHull(pts []curve.Point, orient Orientation) Contour {
	sortPoints(pts)
	pts = dedupePoints(pts)
	if len(pts) < 3 {
		return nil
	}

	cross := func(o, a, b curve.Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}
	hull := make([]curve.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return nil
	}

	c := make(Contour, len(hull))
	for i, p := range hull {
		c[i] = Line(p, hull[(i+1)%len(hull)])
	}
	if orient == Clockwise {
		return c.Reverse()
	}
	return c
}

func rectsTouch(a, b curve.Rect, eps float64) bool {
	a, b = a.Abs(), b.Abs()
	return a.X0 <= b.X1+eps && b.X0 <= a.X1+eps &&
		a.Y0 <= b.Y1+eps && b.Y0 <= a.Y1+eps
}
