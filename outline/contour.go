package outline

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// Sentinel errors for outline package.
var (
	// ErrOpenContour is returned by Shape.Validate when a contour does not
	// close back on its start or has a gap between two segments.
	ErrOpenContour = errors.New("outline: open contour")

	// ErrEmptyContour is returned by Shape.Validate for a contour without segments.
	ErrEmptyContour = errors.New("outline: empty contour")
)

// closureTolerance is the largest gap Validate accepts between consecutive
// segment end points.
const closureTolerance = 1e-6

// Orientation is the winding direction of a closed contour in a y-up
// coordinate system.
type Orientation uint8

const (
	// CounterClockwise contours have positive signed area. Fonts use this
	// direction for outer contours.
	CounterClockwise Orientation = iota

	// Clockwise contours have negative signed area.
	Clockwise
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case CounterClockwise:
		return "CounterClockwise"
	case Clockwise:
		return "Clockwise"
	default:
		return "Unknown"
	}
}

// Contour is an ordered, closed sequence of segments.
type Contour []Segment

// SignedArea returns the area enclosed by the contour, positive for
// counter-clockwise contours.
func (c Contour) SignedArea() float64 {
	return curve.SegmentsSignedArea(slices.Values(c))
}

// Orientation derives the winding direction from the signed area.
func (c Contour) Orientation() Orientation {
	if c.SignedArea() < 0 {
		return Clockwise
	}
	return CounterClockwise
}

// Reverse returns the contour traversed in the opposite direction.
func (c Contour) Reverse() Contour {
	out := make(Contour, len(c))
	for i, seg := range c {
		out[len(c)-1-i] = seg.Reverse()
	}
	return out
}

// BoundingBox returns the tight bounding box of the contour.
func (c Contour) BoundingBox() curve.Rect {
	var bbox curve.Rect
	for i, seg := range c {
		b := segmentBounds(seg)
		if i == 0 {
			bbox = b
			continue
		}
		bbox = bbox.Union(b)
	}
	return bbox
}

// Winding returns the winding number of the contour around pt.
func (c Contour) Winding(pt curve.Point) int {
	return curve.SegmentsWinding(slices.Values(c), pt)
}

// Contains reports whether pt lies inside the contour.
func (c Contour) Contains(pt curve.Point) bool {
	return c.Winding(pt) != 0
}

// Start returns the point the contour starts and ends at.
func (c Contour) Start() curve.Point {
	if len(c) == 0 {
		return curve.Point{}
	}
	return c[0].P0
}

// Hull returns the polygon formed by segment end points and control points,
// in traversal order. It encloses the contour.
func (c Contour) Hull() []curve.Point {
	pts := make([]curve.Point, 0, len(c)*2)
	for _, seg := range c {
		pts = hullPoints(pts, seg)
	}
	return pts
}

// Points returns the on-curve start point of every segment.
func (c Contour) Points() []curve.Point {
	pts := make([]curve.Point, len(c))
	for i, seg := range c {
		pts[i] = seg.P0
	}
	return pts
}

// validate checks the closure invariant.
func (c Contour) validate() error {
	if len(c) == 0 {
		return ErrEmptyContour
	}
	for i, seg := range c {
		next := c[(i+1)%len(c)]
		if !near(seg.End(), next.Start(), closureTolerance) {
			return fmt.Errorf("%w: segment %d ends at %v, next starts at %v", ErrOpenContour, i, seg.End(), next.Start())
		}
	}
	return nil
}

// Shape is the set of contours belonging to one renderable unit, a glyph or
// an imported path. Contours may overlap until the shape has been passed
// through Resolve.
type Shape []Contour

// Validate returns an error if any contour is empty or not closed.
func (s Shape) Validate() error {
	for i, c := range s {
		if err := c.validate(); err != nil {
			return fmt.Errorf("contour %d: %w", i, err)
		}
	}
	return nil
}

// BoundingBox returns the bounding box of every contour in the shape.
// An empty shape returns the zero Rect.
func (s Shape) BoundingBox() curve.Rect {
	var bbox curve.Rect
	first := true
	for _, c := range s {
		if len(c) == 0 {
			continue
		}
		b := c.BoundingBox()
		if first {
			bbox, first = b, false
			continue
		}
		bbox = bbox.Union(b)
	}
	return bbox
}

// Area returns the absolute net area of the shape. Holes subtract from the
// contours that surround them.
func (s Shape) Area() float64 {
	var sum float64
	for _, c := range s {
		sum += c.SignedArea()
	}
	return math.Abs(sum)
}

// SegmentCount returns the total number of segments in the shape.
func (s Shape) SegmentCount() int {
	n := 0
	for _, c := range s {
		n += len(c)
	}
	return n
}

// HasCubics reports whether any segment is a cubic Bézier.
func (s Shape) HasCubics() bool {
	for _, c := range s {
		for _, seg := range c {
			if seg.Kind == curve.CubicKind {
				return true
			}
		}
	}
	return false
}

// Transform returns a copy of the shape with aff applied to every point.
// A transform with negative determinant flips the orientation of every
// contour.
func (s Shape) Transform(aff curve.Affine) Shape {
	out := make(Shape, len(s))
	for i, c := range s {
		tc := make(Contour, len(c))
		for j, seg := range c {
			tc[j] = transformSegment(seg, aff)
		}
		out[i] = tc
	}
	return out
}

// Replay pushes the shape into sink, one MoveTo and Close per contour.
func (s Shape) Replay(sink Sink) {
	for _, c := range s {
		if len(c) == 0 {
			continue
		}
		sink.MoveTo(c.Start())
		for _, seg := range c {
			switch seg.Kind {
			case curve.LineKind:
				sink.LineTo(seg.P1)
			case curve.QuadKind:
				sink.QuadTo(seg.P1, seg.P2)
			case curve.CubicKind:
				sink.CubicTo(seg.P1, seg.P2, seg.P3)
			}
		}
		sink.Close()
	}
}
