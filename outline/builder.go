package outline

import "honnef.co/go/curve"

// Sink receives an outline as a stream of drawing commands.
//
// Close ties the current contour back to the point of the most recent
// MoveTo. Coordinates are in the source's own units.
type Sink interface {
	MoveTo(p curve.Point)
	LineTo(p curve.Point)
	QuadTo(ctrl, p curve.Point)
	CubicTo(ctrl1, ctrl2, p curve.Point)
	Close()
}

// Builder is a Sink that collects commands into a Shape.
//
// A MoveTo while a contour is open closes that contour first. Drawing
// commands without a preceding MoveTo start a contour at the current pen
// position. Zero-length segments, contours without segments and commands
// with non-finite coordinates are dropped.
type Builder struct {
	shape   Shape
	current Contour
	start   curve.Point
	pen     curve.Point
	open    bool
}

var _ Sink = (*Builder)(nil)

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MoveTo starts a new contour at p.
func (b *Builder) MoveTo(p curve.Point) {
	if !isFinite(p) {
		return
	}
	b.closeContour()
	b.start = p
	b.pen = p
	b.open = true
}

// LineTo adds a line from the pen to p.
func (b *Builder) LineTo(p curve.Point) {
	if !isFinite(p) || p == b.pen {
		return
	}
	b.ensureOpen()
	b.current = append(b.current, Line(b.pen, p))
	b.pen = p
}

// QuadTo adds a quadratic Bézier from the pen to p.
func (b *Builder) QuadTo(ctrl, p curve.Point) {
	if !isFinite(ctrl) || !isFinite(p) {
		return
	}
	if ctrl == b.pen && p == b.pen {
		return
	}
	b.ensureOpen()
	b.current = append(b.current, Quad(b.pen, ctrl, p))
	b.pen = p
}

// CubicTo adds a cubic Bézier from the pen to p.
func (b *Builder) CubicTo(ctrl1, ctrl2, p curve.Point) {
	if !isFinite(ctrl1) || !isFinite(ctrl2) || !isFinite(p) {
		return
	}
	if ctrl1 == b.pen && ctrl2 == b.pen && p == b.pen {
		return
	}
	b.ensureOpen()
	b.current = append(b.current, Cubic(b.pen, ctrl1, ctrl2, p))
	b.pen = p
}

// Close finishes the current contour, adding a closing line when the pen is
// not already at the contour's start.
func (b *Builder) Close() {
	b.closeContour()
}

// Shape closes any open contour and returns the collected shape. The builder
// is reset and can be reused.
func (b *Builder) Shape() Shape {
	b.closeContour()
	s := b.shape
	b.Reset()
	return s
}

// Reset discards everything collected so far.
func (b *Builder) Reset() {
	b.shape = nil
	b.current = nil
	b.start = curve.Point{}
	b.pen = curve.Point{}
	b.open = false
}

func (b *Builder) ensureOpen() {
	if b.open {
		return
	}
	b.start = b.pen
	b.open = true
}

func (b *Builder) closeContour() {
	if !b.open {
		return
	}
	if len(b.current) > 0 {
		if b.pen != b.start {
			b.current = append(b.current, Line(b.pen, b.start))
		}
		b.shape = append(b.shape, b.current)
	}
	b.current = nil
	b.pen = b.start
	b.open = false
}

// transformSink applies an affine transform before forwarding commands.
type transformSink struct {
	dst Sink
	aff curve.Affine
}

// TransformSink returns a Sink that maps every point through aff before
// passing it to dst.
func TransformSink(dst Sink, aff curve.Affine) Sink {
	return &transformSink{dst: dst, aff: aff}
}

func (t *transformSink) MoveTo(p curve.Point) { t.dst.MoveTo(p.Transform(t.aff)) }
func (t *transformSink) LineTo(p curve.Point) { t.dst.LineTo(p.Transform(t.aff)) }
func (t *transformSink) QuadTo(ctrl, p curve.Point) {
	t.dst.QuadTo(ctrl.Transform(t.aff), p.Transform(t.aff))
}
func (t *transformSink) CubicTo(ctrl1, ctrl2, p curve.Point) {
	t.dst.CubicTo(ctrl1.Transform(t.aff), ctrl2.Transform(t.aff), p.Transform(t.aff))
}
func (t *transformSink) Close() { t.dst.Close() }
