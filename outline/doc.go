// Package outline holds the vector side of glyph meshing: segments, closed
// contours and the shapes they form.
//
// Outlines enter through a [Sink]. Font backends and the SVG path parser push
// MoveTo/LineTo/QuadTo/CubicTo/Close calls into a [Builder], which produces a
// [Shape] whose contours are always closed: every segment ends where the next
// one starts, and the last segment returns to the most recent MoveTo.
//
// Before a shape can be tessellated it goes through two passes:
//
//	shape = shape.ReduceCubics(tolerance) // cubics become quadratics or lines
//	shape = outline.Resolve(shape)        // same-sense overlaps are merged
//
// Geometry is delegated to honnef.co/go/curve; [Segment] is an alias of
// curve.PathSegment so callers can use its evaluation, subdivision and
// intersection methods directly.
package outline
