package glyphmesh

import (
	"errors"

	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/outline"
	"github.com/gogpu/glyphmesh/svg"
)

var errEmptyShapeKey = errors.New("empty key")

// RegisterShape parses SVG path data and stores its mesh under key.
// The path is centered on its bounding box and scaled so the longer side
// spans one unit, with y pointing up. A key that is already registered
// keeps its first mesh and pathData is not parsed.
//
// A malformed path returns a *ShapeError wrapping svg.ErrSyntax.
func (c *GlyphCache) RegisterShape(key, pathData string) error {
	if c.closed {
		return ErrClosed
	}
	if key == "" {
		return &ShapeError{Key: key, Err: errEmptyShapeKey}
	}
	if c.pool.Contains(slot{shape: key}) {
		return nil
	}
	b := outline.NewBuilder()
	if err := svg.ParsePath(pathData, b); err != nil {
		return &ShapeError{Key: key, Err: err}
	}
	s := b.Shape()
	return c.registerShape(key, s, s.BoundingBox())
}

// RegisterSVG parses an SVG document and stores all of its shapes as one
// mesh under key. Element transforms are applied and the document's viewBox
// is mapped like a bounding box in RegisterShape, so icons drawn on the
// same grid keep their relative placement. Like RegisterShape, it leaves an
// already registered key untouched.
func (c *GlyphCache) RegisterSVG(key string, document []byte) error {
	if c.closed {
		return ErrClosed
	}
	if key == "" {
		return &ShapeError{Key: key, Err: errEmptyShapeKey}
	}
	if c.pool.Contains(slot{shape: key}) {
		return nil
	}
	doc, err := svg.Parse(document)
	if err != nil {
		return &ShapeError{Key: key, Err: err}
	}
	b := outline.NewBuilder()
	if err := doc.Replay(b); err != nil {
		return &ShapeError{Key: key, Err: err}
	}
	s := b.Shape()
	frame := doc.ViewBox
	if frame.Width() <= 0 || frame.Height() <= 0 {
		frame = s.BoundingBox()
	}
	return c.registerShape(key, s, frame)
}

// registerShape normalizes s against frame and uploads it.
func (c *GlyphCache) registerShape(key string, s outline.Shape, frame curve.Rect) error {
	unit := max(frame.Width(), frame.Height())
	if len(s) == 0 || unit <= 0 {
		return &ShapeError{Key: key, Err: mesh.ErrEmptyMesh}
	}
	s = outline.Resolve(s.ReduceCubics(c.opts.tolerance * unit))
	norm := mesh.Normalization{
		Center: frame.Center(),
		UnitEm: unit,
		Scale:  curve.Vec(1, -1),
	}
	if err := c.appendShape(slot{shape: key}, s, norm); err != nil {
		c.log().Warn("glyphmesh: skipping shape", "key", key, "err", err)
		return &ShapeError{Key: key, Err: err}
	}
	c.log().Debug("glyphmesh: registered shape", "key", key, "contours", len(s))
	return nil
}
