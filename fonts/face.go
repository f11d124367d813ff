package fonts

import (
	"math"

	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// GlyphID identifies a glyph within one face.
type GlyphID uint32

// Metrics holds face-wide values in font units.
type Metrics struct {
	// UnitsPerEm is the design grid size, typically 1000 or 2048.
	UnitsPerEm float64

	// Bounds is the union of all glyph bounds, y up.
	Bounds curve.Rect
}

// UnitEm returns sqrt(UnitsPerEm/1024), the divisor that brings faces with
// different design grids to a comparable size.
func (m Metrics) UnitEm() float64 {
	if m.UnitsPerEm <= 0 {
		return 1
	}
	return math.Sqrt(m.UnitsPerEm / 1024)
}

// Face is a source of glyph outlines.
//
// Implementations are not required to be safe for concurrent use.
type Face interface {
	// GlyphIndex returns the glyph a rune maps to. ok is false when the face
	// has no glyph for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Outline replays the glyph's contours into sink. It returns
	// ErrNoOutline when the glyph has no vector data.
	Outline(gid GlyphID, sink outline.Sink) error

	// Metrics returns face-wide metrics.
	Metrics() Metrics
}

// VerticalFace is implemented by faces that can substitute glyphs for
// top-to-bottom layout.
type VerticalFace interface {
	Face

	// VerticalGlyph returns the glyph used for r in vertical text. It may
	// equal the horizontal glyph.
	VerticalGlyph(r rune) (gid GlyphID, ok bool)
}

// Lookup returns the first face in faces that maps r.
func Lookup(faces []Face, r rune) (face Face, index int, gid GlyphID, ok bool) {
	for i, f := range faces {
		if gid, ok := f.GlyphIndex(r); ok {
			return f, i, gid, true
		}
	}
	return nil, -1, 0, false
}
