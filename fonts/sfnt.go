package fonts

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// SFNT is a Face backed by golang.org/x/image/font/sfnt.
//
// It has no shaping support, so vertical layout always uses the horizontal
// glyph. SFNT is not safe for concurrent use.
type SFNT struct {
	font    *sfnt.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	metrics Metrics
}

// ParseSFNT parses a TrueType or OpenType font file.
func ParseSFNT(data []byte) (*SFNT, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse sfnt: %w", err)
	}
	s := &SFNT{font: f}
	upem := int(f.UnitsPerEm())
	s.ppem = fixed.I(upem)
	bounds, err := sfntBounds(f, &s.buf)
	if err != nil {
		return nil, fmt.Errorf("fonts: read bounds: %w", err)
	}
	s.metrics = Metrics{UnitsPerEm: float64(upem), Bounds: bounds}
	return s, nil
}

// GlyphIndex implements Face.
func (s *SFNT) GlyphIndex(r rune) (GlyphID, bool) {
	gid, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Metrics implements Face.
func (s *SFNT) Metrics() Metrics {
	return s.metrics
}

// Outline implements Face. sfnt reports y down, so the outline is mirrored
// back to font orientation.
func (s *SFNT) Outline(gid GlyphID, sink outline.Sink) error {
	segments, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), s.ppem, nil)
	if err != nil {
		return fmt.Errorf("fonts: load glyph %d: %w", gid, err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			sink.MoveTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			sink.LineTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			sink.QuadTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			sink.CubicTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]), fixedPoint(seg.Args[2]))
		}
	}
	sink.Close()
	return nil
}

// fixedPoint converts a y-down 26.6 point at ppem = upem into font units.
func fixedPoint(p fixed.Point26_6) curve.Point {
	return curve.Pt(float64(p.X)/64, -float64(p.Y)/64)
}

// globalBounds reads the head table bounding box of a font file.
func globalBounds(data []byte) (curve.Rect, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return curve.Rect{}, err
	}
	var buf sfnt.Buffer
	return sfntBounds(f, &buf)
}

func sfntBounds(f *sfnt.Font, buf *sfnt.Buffer) (curve.Rect, error) {
	r, err := f.Bounds(buf, fixed.I(int(f.UnitsPerEm())), xfont.HintingNone)
	if err != nil {
		return curve.Rect{}, err
	}
	return curve.Rect{
		X0: float64(r.Min.X) / 64,
		Y0: -float64(r.Max.Y) / 64,
		X1: float64(r.Max.X) / 64,
		Y1: -float64(r.Min.Y) / 64,
	}, nil
}
