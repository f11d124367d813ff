package fonts

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// OpenType is a Face backed by go-text/typesetting.
//
// It reads glyf, CFF and CFF2 outlines and resolves vertical alternates
// (the vert/vrt2 features) with the HarfBuzz port. OpenType is not safe for
// concurrent use.
type OpenType struct {
	face    *font.Face
	metrics Metrics
	shaper  shaping.HarfbuzzShaper
	input   []rune
}

// ParseOpenType parses a TrueType or OpenType font file.
func ParseOpenType(data []byte) (*OpenType, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: parse opentype: %w", err)
	}
	return newOpenType(face, data), nil
}

func newOpenType(face *font.Face, data []byte) *OpenType {
	upem := float64(face.Upem())
	bounds, err := globalBounds(data)
	if err != nil {
		// Global bounds come from the sfnt head table. Fall back to the
		// horizontal extents when sfnt cannot read the file.
		slogger().Debug("fonts: global bounds unavailable, using extents", "error", err)
		bounds = curve.Rect{X0: 0, Y0: -upem / 4, X1: upem, Y1: upem}
		if ext, ok := face.FontHExtents(); ok {
			bounds.Y0, bounds.Y1 = float64(ext.Descender), float64(ext.Ascender)
		}
	}
	return &OpenType{
		face:    face,
		metrics: Metrics{UnitsPerEm: upem, Bounds: bounds},
		input:   make([]rune, 1),
	}
}

// GlyphIndex implements Face.
func (f *OpenType) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Metrics implements Face.
func (f *OpenType) Metrics() Metrics {
	return f.metrics
}

// Outline implements Face.
func (f *OpenType) Outline(gid GlyphID, sink outline.Sink) error {
	data, ok := f.face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok || len(data.Segments) == 0 {
		return fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}

	for _, seg := range data.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			sink.MoveTo(segmentPoint(seg.Args[0]))
		case ot.SegmentOpLineTo:
			sink.LineTo(segmentPoint(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			sink.QuadTo(segmentPoint(seg.Args[0]), segmentPoint(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			sink.CubicTo(segmentPoint(seg.Args[0]), segmentPoint(seg.Args[1]), segmentPoint(seg.Args[2]))
		}
	}
	sink.Close()
	return nil
}

// VerticalGlyph implements VerticalFace by shaping r alone in top-to-bottom
// direction.
func (f *OpenType) VerticalGlyph(r rune) (GlyphID, bool) {
	if _, ok := f.GlyphIndex(r); !ok {
		return 0, false
	}
	f.input[0] = r
	out := f.shaper.Shape(shaping.Input{
		Text:      f.input,
		RunStart:  0,
		RunEnd:    1,
		Direction: di.DirectionTTB,
		Face:      f.face,
		Size:      fixed.I(int(f.face.Upem())),
		Script:    language.LookupScript(r),
		Language:  language.NewLanguage("ja"),
	})
	if len(out.Glyphs) != 1 {
		return 0, false
	}
	return GlyphID(out.Glyphs[0].GlyphID), true
}

func segmentPoint(p ot.SegmentPoint) curve.Point {
	return curve.Pt(float64(p.X), float64(p.Y))
}
