package fonts

import (
	"unicode"

	"golang.org/x/text/width"
	"honnef.co/go/curve"
)

// Width is the number of layout cells a glyph occupies.
type Width uint8

const (
	// Regular glyphs take half a cell, like Latin letters.
	Regular Width = iota

	// Wide glyphs take a full cell, like CJK ideographs.
	Wide
)

// String returns the width name.
func (w Width) String() string {
	switch w {
	case Regular:
		return "Regular"
	case Wide:
		return "Wide"
	default:
		return "Unknown"
	}
}

// Left returns the horizontal offset applied before drawing, in cells.
func (w Width) Left() float32 {
	if w == Wide {
		return 0
	}
	return -0.25
}

// Right returns the horizontal offset applied after drawing, in cells.
func (w Width) Right() float32 {
	if w == Wide {
		return 1
	}
	return 0.75
}

// Advance returns the glyph's own width in cells.
func (w Width) Advance() float32 {
	if w == Wide {
		return 1
	}
	return 0.5
}

// Classifier decides the width of r. glyph is the glyph's bounding box and
// global the face-wide bounds, both in font units; glyph is empty when the
// glyph has no outline.
type Classifier func(r rune, glyph, global curve.Rect) Width

// Classify is the default Classifier:
//
//   - U+3000 and Greek letters are Wide, ASCII is Regular.
//   - A glyph wider than half of the face's global width is Wide.
//   - Otherwise East Asian Wide, Fullwidth and Ambiguous runes are Wide.
func Classify(r rune, glyph, global curve.Rect) Width {
	if isSpecialWide(r) {
		return Wide
	}
	if r <= unicode.MaxASCII {
		return Regular
	}
	if gw := global.Width(); gw > 0 && glyph.Width()*2 > gw {
		return Wide
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
		return Wide
	default:
		return Regular
	}
}

func isSpecialWide(r rune) bool {
	switch {
	case r == '　':
		return true
	case r >= 'Α' && r <= 'Ω', r >= 'α' && r <= 'ω':
		return true
	default:
		return false
	}
}
