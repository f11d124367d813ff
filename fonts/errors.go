package fonts

import "errors"

// Sentinel errors for fonts package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrGlyphNotFound is returned when no face maps a rune.
	ErrGlyphNotFound = errors.New("fonts: glyph not found")

	// ErrNoOutline is returned for glyphs without vector outline data,
	// such as spaces or bitmap-only glyphs.
	ErrNoOutline = errors.New("fonts: glyph has no outline")
)
