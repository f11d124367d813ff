// Package fonts reads glyph outlines from font files.
//
// A [Face] maps runes to glyph ids and replays a glyph's outline into an
// [outline.Sink] in font units with the y axis pointing up. Two backends are
// provided:
//
//   - [OpenType] uses go-text/typesetting and also resolves vertical
//     alternates by shaping top-to-bottom.
//   - [SFNT] uses golang.org/x/image/font/sfnt.
//
// [Classify] decides whether a rune occupies a regular (half) or a wide
// (full) cell.
package fonts
