// Package svg imports vector shapes from SVG path data and documents.
//
// [ParsePath] replays a path's "d" attribute into an [outline.Sink]. All
// commands are supported in absolute and relative form, including implicit
// repeats and elliptical arcs, which are converted to cubic curves.
//
// [Parse] reads a whole document with the tdewolff XML lexer and collects
// path, rect, circle, ellipse, polygon and polyline elements together with
// their accumulated transforms.
package svg
