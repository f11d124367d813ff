// Package glyphmesh turns Unicode glyphs and vector shapes into GPU-ready
// triangle meshes and keeps them in pooled vertex and index buffers.
//
// # Overview
//
// A [GlyphCache] extracts glyph outlines from one or more faces, reduces
// cubic curves to quadratics, resolves overlapping contours and tessellates
// the result into a fan mesh whose curve triangles are trimmed in the
// fragment stage. Meshes are appended to 1 MiB buffer chunks shared by many
// glyphs; [GlyphCache.DrawInfo] returns the buffers and index range to draw.
//
// # Quick Start
//
//	face, err := fonts.ParseOpenType(ttf)
//	if err != nil {
//		return err
//	}
//	gc, err := glyphmesh.New(device, queue, []fonts.Face{face})
//	if err != nil {
//		return err
//	}
//	defer gc.Destroy()
//
//	_ = gc.Register([]rune("Hello, 世界"))
//	info, err := gc.DrawInfo('世', glyphmesh.Vertical)
//
// Draw every DrawInfo with the pipeline state from package shader: the
// glyph WGSL module, shader.VertexLayout and shader.ParityBlend.
//
// # Shapes
//
// [GlyphCache.RegisterShape] accepts SVG path data and
// [GlyphCache.RegisterSVG] a whole SVG document. Both are normalized to a
// unit square centered on the origin and stored under a string key.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route diagnostics
// from glyphmesh and its sub-packages to a [log/slog] logger.
package glyphmesh
