// Package mesh turns resolved outlines into GPU-ready fan meshes.
//
// A [Mesh] is a triangle list in which index 0 always refers to a shared
// origin vertex. Lines become one flat triangle against the origin, and
// quadratic curves add a second triangle tagged for the fragment-stage
// curve test:
//
//	u, v = interpolated curve tag
//	discard if u*u/4 > v*(1-u-v)
//
// Flat triangles always carry u = 0 and are fully covered. Curve triangles
// keep only the region between the chord and the curve. Overlapping
// triangles are combined by parity in the render target, which turns the
// fan into the filled glyph.
package mesh
