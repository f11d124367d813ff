package glyphmesh

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/internal/cache"
	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/outline"
	"github.com/gogpu/glyphmesh/pool"
)

// outlineKey identifies a glyph across the cache's faces.
type outlineKey struct {
	face int
	gid  fonts.GlyphID
}

// glyphOutline is a memoized, resolved glyph in font units.
type glyphOutline struct {
	shape outline.Shape
	bbox  curve.Rect
}

// GlyphCache builds glyph and shape meshes on demand and keeps them in
// pooled GPU buffers.
//
// GlyphCache is not safe for concurrent use. Registration and DrawInfo
// calls must be serialized by the caller, typically the render thread.
type GlyphCache struct {
	faces  []fonts.Face
	opts   options
	pool   *pool.Pool[slot]
	memo   *cache.Cache[outlineKey, glyphOutline]
	tess   *mesh.Tessellator
	widths map[rune]fonts.Width
	closed bool
}

// New creates a glyph cache that allocates buffers on device and uploads
// through queue. faces are consulted in order; the first face that maps a
// rune provides its glyph. faces may be empty when only shapes are used.
func New(device hal.Device, queue hal.Queue, faces []fonts.Face, opts ...Option) (*GlyphCache, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GlyphCache{
		faces:  append([]fonts.Face(nil), faces...),
		opts:   o,
		pool:   pool.New[slot](device, queue, o.poolOptions...),
		memo:   cache.New[outlineKey, glyphOutline](o.memoSize),
		tess:   mesh.NewTessellator(),
		widths: make(map[rune]fonts.Width),
	}, nil
}

// NewFromProvider creates a glyph cache on the device shared by a host
// application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider, faces []fonts.Face, opts ...Option) (*GlyphCache, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, ErrNoHalAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHalAccess, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHalAccess, hp.HalQueue())
	}
	return New(device, queue, faces, opts...)
}

func (c *GlyphCache) log() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return Logger()
}

// Register builds and uploads meshes for chars. Runes that are already
// registered, or repeated within chars, cost nothing.
//
// Every rune gets a horizontal mesh. Wide runes also get a vertical mesh
// when the face substitutes a different glyph for vertical layout.
// A rune that cannot be registered is logged and skipped; Register only
// fails once the cache is destroyed.
func (c *GlyphCache) Register(chars []rune) error {
	if c.closed {
		return ErrClosed
	}
	for _, r := range chars {
		if c.pool.Contains(slot{glyph: Key{r, Horizontal}}) {
			continue
		}
		if err := c.registerRune(r); err != nil {
			c.log().Warn("glyphmesh: skipping rune", "rune", string(r), "code", fmt.Sprintf("U+%04X", r), "err", err)
		}
	}
	return nil
}

func (c *GlyphCache) registerRune(r rune) error {
	face, index, gid, ok := fonts.Lookup(c.faces, r)
	if !ok {
		return fonts.ErrGlyphNotFound
	}
	g, err := c.glyph(face, index, gid)
	if err != nil {
		return err
	}

	metrics := face.Metrics()
	w := c.opts.classifier(r, g.bbox, metrics.Bounds)
	norm := glyphNormalization(metrics, w)

	if err := c.appendShape(slot{glyph: Key{r, Horizontal}}, g.shape, norm); err != nil {
		return err
	}
	c.widths[r] = w
	c.log().Debug("glyphmesh: registered rune", "rune", string(r), "width", w.String())

	if w == fonts.Wide {
		if err := c.registerVertical(r, face, index, gid, norm); err != nil {
			c.log().Warn("glyphmesh: vertical variant failed", "rune", string(r), "err", err)
		}
	}
	return nil
}

func (c *GlyphCache) registerVertical(r rune, face fonts.Face, index int, gid fonts.GlyphID, norm mesh.Normalization) error {
	vf, ok := face.(fonts.VerticalFace)
	if !ok {
		return nil
	}
	vgid, ok := vf.VerticalGlyph(r)
	if !ok || vgid == gid {
		return nil
	}
	g, err := c.glyph(face, index, vgid)
	if err != nil {
		return err
	}
	return c.appendShape(slot{glyph: Key{r, Vertical}}, g.shape, norm)
}

// glyph returns the resolved outline of gid, walking the face only on a
// memo miss.
func (c *GlyphCache) glyph(face fonts.Face, index int, gid fonts.GlyphID) (glyphOutline, error) {
	return c.memo.GetOrCreate(outlineKey{index, gid}, func() (glyphOutline, error) {
		b := outline.NewBuilder()
		if err := face.Outline(gid, b); err != nil {
			return glyphOutline{}, fmt.Errorf("glyph %d: %w", gid, err)
		}
		tol := c.opts.tolerance * max(face.Metrics().UnitsPerEm, 1)
		s := outline.Resolve(b.Shape().ReduceCubics(tol))
		return glyphOutline{shape: s, bbox: s.BoundingBox()}, nil
	})
}

// glyphNormalization centers the advance box of a glyph on the origin and
// scales the face's global bounds to one unit.
func glyphNormalization(m fonts.Metrics, w fonts.Width) mesh.Normalization {
	b := m.Bounds
	gw, gh := b.Width(), b.Height()
	if gw <= 0 || gh <= 0 {
		gw, gh = max(m.UnitsPerEm, 1), max(m.UnitsPerEm, 1)
	}
	return mesh.Normalization{
		Center: curve.Pt(gw*float64(w.Advance())/2+b.X0, gh/2+b.Y0),
		UnitEm: m.UnitEm(),
		Scale:  curve.Vec(1/gw, 1/gh),
	}
}

func (c *GlyphCache) appendShape(key slot, s outline.Shape, norm mesh.Normalization) error {
	m, err := c.tess.Tessellate(s, norm)
	if err != nil {
		return err
	}
	return c.pool.Append(key, m)
}

// DrawInfo returns where the mesh for r is stored. A Vertical request falls
// back to the horizontal mesh when the face has no distinct vertical glyph.
func (c *GlyphCache) DrawInfo(r rune, dir Direction) (pool.DrawInfo, error) {
	if c.closed {
		return pool.DrawInfo{}, ErrClosed
	}
	if dir == Vertical {
		if info, err := c.pool.DrawInfo(slot{glyph: Key{r, Vertical}}); err == nil {
			return info, nil
		}
	}
	return c.pool.DrawInfo(slot{glyph: Key{r, Horizontal}})
}

// ShapeDrawInfo returns where the shape registered under key is stored.
func (c *GlyphCache) ShapeDrawInfo(key string) (pool.DrawInfo, error) {
	if c.closed {
		return pool.DrawInfo{}, ErrClosed
	}
	if key == "" {
		return pool.DrawInfo{}, fmt.Errorf("glyphmesh: empty shape key: %w", ErrKeyNotFound)
	}
	return c.pool.DrawInfo(slot{shape: key})
}

// Width returns the width class r was registered with, or fonts.Regular
// for unknown runes.
func (c *GlyphCache) Width(r rune) fonts.Width {
	return c.widths[r]
}

// RegisteredKeys returns every glyph key in registration order.
func (c *GlyphCache) RegisteredKeys() []Key {
	var keys []Key
	for _, s := range c.pool.Keys() {
		if s.shape == "" {
			keys = append(keys, s.glyph)
		}
	}
	return keys
}

// RegisteredRunes returns the runes with a horizontal mesh in registration
// order.
func (c *GlyphCache) RegisteredRunes() []rune {
	var runes []rune
	for _, k := range c.RegisteredKeys() {
		if k.Direction == Horizontal {
			runes = append(runes, k.Rune)
		}
	}
	return runes
}

// ShapeKeys returns the registered shape keys in registration order.
func (c *GlyphCache) ShapeKeys() []string {
	var keys []string
	for _, s := range c.pool.Keys() {
		if s.shape != "" {
			keys = append(keys, s.shape)
		}
	}
	return keys
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Glyphs int // registered glyph meshes, both directions
	Shapes int // registered shapes
	Pool   pool.Stats

	OutlineHits      uint64
	OutlineMisses    uint64
	OutlineEvictions uint64
}

// Stats returns current usage.
func (c *GlyphCache) Stats() Stats {
	ms := c.memo.Stats()
	s := Stats{
		Pool:             c.pool.Stats(),
		OutlineHits:      ms.Hits,
		OutlineMisses:    ms.Misses,
		OutlineEvictions: ms.Evictions,
	}
	for _, k := range c.pool.Keys() {
		if k.shape != "" {
			s.Shapes++
		} else {
			s.Glyphs++
		}
	}
	return s
}

// Destroy releases all GPU buffers. Draw infos obtained earlier become
// invalid. Destroy is idempotent.
func (c *GlyphCache) Destroy() {
	if c.closed {
		return
	}
	c.closed = true
	c.pool.Destroy()
	c.memo.Clear()
}

