package glyphmesh

import "fmt"

// Direction is the layout direction a glyph mesh was built for.
type Direction uint8

const (
	// Horizontal is left-to-right or right-to-left layout.
	Horizontal Direction = iota

	// Vertical is top-to-bottom layout. Fonts may substitute rotated or
	// repositioned glyphs, such as CJK punctuation.
	Vertical
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Key identifies a registered glyph mesh.
type Key struct {
	Rune      rune
	Direction Direction
}

func (k Key) String() string {
	return fmt.Sprintf("%q/%s", k.Rune, k.Direction)
}

// slot is the pool key. Glyphs and shapes share one pool; a slot with a
// non-empty shape name is a shape.
type slot struct {
	glyph Key
	shape string
}

func (s slot) String() string {
	if s.shape != "" {
		return "shape " + s.shape
	}
	return "glyph " + s.glyph.String()
}
