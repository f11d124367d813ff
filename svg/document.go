package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// Element is one drawable element of a document, reduced to path data.
type Element struct {
	Name      string       // element name, e.g. "path" or "circle"
	ID        string       // id attribute, may be empty
	Data      string       // path data
	Transform curve.Affine // accumulated transform from the root
}

// Document is a parsed SVG file.
type Document struct {
	// ViewBox is the user coordinate system. It is empty when the root
	// element had neither a viewBox nor width and height.
	ViewBox  curve.Rect
	Elements []Element
}

// Parse reads an SVG document. Elements without geometry, styles and
// definitions are ignored; shapes inside <defs> are skipped.
func Parse(data []byte) (*Document, error) {
	l := xml.NewLexer(parse.NewInputBytes(data))
	doc := &Document{}
	stack := []curve.Affine{curve.Identity}
	defsDepth := 0
	var width, height float64

	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("svg: read document: %w", err)
			}
			if doc.ViewBox.Width() == 0 && width > 0 && height > 0 {
				doc.ViewBox = curve.Rect{X1: width, Y1: height}
			}
			if len(doc.Elements) == 0 {
				return nil, ErrNoShapes
			}
			return doc, nil

		case xml.StartTagToken:
			name := string(l.Text())
			attrs, void, err := readAttrs(l)
			if err != nil {
				return nil, err
			}

			parent := stack[len(stack)-1]
			m := parent
			if t, ok := attrs["transform"]; ok {
				own, err := ParseTransform(t)
				if err != nil {
					return nil, fmt.Errorf("<%s transform>: %w", name, err)
				}
				m = parent.Mul(own)
			}

			switch name {
			case "svg":
				if len(stack) == 1 {
					if err := readViewport(doc, attrs, &width, &height); err != nil {
						return nil, err
					}
				}
			case "defs":
				if !void {
					defsDepth++
				}
			default:
				if defsDepth == 0 {
					el, ok, err := shapeElement(name, attrs)
					if err != nil {
						return nil, err
					}
					if ok {
						el.Transform = m
						doc.Elements = append(doc.Elements, el)
					}
				}
			}
			if !void {
				stack = append(stack, m)
			}

		case xml.EndTagToken:
			if string(l.Text()) == "defs" && defsDepth > 0 {
				defsDepth--
			}
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// readAttrs collects the attributes of the current start tag.
func readAttrs(l *xml.Lexer) (attrs map[string]string, void bool, err error) {
	attrs = make(map[string]string)
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.AttributeToken:
			attrs[string(l.Text())] = string(unquote(l.AttrVal()))
		case xml.StartTagCloseToken:
			return attrs, false, nil
		case xml.StartTagCloseVoidToken:
			return attrs, true, nil
		default:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, false, fmt.Errorf("svg: read attributes: %w", err)
			}
			return nil, false, &SyntaxError{Msg: "unterminated start tag"}
		}
	}
}

func unquote(v []byte) []byte {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

func readViewport(doc *Document, attrs map[string]string, width, height *float64) error {
	if v, ok := attrs["viewBox"]; ok {
		nums, err := parseNumbers(v)
		if err != nil {
			return fmt.Errorf("<svg viewBox>: %w", err)
		}
		if len(nums) != 4 || nums[2] <= 0 || nums[3] <= 0 {
			return &SyntaxError{Msg: "viewBox needs min-x, min-y, width and height"}
		}
		doc.ViewBox = curve.Rect{X0: nums[0], Y0: nums[1], X1: nums[0] + nums[2], Y1: nums[1] + nums[3]}
	}
	*width = length(attrs["width"])
	*height = length(attrs["height"])
	return nil
}

// length reads a user-unit length, ignoring a trailing "px". Other units
// and percentages yield 0.
func length(v string) float64 {
	nums, err := parseNumbers(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil || len(nums) != 1 {
		return 0
	}
	return nums[0]
}

// shapeElement converts a basic shape element into path data.
func shapeElement(name string, attrs map[string]string) (Element, bool, error) {
	el := Element{Name: name, ID: attrs["id"]}
	num := func(key string) float64 { return length(attrs[key]) }

	switch name {
	case "path":
		el.Data = attrs["d"]
	case "rect":
		x, y, w, h := num("x"), num("y"), num("width"), num("height")
		if w <= 0 || h <= 0 {
			return el, false, nil
		}
		el.Data = fmt.Sprintf("M%g %gh%gv%gh%gz", x, y, w, h, -w)
	case "circle", "ellipse":
		cx, cy := num("cx"), num("cy")
		rx, ry := num("rx"), num("ry")
		if name == "circle" {
			rx, ry = num("r"), num("r")
		}
		if rx <= 0 || ry <= 0 {
			return el, false, nil
		}
		el.Data = fmt.Sprintf("M%g %gA%g %g 0 1 1 %g %gA%g %g 0 1 1 %g %gz",
			cx-rx, cy, rx, ry, cx+rx, cy, rx, ry, cx-rx, cy)
	case "polygon", "polyline":
		nums, err := parseNumbers(attrs["points"])
		if err != nil {
			return el, false, fmt.Errorf("<%s points>: %w", name, err)
		}
		if len(nums) < 4 || len(nums)%2 != 0 {
			return el, false, nil
		}
		var b bytes.Buffer
		for i := 0; i < len(nums); i += 2 {
			cmd := 'L'
			if i == 0 {
				cmd = 'M'
			}
			fmt.Fprintf(&b, "%c%g %g", cmd, nums[i], nums[i+1])
		}
		b.WriteByte('z')
		el.Data = b.String()
	default:
		return el, false, nil
	}
	return el, el.Data != "", nil
}

// Replay feeds every element through its transform into sink.
func (d *Document) Replay(sink outline.Sink) error {
	for i, el := range d.Elements {
		if err := ParsePath(el.Data, outline.TransformSink(sink, el.Transform)); err != nil {
			return fmt.Errorf("element %d <%s>: %w", i, el.Name, err)
		}
	}
	return nil
}
