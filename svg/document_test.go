package svg

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

const iconDocument = `<?xml version="1.0" encoding="UTF-8"?>
<!-- test icon -->
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="48" height="48">
  <defs>
    <path id="hidden" d="M0 0h1v1z"/>
  </defs>
  <g transform="translate(2 2)">
    <path id="body" d="M0 0h10v10h-10z"/>
    <g transform="scale(2)">
      <rect x="5" y="0" width="2" height="2"/>
    </g>
  </g>
  <circle cx="20" cy="20" r="2"/>
  <polygon points="0,20 4,20 4,24"/>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(iconDocument))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(curve.Rect{X0: 0, Y0: 0, X1: 24, Y1: 24}, doc.ViewBox); diff != "" {
		t.Errorf("ViewBox mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, el := range doc.Elements {
		names = append(names, el.Name)
	}
	if diff := cmp.Diff([]string{"path", "rect", "circle", "polygon"}, names); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	if doc.Elements[0].ID != "body" {
		t.Errorf("first element id = %q, want body", doc.Elements[0].ID)
	}

	// rect at (5,0) scaled by 2 then translated by (2,2).
	p := curve.Pt(5, 0).Transform(doc.Elements[1].Transform)
	if p.Distance(curve.Pt(12, 2)) > 1e-9 {
		t.Errorf("rect origin maps to %v, want (12, 2)", p)
	}
	if doc.Elements[2].Transform != curve.Identity {
		t.Errorf("circle transform = %v, want identity", doc.Elements[2].Transform)
	}
}

func TestDocument_Replay(t *testing.T) {
	doc, err := Parse([]byte(iconDocument))
	if err != nil {
		t.Fatal(err)
	}
	b := outline.NewBuilder()
	if err := doc.Replay(b); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	s := b.Shape()
	if len(s) != 4 {
		t.Fatalf("contours = %d, want 4", len(s))
	}
	// 100 + 16 + 4π + 8
	want := 124 + 4*math.Pi
	if got := s.Area(); math.Abs(got-want) > 0.01 {
		t.Errorf("area = %v, want %v", got, want)
	}
}

func TestParse_SizeWithoutViewBox(t *testing.T) {
	doc, err := Parse([]byte(`<svg width="32px" height="16"><path d="M0 0h1v1z"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if want := (curve.Rect{X1: 32, Y1: 16}); doc.ViewBox != want {
		t.Errorf("ViewBox = %v, want %v", doc.ViewBox, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no shapes", `<svg viewBox="0 0 1 1"><g/></svg>`, ErrNoShapes},
		{"bad viewBox", `<svg viewBox="0 0 1"><path d="M0 0h1v1z"/></svg>`, ErrSyntax},
		{"bad transform", `<svg><path transform="skew(1)" d="M0 0h1v1z"/></svg>`, ErrSyntax},
		{"bad points", `<svg><polygon points="0 0 1 x"/></svg>`, ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocument_ReplayError(t *testing.T) {
	doc := &Document{Elements: []Element{{Name: "path", Data: "M0 0 Q", Transform: curve.Identity}}}
	if err := doc.Replay(outline.NewBuilder()); !errors.Is(err, ErrSyntax) {
		t.Errorf("Replay() error = %v, want ErrSyntax", err)
	}
}
