package svg

import (
	"math"

	"honnef.co/go/curve"
)

// ParseTransform parses an SVG transform list such as
// "translate(10 20) rotate(45)". Transforms apply right to left, so the
// last one in the list is applied to the points first.
func ParseTransform(v string) (curve.Affine, error) {
	s := scanner{data: []byte(v)}
	m := curve.Identity
	for {
		s.skipSeparator()
		if s.eof() {
			return m, nil
		}

		nameStart := s.pos
		for c := s.peek(); c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'; c = s.peek() {
			s.pos++
		}
		name := string(s.data[nameStart:s.pos])
		s.skipSpace()
		if s.peek() != '(' {
			return curve.Affine{}, s.errorf("expected '(' after %q", name)
		}
		s.pos++

		var args []float64
		for s.atNumber() {
			f, err := s.number()
			if err != nil {
				return curve.Affine{}, err
			}
			args = append(args, f)
		}
		s.skipSpace()
		if s.peek() != ')' {
			return curve.Affine{}, s.errorf("expected ')'")
		}
		s.pos++

		t, ok := transformFunc(name, args)
		if !ok {
			return curve.Affine{}, &SyntaxError{Offset: nameStart, Msg: "invalid transform " + name}
		}
		m = m.Mul(t)
	}
}

func transformFunc(name string, a []float64) (curve.Affine, bool) {
	switch {
	case name == "matrix" && len(a) == 6:
		return curve.NewAffine([6]float64(a)), true
	case name == "translate" && len(a) == 1:
		return curve.Translate(curve.Vec(a[0], 0)), true
	case name == "translate" && len(a) == 2:
		return curve.Translate(curve.Vec(a[0], a[1])), true
	case name == "scale" && len(a) == 1:
		return curve.Scale(a[0], a[0]), true
	case name == "scale" && len(a) == 2:
		return curve.Scale(a[0], a[1]), true
	case name == "rotate" && len(a) == 1:
		return curve.Rotate(radians(a[0])), true
	case name == "rotate" && len(a) == 3:
		return curve.RotateAbout(radians(a[0]), curve.Pt(a[1], a[2])), true
	case name == "skewX" && len(a) == 1:
		return curve.Skew(math.Tan(radians(a[0])), 0), true
	case name == "skewY" && len(a) == 1:
		return curve.Skew(0, math.Tan(radians(a[0]))), true
	default:
		return curve.Affine{}, false
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
