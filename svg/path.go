package svg

import (
	"math"

	"honnef.co/go/curve"

	"github.com/gogpu/glyphmesh/outline"
)

// ArcTolerance is the maximum distance between an elliptical arc and the
// cubic curves that replace it, in path units.
const ArcTolerance = 1e-3

// ParsePath parses SVG path data and replays it into sink.
//
// Coordinates are passed through unchanged; SVG's y-down orientation is
// left to the caller. On a syntax error the commands before the error
// have already been replayed.
func ParsePath(data string, sink outline.Sink) error {
	p := pathParser{scanner: scanner{data: []byte(data)}, sink: sink}
	return p.parse()
}

type pathParser struct {
	scanner
	sink outline.Sink

	cur, start curve.Point
	ctrl       curve.Point // last control point, for S and T
	prev       byte        // previous command, upper case
}

func (p *pathParser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		cmd := p.peek()
		if argCount(cmd) < 0 {
			return p.errorf("expected command")
		}
		p.pos++

		if cmd == 'Z' || cmd == 'z' {
			p.sink.Close()
			p.cur = p.start
			p.prev = 'Z'
			continue
		}

		for first := true; first || p.atNumber(); first = false {
			if err := p.segment(cmd); err != nil {
				return err
			}
			// Extra coordinate pairs after a move are implicit line commands.
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}
	}
}

// argCount returns the number of values one repetition of cmd consumes, or
// -1 if cmd is not a path command.
func argCount(cmd byte) int {
	switch cmd {
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'S', 's', 'Q', 'q':
		return 4
	case 'C', 'c':
		return 6
	case 'A', 'a':
		return 7
	default:
		return -1
	}
}

func (p *pathParser) point(rel bool) (curve.Point, error) {
	x, err := p.number()
	if err != nil {
		return curve.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return curve.Point{}, err
	}
	if rel {
		return curve.Pt(p.cur.X+x, p.cur.Y+y), nil
	}
	return curve.Pt(x, y), nil
}

func (p *pathParser) points(rel bool, dst []curve.Point) error {
	for i := range dst {
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		dst[i] = pt
	}
	return nil
}

// reflected mirrors the previous control point about the current point when
// the previous command was one of kinds. Otherwise it returns the current
// point.
func (p *pathParser) reflected(kinds ...byte) curve.Point {
	for _, k := range kinds {
		if p.prev == k {
			return curve.Pt(2*p.cur.X-p.ctrl.X, 2*p.cur.Y-p.ctrl.Y)
		}
	}
	return p.cur
}

func (p *pathParser) segment(cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd &^ 0x20
	var pts [3]curve.Point

	switch upper {
	case 'M':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.MoveTo(pt)
		p.cur, p.start = pt, pt

	case 'L':
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.LineTo(pt)
		p.cur = pt

	case 'H', 'V':
		v, err := p.number()
		if err != nil {
			return err
		}
		pt := p.cur
		switch {
		case upper == 'H' && rel:
			pt.X += v
		case upper == 'H':
			pt.X = v
		case rel:
			pt.Y += v
		default:
			pt.Y = v
		}
		p.sink.LineTo(pt)
		p.cur = pt

	case 'C':
		if err := p.points(rel, pts[:3]); err != nil {
			return err
		}
		p.sink.CubicTo(pts[0], pts[1], pts[2])
		p.ctrl, p.cur = pts[1], pts[2]

	case 'S':
		c1 := p.reflected('C', 'S')
		if err := p.points(rel, pts[:2]); err != nil {
			return err
		}
		p.sink.CubicTo(c1, pts[0], pts[1])
		p.ctrl, p.cur = pts[0], pts[1]

	case 'Q':
		if err := p.points(rel, pts[:2]); err != nil {
			return err
		}
		p.sink.QuadTo(pts[0], pts[1])
		p.ctrl, p.cur = pts[0], pts[1]

	case 'T':
		c := p.reflected('Q', 'T')
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.QuadTo(c, pt)
		p.ctrl, p.cur = c, pt

	case 'A':
		if err := p.arc(rel); err != nil {
			return err
		}
	}

	p.prev = upper
	return nil
}

func (p *pathParser) arc(rel bool) error {
	var v [3]float64
	for i := range v {
		f, err := p.number()
		if err != nil {
			return err
		}
		v[i] = f
	}
	large, err := p.flag()
	if err != nil {
		return err
	}
	sweep, err := p.flag()
	if err != nil {
		return err
	}
	end, err := p.point(rel)
	if err != nil {
		return err
	}
	arcTo(p.sink, p.cur, v[0], v[1], v[2], large, sweep, end)
	p.cur = end
	return nil
}

// arcTo converts an endpoint-parameterized elliptical arc into cubic curves
// following the SVG implementation notes (appendix B.2.4).
func arcTo(sink outline.Sink, from curve.Point, rx, ry, rotation float64, large, sweep bool, to curve.Point) {
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		sink.LineTo(to)
		return
	}

	phi := rotation * math.Pi / 180
	sin, cos := math.Sincos(phi)
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	// Scale up radii that cannot span the endpoints.
	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1*y1 - ry2*x1*x1
	den := rx2*y1*y1 + ry2*x1*x1
	coef := math.Sqrt(max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	center := curve.Pt(
		cos*cx1-sin*cy1+(from.X+to.X)/2,
		sin*cx1+cos*cy1+(from.Y+to.Y)/2,
	)

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	start := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	a := curve.Arc{
		Center:     center,
		Radii:      curve.Vec(rx, ry),
		StartAngle: start,
		SweepAngle: delta,
		XRotation:  phi,
	}
	var cubics []curve.PathElement
	for el := range a.PathElements(ArcTolerance) {
		if el.Kind == curve.CubicToKind {
			cubics = append(cubics, el)
		}
	}
	if len(cubics) == 0 {
		sink.LineTo(to)
		return
	}
	// Land exactly on the requested end point.
	cubics[len(cubics)-1].P2 = to
	for _, c := range cubics {
		sink.CubicTo(c.P0, c.P1, c.P2)
	}
}
