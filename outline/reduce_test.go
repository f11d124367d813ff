package outline

import (
	"math"
	"testing"

	"honnef.co/go/curve"
)

// maxDeviation samples the cubic at n parameters and returns the largest
// distance to the nearest point of the approximation.
func maxDeviation(c curve.CubicBez, approx []Segment, n int) float64 {
	var worst float64
	for i := range n {
		p := c.Eval(float64(i) / float64(n-1))
		best := math.Inf(1)
		for _, seg := range approx {
			d, _ := seg.Nearest(p, 1e-9)
			best = math.Min(best, d)
		}
		worst = math.Max(worst, math.Sqrt(best))
	}
	return worst
}

func TestReduceCubic_Fidelity(t *testing.T) {
	tests := []struct {
		name string
		c    curve.CubicBez
	}{
		{"arch", curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(0, 1), P2: curve.Pt(1, 1), P3: curve.Pt(1, 0)}},
		{"s-curve", curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(1, 1), P2: curve.Pt(0, 1), P3: curve.Pt(1, 0)}},
		{"loop-ish", curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(1.2, 1), P2: curve.Pt(-0.2, 1), P3: curve.Pt(1, 0)}},
		{"shallow", curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(0.3, 0.05), P2: curve.Pt(0.7, 0.05), P3: curve.Pt(1, 0)}},
	}

	const limit = 0.01
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quads := ReduceCubic(tt.c, DefaultTolerance)
			if len(quads) == 0 {
				t.Fatal("ReduceCubic returned no segments")
			}
			if quads[0].P0 != tt.c.P0 {
				t.Errorf("first start = %v, want %v", quads[0].P0, tt.c.P0)
			}
			if end := quads[len(quads)-1].End(); end != tt.c.P3 {
				t.Errorf("last end = %v, want %v", end, tt.c.P3)
			}
			for i := 1; i < len(quads); i++ {
				if quads[i].P0 != quads[i-1].End() {
					t.Errorf("gap between segment %d and %d", i-1, i)
				}
			}
			if d := maxDeviation(tt.c, quads, 100); d >= limit {
				t.Errorf("max deviation = %g, want < %g", d, limit)
			}
		})
	}
}

func TestReduceCubic_CollinearCollapsesToLine(t *testing.T) {
	c := curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(1, 0.0001), P2: curve.Pt(2, -0.0001), P3: curve.Pt(3, 0)}
	got := ReduceCubic(c, DefaultTolerance)
	if len(got) != 1 || got[0].Kind != curve.LineKind {
		t.Fatalf("ReduceCubic = %v, want a single line", got)
	}

	point := curve.CubicBez{P0: curve.Pt(2, 2), P1: curve.Pt(2, 2), P2: curve.Pt(2, 2), P3: curve.Pt(2, 2)}
	if got := ReduceCubic(point, 0); len(got) != 1 {
		t.Errorf("degenerate cubic gave %d segments, want 1", len(got))
	}
}

func TestReduceCubic_OvershootIsNotALine(t *testing.T) {
	// Controls are on the chord's line but beyond its ends.
	c := curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(-1, 0), P2: curve.Pt(2, 0), P3: curve.Pt(1, 0)}
	got := ReduceCubic(c, DefaultTolerance)
	if len(got) == 1 && got[0].Kind == curve.LineKind {
		t.Error("overshooting cubic collapsed to its chord")
	}
}

func TestShape_ReduceCubics(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(curve.Pt(0, 0))
	b.CubicTo(curve.Pt(0, 100), curve.Pt(100, 100), curve.Pt(100, 0))
	b.LineTo(curve.Pt(50, -50))
	b.Close()
	s := b.Shape()

	reduced := s.ReduceCubics(0.1)
	if reduced.HasCubics() {
		t.Fatal("ReduceCubics left a cubic behind")
	}
	if err := reduced.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got, want := reduced.Area(), s.Area(); math.Abs(got-want) > want*0.01 {
		t.Errorf("area = %g, want about %g", got, want)
	}
}
