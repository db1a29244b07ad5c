package viewport

import (
	"math"
	"testing"
)

func TestComputeBoundsOriginFoldsDefaults(t *testing.T) {
	b := ComputeBounds([]Point{{X: 0, Y: 0}})
	if b.MinX > -1 || b.MaxX < 11 || b.MinY > -1 || b.MaxY < 11 {
		t.Fatalf("expected defaults plus padding; got %+v", b)
	}
	if b != (Bounds{MinX: -1, MaxX: 11, MinY: -1, MaxY: 11}) {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

func TestComputeBoundsFarPointExtendsMax(t *testing.T) {
	b := ComputeBounds([]Point{{X: 20, Y: 20}})
	if b.MaxX != 21 || b.MaxY != 21 {
		t.Fatalf("expected max 21/21; got %+v", b)
	}
	if b.MinX > -1 || b.MinY > -1 {
		t.Fatalf("default floor should still apply; got %+v", b)
	}
}

func TestComputeBoundsRoundsOutwards(t *testing.T) {
	b := ComputeBounds([]Point{{X: -3.2, Y: 12.1}}, nil, []Point{{X: 14.5, Y: -0.4}})
	want := Bounds{MinX: -5, MaxX: 16, MinY: -2, MaxY: 14}
	if b != want {
		t.Fatalf("got %+v want %+v", b, want)
	}
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if v != math.Trunc(v) {
			t.Fatalf("expected integer bounds; got %+v", b)
		}
	}
}

func TestComputeBoundsSinglePointIsValid(t *testing.T) {
	b := ComputeBounds([]Point{{X: 5, Y: 5}})
	if !b.Valid() {
		t.Fatalf("expected non-degenerate bounds; got %+v", b)
	}
}

func TestHasPoints(t *testing.T) {
	if HasPoints() || HasPoints(nil, []Point{}) {
		t.Fatalf("empty collections must report no points")
	}
	if !HasPoints(nil, []Point{{X: 1}}) {
		t.Fatalf("expected points")
	}
}

func TestDistanceToSegment(t *testing.T) {
	cases := []struct {
		name                   string
		px, py, x1, y1, x2, y2 float64
		want                   float64
	}{
		{"on segment", 0, 0, 0, 0, 10, 0, 0},
		{"perpendicular", 5, 5, 0, 0, 10, 0, 5},
		{"clamped to start", -5, 0, 0, 0, 10, 0, 5},
		{"clamped to end", 13, 4, 0, 0, 10, 0, 5},
		{"zero length", 3, 4, 1, 1, 1, 1, math.Sqrt(13)},
	}
	for _, c := range cases {
		got := DistanceToSegment(c.px, c.py, c.x1, c.y1, c.x2, c.y2)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s: got %v want %v", c.name, got, c.want)
		}
	}
	if d := (Segment{X1: 0, Y1: 0, X2: 0, Y2: 10}).Distance(3, 5); math.Abs(d-3) > 1e-9 {
		t.Fatalf("segment helper: got %v", d)
	}
}

func TestWithinHoverIsStrict(t *testing.T) {
	if !WithinHover(9.99) || WithinHover(10) {
		t.Fatalf("threshold must be exclusive at %v", HoverThresholdPx)
	}
}

func TestLineInvariantAndEndpoints(t *testing.T) {
	l := NewLine(2, 1)
	if !l.Valid() {
		t.Fatalf("expected valid sloped line")
	}
	p1, p2, ok := l.Endpoints(-1, 3, DefaultBounds)
	if !ok || p1 != (Point{X: -1, Y: -1}) || p2 != (Point{X: 3, Y: 7}) {
		t.Fatalf("unexpected endpoints %v %v %v", p1, p2, ok)
	}
	v := NewVerticalLine(4)
	if !v.Valid() {
		t.Fatalf("expected valid vertical line")
	}
	p1, p2, ok = v.Endpoints(-100, 100, Bounds{MinX: 0, MaxX: 1, MinY: -2, MaxY: 9})
	if !ok || p1 != (Point{X: 4, Y: -2}) || p2 != (Point{X: 4, Y: 9}) {
		t.Fatalf("unexpected vertical endpoints %v %v %v", p1, p2, ok)
	}
	bad := Line{IsVertical: true, XIntercept: l.Slope, Slope: l.Slope}
	if bad.Valid() {
		t.Fatalf("mixed fields must be invalid")
	}
	if _, _, ok := (Line{}).Endpoints(0, 1, DefaultBounds); ok {
		t.Fatalf("empty line has no endpoints")
	}
}

func TestLineDualAndString(t *testing.T) {
	d, ok := NewLine(1.5, 2).Dual()
	if !ok || d != (Point{X: 1.5, Y: -2}) {
		t.Fatalf("unexpected dual %v", d)
	}
	if _, ok := NewVerticalLine(1).Dual(); ok {
		t.Fatalf("vertical lines have no dual point")
	}
	if s := NewLine(1, 2).String(); s != "y = 1.00x + 2.00" {
		t.Fatalf("got %q", s)
	}
	if s := NewVerticalLine(3).String(); s != "x = 3.00" {
		t.Fatalf("got %q", s)
	}
}
