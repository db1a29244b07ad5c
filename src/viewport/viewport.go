// Package viewport holds the numeric core of the viewer: the chart bounds
// computation and the cursor-to-segment proximity test.
package viewport

import (
	"fmt"
	"math"
)

// Color labels which of the two sets a point belongs to.
type Color string

const (
	NoColor Color = ""
	Red     Color = "red"
	Blue    Color = "blue"
)

// Point is a 2D sample. Color is only set where the consumer needs it
// (interval medians carry it, plain set members do not).
type Point struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Color Color   `json:"color,omitempty" yaml:"color,omitempty"`
}

// Bounds is an axis-aligned viewport in world coordinates.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

const (
	// Padding is added on every side before rounding outwards.
	Padding = 1.0
	// defaultFloor and defaultCeil are folded into every min/max so the view
	// never shrinks below the 10x10 working area.
	defaultFloor = 0.0
	defaultCeil  = 10.0
	// HoverThresholdPx is the cursor distance (screen pixels) under which the
	// cut line counts as hovered.
	HoverThresholdPx = 10.0
)

// DefaultBounds is the canvas before any data has been seen.
var DefaultBounds = Bounds{MinX: defaultFloor, MaxX: defaultCeil, MinY: defaultFloor, MaxY: defaultCeil}

// Width returns MaxX-MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether both spans are strictly positive.
func (b Bounds) Valid() bool { return b.MinX < b.MaxX && b.MinY < b.MaxY }

// HasPoints is the guard callers run before ComputeBounds.
func HasPoints(collections ...[]Point) bool {
	for _, c := range collections {
		if len(c) > 0 {
			return true
		}
	}
	return false
}

// ComputeBounds returns integer bounds containing every point of every
// collection, the default 0..10 range and a padding of one unit.
// Callers must not pass only empty collections; use HasPoints first.
func ComputeBounds(collections ...[]Point) Bounds {
	minX, maxX := defaultFloor, defaultCeil
	minY, maxY := defaultFloor, defaultCeil
	for _, c := range collections {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return Bounds{
		MinX: math.Floor(minX - Padding),
		MaxX: math.Ceil(maxX + Padding),
		MinY: math.Floor(minY - Padding),
		MaxY: math.Ceil(maxY + Padding),
	}
}

// Segment is a finite line segment, usually in screen space.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Distance returns DistanceToSegment from (px,py) to s.
func (s Segment) Distance(px, py float64) float64 {
	return DistanceToSegment(px, py, s.X1, s.Y1, s.X2, s.Y2)
}

// DistanceToSegment returns the Euclidean distance from (px,py) to the
// closest point of the segment (x1,y1)-(x2,y2). A zero-length segment is
// treated as the single point (x1,y1).
func DistanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// WithinHover reports whether a screen distance activates the hover state.
func WithinHover(d float64) bool { return d < HoverThresholdPx }

// Line is a cut. Vertical lines use XIntercept; all others Slope and
// Intercept.
type Line struct {
	Slope      *float64 `json:"slope"`
	Intercept  *float64 `json:"intercept"`
	IsVertical bool     `json:"isVertical"`
	XIntercept *float64 `json:"xIntercept"`
}

// NewLine builds y = m*x + b.
func NewLine(m, b float64) Line {
	return Line{Slope: &m, Intercept: &b}
}

// NewVerticalLine builds x = x0.
func NewVerticalLine(x0 float64) Line {
	return Line{IsVertical: true, XIntercept: &x0}
}

// Valid checks that exactly the fields selected by IsVertical are set.
func (l Line) Valid() bool {
	if l.IsVertical {
		return l.XIntercept != nil && l.Slope == nil && l.Intercept == nil
	}
	return l.Slope != nil && l.Intercept != nil && l.XIntercept == nil
}

// At evaluates a non-vertical line.
func (l Line) At(x float64) float64 {
	return *l.Slope*x + *l.Intercept
}

// Endpoints samples the line for rendering. Non-vertical lines are sampled
// at x=minX and x=maxX; vertical lines span the bounds' Y range.
// ok is false when the line carries no usable values.
func (l Line) Endpoints(minX, maxX float64, b Bounds) (p1, p2 Point, ok bool) {
	if l.IsVertical {
		if l.XIntercept == nil {
			return Point{}, Point{}, false
		}
		x := *l.XIntercept
		return Point{X: x, Y: b.MinY}, Point{X: x, Y: b.MaxY}, true
	}
	if l.Slope == nil || l.Intercept == nil {
		return Point{}, Point{}, false
	}
	return Point{X: minX, Y: l.At(minX)}, Point{X: maxX, Y: l.At(maxX)}, true
}

// Dual maps y = m*x + b to the point (m, -b).
func (l Line) Dual() (Point, bool) {
	if l.IsVertical || l.Slope == nil || l.Intercept == nil {
		return Point{}, false
	}
	return Point{X: *l.Slope, Y: -*l.Intercept}, true
}

func (l Line) String() string {
	switch {
	case l.IsVertical && l.XIntercept != nil:
		return fmt.Sprintf("x = %.2f", *l.XIntercept)
	case !l.IsVertical && l.Slope != nil && l.Intercept != nil:
		return fmt.Sprintf("y = %.2fx + %.2f", *l.Slope, *l.Intercept)
	default:
		return "(undefined)"
	}
}
