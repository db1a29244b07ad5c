package steps

import (
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// Pair is a two-point polyline (a sampled line or marker).
type Pair [2]viewport.Point

// Overlay is the geometry a step adds on top of the point sets. Lines are
// sampled against the bounds passed to Build, which is why callers hand in
// the bounds of the previous frame when the result feeds ComputeBounds.
type Overlay struct {
	IntervalMedians []viewport.Point
	RedDuals        []Pair
	BlueDuals       []Pair
	IntervalStart   *Pair
	IntervalEnd     *Pair
	Cut             *Pair
	CutDual         *viewport.Point
}

// Build derives the overlay of one step. duals may differ from
// data.DualLines: the chart keeps drawing the dual lines of step 1.
func Build(data StepData, duals *DualLines, b viewport.Bounds) Overlay {
	var o Overlay
	o.IntervalMedians = data.IntervalMedians
	if duals != nil {
		o.RedDuals = sampleDuals(duals.Red, b)
		o.BlueDuals = sampleDuals(duals.Blue, b)
	}
	if iv := data.Interval; iv != nil {
		o.IntervalStart = marker(iv.Start, b)
		o.IntervalEnd = marker(iv.End, b)
	}
	if c := data.Cut; c != nil {
		l := c.Line()
		if p1, p2, ok := l.Endpoints(b.MinX, b.MaxX, b); ok {
			o.Cut = &Pair{p1, p2}
		}
		if d, ok := l.Dual(); ok {
			o.CutDual = &d
		}
	}
	return o
}

func sampleDuals(lines []DualLine, b viewport.Bounds) []Pair {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Pair, 0, len(lines))
	for _, d := range lines {
		out = append(out, Pair{
			{X: b.MinX, Y: d.At(b.MinX)},
			{X: b.MaxX, Y: d.At(b.MaxX)},
		})
	}
	return out
}

func marker(x float64, b viewport.Bounds) *Pair {
	return &Pair{{X: x, Y: b.MinY}, {X: x, Y: b.MaxY}}
}

// Flatten returns the pairs as one point slice.
func Flatten(pairs []Pair) []viewport.Point {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]viewport.Point, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p[0], p[1])
	}
	return out
}

// Collections lists every overlay point for ComputeBounds.
func (o Overlay) Collections() [][]viewport.Point {
	cs := [][]viewport.Point{o.IntervalMedians, Flatten(o.RedDuals), Flatten(o.BlueDuals)}
	if o.Cut != nil {
		cs = append(cs, o.Cut[:])
	}
	if o.IntervalStart != nil {
		cs = append(cs, o.IntervalStart[:])
	}
	if o.IntervalEnd != nil {
		cs = append(cs, o.IntervalEnd[:])
	}
	if o.CutDual != nil {
		cs = append(cs, []viewport.Point{*o.CutDual})
	}
	return cs
}
