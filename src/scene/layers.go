package scene

import (
	"fmt"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// LayerKind identifies a renderable dataset.
type LayerKind int

const (
	RedPoints LayerKind = iota
	BluePoints
	FinalCut
	IntervalMedians
	RedDualLines
	BlueDualLines
	IntervalStart
	IntervalEnd
	StepCut
	CutDualPoint
)

// CutLabel is the label the hover test looks for.
const CutLabel = "Ham Sandwich Cut"

var layerLabels = map[LayerKind]string{
	RedPoints:       "Red Points",
	BluePoints:      "Blue Points",
	FinalCut:        CutLabel,
	IntervalMedians: "Interval Medians",
	RedDualLines:    "Red Dual Lines",
	BlueDualLines:   "Blue Dual Lines",
	IntervalStart:   "Interval Start",
	IntervalEnd:     "Interval End",
	StepCut:         CutLabel,
	CutDualPoint:    "Ham Sandwich Cut Dual Point",
}

// Layer is one dataset of the chart. For line layers every consecutive pair
// of points is a separate segment; scatter layers draw points only.
type Layer struct {
	Kind   LayerKind
	Label  string
	Points []viewport.Point
	Line   bool
}

// IsCut reports whether the layer draws a cut line.
func (l Layer) IsCut() bool { return l.Label == CutLabel }

// Segments returns the layer's point pairs as segments.
func (l Layer) Segments() [][2]viewport.Point {
	if !l.Line {
		return nil
	}
	out := make([][2]viewport.Point, 0, len(l.Points)/2)
	for i := 0; i+1 < len(l.Points); i += 2 {
		out = append(out, [2]viewport.Point{l.Points[i], l.Points[i+1]})
	}
	return out
}

func newLayer(k LayerKind, pts []viewport.Point, line bool) Layer {
	return Layer{Kind: k, Label: layerLabels[k], Points: pts, Line: line}
}

// cutPadFactor widens the final cut beyond the visible range so it never
// ends inside the plot when the user pans.
const cutPadFactor = 2

// buildLayers derives the datasets from the state and the current bounds.
func (s *Scene) buildLayers() []Layer {
	b := s.bounds
	var out []Layer
	if s.pointsVisible() {
		out = append(out, newLayer(RedPoints, s.red, false), newLayer(BluePoints, s.blue, false))
	}
	if s.cut != nil {
		xr := b.Width()
		minX, maxX := b.MinX-xr*cutPadFactor, b.MaxX+xr*cutPadFactor
		var pts []viewport.Point
		if p1, p2, ok := s.cut.Endpoints(minX, maxX, b); ok {
			pts = []viewport.Point{p1, p2}
		}
		out = append(out, newLayer(FinalCut, pts, true))
	}
	data := s.stepData()
	if data == nil {
		return out
	}
	var duals *steps.DualLines
	if s.index >= 1 {
		duals = steps.DualLinesOf(s.seq)
	}
	ov := steps.Build(*data, duals, b)
	if len(ov.IntervalMedians) > 0 {
		out = append(out, newLayer(IntervalMedians, ov.IntervalMedians, false))
	}
	if len(ov.RedDuals) > 0 {
		out = append(out, newLayer(RedDualLines, steps.Flatten(ov.RedDuals), true))
	}
	if len(ov.BlueDuals) > 0 {
		out = append(out, newLayer(BlueDualLines, steps.Flatten(ov.BlueDuals), true))
	}
	if ov.IntervalStart != nil {
		out = append(out, newLayer(IntervalStart, ov.IntervalStart[:], true))
	}
	if ov.IntervalEnd != nil {
		out = append(out, newLayer(IntervalEnd, ov.IntervalEnd[:], true))
	}
	if ov.Cut != nil {
		out = append(out, newLayer(StepCut, ov.Cut[:], true))
	}
	if ov.CutDual != nil {
		out = append(out, newLayer(CutDualPoint, []viewport.Point{*ov.CutDual}, false))
	}
	return out
}

// pointsVisible hides the input sets on the intermediate teach steps, where
// the chart shows the dual plane instead.
func (s *Scene) pointsVisible() bool {
	if !s.teach {
		return true
	}
	return !(s.index > 1 && s.index != len(s.seq)-1)
}

// Tooltip returns the hover text for point i of layer l.
func (s *Scene) Tooltip(l Layer, i int) string {
	if l.IsCut() {
		if txt, ok := s.cutTooltip(); ok {
			return txt
		}
	}
	if i < 0 || i >= len(l.Points) {
		return l.Label
	}
	p := l.Points[i]
	switch l.Kind {
	case CutDualPoint:
		return fmt.Sprintf("Dual Point: (%.2f, %.2f)", p.X, p.Y)
	case IntervalStart, IntervalEnd:
		return fmt.Sprintf("Interval: x = %.2f", p.X)
	default:
		return fmt.Sprintf("%s: (%.2f, %.2f)", l.Label, p.X, p.Y)
	}
}

// cutTooltip prefers the cut of the current step over the final cut.
func (s *Scene) cutTooltip() (string, bool) {
	if data := s.stepData(); data != nil && data.Cut != nil {
		if l := data.Cut.Line(); l.Valid() {
			return CutLabel + ": " + l.String(), true
		}
	}
	if s.cut != nil && s.cut.Valid() {
		return CutLabel + ": " + s.cut.String(), true
	}
	return "", false
}
