// Package scene owns the state of one visualization and runs the update
// pipeline: points + overlays -> bounds -> layers -> hit-test.
//
// A Scene is not safe for concurrent use; it belongs to the goroutine that
// drives the UI. Backend answers are handed back through ApplyCut and
// ApplySteps, which drop results from superseded generations.
package scene

import (
	"math"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// Projector maps world coordinates to screen pixels.
type Projector interface {
	ToScreen(p viewport.Point) (x, y float64)
}

// Hover is the synthesized tooltip state of the cut line.
type Hover struct {
	Active bool
	X, Y   float64
	Label  string
}

// Ref addresses one input point.
type Ref struct {
	Color viewport.Color
	Index int
}

// DragRound is the number of decimals kept for dragged coordinates.
const DragRound = 3

type Scene struct {
	// HoverThreshold overrides viewport.HoverThresholdPx when positive.
	HoverThreshold float64
	// PointRadius is the pick radius in pixels for point hit-tests.
	PointRadius float64

	red, blue []viewport.Point
	teach     bool
	cut       *viewport.Line
	seq       []steps.Step
	index     int
	err       error

	bounds  viewport.Bounds
	layers  []Layer
	hover   Hover
	tracker backend.Tracker
}

// New returns an empty scene showing the default canvas.
func New() *Scene {
	s := &Scene{PointRadius: 10, bounds: viewport.DefaultBounds}
	s.Recompute()
	return s
}

// Request is a snapshot of what the backend should compute.
type Request struct {
	Generation uint64
	Red, Blue  []viewport.Point
	Teach      bool
}

// Request returns the pending computation; ok is false when either set is
// empty and nothing should be sent.
func (s *Scene) Request() (Request, bool) {
	if len(s.red) == 0 || len(s.blue) == 0 {
		return Request{}, false
	}
	return Request{
		Generation: s.tracker.Current(),
		Red:        append([]viewport.Point(nil), s.red...),
		Blue:       append([]viewport.Point(nil), s.blue...),
		Teach:      s.teach,
	}, true
}

// Generation is the input generation results must match.
func (s *Scene) Generation() uint64 { return s.tracker.Current() }

func (s *Scene) touch() { s.tracker.Begin() }

// SetPoints replaces both sets.
func (s *Scene) SetPoints(set pointset.Set) {
	c := set.Clone()
	s.red, s.blue = c.Red, c.Blue
	s.touch()
	s.Recompute()
}

// Points returns copies of both sets.
func (s *Scene) Points() pointset.Set {
	return pointset.Set{Red: s.red, Blue: s.blue}.Clone()
}

// MovePoint is the drag edit of one point. Coordinates are rounded to
// DragRound decimals; in teach mode the derivation restarts at step 0.
func (s *Scene) MovePoint(ref Ref, x, y float64) bool {
	pts := s.slice(ref.Color)
	if pts == nil || ref.Index < 0 || ref.Index >= len(*pts) {
		return false
	}
	(*pts)[ref.Index].X = round(x, DragRound)
	(*pts)[ref.Index].Y = round(y, DragRound)
	if s.teach {
		s.index = 0
	}
	s.touch()
	s.Recompute()
	return true
}

func (s *Scene) slice(c viewport.Color) *[]viewport.Point {
	switch c {
	case viewport.Red:
		return &s.red
	case viewport.Blue:
		return &s.blue
	}
	return nil
}

func round(v float64, decimals int) float64 {
	f := math.Pow(10, float64(decimals))
	return math.Round(v*f) / f
}

// SetTeachMode switches between the final cut and the step-by-step view,
// discarding results of the other mode.
func (s *Scene) SetTeachMode(on bool) {
	s.teach = on
	s.seq = nil
	s.index = 0
	s.cut = nil
	s.err = nil
	s.touch()
	s.Recompute()
}

func (s *Scene) TeachMode() bool { return s.teach }

// ApplyCut stores a final cut computed for generation gen. Stale results
// are dropped and reported as false.
func (s *Scene) ApplyCut(gen uint64, l viewport.Line) bool {
	if !s.tracker.IsCurrent(gen) {
		logging.Debugf("[scene] dropping stale cut gen=%d current=%d", gen, s.tracker.Current())
		return false
	}
	s.cut = &l
	s.err = nil
	s.Recompute()
	return true
}

// ApplySteps stores a teach sequence computed for generation gen.
func (s *Scene) ApplySteps(gen uint64, seq []steps.Step) bool {
	if !s.tracker.IsCurrent(gen) {
		logging.Debugf("[scene] dropping stale steps gen=%d current=%d", gen, s.tracker.Current())
		return false
	}
	s.seq = seq
	s.err = nil
	s.index = clampIndex(s.index, len(seq))
	s.Recompute()
	return true
}

// ApplyError records a failed computation for generation gen.
func (s *Scene) ApplyError(gen uint64, err error) bool {
	if !s.tracker.IsCurrent(gen) {
		return false
	}
	s.err = err
	return true
}

// Err is the error of the latest computation, if any.
func (s *Scene) Err() error { return s.err }

// Cut returns the final cut, nil when none is known.
func (s *Scene) Cut() *viewport.Line { return s.cut }

func (s *Scene) Steps() []steps.Step { return s.seq }
func (s *Scene) StepIndex() int      { return s.index }

// CurrentStep returns the step being shown in teach mode.
func (s *Scene) CurrentStep() (steps.Step, bool) {
	if s.index < 0 || s.index >= len(s.seq) {
		return steps.Step{}, false
	}
	return s.seq[s.index], true
}

func (s *Scene) stepData() *steps.StepData {
	if st, ok := s.CurrentStep(); ok {
		return &st.Data
	}
	return nil
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// StepTo shows step i, clamped to the available range.
func (s *Scene) StepTo(i int) {
	i = clampIndex(i, len(s.seq))
	if i == s.index {
		return
	}
	s.index = i
	s.Recompute()
}

func (s *Scene) First() { s.StepTo(0) }
func (s *Scene) Prev()  { s.StepTo(s.index - 1) }
func (s *Scene) Next()  { s.StepTo(s.index + 1) }
func (s *Scene) Last()  { s.StepTo(len(s.seq) - 1) }

// Recompute runs one pass of the pipeline. Overlay lines are sampled with
// the bounds of the previous pass, and the new bounds include those samples:
// the dependency is resolved one step behind, not iterated to a fixed point.
func (s *Scene) Recompute() {
	prev := s.bounds
	colls := [][]viewport.Point{s.red, s.blue}
	if data := s.stepData(); data != nil {
		ov := steps.Build(*data, data.DualLines, prev)
		colls = append(colls, ov.Collections()...)
	}
	if viewport.HasPoints(colls...) {
		s.bounds = viewport.ComputeBounds(colls...)
	}
	s.layers = s.buildLayers()
	s.hover = Hover{}
}

func (s *Scene) Bounds() viewport.Bounds { return s.bounds }
func (s *Scene) Layers() []Layer         { return s.layers }
func (s *Scene) Hover() Hover            { return s.hover }

func (s *Scene) within(d float64) bool {
	if s.HoverThreshold > 0 {
		return d < s.HoverThreshold
	}
	return viewport.WithinHover(d)
}

// HitTest evaluates the cursor at screen position (px,py) against the
// rendered cut line and updates the hover state.
func (s *Scene) HitTest(px, py float64, proj Projector) Hover {
	s.hover = Hover{}
	for _, l := range s.layers {
		if !l.IsCut() {
			continue
		}
		if len(l.Points) < 2 {
			break
		}
		x1, y1 := proj.ToScreen(l.Points[0])
		x2, y2 := proj.ToScreen(l.Points[1])
		if s.within(viewport.DistanceToSegment(px, py, x1, y1, x2, y2)) {
			label, _ := s.cutTooltip()
			s.hover = Hover{Active: true, X: px, Y: py, Label: label}
		}
		break
	}
	return s.hover
}

// PointAt returns the visible input point nearest to (px,py) within
// PointRadius pixels.
func (s *Scene) PointAt(px, py float64, proj Projector) (Ref, bool) {
	if !s.pointsVisible() {
		return Ref{}, false
	}
	best, bestD := Ref{}, math.Inf(1)
	for _, c := range []viewport.Color{viewport.Red, viewport.Blue} {
		for i, p := range *s.slice(c) {
			x, y := proj.ToScreen(p)
			if d := math.Hypot(px-x, py-y); d < bestD {
				best, bestD = Ref{Color: c, Index: i}, d
			}
		}
	}
	if bestD > s.PointRadius {
		return Ref{}, false
	}
	return best, true
}
