// Package steps models the teach-mode derivation returned by the backend and
// turns a step into overlay geometry for the chart.
package steps

import (
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// StepType names the kind of algorithm step.
type StepType string

const (
	InitialGraph         StepType = "initial_graph"
	DualLinesCalculation StepType = "dual_lines_calculation"
	IntervalCheck        StepType = "interval_check"
	IterationStep        StepType = "iteration_step"
	BinarySearch         StepType = "binary_search"
	ComputeCut           StepType = "compute_cut"
)

// DualLine is the dual of a point: y = M*x + B.
type DualLine struct {
	M float64 `json:"m"`
	B float64 `json:"b"`
}

// At evaluates the dual line.
func (d DualLine) At(x float64) float64 { return d.M*x + d.B }

type DualLines struct {
	Red  []DualLine `json:"red"`
	Blue []DualLine `json:"blue"`
}

type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Cut is the cut reported by a compute_cut step. Vertical cuts carry only
// XIntercept.
type Cut struct {
	IsVertical bool     `json:"is_vertical"`
	Slope      *float64 `json:"slope,omitempty"`
	Intercept  *float64 `json:"intercept,omitempty"`
	XIntercept *float64 `json:"x_intercept,omitempty"`
}

// NewCut builds the step cut y = m*x + b.
func NewCut(m, b float64) *Cut { return &Cut{Slope: &m, Intercept: &b} }

// NewVerticalCut builds the step cut x = x0.
func NewVerticalCut(x0 float64) *Cut { return &Cut{IsVertical: true, XIntercept: &x0} }

// Line converts the step cut to a viewport line. Missing fields give an
// invalid line, which draws nothing.
func (c Cut) Line() viewport.Line {
	if c.IsVertical {
		return viewport.Line{IsVertical: true, XIntercept: c.XIntercept}
	}
	return viewport.Line{Slope: c.Slope, Intercept: c.Intercept}
}

// StepData carries whatever a step decided to show; every field is optional.
type StepData struct {
	DualLines               *DualLines       `json:"dualLines,omitempty"`
	IntervalMedians         []viewport.Point `json:"intervalMedians,omitempty"`
	Interval                *Interval        `json:"interval,omitempty"`
	Cut                     *Cut             `json:"cut,omitempty"`
	ChosenSide              string           `json:"chosenSide,omitempty"`
	OddIntersectionProperty *bool            `json:"oddIntersectionProperty,omitempty"`
}

type Step struct {
	ID          int      `json:"id"`
	Type        StepType `json:"type"`
	Description string   `json:"description"`
	Data        StepData `json:"data"`
}

// InitialStep is prepended to every teach sequence so index 0 shows the
// plain input.
func InitialStep() Step {
	return Step{ID: 0, Type: InitialGraph, Description: "Initial Graph"}
}

// DualLinesOf returns the dual lines published by step 1, which later steps
// keep drawing.
func DualLinesOf(seq []Step) *DualLines {
	if len(seq) < 2 {
		return nil
	}
	return seq[1].Data.DualLines
}
