package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/uihelpers"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// Options control the output of PNG and SVG.
type Options struct {
	Width, Height int
	Dark          bool
	Title         string
	// Caption is drawn over the bottom-left corner of PNG output.
	Caption string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 || o.Height <= 0 {
		w, h := uihelpers.ComputeChartDimensions(o.Width)
		if o.Width <= 0 {
			o.Width = w
		}
		if o.Height <= 0 {
			o.Height = h
		}
	}
	return o
}

const (
	tickCount   = 8
	pointRadius = 6
	medianSize  = 5
	dualPointR  = 6
)

type palette struct {
	bg, canvas, fg, axis, grid drawing.Color
}

var (
	darkPalette = palette{
		bg:     drawing.Color{R: 18, G: 18, B: 18, A: 255},
		canvas: drawing.Color{R: 24, G: 24, B: 24, A: 255},
		fg:     drawing.Color{R: 230, G: 230, B: 230, A: 255},
		axis:   drawing.Color{R: 150, G: 150, B: 150, A: 255},
		grid:   drawing.Color{R: 255, G: 255, B: 255, A: 40},
	}
	lightPalette = palette{
		bg:     drawing.Color{R: 255, G: 255, B: 255, A: 255},
		canvas: drawing.Color{R: 255, G: 255, B: 255, A: 255},
		fg:     drawing.Color{R: 30, G: 30, B: 30, A: 255},
		axis:   drawing.Color{R: 90, G: 90, B: 90, A: 255},
		grid:   drawing.Color{R: 0, G: 0, B: 0, A: 26},
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

var (
	colRed      = drawing.Color{R: 255, G: 99, B: 132, A: 255}
	colBlue     = drawing.Color{R: 54, G: 162, B: 235, A: 255}
	colCut      = drawing.Color{R: 75, G: 192, B: 192, A: 255}
	colInterval = drawing.Color{R: 153, G: 102, B: 255, A: 255}
	colStepCut  = drawing.Color{R: 0, G: 255, B: 127, A: 255}
)

// layerStyle is the look of one layer, shared by the PNG and SVG writers.
type layerStyle struct {
	color  drawing.Color
	fill   drawing.Color
	width  float64
	radius float64
}

func styleFor(k scene.LayerKind) layerStyle {
	switch k {
	case scene.RedPoints:
		return layerStyle{color: colRed, fill: colRed.WithAlpha(128), width: 1, radius: pointRadius}
	case scene.BluePoints:
		return layerStyle{color: colBlue, fill: colBlue.WithAlpha(128), width: 1, radius: pointRadius}
	case scene.FinalCut:
		return layerStyle{color: colCut, width: 2}
	case scene.RedDualLines:
		return layerStyle{color: colRed, width: 1}
	case scene.BlueDualLines:
		return layerStyle{color: colBlue, width: 1}
	case scene.IntervalStart, scene.IntervalEnd:
		return layerStyle{color: colInterval, width: 2}
	case scene.StepCut:
		return layerStyle{color: colStepCut, width: 2}
	case scene.CutDualPoint:
		return layerStyle{color: colStepCut, fill: colStepCut, radius: dualPointR}
	case scene.IntervalMedians:
		return layerStyle{color: colRed, fill: colRed, radius: medianSize}
	}
	return layerStyle{color: drawing.ColorBlack, width: 1, radius: pointRadius}
}

// pointColor returns the fill of a single point; interval medians carry
// their own color.
func pointColor(l scene.Layer, p viewport.Point, st layerStyle) drawing.Color {
	if l.Kind == scene.IntervalMedians && p.Color == viewport.Blue {
		return colBlue
	}
	return st.fill
}

func svgColor(c drawing.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func svgOpacity(c drawing.Color) string {
	return fmt.Sprintf("%.2f", float64(c.A)/255)
}

// legendEntry is one row of the legend.
type legendEntry struct {
	label string
	style layerStyle
	line  bool
}

func legendEntries(layers []scene.Layer) []legendEntry {
	seen := map[string]bool{}
	var out []legendEntry
	for _, l := range layers {
		if seen[l.Label] {
			continue
		}
		seen[l.Label] = true
		out = append(out, legendEntry{label: l.Label, style: styleFor(l.Kind), line: l.Line})
	}
	return out
}

// clipSegment clips the segment a-b to the rectangle of b using the
// Liang-Barsky parametrization. ok is false when nothing is visible.
func clipSegment(a, c viewport.Point, b viewport.Bounds) (viewport.Point, viewport.Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := c.X-a.X, c.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X - b.MinX},
		{dx, b.MaxX - a.X},
		{-dy, a.Y - b.MinY},
		{dy, b.MaxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, c, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, c, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, c, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return viewport.Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
		viewport.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// visibleSegments returns the clipped segments of a line layer.
func visibleSegments(l scene.Layer, b viewport.Bounds) [][2]viewport.Point {
	var out [][2]viewport.Point
	for _, s := range l.Segments() {
		if p1, p2, ok := clipSegment(s[0], s[1], b); ok {
			out = append(out, [2]viewport.Point{p1, p2})
		}
	}
	return out
}
