package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
// The plot is kept close to square so both axes share a scale.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 600 {
		w = 600
	}
	if w > 1600 {
		w = 1600
	}
	h := int(float32(w) * 0.75)
	if h < 450 {
		h = 450
	}
	if h > 900 {
		h = 900
	}
	return w, h
}

// ContainRect is where an image of size imgW x imgH lands when drawn with
// contain-fit scaling inside a view of size viewW x viewH.
type ContainRect struct {
	X, Y, W, H float64
	Scale      float64
}

// ComputeContainRect centers the scaled image inside the view.
func ComputeContainRect(imgW, imgH, viewW, viewH float64) ContainRect {
	if imgW <= 0 || imgH <= 0 {
		return ContainRect{W: viewW, H: viewH, Scale: 1}
	}
	scale := viewW / imgW
	if sy := viewH / imgH; sy < scale {
		scale = sy
	}
	w, h := imgW*scale, imgH*scale
	return ContainRect{X: (viewW - w) / 2, Y: (viewH - h) / 2, W: w, H: h, Scale: scale}
}

// ToView maps image pixels to view coordinates.
func (c ContainRect) ToView(x, y float64) (float64, float64) {
	return c.X + x*c.Scale, c.Y + y*c.Scale
}

// ToImage maps view coordinates back to image pixels.
func (c ContainRect) ToImage(vx, vy float64) (float64, float64) {
	if c.Scale == 0 {
		return vx, vy
	}
	return (vx - c.X) / c.Scale, (vy - c.Y) / c.Scale
}

// Contains reports whether the view point lies on the drawn image.
func (c ContainRect) Contains(vx, vy float64) bool {
	return vx >= c.X && vx <= c.X+c.W && vy >= c.Y && vy <= c.Y+c.H
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using the 1,2,2.5,5 pattern.
// Only ticks inside [min,max] are returned so they never land outside the plot.
// Label formatting is left to the caller.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Floor(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	var out []float64
	for v := start; v <= max+bestStep*1e-9; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick provides a compact label; integers print without decimals.
func FormatNumericTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
