package render

import (
	"image"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/uihelpers"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// Projector maps world coordinates onto the plot rectangle of a rendered
// image. Y grows upwards in the world and downwards in pixels.
type Projector struct {
	Plot   image.Rectangle
	Bounds viewport.Bounds
}

// ToScreen returns the image pixel position of p.
func (p Projector) ToScreen(pt viewport.Point) (float64, float64) {
	if !p.Bounds.Valid() {
		return float64(p.Plot.Min.X), float64(p.Plot.Max.Y)
	}
	x := float64(p.Plot.Min.X) + (pt.X-p.Bounds.MinX)/p.Bounds.Width()*float64(p.Plot.Dx())
	y := float64(p.Plot.Max.Y) - (pt.Y-p.Bounds.MinY)/p.Bounds.Height()*float64(p.Plot.Dy())
	return x, y
}

// ToWorld is the inverse of ToScreen.
func (p Projector) ToWorld(x, y float64) viewport.Point {
	if p.Plot.Dx() == 0 || p.Plot.Dy() == 0 {
		return viewport.Point{X: p.Bounds.MinX, Y: p.Bounds.MinY}
	}
	return viewport.Point{
		X: p.Bounds.MinX + (x-float64(p.Plot.Min.X))/float64(p.Plot.Dx())*p.Bounds.Width(),
		Y: p.Bounds.MinY + (float64(p.Plot.Max.Y)-y)/float64(p.Plot.Dy())*p.Bounds.Height(),
	}
}

// InPlot reports whether the pixel lies inside the plot rectangle.
func (p Projector) InPlot(x, y float64) bool {
	return x >= float64(p.Plot.Min.X) && x <= float64(p.Plot.Max.X) &&
		y >= float64(p.Plot.Min.Y) && y <= float64(p.Plot.Max.Y)
}

// ViewProjector chains a plot projection with the contain-fit placement of
// the image inside a widget, so hit-tests run in widget coordinates.
type ViewProjector struct {
	Plot Projector
	View uihelpers.ContainRect
}

// NewViewProjector places an image of imgW x imgH inside a view of
// viewW x viewH.
func NewViewProjector(p Projector, imgW, imgH, viewW, viewH float64) ViewProjector {
	return ViewProjector{Plot: p, View: uihelpers.ComputeContainRect(imgW, imgH, viewW, viewH)}
}

func (v ViewProjector) ToScreen(pt viewport.Point) (float64, float64) {
	x, y := v.Plot.ToScreen(pt)
	return v.View.ToView(x, y)
}

func (v ViewProjector) ToWorld(vx, vy float64) viewport.Point {
	x, y := v.View.ToImage(vx, vy)
	return v.Plot.ToWorld(x, y)
}

// InPlot reports whether the widget position lies on the plot area.
func (v ViewProjector) InPlot(vx, vy float64) bool {
	if !v.View.Contains(vx, vy) {
		return false
	}
	x, y := v.View.ToImage(vx, vy)
	return v.Plot.InPlot(x, y)
}
