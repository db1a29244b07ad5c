package render

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/uihelpers"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// svg margins around the plot, in pixels
const (
	svgLeft   = 56
	svgRight  = 16
	svgTop    = 32
	svgBottom = 40
)

// SVGPlot returns the plot area SVG uses for a canvas of w x h.
func SVGPlot(w, h int, b viewport.Bounds) Projector {
	return Projector{Plot: image.Rect(svgLeft, svgTop, w-svgRight, h-svgBottom), Bounds: b}
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

func ipt(x, y float64) (int, int) {
	return int(math.Round(x)), int(math.Round(y))
}

// SVG writes the scene as a vector chart.
func SVG(w io.Writer, sc *scene.Scene, opt Options) error {
	opt = opt.withDefaults()
	pal := paletteFor(opt.Dark)
	b := sc.Bounds()
	proj := SVGPlot(opt.Width, opt.Height, b)
	pr := proj.Plot

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opt.Width, opt.Height)
	canvas.Rect(0, 0, opt.Width, opt.Height, "fill:"+svgColor(pal.bg))
	canvas.Rect(pr.Min.X, pr.Min.Y, pr.Dx(), pr.Dy(), "fill:"+svgColor(pal.canvas)+";stroke:"+svgColor(pal.axis))
	if opt.Title != "" {
		canvas.Text(opt.Width/2, 20, opt.Title, "text-anchor:middle;font-family:sans-serif;font-size:14px;fill:"+svgColor(pal.fg))
	}

	gridStyle := fmt.Sprintf("stroke:%s;stroke-opacity:%s;stroke-width:1", svgColor(pal.grid), svgOpacity(pal.grid))
	label := "font-family:sans-serif;font-size:11px;fill:" + svgColor(pal.fg)
	canvas.Gstyle(gridStyle)
	for _, v := range uihelpers.BuildNumericTicks(b.MinX, b.MaxX, tickCount) {
		x, _ := ipt(proj.ToScreen(viewport.Point{X: v, Y: b.MinY}))
		canvas.Line(x, pr.Min.Y, x, pr.Max.Y)
	}
	for _, v := range uihelpers.BuildNumericTicks(b.MinY, b.MaxY, tickCount) {
		_, y := ipt(proj.ToScreen(viewport.Point{X: b.MinX, Y: v}))
		canvas.Line(pr.Min.X, y, pr.Max.X, y)
	}
	canvas.Gend()
	for _, v := range uihelpers.BuildNumericTicks(b.MinX, b.MaxX, tickCount) {
		x, _ := ipt(proj.ToScreen(viewport.Point{X: v, Y: b.MinY}))
		canvas.Text(x, pr.Max.Y+16, uihelpers.FormatNumericTick(v), "text-anchor:middle;"+label)
	}
	for _, v := range uihelpers.BuildNumericTicks(b.MinY, b.MaxY, tickCount) {
		_, y := ipt(proj.ToScreen(viewport.Point{X: b.MinX, Y: v}))
		canvas.Text(pr.Min.X-6, y+4, uihelpers.FormatNumericTick(v), "text-anchor:end;"+label)
	}

	layers := sc.Layers()
	for _, l := range layers {
		st := styleFor(l.Kind)
		canvas.Group(fmt.Sprintf("class=%q", slug(l.Label)))
		if l.Line {
			style := fmt.Sprintf("stroke:%s;stroke-width:%g", svgColor(st.color), st.width)
			for _, s := range visibleSegments(l, b) {
				x1, y1 := ipt(proj.ToScreen(s[0]))
				x2, y2 := ipt(proj.ToScreen(s[1]))
				canvas.Line(x1, y1, x2, y2, style)
			}
		} else {
			for _, p := range l.Points {
				if !proj.InPlot(proj.ToScreen(p)) {
					continue
				}
				x, y := ipt(proj.ToScreen(p))
				fill := pointColor(l, p, st)
				canvas.Circle(x, y, int(st.radius), fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:%s", svgColor(fill), svgOpacity(fill), svgColor(st.color)))
			}
		}
		canvas.Gend()
	}

	x, y := pr.Min.X+10, pr.Min.Y+16
	for _, e := range legendEntries(layers) {
		if e.line {
			canvas.Line(x, y-4, x+16, y-4, fmt.Sprintf("stroke:%s;stroke-width:%g", svgColor(e.style.color), e.style.width))
		} else {
			canvas.Circle(x+8, y-4, 4, fmt.Sprintf("fill:%s;stroke:%s", svgColor(e.style.fill), svgColor(e.style.color)))
		}
		canvas.Text(x+22, y, e.label, label)
		y += 15
	}
	if opt.Caption != "" {
		canvas.Text(8, opt.Height-8, opt.Caption, label)
	}
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write svg")
}
