package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/uihelpers"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// off disables a stroke or dot in a go-chart style; zero would inherit the
// series default instead.
const off = -1

// Frame is a rendered chart together with the projection of its plot area.
type Frame struct {
	Image image.Image
	Plot  Projector
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col chart.Style, radius float64) chart.Style {
	col.StrokeWidth = off
	col.DotWidth = radius
	return col
}

func lineStyle(st layerStyle) chart.Style {
	return chart.Style{StrokeColor: st.color, StrokeWidth: st.width, DotWidth: off}
}

// frameSeries spans the bounds without drawing anything. go-chart refuses
// to render a chart without series, and the empty canvas still needs axes.
func frameSeries(b viewport.Bounds) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{b.MinX, b.MaxX},
		YValues: []float64{b.MinY, b.MaxY},
		Style:   chart.Style{StrokeWidth: off, DotWidth: off},
	}
}

func layerSeries(l scene.Layer, b viewport.Bounds) []chart.Series {
	st := styleFor(l.Kind)
	if l.Line {
		var out []chart.Series
		for _, s := range visibleSegments(l, b) {
			out = append(out, chart.ContinuousSeries{
				Name:    l.Label,
				XValues: []float64{s[0].X, s[1].X},
				YValues: []float64{s[0].Y, s[1].Y},
				Style:   lineStyle(st),
			})
		}
		return out
	}
	// one series per fill color keeps per-point colors without a color provider
	groups := map[[4]uint8]*chart.ContinuousSeries{}
	var order [][4]uint8
	for _, p := range l.Points {
		c := pointColor(l, p, st)
		key := [4]uint8{c.R, c.G, c.B, c.A}
		cs, ok := groups[key]
		if !ok {
			cs = &chart.ContinuousSeries{
				Name:  l.Label,
				Style: pointStyle(chart.Style{DotColor: c}, st.radius),
			}
			groups[key] = cs
			order = append(order, key)
		}
		cs.XValues = append(cs.XValues, p.X)
		cs.YValues = append(cs.YValues, p.Y)
	}
	out := make([]chart.Series, 0, len(order))
	for _, k := range order {
		cs := groups[k]
		if len(cs.XValues) == 1 {
			// go-chart needs two values per series
			cs.XValues = append(cs.XValues, cs.XValues[0])
			cs.YValues = append(cs.YValues, cs.YValues[0])
		}
		out = append(out, *cs)
	}
	return out
}

func axisTicks(min, max float64) []chart.Tick {
	vals := uihelpers.BuildNumericTicks(min, max, tickCount)
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
	}
	return ticks
}

// legend draws one row per layer label in the top-left corner of the plot.
func legend(entries []legendEntry, pal palette) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}
		st := chart.Style{FontSize: 9, FontColor: pal.fg}.InheritFrom(defaults)
		x, y := cb.Left+10, cb.Top+16
		for _, e := range entries {
			if e.line {
				r.SetStrokeColor(e.style.color)
				r.SetStrokeWidth(e.style.width)
				r.MoveTo(x, y-4)
				r.LineTo(x+16, y-4)
				r.Stroke()
			} else {
				r.SetFillColor(e.style.fill)
				r.SetStrokeColor(e.style.color)
				r.SetStrokeWidth(1)
				r.Circle(4, x+8, y-4)
				r.FillStroke()
			}
			st.WriteTextOptionsToRenderer(r)
			r.Text(e.label, x+22, y)
			y += 15
		}
	}
}

// PNG renders the scene with go-chart. The returned projector describes
// where go-chart placed the plot area, for hit-testing on the image.
func PNG(sc *scene.Scene, opt Options) (Frame, error) {
	opt = opt.withDefaults()
	pal := paletteFor(opt.Dark)
	b := sc.Bounds()
	layers := sc.Layers()

	series := []chart.Series{frameSeries(b)}
	for _, l := range layers {
		series = append(series, layerSeries(l, b)...)
	}
	axis := chart.Style{FontColor: pal.fg, StrokeColor: pal.axis, FontSize: 9}
	grid := chart.Style{StrokeColor: pal.grid, StrokeWidth: 1}
	padBottom := 16
	if strings.TrimSpace(opt.Caption) != "" {
		padBottom += 18
	}
	ch := chart.Chart{
		Title:      opt.Title,
		TitleStyle: chart.Style{FontColor: pal.fg},
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{FillColor: pal.bg, Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: padBottom}},
		Canvas:     chart.Style{FillColor: pal.canvas},
		XAxis: chart.XAxis{
			Range:          &chart.ContinuousRange{Min: b.MinX, Max: b.MaxX},
			Ticks:          axisTicks(b.MinX, b.MaxX),
			Style:          axis,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: b.MinY, Max: b.MaxY},
			Ticks:          axisTicks(b.MinY, b.MaxY),
			Style:          axis,
			GridMajorStyle: grid,
		},
		Series: series,
	}
	var plot chart.Box
	ch.Elements = []chart.Renderable{
		func(_ chart.Renderer, cb chart.Box, _ chart.Style) { plot = cb },
		legend(legendEntries(layers), pal),
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return Frame{}, errors.Wrap(err, "render chart")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return Frame{}, errors.Wrap(err, "decode chart")
	}
	if opt.Caption != "" {
		img = drawCaption(img, opt.Caption, pal)
	}
	return Frame{
		Image: img,
		Plot:  Projector{Plot: image.Rect(plot.Left, plot.Top, plot.Right, plot.Bottom), Bounds: b},
	}, nil
}

// Render is PNG with a blank fallback so the UI visibly updates even when
// go-chart fails.
func Render(sc *scene.Scene, opt Options) Frame {
	f, err := PNG(sc, opt)
	if err != nil {
		opt = opt.withDefaults()
		logging.Warnf("[render] chart render error: %v; showing blank fallback", err)
		return Frame{Image: blank(opt.Width, opt.Height, opt.Dark), Plot: Projector{Bounds: sc.Bounds()}}
	}
	return f
}

// WritePNG encodes the rendered scene to w.
func WritePNG(w io.Writer, sc *scene.Scene, opt Options) error {
	f, err := PNG(sc, opt)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, f.Image), "encode png")
}

// captionHeight is the height of the strip drawCaption paints over the
// bottom of the chart.
const captionHeight = 20

func opaque(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// drawCaption paints a strip in the palette's canvas color along the bottom
// edge, separated by an axis-colored rule, and writes text into it.
func drawCaption(img image.Image, text string, pal palette) image.Image {
	text = strings.TrimSpace(text)
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	top := b.Max.Y - captionHeight
	if top < b.Min.Y {
		top = b.Min.Y
	}
	draw.Draw(out, image.Rect(b.Min.X, top, b.Max.X, b.Max.Y), image.NewUniform(opaque(pal.canvas)), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(b.Min.X, top, b.Max.X, top+1), image.NewUniform(opaque(pal.axis)), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	baseline := top + (captionHeight+face.Metrics().Ascent.Ceil())/2
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(opaque(pal.fg)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(b.Min.X + 8), Y: fixed.I(baseline)},
	}
	d.DrawString(text)
	return out
}

func blank(w, h int, dark bool) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opaque(paletteFor(dark).bg)), image.Point{}, draw.Src)
	return img
}
