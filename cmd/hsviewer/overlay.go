package main

import (
	"image/color"
	"math"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
)

// chartOverlay sits on top of the chart image. It shows the cut-line
// tooltip and point tooltips on hover and lets input points be dragged.
type chartOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
	text     string

	drag     *scene.Ref
	dragging bool
}

func newChartOverlay(state *uiState) *chartOverlay {
	c := &chartOverlay{state: state}
	c.ExtendBaseWidget(c)
	return c
}

// projector maps world points into this widget's coordinates.
func (c *chartOverlay) projector() (render.ViewProjector, bool) {
	img := c.state.frame.Image
	if img == nil {
		return render.ViewProjector{}, false
	}
	size := c.Size()
	b := img.Bounds()
	return render.NewViewProjector(c.state.frame.Plot, float64(b.Dx()), float64(b.Dy()), float64(size.Width), float64(size.Height)), true
}

// hoverText runs the cut hit-test at (px,py) and falls back to the tooltip
// of the nearest visible scatter point.
func hoverText(sc *scene.Scene, proj render.ViewProjector, px, py float64) string {
	if h := sc.HitTest(px, py, proj); h.Active {
		return h.Label
	}
	best, bestD := "", math.Inf(1)
	for _, l := range sc.Layers() {
		if l.Line {
			continue
		}
		for i, p := range l.Points {
			x, y := proj.ToScreen(p)
			if !proj.InPlot(x, y) {
				continue
			}
			if d := math.Hypot(px-x, py-y); d < sc.PointRadius && d < bestD {
				best, bestD = sc.Tooltip(l, i), d
			}
		}
	}
	return best
}

func (c *chartOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	return &overlayRenderer{c: c, bg: bg, labelBG: labelBG, label: label, objs: []fyne.CanvasObject{bg, labelBG, label}}
}

type overlayRenderer struct {
	c       *chartOverlay
	bg      *canvas.Rectangle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *overlayRenderer) Destroy() {}

func (r *overlayRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.c.hovering || r.c.text == "" || r.c.dragging {
		r.label.Segments = nil
		r.labelBG.Resize(fyne.NewSize(0, 0))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
		return
	}
	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: r.c.text}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := r.c.mouse.X+12, r.c.mouse.Y+12
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = r.c.mouse.Y - bgH - 4
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *overlayRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *overlayRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *overlayRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.bg.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}

func (c *chartOverlay) MouseMoved(ev *desktop.MouseEvent) {
	c.hovering = true
	c.mouse = ev.Position
	c.text = ""
	if proj, ok := c.projector(); ok {
		c.text = hoverText(c.state.sc, proj, float64(ev.Position.X), float64(ev.Position.Y))
	}
	c.Refresh()
}

func (c *chartOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *chartOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

// Dragged moves the point picked up at the start of the gesture.
func (c *chartOverlay) Dragged(ev *fyne.DragEvent) {
	proj, ok := c.projector()
	if !ok {
		return
	}
	if !c.dragging {
		c.dragging = true
		start := ev.Position.Subtract(ev.Dragged)
		if ref, found := c.state.sc.PointAt(float64(start.X), float64(start.Y), proj); found {
			c.drag = &ref
		}
	}
	if c.drag == nil {
		return
	}
	w := proj.ToWorld(float64(ev.Position.X), float64(ev.Position.Y))
	if c.state.sc.MovePoint(*c.drag, w.X, w.Y) {
		c.mouse = ev.Position
		redrawChart(c.state)
	}
}

// DragEnd asks the backend for a new cut once the point is dropped.
func (c *chartOverlay) DragEnd() {
	moved := c.drag != nil
	c.drag = nil
	c.dragging = false
	if moved {
		requestCompute(c.state)
	}
	c.Refresh()
}

var (
	_ desktop.Hoverable = (*chartOverlay)(nil)
	_ fyne.Draggable    = (*chartOverlay)(nil)
)
