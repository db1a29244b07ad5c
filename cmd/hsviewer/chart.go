package main

import (
	"bytes"
	"fmt"
	png "image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/uihelpers"
)

// chartSize computes a chart size based on the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return uihelpers.ComputeChartDimensions(900)
	}
	sz := state.window.Canvas().Size()
	// Use ~95% of the available width, minus a small margin for padding
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

// chartTitle names the step being shown in teach mode.
func chartTitle(sc *scene.Scene) string {
	if !sc.TeachMode() {
		return "Ham Sandwich Cut"
	}
	st, ok := sc.CurrentStep()
	if !ok {
		return "Teach Mode"
	}
	return fmt.Sprintf("Step %d of %d: %s", sc.StepIndex()+1, len(sc.Steps()), st.Description)
}

const hintText = "Hint: drag a point to move it; hover the cut line to read its equation."

func renderOptions(state *uiState) render.Options {
	w, h := chartSize(state)
	opt := render.Options{Width: w, Height: h, Dark: state.dark, Title: chartTitle(state.sc)}
	if state.showHints {
		opt.Caption = hintText
	}
	return opt
}

func redrawChart(state *uiState) {
	state.frame = render.Render(state.sc, renderOptions(state))
	if state.imgCanvas != nil {
		state.imgCanvas.Image = state.frame.Image
		cw, chh := chartSize(state)
		state.imgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
		state.imgCanvas.Refresh()
	}
	// also refresh overlay so hover rebinds to the new plot rect
	if state.overlay != nil {
		state.overlay.Refresh()
	}
	updateStepControls(state)
}

// updateStepControls shows the navigation row only in teach mode and
// disables buttons at the ends of the sequence.
func updateStepControls(state *uiState) {
	if state.stepLabel == nil {
		return
	}
	sc := state.sc
	if !sc.TeachMode() || len(sc.Steps()) == 0 {
		state.navBox.Hide()
		return
	}
	state.navBox.Show()
	st, _ := sc.CurrentStep()
	state.stepLabel.SetText(fmt.Sprintf("%d / %d  %s", sc.StepIndex()+1, len(sc.Steps()), st.Description))
	atStart := sc.StepIndex() == 0
	atEnd := sc.StepIndex() == len(sc.Steps())-1
	for i, b := range state.navButtons {
		if (i < 2 && atStart) || (i >= 2 && atEnd) {
			b.Disable()
		} else {
			b.Enable()
		}
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	if state.frame.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	img := state.frame.Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("ham_sandwich_cut.png")
	fs.Show()
}

func exportChartSVG(state *uiState) {
	var buf bytes.Buffer
	if err := render.SVG(&buf, state.sc, renderOptions(state)); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if _, err := wc.Write(buf.Bytes()); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("ham_sandwich_cut.svg")
	fs.Show()
}
