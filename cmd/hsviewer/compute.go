package main

import (
	"context"
	"fmt"
	"time"

	fyne "fyne.io/fyne/v2"
	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// calcIndicatorDelay keeps fast answers from flashing the indicator.
const calcIndicatorDelay = 500 * time.Millisecond

// computeResult is one backend answer, tagged with the generation it was
// requested for.
type computeResult struct {
	gen  uint64
	line viewport.Line
	seq  []steps.Step
	err  error
}

// runCompute performs the backend call for req; it blocks.
func runCompute(ctx context.Context, c backend.Client, req scene.Request) computeResult {
	res := computeResult{gen: req.Generation}
	if req.Teach {
		res.seq, res.err = c.Teach(ctx, req.Red, req.Blue)
	} else {
		res.line, res.err = c.Cut(ctx, req.Red, req.Blue)
	}
	return res
}

// applyResult stores a backend answer unless its generation is stale. It
// reports whether the scene changed.
func applyResult(sc *scene.Scene, res computeResult) bool {
	if res.err != nil {
		return sc.ApplyError(res.gen, res.err)
	}
	if res.seq != nil {
		return sc.ApplySteps(res.gen, res.seq)
	}
	return sc.ApplyCut(res.gen, res.line)
}

// requestCompute sends the current points to the backend. Earlier requests
// are cancelled; their answers would be dropped as stale anyway.
func requestCompute(state *uiState) {
	if state.cancel != nil {
		state.cancel()
		state.cancel = nil
	}
	req, ok := state.sc.Request()
	if !ok {
		state.pending = 0
		setStatus(state, "")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	state.cancel = cancel
	state.pending = req.Generation
	client := *state.client
	client.Algorithm = state.algorithm

	indicator := time.AfterFunc(calcIndicatorDelay, func() {
		fyne.Do(func() {
			if state.pending == req.Generation {
				setStatus(state, "Calculating…")
			}
		})
	})
	go func() {
		defer logging.TimeTrack(time.Now(), fmt.Sprintf("[viewer] compute gen=%d teach=%v", req.Generation, req.Teach))
		res := runCompute(ctx, client, req)
		indicator.Stop()
		fyne.Do(func() { finishCompute(state, res) })
	}()
}

func finishCompute(state *uiState, res computeResult) {
	if !applyResult(state.sc, res) {
		logging.Debugf("[viewer] dropped stale result gen=%d", res.gen)
		return
	}
	if state.pending == res.gen {
		state.pending = 0
	}
	if res.err != nil {
		logging.Warnf("[viewer] compute failed: %v", res.err)
		setStatus(state, statusText(res.err))
		return
	}
	setStatus(state, "")
	redrawChart(state)
}

// statusText turns a compute error into the short text under the chart.
func statusText(err error) string {
	var apiErr *backend.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		if apiErr.Message == "" {
			return "Error: " + apiErr.Error()
		}
		return "Error: " + apiErr.Message
	case errors.Cause(err) == backend.ErrEmptyPointSet:
		return "Add at least one red and one blue point."
	default:
		return "Error: could not reach the backend"
	}
}

func setStatus(state *uiState, text string) {
	if state.statusLabel == nil {
		return
	}
	state.statusLabel.SetText(text)
	if text == "" {
		state.statusLabel.Hide()
	} else {
		state.statusLabel.Show()
	}
}

// randomise replaces both sets with fresh random points and recomputes.
func randomise(state *uiState) {
	state.sc.SetPoints(pointset.Random(state.redCount, state.blueCount, nil))
	state.filePath = ""
	if state.fileLabel != nil {
		state.fileLabel.SetText("")
	}
	redrawChart(state)
	requestCompute(state)
}
