package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
	"github.com/ChristoforosMylona/ham-sandwich-cut/test/mock"
)

func sampleSet() pointset.Set {
	return pointset.Set{
		Red:  []viewport.Point{{X: 2, Y: 2}, {X: 8, Y: 7}},
		Blue: []viewport.Point{{X: 2, Y: 8}, {X: 7, Y: 3}},
	}
}

func TestTruncatePath(t *testing.T) {
	short := "/tmp/points.json"
	if got := truncatePath(short, 60); got != short {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/home/someone/projects/geometry/datasets/2024/experiments/points_final.json"
	got := truncatePath(long, 40)
	if len(got) > 40 {
		t.Fatalf("expected at most 40 chars, got %d (%q)", len(got), got)
	}
	if !strings.HasSuffix(got, "points_final.json") {
		t.Fatalf("file name must survive truncation: %q", got)
	}
	if got := truncatePath("/a/"+strings.Repeat("x", 50)+".csv", 20); !strings.HasPrefix(got, "...") {
		t.Fatalf("very long names keep only the base: %q", got)
	}
}

func TestStatusText(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&backend.APIError{Status: 400, Message: "Invalid input"}, "Error: Invalid input"},
		{errors.Wrap(&backend.APIError{Status: 500, Message: "boom"}, "cut"), "Error: boom"},
		{&backend.APIError{Status: 404}, "Error: backend: Not Found"},
		{errors.Wrap(backend.ErrEmptyPointSet, "cut"), "Add at least one red and one blue point."},
		{errors.New("dial tcp: connection refused"), "Error: could not reach the backend"},
	}
	for _, c := range cases {
		if got := statusText(c.err); got != c.want {
			t.Fatalf("statusText(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestApplyResultDropsStaleGenerations(t *testing.T) {
	sc := scene.New()
	sc.SetPoints(sampleSet())
	old := sc.Generation()
	sc.SetPoints(sampleSet())
	if applyResult(sc, computeResult{gen: old, line: viewport.NewLine(1, 0)}) {
		t.Fatalf("stale cut must be dropped")
	}
	if sc.Cut() != nil {
		t.Fatalf("stale cut leaked into the scene")
	}
	if !applyResult(sc, computeResult{gen: sc.Generation(), line: viewport.NewLine(0, 5)}) {
		t.Fatalf("current cut must be applied")
	}
	if sc.Cut() == nil || sc.Cut().String() != "y = 0.00x + 5.00" {
		t.Fatalf("unexpected cut: %v", sc.Cut())
	}
	if !applyResult(sc, computeResult{gen: sc.Generation(), err: errors.New("down")}) || sc.Err() == nil {
		t.Fatalf("current error must be recorded")
	}
}

func TestChartTitle(t *testing.T) {
	sc := scene.New()
	if got := chartTitle(sc); got != "Ham Sandwich Cut" {
		t.Fatalf("got %q", got)
	}
	sc.SetPoints(sampleSet())
	sc.SetTeachMode(true)
	if got := chartTitle(sc); got != "Teach Mode" {
		t.Fatalf("teach mode without steps: %q", got)
	}
	sc.ApplySteps(sc.Generation(), []steps.Step{steps.InitialStep(), {ID: 1, Type: steps.ComputeCut, Description: "Compute the cut"}})
	sc.Last()
	if got := chartTitle(sc); got != "Step 2 of 2: Compute the cut" {
		t.Fatalf("got %q", got)
	}
}

func TestHoverTextOnRenderedChart(t *testing.T) {
	sc := scene.New()
	sc.SetPoints(sampleSet())
	sc.ApplyCut(sc.Generation(), viewport.NewLine(0, 5))
	f, err := render.PNG(sc, render.Options{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// widget twice the image size: coordinates scale by 2
	proj := render.NewViewProjector(f.Plot, 800, 600, 1600, 1200)
	x, y := proj.ToScreen(viewport.Point{X: 4, Y: 5})
	if got := hoverText(sc, proj, x, y+6); got != "Ham Sandwich Cut: y = 0.00x + 5.00" {
		t.Fatalf("cut hover: %q", got)
	}
	x, y = proj.ToScreen(viewport.Point{X: 2, Y: 2})
	if got := hoverText(sc, proj, x+3, y); got != "Red Points: (2.00, 2.00)" {
		t.Fatalf("point hover: %q", got)
	}
	x, y = proj.ToScreen(viewport.Point{X: 5, Y: 9})
	if got := hoverText(sc, proj, x, y); got != "" {
		t.Fatalf("empty area should not hover, got %q", got)
	}
}

func TestRunScreenshotsMode(t *testing.T) {
	srv := mock.NewServer(mock.Options{
		Cut: mock.Cut{Slope: 0, YIntercept: 5},
		Steps: []steps.Step{
			{ID: 1, Type: steps.DualLinesCalculation, Description: "Dual lines", Data: steps.StepData{
				DualLines: &steps.DualLines{Red: []steps.DualLine{{M: 2, B: -2}}, Blue: []steps.DualLine{{M: 7, B: -3}}},
			}},
			{ID: 2, Type: steps.ComputeCut, Description: "Cut", Data: steps.StepData{Cut: steps.NewCut(0, 5)}},
		},
	})
	defer srv.Close()

	dir := t.TempDir()
	client := backend.NewClient(srv.URL, backend.Default, 0)
	written, err := RunScreenshotsMode(context.Background(), client, sampleSet(), dir, true)
	if err != nil {
		t.Fatalf("screenshots: %v", err)
	}
	want := []string{"cut.png", "step_00.png", "step_01.png", "step_02.png"}
	if len(written) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), written)
	}
	for i, name := range want {
		if filepath.Base(written[i]) != name {
			t.Fatalf("file %d: got %s want %s", i, written[i], name)
		}
		st, err := os.Stat(filepath.Join(dir, name))
		if err != nil || st.Size() == 0 {
			t.Fatalf("missing or empty %s: %v", name, err)
		}
	}
	if srv.Count("/teach-ham-sandwich-viz/") != 1 || srv.Count("/ham-sandwich-viz/") != 1 {
		t.Fatalf("expected one cut and one teach call")
	}
}

func TestRunScreenshotsModeEmptySet(t *testing.T) {
	_, err := RunScreenshotsMode(context.Background(), backend.NewClient("http://127.0.0.1:1", backend.Default, 0), pointset.Set{}, t.TempDir(), false)
	if errors.Cause(err) != backend.ErrEmptyPointSet {
		t.Fatalf("expected empty point set error, got %v", err)
	}
}
