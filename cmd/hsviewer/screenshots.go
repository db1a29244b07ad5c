package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
)

// RunScreenshotsMode renders the final cut and every teach step for set and
// writes them as PNGs under outDir. It runs headlessly without creating a UI
// window.
func RunScreenshotsMode(ctx context.Context, client *backend.Client, set pointset.Set, outDir string, dark bool) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create out dir")
	}
	var written []string
	write := func(name string, sc *scene.Scene, title string) error {
		path := filepath.Join(outDir, name)
		w, h := chartSize(nil)
		if err := render.WriteFile(path, sc, render.Options{Width: w, Height: h, Dark: dark, Title: title}); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	sc := scene.New()
	sc.SetPoints(set)
	req, ok := sc.Request()
	if !ok {
		return nil, backend.ErrEmptyPointSet
	}
	res := runCompute(ctx, *client, req)
	if !applyResult(sc, res) || res.err != nil {
		return written, errors.Wrap(res.err, "compute cut")
	}
	if err := write("cut.png", sc, chartTitle(sc)); err != nil {
		return written, err
	}

	sc.SetTeachMode(true)
	req, _ = sc.Request()
	res = runCompute(ctx, *client, req)
	if !applyResult(sc, res) || res.err != nil {
		return written, errors.Wrap(res.err, "compute steps")
	}
	for i := range sc.Steps() {
		sc.StepTo(i)
		if err := write(fmt.Sprintf("step_%02d.png", i), sc, chartTitle(sc)); err != nil {
			return written, err
		}
	}
	logging.Infof("[viewer] wrote %d screenshots to %s", len(written), outDir)
	return written, nil
}
