package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

func boundsCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounds FILE",
		Short: "print the viewport bounds of a point set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := pointset.Load(args[0])
			if err != nil {
				return err
			}
			b := viewport.DefaultBounds
			if viewport.HasPoints(set.Collections()...) {
				b = viewport.ComputeBounds(set.Collections()...)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "x: [%g, %g]\ny: [%g, %g]\n", b.MinX, b.MaxX, b.MinY, b.MaxY)
			return nil
		},
	}
	attachFlags(cmd, nil)
	return cmd
}

func cutCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut FILE",
		Short: "ask the backend for the ham sandwich cut of a point set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			set, err := pointset.Load(args[0])
			if err != nil {
				return err
			}
			line, err := client.Cut(cmd.Context(), set.Red, set.Blue)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line.String())
			return nil
		},
	}
	attachFlags(cmd, nil)
	return cmd
}

// computeScene loads path into a scene and fills in the backend result.
func computeScene(cmd *cobra.Command, path string, teach bool) (*scene.Scene, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	set, err := pointset.Load(path)
	if err != nil {
		return nil, err
	}
	sc := scene.New()
	sc.HoverThreshold = cfg.HoverThreshold
	sc.SetPoints(set)
	sc.SetTeachMode(teach)
	req, ok := sc.Request()
	if !ok {
		return nil, backend.ErrEmptyPointSet
	}
	if teach {
		seq, err := client.Teach(cmd.Context(), req.Red, req.Blue)
		if err != nil {
			return nil, err
		}
		sc.ApplySteps(req.Generation, seq)
	} else {
		line, err := client.Cut(cmd.Context(), req.Red, req.Blue)
		if err != nil {
			return nil, err
		}
		sc.ApplyCut(req.Generation, line)
	}
	return sc, nil
}

func renderCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "render the cut, or every teach step, as PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := computeScene(cmd, args[0], teachFlag)
			if err != nil {
				return err
			}
			opt := render.Options{Dark: darkFlag}
			if !teachFlag {
				if outFlag == "" {
					return errors.New("render: --output is required")
				}
				opt.Title = "Ham Sandwich Cut"
				if err := render.WriteFile(outFlag, sc, opt); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), outFlag)
				return nil
			}
			dir := outDirFlag
			if dir == "" {
				dir = "."
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(err, "create out dir")
			}
			for i, st := range sc.Steps() {
				sc.StepTo(i)
				opt.Title = fmt.Sprintf("Step %d of %d: %s", i+1, len(sc.Steps()), st.Description)
				path := filepath.Join(dir, fmt.Sprintf("step_%02d.png", i))
				if err := render.WriteFile(path, sc, opt); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			logging.Infof("[hsctl] rendered %d steps into %s", len(sc.Steps()), dir)
			return nil
		},
	}
	attachFlags(cmd, []string{"output", "out-dir", "teach", "dark"})
	return cmd
}

func randomCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "generate a random point set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rng *rand.Rand
			if seedFlag != 0 {
				rng = rand.New(rand.NewSource(seedFlag))
			}
			set := pointset.Random(pointset.ClampCount(redFlag), pointset.ClampCount(blueFlag), rng)
			if outFlag == "" {
				return pointset.EncodeJSON(cmd.OutOrStdout(), set)
			}
			if err := pointset.Save(outFlag, set); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outFlag)
			return nil
		},
	}
	attachFlags(cmd, []string{"output", "red", "blue", "seed"})
	return cmd
}

func sampleCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "sample csv|json|excel",
		Short:     "download a sample point-set file from the backend",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(backend.SampleCSV), string(backend.SampleJSON), string(backend.SampleExcel)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			kind := backend.SampleKind(strings.ToLower(args[0]))
			data, err := client.SampleFile(cmd.Context(), kind)
			if err != nil {
				return err
			}
			path := outFlag
			if path == "" {
				path = "sample." + kind.Extension()
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	attachFlags(cmd, []string{"output"})
	return cmd
}
