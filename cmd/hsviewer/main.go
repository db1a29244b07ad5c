package main

import (
	"context"
	"fmt"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/config"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
)

func main() {
	fs := pflag.NewFlagSet("hsviewer", pflag.ExitOnError)
	config.AttachFlags(fs)
	fileFlag := fs.String("file", "", "point-set file to open (.json, .csv, .xlsx, .yaml)")
	shotsDir := fs.String("screenshots", "", "render the cut and teach steps as PNGs into this directory and exit")
	_ = fs.Parse(os.Args[1:])

	cfgPath, _ := fs.GetString("config")
	cfg, err := config.Load(cfgPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.SetLogLevel(cfg.LogLevel)

	if *shotsDir != "" {
		if err := screenshots(cfg, *fileFlag, *shotsDir); err != nil {
			logging.Errorf("[viewer] screenshots: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.hamsandwich.viewer")
	if cfg.Dark {
		a.Settings().SetTheme(&darkTheme{})
	}
	w := a.NewWindow("Ham Sandwich Cut Viewer")
	w.Resize(fyne.NewSize(1100, 850))

	state := newState(cfg)
	state.app = a
	state.window = w
	teach := loadPrefs(state)
	if *fileFlag != "" {
		state.filePath = *fileFlag
	}

	// top bar controls
	state.fileLabel = widget.NewLabel(truncatePath(state.filePath, 60))
	state.redLabel = widget.NewLabel(fmt.Sprintf("%d", state.redCount))
	state.blueLabel = widget.NewLabel(fmt.Sprintf("%d", state.blueCount))
	counter := func(n *int, lbl *widget.Label, delta int) func() {
		return func() {
			v := pointset.ClampCount(*n + delta)
			if v == *n {
				return
			}
			*n = v
			lbl.SetText(fmt.Sprintf("%d", v))
			savePrefs(state)
			randomise(state)
		}
	}
	redRow := container.NewHBox(widget.NewLabel("Red:"),
		widget.NewButton("-", counter(&state.redCount, state.redLabel, -1)), state.redLabel,
		widget.NewButton("+", counter(&state.redCount, state.redLabel, 1)))
	blueRow := container.NewHBox(widget.NewLabel("Blue:"),
		widget.NewButton("-", counter(&state.blueCount, state.blueLabel, -1)), state.blueLabel,
		widget.NewButton("+", counter(&state.blueCount, state.blueLabel, 1)))

	algNames := make([]string, len(backend.Algorithms))
	for i, alg := range backend.Algorithms {
		algNames[i] = string(alg)
	}
	// Create widgets without callbacks first; they are wired after the canvas exists
	state.algSelect = widget.NewSelect(algNames, nil)
	state.algSelect.Selected = string(state.algorithm)
	state.teachChk = widget.NewCheck("Teach Mode", nil)
	state.teachChk.SetChecked(teach)
	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	top := container.NewVBox(
		container.NewHBox(
			widget.NewButton("Open…", func() { openFileDialog(state) }),
			widget.NewButton("Save…", func() { saveFileDialog(state) }),
			state.fileLabel,
		),
		container.NewHBox(
			redRow, blueRow,
			widget.NewButton("Randomise", func() { randomise(state) }),
			widget.NewLabel("Algorithm:"), state.algSelect,
			state.teachChk, hintsChk,
		),
	)

	// step navigation, visible in teach mode only
	state.stepLabel = widget.NewLabel("")
	step := func(move func()) func() {
		return func() { move(); redrawChart(state) }
	}
	state.navButtons = []*widget.Button{
		widget.NewButton("First", step(state.sc.First)),
		widget.NewButton("Prev", step(state.sc.Prev)),
		widget.NewButton("Next", step(state.sc.Next)),
		widget.NewButton("Last", step(state.sc.Last)),
	}
	nav := container.NewHBox()
	for _, b := range state.navButtons {
		nav.Add(b)
	}
	nav.Add(state.stepLabel)
	state.navBox = nav
	nav.Hide()

	state.statusLabel = widget.NewLabel("")
	state.statusLabel.Hide()

	state.imgCanvas = canvas.NewImageFromImage(nil)
	state.imgCanvas.FillMode = canvas.ImageFillContain
	state.overlay = newChartOverlay(state)
	chartArea := container.NewStack(state.imgCanvas, state.overlay)

	content := container.NewBorder(top, container.NewVBox(nav, state.statusLabel), nil, nil, chartArea)
	w.SetContent(content)
	buildMenus(state)

	// Redraw on window resize so the chart scales with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			if state.cancel != nil {
				state.cancel()
			}
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawChart(state) })
					}
				}
			}
		}()
	}

	// Now that the canvas is ready, assign callbacks
	state.algSelect.OnChanged = func(v string) {
		alg, err := backend.ParseAlgorithm(v)
		if err != nil || alg == state.algorithm {
			return
		}
		state.algorithm = alg
		savePrefs(state)
		requestCompute(state)
	}
	state.teachChk.OnChanged = func(b bool) {
		state.sc.SetTeachMode(b)
		savePrefs(state)
		redrawChart(state)
		requestCompute(state)
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawChart(state)
	}

	state.sc.SetTeachMode(teach)
	if state.filePath != "" {
		loadPointFile(state, state.filePath)
	}
	// missing or unreadable last file: start from random points
	if state.sc.Points().Empty() {
		randomise(state)
	}
	w.ShowAndRun()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	rebuild := func() { buildMenus(state) }
	recentMenu := fyne.NewMenu("Open Recent", recentMenuItems(state, rebuild)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Save Points…", func() { saveFileDialog(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart PNG…", func() { exportChartPNG(state) }),
		fyne.NewMenuItem("Export Chart SVG…", func() { exportChartSVG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	sampleMenu := fyne.NewMenu("Samples",
		fyne.NewMenuItem("Download CSV Sample…", func() { downloadSample(state, backend.SampleCSV) }),
		fyne.NewMenuItem("Download JSON Sample…", func() { downloadSample(state, backend.SampleJSON) }),
		fyne.NewMenuItem("Download Excel Sample…", func() { downloadSample(state, backend.SampleExcel) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu, sampleMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { saveFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { saveFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// screenshots loads file (or random points) and writes the headless renders.
func screenshots(cfg *config.Config, file, outDir string) error {
	alg, err := backend.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}
	set := pointset.Random(cfg.RedCount, cfg.BlueCount, nil)
	if file != "" {
		if set, err = pointset.Load(file); err != nil {
			return err
		}
	}
	_, err = RunScreenshotsMode(context.Background(), backend.NewClient(cfg.BackendURL, alg, cfg.Timeout), set, outDir, cfg.Dark)
	return err
}
