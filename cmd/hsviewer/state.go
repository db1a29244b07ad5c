package main

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/config"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/render"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    *config.Config
	client *backend.Client
	sc     *scene.Scene

	filePath  string
	redCount  int
	blueCount int
	algorithm backend.Algorithm
	dark      bool
	showHints bool

	// pending is the generation of the request in flight, 0 when idle
	pending uint64
	cancel  context.CancelFunc

	frame     render.Frame
	imgCanvas *canvas.Image
	overlay   *chartOverlay

	redLabel    *widget.Label
	blueLabel   *widget.Label
	teachChk    *widget.Check
	algSelect   *widget.Select
	statusLabel *widget.Label
	stepLabel   *widget.Label
	navBox      fyne.CanvasObject
	navButtons  []*widget.Button
	fileLabel   *widget.Label
}

func newState(cfg *config.Config) *uiState {
	alg, err := backend.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		alg = backend.Default
	}
	sc := scene.New()
	sc.HoverThreshold = cfg.HoverThreshold
	return &uiState{
		cfg:       cfg,
		client:    backend.NewClient(cfg.BackendURL, alg, cfg.Timeout),
		sc:        sc,
		redCount:  pointset.ClampCount(cfg.RedCount),
		blueCount: pointset.ClampCount(cfg.BlueCount),
		algorithm: alg,
		dark:      cfg.Dark,
	}
}

type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("redCount", state.redCount)
	prefs.SetInt("blueCount", state.blueCount)
	prefs.SetString("algorithm", string(state.algorithm))
	prefs.SetBool("teachMode", state.sc.TeachMode())
	prefs.SetBool("showHints", state.showHints)
}

// loadPrefs applies stored choices over the config defaults. It runs before
// widgets are wired so no callbacks fire.
func loadPrefs(state *uiState) (teach bool) {
	if state == nil || state.app == nil {
		return false
	}
	prefs := state.app.Preferences()
	state.filePath = prefs.StringWithFallback("lastFile", state.filePath)
	state.redCount = pointset.ClampCount(prefs.IntWithFallback("redCount", state.redCount))
	state.blueCount = pointset.ClampCount(prefs.IntWithFallback("blueCount", state.blueCount))
	if a, err := backend.ParseAlgorithm(prefs.StringWithFallback("algorithm", string(state.algorithm))); err == nil {
		state.algorithm = a
	}
	state.showHints = prefs.BoolWithFallback("showHints", false)
	return prefs.BoolWithFallback("teachMode", false)
}

// truncatePath keeps the file name and as much of the directory as fits.
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
