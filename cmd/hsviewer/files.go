package main

import (
	"bytes"
	"context"
	"path/filepath"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/pointset"
)

var pointFileExts = []string{".json", ".csv", ".xlsx", ".yaml", ".yml"}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		loadPointFile(state, path)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter(pointFileExts))
	d.Show()
}

// loadPointFile replaces the scene's points with the file's contents.
func loadPointFile(state *uiState, path string) {
	set, err := pointset.Load(path)
	if err != nil {
		logging.Warnf("[viewer] load %s: %v", path, err)
		if state.window != nil {
			dialog.ShowError(err, state.window)
		}
		return
	}
	state.sc.SetPoints(set)
	state.filePath = path
	if state.fileLabel != nil {
		state.fileLabel.SetText(truncatePath(path, 60))
	}
	if state.app != nil {
		addRecentFile(state, path)
		savePrefs(state)
	}
	logging.Infof("[viewer] loaded %s: %d red, %d blue", path, len(set.Red), len(set.Blue))
	redrawChart(state)
	requestCompute(state)
}

// saveFileDialog writes the current points in the format the chosen name
// implies.
func saveFileDialog(state *uiState) {
	set := state.sc.Points()
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		name := wc.URI().Name()
		if err := pointset.Encode(name, wc, set); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		logging.Infof("[viewer] saved %s", wc.URI().Path())
	}, state.window)
	fs.SetFileName("current_point_set.json")
	fs.Show()
}

// downloadSample fetches a sample file from the backend and offers to save it.
func downloadSample(state *uiState, kind backend.SampleKind) {
	client := state.client
	go func() {
		data, err := client.SampleFile(context.Background(), kind)
		fyne.Do(func() {
			if err != nil {
				logging.Warnf("[viewer] sample %s: %v", kind, err)
				dialog.ShowError(errors.Wrapf(err, "could not download the %s sample", kind), state.window)
				return
			}
			fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
				if err != nil || wc == nil {
					return
				}
				defer wc.Close()
				if _, err := bytes.NewReader(data).WriteTo(wc); err != nil {
					dialog.ShowError(err, state.window)
				}
			}, state.window)
			fs.SetFileName("sample." + kind.Extension())
			fs.Show()
		})
	}()
}

// recentMenuItems lists recent files for the File menu.
func recentMenuItems(state *uiState, rebuild func()) []*fyne.MenuItem {
	var items []*fyne.MenuItem
	for _, p := range recentFiles(state) {
		path := p
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() { loadPointFile(state, path); rebuild() }))
	}
	if len(items) == 0 {
		it := fyne.NewMenuItem("(none)", nil)
		it.Disabled = true
		items = append(items, it)
	}
	items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); rebuild() }))
	return items
}
