package render

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/scene"
)

// WriteFile renders sc to path. A .svg extension selects vector output,
// anything else PNG. The file's Close error is reported.
func WriteFile(path string, sc *scene.Scene, opt Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	encode := func(w io.Writer) error { return WritePNG(w, sc, opt) }
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		encode = func(w io.Writer) error { return SVG(w, sc, opt) }
	}
	return errors.Wrapf(writeClose(f, encode), "write %s", path)
}

// writeClose runs encode on wc and always closes it. An encode error wins
// over the Close error.
func writeClose(wc io.WriteCloser, encode func(io.Writer) error) error {
	if err := encode(wc); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}
