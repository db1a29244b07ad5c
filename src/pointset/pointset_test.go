package pointset

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

func TestClampCount(t *testing.T) {
	assert.Equal(t, 1, ClampCount(0))
	assert.Equal(t, 1, ClampCount(-4))
	assert.Equal(t, 7, ClampCount(7))
	assert.Equal(t, 50, ClampCount(51))
}

func TestRandomRangeAndDeterminism(t *testing.T) {
	a := Random(7, 5, rand.New(rand.NewSource(42)))
	b := Random(7, 5, rand.New(rand.NewSource(42)))
	require.Len(t, a.Red, 7)
	require.Len(t, a.Blue, 5)
	assert.Equal(t, a, b)
	for _, p := range append(a.Red, a.Blue...) {
		assert.True(t, p.X >= -10 && p.X < 10.001, "x out of range: %v", p.X)
		assert.True(t, p.Y >= -10 && p.Y < 10.001, "y out of range: %v", p.Y)
		assert.Equal(t, viewport.NoColor, p.Color)
	}
}

func TestDecodeJSONExportedFile(t *testing.T) {
	doc := `{"redPoints":[{"x":1,"y":2}],"bluePoints":[{"x":-3.5,"y":4}]}`
	s, err := Decode("current_point_set.json", strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []viewport.Point{{X: 1, Y: 2}}, s.Red)
	assert.Equal(t, []viewport.Point{{X: -3.5, Y: 4}}, s.Blue)
}

func TestDecodeJSONRejectsSchemaViolations(t *testing.T) {
	for _, doc := range []string{
		`{"redPoints":[{"x":1}],"bluePoints":[]}`,
		`{"redPoints":[{"x":"1","y":2}],"bluePoints":[]}`,
		`{"bluePoints":[]}`,
	} {
		_, err := DecodeJSON(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestDecodeCSVSkipsUnknownAndBadRows(t *testing.T) {
	doc := "x,y,type\n1,2,red\n3,4, BLUE\n5,6,green\nabc,1,red\n7,8\n-1.5,0.25,Red\n"
	s, err := Decode("points.CSV", strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []viewport.Point{{X: 1, Y: 2}, {X: -1.5, Y: 0.25}}, s.Red)
	assert.Equal(t, []viewport.Point{{X: 3, Y: 4}}, s.Blue)
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"x", "y", "type"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1.5, 2, "red"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{-4, 0.5, "blue"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	s, err := Decode("sample_data.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []viewport.Point{{X: 1.5, Y: 2}}, s.Red)
	assert.Equal(t, []viewport.Point{{X: -4, Y: 0.5}}, s.Blue)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode("points.txt", strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedFormat, errors.Cause(err))
}

func TestSaveLoadAcrossFormats(t *testing.T) {
	dir := t.TempDir()
	want := Set{
		Red:  []viewport.Point{{X: 1.25, Y: -2}},
		Blue: []viewport.Point{{X: 3, Y: 4.125}, {X: 0, Y: 0}},
	}
	for _, name := range []string{DefaultFileName, "set.csv", "set.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, want), name)
		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	assert.Error(t, Save(filepath.Join(dir, "set.xlsx"), want), "xlsx export is not supported")
}

func TestSetHelpers(t *testing.T) {
	s := Set{Red: []viewport.Point{{X: 1}}}
	assert.True(t, s.Empty())
	c := s.Clone()
	c.Red[0].X = 9
	assert.Equal(t, 1.0, s.Red[0].X)
	assert.Len(t, s.Collections(), 2)
}
