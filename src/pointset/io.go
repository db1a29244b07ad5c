package pointset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/viewport"
)

// ErrUnsupportedFormat is returned for file extensions the loader does not know.
var ErrUnsupportedFormat = errors.New("unsupported point-set format")

const setSchema = `{
  "type": "object",
  "required": ["redPoints", "bluePoints"],
  "properties": {
    "redPoints":  {"$ref": "#/definitions/points"},
    "bluePoints": {"$ref": "#/definitions/points"}
  },
  "definitions": {
    "points": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["x", "y"],
        "properties": {
          "x": {"type": "number"},
          "y": {"type": "number"},
          "color": {"enum": ["red", "blue"]}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(setSchema)

// Load reads a point-set file, picking the decoder by extension.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// Decode parses r according to the extension of name: .json, .csv, .xlsx,
// .yaml or .yml.
func Decode(name string, r io.Reader) (Set, error) {
	var (
		s   Set
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		s, err = DecodeJSON(r)
	case ".csv":
		s, err = DecodeCSV(r)
	case ".xlsx":
		s, err = DecodeXLSX(r)
	case ".yaml", ".yml":
		s, err = DecodeYAML(r)
	default:
		return Set{}, errors.Wrap(ErrUnsupportedFormat, name)
	}
	if err != nil {
		return Set{}, errors.Wrapf(err, "decode %s", name)
	}
	logging.Debugf("[pointset] %s: red=%d blue=%d", name, len(s.Red), len(s.Blue))
	return s, nil
}

// DecodeJSON validates the document against the point-set schema before
// unmarshalling it.
func DecodeJSON(r io.Reader) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Set{}, errors.Wrap(err, "read json")
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Set{}, errors.Wrap(err, "validate json")
	}
	if !res.Valid() {
		var msgs []string
		for _, d := range res.Errors() {
			msgs = append(msgs, d.String())
		}
		return Set{}, errors.Errorf("invalid point set: %s", strings.Join(msgs, "; "))
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return Set{}, errors.Wrap(err, "unmarshal json")
	}
	return s, nil
}

// DecodeCSV reads rows of x,y,type after a header row. Rows whose type is
// neither red nor blue are skipped, as are rows with unparsable numbers.
func DecodeCSV(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return Set{}, errors.Wrap(err, "read csv")
	}
	return fromRows(rows), nil
}

// DecodeXLSX reads the first sheet of a workbook with the same columns as
// the CSV format.
func DecodeXLSX(r io.Reader) (Set, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Set{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Set{}, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Set{}, errors.Wrapf(err, "read sheet %s", sheets[0])
	}
	return fromRows(rows), nil
}

func DecodeYAML(r io.Reader) (Set, error) {
	var s Set
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return Set{}, errors.Wrap(err, "decode yaml")
	}
	return s, nil
}

func fromRows(rows [][]string) Set {
	var s Set
	if len(rows) == 0 {
		return s
	}
	for i, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if errX != nil || errY != nil {
			logging.Debugf("[pointset] row %d skipped: bad coordinates %q", i+2, row[:2])
			continue
		}
		p := viewport.Point{X: x, Y: y}
		switch viewport.Color(strings.ToLower(strings.TrimSpace(row[2]))) {
		case viewport.Red:
			s.Red = append(s.Red, p)
		case viewport.Blue:
			s.Blue = append(s.Blue, p)
		}
	}
	return s
}

// EncodeJSON writes the set as indented JSON.
func EncodeJSON(w io.Writer, s Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(s), "encode json")
}

// EncodeCSV writes an x,y,type header followed by red then blue rows.
func EncodeCSV(w io.Writer, s Set) error {
	cw := csv.NewWriter(w)
	rec := [][]string{{"x", "y", "type"}}
	for _, p := range s.Red {
		rec = append(rec, []string{formatCoord(p.X), formatCoord(p.Y), string(viewport.Red)})
	}
	for _, p := range s.Blue {
		rec = append(rec, []string{formatCoord(p.X), formatCoord(p.Y), string(viewport.Blue)})
	}
	return errors.Wrap(cw.WriteAll(rec), "encode csv")
}

func EncodeYAML(w io.Writer, s Set) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return errors.Wrap(enc.Encode(s), "encode yaml")
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Save writes s to path in the format implied by its extension (.json,
// .csv, .yaml/.yml).
func Save(path string, s Set) error {
	var buf bytes.Buffer
	if err := Encode(path, &buf, s); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "write %s", path)
}

// Encode writes s in the format named by the extension of name.
func Encode(name string, w io.Writer, s Set) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return EncodeJSON(w, s)
	case ".csv":
		return EncodeCSV(w, s)
	case ".yaml", ".yml":
		return EncodeYAML(w, s)
	}
	return errors.Wrap(ErrUnsupportedFormat, name)
}
