// Package gridio reads and writes depth frames at the acquisition boundary.
//
// Two formats are supported: CSV with one grid row per line, and a JSON
// frame document {"width": W, "height": H, "depth": [[...], ...]}. Every
// reader hands its rows to l2grid.FromRows, so malformed frames are
// rejected before any scanning happens.
package gridio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
)

// ErrUnknownFormat is returned for file extensions other than .csv and .json.
var ErrUnknownFormat = errors.New("unknown depth frame format")

// FrameDoc is the JSON frame document.
type FrameDoc struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Depth  [][]float64 `json:"depth"`
}

// ReadCSV parses a CSV depth frame. Lines starting with '#' are comments.
// When width or height is zero it is taken from the data; otherwise the
// data must match it.
func ReadCSV(r io.Reader, width, height int) (*l2grid.Grid, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // shape errors are reported by l2grid

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: invalid depth %q: %w", len(rows), i, field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if height == 0 {
		height = len(rows)
	}
	if width == 0 && len(rows) > 0 {
		width = len(rows[0])
	}
	return l2grid.FromRows(rows, width, height)
}

// ReadJSON parses a JSON frame document.
func ReadJSON(r io.Reader) (*l2grid.Grid, error) {
	var doc FrameDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode frame json: %w", err)
	}
	return l2grid.FromRows(doc.Depth, doc.Width, doc.Height)
}

// ReadFile reads a frame, choosing the format from the file extension.
func ReadFile(path string) (*l2grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var g *l2grid.Grid
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		g, err = ReadCSV(f, 0, 0)
	case ".json":
		g, err = ReadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteCSV writes g as CSV, one grid row per line.
func WriteCSV(w io.Writer, g *l2grid.Grid) error {
	cw := csv.NewWriter(w)
	rec := make([]string, g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			rec[c] = strconv.FormatFloat(g.At(r, c), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes g as a JSON frame document.
func WriteJSON(w io.Writer, g *l2grid.Grid) error {
	doc := FrameDoc{Width: g.Cols(), Height: g.Rows(), Depth: make([][]float64, g.Rows())}
	for r := range doc.Depth {
		doc.Depth[r] = g.Row(r)
	}
	return json.NewEncoder(w).Encode(doc)
}

// WriteFile writes g to path in the format implied by its extension.
func WriteFile(path string, g *l2grid.Grid) (err error) {
	var write func(io.Writer, *l2grid.Grid) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteCSV
	case ".json":
		write = WriteJSON
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, g)
}
