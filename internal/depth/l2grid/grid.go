package l2grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Input contract violations. Callers branch with errors.Is; the returned
// errors wrap these with the offending row, column or shape.
var (
	ErrEmptyGrid         = errors.New("depth grid is empty")
	ErrDimensionMismatch = errors.New("depth grid shape does not match declared dimensions")
	ErrNegativeDepth     = errors.New("negative depth value")
	ErrInvalidDepth      = errors.New("non-finite depth value")
)

// Grid is a mutable row-major matrix of depth readings in metres.
// A zero cell means "no return" and never belongs to a region.
type Grid struct {
	rows, cols int
	data       []float64
}

// New allocates an all-zero grid. It panics on non-positive dimensions,
// mirroring make() for programmer errors; untrusted shapes go through FromRows.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("l2grid: invalid dimensions %dx%d", rows, cols))
	}
	return &Grid{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromRows builds a grid from a slice of rows and checks it against the
// declared width and height. The input slices are copied.
func FromRows(rows [][]float64, width, height int) (*Grid, error) {
	if len(rows) == 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %d rows, declared %dx%d", ErrEmptyGrid, len(rows), height, width)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("%w: got %d rows, declared height %d", ErrDimensionMismatch, len(rows), height)
	}

	g := &Grid{rows: height, cols: width, data: make([]float64, 0, width*height)}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, declared width %d", ErrDimensionMismatch, r, len(row), width)
		}
		g.data = append(g.data, row...)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustFromRows is FromRows for fixtures whose shape is the declared shape.
func MustFromRows(rows [][]float64) *Grid {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	g, err := FromRows(rows, width, len(rows))
	if err != nil {
		panic(err)
	}
	return g
}

// Validate rejects negative and non-finite readings. The common case is a
// single pass of gonum reductions; the cell scan only runs to locate a fault.
func (g *Grid) Validate() error {
	if g == nil || len(g.data) == 0 {
		return ErrEmptyGrid
	}
	if len(g.data) != g.rows*g.cols {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrDimensionMismatch, len(g.data), g.rows, g.cols)
	}
	if !floats.HasNaN(g.data) && floats.Min(g.data) >= 0 && !math.IsInf(floats.Max(g.data), 1) {
		return nil
	}

	for i, v := range g.data {
		r, c := i/g.cols, i%g.cols
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return fmt.Errorf("%w: %v at row %d col %d", ErrInvalidDepth, v, r, c)
		case v < 0:
			return fmt.Errorf("%w: %v at row %d col %d", ErrNegativeDepth, v, r, c)
		}
	}
	return nil
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (r, c) addresses a cell.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the depth at (r, c).
func (g *Grid) At(r, c int) float64 {
	return g.data[r*g.cols+c]
}

// Set stores v at (r, c).
func (g *Grid) Set(r, c int, v float64) {
	g.data[r*g.cols+c] = v
}

// Clone returns an independent copy, for callers that must keep the input.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}

// ZeroColumns clears columns c0..c1 inclusive on every row. The span is
// clipped to the grid.
func (g *Grid) ZeroColumns(c0, c1 int) {
	c0 = max(c0, 0)
	c1 = min(c1, g.cols-1)
	if c0 > c1 {
		return
	}
	for r := 0; r < g.rows; r++ {
		clear(g.data[r*g.cols+c0 : r*g.cols+c1+1])
	}
}

// NonZeroCount returns the number of cells holding a reading.
func (g *Grid) NonZeroCount() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) []float64 {
	out := make([]float64, g.cols)
	copy(out, g.data[r*g.cols:(r+1)*g.cols])
	return out
}

// Matrix returns a gonum view sharing the grid's storage. Writes through
// the view are visible in the grid.
func (g *Grid) Matrix() *mat.Dense {
	return mat.NewDense(g.rows, g.cols, g.data)
}

// ColumnNearest returns, for each column, the smallest non-zero depth in
// that column, or 0 when the column has no readings.
func (g *Grid) ColumnNearest() []float64 {
	out := make([]float64, g.cols)
	m := g.Matrix()
	col := make([]float64, g.rows)
	for c := 0; c < g.cols; c++ {
		mat.Col(col, c, m)
		nearest := 0.0
		for _, v := range col {
			if v != 0 && (nearest == 0 || v < nearest) {
				nearest = v
			}
		}
		out[c] = nearest
	}
	return out
}
