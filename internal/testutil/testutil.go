// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"testing"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertGridZero fails the test if any cell of g is non-zero.
func AssertGridZero(t testing.TB, g *l2grid.Grid) {
	t.Helper()
	if n := g.NonZeroCount(); n != 0 {
		t.Errorf("grid has %d non-zero cells, want 0", n)
	}
}

// Obstacle is a constant-depth rectangle spanning every row of a frame.
type Obstacle struct {
	Col0, Col1 int
	Depth      float64
}

// ObstacleGrid builds a rows x cols frame of full-height obstacles on a
// zero background. Columns are inclusive and clipped to the frame.
func ObstacleGrid(rows, cols int, obstacles ...Obstacle) *l2grid.Grid {
	g := l2grid.New(rows, cols)
	for _, o := range obstacles {
		if o.Depth <= 0 {
			panic(fmt.Sprintf("testutil: obstacle depth %v must be positive", o.Depth))
		}
		for r := 0; r < rows; r++ {
			for c := max(o.Col0, 0); c <= min(o.Col1, cols-1); c++ {
				g.Set(r, c, o.Depth)
			}
		}
	}
	return g
}

// RowGrid returns a single-row frame holding values.
func RowGrid(values ...float64) *l2grid.Grid {
	return l2grid.MustFromRows([][]float64{values})
}
