package l4perception

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Region is one obstacle cluster discovered by the Grower. The bounding box
// contains every accepted cell but member cells need not fill it.
type Region struct {
	RowMin int `json:"row_min"`
	RowMax int `json:"row_max"`
	ColMin int `json:"col_min"`
	ColMax int `json:"col_max"`

	// Cells is the number of accepted member cells. Zero only for a region
	// seeded on an empty cell.
	Cells int `json:"cells"`

	// Depth statistics over the member cells, in grid units.
	MinDepth  float64 `json:"min_depth"`
	MaxDepth  float64 `json:"max_depth"`
	MeanDepth float64 `json:"mean_depth"`
	StdDepth  float64 `json:"std_depth"`

	// CapHits counts work-list entries that were accepted but not expanded
	// because their path exceeded the exploration cap.
	CapHits int `json:"cap_hits,omitempty"`
}

func newRegion(row, col int) Region {
	return Region{RowMin: row, RowMax: row, ColMin: col, ColMax: col}
}

// add widens the bounding box to include (row, col).
func (r *Region) add(row, col int) {
	r.RowMin = min(r.RowMin, row)
	r.RowMax = max(r.RowMax, row)
	r.ColMin = min(r.ColMin, col)
	r.ColMax = max(r.ColMax, col)
}

// finalize fills in the member statistics from the accepted depths.
func (r *Region) finalize(depths []float64) {
	r.Cells = len(depths)
	if len(depths) == 0 {
		return
	}
	r.MinDepth = floats.Min(depths)
	r.MaxDepth = floats.Max(depths)
	if len(depths) == 1 {
		r.MeanDepth = depths[0]
		return
	}
	r.MeanDepth, r.StdDepth = stat.MeanStdDev(depths, nil)
}

// Span is ColMax - ColMin. A region of width w columns has span w-1.
func (r Region) Span() int { return r.ColMax - r.ColMin }

// Width is the number of columns covered by the bounding box.
func (r Region) Width() int { return r.ColMax - r.ColMin + 1 }

// Truncated reports whether exploration hit the path cap while growing
// this region. The region is still complete and usable.
func (r Region) Truncated() bool { return r.CapHits > 0 }

// ContainsCol reports whether col lies in [ColMin, ColMax].
func (r Region) ContainsCol(col int) bool {
	return col >= r.ColMin && col <= r.ColMax
}

func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d, cols %d-%d (%d cells, mean %.2f)",
		r.RowMin, r.RowMax, r.ColMin, r.ColMax, r.Cells, r.MeanDepth)
}
