package l4perception

import (
	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
	"github.com/banshee-data/depth.steer/internal/monitoring"
)

// DefaultMinColSpan rejects regions narrower than three columns as noise.
const DefaultMinColSpan = 2

// ScanStats counts what a scan did. Counters are per frame; Add folds one
// frame into a running total.
type ScanStats struct {
	Seeds          int `json:"seeds"`           // Grow calls
	Kept           int `json:"kept"`            // regions inserted into the index
	NoiseDiscarded int `json:"noise_discarded"` // regions below MinColSpan
	Truncated      int `json:"truncated"`       // regions that hit the path cap
	CapHits        int `json:"cap_hits"`        // work-list entries cut by the cap
	Jumps          int `json:"jumps"`           // skips over claimed column spans
	CellsConsumed  int `json:"cells_consumed"`  // cells absorbed by Grow
}

// Add accumulates o into s.
func (s *ScanStats) Add(o ScanStats) {
	s.Seeds += o.Seeds
	s.Kept += o.Kept
	s.NoiseDiscarded += o.NoiseDiscarded
	s.Truncated += o.Truncated
	s.CapHits += o.CapHits
	s.Jumps += o.Jumps
	s.CellsConsumed += o.CellsConsumed
}

// Scanner drives a Grower across a grid in row-major order and collects the
// kept regions into an IntervalIndex.
type Scanner struct {
	grower     *Grower
	minColSpan int
}

// NewScanner builds a scanner. minColSpan is the smallest ColMax-ColMin a
// region needs to be kept; negative values select DefaultMinColSpan.
func NewScanner(maxDiff float64, maxPathDepth, minColSpan int) *Scanner {
	if minColSpan < 0 {
		minColSpan = DefaultMinColSpan
	}
	return &Scanner{
		grower:     NewGrower(maxDiff, maxPathDepth),
		minColSpan: minColSpan,
	}
}

// MinColSpan returns the noise threshold in use.
func (s *Scanner) MinColSpan() int { return s.minColSpan }

// Scan consumes g and returns the kept regions in column order.
//
// For each cell: a column already claimed by a kept region is skipped in
// one jump to ColMax+1; an empty cell is skipped; anything else seeds a
// Grow. Kept regions have their whole column span zeroed on every row so
// remnants of the same obstacle above or below are not rediscovered.
func (s *Scanner) Scan(g *l2grid.Grid) (*IntervalIndex, ScanStats) {
	ix := NewIntervalIndex()
	var stats ScanStats

	for row := 0; row < g.Rows(); row++ {
		col := 0
		for col < g.Cols() {
			if colMax, ok := ix.Query(col); ok {
				stats.Jumps++
				col = colMax + 1
				continue
			}
			if g.At(row, col) == 0 {
				col++
				continue
			}

			reg := s.grower.Grow(g, row, col)
			stats.Seeds++
			stats.CellsConsumed += reg.Cells
			if reg.Truncated() {
				stats.Truncated++
				stats.CapHits += reg.CapHits
				monitoring.Debugf("[Scanner] exploration cap hit %d times growing %s", reg.CapHits, reg)
			}

			if reg.Span() >= s.minColSpan {
				ix.Insert(reg)
				g.ZeroColumns(reg.ColMin, reg.ColMax)
				stats.Kept++
			} else {
				stats.NoiseDiscarded++
			}
			col++
		}
	}

	return ix, stats
}
