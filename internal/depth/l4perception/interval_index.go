package l4perception

import (
	"slices"
	"sort"
)

// NotFound is the column returned by Query alongside ok == false. It is
// never a valid column index.
const NotFound = -1

// IntervalIndex is an ordered set of regions keyed by column span. Entries
// are sorted ascending by ColMin and their spans do not overlap; the
// scanner guarantees the latter, Insert does not check it.
//
// Boundary rule: a column is inside a region when ColMin <= col <= ColMax.
type IntervalIndex struct {
	regions []Region
}

// NewIntervalIndex returns an empty index.
func NewIntervalIndex() *IntervalIndex {
	return &IntervalIndex{}
}

// Query returns the ColMax of the region whose span contains col. Because
// spans are disjoint and sorted, ColMax is ascending too and a single
// binary search on it finds the only candidate.
func (ix *IntervalIndex) Query(col int) (colMax int, ok bool) {
	i := sort.Search(len(ix.regions), func(i int) bool {
		return ix.regions[i].ColMax >= col
	})
	if i < len(ix.regions) && ix.regions[i].ColMin <= col {
		return ix.regions[i].ColMax, true
	}
	return NotFound, false
}

// Insert places r at its sorted position. Equal ColMin values keep
// insertion order.
func (ix *IntervalIndex) Insert(r Region) {
	i := sort.Search(len(ix.regions), func(i int) bool {
		return ix.regions[i].ColMin > r.ColMin
	})
	ix.regions = slices.Insert(ix.regions, i, r)
}

// Len returns the number of regions.
func (ix *IntervalIndex) Len() int { return len(ix.regions) }

// At returns the i-th region in column order.
func (ix *IntervalIndex) At(i int) Region { return ix.regions[i] }

// Regions returns a copy of the regions in column order.
func (ix *IntervalIndex) Regions() []Region {
	out := make([]Region, len(ix.regions))
	copy(out, ix.regions)
	return out
}

// Reset empties the index, keeping its backing storage.
func (ix *IntervalIndex) Reset() {
	ix.regions = ix.regions[:0]
}
