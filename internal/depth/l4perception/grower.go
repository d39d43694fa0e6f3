package l4perception

import (
	"math"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
)

// DefaultMaxPathDepth bounds how far exploration follows a single path.
const DefaultMaxPathDepth = 80

// neighbourOffsets lists the 8-connected steps in exploration order.
var neighbourOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// growEntry is a pending cell: its position, its own depth (the reference
// for its neighbours) and its distance from the seed along the path taken.
type growEntry struct {
	row, col int
	ref      float64
	depth    int
}

// Grower performs depth-limited flood fill. Tolerance is chained: a
// neighbour is compared against the cell it was reached from, not the seed,
// so a gradual depth ramp stays one region.
//
// A Grower reuses its work list between calls and is not safe for
// concurrent use.
type Grower struct {
	MaxDiff      float64
	MaxPathDepth int

	stack  []growEntry
	depths []float64
}

// NewGrower returns a Grower with the given tolerance and path cap. A
// non-positive cap selects DefaultMaxPathDepth.
func NewGrower(maxDiff float64, maxPathDepth int) *Grower {
	if maxPathDepth <= 0 {
		maxPathDepth = DefaultMaxPathDepth
	}
	return &Grower{MaxDiff: maxDiff, MaxPathDepth: maxPathDepth}
}

// Grow explores from (r0, c0) and returns the region it finds. Every
// accepted cell, the seed included, is zeroed in g. A zero seed yields a
// single-cell box with Cells == 0 and leaves g untouched.
func (gr *Grower) Grow(g *l2grid.Grid, r0, c0 int) Region {
	reg := newRegion(r0, c0)
	seed := g.At(r0, c0)
	if seed == 0 {
		return reg
	}

	g.Set(r0, c0, 0)
	gr.depths = append(gr.depths[:0], seed)
	gr.stack = append(gr.stack[:0], growEntry{row: r0, col: c0, ref: seed})

	for len(gr.stack) > 0 {
		e := gr.stack[len(gr.stack)-1]
		gr.stack = gr.stack[:len(gr.stack)-1]

		if e.depth > gr.MaxPathDepth {
			reg.CapHits++
			continue
		}

		for _, off := range neighbourOffsets {
			nr, nc := e.row+off[0], e.col+off[1]
			if !g.InBounds(nr, nc) {
				continue
			}
			v := g.At(nr, nc)
			if v == 0 || math.Abs(v-e.ref) > gr.MaxDiff {
				continue
			}

			g.Set(nr, nc, 0)
			reg.add(nr, nc)
			gr.depths = append(gr.depths, v)
			gr.stack = append(gr.stack, growEntry{row: nr, col: nc, ref: v, depth: e.depth + 1})
		}
	}

	reg.finalize(gr.depths)
	return reg
}
