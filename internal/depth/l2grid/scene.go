package l2grid

import (
	"fmt"
	"math/rand/v2"
)

// Box is an axis-aligned obstacle in a synthetic scene. Rows and columns are
// inclusive. Depth increases by Ramp per column from Col0, which models a
// surface seen at an angle.
type Box struct {
	Row0  int     `json:"row0"`
	Row1  int     `json:"row1"`
	Col0  int     `json:"col0"`
	Col1  int     `json:"col1"`
	Depth float64 `json:"depth"`
	Ramp  float64 `json:"ramp,omitempty"`
}

// Scene describes a synthetic depth frame. Later boxes overwrite earlier
// ones where they overlap. Dropout is the probability that any non-zero
// cell loses its return; Jitter adds uniform noise in [-Jitter, Jitter].
type Scene struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Boxes   []Box   `json:"boxes"`
	Dropout float64 `json:"dropout,omitempty"`
	Jitter  float64 `json:"jitter,omitempty"`
}

// Render draws the scene into a new grid. rng may be nil when the scene has
// no Dropout or Jitter.
func (s Scene) Render(rng *rand.Rand) (*Grid, error) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return nil, fmt.Errorf("%w: scene %dx%d", ErrEmptyGrid, s.Rows, s.Cols)
	}
	if (s.Dropout > 0 || s.Jitter > 0) && rng == nil {
		return nil, fmt.Errorf("scene with dropout or jitter needs a random source")
	}

	g := New(s.Rows, s.Cols)
	for i, b := range s.Boxes {
		if far := b.Depth + b.Ramp*float64(b.Col1-b.Col0); b.Depth <= 0 || far <= 0 {
			return nil, fmt.Errorf("box %d: %w: depth %v to %v", i, ErrNegativeDepth, b.Depth, far)
		}
		for r := max(b.Row0, 0); r <= min(b.Row1, s.Rows-1); r++ {
			for c := max(b.Col0, 0); c <= min(b.Col1, s.Cols-1); c++ {
				g.Set(r, c, b.Depth+b.Ramp*float64(c-b.Col0))
			}
		}
	}

	if rng == nil {
		return g, nil
	}
	for i, v := range g.data {
		if v == 0 {
			continue
		}
		if s.Dropout > 0 && rng.Float64() < s.Dropout {
			g.data[i] = 0
			continue
		}
		if s.Jitter > 0 {
			// Keep jittered readings strictly positive so they stay returns.
			g.data[i] = max(v+(rng.Float64()*2-1)*s.Jitter, 1e-3)
		}
	}
	return g, nil
}
