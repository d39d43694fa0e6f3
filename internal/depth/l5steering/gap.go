package l5steering

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/depth.steer/internal/depth/l4perception"
)

var (
	ErrInvalidHalfWidth = errors.New("frame half width must be positive and finite")
	ErrInvalidThreshold = errors.New("steer threshold must be within [0, 1]")
)

// Gap is the free column span between two horizontally adjacent regions.
type Gap struct {
	Width     int `json:"width"`      // right.ColMin - left.ColMax
	Midpoint  int `json:"midpoint"`   // (right.ColMin + left.ColMax) / 2, rounded down
	LeftIndex int `json:"left_index"` // index of the region left of the gap
}

// FindGap returns the widest gap between consecutive regions, which must be
// sorted by ColMin. On ties the earliest (leftmost) gap wins. ok is false
// when fewer than two regions exist.
func FindGap(regions []l4perception.Region) (best Gap, ok bool) {
	for i := 1; i < len(regions); i++ {
		prev, cur := regions[i-1], regions[i]
		width := cur.ColMin - prev.ColMax
		if !ok || width > best.Width {
			best = Gap{
				Width:     width,
				Midpoint:  (cur.ColMin + prev.ColMax) / 2,
				LeftIndex: i - 1,
			}
			ok = true
		}
	}
	return best, ok
}

// Decision is the steering output for one frame. When Decided is false no
// gap exists and the numeric fields are zero.
type Decision struct {
	Decided bool `json:"decided"`
	Gap     Gap  `json:"gap"`

	// RawHeading is Midpoint / halfWidth. Heading is the same value clamped
	// to [0, 1].
	RawHeading float64   `json:"raw_heading"`
	Heading    float64   `json:"heading"`
	Direction  Direction `json:"direction"`
}

// Steer turns the ordered regions of a frame into a Decision. halfWidth
// normalises the gap midpoint and is normally the grid width / 2.
func Steer(regions []l4perception.Region, halfWidth, threshold float64) (Decision, error) {
	if !(halfWidth > 0) || math.IsInf(halfWidth, 0) {
		return Decision{}, fmt.Errorf("%w: got %v", ErrInvalidHalfWidth, halfWidth)
	}
	if !(threshold >= 0 && threshold <= 1) {
		return Decision{}, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	gap, ok := FindGap(regions)
	if !ok {
		return Decision{Direction: Undecided}, nil
	}

	raw := float64(gap.Midpoint) / halfWidth
	heading := math.Min(math.Max(raw, 0), 1)
	return Decision{
		Decided:    true,
		Gap:        gap,
		RawHeading: raw,
		Heading:    heading,
		Direction:  Classify(heading, threshold),
	}, nil
}
