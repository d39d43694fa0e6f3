package pipeline

import (
	"time"

	"github.com/banshee-data/depth.steer/internal/depth/l4perception"
	"github.com/banshee-data/depth.steer/internal/depth/l5steering"
)

// Interval is the (rowMin, rowMax, colMin, colMax) tuple handed to
// navigation consumers. It encodes as a four-element JSON array.
type Interval [4]int

// IntervalOf summarises a region as an Interval.
func IntervalOf(r l4perception.Region) Interval {
	return Interval{r.RowMin, r.RowMax, r.ColMin, r.ColMax}
}

// FrameResult is the output of one processed frame. Intervals and Regions
// are in ascending column order and never overlap.
type FrameResult struct {
	RunID      string `json:"run_id,omitempty"`
	FrameIndex int    `json:"frame_index"`
	Source     string `json:"source,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`

	Intervals []Interval             `json:"intervals"`
	Regions   []l4perception.Region  `json:"regions"`
	Decision  l5steering.Decision    `json:"decision"`
	Stats     l4perception.ScanStats `json:"stats"`
	Elapsed   time.Duration          `json:"elapsed_ns"`
}

// Label returns "left", "right" or "undecided".
func (r *FrameResult) Label() string {
	return r.Decision.Direction.String()
}

// RunSummary aggregates a sequence of frames.
type RunSummary struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`

	Frames  int `json:"frames"`  // frames processed
	Skipped int `json:"skipped"` // frames skipped by the stride
	Failed  int `json:"failed"`  // frames rejected by validation
	Decided int `json:"decided"`
	Left    int `json:"left"`
	Right   int `json:"right"`

	Stats l4perception.ScanStats `json:"stats"`
}

func (s *RunSummary) record(r *FrameResult) {
	s.Frames++
	s.Stats.Add(r.Stats)
	switch r.Decision.Direction {
	case l5steering.Left:
		s.Decided++
		s.Left++
	case l5steering.Right:
		s.Decided++
		s.Right++
	}
}
