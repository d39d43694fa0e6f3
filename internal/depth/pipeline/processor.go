package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/depth.steer/internal/config"
	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
	"github.com/banshee-data/depth.steer/internal/depth/l4perception"
	"github.com/banshee-data/depth.steer/internal/depth/l5steering"
	"github.com/banshee-data/depth.steer/internal/monitoring"
	"github.com/banshee-data/depth.steer/internal/timeutil"
)

// ErrNilGrid is returned by ProcessFrame when no grid is supplied.
var ErrNilGrid = errors.New("nil depth grid")

// Frame is one unit of work for Run.
type Frame struct {
	Index  int
	Source string
	Grid   *l2grid.Grid
}

// Processor turns depth grids into FrameResults using a fixed tuning
// configuration. It is safe for concurrent use; frames are serialised.
type Processor struct {
	mu      sync.Mutex
	cfg     *config.TuningConfig
	scanner *l4perception.Scanner
	clock   timeutil.Clock
}

// NewProcessor validates cfg and builds a processor. A nil cfg uses the
// compiled-in defaults.
func NewProcessor(cfg *config.TuningConfig) (*Processor, error) {
	if cfg == nil {
		cfg = config.DefaultTuningConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}
	return &Processor{
		cfg:     cfg,
		scanner: l4perception.NewScanner(cfg.GetMaxDiff(), cfg.GetMaxPathDepth(), cfg.GetMinColSpan()),
		clock:   timeutil.RealClock{},
	}, nil
}

// SetClock replaces the clock used for run timestamps and frame timings.
func (p *Processor) SetClock(c timeutil.Clock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = c
}

// Config returns the tuning configuration in use.
func (p *Processor) Config() *config.TuningConfig { return p.cfg }

// ProcessFrame validates g, scans it and derives the steering decision.
// Unless preserve_input is set, g is consumed: on return every cell is zero.
func (p *Processor) ProcessFrame(g *l2grid.Grid) (*FrameResult, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("rejecting frame: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.clock.Now()
	work := g
	if p.cfg.GetPreserveInput() {
		work = g.Clone()
	}

	ix, stats := p.scanner.Scan(work)
	regions := ix.Regions()

	decision, err := l5steering.Steer(regions, p.cfg.GetFrameHalfWidth(g.Cols()), p.cfg.GetSteerThreshold())
	if err != nil {
		return nil, fmt.Errorf("steering: %w", err)
	}

	intervals := make([]Interval, len(regions))
	for i, r := range regions {
		intervals[i] = IntervalOf(r)
	}

	return &FrameResult{
		Width:     g.Cols(),
		Height:    g.Rows(),
		Intervals: intervals,
		Regions:   regions,
		Decision:  decision,
		Stats:     stats,
		Elapsed:   p.clock.Since(start),
	}, nil
}

func (p *Processor) now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock.Now()
}

// Run processes frames until the channel closes or ctx is cancelled. Every
// frame_stride-th frame (counting arrivals from zero) is processed; the
// rest are skipped. Frames that fail validation are logged and counted,
// not fatal. An error from emit stops the run.
func (p *Processor) Run(ctx context.Context, frames <-chan Frame, emit func(*FrameResult) error) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:   uuid.New().String(),
		Started: p.now(),
	}
	stride := p.cfg.GetFrameStride()
	monitoring.Logf("[Pipeline] Started run %s (stride %d)", summary.RunID, stride)

	finish := func(err error) (*RunSummary, error) {
		summary.Finished = p.now()
		monitoring.Logf("[Pipeline] Run %s finished: %d processed, %d skipped, %d failed, %d decided",
			summary.RunID, summary.Frames, summary.Skipped, summary.Failed, summary.Decided)
		return summary, err
	}

	for n := 0; ; n++ {
		var (
			f  Frame
			ok bool
		)
		select {
		case <-ctx.Done():
			return finish(ctx.Err())
		case f, ok = <-frames:
		}
		if !ok {
			return finish(nil)
		}

		if n%stride != 0 {
			summary.Skipped++
			continue
		}

		res, err := p.ProcessFrame(f.Grid)
		if err != nil {
			summary.Failed++
			monitoring.Logf("[Pipeline] Frame %d (%s) rejected: %v", f.Index, f.Source, err)
			continue
		}
		res.RunID = summary.RunID
		res.FrameIndex = f.Index
		res.Source = f.Source
		summary.record(res)

		if res.Stats.Truncated > 0 {
			monitoring.Debugf("[Pipeline] Frame %d: %d regions hit the exploration cap", f.Index, res.Stats.Truncated)
		}

		if emit != nil {
			if err := emit(res); err != nil {
				return finish(fmt.Errorf("emit frame %d: %w", f.Index, err))
			}
		}
	}
}

// Feed sends grids on a new channel in order and closes it. It stops early
// if ctx is cancelled.
func Feed(ctx context.Context, frames []Frame) <-chan Frame {
	ch := make(chan Frame)
	go func() {
		defer close(ch)
		for _, f := range frames {
			select {
			case ch <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
