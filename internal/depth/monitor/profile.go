package monitor

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
	"github.com/banshee-data/depth.steer/internal/depth/pipeline"
)

var (
	profileColor  = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	intervalColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	gapColor      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// ProfileFileName is the file name PlotColumnProfile output is saved under
// for a frame.
func ProfileFileName(r *pipeline.FrameResult) string {
	return fmt.Sprintf("frame_%05d_profile.png", r.FrameIndex)
}

// PlotColumnProfile saves a plot of the nearest reading in each column of g
// with the frame's kept intervals drawn at their mean depth and the gap
// midpoint marked on the column axis. The format follows the extension of
// path. g must be the frame as it was before scanning: a consumed grid is
// all zero.
func PlotColumnProfile(path string, g *l2grid.Grid, res *pipeline.FrameResult) error {
	if g == nil || res == nil {
		return errors.New("monitor: nil grid or result")
	}
	if g.Cols() != res.Width {
		return fmt.Errorf("monitor: grid width %d does not match result width %d", g.Cols(), res.Width)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Frame %d - %s", res.FrameIndex, res.Label())
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Nearest depth (m)"
	p.X.Min = 0
	p.X.Max = float64(g.Cols() - 1)

	nearest := g.ColumnNearest()
	pts := make(plotter.XYs, len(nearest))
	for c, d := range nearest {
		pts[c] = plotter.XY{X: float64(c), Y: d}
	}
	profile, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("profile line: %w", err)
	}
	profile.Color = profileColor
	profile.Width = vg.Points(1)
	p.Add(profile)
	p.Legend.Add("nearest", profile)

	for i, r := range res.Regions {
		seg, err := plotter.NewLine(plotter.XYs{
			{X: float64(r.ColMin), Y: r.MeanDepth},
			{X: float64(r.ColMax), Y: r.MeanDepth},
		})
		if err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
		seg.Color = intervalColor
		seg.Width = vg.Points(3)
		p.Add(seg)
		if i == 0 {
			p.Legend.Add("interval", seg)
		}
	}

	if res.Decision.Decided {
		mark, err := plotter.NewScatter(plotter.XYs{{X: float64(res.Decision.Gap.Midpoint), Y: 0}})
		if err != nil {
			return fmt.Errorf("gap marker: %w", err)
		}
		mark.GlyphStyle.Color = gapColor
		mark.GlyphStyle.Shape = draw.CrossGlyph{}
		mark.GlyphStyle.Radius = vg.Points(5)
		p.Add(mark)
		p.Legend.Add(fmt.Sprintf("gap midpoint (%s)", res.Label()), mark)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
