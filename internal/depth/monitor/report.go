package monitor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/depth.steer/internal/depth/pipeline"
)

// RenderRunReport writes an HTML page with the steering heading and the
// interval count of each frame. Undecided frames leave a hole in the
// heading series.
func RenderRunReport(w io.Writer, results []*pipeline.FrameResult) error {
	runID := ""
	x := make([]string, 0, len(results))
	headings := make([]opts.LineData, 0, len(results))
	counts := make([]opts.BarData, 0, len(results))
	left, right := 0, 0

	for _, r := range results {
		if runID == "" {
			runID = r.RunID
		}
		x = append(x, strconv.Itoa(r.FrameIndex))
		if r.Decision.Decided {
			headings = append(headings, opts.LineData{Value: r.Decision.Heading, Name: r.Label()})
		} else {
			headings = append(headings, opts.LineData{Value: nil, Name: r.Label()})
		}
		counts = append(counts, opts.BarData{Value: len(r.Intervals)})

		switch r.Label() {
		case "left":
			left++
		case "right":
			right++
		}
	}

	subtitle := fmt.Sprintf("run=%s frames=%d left=%d right=%d", runID, len(results), left, right)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Depth steering run", Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Steering heading", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Heading", Min: 0, Max: 1}),
	)
	line.SetXAxis(x).AddSeries("heading", headings)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: "Kept intervals per frame"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("intervals", counts)

	page := components.NewPage().SetPageTitle("Depth steering run")
	page.AddCharts(line, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render run report: %w", err)
	}
	return nil
}
