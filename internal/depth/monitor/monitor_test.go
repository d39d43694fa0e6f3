package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
	"github.com/banshee-data/depth.steer/internal/depth/pipeline"
	"github.com/banshee-data/depth.steer/internal/testutil"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// process scans a copy of g and returns the result with the untouched grid.
func process(t *testing.T, index int, g *l2grid.Grid) (*l2grid.Grid, *pipeline.FrameResult) {
	t.Helper()
	p, err := pipeline.NewProcessor(nil)
	require.NoError(t, err)
	res, err := p.ProcessFrame(g.Clone())
	require.NoError(t, err)
	res.FrameIndex = index
	return g, res
}

func twoObstacles() *l2grid.Grid {
	return testutil.ObstacleGrid(6, 40,
		testutil.Obstacle{Col0: 2, Col1: 9, Depth: 1.5},
		testutil.Obstacle{Col0: 25, Col1: 31, Depth: 3})
}

func TestPlotColumnProfile(t *testing.T) {
	g, res := process(t, 7, twoObstacles())
	require.True(t, res.Decision.Decided)

	path := filepath.Join(t.TempDir(), ProfileFileName(res))
	require.NoError(t, PlotColumnProfile(path, g, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "output is not a PNG")
	assert.Equal(t, "frame_00007_profile.png", filepath.Base(path))
}

func TestPlotColumnProfile_Undecided(t *testing.T) {
	g, res := process(t, 0, l2grid.New(3, 10))
	require.False(t, res.Decision.Decided)

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, PlotColumnProfile(path, g, res))
}

func TestPlotColumnProfile_Rejects(t *testing.T) {
	g, res := process(t, 0, twoObstacles())
	dir := t.TempDir()

	assert.Error(t, PlotColumnProfile(filepath.Join(dir, "a.png"), nil, res))
	assert.Error(t, PlotColumnProfile(filepath.Join(dir, "b.png"), g, nil))
	assert.Error(t, PlotColumnProfile(filepath.Join(dir, "c.png"), l2grid.New(6, 12), res))
}

func TestRenderRunReport(t *testing.T) {
	var results []*pipeline.FrameResult
	for i := 0; i < 3; i++ {
		_, res := process(t, i, twoObstacles())
		res.RunID = "run-1234"
		results = append(results, res)
	}
	_, undecided := process(t, 3, l2grid.New(6, 40))
	results = append(results, undecided)

	var buf bytes.Buffer
	require.NoError(t, RenderRunReport(&buf, results))

	html := buf.String()
	assert.True(t, strings.Contains(html, "<html"), "missing html document")
	assert.Contains(t, html, "Steering heading")
	assert.Contains(t, html, "Kept intervals per frame")
	assert.Contains(t, html, "run=run-1234 frames=4")
}

func TestRenderRunReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRunReport(&buf, nil))
	assert.Contains(t, buf.String(), "frames=0")
}
