package l5steering

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/depth.steer/internal/depth/l4perception"
)

func regions(spans ...[2]int) []l4perception.Region {
	out := make([]l4perception.Region, len(spans))
	for i, s := range spans {
		out[i] = l4perception.Region{ColMin: s[0], ColMax: s[1]}
	}
	return out
}

func TestFindGap_NoDecision(t *testing.T) {
	for _, rs := range [][]l4perception.Region{nil, regions([2]int{3, 5})} {
		if _, ok := FindGap(rs); ok {
			t.Errorf("FindGap(%v) reported a gap", rs)
		}
	}
}

func TestFindGap_EarliestTieWins(t *testing.T) {
	gap, ok := FindGap(regions([2]int{0, 1}, [2]int{5, 6}, [2]int{10, 11}))
	require.True(t, ok)

	assert.Equal(t, Gap{Width: 4, Midpoint: 3, LeftIndex: 0}, gap)
}

func TestFindGap_Widest(t *testing.T) {
	gap, ok := FindGap(regions([2]int{0, 2}, [2]int{4, 6}, [2]int{20, 25}, [2]int{27, 30}))
	require.True(t, ok)

	assert.Equal(t, 14, gap.Width)
	assert.Equal(t, 13, gap.Midpoint)
	assert.Equal(t, 1, gap.LeftIndex)
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name      string
		regions   []l4perception.Region
		halfWidth float64
		want      Decision
	}{
		{
			name:      "undecided with no regions",
			halfWidth: 6,
			want:      Decision{Direction: Undecided},
		},
		{
			name:      "undecided with one region",
			regions:   regions([2]int{3, 5}),
			halfWidth: 4.5,
			want:      Decision{Direction: Undecided},
		},
		{
			name:      "midpoint at threshold steers right",
			regions:   regions([2]int{0, 1}, [2]int{5, 6}, [2]int{10, 11}),
			halfWidth: 6,
			want: Decision{
				Decided:    true,
				Gap:        Gap{Width: 4, Midpoint: 3, LeftIndex: 0},
				RawHeading: 0.5,
				Heading:    0.5,
				Direction:  Right,
			},
		},
		{
			name:      "gap on the right half steers left",
			regions:   regions([2]int{0, 2}, [2]int{4, 5}, [2]int{11, 11}),
			halfWidth: 6,
			want: Decision{
				Decided:    true,
				Gap:        Gap{Width: 6, Midpoint: 8, LeftIndex: 1},
				RawHeading: 8.0 / 6.0,
				Heading:    1,
				Direction:  Left,
			},
		},
		{
			name:      "explicit narrow half width",
			regions:   regions([2]int{0, 10}, [2]int{50, 60}),
			halfWidth: 160,
			want: Decision{
				Decided:    true,
				Gap:        Gap{Width: 40, Midpoint: 30, LeftIndex: 0},
				RawHeading: 30.0 / 160.0,
				Heading:    30.0 / 160.0,
				Direction:  Right,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Steer(tt.regions, tt.halfWidth, DefaultThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSteer_HeadingAlwaysInUnitRange(t *testing.T) {
	for mid := 0; mid < 40; mid++ {
		d, err := Steer(regions([2]int{0, mid}, [2]int{mid + 2, mid + 4}), 10, DefaultThreshold)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.Heading, 0.0)
		assert.LessOrEqual(t, d.Heading, 1.0)
	}
}

func TestSteer_InvalidParameters(t *testing.T) {
	rs := regions([2]int{0, 1}, [2]int{5, 6})

	for _, hw := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Steer(rs, hw, DefaultThreshold)
		if !errors.Is(err, ErrInvalidHalfWidth) {
			t.Errorf("Steer(halfWidth=%v) error = %v, want ErrInvalidHalfWidth", hw, err)
		}
	}
	for _, th := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := Steer(rs, 5, th)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("Steer(threshold=%v) error = %v, want ErrInvalidThreshold", th, err)
		}
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Right, Classify(0, 0.5))
	assert.Equal(t, Right, Classify(0.5, 0.5))
	assert.Equal(t, Left, Classify(0.5000001, 0.5))
	assert.Equal(t, Left, Classify(1, 0.5))
}

func TestDirection_JSON(t *testing.T) {
	b, err := json.Marshal(Decision{Direction: Left})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"direction":"left"`)

	var d Decision
	require.NoError(t, json.Unmarshal([]byte(`{"direction":"right"}`), &d))
	assert.Equal(t, Right, d.Direction)

	assert.Error(t, json.Unmarshal([]byte(`{"direction":"up"}`), &d))
	assert.Equal(t, "undecided", Undecided.String())
}
