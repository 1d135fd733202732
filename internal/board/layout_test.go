package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaz17899/game-hub/internal/config"
)

func defaultConfig() config.PlinkoConfig {
	return config.PlinkoConfig{
		RowCount:     config.DefaultRowCount,
		BasePegCount: config.DefaultBasePegCount,
		PegGap:       config.DefaultPegGap,
		RowGap:       config.DefaultRowGap,
		StartY:       config.DefaultStartY,
		BoardWidth:   config.DefaultBoardWidth,
		BoardHeight:  config.DefaultBoardHeight,
		Multipliers:  []float64{10, 5, 2, 1.5, 0.6, 0.3, 0.2, 0.3, 0.6, 1.5, 2, 5, 10},
	}
}

func TestNew_PegRowCounts(t *testing.T) {
	layout, err := New(defaultConfig())
	require.NoError(t, err)

	pegs := layout.Pegs()
	require.Len(t, pegs, config.DefaultRowCount)
	for r, row := range pegs {
		assert.Len(t, row, config.DefaultBasePegCount+r, "row %d", r)
	}
}

func TestNew_PegRowsCenteredAndSpaced(t *testing.T) {
	cfg := defaultConfig()
	layout, err := New(cfg)
	require.NoError(t, err)

	center := cfg.BoardWidth / 2
	for r, row := range layout.Pegs() {
		first, last := row[0], row[len(row)-1]
		assert.InDelta(t, center, (first.X+last.X)/2, 1e-9, "row %d should be centered", r)
		assert.InDelta(t, cfg.StartY+float64(r)*cfg.RowGap, first.Y, 1e-9)
		for i := 1; i < len(row); i++ {
			assert.InDelta(t, cfg.PegGap, row[i].X-row[i-1].X, 1e-9)
		}
	}
}

func TestNew_BucketCountIsFinalRowPegsPlusOne(t *testing.T) {
	layout, err := New(defaultConfig())
	require.NoError(t, err)

	finalRowPegs := config.DefaultBasePegCount + config.DefaultRowCount - 1
	assert.Equal(t, finalRowPegs+1, layout.BucketCount())
}

func TestNew_BucketsPartitionBoardExactly(t *testing.T) {
	cfg := defaultConfig()
	layout, err := New(cfg)
	require.NoError(t, err)

	buckets := layout.Buckets()
	assert.Equal(t, 0.0, buckets[0].Left)
	assert.Equal(t, cfg.BoardWidth, buckets[len(buckets)-1].Right)
	for i := 0; i < len(buckets)-1; i++ {
		assert.Equal(t, buckets[i].Right, buckets[i+1].Left,
			"bucket %d right bound must equal bucket %d left bound", i, i+1)
	}
	for i, b := range buckets {
		assert.Less(t, b.Left, b.Right, "bucket %d must be non-empty", i)
	}
}

func TestNew_Deterministic(t *testing.T) {
	cfg := defaultConfig()
	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Pegs(), b.Pegs())
	assert.Equal(t, a.Buckets(), b.Buckets())
	assert.Equal(t, a.SensorY(), b.SensorY())
}

func TestNew_MultiplierMismatchFlagged(t *testing.T) {
	cfg := defaultConfig()
	cfg.Multipliers = []float64{1, 2, 3} // 13 buckets expected

	layout, err := New(cfg)
	require.NoError(t, err, "mismatch must not be a construction error")
	assert.True(t, layout.MultiplierMismatch())
}

func TestNew_MatchingMultipliersNotFlagged(t *testing.T) {
	layout, err := New(defaultConfig())
	require.NoError(t, err)
	assert.False(t, layout.MultiplierMismatch())
}

func TestNew_SensorBelowFinalRow(t *testing.T) {
	cfg := defaultConfig()
	layout, err := New(cfg)
	require.NoError(t, err)

	finalRowY := cfg.StartY + float64(cfg.RowCount-1)*cfg.RowGap
	assert.Greater(t, layout.SensorY(), finalRowY)
	assert.LessOrEqual(t, layout.SensorY(), cfg.BoardHeight)
}

func TestNew_InvalidConfigurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.PlinkoConfig)
	}{
		{"zero rows", func(c *config.PlinkoConfig) { c.RowCount = 0 }},
		{"zero base pegs", func(c *config.PlinkoConfig) { c.BasePegCount = 0 }},
		{"negative peg gap", func(c *config.PlinkoConfig) { c.PegGap = -1 }},
		{"zero row gap", func(c *config.PlinkoConfig) { c.RowGap = 0 }},
		{"zero width", func(c *config.PlinkoConfig) { c.BoardWidth = 0 }},
		{"zero height", func(c *config.PlinkoConfig) { c.BoardHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}
