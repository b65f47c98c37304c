package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/retail-report-go/internal/domain/entity"
)

func TestRender_BarChart(t *testing.T) {
	img, err := NewRenderer().Render(entity.ChartSpec{
		Title:  "Revenue by Region",
		Kind:   entity.ChartBar,
		Labels: []string{"East", "North", "West"},
		Values: []float64{1200, 800, 1400},
		Width:  640,
		Height: 320,
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 320, cfg.Height)
}

func TestRender_LineChartDefaultsSize(t *testing.T) {
	img, err := NewRenderer().Render(entity.ChartSpec{
		Title:  "Monthly Revenue Trend",
		Kind:   entity.ChartLine,
		Labels: []string{"2024-01", "2024-02", "2024-03"},
		Values: []float64{1000, 1200, 900},
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, defaultWidth, cfg.Width)
	assert.Equal(t, defaultHeight, cfg.Height)
}

func TestRender_SinglePointLineAndZeroValues(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render(entity.ChartSpec{Title: "Trend", Kind: entity.ChartLine, Labels: []string{"2024-01"}, Values: []float64{500}})
	assert.NoError(t, err)

	_, err = r.Render(entity.ChartSpec{Title: "Zero", Kind: entity.ChartBar, Labels: []string{"A", "B"}, Values: []float64{0, 0}})
	assert.NoError(t, err)
}

func TestRender_InvalidSpecs(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render(entity.ChartSpec{Title: "Empty", Kind: entity.ChartBar})
	assert.ErrorIs(t, err, errNoValues)

	_, err = r.Render(entity.ChartSpec{Title: "Mismatch", Kind: entity.ChartBar, Labels: []string{"A"}, Values: []float64{1, 2}})
	assert.ErrorIs(t, err, errLabelsMismatch)
}
