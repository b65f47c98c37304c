package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/domain/repository"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
)

var (
	errNoValues       = errors.New("chart has no values")
	errLabelsMismatch = errors.New("chart labels and values differ in length")

	barColor  = drawing.ColorFromHex("1f77b4")
	lineColor = drawing.ColorFromHex("ff7f0e")
)

// Renderer rasterizes chart specifications to PNG with go-chart.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer creates a PNG chart renderer.
func NewRenderer() repository.ChartRenderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Render draws spec as a PNG image.
func (r *Renderer) Render(spec entity.ChartSpec) ([]byte, error) {
	if len(spec.Values) == 0 {
		return nil, fmt.Errorf("%s: %w", spec.Title, errNoValues)
	}
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("%s: %w", spec.Title, errLabelsMismatch)
	}
	if spec.Width <= 0 {
		spec.Width = defaultWidth
	}
	if spec.Height <= 0 {
		spec.Height = defaultHeight
	}

	var buf bytes.Buffer
	var err error
	// A line needs two points to span the x axis.
	if spec.Kind == entity.ChartLine && len(spec.Values) > 1 {
		err = r.lineChart(spec).Render(gochart.PNG, &buf)
	} else {
		err = r.barChart(spec).Render(gochart.PNG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("error rendering chart %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return r.printer.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}

func yRange(values []float64) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi * 1.1}
}

func (r *Renderer) barChart(spec entity.ChartSpec) gochart.BarChart {
	bars := make([]gochart.Value, len(spec.Values))
	for i, v := range spec.Values {
		bars[i] = gochart.Value{
			Label: spec.Labels[i],
			Value: v,
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}

	barWidth := spec.Width / (2*len(bars) + 1)
	if barWidth > 80 {
		barWidth = 80
	}

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		XAxis:      gochart.Style{FontSize: 9},
		YAxis: gochart.YAxis{
			Range:          yRange(spec.Values),
			ValueFormatter: r.formatValue,
		},
		Bars: bars,
	}
}

func (r *Renderer) lineChart(spec entity.ChartSpec) gochart.Chart {
	xs := make([]float64, len(spec.Values))
	ticks := make([]gochart.Tick, len(spec.Values))
	for i := range spec.Values {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: spec.Labels[i]}
	}

	return gochart.Chart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Style: gochart.Style{FontSize: 8},
		},
		YAxis: gochart.YAxis{
			Range:          yRange(spec.Values),
			ValueFormatter: r.formatValue,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: spec.Values,
				Style:   gochart.Style{StrokeColor: lineColor, StrokeWidth: 2, DotWidth: 3, DotColor: lineColor},
			},
		},
	}
}
