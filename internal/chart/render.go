// Package chart draws the healthy/faulted sequence-current comparison as a PNG.
package chart

import (
	"context"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"bcf-backend/internal/simulation"
)

// Series colours match the browser chart.
var (
	positiveColor = drawing.Color{R: 20, G: 184, B: 166, A: 191}
	negativeColor = drawing.Color{R: 14, G: 165, B: 233, A: 191}
)

// Options sizes the rendered image.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns the size used by the HTTP endpoint.
func DefaultOptions() Options {
	return Options{
		Width:  640,
		Height: 400,
		Title:  "Sequence currents: healthy vs faulted",
	}
}

// RenderPNG writes a bar chart with one I1 and one I2 bar per scenario.
func RenderPNG(w io.Writer, data simulation.ChartData, opts Options) error {
	if err := data.Healthy.Validate(); err != nil {
		return fmt.Errorf("render chart: healthy: %w", err)
	}
	if err := data.Faulted.Validate(); err != nil {
		return fmt.Errorf("render chart: faulted: %w", err)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	graph := gochart.BarChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   opts.Width / 8,
		BarSpacing: opts.Width / 16,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Range: yRange(data)},
		Bars: []gochart.Value{
			bar("Healthy I1", data.Healthy.I1, positiveColor),
			bar("Healthy I2", data.Healthy.I2, negativeColor),
			bar("Faulted I1", data.Faulted.I1, positiveColor),
			bar("Faulted I2", data.Faulted.I2, negativeColor),
		},
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func bar(label string, v float64, col drawing.Color) gochart.Value {
	return gochart.Value{
		Label: label,
		Value: v,
		Style: gochart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
	}
}

// yRange pins the axis at zero; go-chart rejects an empty range, so all-zero
// data still gets a unit axis.
func yRange(data simulation.ChartData) *gochart.ContinuousRange {
	top := 0.0
	for _, v := range []float64{data.Healthy.I1, data.Healthy.I2, data.Faulted.I1, data.Faulted.I2} {
		if v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: top * 1.1}
}

// DataSource supplies the readings to draw.
type DataSource interface {
	ChartData(ctx context.Context) (simulation.ChartData, simulation.Source)
}
