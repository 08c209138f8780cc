package report

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i474232898/weather-report/internal/weather"
)

// ChartOptions configures the daily mean temperature chart.
type ChartOptions struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultChartOptions returns a 12x6 inch chart titled for city.
func DefaultChartOptions(city string) ChartOptions {
	return ChartOptions{
		Title:  fmt.Sprintf("Températures moyennes à %s", city),
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

var (
	meanLineColor   = color.RGBA{B: 200, A: 255}
	periodLineColor = color.RGBA{R: 220, A: 180}
)

// RenderChart draws the daily means of r with a dashed reference line at the
// period mean and returns the PNG bytes.
func RenderChart(r weather.Report, opts ChartOptions) ([]byte, error) {
	if len(r.Days) == 0 {
		return nil, &weather.MissingDataError{Reason: "no daily temperatures to plot"}
	}

	first, err := time.Parse(weather.DateLayout, r.Days[0].Date)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}

	pts := make(plotter.XYs, len(r.Days))
	labels := make([]string, len(r.Days))
	ticks := make([]plot.Tick, len(r.Days))
	for i, d := range r.Days {
		day, err := time.Parse(weather.DateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("chart: %w", err)
		}
		x := day.Sub(first).Hours() / 24
		pts[i].X = x
		pts[i].Y = d.Mean
		labels[i] = fmt.Sprintf("%.1f°C", d.Mean)
		ticks[i] = plot.Tick{Value: x, Label: day.Format("02/01")}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Température (°C)"
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = meanLineColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Radius = vg.Points(4)
	points.GlyphStyle.Color = meanLineColor
	p.Add(line, points)
	p.Legend.Add("Température moyenne", line, points)

	periodMean := r.Period.Mean
	ref := plotter.NewFunction(func(float64) float64 { return periodMean })
	ref.LineStyle.Color = periodLineColor
	ref.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(ref)
	p.Legend.Add(fmt.Sprintf("Moyenne période: %.1f°C", periodMean), ref)

	// Shift value labels slightly above their points.
	labelPts := make(plotter.XYs, len(pts))
	copy(labelPts, pts)
	for i := range labelPts {
		labelPts[i].Y += 0.3
	}
	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	p.Add(valueLabels)

	last := pts[len(pts)-1].X
	p.X.Min = -0.5
	p.X.Max = last + 0.5
	p.Legend.Top = true

	w, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return buf.Bytes(), nil
}
