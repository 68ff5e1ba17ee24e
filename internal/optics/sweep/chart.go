package sweep

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// stokesSeries names the plotted Stokes parameters in sample order.
var stokesSeries = []string{"S0", "S1", "S2", "S3"}

var seriesColors = []color.Color{
	color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 255},
	color.RGBA{R: 0x31, G: 0x68, B: 0x8e, A: 255},
	color.RGBA{R: 0x35, G: 0xb7, B: 0x79, A: 255},
	color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 255},
}

func stokesValue(s Sample, i int) float64 {
	switch i {
	case 0:
		return s.Stokes.S0
	case 1:
		return s.Stokes.S1
	case 2:
		return s.Stokes.S2
	default:
		return s.Stokes.S3
	}
}

// RenderHTML writes an interactive line chart of the Stokes parameters
// against angle.
func RenderHTML(w io.Writer, title string, samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidRange)
	}

	x := make([]string, len(samples))
	for i, s := range samples {
		x[i] = formatFloat(s.AngleDeg)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("samples=%d", len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Angle (°)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -1, Max: 1, Name: "Stokes", NameLocation: "middle", NameGap: 30}),
	)
	line.SetXAxis(x)
	for i, name := range stokesSeries {
		data := make([]opts.LineData, len(samples))
		for j, s := range samples {
			data[j] = opts.LineData{Value: stokesValue(s, i)}
		}
		line.AddSeries(name, data)
	}
	return line.Render(w)
}

// SavePlot writes a static plot of the Stokes parameters against angle to
// path. The image format follows the file extension.
func SavePlot(path, title string, samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidRange)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Angle (°)"
	p.Y.Label.Text = "Stokes"
	p.Y.Min, p.Y.Max = -1, 1

	for i, name := range stokesSeries {
		pts := make(plotter.XYs, len(samples))
		for j, s := range samples {
			pts[j] = plotter.XY{X: s.AngleDeg, Y: stokesValue(s, i)}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", name, err)
		}
		l.Color = seriesColors[i]
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(name, l)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
