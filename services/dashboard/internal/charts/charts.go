package charts

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/energia-abierta/brasil-consumo-viewer/internal/aggregate"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

func render(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// BarChart draws one bar per aggregated group, in the order given.
func BarChart(title, unit string, rows []aggregate.Row) ([]byte, error) {
	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Sum
		labels[i] = row.Key[0]
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = fmt.Sprintf("Consumo (%s)", unit)

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(labels...)

	return render(p)
}

// LineChart draws the consumption time series.
func LineChart(title, unit string, points []aggregate.Point) ([]byte, error) {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Timestamp.Unix())
		xys[i].Y = pt.Total
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = fmt.Sprintf("Consumo (%s)", unit)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	return render(p)
}

// Histogram draws the distribution of the measure values.
func Histogram(title, unit string, values []float64) ([]byte, error) {
	vs := make(plotter.Values, len(values))
	copy(vs, values)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("Consumo (%s)", unit)

	hist, err := plotter.NewHist(vs, 30)
	if err != nil {
		return nil, err
	}
	hist.FillColor = plotutil.Color(1)
	p.Add(hist)

	return render(p)
}
