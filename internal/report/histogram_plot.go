package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/qbd_simulator_go/internal/simulation"
)

// CreateHistogramPlot renders the result's histogram as a PNG bar chart
// with the specification window overlaid as dashed limit lines. Bars sit
// at index positions 0..len(bins)-1; the limit lines are mapped into that
// coordinate space from the bin width.
func CreateHistogramPlot(result *simulation.SimulationResult, spec simulation.Specification) ([]byte, error) {
	bins := result.Histogram
	if len(bins) == 0 {
		return nil, fmt.Errorf("no histogram bins to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Distribution (%d iterations)", result.ResponseName, result.Iterations)
	p.X.Label.Text = labelWithUnit("Response", result.Unit)
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(bins))
	maxCount := 0
	for i, bin := range bins {
		values[i] = float64(bin.Count)
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	barWidth := vg.Points(600.0 / float64(len(bins)))
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to create bar chart: %v", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)

	labels := make([]string, len(bins))
	step := len(bins) / 10
	if step < 1 {
		step = 1
	}
	for i, bin := range bins {
		if i%step == 0 {
			labels[i] = fmt.Sprintf("%.1f", bin.BinStart)
		}
	}
	p.NominalX(labels...)

	if len(bins) > 1 {
		binWidth := bins[1].BinStart - bins[0].BinStart
		addLimitLine(p, specToBarX(spec.Lower, bins[0].BinStart, binWidth), len(bins), maxCount,
			color.RGBA{R: 255, A: 255}, fmt.Sprintf("Lower limit %.2f", spec.Lower))
		addLimitLine(p, specToBarX(spec.Upper, bins[0].BinStart, binWidth), len(bins), maxCount,
			color.RGBA{R: 255, A: 255}, fmt.Sprintf("Upper limit %.2f", spec.Upper))
		addLimitLine(p, specToBarX(spec.Target, bins[0].BinStart, binWidth), len(bins), maxCount,
			color.Gray{Y: 96}, fmt.Sprintf("Target %.2f", spec.Target))
	}
	p.Legend.Top = true

	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}

// specToBarX maps a response value into bar-index coordinates, where bin i
// is centered at x = i and covers [i-0.5, i+0.5).
func specToBarX(v, firstBinStart, binWidth float64) float64 {
	return (v-firstBinStart)/binWidth - 0.5
}

func addLimitLine(p *plot.Plot, x float64, numBins, maxCount int, c color.Color, label string) {
	// Skip lines that fall outside the plotted bin range so the axis does
	// not stretch to show an empty region.
	if x < -0.5 || x > float64(numBins)-0.5 {
		return
	}
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: float64(maxCount)}})
	if err != nil {
		return
	}
	line.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(line)
	p.Legend.Add(label, line)
}

func labelWithUnit(label, unit string) string {
	if unit == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, unit)
}
