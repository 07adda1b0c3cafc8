package dataset

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const DefaultHistogramBins = 20

// WriteHistogram renders the target distribution as a PNG image.
func (d *Dataset) WriteHistogram(w io.Writer, bins int) error {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	p := plot.New()
	p.Title.Text = d.target + " distribution"
	p.X.Label.Text = d.target
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(d.Target()), bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 79, G: 70, B: 229, A: 255}
	p.Add(h)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
