// SPDX-License-Identifier: MIT
// Package render draws the geometric side of two operations with gonum/plot:
// the least-squares line through its sample points, and the singular-value
// spectrum behind a rank-k compression.
//
// Charts are written to an io.Writer in PNG or SVG; the package never touches
// the filesystem.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/linstory/matrix"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var (
	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("render: no data")

	// ErrFormat is returned for an output format other than png or svg.
	ErrFormat = errors.New("render: unsupported format")

	// ErrSize is returned for a non-positive canvas.
	ErrSize = errors.New("render: canvas size must be positive")
)

var (
	keptColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	droppedColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	lineColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Canvas is the output size and encoding of a chart.
type Canvas struct {
	WidthCm  float64
	HeightCm float64
	Format   string // FormatPNG or FormatSVG
}

// DefaultCanvas is a 12×9 cm PNG.
func DefaultCanvas() Canvas { return Canvas{WidthCm: 12, HeightCm: 9, Format: FormatPNG} }

func (c Canvas) validate() error {
	if !(c.WidthCm > 0) || !(c.HeightCm > 0) {
		return ErrSize
	}
	if c.Format != FormatPNG && c.Format != FormatSVG {
		return fmt.Errorf("%w: %q", ErrFormat, c.Format)
	}

	return nil
}

// write encodes p onto w at the canvas size.
func (c Canvas) write(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(vg.Length(c.WidthCm)*vg.Centimeter, vg.Length(c.HeightCm)*vg.Centimeter, c.Format)
	if err != nil {
		return fmt.Errorf("render: encoding %s: %w", c.Format, err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: writing %s: %w", c.Format, err)
	}

	return nil
}

// FitChart draws points as a scatter and line as a segment spanning their
// x-range.
//
// Errors:
//   - ErrNoData for no points, ErrFormat, ErrSize, or an encoder error.
func FitChart(w io.Writer, points []matrix.Point, line matrix.Line, c Canvas) error {
	if len(points) == 0 {
		return ErrNoData
	}
	if err := c.validate(); err != nil {
		return err
	}

	xys := make(plotter.XYs, len(points))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, pt := range points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
		lo, hi = math.Min(lo, pt.X), math.Max(hi, pt.X)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("y = %.2fx + %.2f", line.Slope, line.Intercept)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	fit, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: line.Slope*lo + line.Intercept},
		{X: hi, Y: line.Slope*hi + line.Intercept},
	})
	if err != nil {
		return fmt.Errorf("render: line: %w", err)
	}
	fit.Color = lineColor
	fit.Width = vg.Points(1.5)

	p.Add(scatter, fit)
	p.Legend.Add("points", scatter)
	p.Legend.Add("least squares", fit)

	return c.write(p, w)
}

// SpectrumChart draws the singular values as bars, highlighting the first k
// (the ones a rank-k reconstruction keeps). k = 0 highlights none.
//
// Errors:
//   - ErrNoData for an empty spectrum, matrix.ErrInvalidRank for k outside
//     [0, len(sigma)], ErrFormat, ErrSize, or an encoder error.
func SpectrumChart(w io.Writer, sigma []float64, k int, c Canvas) error {
	if len(sigma) == 0 {
		return ErrNoData
	}
	if k < 0 || k > len(sigma) {
		return fmt.Errorf("render: k=%d: %w", k, matrix.ErrInvalidRank)
	}
	if err := c.validate(); err != nil {
		return err
	}

	kept := make(plotter.Values, len(sigma))
	dropped := make(plotter.Values, len(sigma))
	names := make([]string, len(sigma))
	for i, s := range sigma {
		if i < k {
			kept[i] = s
		} else {
			dropped[i] = s
		}
		names[i] = fmt.Sprintf("σ%d", i+1)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Singular values (top %d kept)", k)
	p.Y.Label.Text = "σ"
	p.Add(plotter.NewGrid())

	width := vg.Points(18)
	keptBars, err := plotter.NewBarChart(kept, width)
	if err != nil {
		return fmt.Errorf("render: bars: %w", err)
	}
	keptBars.Color = keptColor
	keptBars.LineStyle.Width = 0

	droppedBars, err := plotter.NewBarChart(dropped, width)
	if err != nil {
		return fmt.Errorf("render: bars: %w", err)
	}
	droppedBars.Color = droppedColor
	droppedBars.LineStyle.Width = 0

	p.Add(keptBars, droppedBars)
	p.Legend.Add("kept", keptBars)
	p.Legend.Add("dropped", droppedBars)
	p.NominalX(names...)

	return c.write(p, w)
}
