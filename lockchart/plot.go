// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockchart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Default image sizes.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// PlotRenderer renders charts with gonum.org/v1/plot and writes the
// image to W.
type PlotRenderer struct {
	W io.Writer

	// Format is any image format gonum/plot supports, such as "png",
	// "svg" or "pdf". It defaults to "png".
	Format string

	// Width and Height default to DefaultWidth and DefaultHeight.
	Width, Height vg.Length
}

func (r *PlotRenderer) RenderLines(c *LineChart) error {
	p, err := LinePlot(c)
	if err != nil {
		return err
	}
	return r.write(p)
}

func (r *PlotRenderer) RenderBars(c *BarChart) error {
	p, err := BarPlot(c)
	if err != nil {
		return err
	}
	return r.write(p)
}

func (r *PlotRenderer) write(p *plot.Plot) error {
	format := r.Format
	if format == "" {
		format = "png"
	}
	w, h := r.Width, r.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(r.W)
	return err
}

// LinePlot builds the plot of c: one line per series, x ticks labeled
// as percentages, y tick labels along the right edge, a grid, and a
// legend.
func LinePlot(c *LineChart) (*plot.Plot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Legend.Top = true

	p.Add(plotter.NewGrid())

	xs := c.X()
	for i, l := range c.Lines {
		// NaN ratios leave gaps in the line.
		var thumb plot.Thumbnailer
		for _, seg := range segments(xs, l.Values) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", l.Label, err)
			}
			line.Color = plotutil.Color(i)
			line.Width = vg.Points(1.5)
			p.Add(line)
			if thumb == nil {
				thumb = line
			}
		}
		if thumb != nil {
			p.Legend.Add(l.Label, thumb)
		}
	}

	p.X.Tick.Marker = percentTicks{step: c.TickStep}
	p.Y.Tick.Label.Color = color.Transparent
	p.Add(trailingTicks{})
	return p, nil
}

// segments splits the points (xs[i], ys[i]) into runs of non-NaN y.
func segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i, y := range ys {
		if math.IsNaN(y) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// barPos is the center of each bar as a fraction of the y range.
var barPos = [2]float64{0.15, 0.4}

// BarPlot builds the plot of c: two horizontal bars annotated with
// their values, on fixed axes.
func BarPlot(c *BarChart) (*plot.Plot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	xMax, yMax := c.bounds()

	p := plot.New()
	p.Title.Text = c.Title
	p.Y.Label.Text = c.Axis
	p.Y.Tick.Marker = plot.ConstantTicks{}
	p.Legend.Top = true

	var (
		xys    plotter.XYs
		labels []string
	)
	for i, b := range c.Bars {
		bar, err := plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(36))
		if err != nil {
			return nil, fmt.Errorf("bar %s: %w", b.Label, err)
		}
		bar.Horizontal = true
		bar.XMin = barPos[i] * yMax
		bar.Color = plotutil.Color(i)
		bar.LineStyle.Width = 0
		p.Add(bar)
		p.Legend.Add(b.Label, bar)

		xys = append(xys, plotter.XY{X: b.Value, Y: bar.XMin})
		labels = append(labels, b.annotation())
	}

	ann, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range ann.TextStyle {
		ann.TextStyle[i].XAlign = text.XLeft
		ann.TextStyle[i].YAlign = text.YCenter
	}
	ann.Offset = vg.Point{X: vg.Points(4)}
	p.Add(ann)

	// Add grows the axes to fit the data, so fix them afterwards.
	p.X.Min, p.X.Max = 0, xMax
	p.Y.Min, p.Y.Max = 0, yMax
	return p, nil
}
