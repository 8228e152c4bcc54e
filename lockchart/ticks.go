// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockchart

import (
	"image/color"
	"math"

	"github.com/lockbench/lockperf/lockunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// maxTicks bounds the number of ticks percentTicks generates for a
// fixed step before falling back to automatic placement.
const maxTicks = 200

// percentTicks labels x ticks as percentages. If step is non-zero,
// ticks are placed at every multiple of step.
type percentTicks struct {
	step float64
}

func (t percentTicks) Ticks(min, max float64) []plot.Tick {
	if t.step <= 0 || (max-min)/t.step > maxTicks {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			if ticks[i].Label != "" {
				ticks[i].Label = lockunit.Percent(ticks[i].Value)
			}
		}
		return ticks
	}
	var ticks []plot.Tick
	const eps = 1e-9
	for k := math.Ceil(min/t.step - eps); k*t.step <= max+t.step*eps; k++ {
		x := k * t.step
		ticks = append(ticks, plot.Tick{Value: x, Label: lockunit.Percent(x)})
	}
	return ticks
}

// trailingTicks draws the major y tick labels of a plot inside its
// right edge. The plot's own y tick labels should be made transparent
// so they keep their space on the left without being seen.
type trailingTicks struct{}

func (trailingTicks) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	sty := plt.Y.Tick.Label
	sty.Color = color.Black
	sty.XAlign = text.XRight
	sty.YAlign = text.YCenter
	x := c.Max.X - vg.Points(2)
	for _, t := range plt.Y.Tick.Marker.Ticks(plt.Y.Min, plt.Y.Max) {
		if t.IsMinor() {
			continue
		}
		y := trY(t.Value)
		if !c.ContainsY(y) {
			continue
		}
		c.FillText(sty, vg.Point{X: x, Y: y}, t.Label)
	}
}
