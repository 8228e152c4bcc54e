// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockchart renders normalized lock benchmark series.
//
// A chart is described by a LineChart or a BarChart value and drawn
// by a Renderer. PlotRenderer draws with gonum.org/v1/plot; WriteTable
// prints the data of a LineChart as text.
package lockchart

import (
	"fmt"
)

// A Renderer draws charts.
type Renderer interface {
	RenderLines(c *LineChart) error
	RenderBars(c *BarChart) error
}

// A Line is one labeled series of a LineChart.
type Line struct {
	Label  string
	Values []float64
}

// A LineChart overlays one or more equal-length series. Sample i of
// every series is plotted at x = i*Interval.
type LineChart struct {
	Title string

	// Interval is the x distance between consecutive samples.
	Interval float64

	// TickStep is the x distance between labeled ticks. If zero,
	// tick positions are chosen automatically.
	TickStep float64

	Lines []Line
}

// Validate reports whether c can be rendered.
func (c *LineChart) Validate() error {
	if len(c.Lines) == 0 {
		return fmt.Errorf("line chart has no series")
	}
	if !(c.Interval > 0) {
		return fmt.Errorf("line chart interval %v is not positive", c.Interval)
	}
	if c.TickStep < 0 {
		return fmt.Errorf("line chart tick step %v is negative", c.TickStep)
	}
	n := len(c.Lines[0].Values)
	seen := make(map[string]bool)
	for _, l := range c.Lines {
		if len(l.Values) != n {
			return fmt.Errorf("series %s has %d values but %s has %d", l.Label, len(l.Values), c.Lines[0].Label, n)
		}
		if seen[l.Label] {
			return fmt.Errorf("duplicate series label %q", l.Label)
		}
		seen[l.Label] = true
	}
	return nil
}

// X returns the x coordinate of each sample.
func (c *LineChart) X() []float64 {
	if len(c.Lines) == 0 {
		return nil
	}
	xs := make([]float64, len(c.Lines[0].Values))
	for i := range xs {
		xs[i] = float64(i) * c.Interval
	}
	return xs
}

// A Bar is one configuration of a BarChart.
type Bar struct {
	Label string
	Value float64
	Unit  string // Annotation, such as "34.2 ns"; Value is used if empty
}

func (b Bar) annotation() string {
	if b.Unit != "" {
		return b.Unit
	}
	return fmt.Sprint(b.Value)
}

// Default axis bounds of a BarChart.
const (
	DefaultBarXMax = 60
	DefaultBarYMax = 1.4
)

// A BarChart compares two configurations as horizontal bars.
type BarChart struct {
	Title string
	Axis  string // Label of the category axis
	Bars  [2]Bar

	// XMax and YMax bound the axes; zero selects DefaultBarXMax and
	// DefaultBarYMax.
	XMax, YMax float64
}

// Validate reports whether c can be rendered.
func (c *BarChart) Validate() error {
	for _, b := range c.Bars {
		if b.Label == "" {
			return fmt.Errorf("bar chart has an unlabeled bar")
		}
		if b.Value < 0 {
			return fmt.Errorf("bar %s has negative value %v", b.Label, b.Value)
		}
	}
	if c.XMax < 0 || c.YMax < 0 {
		return fmt.Errorf("bar chart bounds must not be negative")
	}
	return nil
}

func (c *BarChart) bounds() (xMax, yMax float64) {
	xMax, yMax = c.XMax, c.YMax
	if xMax == 0 {
		xMax = DefaultBarXMax
	}
	if yMax == 0 {
		yMax = DefaultBarYMax
	}
	return
}
