// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockchart

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/lockbench/lockperf/lockunit"
)

const xColumn = "x"

// WriteTable writes the data of c to w as an aligned text table with
// one row per sample. The first column is the sample's x coordinate
// as a percentage; each further column is one series, in order.
func WriteTable(w io.Writer, c *LineChart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	xs := c.X()
	xcol := make([]string, len(xs))
	for i, x := range xs {
		xcol[i] = lockunit.Percent(x)
	}

	b := table.NewBuilder(nil).Add(xColumn, xcol)
	formats := []string{"%s"}
	for _, l := range c.Lines {
		if l.Label == xColumn {
			return fmt.Errorf("series label %q is reserved", xColumn)
		}
		b.Add(l.Label, l.Values)
		formats = append(formats, "%.3f")
	}
	return table.Fprint(w, b.Done(), formats...)
}
