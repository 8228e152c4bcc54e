// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockunit

import (
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number of seconds and
// its unit.
type Scaler struct {
	Prec   int     // Significant digits
	Factor float64 // Unscaled value of 1 Unit (e.g., 1 ns => 1e-9)
	Unit   string  // Unit name ("s", "ms", "us", "ns")
}

// Format formats val, a number of seconds, in the Scaler's unit.
// Trailing zeros are dropped, so Format(1e-8) with the nanosecond
// scale returns "10 ns".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'g', s.Prec, 64)
	buf = append(buf, ' ')
	buf = append(buf, s.Unit...)
	return string(buf)
}

// FormatFixed is like Format, but always shows the given number of
// decimal places, so FormatFixed(2.1e-8, 1) with the nanosecond scale
// returns "21.0 ns".
func (s Scaler) FormatFixed(val float64, decimals int) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', decimals, 64)
	buf = append(buf, ' ')
	buf = append(buf, s.Unit...)
	return string(buf)
}

var secondScales = []Scaler{
	{3, 1, "s"},
	{3, 1e-3, "ms"},
	{3, 1e-6, "us"},
	{3, 1e-9, "ns"},
}

// SecondsScale returns the largest scale in which val, a number of
// seconds, is at least 1.
func SecondsScale(val float64) Scaler {
	abs := math.Abs(val)
	for _, s := range secondScales {
		// Compare against a hair under 1 so values that are 1 after
		// rounding (such as 0.9999999e-6) pick the larger unit.
		if abs >= s.Factor*0.9995 {
			return s
		}
	}
	return secondScales[len(secondScales)-1]
}

// FormatSeconds formats val, a number of seconds, with three
// significant digits in the most natural unit.
func FormatSeconds(val float64) string {
	return SecondsScale(val).Format(val)
}

// Percent formats a fraction as a percentage, such as "12.5%" for
// 0.125. It is used for axis labels, so it keeps at most four
// significant digits to hide floating point noise.
func Percent(frac float64) string {
	if frac == 0 {
		frac = 0 // Drop the sign of -0.
	}
	return strconv.FormatFloat(100*frac, 'g', 4, 64) + "%"
}
