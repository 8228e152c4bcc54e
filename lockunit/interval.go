// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockunit provides the enumerated lock-hold intervals used by
// the lock benchmark and helpers for formatting benchmark quantities.
package lockunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A LockInterval is one of the lock-hold durations the benchmark is
// configured to sweep over.
type LockInterval int

const (
	Interval10ns LockInterval = iota
	Interval31_6ns
	Interval100ns
	Interval316ns
	Interval1us
	Interval3_16us
	Interval10us
	Interval31_6us
	Interval100us

	numIntervals
)

var intervalSeconds = [numIntervals]float64{
	1e-8, 3.16e-8,
	1e-7, 3.16e-7,
	1e-6, 3.16e-6,
	1e-5, 3.16e-5,
	1e-4,
}

// intervalTolerance is the relative error allowed when matching a
// logged interval. The benchmark stores intervals as float32, so a
// logged value is only accurate to about 1e-7.
const intervalTolerance = 1e-3

// Intervals returns every LockInterval, shortest first.
func Intervals() []LockInterval {
	out := make([]LockInterval, numIntervals)
	for i := range out {
		out[i] = LockInterval(i)
	}
	return out
}

// Valid reports whether i is one of the enumerated intervals.
func (i LockInterval) Valid() bool {
	return i >= 0 && i < numIntervals
}

// Seconds returns the lock-hold duration of i in seconds.
func (i LockInterval) Seconds() float64 {
	if !i.Valid() {
		return math.NaN()
	}
	return intervalSeconds[i]
}

// Key returns the canonical text form of i, matching what the
// benchmark prints for it (for example, "3.160000e-08").
func (i LockInterval) Key() string {
	return fmt.Sprintf("%e", i.Seconds())
}

// String returns a human-readable label for i, such as "31.6 ns".
func (i LockInterval) String() string {
	if !i.Valid() {
		return "LockInterval(" + strconv.Itoa(int(i)) + ")"
	}
	return FormatSeconds(i.Seconds())
}

// ParseLockInterval parses a lock interval in seconds, as printed by
// the benchmark, and returns the enumerated interval it denotes.
func ParseLockInterval(s string) (LockInterval, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -1, fmt.Errorf("parsing lock interval %q: %w", s, err)
	}
	for i, sec := range intervalSeconds {
		if math.Abs(v-sec) <= sec*intervalTolerance {
			return LockInterval(i), nil
		}
	}
	return -1, fmt.Errorf("%q is not a known lock interval", s)
}
