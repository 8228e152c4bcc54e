// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockseries groups lock benchmark samples into per-category
// series and normalizes them against a reference series.
//
// Sample i of every series in a log was recorded at the same step of
// the benchmark, so the series must stay index-aligned: a sample may
// never be dropped from one series without being dropped from all of
// them. For this reason everything in this package fails on the first
// inconsistency rather than skipping data.
package lockseries

import (
	"fmt"

	"github.com/lockbench/lockperf/lockfmt"
)

// A Bucket is the net work of one category's samples, in the order
// they appear in the log.
type Bucket []int64

// An UnknownCategoryError reports a sample whose category is not in
// the log's Domain.
type UnknownCategoryError struct {
	Category string
	FileName string
	Line     int
}

func (e *UnknownCategoryError) Error() string {
	if e.FileName == "" && e.Line == 0 {
		return fmt.Sprintf("unknown category %q", e.Category)
	}
	return fmt.Sprintf("%s:%d: unknown category %q", e.FileName, e.Line, e.Category)
}

// A LengthMismatchError reports two series that should be aligned but
// have different lengths, usually because a log was truncated.
type LengthMismatchError struct {
	Target, Reference       string // Labels of the two series
	TargetLen, ReferenceLen int
}

func (e *LengthMismatchError) Error() string {
	t, r := e.Target, e.Reference
	if t == "" {
		t = "target"
	}
	if r == "" {
		r = "reference"
	}
	return fmt.Sprintf("series %s has %d samples but %s has %d", t, e.TargetLen, r, e.ReferenceLen)
}

// Options controls an Aggregator.
type Options struct {
	// Lenient drops samples with unknown categories instead of
	// failing. This is only safe if the unknown category is wholly
	// foreign to the log, since it does not drop the samples of the
	// other categories recorded at the same step.
	Lenient bool

	// Warn, if non-nil, is called for each sample dropped in Lenient
	// mode.
	Warn func(format string, args ...interface{})
}

// Buckets is the per-category result of aggregating a log.
type Buckets struct {
	keys    []Key
	buckets map[Key]Bucket
	dropped int
}

// Keys returns the categories of b in domain order.
func (b *Buckets) Keys() []Key {
	return b.keys
}

// Get returns the bucket for k.
func (b *Buckets) Get(k Key) (Bucket, bool) {
	bucket, ok := b.buckets[k]
	return bucket, ok
}

// Dropped returns the number of samples dropped in Lenient mode.
func (b *Buckets) Dropped() int {
	return b.dropped
}

// Aligned returns a *LengthMismatchError if the buckets of b are not
// all the same length.
func (b *Buckets) Aligned() error {
	if len(b.keys) == 0 {
		return nil
	}
	first := b.keys[0]
	for _, k := range b.keys[1:] {
		if len(b.buckets[k]) != len(b.buckets[first]) {
			return &LengthMismatchError{
				Target: string(k), TargetLen: len(b.buckets[k]),
				Reference: string(first), ReferenceLen: len(b.buckets[first]),
			}
		}
	}
	return nil
}

// An Aggregator collects samples into per-category buckets.
type Aggregator struct {
	domain Domain
	opts   Options
	b      Buckets
}

// NewAggregator returns an Aggregator with one empty bucket for each
// category of d.
func NewAggregator(d Domain, opts Options) *Aggregator {
	a := &Aggregator{domain: d, opts: opts}
	a.b.keys = d.Keys()
	a.b.buckets = make(map[Key]Bucket, len(a.b.keys))
	for _, k := range a.b.keys {
		a.b.buckets[k] = Bucket{}
	}
	return a
}

// Add appends the net work of s to the bucket of its category.
// If the category is not in the Aggregator's domain, Add returns an
// *UnknownCategoryError, or drops the sample in Lenient mode.
func (a *Aggregator) Add(s lockfmt.Sample) error {
	k, ok := a.domain.Lookup(s.Category)
	if !ok {
		file, line := s.Pos()
		err := &UnknownCategoryError{Category: s.Category, FileName: file, Line: line}
		if !a.opts.Lenient {
			return err
		}
		a.b.dropped++
		if a.opts.Warn != nil {
			a.opts.Warn("dropping sample: %v\n", err)
		}
		return nil
	}
	a.b.buckets[k] = append(a.b.buckets[k], s.NetWork())
	return nil
}

// AddFiles reads every sample from files and adds it. It stops at the
// first read or category error and closes files before returning.
func (a *Aggregator) AddFiles(files *lockfmt.Files) error {
	defer files.Close()
	for files.Scan() {
		if err := a.Add(files.Sample()); err != nil {
			return err
		}
	}
	return files.Err()
}

// Buckets returns the buckets collected so far.
func (a *Aggregator) Buckets() *Buckets {
	return &a.b
}

// Aggregate groups samples by category, preserving their order.
func Aggregate(samples []lockfmt.Sample, d Domain, opts Options) (*Buckets, error) {
	a := NewAggregator(d, opts)
	for _, s := range samples {
		if err := a.Add(s); err != nil {
			return nil, err
		}
	}
	return a.Buckets(), nil
}
