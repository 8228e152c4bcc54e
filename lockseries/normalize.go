// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockseries

import (
	"fmt"
	"math"
)

// A ZeroPolicy says what Normalize does with a zero reference value.
type ZeroPolicy int

const (
	// ZeroFail makes a zero reference value a *DivisionByZeroError.
	ZeroFail ZeroPolicy = iota
	// ZeroNaN makes the ratio at a zero reference value NaN.
	ZeroNaN
)

// ParseZeroPolicy parses "fail" or "nan".
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch s {
	case "", "fail":
		return ZeroFail, nil
	case "nan", "NaN":
		return ZeroNaN, nil
	}
	return 0, fmt.Errorf("unknown zero policy %q (want fail or nan)", s)
}

func (p ZeroPolicy) String() string {
	if p == ZeroNaN {
		return "nan"
	}
	return "fail"
}

// A DivisionByZeroError reports a zero reference value.
type DivisionByZeroError struct {
	Reference string // Label of the reference series, if known
	Index     int
}

func (e *DivisionByZeroError) Error() string {
	if e.Reference == "" {
		return fmt.Sprintf("reference value at sample %d is zero", e.Index)
	}
	return fmt.Sprintf("reference %s is zero at sample %d", e.Reference, e.Index)
}

// Normalize returns target[i]/reference[i] for each i. It fails with
// a *LengthMismatchError if the buckets differ in length and with a
// *DivisionByZeroError if any reference value is zero.
func Normalize(target, reference Bucket) ([]float64, error) {
	return NormalizeWith(target, reference, ZeroFail)
}

// NormalizeWith is like Normalize, but handles zero reference values
// according to policy.
func NormalizeWith(target, reference Bucket, policy ZeroPolicy) ([]float64, error) {
	if len(target) != len(reference) {
		return nil, &LengthMismatchError{TargetLen: len(target), ReferenceLen: len(reference)}
	}
	ratios := make([]float64, len(target))
	for i, ref := range reference {
		if ref == 0 {
			if policy != ZeroNaN {
				return nil, &DivisionByZeroError{Index: i}
			}
			ratios[i] = math.NaN()
			continue
		}
		ratios[i] = float64(target[i]) / float64(ref)
	}
	return ratios, nil
}

// A Series is a labeled normalized series.
type Series struct {
	Label  string
	Ratios []float64
}

// A Reference selects the divisor for NormalizeAll: either a category
// of the log being normalized, or a bucket from a separate log.
type Reference struct {
	Key    Key    // Category of the same log; used if Bucket is nil
	Bucket Bucket // Baseline read from a separate log
	Label  string // Label for error messages
}

func (r Reference) resolve(b *Buckets, d Domain) (Bucket, string, error) {
	if r.Bucket != nil {
		label := r.Label
		if label == "" {
			label = "reference"
		}
		return r.Bucket, label, nil
	}
	bucket, ok := b.Get(r.Key)
	if !ok {
		return nil, "", &UnknownCategoryError{Category: string(r.Key)}
	}
	label := r.Label
	if label == "" {
		label = d.Label(r.Key)
	}
	return bucket, label, nil
}

// NormalizeAll normalizes every bucket of b against ref and labels the
// results using d. The buckets and the reference must all be the same
// length.
func NormalizeAll(b *Buckets, d Domain, ref Reference, policy ZeroPolicy) ([]Series, error) {
	refBucket, refLabel, err := ref.resolve(b, d)
	if err != nil {
		return nil, err
	}
	if err := b.Aligned(); err != nil {
		if lm, ok := err.(*LengthMismatchError); ok {
			lm.Target, lm.Reference = d.Label(Key(lm.Target)), d.Label(Key(lm.Reference))
		}
		return nil, err
	}
	out := make([]Series, 0, len(b.Keys()))
	for _, k := range b.Keys() {
		bucket, _ := b.Get(k)
		label := d.Label(k)
		ratios, err := NormalizeWith(bucket, refBucket, policy)
		if err != nil {
			switch err := err.(type) {
			case *LengthMismatchError:
				err.Target, err.Reference = label, refLabel
			case *DivisionByZeroError:
				err.Reference = refLabel
			}
			return nil, err
		}
		out = append(out, Series{Label: label, Ratios: ratios})
	}
	return out, nil
}
