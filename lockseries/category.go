// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockseries

import (
	"strconv"
	"strings"

	"github.com/lockbench/lockperf/lockfmt"
	"github.com/lockbench/lockperf/lockunit"
)

// A Key identifies one category, and hence one series, of a log.
type Key string

// A Domain is the set of categories that may appear in one kind of
// log. The set is known before the log is read.
type Domain interface {
	// Lookup returns the canonical Key for raw, the category value as
	// it appears in a log line, and reports whether raw belongs to
	// the domain.
	Lookup(raw string) (Key, bool)

	// Keys returns every category in the domain, in display order.
	Keys() []Key

	// Label returns the legend label for k.
	Label(k Key) string
}

// Threads is the domain of a contention log: the ids of the threads
// that reported samples.
type Threads []int

// DefaultThreads are the worker threads of the contention benchmark.
// The benchmark numbers its coordinating thread 0; samples from it, or
// from any other id, need a wider Threads or Options.Lenient.
var DefaultThreads = Threads{1, 2, 3, 4}

func (t Threads) Lookup(raw string) (Key, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	for _, have := range t {
		if have == id {
			return Key(strconv.Itoa(id)), true
		}
	}
	return "", false
}

func (t Threads) Keys() []Key {
	keys := make([]Key, len(t))
	for i, id := range t {
		keys[i] = Key(strconv.Itoa(id))
	}
	return keys
}

func (t Threads) Label(k Key) string {
	return "thread" + string(k)
}

// Intervals is the domain of a frequency log: the lock-hold
// intervals the benchmark swept over.
type Intervals []lockunit.LockInterval

// AllIntervals returns the domain of every enumerated lock interval.
func AllIntervals() Intervals {
	return Intervals(lockunit.Intervals())
}

func (d Intervals) Lookup(raw string) (Key, bool) {
	iv, err := lockunit.ParseLockInterval(raw)
	if err != nil {
		return "", false
	}
	for _, have := range d {
		if have == iv {
			return Key(iv.Key()), true
		}
	}
	return "", false
}

func (d Intervals) Keys() []Key {
	keys := make([]Key, len(d))
	for i, iv := range d {
		keys[i] = Key(iv.Key())
	}
	return keys
}

func (d Intervals) Label(k Key) string {
	if iv, err := lockunit.ParseLockInterval(string(k)); err == nil {
		return iv.String()
	}
	return string(k)
}

// Single is the domain of a log with one implicit category, such as
// a reference log. Every sample belongs to it.
type Single struct {
	Name string // Legend label
}

// SingleKey is the Key of the only category of a Single domain.
const SingleKey Key = ""

func (s Single) Lookup(raw string) (Key, bool) { return SingleKey, true }
func (s Single) Keys() []Key                   { return []Key{SingleKey} }
func (s Single) Label(Key) string              { return s.Name }

// DomainFor returns the default domain for logs of the given kind.
func DomainFor(kind lockfmt.Kind) Domain {
	switch kind {
	case lockfmt.Contention:
		return DefaultThreads
	case lockfmt.Frequency:
		return AllIntervals()
	}
	return Single{Name: kind.String()}
}
