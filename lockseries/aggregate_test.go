// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockseries

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lockbench/lockperf/lockfmt"
)

// contentionLine formats a contention log line.
func contentionLine(thread int, workDone, overshoot int64) string {
	return fmt.Sprintf("id=%d interval=5 trial=0 workdone=%d unit=ns overshoot=%d", thread, workDone, overshoot)
}

func parseSamples(t *testing.T, kind lockfmt.Kind, lines ...string) []lockfmt.Sample {
	t.Helper()
	r := lockfmt.NewReader(strings.NewReader(strings.Join(lines, "\n")), "test", lockfmt.SchemaFor(kind))
	var out []lockfmt.Sample
	for r.Scan() {
		out = append(out, r.Sample())
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestAggregate(t *testing.T) {
	samples := parseSamples(t, lockfmt.Contention,
		contentionLine(1, 1000, 0),
		contentionLine(2, 1000, 0),
		contentionLine(1, 1010, 10),
		contentionLine(2, 900, 0),
		contentionLine(1, 1020, 0),
		contentionLine(2, 800, 0),
	)
	b, err := Aggregate(samples, Threads{1, 2}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Key{"1", "2"}, b.Keys()); diff != "" {
		t.Errorf("keys differ (-want +got):\n%s", diff)
	}
	want := map[Key]Bucket{
		"1": {1000, 1000, 1020},
		"2": {1000, 900, 800},
	}
	for k, w := range want {
		got, ok := b.Get(k)
		if !ok {
			t.Errorf("missing bucket %s", k)
			continue
		}
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("bucket %s differs (-want +got):\n%s", k, diff)
		}
	}
	if err := b.Aligned(); err != nil {
		t.Errorf("Aligned: %v", err)
	}
}

func TestAggregateUnknownCategory(t *testing.T) {
	samples := parseSamples(t, lockfmt.Contention,
		contentionLine(1, 1000, 0),
		contentionLine(2, 1000, 0),
		contentionLine(7, 1000, 0),
		contentionLine(1, 1000, 0),
	)
	_, err := Aggregate(samples, Threads{1, 2}, Options{})
	var uc *UnknownCategoryError
	if !errors.As(err, &uc) {
		t.Fatalf("got %v, want *UnknownCategoryError", err)
	}
	if uc.Category != "7" || uc.FileName != "test" || uc.Line != 3 {
		t.Errorf("got %+v, want category 7 at test:3", uc)
	}
	if got, want := uc.Error(), `test:3: unknown category "7"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAggregateLenient(t *testing.T) {
	samples := parseSamples(t, lockfmt.Contention,
		contentionLine(1, 1000, 0),
		contentionLine(0, 5, 0),
		contentionLine(1, 1000, 0),
	)
	var warnings []string
	opts := Options{
		Lenient: true,
		Warn: func(format string, args ...interface{}) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		},
	}
	b, err := Aggregate(samples, Threads{1}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Get("1"); len(got) != 2 {
		t.Errorf("bucket 1 = %v, want 2 samples", got)
	}
	if b.Dropped() != 1 || len(warnings) != 1 {
		t.Errorf("dropped %d with warnings %q, want 1", b.Dropped(), warnings)
	}
}

func TestAggregateIntervals(t *testing.T) {
	line := func(interval string, work int) string {
		return fmt.Sprintf("threads=2 lockInterval=%s lockDuration=0.0 workDone=%d iteratons=1 overshoot=0", interval, work)
	}
	samples := parseSamples(t, lockfmt.Frequency,
		line("1.000000e-08", 10),
		line("3.160000e-08", 20),
		line("1.000000e-08", 11),
		line("3.160000e-08", 21),
	)
	d := AllIntervals()[:2]
	b, err := Aggregate(samples, d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Get("3.160000e-08"); !cmp.Equal(got, Bucket{20, 21}) {
		t.Errorf("31.6 ns bucket = %v, want [20 21]", got)
	}
	if got := d.Label("3.160000e-08"); got != "31.6 ns" {
		t.Errorf("label = %q, want 31.6 ns", got)
	}

	// An interval that is valid but not in the domain is unknown.
	samples = parseSamples(t, lockfmt.Frequency, line("1.000000e-04", 1))
	if _, err := Aggregate(samples, d, Options{}); !errors.As(err, new(*UnknownCategoryError)) {
		t.Errorf("got %v, want *UnknownCategoryError", err)
	}
}

func TestAlignedMismatch(t *testing.T) {
	samples := parseSamples(t, lockfmt.Contention,
		contentionLine(1, 1000, 0),
		contentionLine(2, 1000, 0),
		contentionLine(1, 1000, 0),
	)
	b, err := Aggregate(samples, Threads{1, 2}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var lm *LengthMismatchError
	if !errors.As(b.Aligned(), &lm) {
		t.Fatalf("Aligned() = %v, want *LengthMismatchError", b.Aligned())
	}
	if lm.Target != "2" || lm.TargetLen != 1 || lm.Reference != "1" || lm.ReferenceLen != 2 {
		t.Errorf("got %+v", lm)
	}
}

func TestAddFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, data := range []string{
		contentionLine(1, 100, 0) + "\n" + contentionLine(2, 50, 0) + "\n",
		contentionLine(1, 200, 0) + "\n" + contentionLine(2, 100, 0) + "\n",
	} {
		p := filepath.Join(dir, fmt.Sprintf("log%d.txt", i))
		if err := os.WriteFile(p, []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	a := NewAggregator(Threads{1, 2}, Options{})
	if err := a.AddFiles(&lockfmt.Files{Paths: paths, Schema: lockfmt.SchemaFor(lockfmt.Contention)}); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.Buckets().Get("2"); !cmp.Equal(got, Bucket{50, 100}) {
		t.Errorf("bucket 2 = %v, want [50 100]", got)
	}

	// A missing file is reported as such.
	a = NewAggregator(Threads{1, 2}, Options{})
	err := a.AddFiles(&lockfmt.Files{Paths: []string{filepath.Join(dir, "absent")}, Schema: lockfmt.SchemaFor(lockfmt.Contention)})
	if !errors.As(err, new(*lockfmt.MissingInputError)) {
		t.Errorf("got %v, want *lockfmt.MissingInputError", err)
	}
}

func TestAggregateThreadZero(t *testing.T) {
	samples := parseSamples(t, lockfmt.Contention,
		contentionLine(0, 500, 0),
		contentionLine(1, 1000, 0),
	)
	_, err := Aggregate(samples, DefaultThreads, Options{})
	var uc *UnknownCategoryError
	if !errors.As(err, &uc) || uc.Category != "0" {
		t.Fatalf("got %v, want *UnknownCategoryError for thread 0", err)
	}

	b, err := Aggregate(samples, Threads{0, 1}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Get("0"); len(got) != 1 || got[0] != 500 {
		t.Errorf("thread 0 bucket = %v, want [500]", got)
	}
	if got := (Threads{0, 1}).Label("0"); got != "thread0" {
		t.Errorf("Label(0) = %q", got)
	}
}

func TestDomains(t *testing.T) {
	th := Threads{1, 2, 3, 4}
	if k, ok := th.Lookup(" 3"); !ok || k != "3" {
		t.Errorf("Lookup(3) = %q, %v", k, ok)
	}
	for _, bad := range []string{"0", "5", "x", ""} {
		if _, ok := th.Lookup(bad); ok {
			t.Errorf("Lookup(%q) succeeded", bad)
		}
	}
	if got := th.Label("3"); got != "thread3" {
		t.Errorf("Label(3) = %q", got)
	}
	if got := len(AllIntervals().Keys()); got != 9 {
		t.Errorf("AllIntervals has %d keys, want 9", got)
	}
	s := Single{Name: "reference"}
	if k, ok := s.Lookup("anything"); !ok || k != SingleKey {
		t.Errorf("Single.Lookup = %q, %v", k, ok)
	}
	if _, ok := DomainFor(lockfmt.Contention).(Threads); !ok {
		t.Errorf("DomainFor(Contention) is %T, want Threads", DomainFor(lockfmt.Contention))
	}
	if _, ok := DomainFor(lockfmt.Reference).(Single); !ok {
		t.Errorf("DomainFor(Reference) is %T, want Single", DomainFor(lockfmt.Reference))
	}
}
