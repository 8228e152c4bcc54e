// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lockplot charts the output of the lock benchmarks.
//
// Usage:
//
//	lockplot [flags] log...
//	lockplot [flags] -kind locktime label=log label=log
//
// A contention log (-kind contention, the default) holds one line per
// thread per step, such as
//
//	id=2 interval=5 trial=0 workdone=1000 unit=ns overshoot=12
//
// Lockplot groups the net work (workdone minus overshoot) of each
// step by thread, divides each thread's series by the series of the
// -ref-thread thread, and draws one line per thread. Only threads 1
// through 4 are expected by default; a log with other ids, such as
// id=0, needs -threads (for example -threads 0,1,2) or -lenient.
//
// A frequency log (-kind frequency) holds one line per lock interval
// per step, such as
//
//	threads=2 lockInterval=1.000000e-08 lockDuration=0.000000 workDone=1000 iteratons=5 overshoot=0
//
// Its series are grouped by lock interval and divided by the series
// of a separate single-threaded run given with -reference.
//
// A lock-time log (-kind locktime) holds the output of the lock
// latency benchmark. Lockplot averages each of two such logs and
// compares them as a pair of bars.
//
// By default the chart is written to <kind>.png. The -o flag selects
// another file, whose extension gives the image format (png, svg, pdf,
// and others). The -table flag prints the chart data instead, and
// -http serves the chart on a local web page.
//
// Settings may also be given in a TOML file named by -config, using
// the flag names with underscores, such as
//
//	kind = "frequency"
//	reference = "reference.txt"
//	intervals = ["1.000000e-08", "1.000000e-06"]
//	logs = ["lock_ben.txt"]
//
// Flags on the command line override the file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/lockbench/lockperf/lockchart"
	"github.com/lockbench/lockperf/lockfmt"
	"github.com/lockbench/lockperf/lockseries"
	"github.com/lockbench/lockperf/lockunit"
	"github.com/pkg/errors"
)

func main() {
	log.SetPrefix("lockplot: ")
	log.SetFlags(0)
	if err := lockplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == flag.ErrHelp || err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// A chart is either a line chart or a bar chart.
type chart struct {
	lines *lockchart.LineChart
	bars  *lockchart.BarChart
}

func (c chart) render(r lockchart.Renderer) error {
	if c.lines != nil {
		return r.RenderLines(c.lines)
	}
	return r.RenderBars(c.bars)
}

func (c chart) writeTable(w io.Writer) error {
	if c.lines != nil {
		return lockchart.WriteTable(w, c.lines)
	}
	for _, b := range c.bars.Bars {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", b.Label, b.Unit); err != nil {
			return err
		}
	}
	return nil
}

func lockplot(stdout, stderr io.Writer, args []string) error {
	cfg, logs, err := parseArgs(stderr, args)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		logs = cfg.Logs
	}
	l := log.New(stderr, "", 0)

	var c chart
	switch kind := strings.ToLower(cfg.Kind); kind {
	case "locktime":
		c.bars, err = barChart(cfg, logs)
	default:
		k, kerr := lockfmt.ParseKind(kind)
		if kerr != nil || k == lockfmt.Reference {
			return fmt.Errorf("unknown kind %q (want contention, frequency, or locktime)", cfg.Kind)
		}
		c.lines, err = lineChart(cfg, k, logs, l)
	}
	if err != nil {
		return err
	}

	out := cfg.Output
	if out == "" && !cfg.Table && cfg.HTTP == "" {
		out = strings.ToLower(cfg.Kind) + ".png"
	}

	var table bytes.Buffer
	if cfg.Table {
		if err := c.writeTable(&table); err != nil {
			return err
		}
		if _, err := stdout.Write(table.Bytes()); err != nil {
			return err
		}
	}
	if out != "" {
		if err := writeChart(c, out); err != nil {
			return err
		}
		l.Printf("wrote %s", out)
	}
	if cfg.HTTP != "" {
		var svg bytes.Buffer
		if err := c.render(&lockchart.PlotRenderer{W: &svg, Format: "svg"}); err != nil {
			return err
		}
		return serve(cfg.HTTP, newViewer(title(cfg), svg.Bytes(), table.String()), l)
	}
	return nil
}

func title(cfg *Config) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	switch strings.ToLower(cfg.Kind) {
	case "contention":
		return "thread contention"
	case "frequency":
		return "lock frequency"
	}
	return "lock time"
}

// writeChart renders c to the file out, in the format named by its
// extension. The file is only created once rendering has succeeded,
// so a failed render leaves any existing file alone.
func writeChart(c chart, out string) error {
	format := strings.TrimPrefix(filepath.Ext(out), ".")
	if format == "" {
		format = "png"
	}
	var buf bytes.Buffer
	if err := c.render(&lockchart.PlotRenderer{W: &buf, Format: strings.ToLower(format)}); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	return os.WriteFile(out, buf.Bytes(), 0666)
}

// lineChart reads contention or frequency logs and normalizes them.
func lineChart(cfg *Config, kind lockfmt.Kind, logs []string, l *log.Logger) (*lockchart.LineChart, error) {
	if len(logs) == 0 {
		return nil, fmt.Errorf("no %s logs", kind)
	}
	policy, err := lockseries.ParseZeroPolicy(cfg.ZeroPolicy)
	if err != nil {
		return nil, err
	}
	opts := lockseries.Options{Lenient: cfg.Lenient, Warn: l.Printf}

	var (
		d   lockseries.Domain
		ref lockseries.Reference
	)
	switch kind {
	case lockfmt.Contention:
		d = lockseries.Threads(cfg.Threads)
		ref.Key = lockseries.Key(strconv.Itoa(cfg.RefThread))
	case lockfmt.Frequency:
		if cfg.Reference == "" {
			return nil, fmt.Errorf("frequency logs need a -reference log")
		}
		d, err = intervals(cfg.Intervals)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Reference != "" {
		b, err := readReference(cfg.Reference, opts, l)
		if err != nil {
			return nil, err
		}
		ref = lockseries.Reference{Bucket: b, Label: cfg.Reference}
	}

	a := lockseries.NewAggregator(d, opts)
	files := &lockfmt.Files{Paths: logs, Schema: lockfmt.SchemaFor(kind), AllowStdin: true}
	if err := a.AddFiles(files); err != nil {
		return nil, err
	}
	logMetadata(l, files.Metadata())
	if n := a.Buckets().Dropped(); n > 0 {
		l.Printf("dropped %d samples with unknown categories", n)
	}

	series, err := lockseries.NormalizeAll(a.Buckets(), d, ref, policy)
	if err != nil {
		return nil, err
	}
	c := &lockchart.LineChart{Title: title(cfg), Interval: cfg.Interval, TickStep: cfg.TickStep}
	if kind == lockfmt.Frequency && c.TickStep == 0 {
		c.TickStep = 0.1
	}
	for _, s := range series {
		c.Lines = append(c.Lines, lockchart.Line{Label: s.Label, Values: s.Ratios})
	}
	return c, nil
}

func intervals(names []string) (lockseries.Intervals, error) {
	if len(names) == 0 {
		return lockseries.AllIntervals(), nil
	}
	var d lockseries.Intervals
	for _, name := range names {
		iv, err := lockunit.ParseLockInterval(name)
		if err != nil {
			return nil, err
		}
		d = append(d, iv)
	}
	return d, nil
}

// readReference reads the net work series of a reference log.
func readReference(path string, opts lockseries.Options, l *log.Logger) (lockseries.Bucket, error) {
	d := lockseries.Single{Name: path}
	a := lockseries.NewAggregator(d, opts)
	files := &lockfmt.Files{Paths: []string{path}, Schema: lockfmt.SchemaFor(lockfmt.Reference)}
	if err := a.AddFiles(files); err != nil {
		return nil, errors.Wrap(err, "reading reference")
	}
	logMetadata(l, files.Metadata())
	b, _ := a.Buckets().Get(lockseries.SingleKey)
	return b, nil
}

func logMetadata(l *log.Logger, meta map[string]map[string]string) {
	paths := make([]string, 0, len(meta))
	for path := range meta {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		keys := make([]string, 0, len(meta[path]))
		for k := range meta[path] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			l.Printf("%s: %s = %s", path, k, meta[path][k])
		}
	}
}

// barChart reads two lock-time logs. Each arg is a log file name,
// optionally prefixed by "label=".
func barChart(cfg *Config, args []string) (*lockchart.BarChart, error) {
	bars := cfg.Bars
	if len(args) > 0 {
		bars = nil
		for _, arg := range args {
			label, path, ok := strings.Cut(arg, "=")
			if !ok {
				path = arg
				label = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
			}
			bars = append(bars, BarConfig{Label: label, Path: path})
		}
	}
	if len(bars) != 2 {
		return nil, fmt.Errorf("locktime charts compare two logs, have %d", len(bars))
	}

	c := &lockchart.BarChart{Title: title(cfg), Axis: cfg.Axis, XMax: cfg.XMax, YMax: cfg.YMax}
	for i, b := range bars {
		times, err := readLockTimes(b.Path)
		if err != nil {
			return nil, err
		}
		mean := stats.Mean(times)
		c.Bars[i] = lockchart.Bar{Label: b.Label, Value: mean * 1e9, Unit: lockunit.SecondsScale(mean).FormatFixed(mean, 1)}
	}
	return c, nil
}

func readLockTimes(path string) ([]float64, error) {
	f, err := lockfmt.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	times, err := lockfmt.ReadLockTimes(f, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading lock times")
	}
	if len(times) == 0 {
		return nil, &lockfmt.MissingInputError{Path: path}
	}
	return times, nil
}
