// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the complete set of lockplot settings. It is read from an
// optional TOML file, and flags given on the command line override
// the file.
type Config struct {
	Kind       string   `toml:"kind"`
	Threads    []int    `toml:"threads"`
	RefThread  int      `toml:"ref_thread"`
	Intervals  []string `toml:"intervals"`
	Reference  string   `toml:"reference"`
	Interval   float64  `toml:"interval"`
	TickStep   float64  `toml:"tick_step"`
	ZeroPolicy string   `toml:"zero_policy"`
	Lenient    bool     `toml:"lenient"`
	Title      string   `toml:"title"`
	Output     string   `toml:"output"`
	Table      bool     `toml:"table"`
	HTTP       string   `toml:"http"`
	Logs       []string `toml:"logs"`

	// Bar chart settings, for the locktime kind.
	Axis string      `toml:"axis"`
	XMax float64     `toml:"x_max"`
	YMax float64     `toml:"y_max"`
	Bars []BarConfig `toml:"bar"`

	// path is the config file, if any. It can only be set by flag.
	path string
}

// BarConfig names one lock-time log.
type BarConfig struct {
	Label string `toml:"label"`
	Path  string `toml:"path"`
}

func defaultConfig() Config {
	return Config{
		Kind:       "contention",
		Threads:    []int{1, 2, 3, 4},
		RefThread:  1,
		Interval:   0.005,
		ZeroPolicy: "fail",
		Axis:       "pthread mutex",
	}
}

// loadConfig decodes the TOML file at path over cfg. Unknown keys are
// an error.
func loadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "loading config %s", path)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// intList is a flag.Value for a comma-separated list of integers.
type intList struct {
	p *[]int
}

func (l intList) String() string {
	if l.p == nil {
		return ""
	}
	s := make([]string, len(*l.p))
	for i, v := range *l.p {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func (l intList) Set(s string) error {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("bad integer %q", f)
		}
		out = append(out, v)
	}
	*l.p = out
	return nil
}

// stringList is a flag.Value for a comma-separated list of strings.
type stringList struct {
	p *[]string
}

func (l stringList) String() string {
	if l.p == nil {
		return ""
	}
	return strings.Join(*l.p, ",")
}

func (l stringList) Set(s string) error {
	*l.p = strings.Split(s, ",")
	return nil
}

func newFlagSet(cfg *Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("lockplot", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "usage: lockplot [flags] log...\n")
		fmt.Fprintf(out, "       lockplot [flags] -kind locktime label=log label=log\n")
		fmt.Fprintf(out, "flags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.path, "config", cfg.path, "read settings from TOML `file`; flags override it")
	fs.StringVar(&cfg.Kind, "kind", cfg.Kind, "log `kind`: contention, frequency, or locktime")
	fs.Var(intList{&cfg.Threads}, "threads", "comma-separated thread `ids` of a contention log; samples from other ids, such as 0, fail unless listed here or -lenient is set")
	fs.IntVar(&cfg.RefThread, "ref-thread", cfg.RefThread, "normalize a contention log against thread `id`")
	fs.Var(stringList{&cfg.Intervals}, "intervals", "comma-separated lock `intervals` of a frequency log (default all)")
	fs.StringVar(&cfg.Reference, "reference", cfg.Reference, "normalize against the reference log in `file`")
	fs.Float64Var(&cfg.Interval, "interval", cfg.Interval, "x distance between samples")
	fs.Float64Var(&cfg.TickStep, "tick-step", cfg.TickStep, "x distance between labeled ticks (default automatic)")
	fs.StringVar(&cfg.ZeroPolicy, "zero", cfg.ZeroPolicy, "on a zero reference value, `fail` or emit nan")
	fs.BoolVar(&cfg.Lenient, "lenient", cfg.Lenient, "drop samples with unknown categories instead of failing")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "chart `title`")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "write the chart to `file`; the extension selects the format")
	fs.BoolVar(&cfg.Table, "table", cfg.Table, "print the chart data as a table")
	fs.StringVar(&cfg.HTTP, "http", cfg.HTTP, "serve the chart on `address`, such as localhost:8080")
	return fs
}

var errUsage = errors.New("usage")

// parseArgs parses the command line. If it names a config file, the
// file is loaded first and the command line is applied over it, so
// only flags that appear in args override the file.
func parseArgs(stderr io.Writer, args []string) (*Config, []string, error) {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg, stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, errUsage
	}
	if cfg.path == "" {
		return &cfg, fs.Args(), nil
	}

	fileCfg := defaultConfig()
	if err := loadConfig(cfg.path, &fileCfg); err != nil {
		return nil, nil, err
	}
	fs = newFlagSet(&fileCfg, io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &fileCfg, fs.Args(), nil
}
