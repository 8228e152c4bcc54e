// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockfmt

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name string
		kind Kind
		line string
		want Sample
	}
	for _, test := range []testCase{
		{
			"contention",
			Contention,
			"id=1 interval=5 trial=2 workdone=1000 unit=ns overshoot=50",
			Sample{Category: "1", WorkDone: 1000, Overshoot: 50},
		},
		{
			"frequency",
			Frequency,
			"threads=2 lockInterval=3.160000e-08 lockDuration=0.005000 workDone=81234 iteratons=40112 overshoot=3 ",
			Sample{Category: "3.160000e-08", WorkDone: 81234, Overshoot: 3},
		},
		{
			"reference",
			Reference,
			"threads=1 lockInterval=1.000000e-02 lockDuration=0.000000 workDone=500 iteratons=1 overshoot=0",
			Sample{WorkDone: 500},
		},
		{
			"extra fields and tabs",
			Contention,
			"\tid=4\tinterval=5 trial=2 workdone=7 unit=ns overshoot=7 note=x\r",
			Sample{Category: "4", WorkDone: 7, Overshoot: 7},
		},
		{
			"empty values elsewhere",
			Contention,
			"id=0 interval= trial= workdone=12 unit= overshoot=2",
			Sample{Category: "0", WorkDone: 12, Overshoot: 2},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := SchemaFor(test.kind).Parse(test.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("got %+v, want %+v", got, test.want)
			}
			if want := test.want.WorkDone - test.want.Overshoot; got.NetWork() != want {
				t.Errorf("NetWork() = %d, want %d", got.NetWork(), want)
			}
		})
	}
}

func TestParseNetWork(t *testing.T) {
	smp, err := SchemaFor(Contention).Parse("id=1 interval=5 trial=2 workdone=1000 unit=ns overshoot=50")
	if err != nil {
		t.Fatal(err)
	}
	if smp.NetWork() != 950 {
		t.Errorf("NetWork() = %d, want 950", smp.NetWork())
	}
}

func TestParseErrors(t *testing.T) {
	type testCase struct {
		name, line string
		token, msg string
	}
	for _, test := range []testCase{
		{"empty", "", "", "have 0 fields, want at least 6"},
		{"five fields", "id=1 interval=5 trial=2 workdone=1000 unit=ns", "", "have 5 fields, want at least 6"},
		{"missing equals", "id=1 interval=5 trial 2 workdone=1000 unit=ns overshoot=50", "trial", "field 2: expected name=value"},
		{"missing equals after schema", "id=1 interval=5 trial=2 workdone=1000 unit=ns overshoot=50 junk", "junk", "field 6: expected name=value"},
		{"float workdone", "id=1 interval=5 trial=2 workdone=10.5 unit=ns overshoot=50", "workdone=10.5", "parsing workdone: invalid syntax"},
		{"text overshoot", "id=1 interval=5 trial=2 workdone=1000 unit=ns overshoot=lots", "overshoot=lots", "parsing overshoot: invalid syntax"},
		{"empty overshoot", "id=1 interval=5 trial=2 workdone=1000 unit=ns overshoot=", "overshoot=", "parsing overshoot: invalid syntax"},
		{"negative", "id=1 interval=5 trial=2 workdone=-1 unit=ns overshoot=0", "workdone=-1", "negative workdone"},
		{"overflow", "id=1 interval=5 trial=2 workdone=99999999999999999999 unit=ns overshoot=0", "workdone=99999999999999999999", "parsing workdone: value out of range"},
		{"empty category", "id= interval=5 trial=2 workdone=1 unit=ns overshoot=0", "id=", "empty id"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := SchemaFor(Contention).Parse(test.line)
			var me *MalformedLineError
			if !errors.As(err, &me) {
				t.Fatalf("got error %v, want *MalformedLineError", err)
			}
			if me.Token != test.token {
				t.Errorf("got token %q, want %q", me.Token, test.token)
			}
			if me.Msg != test.msg {
				t.Errorf("got message %q, want %q", me.Msg, test.msg)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Contention, Frequency, Reference} {
		got, err := ParseKind(strings.ToUpper(k.String()))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("latency"); err == nil {
		t.Errorf("ParseKind(latency): want error")
	}
	if got := Kind(7).String(); got != "Kind(7)" {
		t.Errorf("Kind(7).String() = %q", got)
	}
}

func TestSchemaFields(t *testing.T) {
	// The line grammar fixes these positions.
	c := SchemaFor(Contention)
	if c.Category.Pos != 0 || c.WorkDone.Pos != 3 || c.Overshoot.Pos != 5 {
		t.Errorf("contention schema = %+v", c)
	}
	f := SchemaFor(Frequency)
	if f.Category.Pos != 1 || f.WorkDone.Pos != 3 || f.Overshoot.Pos != 5 {
		t.Errorf("frequency schema = %+v", f)
	}
	if SchemaFor(Reference).HasCategory() {
		t.Errorf("reference schema has a category")
	}
}
