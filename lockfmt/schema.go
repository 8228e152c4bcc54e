// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockfmt

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// A Kind identifies which lock benchmark produced a log, and hence
// what the log's category field means.
type Kind int

const (
	// Contention logs carry one sample per thread per step. The
	// category is the thread id.
	Contention Kind = iota
	// Frequency logs sweep the lock-hold interval. The category is
	// the configured interval in seconds.
	Frequency
	// Reference logs hold a single baseline series with no category.
	Reference
)

var kindNames = []string{"contention", "frequency", "reference"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return -1, fmt.Errorf("unknown log kind %q (want one of %s)", s, strings.Join(kindNames, ", "))
}

// A Field names one token position of a log line. Only the position
// is significant when parsing; the name is used in error messages.
type Field struct {
	Name string
	Pos  int
}

// A Schema describes the layout of one kind of log line.
//
// Every line is a sequence of whitespace-separated name=value tokens.
// The Schema says which token holds each value. A Category with a
// negative Pos means the log has a single implicit category.
type Schema struct {
	Kind      Kind
	Category  Field
	WorkDone  Field
	Overshoot Field

	// MinTokens is the minimum number of tokens in a valid line.
	MinTokens int
}

var schemas = [...]Schema{
	Contention: {
		Kind:      Contention,
		Category:  Field{"id", 0},
		WorkDone:  Field{"workdone", 3},
		Overshoot: Field{"overshoot", 5},
		MinTokens: 6,
	},
	Frequency: {
		Kind:      Frequency,
		Category:  Field{"lockInterval", 1},
		WorkDone:  Field{"workDone", 3},
		Overshoot: Field{"overshoot", 5},
		MinTokens: 6,
	},
	Reference: {
		Kind:      Reference,
		Category:  Field{"", -1},
		WorkDone:  Field{"workDone", 3},
		Overshoot: Field{"overshoot", 5},
		MinTokens: 6,
	},
}

// SchemaFor returns the line schema for logs of kind k.
func SchemaFor(k Kind) Schema {
	if k < 0 || int(k) >= len(schemas) {
		panic("lockfmt: unknown kind " + k.String())
	}
	return schemas[k]
}

// HasCategory reports whether lines of this schema carry an explicit
// category.
func (s Schema) HasCategory() bool {
	return s.Category.Pos >= 0
}

// Parse parses line as a single sample. See ParseLine.
func (s Schema) Parse(line string) (Sample, error) {
	return s.ParseLine([]byte(line))
}

// ParseLine parses line as a single sample.
//
// If the line is malformed, it returns a *MalformedLineError. The
// error carries no position; Reader fills that in.
func (s Schema) ParseLine(line []byte) (Sample, error) {
	var toks [][]byte
	for rest := trimSpace(line); len(rest) > 0; {
		var f []byte
		f, rest = splitField(rest)
		toks = append(toks, f)
	}
	if len(toks) < s.MinTokens {
		return Sample{}, &MalformedLineError{Msg: fmt.Sprintf("have %d fields, want at least %d", len(toks), s.MinTokens)}
	}

	// Every token must be name=value, even those we don't use.
	vals := make([][]byte, len(toks))
	for i, tok := range toks {
		eq := bytes.IndexByte(tok, '=')
		if eq < 0 {
			return Sample{}, &MalformedLineError{Token: string(tok), Msg: fmt.Sprintf("field %d: expected name=value", i)}
		}
		vals[i] = tok[eq+1:]
	}

	var smp Sample
	if s.HasCategory() {
		v := vals[s.Category.Pos]
		if len(v) == 0 {
			return Sample{}, &MalformedLineError{Token: string(toks[s.Category.Pos]), Msg: "empty " + s.Category.Name}
		}
		smp.Category = string(v)
	}

	var err error
	if smp.WorkDone, err = s.counter(toks, vals, s.WorkDone); err != nil {
		return Sample{}, err
	}
	if smp.Overshoot, err = s.counter(toks, vals, s.Overshoot); err != nil {
		return Sample{}, err
	}
	return smp, nil
}

func (s Schema) counter(toks, vals [][]byte, f Field) (int64, error) {
	n, err := strconv.ParseInt(string(vals[f.Pos]), 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, &MalformedLineError{Token: string(toks[f.Pos]), Msg: "parsing " + f.Name + ": " + err.Error()}
	}
	if n < 0 {
		return 0, &MalformedLineError{Token: string(toks[f.Pos]), Msg: "negative " + f.Name}
	}
	return n, nil
}
