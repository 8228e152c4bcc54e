// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lockfmt reads the text logs written by the lock benchmarks.
//
// A log holds one sample per line. Each line is a sequence of
// whitespace-separated name=value tokens, for example
//
//	threads=2 lockInterval=1.000000e-08 lockDuration=0.005000 workDone=81234 iteratons=40112 overshoot=3
//
// Which token holds which value depends on the kind of log; see Schema.
package lockfmt

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// A Sample is the work a benchmark reported for one category during
// one sampling interval.
type Sample struct {
	// Category is the raw value of the line's category field, or ""
	// for logs with a single implicit category.
	Category string

	// WorkDone is the cumulative number of work units completed.
	WorkDone int64

	// Overshoot is the part of the last unit of work that ran past
	// the end of the sampling interval.
	Overshoot int64

	fileName string
	line     int
}

// NetWork returns the work done within the sampling interval.
func (s Sample) NetWork() int64 {
	return s.WorkDone - s.Overshoot
}

// Pos returns the file name and 1-based line number the sample was
// read from, or "", 0 if it was not read by a Reader.
func (s Sample) Pos() (fileName string, line int) {
	return s.fileName, s.line
}

// A MalformedLineError reports a log line that does not match its
// Schema.
type MalformedLineError struct {
	FileName string
	Line     int
	Token    string // Offending token, if any
	Msg      string
}

func (e *MalformedLineError) Error() string {
	msg := e.Msg
	if e.Token != "" {
		msg = fmt.Sprintf("%s (at %q)", e.Msg, e.Token)
	}
	if e.FileName == "" && e.Line == 0 {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, msg)
}

// A Reader reads samples from a lock benchmark log.
//
// Its API is modeled on bufio.Scanner. Unlike a scanner, a Reader
// stops at the first malformed line: a log with a bad line in it
// cannot be aligned with other logs, so there is nothing useful to do
// with the rest of it.
type Reader struct {
	s      *bufio.Scanner
	schema Schema
	err    error

	fileName string
	line     int
	sample   Sample
	nSamples int

	meta map[string]string
}

// NewReader constructs a reader that parses lines of r according to
// schema. fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, schema Schema) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, schema)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string, schema Schema) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.s = bufio.NewScanner(ior)
	r.schema = schema
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.sample = Sample{}
	r.nSamples = 0
	r.meta = make(map[string]string)
}

// Scan advances the reader to the next sample and reports whether a
// sample was read. The caller should use the Sample method to get it.
// If Scan reaches EOF, an I/O error occurs, or a line is malformed, it
// returns false, in which case the caller should use the Err method
// to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Bytes()
		if len(trimSpace(line)) == 0 {
			continue
		}
		if r.nSamples == 0 {
			if key, val, ok := parsePreambleLine(line); ok {
				r.meta[key] = val
				continue
			}
		}
		smp, err := r.schema.ParseLine(line)
		if err != nil {
			if me, ok := err.(*MalformedLineError); ok {
				me.FileName, me.Line = r.fileName, r.line
			}
			r.err = err
			return false
		}
		smp.fileName, smp.line = r.fileName, r.line
		r.sample = smp
		r.nSamples++
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Sample returns the sample that was just read by Scan.
func (r *Reader) Sample() Sample {
	return r.sample
}

// Err returns the first I/O or parse error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// Count returns the number of samples read so far.
func (r *Reader) Count() int {
	return r.nSamples
}

// Metadata returns the "key = value" lines that preceded the first
// sample, such as the benchmark's calibrated secsPerWorkUnit.
func (r *Reader) Metadata() map[string]string {
	return r.meta
}

// parsePreambleLine attempts to parse line as "key = value", with
// spaces around the equals sign. That form can never be a sample,
// whose tokens have no spaces around their equals signs.
func parsePreambleLine(line []byte) (key, val string, ok bool) {
	k, rest := splitField(trimSpace(line))
	eq, rest := splitField(rest)
	v, rest := splitField(rest)
	if len(k) == 0 || string(eq) != "=" || len(v) == 0 || len(rest) != 0 {
		return "", "", false
	}
	return string(k), string(v), true
}

const isSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

func isSpaceRune(x []byte) (space bool, n int) {
	if x[0] < utf8.RuneSelf {
		return (isSpace>>x[0])&1 != 0, 1
	}
	r, n := utf8.DecodeRune(x)
	return unicode.IsSpace(r), n
}

func trimSpace(x []byte) []byte {
	for len(x) > 0 {
		space, n := isSpaceRune(x)
		if !space {
			break
		}
		x = x[n:]
	}
	for len(x) > 0 {
		_, n := utf8.DecodeLastRune(x)
		if space, _ := isSpaceRune(x[len(x)-n:]); !space {
			break
		}
		x = x[:len(x)-n]
	}
	return x
}

// splitField consumes and returns non-whitespace in x as field,
// consumes whitespace following the field, and then returns the
// remaining bytes of x.
func splitField(x []byte) (field, rest []byte) {
	var i int
	for i < len(x) {
		space, n := isSpaceRune(x[i:])
		if space {
			rest = x[i+n:]
			break
		}
		i += n
	}
	field = x[:i]

	for len(rest) > 0 {
		space, n := isSpaceRune(rest)
		if !space {
			break
		}
		rest = rest[n:]
	}
	return
}
