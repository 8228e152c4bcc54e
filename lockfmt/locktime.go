// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

var lockTimePrefix = []byte("the average time of lock is ")

// ReadLockTimes reads the output of the lock-latency benchmark, which
// prints one line per run:
//
//	the average time of lock is 3.420000e-08
//
// It returns the reported times in seconds, in order. Blank lines are
// ignored; any other line is a *MalformedLineError. fileName is used
// in error messages.
func ReadLockTimes(r io.Reader, fileName string) ([]float64, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	var times []float64
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := trimSpace(s.Bytes())
		if len(text) == 0 {
			continue
		}
		if !bytes.HasPrefix(text, lockTimePrefix) {
			return nil, &MalformedLineError{FileName: fileName, Line: line, Msg: "expected \"" + string(bytes.TrimSpace(lockTimePrefix)) + " <seconds>\""}
		}
		f := text[len(lockTimePrefix):]
		v, err := strconv.ParseFloat(string(f), 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &MalformedLineError{FileName: fileName, Line: line, Token: string(f), Msg: "parsing lock time: " + err.Error()}
		}
		times = append(times, v)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", fileName, line, err)
	}
	return times, nil
}
