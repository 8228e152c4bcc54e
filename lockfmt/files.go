// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lockfmt

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// A MissingInputError reports an input log that does not exist or
// that contains no samples.
type MissingInputError struct {
	Path string
	Err  error // Underlying error, or nil if the file held no samples
}

func (e *MissingInputError) Error() string {
	if e.Err == nil {
		return e.Path + ": no samples"
	}
	return fmt.Sprintf("%s: missing input: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// Open opens the log at path for reading. Logs ending in ".gz" or
// ".zst" are decompressed transparently. The caller must close the
// result.
//
// If path does not exist, Open returns a *MissingInputError.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path, Err: err}
		}
		return nil, err
	}
	return decompress(f, path)
}

// decompress wraps f in a decompressor chosen by path's extension.
// It takes ownership of f, closing it if it fails.
func decompress(f io.ReadCloser, path string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &stackedReader{zr, []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rc := zr.IOReadCloser()
		return &stackedReader{rc, []io.Closer{rc, f}}, nil
	}
	return f, nil
}

// A stackedReader reads from the outermost of a stack of readers and
// closes all of them, outermost first.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Files reads samples from a sequence of log files, in order.
//
// Each file is open only while it is being read. Scan closes a file
// when it reaches its end or fails, and Close releases the current
// file if the caller stops early.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// Schema is the line schema shared by every file.
	Schema Schema

	// AllowStdin indicates that the path "-" should be treated as
	// stdin.
	AllowStdin bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []string

	reader Reader
	file   io.ReadCloser
	path   string
	meta   map[string]map[string]string
	err    error
}

// Scan advances to the next sample in the sequence of files and
// reports whether a sample was read. The caller should use the Sample
// method to get it. If Scan reaches the end of the file sequence, or
// if any error occurs, it returns false. In this case, the caller
// should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.inputs = append([]string{}, f.Paths...)
	}

	for {
		if f.file == nil {
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]
			if err := f.open(path); err != nil {
				f.err = err
				return false
			}
			f.reader.Reset(f.file, path, f.Schema)
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		if err == nil && f.reader.Count() == 0 {
			err = &MissingInputError{Path: f.path}
		}
		if len(f.reader.Metadata()) > 0 {
			if f.meta == nil {
				f.meta = make(map[string]map[string]string)
			}
			f.meta[f.path] = f.reader.Metadata()
		}
		if cerr := f.closeFile(); err == nil {
			err = cerr
		}
		if err != nil {
			f.err = err
			return false
		}
	}
}

func (f *Files) open(path string) error {
	f.path = path
	if f.AllowStdin && path == "-" {
		rc, err := decompress(io.NopCloser(os.Stdin), path)
		if err != nil {
			return err
		}
		f.file = rc
		return nil
	}
	rc, err := Open(path)
	if err != nil {
		return err
	}
	f.file = rc
	return nil
}

func (f *Files) closeFile() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// Sample returns the sample that was just read by Scan.
func (f *Files) Sample() Sample {
	return f.reader.Sample()
}

// Metadata returns the preamble of every file read to completion so
// far that had one, indexed by path. See Reader.Metadata.
func (f *Files) Metadata() map[string]map[string]string {
	return f.meta
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// Close releases the file currently being read, if any, and returns
// the error from closing it. Further calls to Scan return false.
func (f *Files) Close() error {
	err := f.closeFile()
	f.inputs = []string{}
	return err
}
