// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent prefixes every line of written text with a fixed string,
// inserting the prefix lazily just before the first byte of each line
// rather than immediately after each newline, so an empty input produces
// no output at all.
package indent

import (
	"bytes"
	"io"
)

// String returns in with prefix inserted at the start of every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes returns in with prefix inserted at the start of every line.
func Bytes(prefix, in []byte) []byte {
	var buf bytes.Buffer
	atLineStart := true
	for _, c := range in {
		if atLineStart {
			buf.Write(prefix)
		}
		buf.WriteByte(c)
		atLineStart = c == '\n'
	}
	return buf.Bytes()
}

// Writer is an io.Writer that inserts a fixed prefix at the start of every
// line written through it, across any number of Write calls.
type Writer struct {
	w           io.Writer
	prefix      []byte
	atLineStart bool
}

// NewWriter returns a Writer that writes to w, prefixing every line with
// prefix.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atLineStart: true}
}

// Write implements io.Writer. Its return value n is the number of bytes of
// p that were durably written to the underlying writer once prefix
// insertion is accounted for, so a caller can resume at p[n:] after a
// short write - not the (larger) number of expanded bytes actually sent
// downstream.
func (w *Writer) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	offsets := make([]int, len(p)+1)
	states := make([]bool, len(p)+1)
	atLineStart := w.atLineStart
	states[0] = atLineStart

	for i, c := range p {
		if atLineStart {
			buf.Write(w.prefix)
		}
		buf.WriteByte(c)
		atLineStart = c == '\n'
		offsets[i+1] = buf.Len()
		states[i+1] = atLineStart
	}

	out := buf.Bytes()
	n, err := w.w.Write(out)
	switch {
	case n > len(out):
		n = len(out)
	case n < 0:
		n = 0
	}

	k := 0
	for i := len(offsets) - 1; i >= 0; i-- {
		if offsets[i] <= n {
			k = i
			break
		}
	}
	w.atLineStart = states[k]
	return k, err
}
