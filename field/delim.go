/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package field provides delimiter-framed streaming reads and writes, the
// low-level wire primitive every container field (header and record slots)
// is built on. Unlike bufio.Reader.ReadBytes, the delimiter here may be
// more than one byte long.
package field

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// chunkSize is the read granularity used while scanning for a delimiter.
const chunkSize = 4096

// ErrInstance is returned by any operation performed on a closed Reader.
var ErrInstance = errors.New("field: instance closed")

// Reader scans an underlying io.Reader for delimiter-terminated fields. It
// never seeks the underlying stream: unconsumed bytes past a delimiter are
// kept in an internal buffer and returned by the next call, so Reader works
// on any io.Reader, not just files.
type Reader struct {
	mu    sync.Mutex
	src   io.Reader
	delim []byte
	pend  []byte // bytes already read from src but not yet returned
	eof   bool
}

// NewReader wraps r, scanning for occurrences of delim (which must be
// non-empty).
func NewReader(r io.Reader, delim []byte) *Reader {
	d := make([]byte, len(delim))
	copy(d, delim)
	return &Reader{src: r, delim: d}
}

// ReadField returns the bytes up to (not including) the next delimiter,
// consuming the delimiter itself. io.EOF is returned once the underlying
// stream is exhausted with no further delimiter found; any bytes read
// before EOF are returned alongside it.
func (o *Reader) ReadField() ([]byte, error) {
	if o == nil || o.src == nil {
		return nil, ErrInstance
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	dl := len(o.delim)
	buf := o.pend
	o.pend = nil

	for {
		if idx := bytes.Index(buf, o.delim); idx >= 0 {
			out := buf[:idx]
			o.pend = buf[idx+dl:]
			return out, nil
		}

		if o.eof {
			return buf, io.EOF
		}

		chunk := make([]byte, chunkSize)
		n, err := o.src.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}

		if err != nil {
			if err == io.EOF {
				o.eof = true
				continue
			}
			return buf, err
		}
	}
}

// ReadN returns exactly n bytes from the stream (content payloads are
// length-prefixed, not delimiter-scanned).
func (o *Reader) ReadN(n int) ([]byte, error) {
	if o == nil || o.src == nil {
		return nil, ErrInstance
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]byte, 0, n)
	if len(o.pend) > 0 {
		take := len(o.pend)
		if take > n {
			take = n
		}
		out = append(out, o.pend[:take]...)
		o.pend = o.pend[take:]
	}

	for len(out) < n {
		chunk := make([]byte, n-len(out))
		r, err := o.src.Read(chunk)
		if r > 0 {
			out = append(out, chunk[:r]...)
		}
		if err != nil {
			return out, err
		}
	}

	return out, nil
}

// Unread returns and discards whatever is currently buffered but not yet
// consumed, without touching the underlying stream.
func (o *Reader) Unread() []byte {
	o.mu.Lock()
	defer o.mu.Unlock()

	p := o.pend
	o.pend = nil
	return p
}

// Close releases the Reader. The underlying io.Reader is not closed; the
// caller owns it.
func (o *Reader) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.src = nil
	o.pend = nil
	return nil
}
