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

package field

import "io"

// Writer appends delimiter-terminated fields to an underlying io.Writer.
type Writer struct {
	dst   io.Writer
	delim []byte
}

func NewWriter(w io.Writer, delim []byte) *Writer {
	d := make([]byte, len(delim))
	copy(d, delim)
	return &Writer{dst: w, delim: d}
}

// WriteField writes data followed by the delimiter.
func (o *Writer) WriteField(data []byte) error {
	if _, e := o.dst.Write(data); e != nil {
		return e
	}
	_, e := o.dst.Write(o.delim)
	return e
}

// WriteFields writes each element as its own delimited field, in order.
func (o *Writer) WriteFields(data ...[]byte) error {
	for _, d := range data {
		if e := o.WriteField(d); e != nil {
			return e
		}
	}
	return nil
}

// WriteRaw writes data with no trailing delimiter (used for length-prefixed
// payload bytes that are immediately followed by their own delimiter via a
// separate WriteField call).
func (o *Writer) WriteRaw(data []byte) error {
	_, e := o.dst.Write(data)
	return e
}

// Delim returns a copy of the configured delimiter.
func (o *Writer) Delim() []byte {
	d := make([]byte, len(o.delim))
	copy(d, o.delim)
	return d
}
