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

package main

import (
	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/header"
	"github.com/nabbar/neofile/record"
	"github.com/nabbar/neofile/unpack"
)

// validationOrOperational wraps err as a validationError when it reflects a
// malformed or tampered archive (bad magic, truncated record, checksum
// mismatch) rather than an operational failure (I/O, missing codec).
func validationOrOperational(err error) error {
	if err == nil {
		return nil
	}
	if errs.Is(err, checksum.ErrMismatch) ||
		errs.Is(err, header.ErrBadMagic) ||
		errs.Is(err, record.ErrTruncatedRecord) ||
		errs.Is(err, record.ErrChecksumMismatch) ||
		errs.Is(err, unpack.ErrOpenHeader) {
		return validationError{err}
	}
	return err
}

// validationError marks a failure in the integrity of an archive itself
// (bad magic, checksum mismatch) as opposed to an operational failure
// (I/O, missing codec) — the two exit with different codes.
type validationError struct{ err error }

func (v validationError) Error() string { return v.err.Error() }
func (v validationError) Unwrap() error { return v.err }

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if _, ok := err.(validationError); ok {
		return 2
	}
	return 1
}
