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

// Package codec dispatches compression by algorithm name, with a
// size-based "auto" selection, mirroring the compress/Algorithm pattern
// used elsewhere in this stack but generalized to the container's own
// algorithm set (store, zlib, gzip, bz2, lzma).
package codec

import (
	"strings"

	"github.com/nabbar/neofile/errs"
)

type Algorithm uint8

const (
	None Algorithm = iota
	Zlib
	Gzip
	Bzip2
	LZMA
)

const (
	ErrUnknownAlgorithm errs.CodeError = errs.MinPkgCodec + iota
	ErrUnavailableCodec
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgCodec, func(c errs.CodeError) string {
		switch c {
		case ErrUnknownAlgorithm:
			return "unknown compression algorithm"
		case ErrUnavailableCodec:
			return "unavailable codec"
		}
		return ""
	})
}

// Parse normalises a textual algorithm name: "gz"->gzip, {"bz","bzip","bzip2"}->bz2,
// "z"->zlib, "xz"->lzma. Empty or unrecognised names resolve to None.
func Parse(s string) Algorithm {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zlib", "z", "deflate":
		return Zlib
	case "gzip", "gz":
		return Gzip
	case "bz2", "bz", "bzip", "bzip2":
		return Bzip2
	case "lzma", "xz":
		return LZMA
	default:
		return None
	}
}

func (a Algorithm) String() string {
	switch a {
	case Zlib:
		return "zlib"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bz2"
	case LZMA:
		return "lzma"
	default:
		return "none"
	}
}

func (a Algorithm) IsNone() bool {
	return a == None
}

// AutoPick selects an algorithm and level for a payload of size n bytes.
func AutoPick(n int) (Algorithm, int) {
	switch {
	case n < 16*1024:
		return None, 0
	case n >= 256*1024:
		return Bzip2, 9
	default:
		return Zlib, 6
	}
}

// DefaultLevel returns the library-default level for an algorithm when the
// caller did not specify one.
func DefaultLevel(a Algorithm) int {
	switch a {
	case Zlib:
		return -1
	case Gzip:
		return 9
	case Bzip2:
		return 9
	default:
		return 0
	}
}
