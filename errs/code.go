/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package errs provides a lightweight CodeError model shared by every
// package of the archive engine: a numeric code in the HTTP-status style,
// a per-package minimum range so codes never collide across packages, and
// a message registry so the text can be looked up from the code alone.
package errs

import (
	"sort"
)

// CodeError is a numeric error code, unique within the package that
// registers it. Values below 100 are reserved (UnknownError).
type CodeError uint16

const (
	UnknownError   CodeError = 0
	UnknownMessage           = "unknown error"
)

// Per-package minimum code ranges. Every package that registers messages
// owns a contiguous block starting at its Min constant.
const (
	MinPkgChecksum   CodeError = 100
	MinPkgCodec      CodeError = 200
	MinPkgField      CodeError = 300
	MinPkgFormatSpec CodeError = 400
	MinPkgHeader     CodeError = 500
	MinPkgRecord     CodeError = 600
	MinPkgPack       CodeError = 700
	MinPkgUnpack     CodeError = 800
	MinPkgRepack     CodeError = 900
	MinPkgConvert    CodeError = 1000
	MinPkgNeoFile    CodeError = 1100
	MinAvailable     CodeError = 1200
)

type Message func(code CodeError) string

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage registers the message function for every code at or
// above minCode, until the next registered minimum. Call once per package
// init().
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

func findMin(code CodeError) CodeError {
	var (
		keys []int
		res  CodeError
	)

	for k := range idMsgFct {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	for _, k := range keys {
		if CodeError(k) <= code {
			res = CodeError(k)
		}
	}

	return res
}

// Message returns the registered text for code, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findMin(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Uint16 returns the raw code value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Error builds an Error value carrying this code, its registered message,
// and optional parent errors (the cause chain).
func (c CodeError) Error(parent ...error) Error {
	return newError(c, c.Message(), parent...)
}
