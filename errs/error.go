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

package errs

import (
	"strings"
)

// Error is the value returned by CodeError.Error(). It carries the code,
// the message and the chain of parent causes.
type Error interface {
	error
	Code() CodeError
	IsCode(c CodeError) bool
	HasCode(c CodeError) bool
	Unwrap() []error
}

type ers struct {
	c CodeError
	m string
	p []error
}

func newError(c CodeError, msg string, parent ...error) Error {
	p := make([]error, 0, len(parent))
	for _, e := range parent {
		if e != nil {
			p = append(p, e)
		}
	}

	return &ers{c: c, m: msg, p: p}
}

func (e *ers) Code() CodeError {
	return e.c
}

func (e *ers) IsCode(c CodeError) bool {
	return e.c == c
}

func (e *ers) HasCode(c CodeError) bool {
	if e.IsCode(c) {
		return true
	}

	for _, p := range e.p {
		if is, ok := p.(Error); ok && is.HasCode(c) {
			return true
		}
	}

	return false
}

func (e *ers) Unwrap() []error {
	return e.p
}

func (e *ers) Error() string {
	if len(e.p) == 0 {
		return e.m
	}

	s := make([]string, 0, len(e.p))
	for _, p := range e.p {
		s = append(s, p.Error())
	}

	return e.m + ": " + strings.Join(s, "; ")
}

// Is reports whether err (or any cause in its chain) is an Error with code c.
func Is(err error, c CodeError) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(Error); ok {
		return e.HasCode(c)
	}

	return false
}
