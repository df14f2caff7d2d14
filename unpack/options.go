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

// Package unpack parses a container back into entries: the global header,
// then each record until the end marker, with list-only, checksum-skip,
// and decompress-on-read options.
package unpack

import (
	"github.com/nabbar/neofile/formatspec"
	"github.com/nabbar/neofile/nlog"
	"github.com/nabbar/neofile/record"
)

// Options controls one Unpack run.
type Options struct {
	Spec formatspec.Spec

	ListOnly     bool
	SkipChecksum bool
	Uncompress   bool
	SkipJSON     bool

	// ExpectMagic, when non-empty, is verified against the container's
	// magic+version field.
	ExpectMagic string

	Logger *nlog.Logger
}

func (o Options) recordOptions() record.Options {
	return record.Options{
		ListOnly:     o.ListOnly,
		SkipChecksum: o.SkipChecksum,
		Uncompress:   o.Uncompress,
		SkipJSON:     o.SkipJSON,
	}
}

func (o Options) logger() *nlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return nlog.Default
}

// DefaultOptions decodes content, verifies checksums, and requires no
// particular magic prefix.
func DefaultOptions() Options {
	return Options{
		Spec:   formatspec.Default(),
		Logger: nlog.Default,
	}
}
