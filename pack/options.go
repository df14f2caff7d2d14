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

package pack

import (
	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/formatspec"
	"github.com/nabbar/neofile/nlog"
)

// Options controls one Pack/PackIter run.
type Options struct {
	Spec formatspec.Spec

	// HeaderDigest, ContentDigest and JSONDigest select the checksum
	// algorithm applied to each of the three digest slots of a record.
	HeaderDigest  checksum.Algorithm
	ContentDigest checksum.Algorithm
	JSONDigest    checksum.Algorithm

	// GlobalChecksum selects the algorithm used for the container-level
	// global header digest.
	GlobalChecksum checksum.Algorithm

	Logger *nlog.Logger
}

// DefaultOptions returns sane defaults: SHA-256 on every digest slot, the
// built-in format spec.
func DefaultOptions() Options {
	return Options{
		Spec:           formatspec.Default(),
		HeaderDigest:   checksum.SHA256,
		ContentDigest:  checksum.SHA256,
		JSONDigest:     checksum.SHA256,
		GlobalChecksum: checksum.SHA256,
		Logger:         nlog.Default,
	}
}

func (o Options) logger() *nlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return nlog.Default
}
