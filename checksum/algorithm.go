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

// Package checksum dispatches the hex digest used for the three checksum
// slots of a container (header, JSON preamble, content). Digest text is
// always lowercase hex, "0" for the none algorithm.
package checksum

import (
	"hash"
	"hash/crc32"
	"strings"

	enchex "github.com/nabbar/neofile/encoding/hexa"
	"github.com/nabbar/neofile/errs"
)

// Algorithm identifies a digest function.
type Algorithm uint8

const (
	None Algorithm = iota
	CRC32
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

const (
	ErrUnknownAlgorithm errs.CodeError = errs.MinPkgChecksum + iota
	ErrMismatch
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgChecksum, func(c errs.CodeError) string {
		switch c {
		case ErrUnknownAlgorithm:
			return "unsupported checksum algorithm"
		case ErrMismatch:
			return "checksum mismatch"
		}
		return ""
	})
}

// Parse maps a textual algorithm name (as stored in a container) to an
// Algorithm value. Unknown or empty names resolve to None.
func Parse(s string) Algorithm {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crc32":
		return CRC32
	case "md5":
		return MD5
	case "sha1":
		return SHA1
	case "sha224":
		return SHA224
	case "sha256":
		return SHA256
	case "sha384":
		return SHA384
	case "sha512":
		return SHA512
	default:
		return None
	}
}

func (a Algorithm) String() string {
	switch a {
	case CRC32:
		return "crc32"
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	case SHA224:
		return "sha224"
	case SHA256:
		return "sha256"
	case SHA384:
		return "sha384"
	case SHA512:
		return "sha512"
	default:
		return "none"
	}
}

func (a Algorithm) IsNone() bool {
	return a == None
}

// newHash returns a fresh hash.Hash for the algorithm, or nil for None.
func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case CRC32:
		return crc32.NewIEEE(), nil
	case MD5:
		return newMD5(), nil
	case SHA1:
		return newSHA1(), nil
	case SHA224:
		return newSHA224(), nil
	case SHA256:
		return newSHA256(), nil
	case SHA384:
		return newSHA384(), nil
	case SHA512:
		return newSHA512(), nil
	case None:
		return nil, nil
	default:
		return nil, ErrUnknownAlgorithm.Error()
	}
}

// Sum returns the hex digest of data under this algorithm. "0" for None,
// crc32 is zero-padded to 8 hex chars like the other digests.
func (a Algorithm) Sum(data []byte) (string, error) {
	if a.IsNone() {
		return "0", nil
	}

	h, e := a.newHash()
	if e != nil {
		return "", e
	}

	h.Write(data)
	return string(enchex.New().Encode(h.Sum(nil))), nil
}

// Verify reports whether data's digest under this algorithm equals want.
func (a Algorithm) Verify(data []byte, want string) (bool, error) {
	got, e := a.Sum(data)
	if e != nil {
		return false, e
	}

	return got == want, nil
}
