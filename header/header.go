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

// Package header encodes and decodes the archive preamble: magic,
// version, encoding, platform tag, entry count hint, extras, and the
// header-level digest.
package header

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/field"
)

// Header is the decoded global preamble.
type Header struct {
	Magic        string
	Encoding     string
	PlatformTag  string
	EntryCount   uint64
	Extras       []string
	ChecksumType checksum.Algorithm
	HeaderDigest string
	HeaderOK     bool // actual header-digest comparison result (decode only)
}

const (
	ErrBadMagic errs.CodeError = errs.MinPkgHeader + iota
	ErrTruncatedHeader
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgHeader, func(c errs.CodeError) string {
		switch c {
		case ErrBadMagic:
			return "header magic mismatch"
		case ErrTruncatedHeader:
			return "truncated global header"
		}
		return ""
	})
}

func hexOf(n uint64) string {
	return strconv.FormatUint(n, 16)
}

func parseHex(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	v, _ := strconv.ParseUint(string(b), 16, 64)
	return v
}

// bodyFields builds the delimited field list for header fields 3 through
// 10 (field-count hint through checksum_type_name), minus trailing
// delimiter handling which the caller's field.Writer performs. Both Write
// and Read (for digest recomputation) go through this so they can never
// drift apart.
func bodyFields(encoding, platform string, numFiles uint64, extras []string, checksumType string) [][]byte {
	fields := [][]byte{
		[]byte(hexOf(uint64(3 + 5 + len(extras) + 1))),
		[]byte(encoding),
		[]byte(platform),
		[]byte(hexOf(numFiles)),
	}

	extrasBlobLen := 0
	for _, e := range extras {
		extrasBlobLen += len(e) + 1 // +1 for its delimiter, approximated as 1 byte below
	}

	fields = append(fields, []byte(hexOf(uint64(extrasBlobLen))))
	fields = append(fields, []byte(hexOf(uint64(len(extras)))))
	for _, e := range extras {
		fields = append(fields, []byte(e))
	}
	fields = append(fields, []byte(checksumType))

	return fields
}

func writeFieldsRaw(delim []byte, fields [][]byte) []byte {
	var buf bytes.Buffer
	w := field.NewWriter(&buf, delim)
	for _, f := range fields {
		_ = w.WriteField(f)
	}
	return buf.Bytes()
}

// Write encodes and emits the global header for an archive about to hold
// numFiles entries.
func Write(w *field.Writer, magic, version, encoding string, numFiles uint64, checksumType checksum.Algorithm) error {
	if encoding == "" {
		encoding = "UTF-8"
	}

	body := writeFieldsRaw(w.Delim(), bodyFields(encoding, runtime.GOOS, numFiles, nil, checksumType.String()))
	headerSizeHex := hexOf(uint64(len(body)))

	prefix := writeFieldsRaw(w.Delim(), [][]byte{[]byte(magic + version), []byte(headerSizeHex)})

	full := append(append([]byte{}, prefix...), body...)

	digest, err := checksumType.Sum(full)
	if err != nil {
		return err
	}

	if e := w.WriteRaw(full); e != nil {
		return e
	}
	return w.WriteField([]byte(digest))
}

// Read parses the global header. delim is required to recompute the
// header digest for HeaderOK. expectMagic, when non-empty, is checked as
// a prefix of the decoded magic+version field.
func Read(r *field.Reader, delim []byte, expectMagic string) (Header, error) {
	magicVer, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	headerSizeHex, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	if _, err = r.ReadField(); err != nil { // field-count hint
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	encoding, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}
	platform, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}
	numFiles, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}
	if _, err = r.ReadField(); err != nil { // extras blob size
		return Header{}, ErrTruncatedHeader.Error(err)
	}
	extrasCount, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	n := parseHex(extrasCount)
	extras := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		e, err := r.ReadField()
		if err != nil {
			return Header{}, ErrTruncatedHeader.Error(err)
		}
		extras = append(extras, string(e))
	}

	checksumTypeName, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	digest, err := r.ReadField()
	if err != nil {
		return Header{}, ErrTruncatedHeader.Error(err)
	}

	h := Header{
		Magic:        string(magicVer),
		Encoding:     string(encoding),
		PlatformTag:  string(platform),
		EntryCount:   parseHex(numFiles),
		Extras:       extras,
		ChecksumType: checksum.Parse(string(checksumTypeName)),
		HeaderDigest: string(digest),
	}

	if h.Encoding == "" {
		h.Encoding = "UTF-8"
	}

	if expectMagic != "" {
		if len(h.Magic) < len(expectMagic) || h.Magic[:len(expectMagic)] != expectMagic {
			return h, ErrBadMagic.Error(fmt.Errorf("got %q", h.Magic))
		}
	}

	// Recompute the digest input exactly as Write produced it and compare,
	// rather than hardcoding HeaderOK to true.
	body := writeFieldsRaw(delim, bodyFields(h.Encoding, h.PlatformTag, h.EntryCount, h.Extras, checksumTypeName0(checksumTypeName)))
	prefix := writeFieldsRaw(delim, [][]byte{magicVer, headerSizeHex})
	full := append(append([]byte{}, prefix...), body...)

	if sum, serr := h.ChecksumType.Sum(full); serr == nil {
		h.HeaderOK = sum == h.HeaderDigest
	}

	return h, nil
}

func checksumTypeName0(b []byte) string {
	return string(b)
}
