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

package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/codec"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/field"
)

const (
	ErrTruncatedRecord   errs.CodeError = errs.MinPkgRecord + iota
	ErrChecksumMismatch
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgRecord, func(c errs.CodeError) string {
		switch c {
		case ErrTruncatedRecord:
			return "truncated record"
		case ErrChecksumMismatch:
			return "checksum mismatch"
		}
		return ""
	})
}

var recognizedDigestNames = map[string]bool{
	"none": true, "crc32": true, "md5": true, "sha1": true,
	"sha224": true, "sha256": true, "sha384": true, "sha512": true,
	"blake2b": true, "blake2s": true,
}

func isHexField(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// jsonPreambleIndex resolves the field-position ambiguity described for
// the JSON preamble: whether field 27 is a logical-length hex field (six
// slots) or already the byte-size field (five slots).
type jsonPreambleIndex struct {
	sixSlot bool
}

func detectPreamble(v27, v28, v29 []byte) jsonPreambleIndex {
	if isHexField(v27) && isHexField(v28) && recognizedDigestNames[strings.ToLower(string(v29))] {
		return jsonPreambleIndex{sixSlot: true}
	}
	return jsonPreambleIndex{sixSlot: false}
}

// Options controls how Decode parses a record.
type Options struct {
	ListOnly      bool
	SkipChecksum  bool
	Uncompress    bool
	SkipJSON      bool
}

// Decode reads one record from r. It returns (nil, nil) when the end
// marker ("0","0") is encountered.
func Decode(r *field.Reader, delim []byte, opt Options) (*Entry, error) {
	first, err := r.ReadField()
	if err != nil {
		return nil, ErrTruncatedRecord.Error(err)
	}

	var headerSizeHex, fieldsLenHex []byte

	if string(first) == "0" {
		second, err := r.ReadField()
		if err != nil {
			return nil, ErrTruncatedRecord.Error(err)
		}
		if string(second) == "0" {
			return nil, nil
		}
		headerSizeHex = first
		fieldsLenHex = second
	} else {
		headerSizeHex = first
		fieldsLenHex, err = r.ReadField()
		if err != nil {
			return nil, ErrTruncatedRecord.Error(err)
		}
	}
	_ = headerSizeHex

	nFields := parseHexU(fieldsLenHex)
	vals := make([][]byte, 0, nFields)
	for i := uint64(0); i < nFields; i++ {
		v, err := r.ReadField()
		if err != nil {
			return nil, ErrTruncatedRecord.Error(err)
		}
		vals = append(vals, v)
	}

	if len(vals) < 25 {
		return nil, ErrTruncatedRecord.Error()
	}

	get := func(i int) []byte {
		if i < 0 || i >= len(vals) {
			return nil
		}
		return vals[i]
	}

	pre := detectPreamble(get(26), get(27), get(28))

	idx := 25 // vals[25] is json_type_name
	idxJSONType := idx
	idx++
	var idxJSONLen int = -1
	if pre.sixSlot {
		idxJSONLen = idx
		idx++
	}
	idxJSONSize := idx
	idx++
	idxJSONCsType := idx
	idx++
	idxJSONCs := idx
	idx++

	idxExtrasSize := idx
	idx++
	idxExtrasCount := idx
	idx++

	extrasCount := parseHexU(get(idxExtrasCount))
	idx += int(extrasCount)

	idxHeaderCsType := idx
	idxContentCsType := idx + 1
	idxHeaderCs := idx + 2
	idxContentCs := idx + 3

	_ = idxExtrasSize
	_ = idxJSONLen
	_ = idxJSONType

	e := &Entry{
		Type:             parseHexU(get(0)),
		TextEncoding:     string(get(1)),
		ContentEncoding:  string(get(2)),
		Name:             NormalizeName(string(get(3))),
		LinkTarget:       string(get(4)),
		UncompressedSize: parseHexU(get(5)),
		ATime:            parseHexU(get(6)),
		MTime:            parseHexU(get(7)),
		CTime:            parseHexU(get(8)),
		BTime:            parseHexU(get(9)),
		Mode:             parseHexU(get(10)),
		WinAttributes:    parseHexU(get(11)),
		Compression:      string(get(12)),
		CompressedSize:   parseHexU(get(13)),
		UID:              parseHexU(get(14)),
		UName:            string(get(15)),
		GID:              parseHexU(get(16)),
		GName:            string(get(17)),
		ID:               parseHexU(get(18)),
		Inode:            parseHexU(get(19)),
		LinkCount:        parseHexU(get(20)),
		Dev:              parseHexU(get(21)),
		DevMinor:         parseHexU(get(22)),
		DevMajor:         parseHexU(get(23)),
		SeekHint:         parseHexU(get(24)),
	}

	if e.Compression == "" {
		e.Compression = "none"
	}

	extras := make([]string, 0, extrasCount)
	for i := uint64(0); i < extrasCount; i++ {
		extras = append(extras, string(get(idxExtrasCount+1+int(i))))
	}
	e.Extras = extras

	e.JSONDigestType = string(get(idxJSONCsType))
	e.JSONDigest = string(get(idxJSONCs))
	e.HeaderDigestType = string(get(idxHeaderCsType))
	e.ContentDigestType = string(get(idxContentCsType))
	e.HeaderDigest = string(get(idxHeaderCs))
	e.ContentDigest = string(get(idxContentCs))

	jsonSize := parseHexU(get(idxJSONSize))

	var jsonBytes []byte
	if jsonSize > 0 {
		if opt.ListOnly || opt.SkipJSON {
			if _, err := r.ReadN(int(jsonSize) + len(delim)); err != nil {
				return nil, ErrTruncatedRecord.Error(err)
			}
		} else {
			jsonBytes, err = r.ReadN(int(jsonSize))
			if err != nil {
				return nil, ErrTruncatedRecord.Error(err)
			}
			if _, err = r.ReadN(len(delim)); err != nil {
				return nil, ErrTruncatedRecord.Error(err)
			}
		}
	} else {
		if _, err := r.ReadN(len(delim)); err != nil {
			return nil, ErrTruncatedRecord.Error(err)
		}
	}
	e.JSONRaw = jsonBytes

	storedLen := e.UncompressedSize
	if e.Compression != "none" && e.CompressedSize > 0 {
		storedLen = e.CompressedSize
	}

	var stored []byte
	if storedLen > 0 {
		if opt.ListOnly {
			if _, err := r.ReadN(int(storedLen)); err != nil {
				return nil, ErrTruncatedRecord.Error(err)
			}
		} else {
			stored, err = r.ReadN(int(storedLen))
			if err != nil {
				return nil, ErrTruncatedRecord.Error(err)
			}
		}
	}
	if _, err := r.ReadN(len(delim)); err != nil {
		return nil, ErrTruncatedRecord.Error(err)
	}

	if jsonSize > 0 && !opt.SkipChecksum && !(opt.ListOnly || opt.SkipJSON) {
		ok, verr := checksum.Parse(e.JSONDigestType).Verify(jsonBytes, e.JSONDigest)
		if verr != nil {
			return nil, verr
		}
		if !ok {
			return nil, ErrChecksumMismatch.Error(fmt.Errorf("entry %q json digest", e.Name))
		}
	}

	if !opt.SkipChecksum && storedLen > 0 && !opt.ListOnly {
		ok, verr := checksum.Parse(e.ContentDigestType).Verify(stored, e.ContentDigest)
		if verr != nil {
			return nil, verr
		}
		if !ok {
			return nil, ErrChecksumMismatch.Error(fmt.Errorf("entry %q content digest", e.Name))
		}
	}

	if !opt.ListOnly {
		content := stored
		if opt.Uncompress && e.Compression != "none" && len(stored) > 0 {
			if dec, derr := codec.Decompress(stored, codec.Parse(e.Compression)); derr == nil {
				content = dec
			}
		}
		e.Content = content

		if len(jsonBytes) > 0 {
			var obj map[string]interface{}
			if jerr := json.Unmarshal(jsonBytes, &obj); jerr == nil {
				e.JSON = obj
			}
		}
	}

	return e, nil
}

func parseHexU(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	v, _ := strconv.ParseUint(string(b), 16, 64)
	return v
}
