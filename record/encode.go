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
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/field"
)

func hex64(n uint64) string {
	return strconv.FormatUint(n, 16)
}

// BuildParams carries everything Encode needs that isn't already sitting
// on Entry: the stored (already compressed) content bytes, the JSON
// side-data object, and the three checksum algorithms to apply.
type BuildParams struct {
	JSON          map[string]interface{}
	ContentStored []byte
	HeaderDigest  checksum.Algorithm
	ContentDigest checksum.Algorithm
	JSONDigest    checksum.Algorithm
}

// Encode renders one record: fixed fields, five-slot JSON preamble, no
// extras, triple checksum, and the JSON/content payloads. The five-slot
// layout is emitted unconditionally; Decode recognises both layouts.
func Encode(w *field.Writer, e Entry, p BuildParams) error {
	name := NormalizeName(e.Name)
	delimLen := uint64(len(w.Delim()))

	fields := [][]byte{
		[]byte(hex64(e.Type)),
		[]byte(orDefault(e.TextEncoding, "UTF-8")),
		[]byte(orDefault(e.ContentEncoding, "UTF-8")),
		[]byte(name),
		[]byte(e.LinkTarget),
		[]byte(hex64(e.UncompressedSize)),
		[]byte(hex64(e.ATime)),
		[]byte(hex64(e.MTime)),
		[]byte(hex64(e.CTime)),
		[]byte(hex64(e.BTime)),
		[]byte(hex64(e.Mode)),
		[]byte(hex64(e.WinAttributes)),
		[]byte(orDefault(e.Compression, "none")),
		[]byte(hex64(e.CompressedSize)),
		[]byte(hex64(e.UID)),
		[]byte(e.UName),
		[]byte(hex64(e.GID)),
		[]byte(e.GName),
		[]byte(hex64(e.ID)),
		[]byte(hex64(e.Inode)),
		[]byte(hex64(e.LinkCount)),
		[]byte(hex64(e.Dev)),
		[]byte(hex64(e.DevMinor)),
		[]byte(hex64(e.DevMajor)),
		[]byte(hex64(delimLen)), // seek_hint: reserved, always the delimiter length
	}

	var rawJSON []byte
	jsonTypeName := "none"
	jsonSizeHex := "0"
	jsonCsType := "none"
	jsonCsVal := "0"

	if len(p.JSON) > 0 {
		raw, err := json.Marshal(p.JSON)
		if err != nil {
			return err
		}
		rawJSON = raw
		jsonTypeName = "json"
		jsonSizeHex = hex64(uint64(len(raw)))
		jsonCsType = p.JSONDigest.String()
		sum, err := p.JSONDigest.Sum(raw)
		if err != nil {
			return err
		}
		jsonCsVal = sum
	}

	recFields := append([][]byte{}, fields...)
	recFields = append(recFields,
		[]byte(jsonTypeName),
		[]byte(jsonSizeHex),
		[]byte(jsonCsType),
		[]byte(jsonCsVal),
		[]byte(hex64(uint64(len("0")+1))), // extras_size_hex: one field, "0", plus its delimiter
		[]byte("0"),                       // extras_count: always zero on encode
	)

	headerCsType := p.HeaderDigest.String()
	contentCsType := p.ContentDigest.String()
	recFields = append(recFields, []byte(headerCsType), []byte(contentCsType))

	recordFieldsLenHex := hex64(uint64(len(recFields) + 2))

	headerNoCS := joinFields(w.Delim(), recFields)

	delim := w.Delim()
	fieldsLenField := append(append([]byte{}, []byte(recordFieldsLenHex)...), delim...)
	placeholder := delim // append_null('', d) is just the delimiter

	headerSizeHex := hex64(uint64(len(fieldsLenField) + len(headerNoCS) + len(placeholder)))

	var headerWithSizes bytes.Buffer
	headerWithSizes.Write([]byte(headerSizeHex))
	headerWithSizes.Write(delim)
	headerWithSizes.Write(fieldsLenField)
	headerWithSizes.Write(headerNoCS)

	headerChecksum, err := p.HeaderDigest.Sum(headerWithSizes.Bytes())
	if err != nil {
		return err
	}

	contentChecksum, err := p.ContentDigest.Sum(p.ContentStored)
	if err != nil {
		return err
	}

	if e := w.WriteRaw(headerWithSizes.Bytes()); e != nil {
		return e
	}
	if e := w.WriteField([]byte(headerChecksum)); e != nil {
		return e
	}
	if e := w.WriteField([]byte(contentChecksum)); e != nil {
		return e
	}
	if e := w.WriteField(rawJSON); e != nil {
		return e
	}
	return w.WriteField(p.ContentStored)
}

func joinFields(delim []byte, fields [][]byte) []byte {
	var buf bytes.Buffer
	fw := field.NewWriter(&buf, delim)
	for _, f := range fields {
		_ = fw.WriteField(f)
	}
	return buf.Bytes()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// WriteEndMarker emits the two-field "0","0" end-of-archive marker.
func WriteEndMarker(w *field.Writer) error {
	return w.WriteFields([]byte("0"), []byte("0"))
}
