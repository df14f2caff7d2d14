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

package codec

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"

	dsbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/xz/lzma"
)

// Compress returns the compressed bytes and the algorithm actually used.
// level == 0 means "use DefaultLevel(algo)".
func Compress(data []byte, algo Algorithm, level int) ([]byte, Algorithm, error) {
	if algo == None {
		return data, None, nil
	}

	if level == 0 {
		level = DefaultLevel(algo)
	}

	var out bytes.Buffer

	switch algo {
	case Zlib:
		w, e := flate.NewWriter(&out, level)
		if e != nil {
			return nil, algo, e
		}
		if _, e = w.Write(data); e != nil {
			return nil, algo, e
		}
		if e = w.Close(); e != nil {
			return nil, algo, e
		}
	case Gzip:
		w, e := gzip.NewWriterLevel(&out, level)
		if e != nil {
			return nil, algo, e
		}
		if _, e = w.Write(data); e != nil {
			return nil, algo, e
		}
		if e = w.Close(); e != nil {
			return nil, algo, e
		}
	case Bzip2:
		w, e := dsbzip2.NewWriter(&out, &dsbzip2.WriterConfig{Level: level})
		if e != nil {
			return nil, algo, e
		}
		if _, e = w.Write(data); e != nil {
			return nil, algo, e
		}
		if e = w.Close(); e != nil {
			return nil, algo, e
		}
	case LZMA:
		w, e := lzma.NewWriter(&out)
		if e != nil {
			return nil, algo, ErrUnavailableCodec.Error(e)
		}
		if _, e = w.Write(data); e != nil {
			return nil, algo, e
		}
		if e = w.Close(); e != nil {
			return nil, algo, e
		}
	default:
		return nil, algo, ErrUnknownAlgorithm.Error()
	}

	return out.Bytes(), algo, nil
}

// CompressWithFallback tries algo/level and, on failure, falls back once to
// Zlib at the given level (or 6 when level is 0), matching the pack
// pipeline's one-time recovery policy.
func CompressWithFallback(data []byte, algo Algorithm, level int) ([]byte, Algorithm, error) {
	out, used, err := Compress(data, algo, level)
	if err == nil {
		return out, used, nil
	}

	fallbackLevel := level
	if fallbackLevel == 0 {
		fallbackLevel = 6
	}

	return Compress(data, Zlib, fallbackLevel)
}

// Decompress reverses Compress for the named algorithm.
func Decompress(data []byte, algo Algorithm) ([]byte, error) {
	if algo == None {
		return data, nil
	}

	switch algo {
	case Zlib:
		r := flate.NewReader(bytes.NewReader(data))
		defer r.Close()
		return io.ReadAll(r)
	case Gzip:
		r, e := gzip.NewReader(bytes.NewReader(data))
		if e != nil {
			return nil, e
		}
		defer r.Close()
		return io.ReadAll(r)
	case Bzip2:
		r, e := dsbzip2.NewReader(bytes.NewReader(data), nil)
		if e != nil {
			return nil, e
		}
		defer r.Close()
		return io.ReadAll(r)
	case LZMA:
		r, e := lzma.NewReader(bytes.NewReader(data))
		if e != nil {
			return nil, ErrUnavailableCodec.Error(e)
		}
		return io.ReadAll(r)
	default:
		return nil, ErrUnknownAlgorithm.Error()
	}
}
