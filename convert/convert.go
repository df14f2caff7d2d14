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

// Package convert bridges foreign archive formats (zip, tar and its
// compressed variants) and the container format, reusing the archive
// reader/writer pair for the actual zip/tar codec.
package convert

import (
	"io"
	"io/fs"
	"strings"
	"time"

	arcdet "github.com/nabbar/neofile/archive/archive"
	arctar "github.com/nabbar/neofile/archive/archive/tar"
	arctps "github.com/nabbar/neofile/archive/archive/types"
	arczip "github.com/nabbar/neofile/archive/archive/zip"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/pack"
)

// fileInfo adapts a pack.Item to fs.FileInfo, the shape the archive
// reader/writer pair expects for header construction.
type fileInfo struct {
	it pack.Item
}

func (f fileInfo) Name() string { return f.it.Name }
func (f fileInfo) Size() int64  { return int64(len(f.it.Content)) }
func (f fileInfo) Mode() fs.FileMode {
	m := fs.FileMode(f.it.Mode & 0777)
	if f.it.IsDir {
		m |= fs.ModeDir
	}
	if f.it.LinkTarget != "" {
		m |= fs.ModeSymlink
	}
	return m
}
func (f fileInfo) ModTime() time.Time { return time.Unix(f.it.MTime, 0) }
func (f fileInfo) IsDir() bool        { return f.it.IsDir }
func (f fileInfo) Sys() interface{}   { return nil }

const (
	ErrUnsupportedForeignFormat errs.CodeError = errs.MinPkgConvert + iota
	ErrDependencyMissing
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgConvert, func(c errs.CodeError) string {
		switch c {
		case ErrUnsupportedForeignFormat:
			return "unsupported foreign archive format"
		case ErrDependencyMissing:
			return "required codec dependency unavailable"
		}
		return ""
	})
}

// Format identifies a supported foreign container format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTar
)

// DetectFormat maps a file name's extension to a Format, matching the
// suffix rules of the original conversion entry point (.zip; .tar and its
// .tar.gz/.tgz/.tar.bz2/.tbz2/.tar.xz/.txz compressed variants all map to
// FormatTar by name). ItemsFromForeign reads a FormatTar stream as a plain
// tar and does not decompress it, so a compressed tar is not readable
// through this path.
func DetectFormat(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".tar"),
		strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"),
		strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTar
	default:
		return FormatUnknown
	}
}

// ItemsFromForeignAuto sniffs the archive algorithm from its leading bytes
// (tar's "ustar" magic at offset 257, zip's local-file-header signature)
// rather than trusting a file name extension, then delegates to the same
// walk logic as ItemsFromForeign.
func ItemsFromForeignAuto(r io.ReadCloser) ([]pack.Item, error) {
	algo, rd, _, err := arcdet.Detect(r)
	if err != nil {
		return nil, err
	}
	if algo.IsNone() || rd == nil {
		return nil, ErrUnsupportedForeignFormat.Error()
	}
	defer rd.Close()

	return walkItems(rd)
}

// sizedReader adapts a plain io.ReadCloser (e.g. *os.File) into the
// ReaderAt+Seeker+Size() shape the zip reader needs: the standard library
// zip codec requires random access to the central directory, unlike tar's
// purely sequential layout.
type sizedReader struct {
	io.ReadCloser
	io.ReaderAt
	io.Seeker
}

func (s sizedReader) Size() int64 {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0
	}
	_, _ = s.Seek(cur, io.SeekStart)
	return end
}

// ItemsFromForeign reads a foreign archive (already opened, positioned at
// its start) of the given format and returns the equivalent item list for
// packing into a container.
func ItemsFromForeign(format Format, r io.ReadCloser) ([]pack.Item, error) {
	var rd arctps.Reader
	var err error

	switch format {
	case FormatZip:
		ra, ok1 := r.(io.ReaderAt)
		sk, ok2 := r.(io.Seeker)
		if !ok1 || !ok2 {
			return nil, ErrUnsupportedForeignFormat.Error()
		}
		rd, err = arczip.NewReader(sizedReader{ReadCloser: r, ReaderAt: ra, Seeker: sk})
	case FormatTar:
		rd, err = arctar.NewReader(r)
	default:
		return nil, ErrUnsupportedForeignFormat.Error()
	}
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	return walkItems(rd)
}

func walkItems(rd arctps.Reader) ([]pack.Item, error) {
	var items []pack.Item
	var walkErr error

	rd.Walk(func(fi fs.FileInfo, rc io.ReadCloser, name, link string) bool {
		it := pack.Item{
			Name:       name,
			IsDir:      fi.IsDir(),
			LinkTarget: link,
			MTime:      fi.ModTime().Unix(),
			Mode:       uint64(fi.Mode().Perm()),
		}

		if !it.IsDir && rc != nil {
			data, rerr := io.ReadAll(rc)
			_ = rc.Close()
			if rerr != nil {
				walkErr = rerr
				return false
			}
			it.Content = data
		}

		items = append(items, it)
		return true
	})

	return items, walkErr
}

// ItemsToForeign writes items to w using the writer for the given foreign
// format.
func ItemsToForeign(format Format, w io.WriteCloser, items []pack.Item) error {
	var wr arctps.Writer
	var err error

	switch format {
	case FormatZip:
		wr, err = arczip.NewWriter(w)
	case FormatTar:
		wr, err = arctar.NewWriter(w)
	default:
		return ErrUnsupportedForeignFormat.Error()
	}
	if err != nil {
		return err
	}
	defer wr.Close()

	for _, it := range items {
		fi := fileInfo{it}
		var rc io.ReadCloser
		if !it.IsDir {
			rc = io.NopCloser(strings.NewReader(string(it.Content)))
		}
		if aerr := wr.Add(fi, rc, it.Name, it.LinkTarget); aerr != nil {
			return aerr
		}
	}

	return nil
}
