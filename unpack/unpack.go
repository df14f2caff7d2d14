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

package unpack

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/field"
	"github.com/nabbar/neofile/header"
	"github.com/nabbar/neofile/record"
)

const (
	ErrOpenHeader errs.CodeError = errs.MinPkgUnpack + iota
	ErrBadName
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgUnpack, func(c errs.CodeError) string {
		switch c {
		case ErrOpenHeader:
			return "failed reading global header"
		case ErrBadName:
			return "entry escapes output directory"
		}
		return ""
	})
}

// Each parses the global header, then invokes fn for every record in
// order until the end marker. It stops and returns fn's error if fn
// returns one.
func Each(r io.Reader, opt Options, fn func(*record.Entry) error) (header.Header, error) {
	fr := field.NewReader(r, opt.Spec.Delimiter)

	h, err := header.Read(fr, opt.Spec.Delimiter, opt.ExpectMagic)
	if err != nil {
		return header.Header{}, ErrOpenHeader.Error(err)
	}

	log := opt.logger()

	for {
		e, derr := record.Decode(fr, opt.Spec.Delimiter, opt.recordOptions())
		if derr != nil {
			return h, derr
		}
		if e == nil {
			break
		}
		log.Debug("unpacked entry", logrus.Fields{"name": e.Name})
		if ferr := fn(e); ferr != nil {
			return h, ferr
		}
	}

	return h, nil
}

// List returns every entry's metadata without materializing content.
func List(r io.Reader, opt Options) ([]*record.Entry, header.Header, error) {
	opt.ListOnly = true
	var out []*record.Entry
	h, err := Each(r, opt, func(e *record.Entry) error {
		out = append(out, e)
		return nil
	})
	return out, h, err
}

// ToMap decodes every entry into a name->content map.
func ToMap(r io.Reader, opt Options) (map[string][]byte, header.Header, error) {
	out := make(map[string][]byte)
	h, err := Each(r, opt, func(e *record.Entry) error {
		if !e.IsDir() {
			out[e.Name] = e.Content
		}
		return nil
	})
	return out, h, err
}

// ToDir materializes every entry under outDir, creating directories and
// symlinks as appropriate. File permissions are limited to the low 9 bits
// of the stored mode.
func ToDir(r io.Reader, outDir string, opt Options) (header.Header, error) {
	return Each(r, opt, func(e *record.Entry) error {
		target, err := safeJoin(outDir, e.Name)
		if err != nil {
			return err
		}

		perm := os.FileMode(e.Mode & 0777)

		switch {
		case e.IsDir():
			if perm == 0 {
				perm = 0755
			}
			return os.MkdirAll(target, perm)
		case e.LinkTarget != "":
			if derr := os.MkdirAll(filepath.Dir(target), 0755); derr != nil {
				return derr
			}
			_ = os.Remove(target)
			return os.Symlink(e.LinkTarget, target)
		default:
			if derr := os.MkdirAll(filepath.Dir(target), 0755); derr != nil {
				return derr
			}
			if perm == 0 {
				perm = 0644
			}
			return os.WriteFile(target, e.Content, perm)
		}
	})
}

func safeJoin(base, name string) (string, error) {
	clean := filepath.Clean("/" + name)
	joined := filepath.Join(base, clean)
	if joined != base && !hasPathPrefix(joined, base) {
		return "", ErrBadName.Error()
	}
	return joined, nil
}

func hasPathPrefix(p, base string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidationResult summarizes a Validate pass.
type ValidationResult struct {
	HeaderOK bool
	EntryOK  map[string]bool
	AllOK    bool
}

// Validate reads the whole container, verifying every checksum, without
// writing anything to disk. HeaderOK reflects the real digest comparison
// (see the header package); per-entry JSON/content mismatches surface as
// a decode error for that entry, so a clean pass through Each implies the
// per-entry digests matched.
func Validate(r io.Reader, opt Options) (ValidationResult, error) {
	res := ValidationResult{EntryOK: make(map[string]bool)}

	h, err := Each(r, opt, func(e *record.Entry) error {
		res.EntryOK[e.Name] = true
		return nil
	})

	res.HeaderOK = h.HeaderOK
	res.AllOK = res.HeaderOK && err == nil

	return res, err
}
