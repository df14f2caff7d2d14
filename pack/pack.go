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
	"io"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/neofile/codec"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/field"
	"github.com/nabbar/neofile/header"
	"github.com/nabbar/neofile/record"
)

const (
	ErrWrite errs.CodeError = errs.MinPkgPack + iota
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgPack, func(c errs.CodeError) string {
		switch c {
		case ErrWrite:
			return "failed writing container"
		}
		return ""
	})
}

// Pack writes a complete container for items to w.
func Pack(w io.Writer, items []Item, opt Options) error {
	return PackIter(w, sliceIter(items), uint64(len(items)), opt)
}

func sliceIter(items []Item) func(func(Item) bool) {
	return func(yield func(Item) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	}
}

// PackIter streams items (a push-style iterator, matching the teacher's
// generator-fed writer pattern) into a container written to w. numFiles is
// an informational hint only; record boundaries are delimiter-detected on
// read regardless of it.
func PackIter(w io.Writer, items func(func(Item) bool), numFiles uint64, opt Options) error {
	fw := field.NewWriter(w, opt.Spec.Delimiter)
	log := opt.logger()

	if err := header.Write(fw, opt.Spec.Magic, opt.Spec.Version, "UTF-8", numFiles, opt.GlobalChecksum); err != nil {
		return err
	}

	var outerErr error

	items(func(it Item) bool {
		if err := packOne(fw, it, opt); err != nil {
			outerErr = err
			return false
		}
		log.Debug("packed entry", logrus.Fields{"name": it.Name})
		return true
	})

	if outerErr != nil {
		return outerErr
	}

	return record.WriteEndMarker(fw)
}

func packOne(fw *field.Writer, it Item, opt Options) error {
	a, m, c, b := it.times()

	stored := it.Content
	algo := codec.Parse(it.Compression)
	level := 0

	if it.Compression == "" || it.Compression == "auto" {
		algo, level = codec.AutoPick(len(it.Content))
	}

	compressed, usedAlgo, err := codec.CompressWithFallback(it.Content, algo, level)
	if err != nil {
		return ErrWrite.Error(err)
	}
	compressedSize := uint64(len(stored))
	if !usedAlgo.IsNone() {
		stored = compressed
		compressedSize = uint64(len(compressed))
	}

	e := record.Entry{
		Type:             it.entryType(),
		TextEncoding:     "UTF-8",
		ContentEncoding:  "UTF-8",
		Name:             it.Name,
		LinkTarget:       it.LinkTarget,
		UncompressedSize: uint64(len(it.Content)),
		ATime:            uint64(a),
		MTime:            uint64(m),
		CTime:            uint64(c),
		BTime:            uint64(b),
		Mode:             it.mode(),
		Compression:      usedAlgo.String(),
		CompressedSize:   compressedSize,
		UID:              it.UID,
		UName:            it.UName,
		GID:              it.GID,
		GName:            it.GName,
	}

	return record.Encode(fw, e, record.BuildParams{
		JSON:          it.JSON,
		ContentStored: stored,
		HeaderDigest:  opt.HeaderDigest,
		ContentDigest: opt.ContentDigest,
		JSONDigest:    opt.JSONDigest,
	})
}
