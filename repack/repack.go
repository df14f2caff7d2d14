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

// Package repack rewrites a container with a new target compression
// algorithm. Every compressed entry is decompressed (its raw size feeds
// auto-selection and the record's uncompressed size); only entries whose
// algorithm changes are recompressed, and a matching algorithm keeps its
// stored bytes unchanged. JSON side-data and metadata are preserved.
package repack

import (
	"io"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/codec"
	"github.com/nabbar/neofile/field"
	"github.com/nabbar/neofile/formatspec"
	"github.com/nabbar/neofile/header"
	"github.com/nabbar/neofile/nlog"
	"github.com/nabbar/neofile/record"
	"github.com/nabbar/neofile/unpack"
)

// Options controls one Repack run.
type Options struct {
	Spec formatspec.Spec

	// TargetCompression names the algorithm to recompress with, or
	// "auto" (the default) to size-select per entry.
	TargetCompression string
	TargetLevel       int

	HeaderDigest   checksum.Algorithm
	ContentDigest  checksum.Algorithm
	JSONDigest     checksum.Algorithm
	GlobalChecksum checksum.Algorithm

	Logger *nlog.Logger
}

// DefaultOptions uses crc32 for every digest slot, whatever the source
// container used, and re-selects compression automatically.
func DefaultOptions() Options {
	return Options{
		Spec:              formatspec.Default(),
		TargetCompression: "auto",
		HeaderDigest:      checksum.CRC32,
		ContentDigest:     checksum.CRC32,
		JSONDigest:        checksum.CRC32,
		GlobalChecksum:    checksum.CRC32,
		Logger:            nlog.Default,
	}
}

func (o Options) logger() *nlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return nlog.Default
}

// Repack reads a full container from r and writes an equivalent one to w
// under the requested target compression.
func Repack(r io.Reader, w io.Writer, opt Options) error {
	uopt := unpack.Options{Spec: opt.Spec}

	var entries []*record.Entry
	_, err := unpack.Each(r, uopt, func(e *record.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return err
	}

	fw := field.NewWriter(w, opt.Spec.Delimiter)
	if err = header.Write(fw, opt.Spec.Magic, opt.Spec.Version, "UTF-8", uint64(len(entries)), opt.GlobalChecksum); err != nil {
		return err
	}

	log := opt.logger()

	for _, e := range entries {
		if err = repackOne(fw, e, opt); err != nil {
			return err
		}
		log.Debug("repacked entry", map[string]interface{}{"name": e.Name})
	}

	return record.WriteEndMarker(fw)
}

func repackOne(fw *field.Writer, e *record.Entry, opt Options) error {
	srcAlgo := codec.Parse(e.Compression)

	raw := e.Content
	if !srcAlgo.IsNone() && len(raw) > 0 {
		if dec, derr := codec.Decompress(raw, srcAlgo); derr == nil {
			raw = dec
		}
	}

	dstName := opt.TargetCompression
	var dstAlgo codec.Algorithm
	var dstLevel int

	if dstName == "" || dstName == "auto" {
		dstAlgo, dstLevel = codec.AutoPick(len(raw))
	} else {
		dstAlgo = codec.Parse(dstName)
		dstLevel = opt.TargetLevel
	}

	var stored []byte
	var usedAlgo codec.Algorithm

	if dstAlgo == srcAlgo {
		stored, usedAlgo = e.Content, srcAlgo
	} else {
		compressed, used, err := codec.CompressWithFallback(raw, dstAlgo, dstLevel)
		if err != nil {
			return err
		}
		stored, usedAlgo = compressed, used
	}

	out := record.Entry{
		Type:             e.Type,
		TextEncoding:     e.TextEncoding,
		ContentEncoding:  e.ContentEncoding,
		Name:             e.Name,
		LinkTarget:       e.LinkTarget,
		UncompressedSize: uint64(len(raw)),
		ATime:            e.ATime,
		MTime:            e.MTime,
		CTime:            e.CTime,
		BTime:            e.BTime,
		Mode:             e.Mode,
		WinAttributes:    e.WinAttributes,
		Compression:      usedAlgo.String(),
		CompressedSize:   uint64(len(stored)),
		UID:              e.UID,
		UName:            e.UName,
		GID:              e.GID,
		GName:            e.GName,
		ID:               e.ID,
		Inode:            e.Inode,
		LinkCount:        e.LinkCount,
		Dev:              e.Dev,
		DevMinor:         e.DevMinor,
		DevMajor:         e.DevMajor,
	}

	return record.Encode(fw, out, record.BuildParams{
		JSON:          e.JSON,
		ContentStored: stored,
		HeaderDigest:  opt.HeaderDigest,
		ContentDigest: opt.ContentDigest,
		JSONDigest:    opt.JSONDigest,
	})
}
