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

// Package neofile is the top-level facade over the container engine: it
// wires formatspec resolution, packing, unpacking, repacking and foreign
// archive conversion behind a handful of path-oriented entry points, the
// same role the teacher's root archive package played for its own
// extract/build operations.
package neofile

import (
	"os"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/convert"
	"github.com/nabbar/neofile/errs"
	"github.com/nabbar/neofile/formatspec"
	"github.com/nabbar/neofile/nlog"
	"github.com/nabbar/neofile/pack"
	"github.com/nabbar/neofile/record"
	"github.com/nabbar/neofile/repack"
	"github.com/nabbar/neofile/unpack"
)

const (
	ErrOpenSource errs.CodeError = errs.MinPkgNeoFile + iota
	ErrCreateDest
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgNeoFile, func(c errs.CodeError) string {
		switch c {
		case ErrOpenSource:
			return "failed opening source"
		case ErrCreateDest:
			return "failed creating destination"
		}
		return ""
	})
}

// Config bundles the resolved format spec and the logger shared by every
// operation in this package.
type Config struct {
	Spec   formatspec.Spec
	Logger *nlog.Logger
}

// NewConfig resolves the format spec (explicit override, then INI, then
// built-in defaults) and attaches the given logger, or nlog.Default.
func NewConfig(override formatspec.Override, logger *nlog.Logger, iniPaths ...string) (Config, error) {
	spec, err := formatspec.Resolve(override, iniPaths...)
	if err != nil {
		return Config{}, err
	}
	if logger == nil {
		logger = nlog.Default
	}
	return Config{Spec: spec, Logger: logger}, nil
}

// CreateFromPath packs root (a file or directory) into a new container at
// destPath.
func (c Config) CreateFromPath(root, destPath string, digest checksum.Algorithm) error {
	items, err := pack.FromPath(root)
	if err != nil {
		return ErrOpenSource.Error(err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return ErrCreateDest.Error(err)
	}
	defer out.Close()

	opt := pack.Options{
		Spec:           c.Spec,
		HeaderDigest:   digest,
		ContentDigest:  digest,
		JSONDigest:     digest,
		GlobalChecksum: digest,
		Logger:         c.Logger,
	}

	return pack.Pack(out, items, opt)
}

// ExtractToDir unpacks the container at srcPath into outDir.
func (c Config) ExtractToDir(srcPath, outDir string, uncompress bool) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return ErrOpenSource.Error(err)
	}
	defer in.Close()

	opt := unpack.Options{Spec: c.Spec, Uncompress: uncompress, Logger: c.Logger}
	_, err = unpack.ToDir(in, outDir, opt)
	return err
}

// List returns every entry name in the container at srcPath without
// materializing content.
func (c Config) List(srcPath string) ([]string, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return nil, ErrOpenSource.Error(err)
	}
	defer in.Close()

	entries, _, err := unpack.List(in, unpack.Options{Spec: c.Spec, Logger: c.Logger})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// Validate reads the whole container at srcPath, verifying every digest.
func (c Config) Validate(srcPath string) (unpack.ValidationResult, error) {
	in, err := os.Open(srcPath)
	if err != nil {
		return unpack.ValidationResult{}, ErrOpenSource.Error(err)
	}
	defer in.Close()

	return unpack.Validate(in, unpack.Options{Spec: c.Spec, Logger: c.Logger})
}

// Repack rewrites the container at srcPath into destPath under a new
// target compression algorithm ("auto" to size-select per entry).
func (c Config) Repack(srcPath, destPath, targetCompression string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return ErrOpenSource.Error(err)
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return ErrCreateDest.Error(err)
	}
	defer out.Close()

	opt := repack.DefaultOptions()
	opt.Spec = c.Spec
	opt.TargetCompression = targetCompression
	opt.Logger = c.Logger

	return repack.Repack(in, out, opt)
}

// ConvertFromForeign converts a foreign zip/tar archive at srcPath into a
// new container at destPath.
func (c Config) ConvertFromForeign(srcPath, destPath string, digest checksum.Algorithm) error {
	format := convert.DetectFormat(srcPath)
	if format == convert.FormatUnknown {
		return convert.ErrUnsupportedForeignFormat.Error()
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return ErrOpenSource.Error(err)
	}
	defer in.Close()

	items, err := convert.ItemsFromForeign(format, in)
	if err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return ErrCreateDest.Error(err)
	}
	defer out.Close()

	opt := pack.Options{
		Spec:           c.Spec,
		HeaderDigest:   digest,
		ContentDigest:  digest,
		JSONDigest:     digest,
		GlobalChecksum: digest,
		Logger:         c.Logger,
	}

	return pack.Pack(out, items, opt)
}

// ConvertToForeign extracts the container at srcPath and writes it back
// out as a foreign zip/tar archive at destPath.
func (c Config) ConvertToForeign(srcPath, destPath string, format convert.Format) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return ErrOpenSource.Error(err)
	}
	defer in.Close()

	var items []pack.Item
	_, err = unpack.Each(in, unpack.Options{Spec: c.Spec, Uncompress: true}, func(e *record.Entry) error {
		items = append(items, pack.Item{
			Name:       e.Name,
			IsDir:      e.IsDir(),
			LinkTarget: e.LinkTarget,
			Content:    e.Content,
			Mode:       e.Mode,
			UID:        e.UID,
			GID:        e.GID,
			UName:      e.UName,
			GName:      e.GName,
			ATime:      int64(e.ATime),
			MTime:      int64(e.MTime),
			CTime:      int64(e.CTime),
			BTime:      int64(e.BTime),
		})
		return nil
	})
	if err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return ErrCreateDest.Error(err)
	}
	defer out.Close()

	return convert.ItemsToForeign(format, out, items)
}
