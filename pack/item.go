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

// Package pack assembles a container from a stream of items: it snapshots
// metadata, picks and applies compression, computes the triple checksum,
// and writes the global header plus every record in order.
package pack

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nabbar/neofile/record"
)

// Item is one entry to be written: either a regular file with Content, or
// a directory (IsDir true, Content nil), or a symlink (LinkTarget set).
type Item struct {
	Name       string
	IsDir      bool
	LinkTarget string
	Content    []byte
	JSON       map[string]interface{}

	Mode  uint64
	UID   uint64
	GID   uint64
	UName string
	GName string

	ATime int64
	MTime int64
	CTime int64
	BTime int64

	// Compression names an explicit algorithm ("none", "zlib", "gzip",
	// "bz2", "lzma") or "auto" to size-select. Empty means "auto".
	Compression string
}

func (it Item) entryType() uint64 {
	if it.IsDir {
		return record.TypeDirectory
	}
	return record.TypeRegular
}

func (it Item) mode() uint64 {
	if it.Mode != 0 {
		return it.Mode
	}
	return record.DefaultModeFor(it.IsDir)
}

func (it Item) times() (a, m, c, b int64) {
	now := time.Now().Unix()
	a, m, c, b = it.ATime, it.MTime, it.CTime, it.BTime
	if a == 0 {
		a = now
	}
	if m == 0 {
		m = now
	}
	if c == 0 {
		c = now
	}
	if b == 0 {
		b = now
	}
	return
}

// FromMap builds a deterministically ordered item list from a name->bytes
// map, one regular file per entry.
func FromMap(m map[string][]byte) []Item {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, n := range names {
		items = append(items, Item{Name: n, Content: m[n]})
	}
	return items
}

// FromPath walks root (file or directory) and builds the corresponding
// item list, preserving relative paths and basic POSIX metadata.
func FromPath(root string) ([]Item, error) {
	var items []Item

	base := filepath.Clean(root)
	info, err := os.Stat(base)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		data, rerr := os.ReadFile(base)
		if rerr != nil {
			return nil, rerr
		}
		items = append(items, itemFromInfo(filepath.Base(base), info, data, ""))
		return items, nil
	}

	err = filepath.Walk(base, func(p string, fi os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if p == base {
			return nil
		}

		rel, rerr := filepath.Rel(base, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)

		if fi.Mode()&os.ModeSymlink != 0 {
			target, lerr := os.Readlink(p)
			if lerr != nil {
				return lerr
			}
			items = append(items, itemFromInfo(rel, fi, nil, target))
			return nil
		}

		if fi.IsDir() {
			items = append(items, itemFromInfo(rel, fi, nil, ""))
			return nil
		}

		data, derr := os.ReadFile(p)
		if derr != nil {
			return derr
		}
		items = append(items, itemFromInfo(rel, fi, data, ""))
		return nil
	})

	return items, err
}

func itemFromInfo(name string, fi os.FileInfo, data []byte, linkTarget string) Item {
	mt := fi.ModTime().Unix()
	return Item{
		Name:       name,
		IsDir:      fi.IsDir(),
		LinkTarget: linkTarget,
		Content:    data,
		Mode:       uint64(fi.Mode().Perm()),
		ATime:      mt,
		MTime:      mt,
		CTime:      mt,
		BTime:      mt,
	}
}
