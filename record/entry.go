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

// Package record encodes and decodes a single archive entry: the 25 fixed
// metadata fields, the ambiguous JSON-side-data preamble, extras, and the
// triple checksum (header, content, JSON).
package record

const (
	TypeRegular   = 0
	TypeDirectory = 5

	// Default permission bits, matching S_IFREG/S_IFDIR | default mode.
	ModeFileDefault = 0666
	ModeDirDefault  = 0755
	modeIFREG       = 0100000
	modeIFDIR       = 0040000
)

// Entry is the decoded form of one archive record.
type Entry struct {
	Type             uint64
	TextEncoding     string
	ContentEncoding  string
	Name             string
	LinkTarget       string
	UncompressedSize uint64
	ATime            uint64
	MTime            uint64
	CTime            uint64
	BTime            uint64
	Mode             uint64
	WinAttributes    uint64
	Compression      string
	CompressedSize   uint64
	UID              uint64
	UName            string
	GID              uint64
	GName            string
	ID               uint64
	Inode            uint64
	LinkCount        uint64
	Dev              uint64
	DevMinor         uint64
	DevMajor         uint64
	SeekHint         uint64

	JSON       map[string]interface{}
	JSONRaw    []byte
	Extras     []string

	HeaderDigestType  string
	ContentDigestType string
	HeaderDigest      string
	ContentDigest     string
	JSONDigestType    string
	JSONDigest        string

	// Content holds the stored (possibly compressed) bytes after decode,
	// or the already-decompressed bytes when requested uncompress=true at
	// parse time. Nil when listing only.
	Content []byte
}

// IsDir reports whether the entry represents a directory.
func (e Entry) IsDir() bool {
	return e.Type == TypeDirectory
}

// DefaultModeFor returns the conventional mode bits for a fresh entry of
// the given kind.
func DefaultModeFor(isDir bool) uint64 {
	if isDir {
		return modeIFDIR | ModeDirDefault
	}
	return modeIFREG | ModeFileDefault
}

// NormalizeName ensures name begins with "./" or "/".
func NormalizeName(name string) string {
	if len(name) == 0 {
		return "./"
	}
	if name[0] == '.' && len(name) > 1 && name[1] == '/' {
		return name
	}
	if name[0] == '/' {
		return name
	}
	return "./" + name
}
