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

// Package formatspec resolves the {magic, version, delimiter, new_style}
// parameter set that the rest of the engine needs to read or write a
// container: explicit caller overrides, then environment-pointed or
// sibling INI file, then built-in defaults.
package formatspec

import (
	"os"
	"strings"

	"github.com/nabbar/neofile/errs"
	"gopkg.in/ini.v1"
)

// Spec is the resolved set of format parameters.
type Spec struct {
	Magic     string
	Version   string
	Delimiter []byte
	NewStyle  bool
	Name      string
}

const (
	ErrInvalidConfiguration errs.CodeError = errs.MinPkgFormatSpec + iota
)

func init() {
	errs.RegisterIdFctMessage(errs.MinPkgFormatSpec, func(c errs.CodeError) string {
		switch c {
		case ErrInvalidConfiguration:
			return "invalid format configuration"
		}
		return ""
	})
}

// Default returns the built-in defaults.
func Default() Spec {
	return Spec{
		Magic:     "NeoFile",
		Version:   "001",
		Delimiter: []byte{0x00},
		NewStyle:  true,
	}
}

// VersionDigits strips non-digit characters from ver, defaulting to "001"
// when nothing digit-like remains.
func VersionDigits(ver string) string {
	var b strings.Builder
	for _, r := range ver {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "001"
	}
	return b.String()
}

// Override carries explicit caller-supplied parameters; zero-value fields
// are left to further resolution.
type Override struct {
	Magic     string
	Version   string
	Delimiter []byte
	NewStyle  *bool
}

func (o Override) empty() bool {
	return o.Magic == "" && o.Version == "" && len(o.Delimiter) == 0 && o.NewStyle == nil
}

// Resolve implements the resolution order: explicit override, then INI
// (from env var or sibling file), then built-in defaults.
func Resolve(override Override, iniPaths ...string) (Spec, error) {
	if !override.empty() {
		s := Default()
		if override.Magic != "" {
			s.Magic = override.Magic
		}
		if override.Version != "" {
			s.Version = VersionDigits(override.Version)
		}
		if len(override.Delimiter) > 0 {
			s.Delimiter = override.Delimiter
		}
		if override.NewStyle != nil {
			s.NewStyle = *override.NewStyle
		}
		return s, nil
	}

	if s, ok, err := loadFromINI(iniPaths, ""); err != nil {
		return Spec{}, err
	} else if ok {
		return s, nil
	}

	return Default(), nil
}

func candidatePaths(explicit []string) []string {
	var cands []string
	cands = append(cands, explicit...)

	for _, env := range []string{"PYNEOFILE_INI", "PYARCHIVE_INI"} {
		if p := os.Getenv(env); p != "" {
			cands = append(cands, p)
		}
	}

	cands = append(cands, "neofile.ini")
	return cands
}

func loadFromINI(explicit []string, preferSection string) (Spec, bool, error) {
	var picked string
	for _, p := range candidatePaths(explicit) {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			picked = p
			break
		}
	}

	if picked == "" {
		return Spec{}, false, nil
	}

	cfg, err := ini.Load(picked)
	if err != nil {
		return Spec{}, false, ErrInvalidConfiguration.Error(err)
	}

	var sec *ini.Section

	if preferSection != "" && cfg.HasSection(preferSection) {
		sec, _ = cfg.GetSection(preferSection)
	} else if cfg.HasSection("config") {
		c, _ := cfg.GetSection("config")
		if k := c.Key("default").String(); k != "" && cfg.HasSection(k) {
			sec, _ = cfg.GetSection(k)
		}
	}

	if sec == nil {
		for _, s := range cfg.Sections() {
			if strings.EqualFold(s.Name(), "config") || s.Name() == ini.DefaultSection {
				continue
			}
			sec = s
			break
		}
	}

	if sec == nil {
		return Spec{}, false, ErrInvalidConfiguration.Error()
	}

	magic := "ArchiveFile"
	if sec.HasKey("magic") {
		magic = sec.Key("magic").String()
	}

	ver := "001"
	if sec.HasKey("ver") {
		ver = sec.Key("ver").String()
	}

	delim := `\x00`
	if sec.HasKey("delimiter") {
		delim = sec.Key("delimiter").String()
	}

	newStyle := true
	if sec.HasKey("newstyle") {
		v := strings.ToLower(sec.Key("newstyle").String())
		newStyle = v == "true" || v == "1" || v == "yes"
	}

	return Spec{
		Magic:     magic,
		Version:   VersionDigits(ver),
		Delimiter: decodeEscape(delim),
		NewStyle:  newStyle,
		Name:      sec.Name(),
	}, true, nil
}
