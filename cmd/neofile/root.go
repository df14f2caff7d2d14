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

package main

import (
	"github.com/spf13/cobra"

	"github.com/nabbar/neofile/checksum"
	"github.com/nabbar/neofile/formatspec"
	"github.com/nabbar/neofile/nlog"
)

// cliFlags carries the flags shared by every subcommand, mirroring the
// format-spec override triple and checksum/verbosity switches named in the
// command-line contract.
type cliFlags struct {
	output string

	compression string
	level       int

	checksumAlgo string
	skipChecksum bool
	skipJSON     bool
	verbose      bool

	magic     string
	version   string
	delimiter string
}

var flags cliFlags

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "neofile",
		Short:         "Pack, unpack, repack, and convert NeoFile containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "-", `output path, or "-" for stdout`)
	root.PersistentFlags().StringVarP(&flags.checksumAlgo, "checksum", "c", "sha256", "checksum algorithm applied to header/content/json")
	root.PersistentFlags().BoolVar(&flags.skipChecksum, "skip-content-checksum", false, "skip content digest verification on read")
	root.PersistentFlags().BoolVar(&flags.skipJSON, "skip-json", false, "skip JSON side-data decoding")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.magic, "magic", "", "override container magic string")
	root.PersistentFlags().StringVar(&flags.version, "format-version", "", "override container version digits")
	root.PersistentFlags().StringVar(&flags.delimiter, "delimiter", "", `override field delimiter (escape syntax, e.g. "\x00")`)

	root.AddCommand(
		newCreateCommand(),
		newExtractCommand(),
		newRepackCommand(),
		newListCommand(),
		newValidateCommand(),
		newConvertCommand(),
	)

	return root
}

func (f cliFlags) logger() *nlog.Logger {
	if f.verbose {
		return nlog.New(nlog.DebugLevel)
	}
	return nlog.New(nlog.InfoLevel)
}

func (f cliFlags) resolveSpec() (formatspec.Spec, error) {
	override := formatspec.Override{Magic: f.magic, Version: f.version}
	if f.delimiter != "" {
		override.Delimiter = decodeDelimiter(f.delimiter)
	}
	return formatspec.Resolve(override)
}

func (f cliFlags) checksum() checksum.Algorithm {
	return checksum.Parse(f.checksumAlgo)
}

func decodeDelimiter(s string) []byte {
	switch s {
	case `\x00`, `\0`:
		return []byte{0x00}
	case `\n`:
		return []byte{'\n'}
	case `\t`:
		return []byte{'\t'}
	case `\r`:
		return []byte{'\r'}
	default:
		return []byte(s)
	}
}
