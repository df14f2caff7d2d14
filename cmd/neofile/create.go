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
	"os"

	"github.com/spf13/cobra"

	"github.com/nabbar/neofile/file/perm"
	"github.com/nabbar/neofile/ioutils"
	"github.com/nabbar/neofile/pack"
)

func newCreateCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "create <source>",
		Short: "Pack a file or directory into a new container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := flags.resolveSpec()
			if err != nil {
				return err
			}

			items, err := pack.FromPath(args[0])
			if err != nil {
				return err
			}

			if mode != "" {
				p, perr := perm.Parse(mode)
				if perr != nil {
					return perr
				}
				for i := range items {
					items[i].Mode = p.Uint64()
				}
			}

			if flags.compression != "" {
				for i := range items {
					items[i].Compression = flags.compression
				}
			}

			out, outCloser, err := openOutput(flags.output)
			if err != nil {
				return err
			}
			defer outCloser()

			opt := pack.Options{
				Spec:           spec,
				HeaderDigest:   flags.checksum(),
				ContentDigest:  flags.checksum(),
				JSONDigest:     flags.checksum(),
				GlobalChecksum: flags.checksum(),
				Logger:         flags.logger(),
			}

			return pack.Pack(out, items, opt)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", `override every entry's permission bits (octal, e.g. "0644")`)
	cmd.Flags().StringVar(&flags.compression, "compression", "auto", `codec applied to every entry ("auto", "none", "zlib", "gzip", "bz2", "lzma")`)

	return cmd
}

// openOutput resolves "-" to stdout, otherwise creates (or truncates) the
// named file, ensuring its parent directory exists.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	if err := ioutils.PathCheckCreate(true, path, 0644, 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openInput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
