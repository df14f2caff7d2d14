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

	pkgrepack "github.com/nabbar/neofile/repack"
)

func newRepackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repack <container>",
		Short: "Rewrite a container under a new compression algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := flags.resolveSpec()
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(flags.output)
			if err != nil {
				return err
			}
			defer closeOut()

			opt := pkgrepack.DefaultOptions()
			opt.Spec = spec
			opt.TargetCompression = flags.compression
			opt.TargetLevel = flags.level
			opt.HeaderDigest = flags.checksum()
			opt.ContentDigest = flags.checksum()
			opt.JSONDigest = flags.checksum()
			opt.GlobalChecksum = flags.checksum()
			opt.Logger = flags.logger()

			if err = pkgrepack.Repack(in, out, opt); err != nil {
				return validationOrOperational(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.compression, "compression", "auto", `target codec ("auto", "none", "zlib", "gzip", "bz2", "lzma")`)
	cmd.Flags().IntVar(&flags.level, "level", 0, "compression level (codec-specific; 0 selects the codec default)")

	return cmd
}
