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

	"github.com/nabbar/neofile/convert"
	"github.com/nabbar/neofile/pack"
	"github.com/nabbar/neofile/record"
	"github.com/nabbar/neofile/unpack"
)

func newConvertCommand() *cobra.Command {
	var toForeign string

	cmd := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert between the container format and foreign zip/tar archives",
		Long: "With --to-foreign unset, <source> is treated as a foreign zip/tar archive\n" +
			"(sniffed from its name, falling back to its content) and packed into a new\n" +
			"container. With --to-foreign set to \"zip\" or \"tar\", <source> is treated as\n" +
			"a container and unpacked into a foreign archive of that format.",
		Args: cobra.ExactArgs(1),
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

			if toForeign != "" {
				format := convert.DetectFormat("archive." + toForeign)
				if format == convert.FormatUnknown {
					return convert.ErrUnsupportedForeignFormat.Error()
				}

				var items []pack.Item
				_, err = unpack.Each(in, unpack.Options{Spec: spec, Uncompress: true, Logger: flags.logger()}, func(e *record.Entry) error {
					items = append(items, pack.Item{
						Name:       e.Name,
						IsDir:      e.IsDir(),
						LinkTarget: e.LinkTarget,
						Content:    e.Content,
						Mode:       e.Mode,
						MTime:      int64(e.MTime),
					})
					return nil
				})
				if err != nil {
					return validationOrOperational(err)
				}

				return convert.ItemsToForeign(format, out, items)
			}

			format := convert.DetectFormat(args[0])
			var items []pack.Item
			if format != convert.FormatUnknown {
				items, err = convert.ItemsFromForeign(format, in)
			} else {
				items, err = convert.ItemsFromForeignAuto(in)
			}
			if err != nil {
				return err
			}

			if flags.compression != "" {
				for i := range items {
					items[i].Compression = flags.compression
				}
			}

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

	cmd.Flags().StringVar(&toForeign, "to-foreign", "", `convert a container to a foreign archive of this format ("zip" or "tar") instead of the default foreign-to-container direction`)
	cmd.Flags().StringVar(&flags.compression, "compression", "auto", `codec applied when packing into a container ("auto", "none", "zlib", "gzip", "bz2", "lzma")`)

	return cmd
}
