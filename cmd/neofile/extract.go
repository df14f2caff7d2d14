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

	"github.com/nabbar/neofile/unpack"
)

func newExtractCommand() *cobra.Command {
	var uncompress bool

	cmd := &cobra.Command{
		Use:   "extract <container> <dest-dir>",
		Short: "Unpack a container into a directory",
		Args:  cobra.ExactArgs(2),
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

			opt := unpack.Options{
				Spec:         spec,
				SkipChecksum: flags.skipChecksum,
				SkipJSON:     flags.skipJSON,
				Uncompress:   uncompress,
				Logger:       flags.logger(),
			}

			_, err = unpack.ToDir(in, args[1], opt)
			if err != nil {
				return validationOrOperational(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&uncompress, "uncompress", true, "decompress content before writing to disk")

	return cmd
}
