/*
 * plot.go, part of sslayout.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package cli

import (
	"strings"

	"github.com/rmera/sslayout/ssplot"
	"github.com/rmera/sslayout/xy"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var output, title string
	var orient orientation
	cmd := &cobra.Command{
		Use:   "plot <file.xy>",
		Short: "Draw a layout saved in the XY format",
		Long: `Draw a layout saved in the XY format. The image format is given by the extension
of the output file. By default, a PNG with the name of the input file is written.`,
		Example: `  sslayout plot hairpin.xy
  sslayout plot duplex.xy.zst -o duplex.svg --title "GC duplex"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args[0], output, title, orient)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image (default: input name with .png)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "plot title (default: the title in the file, if any)")
	orient.addFlags(cmd)
	return cmd
}

// imageName returns the input name without its .xy (and compression) suffixes, plus .png.
func imageName(input string) string {
	base := input
	for _, suf := range []string{".gz", ".zst", ".xy"} {
		base = strings.TrimSuffix(base, suf)
	}
	return base + ".png"
}

func runPlot(cmd *cobra.Command, input, output, title string, orient orientation) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	d, err := xy.Read(input)
	if err != nil {
		return err
	}
	logger.Debug("layout read", "file", input, "nucleotides", d.Coords.NVecs(), "chains", len(d.Chains))
	if output == "" {
		output = imageName(input)
	}
	if title == "" {
		title = d.Header["title"]
	}
	if err := ssplot.Plot(ssplot.NewStatic(orient.apply(d.Coords), d.Pairs, d.Chains), title, output); err != nil {
		return err
	}
	prog.done("Plot written to " + output)
	return nil
}
