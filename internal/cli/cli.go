/*
 * cli.go, part of sslayout.
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

// Package cli implements the sslayout command line interface.
//
// The commands are:
//   - layout: compute the planar layout of a secondary structure, and write it as an XY file,
//     a plot, or both.
//   - parse: check a dot-bracket notation and print its pairs and stems.
//   - plot: draw a layout previously saved as an XY file.
//
// Strands in a notation (and in a sequence) are separated with '&', as in "((((&))))".
// All commands support --verbose (-v) for debug-level logging. The logger is passed
// to the commands through their context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// strandSeparator separates the strands of a complex in notations and sequences.
const strandSeparator = "&"

var version = "dev"

// Execute runs the sslayout command line with the arguments of the process.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// newRootCmd returns the root command. Results go to out and the log to logw.
func newRootCmd(out, logw io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "sslayout",
		Short:         "sslayout draws nucleic-acid secondary structures",
		Long:          `sslayout computes planar layouts for the secondary structure of single and multi-stranded nucleic acids, given in dot-bracket notation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logw, level)))
		},
	}
	root.SetOut(out)
	root.SetErr(logw)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newPlotCmd())
	return root
}

// splitStrands returns the lengths of the strands in s, separated by '&',
// and s without the separators.
func splitStrands(s string) ([]int, string, error) {
	parts := strings.Split(s, strandSeparator)
	lengths := make([]int, len(parts))
	for i, p := range parts {
		lengths[i] = utf8.RuneCountInString(p)
		if lengths[i] == 0 {
			return nil, "", fmt.Errorf("strand %d of %q is empty", i+1, s)
		}
	}
	return lengths, strings.Join(parts, ""), nil
}

// sequence checks that seq, if given, has strands of the given lengths, and returns
// it without separators, in upper case.
func sequence(seq string, lengths []int) (string, error) {
	if seq == "" {
		return "", nil
	}
	sl, joined, err := splitStrands(seq)
	if err != nil {
		return "", err
	}
	if len(sl) != len(lengths) {
		return "", fmt.Errorf("the sequence has %d strands, the structure has %d", len(sl), len(lengths))
	}
	for i := range sl {
		if sl[i] != lengths[i] {
			return "", fmt.Errorf("strand %d has %d nucleotides in the sequence, but %d in the structure", i+1, sl[i], lengths[i])
		}
	}
	return strings.ToUpper(joined), nil
}
