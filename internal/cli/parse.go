/*
 * parse.go, part of sslayout.
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
	"fmt"

	"github.com/rmera/sslayout"
	"github.com/rmera/sslayout/dotbracket"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var pairs bool
	cmd := &cobra.Command{
		Use:   "parse <notation>",
		Short: "Check a dot-bracket notation and print its stems",
		Long: `Check a dot-bracket notation and print its stems and, optionally, every base pair.
Positions are printed 1-based. Strands are separated with '&'.`,
		Example: `  sslayout parse "((((....))))..[[..]]"
  sslayout parse "(((&)))" --pairs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], pairs)
		},
	}
	cmd.Flags().BoolVar(&pairs, "pairs", false, "print every base pair with its bracket level")
	return cmd
}

func runParse(cmd *cobra.Command, notation string, listPairs bool) error {
	logger := loggerFromContext(cmd.Context())
	chains, joined, err := splitStrands(notation)
	if err != nil {
		return err
	}
	t, err := sslayout.NewTopology(chains, joined)
	if err != nil {
		return err
	}
	p, err := dotbracket.Parse(joined)
	if err != nil {
		return err
	}
	list := p.List()
	logger.Debug("notation parsed", "nucleotides", t.Len(), "pairs", len(list))
	out := cmd.OutOrStdout()
	stems := t.Stems()
	fmt.Fprintf(out, "%d nucleotides in %d chain(s), %d pairs, %d level(s), %d stem(s)\n", t.Len(), t.Chains(), len(list), p.Levels(), len(stems))
	fmt.Fprintln(out, t.Notation())
	for k, s := range stems {
		fmt.Fprintf(out, "stem %d: %d-%d length %d\n", k+1, s.I+1, s.J+1, s.Len)
	}
	if listPairs {
		for _, v := range list {
			fmt.Fprintf(out, "pair %d %d level %d\n", v[0]+1, v[1]+1, p.Level(v[0]))
		}
	}
	return nil
}
