/*
 * layout.go, part of sslayout.
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
	"errors"
	"fmt"

	"github.com/rmera/sslayout"
	"github.com/rmera/sslayout/ssplot"
	"github.com/rmera/sslayout/xy"
	"github.com/spf13/cobra"
)

type layoutOpts struct {
	config   string
	strategy string
	sincos   bool
	seed     uint64
	seq      string
	output   string
	plot     string
	title    string
	report   bool
	orient   orientation
}

func newLayoutCmd() *cobra.Command {
	opts := layoutOpts{}
	cmd := &cobra.Command{
		Use:   "layout <notation>",
		Short: "Compute the planar layout of a secondary structure",
		Long: `Compute the planar layout of a secondary structure given in dot-bracket notation.

Strands are separated with '&'. The layout is written in the XY format to the file given
with -o (compressed if the name ends in .gz or .zst), or to the standard output if neither
-o nor --plot is given.`,
		Example: `  sslayout layout "((((....))))"
  sslayout layout "(((((&)))))" --seq "GGCGC&GCGCC" -o duplex.xy.zst --plot duplex.png
  sslayout layout "..((((....))))..((...))" --config layout.toml --report
  sslayout layout "((((....))))" --center --rotate 90 --plot hairpin.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "TOML file with layout options")
	f.StringVar(&opts.strategy, "strategy", sslayout.StrategyAngle, "parameterization: angle or xy")
	f.BoolVar(&opts.sincos, "sincos", false, "encode free angles as (cos,sin) pairs")
	f.Uint64Var(&opts.seed, "seed", 1, "random seed for the optimizer")
	f.StringVarP(&opts.seq, "seq", "s", "", "sequence, with strands separated by '&'")
	f.StringVarP(&opts.output, "output", "o", "", "output XY file (.gz and .zst are compressed)")
	f.StringVarP(&opts.plot, "plot", "p", "", "also draw the layout to this image file (png, svg, pdf)")
	f.StringVarP(&opts.title, "title", "t", "", "title for the plot")
	f.BoolVarP(&opts.report, "report", "r", false, "print a summary of the layout quality")
	opts.orient.addFlags(cmd)
	return cmd
}

// layoutOptions loads the config file and applies the flags that were explicitly set.
func layoutOptions(cmd *cobra.Command, opts layoutOpts) (*sslayout.Options, error) {
	o, err := loadOptions(opts.config)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("strategy") {
		o.Strategy = opts.strategy
	}
	if f.Changed("sincos") {
		o.SinCos = opts.sincos
	}
	if f.Changed("seed") {
		o.Seed = opts.seed
	}
	return o, nil
}

func runLayout(cmd *cobra.Command, notation string, opts layoutOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	chains, joined, err := splitStrands(notation)
	if err != nil {
		return err
	}
	seq, err := sequence(opts.seq, chains)
	if err != nil {
		return err
	}
	o, err := layoutOptions(cmd, opts)
	if err != nil {
		return err
	}
	o.Logger = logger

	prog := newProgress(logger)
	l, err := sslayout.New(chains, joined, o)
	if err != nil {
		return err
	}
	logger.Debug("layout set up", "nucleotides", l.Len(), "chains", len(chains), "stems", len(l.Stems()), "strategy", l.Strategy().Name(), "params", l.Strategy().Len())
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.Calc(); err != nil {
		var e sslayout.Errorer
		if errors.As(err, &e) && e.Critical() {
			return err
		}
		logger.Warn("layout may be of poor quality", "err", err)
	}
	prog.done("Layout computed")

	coords := opts.orient.apply(l.Coords())
	header := map[string]string{"notation": notation}
	if opts.title != "" {
		header["title"] = opts.title
	}
	if opts.output != "" {
		if err := xy.WriteChains(opts.output, coords, seq, l.BasePairs(), l.ChainLengths(), header); err != nil {
			return err
		}
		logger.Info("Layout written", "file", opts.output)
	}
	if opts.plot != "" {
		if err := ssplot.Plot(ssplot.NewStatic(coords, l.BasePairs(), l.ChainLengths()), opts.title, opts.plot); err != nil {
			return err
		}
		logger.Info("Plot written", "file", opts.plot)
	}
	out := cmd.OutOrStdout()
	if opts.output == "" && opts.plot == "" {
		if err := xy.Encode(out, coords, seq, l.BasePairs(), l.ChainLengths(), header); err != nil {
			return err
		}
	}
	if opts.report {
		fmt.Fprint(out, l.Report().String())
	}
	return nil
}
