/*
 * doc.go, part of sslayout.
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

/*
Package sslayout computes planar layouts for the secondary structure of nucleic-acid
chains. Given the chain lengths of a (possibly multi-strand) complex and its base pairing
in dot-bracket notation, it places every nucleotide in the plane so that paired nucleotides
sit at a target distance, stacked pairs keep the helix geometry, non-interacting nucleotides
do not overlap and the backbone does not cross itself.


	**What it does**

    Parses dot-bracket notation with up to 4 pseudoknot levels (package dotbracket).

    Classifies the structure into stacked helices, hairpin loops, bulges and long gaps.
	Hairpins and helices are closed by construction, so only the remaining turn angles
	and bond lengths are optimized.

    Reduces the geometry to a small vector of free parameters. Two parameterizations
	are available: turn angles plus bond lengths (optionally with a sin/cos encoding of the
	angles), or raw per-step displacements.

    Minimizes a layout energy (pair distances, stacked-pair distances, clashes,
	backbone crossings) with gonum's CMA-ES, growing the chain by 2 nucleotides per stage.

    Reports the quality of the final layout.

A typical use:

	l, err := sslayout.New([]int{12}, "((((....))))", nil)
	if err != nil {
		//malformed notation
	}
	err = l.Calc()
	xy := l.Values() //x0,y0,x1,y1...

Layouts are reproducible: the random source of the optimizer is owned by the Layout and
reseeded with Options.Seed at every stage. A Layout must not be used from several goroutines.
*/
package sslayout
