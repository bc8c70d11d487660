/*
 * params.go, part of sslayout.
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

package sslayout

// Strategy is a parameterization of a layout: it maps a vector of free parameters to the
// coordinates of the nucleotides. The parameters affecting the first limit nucleotides
// must come first in the vector, or at least be listed by Slots, so the layout can be
// optimized by stages.
type Strategy interface {
	Name() string

	//Len returns the total number of parameters.
	Len() int

	//Slots returns the indexes, in the full parameter vector, of the parameters that
	//affect the placement of the first limit nucleotides.
	Slots(limit int) []int

	//Initial returns a new slice with the initial guess for all the parameters.
	Initial() []float64

	//Bounds returns the lower and upper bounds for each parameter. The slices must not be modified.
	Bounds() (lower, upper []float64)

	//Sigmas returns the initial search scale for each parameter. The slice must not be modified.
	Sigmas() []float64

	//Reconstruct places the first limit nucleotides in coords, as interleaved x,y values,
	//from the parameters in x. It must not allocate or write anything but coords.
	Reconstruct(x []float64, limit int, coords []float64)

	//Penalty adds the energy terms that are specific to the parameterization to t.
	Penalty(x, coords []float64, limit int, t *Terms)
}

// paramSet holds the per-parameter data that both strategies share.
type paramSet struct {
	init, lower, upper, sigma []float64
}

func (p *paramSet) add(init, lower, upper, sigma float64) {
	p.init = append(p.init, init)
	p.lower = append(p.lower, lower)
	p.upper = append(p.upper, upper)
	p.sigma = append(p.sigma, sigma)
}

// Len returns the number of parameters.
func (p *paramSet) Len() int { return len(p.init) }

// Initial returns a copy of the initial guess.
func (p *paramSet) Initial() []float64 {
	ret := make([]float64, len(p.init))
	copy(ret, p.init)
	return ret
}

// Bounds returns the bounds of the parameters.
func (p *paramSet) Bounds() (lower, upper []float64) { return p.lower, p.upper }

// Sigmas returns the initial search scale of the parameters.
func (p *paramSet) Sigmas() []float64 { return p.sigma }

// span returns the indexes from..to-1.
func span(ret []int, from, to int) []int {
	for i := from; i < to; i++ {
		ret = append(ret, i)
	}
	return ret
}

// repair moves v into [lower,upper] and returns the new value and the squared
// distance it was moved.
func repair(v, lower, upper float64) (float64, float64) {
	switch {
	case v < lower:
		return lower, (lower - v) * (lower - v)
	case v > upper:
		return upper, (v - upper) * (v - upper)
	}
	return v, 0
}
