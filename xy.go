/*
 * xy.go, part of sslayout.
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

import "math"

// XYStrategy parameterizes a layout by the displacement (dx,dy) of every step after the
// first one. No angle is fixed: the geometry of helices and loops is kept only through
// the energy, which gets a bond length and a sharp turn penalty.
type XYStrategy struct {
	paramSet
	g           *Geometry
	seqWeight   float64
	sharpWeight float64
	sharpCos    float64
}

// NewXYStrategy returns the displacement parameterization for g. The initial guess is the
// layout given by the target angles and lengths of g.
func NewXYStrategy(g *Geometry, o *Options) *XYStrategy {
	s := &XYStrategy{g: g, seqWeight: o.SeqWeight, sharpWeight: o.SharpWeight, sharpCos: o.SharpCos}
	n := len(g.Steps) + 1
	if n < 3 {
		return s
	}
	ang := NewAngleStrategy(g, &Options{AngleBound: o.AngleBound})
	coords := make([]float64, 2*n)
	ang.Reconstruct(ang.Initial(), n, coords)
	for k := 1; k < n-1; k++ {
		l := g.Steps[k].Length
		s.add(coords[2*k+2]-coords[2*k], -2*l, 2*l, 0.2*l)
		s.add(coords[2*k+3]-coords[2*k+1], -2*l, 2*l, 0.2*l)
	}
	return s
}

// Name returns the name of the strategy.
func (s *XYStrategy) Name() string { return StrategyXY }

// Slots returns the displacements of the steps 1..limit-2.
func (s *XYStrategy) Slots(limit int) []int {
	to := 2 * (limit - 2)
	if to > s.Len() {
		to = s.Len()
	}
	if to < 0 {
		to = 0
	}
	return span(make([]int, 0, to), 0, to)
}

// Reconstruct adds up the displacements of each step.
func (s *XYStrategy) Reconstruct(x []float64, limit int, coords []float64) {
	if limit > len(s.g.Steps)+1 {
		limit = len(s.g.Steps) + 1
	}
	coords[0], coords[1] = 0, 0
	if limit < 2 {
		return
	}
	coords[2], coords[3] = 0, s.g.Steps[0].Length
	for k := 1; k <= limit-2; k++ {
		coords[2*k+2] = coords[2*k] + x[2*k-2]
		coords[2*k+3] = coords[2*k+1] + x[2*k-1]
	}
}

// Penalty adds the deviation of each bond from its target length, and penalizes turns
// sharper than the cosine threshold. Steps between strands are not considered.
func (s *XYStrategy) Penalty(x, coords []float64, limit int, t *Terms) {
	steps := s.g.Steps
	for k := 0; k <= limit-2 && k < len(steps); k++ {
		if steps[k].Break {
			continue
		}
		d := math.Hypot(coords[2*k+2]-coords[2*k], coords[2*k+3]-coords[2*k+1]) - steps[k].Length
		t.Sequential += s.seqWeight * d * d
	}
	for v := 1; v <= limit-2 && v < len(steps); v++ {
		if steps[v].Break || steps[v-1].Break {
			continue
		}
		ax, ay := coords[2*v-2]-coords[2*v], coords[2*v-1]-coords[2*v+1]
		bx, by := coords[2*v+2]-coords[2*v], coords[2*v+3]-coords[2*v+1]
		na, nb := math.Hypot(ax, ay), math.Hypot(bx, by)
		if na == 0 || nb == 0 {
			t.Sharp += s.sharpWeight
			continue
		}
		cos := (ax*bx + ay*by) / (na * nb)
		if cos > s.sharpCos {
			d := cos - s.sharpCos
			t.Sharp += s.sharpWeight * d * d
		}
	}
}
