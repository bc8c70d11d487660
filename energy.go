/*
 * energy.go, part of sslayout.
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

import (
	"fmt"
	"math"

	"github.com/rmera/sslayout/clash"
)

// Terms is the breakdown of the energy of a layout. All the terms are already weighted,
// so the energy is their sum.
type Terms struct {
	Pair       float64 //deviation of paired nucleotides from their target distance
	Stacked    float64 //same, for the diagonals of stacked pairs
	Clash      float64 //non-interacting nucleotides that are too close
	Crossing   float64 //crossing backbone segments
	Sequential float64 //bond lengths (only StrategyXY)
	Sharp      float64 //sharp turns (only StrategyXY)
	Norm       float64 //sin/cos pairs off the unit circle
	Bounds     float64 //parameters outside their bounds

	Clashes   int
	Crossings int
}

// Total returns the energy.
func (t Terms) Total() float64 {
	return t.Pair + t.Stacked + t.Clash + t.Crossing + t.Sequential + t.Sharp + t.Norm + t.Bounds
}

func (t Terms) String() string {
	return fmt.Sprintf("E=%.4g (pair %.3g stacked %.3g clash %.3g [%d] crossing %.3g [%d] seq %.3g sharp %.3g norm %.3g bounds %.3g)",
		t.Total(), t.Pair, t.Stacked, t.Clash, t.Clashes, t.Crossing, t.Crossings, t.Sequential, t.Sharp, t.Norm, t.Bounds)
}

// energy scores coordinates against the topology. It keeps no state between calls.
type energy struct {
	t          *Topology
	breaks     []bool //per step
	pairD      float64
	stackD     float64
	nbD        float64
	absolute   bool
	pairWeight float64
	clashW     float64
	crossW     float64
}

func newEnergy(t *Topology, g *Geometry, o *Options) *energy {
	e := &energy{
		t:          t,
		breaks:     make([]bool, len(g.Steps)),
		pairD:      o.PairDistance,
		stackD:     o.stackedDistance(),
		nbD:        o.NBDistance,
		absolute:   o.AbsolutePairError,
		pairWeight: o.PairWeight,
		clashW:     o.ClashWeight,
		crossW:     o.CrossWeight,
	}
	for k, s := range g.Steps {
		e.breaks[k] = s.Break
	}
	return e
}

func dist(coords []float64, i, j int) float64 {
	return math.Hypot(coords[2*j]-coords[2*i], coords[2*j+1]-coords[2*i+1])
}

func (e *energy) pairError(d, target float64) float64 {
	if e.absolute {
		return e.pairWeight * math.Abs(d-target)
	}
	d -= target
	return d * d
}

// eval adds to t the energy of the first limit nucleotides in coords.
func (e *energy) eval(coords []float64, limit int, t *Terms) {
	for _, p := range e.t.Pairs() {
		if p[1] >= limit {
			continue
		}
		t.Pair += e.pairError(dist(coords, p[0], p[1]), e.pairD)
	}
	for _, p := range e.t.StackedPairs() {
		if p[0] >= limit || p[1] >= limit {
			continue
		}
		t.Stacked += e.pairError(dist(coords, p[0], p[1]), e.stackD)
	}
	e.clashes(coords, limit, t)
	e.crossings(coords, limit, t)
}

// clashes penalizes non-interacting nucleotides closer than the non-bonded distance.
// Most pairs are discarded by their separation along each axis, before computing
// the actual distance. It is the same scan as clash.Clashes, but it reads the raw
// coordinate buffer and allocates nothing, as it runs in every energy evaluation.
func (e *energy) clashes(coords []float64, limit int, t *Terms) {
	nb := e.nbD
	if nb <= 0 {
		return
	}
	for i := 0; i < limit; i++ {
		xi, yi := coords[2*i], coords[2*i+1]
		for j := i + 2; j < limit; j++ {
			dx := coords[2*j] - xi
			if dx >= nb || dx <= -nb {
				continue
			}
			dy := coords[2*j+1] - yi
			if dy >= nb || dy <= -nb {
				continue
			}
			if e.t.Relation(i, j) != None {
				continue
			}
			d := math.Hypot(dx, dy)
			if d < nb {
				t.Clash += e.clashW * (nb - d) * (nb - d)
				t.Clashes++
			}
		}
	}
}

// crossings counts the pairs of non-adjacent backbone segments that intersect.
// The pseudo-bonds between strands are not segments.
func (e *energy) crossings(coords []float64, limit int, t *Terms) {
	c := 0
	for i := 0; i+1 < limit; i++ {
		if e.breaks[i] {
			continue
		}
		x1, y1, x2, y2 := coords[2*i], coords[2*i+1], coords[2*i+2], coords[2*i+3]
		for j := i + 2; j+1 < limit; j++ {
			if e.breaks[j] {
				continue
			}
			if clash.Intersects(x1, y1, x2, y2, coords[2*j], coords[2*j+1], coords[2*j+2], coords[2*j+3]) {
				c++
			}
		}
	}
	t.Crossings += c
	t.Crossing += e.crossW * float64(c)
}
