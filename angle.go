/*
 * angle.go, part of sslayout.
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

const (
	sinCosBox  = 1.5 //bounds for the components of sin/cos encoded angles
	sinCosNorm = 0.1 //weight of the penalty keeping sin/cos pairs on the unit circle
)

// AngleStrategy parameterizes a layout by its free turn angles and bond lengths.
// The vector contains all the free angles, in step order, followed by all the free
// distances. Each angle takes one slot, or two, (cos θ, sin θ), if SinCos is used.
type AngleStrategy struct {
	paramSet
	g         *Geometry
	sincos    bool
	width     int   //slots per angle
	nAngles   int   //total free angles
	angleSlot []int //index of the free angle of each step, or -1
	distSlot  []int //position in the vector of the free distance of each step, or -1
}

// NewAngleStrategy returns the angle parameterization for the geometry g.
func NewAngleStrategy(g *Geometry, o *Options) *AngleStrategy {
	a := &AngleStrategy{g: g, sincos: o.SinCos, width: 1}
	if a.sincos {
		a.width = 2
	}
	a.angleSlot = make([]int, len(g.Steps))
	a.distSlot = make([]int, len(g.Steps))
	for k, s := range g.Steps {
		a.angleSlot[k] = -1
		if k == 0 || s.AngleFixed {
			continue
		}
		a.angleSlot[k] = a.nAngles
		a.nAngles++
		target := s.Angle.Or(0)
		if a.sincos {
			a.add(math.Cos(target), -sinCosBox, sinCosBox, 0.3)
			a.add(math.Sin(target), -sinCosBox, sinCosBox, 0.3)
			continue
		}
		a.add(target, target-o.AngleBound, target+o.AngleBound, o.AngleBound/3)
	}
	for k, s := range g.Steps {
		a.distSlot[k] = -1
		if s.DisFixed {
			continue
		}
		a.distSlot[k] = a.Len()
		a.add(s.Length, 0.6*s.Length, 1.8*s.Length, 0.1*s.Length)
	}
	return a
}

// Name returns the name of the strategy.
func (a *AngleStrategy) Name() string {
	if a.sincos {
		return StrategyAngle + "/sincos"
	}
	return StrategyAngle
}

// Slots returns the indexes of the free angles and distances of the steps
// up to limit-2.
func (a *AngleStrategy) Slots(limit int) []int {
	na, nd := a.g.Active(limit)
	ret := make([]int, 0, na*a.width+nd)
	ret = span(ret, 0, na*a.width)
	off := a.nAngles * a.width
	return span(ret, off, off+nd)
}

// angle returns the turn angle at k for the parameters x. A related step takes
// the mean of the angles of the steps around it.
func (a *AngleStrategy) angle(x []float64, k int) float64 {
	if a.g.Steps[k].Relation == 0 {
		return a.own(x, k)
	}
	return (a.neighbor(x, k, k-1) + a.neighbor(x, k, k+1)) / 2
}

// neighbor returns the angle at the step nb next to the related step k. A related
// neighbor is represented by the step it is anchored to, and a neighbor beyond the
// ends of the chain by the anchor of k.
func (a *AngleStrategy) neighbor(x []float64, k, nb int) float64 {
	if nb < 1 || nb >= len(a.g.Steps) {
		nb = k + a.g.Steps[k].Relation
	}
	nb += a.g.Steps[nb].Relation
	return a.own(x, nb)
}

// own returns the angle stored for the unrelated step k.
func (a *AngleStrategy) own(x []float64, k int) float64 {
	s := a.angleSlot[k]
	switch {
	case s < 0:
		return a.g.Steps[k].Angle.Or(0)
	case a.sincos:
		return math.Atan2(x[2*s+1], x[2*s])
	}
	return x[s]
}

func (a *AngleStrategy) length(x []float64, k int) float64 {
	if s := a.distSlot[k]; s >= 0 {
		return x[s]
	}
	return a.g.Steps[k].Length
}

// Reconstruct places the nucleotides by walking the chain. The first one is at the origin,
// the second one along the y axis, and each following one is placed from the previous one
// after turning the direction of the last step by the angle of the current step.
func (a *AngleStrategy) Reconstruct(x []float64, limit int, coords []float64) {
	if limit > len(a.g.Steps)+1 {
		limit = len(a.g.Steps) + 1
	}
	coords[0], coords[1] = 0, 0
	if limit < 2 {
		return
	}
	heading := math.Pi / 2 //the first step is fixed.
	l := a.length(x, 0)
	coords[2], coords[3] = 0, l
	for k := 1; k <= limit-2; k++ {
		heading += a.angle(x, k)
		l = a.length(x, k)
		coords[2*k+2] = coords[2*k] + l*math.Cos(heading)
		coords[2*k+3] = coords[2*k+1] + l*math.Sin(heading)
	}
}

// Penalty keeps the active sin/cos pairs close to the unit circle. Nothing is added
// if the angles are used directly.
func (a *AngleStrategy) Penalty(x, coords []float64, limit int, t *Terms) {
	if !a.sincos {
		return
	}
	na, _ := a.g.Active(limit)
	for s := 0; s < na; s++ {
		c, sn := x[2*s], x[2*s+1]
		d := c*c + sn*sn - 1
		t.Norm += sinCosNorm * d * d
	}
}

// Angles returns the turn angle at each step for the parameters x. The first
// element is the direction of the first step, relative to the y axis.
func (a *AngleStrategy) Angles(x []float64) []float64 {
	ret := make([]float64, len(a.g.Steps))
	for k := range ret {
		ret[k] = a.angle(x, k)
	}
	return ret
}
