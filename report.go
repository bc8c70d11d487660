/*
 * report.go, part of sslayout.
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
	"strings"

	"github.com/rmera/sslayout/clash"
	v2 "github.com/rmera/sslayout/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Deviation summarizes the deviations of a set of distances from their target.
type Deviation struct {
	N         int
	Mean, Std float64 //of the signed deviation
	MaxAbs    float64
}

func deviation(d []float64, target float64) Deviation {
	r := Deviation{N: len(d)}
	if len(d) == 0 {
		return r
	}
	dev := make([]float64, len(d))
	floats.AddConst(-target, floats.AddTo(dev, dev, d))
	if len(d) == 1 {
		r.Mean = dev[0]
	} else {
		r.Mean, r.Std = stat.MeanStdDev(dev, nil)
	}
	abs := make([]float64, len(dev))
	for i, v := range dev {
		abs[i] = math.Abs(v)
	}
	r.MaxAbs = floats.Max(abs)
	return r
}

func (d Deviation) String() string {
	return fmt.Sprintf("n=%d mean=%.3g sd=%.3g max|d|=%.3g", d.N, d.Mean, d.Std, d.MaxAbs)
}

// Contact is the closest approach between two strands.
type Contact struct {
	ChainA, ChainB int
	I, J           int //the closest nucleotides of each strand
	Dist           float64
}

// contacts returns the closest approach between each pair of strands of coords.
func contacts(coords *v2.Matrix, chains []int) []Contact {
	starts := make([]int, len(chains))
	for k := 1; k < len(chains); k++ {
		starts[k] = starts[k-1] + chains[k-1]
	}
	var ret []Contact
	for a := range chains {
		va := coords.View(starts[a], chains[a])
		for b := a + 1; b < len(chains); b++ {
			d, idx := clash.LowestDist(va, coords.View(starts[b], chains[b]))
			ret = append(ret, Contact{ChainA: a, ChainB: b, I: starts[a] + idx[0], J: starts[b] + idx[1], Dist: d})
		}
	}
	return ret
}

// Report is a summary of the quality of a layout. Crossings and clashes don't make
// a layout invalid, but they make it harder to read.
type Report struct {
	Nucleotides   int
	Chains        int
	Notation      string
	Stems         []Stem
	Steps         map[Kind]int //number of steps of each kind
	FreeAngles    int
	FreeDistances int
	Strategy      string
	Params        int

	Pairs   Deviation //distances between paired nucleotides
	Stacked Deviation
	Bonds   Deviation //bond lengths, against the default bond length

	Crossings [][2]int  //backbone segments (k,k+1) that intersect
	Clashes   [][2]int  //non-interacting nucleotides closer than NBDistance
	Contacts  []Contact //closest approach of each pair of strands

	Energy Terms
	Stages []StageInfo
}

// Report returns a summary of the current layout.
func (l *Layout) Report() *Report {
	t := l.topo
	r := &Report{
		Nucleotides:   t.Len(),
		Chains:        t.Chains(),
		Notation:      t.Notation(),
		Stems:         t.Stems(),
		Steps:         make(map[Kind]int),
		FreeAngles:    l.geom.FreeAngles(),
		FreeDistances: l.geom.FreeDistances(),
		Strategy:      l.strategy.Name(),
		Params:        l.strategy.Len(),
		Energy:        l.Energy(),
		Stages:        l.Stages(),
	}
	for _, s := range l.geom.Steps {
		r.Steps[s.Kind]++
	}
	c := l.values
	var d []float64
	for _, p := range t.Pairs() {
		d = append(d, dist(c, p[0], p[1]))
	}
	r.Pairs = deviation(d, l.o.PairDistance)
	d = d[:0]
	for _, p := range t.StackedPairs() {
		d = append(d, dist(c, p[0], p[1]))
	}
	r.Stacked = deviation(d, l.o.stackedDistance())
	d = d[:0]
	for k, s := range l.geom.Steps {
		if !s.Break {
			d = append(d, dist(c, k, k+1))
		}
	}
	r.Bonds = deviation(d, l.o.SeqDistance)
	coords := l.Coords()
	r.Crossings = clash.Crossings(coords, t.Len(), func(k int) bool { return l.geom.Steps[k].Break })
	if l.o.NBDistance > 0 {
		r.Clashes = clash.Clashes(coords, t.Len(), l.o.NBDistance, func(i, j int) bool { return t.Relation(i, j) != None })
	}
	r.Contacts = contacts(coords, t.ChainLengths())
	return r
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d nucleotides in %d chain(s), %d stem(s)\n", r.Nucleotides, r.Chains, len(r.Stems))
	fmt.Fprintf(&b, "%s\n", r.Notation)
	var kinds []string
	for k := Free; k <= Break; k++ {
		if r.Steps[k] > 0 {
			kinds = append(kinds, fmt.Sprintf("%s:%d", k, r.Steps[k]))
		}
	}
	fmt.Fprintf(&b, "steps: %s\n", strings.Join(kinds, " "))
	fmt.Fprintf(&b, "strategy %s, %d parameters (%d free angles, %d free distances)\n", r.Strategy, r.Params, r.FreeAngles, r.FreeDistances)
	fmt.Fprintf(&b, "pairs:   %s\n", r.Pairs)
	fmt.Fprintf(&b, "stacked: %s\n", r.Stacked)
	fmt.Fprintf(&b, "bonds:   %s\n", r.Bonds)
	for _, c := range r.Crossings {
		fmt.Fprintf(&b, "crossing: %d-%d with %d-%d\n", c[0]+1, c[0]+2, c[1]+1, c[1]+2)
	}
	for _, c := range r.Clashes {
		fmt.Fprintf(&b, "clash: %d %d\n", c[0]+1, c[1]+1)
	}
	for _, c := range r.Contacts {
		fmt.Fprintf(&b, "contact: strands %d-%d, nucleotides %d %d at %.3g\n", c.ChainA+1, c.ChainB+1, c.I+1, c.J+1, c.Dist)
	}
	fmt.Fprintf(&b, "%s\n", r.Energy)
	for _, s := range r.Stages {
		state := s.Status
		if s.Skipped {
			state = "skipped"
		}
		fmt.Fprintf(&b, "stage %4d: %3d params %6d evaluations cost %.4g %s\n", s.Limit, s.Params, s.Evaluations, s.Cost, state)
	}
	return b.String()
}
