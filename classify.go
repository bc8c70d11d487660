/*
 * classify.go, part of sslayout.
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
	"math"
)

// OptAngle is a turn angle, in radians, that might not be set.
type OptAngle struct {
	Value float64
	Valid bool
}

// Or returns the angle, or def if the angle is not set.
func (a OptAngle) Or(def float64) float64 {
	if a.Valid {
		return a.Value
	}
	return def
}

// Kind is the structural element a step belongs to.
type Kind int

const (
	Free    Kind = iota //nothing in particular
	Helix               //inside a perfectly stacked helix
	Hairpin             //hairpin loop, closed by construction
	Bulge
	Gap   //long unpaired run
	Break //pseudo-bond between two strands
)

var kindNames = [...]string{"free", "helix", "hairpin", "bulge", "gap", "break"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Step is the geometry of one backbone step. Step k joins the nucleotides k and k+1,
// and its angle is the turn at nucleotide k, from the direction of step k-1 to that of step k.
type Step struct {
	Length     float64  //target bond length
	Angle      OptAngle //target turn angle
	AngleFixed bool     //the angle is not an optimization parameter
	Relation   int      //-1 or 1: the angle is the mean of its neighbors, anchored on the previous or next step. 0 otherwise.
	DisFixed   bool     //the length is not an optimization parameter
	Break      bool
	Kind       Kind
}

// Geometry is the per-step geometry of a topology, with the cumulative count of free
// parameters: NAngles[k] and NDistances[k] are the number of free angles and distances
// in the steps 0..k.
type Geometry struct {
	Steps      []Step
	NAngles    []int
	NDistances []int
}

// Active returns the number of free angles and distances that affect the placement of
// the first limit nucleotides.
func (g *Geometry) Active(limit int) (angles, distances int) {
	if limit < 2 || len(g.Steps) == 0 {
		return 0, 0
	}
	k := limit - 2
	if k >= len(g.Steps) {
		k = len(g.Steps) - 1
	}
	return g.NAngles[k], g.NDistances[k]
}

// FreeAngles returns the total number of free angles.
func (g *Geometry) FreeAngles() int {
	a, _ := g.Active(len(g.Steps) + 1)
	return a
}

// FreeDistances returns the total number of free distances.
func (g *Geometry) FreeDistances() int {
	_, d := g.Active(len(g.Steps) + 1)
	return d
}

// Classify finds the structural elements of t and sets the target geometry of each step
// accordingly. Helices are straight, hairpins are regular polygons and every other loop
// gets the turn angles of a regular polygon as targets. Angles and distances that follow
// from the local structure are fixed, the rest are free parameters.
func Classify(t *Topology, o *Options) *Geometry {
	n := t.Len()
	g := new(Geometry)
	if n < 2 {
		return g
	}
	c := &classifier{t: t, o: o, steps: make([]Step, n-1)}
	for k := range c.steps {
		c.steps[k] = Step{Length: o.SeqDistance, DisFixed: true}
	}
	//the first step is always placed along the y axis.
	c.steps[0].Angle = OptAngle{0, true}
	c.steps[0].AngleFixed = true
	c.breaks()
	c.loopTargets()
	c.helices()
	c.hairpins()
	c.bulges()
	c.gaps()
	g.Steps = c.steps
	g.NAngles = make([]int, n-1)
	g.NDistances = make([]int, n-1)
	na, nd := 0, 0
	for k, s := range c.steps {
		if !s.AngleFixed {
			na++
		}
		if !s.DisFixed {
			nd++
		}
		g.NAngles[k] = na
		g.NDistances[k] = nd
	}
	return g
}

type classifier struct {
	t     *Topology
	o     *Options
	steps []Step
}

// vertex returns true if k has a turn angle, i.e. if there are steps on both sides of k.
func (c *classifier) vertex(k int) bool {
	return k >= 1 && k < len(c.steps)
}

// fix sets a fixed turn angle at k, if k is a vertex.
func (c *classifier) fix(k int, angle float64, kind Kind) {
	if !c.vertex(k) {
		return
	}
	c.steps[k].Angle = OptAngle{angle, true}
	c.steps[k].AngleFixed = true
	c.steps[k].Kind = kind
}

// stackPred returns true if the pair of v is stacked on the pair of v-1.
func (c *classifier) stackPred(v int) bool {
	w, ok := c.t.Partner(v)
	if !ok || v < 1 {
		return false
	}
	p, ok := c.t.Partner(v - 1)
	return ok && p == w+1 && c.t.Relation(v-1, w) == Stacked
}

// stackSucc returns true if the pair of v+1 is stacked on the pair of v.
func (c *classifier) stackSucc(v int) bool {
	w, ok := c.t.Partner(v)
	if !ok || v+1 >= c.t.Len() {
		return false
	}
	p, ok := c.t.Partner(v + 1)
	return ok && p == w-1 && c.t.Relation(v, w-1) == Stacked
}

// breaks marks the pseudo-bonds between strands. Their angle and length are free.
func (c *classifier) breaks() {
	for k := range c.steps {
		if !c.t.Break(k) {
			continue
		}
		s := &c.steps[k]
		s.Break = true
		s.Kind = Break
		if k == 0 {
			continue
		}
		s.Length = c.o.BreakDistance
		s.DisFixed = false
	}
}

// loopTargets sets the target angles of every loop closed by a nested pair as those
// of a regular polygon with one vertex per unpaired nucleotide and two per stem.
// The exterior loop is a straight line with the stems at right angles.
// Only level 0 (nested) pairs define loops, pseudoknotted nucleotides are
// considered unpaired here.
func (c *classifier) loopTargets() {
	t := c.t
	n := t.Len()
	nested := func(i int) (int, bool) {
		j, ok := t.Partner(i)
		if !ok || t.pairs.Level(i) != 0 {
			return -1, false
		}
		return j, true
	}
	//stepBeta[k] is the polygon angle of the loop that step k belongs to.
	stepBeta := make([]float64, n-1)
	loopBeta := make(map[int]float64)
	var stack []int
	for k := 0; k < n-1; k++ {
		if j, ok := nested(k); ok {
			if j > k {
				stack = append(stack, k)
				loopBeta[k] = polygonAngle(c.ringSize(k, j, nested))
			} else {
				stack = stack[:len(stack)-1]
			}
		}
		if len(stack) == 0 {
			stepBeta[k] = math.Pi
			continue
		}
		stepBeta[k] = loopBeta[stack[len(stack)-1]]
	}
	for v := 1; v < n-1; v++ {
		var a float64
		if _, ok := nested(v); !ok {
			a = stepBeta[v] - math.Pi
		} else {
			if !c.stackPred(v) {
				a += stepBeta[v-1] - math.Pi/2
			}
			if !c.stackSucc(v) {
				a += stepBeta[v] - math.Pi/2
			}
		}
		c.steps[v].Angle = OptAngle{a, true}
	}
}

// ringSize returns the number of vertices of the loop closed by (i,j).
func (c *classifier) ringSize(i, j int, nested func(int) (int, bool)) int {
	size := 2
	for k := i + 1; k < j; {
		if w, ok := nested(k); ok && w > k {
			size += 2
			k = w + 1
			continue
		}
		size++
		k++
	}
	return size
}

// polygonAngle returns the interior angle of a regular polygon with the given number of vertices.
func polygonAngle(vertices int) float64 {
	return math.Pi * float64(vertices-2) / float64(vertices)
}

// helices fixes straight turns in the middle of perfectly stacked strands.
func (c *classifier) helices() {
	for k := 1; k < len(c.steps); k++ {
		if c.steps[k].Break || c.steps[k-1].Break {
			continue
		}
		if c.stackPred(k) && c.stackSucc(k) {
			c.fix(k, 0, Helix)
		}
	}
}

// hairpins closes every hairpin loop by construction. A loop of m unpaired nucleotides
// closed by (i,j) is a regular polygon with m+2 vertices and interior angle α=π·m/(m+2).
// The turns inside the loop are α-π, those at the closing pair are α-π/2, and
// are only fixed when the closing pair continues a helix.
func (c *classifier) hairpins() {
	t := c.t
	for _, p := range t.Pairs() {
		i, j := p[0], p[1]
		if !c.hairpin(i, j) {
			continue
		}
		m := j - i - 1
		alpha := math.Pi * float64(m) / float64(m+2)
		for k := i + 1; k < j; k++ {
			c.fix(k, alpha-math.Pi, Hairpin)
		}
		if c.stackPred(i) {
			c.fix(i, alpha-math.Pi/2, Hairpin)
		}
		if c.stackSucc(j) {
			c.fix(j, alpha-math.Pi/2, Hairpin)
		}
	}
}

// hairpin returns true if the pair (i,j) closes a run of unpaired nucleotides of a single strand.
func (c *classifier) hairpin(i, j int) bool {
	for k := i; k < j; k++ {
		if c.steps[k].Break {
			return false
		}
		if k > i && c.t.Paired(k) {
			return false
		}
	}
	return true
}

// bulges adjusts the steps of unpaired runs on one side of a helix. A single
// nucleotide keeps the default geometry, two nucleotides get shorter bonds, and
// longer bulges get free bond lengths.
func (c *classifier) bulges() {
	t := c.t
	for _, pr := range t.Pairs() {
		i, j := pr[0], pr[1]
		p := i + 1
		for p < j && !t.Paired(p) {
			p++
		}
		q := j - 1
		for q > i && !t.Paired(q) {
			q--
		}
		if p >= q {
			continue
		}
		if w, _ := t.Partner(p); w != q {
			continue
		}
		var from, to int //steps from..to-1
		switch left, right := p-i-1, j-q-1; {
		case left == 0 && right > 0:
			from, to = q, j
		case right == 0 && left > 0:
			from, to = i, p
		default:
			continue
		}
		size := to - from - 1
		for k := from; k < to; k++ {
			s := &c.steps[k]
			if s.Break {
				continue
			}
			s.Kind = Bulge
			switch {
			case size == 2 && k > 0:
				s.Length = c.o.BulgeDistance
			case size > 2 && k > 0:
				s.DisFixed = false
			}
		}
	}
}

// gaps reduces the free angles in unpaired runs longer than 4 that are not
// hairpin loops. The free vertices of the run are taken in groups of 3, and
// the first and last of each group take the mean of the angles around them,
// so the curvature changes smoothly along the run.
func (c *classifier) gaps() {
	t := c.t
	n := t.Len()
	for s := 0; s < n; {
		if t.Paired(s) {
			s++
			continue
		}
		e := s
		for e+1 < n && !t.Paired(e+1) {
			e++
		}
		start := s
		s = e + 1
		if e-start+1 <= 4 {
			continue
		}
		if start > 0 && e+1 < n {
			if j, ok := t.Partner(start - 1); ok && j == e+1 {
				continue //hairpin
			}
		}
		var run []int
		for v := start; v <= e+1; v++ {
			if v <= e && c.vertex(v) && !c.steps[v].AngleFixed && !c.steps[v].Break && !c.steps[v-1].Break {
				run = append(run, v)
				continue
			}
			c.relate(run)
			run = run[:0]
		}
	}
}

func relatedStep(s Step, rel int) Step {
	s.Relation = rel
	s.AngleFixed = true
	s.Angle = OptAngle{}
	return s
}

// relate groups the consecutive vertices in run in triples.
func (c *classifier) relate(run []int) {
	for _, v := range run {
		c.steps[v].Kind = Gap
	}
	for a := 0; a+2 < len(run); a += 3 {
		first, last := run[a], run[a+2]
		//they have no target of their own.
		c.steps[first] = relatedStep(c.steps[first], 1)
		c.steps[last] = relatedStep(c.steps[last], -1)
	}
}
