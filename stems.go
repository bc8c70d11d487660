/*
 * stems.go, part of sslayout.
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
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stem is a helix: the Len consecutive nested pairs (I+k, J-k), k=0..Len-1.
type Stem struct {
	I, J int //outermost pair
	Len  int
}

// Contains returns true if the pair (i,j) belongs to the stem.
func (s Stem) Contains(i, j int) bool {
	k := i - s.I
	return k >= 0 && k < s.Len && j == s.J-k
}

// Stems returns the helices of the topology, sorted by their 5' position. Lone
// pairs are helices of length 1.
// The pairs are the nodes of a graph where stacked pairs are connected, so each
// connected component is a helix.
func (t *Topology) Stems() []Stem {
	g := simple.NewUndirectedGraph()
	for _, p := range t.list {
		g.AddNode(simple.Node(p[0]))
	}
	for _, p := range t.list {
		i, j := p[0], p[1]
		//the stacked relation is only set when (i+1,j-1) is a pair of the same helix.
		if j-1 > i+1 && t.Relation(i, j-1) == Stacked && t.Relation(i+1, j-1) == Pair {
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(i + 1)})
		}
	}
	var ret []Stem
	for _, comp := range topo.ConnectedComponents(g) {
		min, max := t.n, -1
		for _, node := range comp {
			id := int(node.ID())
			if id < min {
				min = id
			}
			if id > max {
				max = id
			}
		}
		j, _ := t.Partner(min)
		ret = append(ret, Stem{I: min, J: j, Len: max - min + 1})
	}
	sort.Slice(ret, func(a, b int) bool { return ret[a].I < ret[b].I })
	return ret
}
