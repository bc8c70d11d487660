/*
 * topology.go, part of sslayout.
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
	"unicode/utf8"

	"github.com/rmera/sslayout/dotbracket"
)

// Relation is the kind of interaction between two nucleotides.
type Relation int8

const (
	None    Relation = iota
	Pair             //direct base pair
	Stacked          //diagonal between two stacked base pairs
)

func (r Relation) String() string {
	switch r {
	case Pair:
		return "pair"
	case Stacked:
		return "stacked"
	}
	return "none"
}

// Topology contains the chains of a complex and the interactions between its nucleotides.
// It is built once, from the notation, and never modified.
type Topology struct {
	n       int
	chain   []int //chain id of each position
	pairs   *dotbracket.Pairs
	inter   []Relation //n*n, row major
	list    [][2]int   //direct pairs, i<j
	stacked [][2]int   //stacked relations, i<j
}

// NewTopology builds the topology of a complex with the given chain lengths and
// base pairing. The length of notation must be the sum of the chain lengths.
// Malformed notation is a fatal error, and no Topology is returned.
func NewTopology(chainLengths []int, notation string) (*Topology, error) {
	if len(chainLengths) == 0 {
		return nil, Error{"no chains given", ErrChains, []string{"NewTopology"}, true}
	}
	n := 0
	for i, v := range chainLengths {
		if v <= 0 {
			return nil, Error{fmt.Sprintf("chain %d has length %d", i, v), ErrChains, []string{"NewTopology"}, true}
		}
		n += v
	}
	if l := utf8.RuneCountInString(notation); l != n {
		return nil, Error{fmt.Sprintf("notation has %d positions, chains add up to %d", l, n), ErrLength, []string{"NewTopology"}, true}
	}
	pairs, err := dotbracket.Parse(notation)
	if err != nil {
		return nil, Error{"can't parse notation", err, []string{"NewTopology"}, true}
	}
	t := &Topology{n: n, pairs: pairs, chain: make([]int, 0, n)}
	for id, v := range chainLengths {
		for i := 0; i < v; i++ {
			t.chain = append(t.chain, id)
		}
	}
	t.inter = make([]Relation, n*n)
	t.list = pairs.List()
	for _, p := range t.list {
		t.set(p[0], p[1], Pair)
	}
	//a direct pair (i,j) stacked on (i+1,j-1) gives the diagonals (i+1,j) and (i,j-1).
	for _, p := range t.list {
		i, j := p[0], p[1]
		k, ok := pairs.Partner(i + 1)
		if !ok || k != j-1 || i+1 >= j-1 {
			continue
		}
		if t.chain[i] != t.chain[i+1] || t.chain[j-1] != t.chain[j] {
			continue
		}
		for _, d := range [][2]int{{i + 1, j}, {i, j - 1}} {
			if t.Relation(d[0], d[1]) == None {
				t.set(d[0], d[1], Stacked)
				t.stacked = append(t.stacked, d)
			}
		}
	}
	return t, nil
}

func (t *Topology) set(i, j int, r Relation) {
	t.inter[i*t.n+j] = r
	t.inter[j*t.n+i] = r
}

// Len returns the number of nucleotides.
func (t *Topology) Len() int { return t.n }

// ChainID returns the index of the chain that position i belongs to.
func (t *Topology) ChainID(i int) int { return t.chain[i] }

// Chains returns the number of chains.
func (t *Topology) Chains() int {
	if t.n == 0 {
		return 0
	}
	return t.chain[t.n-1] + 1
}

// ChainLengths returns the number of nucleotides in each chain.
func (t *Topology) ChainLengths() []int {
	ret := make([]int, t.Chains())
	for _, c := range t.chain {
		ret[c]++
	}
	return ret
}

// Break returns true if the step from position k to k+1 joins two different chains.
func (t *Topology) Break(k int) bool {
	return k >= 0 && k+1 < t.n && t.chain[k] != t.chain[k+1]
}

// Partner returns the direct pair partner of i and true, or -1 and false if i is unpaired.
func (t *Topology) Partner(i int) (int, bool) {
	return t.pairs.Partner(i)
}

// Paired returns true if i has a direct partner.
func (t *Topology) Paired(i int) bool {
	_, ok := t.pairs.Partner(i)
	return ok
}

// Relation returns the interaction between i and j.
func (t *Topology) Relation(i, j int) Relation {
	return t.inter[i*t.n+j]
}

// BasePairs returns the direct partner of each position, or -1 for unpaired positions.
func (t *Topology) BasePairs() []int {
	return t.pairs.Table()
}

// Pairs returns the direct pairs (i,j), i<j, sorted by i. The slice must not be modified.
func (t *Topology) Pairs() [][2]int { return t.list }

// StackedPairs returns the stacked relations (i,j), i<j. The slice must not be modified.
func (t *Topology) StackedPairs() [][2]int { return t.stacked }

// Notation returns the pairing in dot-bracket notation.
func (t *Topology) Notation() string {
	return t.pairs.String()
}
