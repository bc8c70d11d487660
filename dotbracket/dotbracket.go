/*
 * dotbracket.go, part of sslayout.
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
Package dotbracket reads and writes base-pairing patterns in dot-bracket
(Vienna) notation.

Each bracket alphabet is an independent pairing level: "()" is level 0,
"[]" level 1, "{}" level 2 and "<>" level 3. Pseudoknots are written by
putting the crossing pairs in a different level. Dots, letters and any other
character are unpaired positions.
*/
package dotbracket

import (
	"fmt"
	"sort"
	"strings"
)

type bracket struct {
	open, close rune
}

var alphabets = []bracket{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}

// MaxLevels is the number of independent pairing levels the notation can express.
func MaxLevels() int {
	return len(alphabets)
}

// levelOf returns the level of the bracket r, and whether it opens a pair.
// level is -1 if r is not a bracket.
func levelOf(r rune) (level int, open bool) {
	for i, b := range alphabets {
		switch r {
		case b.open:
			return i, true
		case b.close:
			return i, false
		}
	}
	return -1, false
}

// Pairs is a symmetric pair table built from dot-bracket notation.
// Every position has at most one partner.
type Pairs struct {
	partner []int
	level   []int
}

// Parse reads the dot-bracket string s and returns the corresponding pair table.
// Unbalanced brackets at any level are a fatal error, and no table is returned.
func Parse(s string) (*Pairs, error) {
	runes := []rune(s)
	n := len(runes)
	P := &Pairs{partner: make([]int, n), level: make([]int, n)}
	for i := range P.partner {
		P.partner[i] = -1
		P.level[i] = -1
	}
	stacks := make([][]int, len(alphabets))
	for i, r := range runes {
		lev, open := levelOf(r)
		if lev < 0 {
			continue
		}
		if open {
			stacks[lev] = append(stacks[lev], i)
			continue
		}
		st := stacks[lev]
		if len(st) == 0 {
			return nil, Error{fmt.Sprintf("closing %q at position %d has no opening partner", r, i), i, lev, ErrUnbalanced, []string{"Parse"}, true}
		}
		start := st[len(st)-1]
		stacks[lev] = st[:len(st)-1]
		P.set(start, i, lev)
	}
	for lev, st := range stacks {
		if len(st) > 0 {
			i := st[len(st)-1]
			return nil, Error{fmt.Sprintf("opening %q at position %d is never closed", alphabets[lev].open, i), i, lev, ErrUnbalanced, []string{"Parse"}, true}
		}
	}
	return P, nil
}

func (P *Pairs) set(i, j, lev int) {
	P.partner[i] = j
	P.partner[j] = i
	P.level[i] = lev
	P.level[j] = lev
}

// FromTable builds Pairs from a partner table, where table[i] is the partner of i, or -1.
// The table must be symmetric. Levels are assigned so that crossing pairs end up in
// different levels, lowest levels first.
func FromTable(table []int) (*Pairs, error) {
	n := len(table)
	P := &Pairs{partner: make([]int, n), level: make([]int, n)}
	for i := range P.level {
		P.partner[i] = -1
		P.level[i] = -1
	}
	var list [][2]int
	for i, j := range table {
		if j < 0 {
			continue
		}
		if j >= n || j == i || table[j] != i {
			return nil, Error{fmt.Sprintf("partner table is not symmetric at position %d", i), i, -1, ErrTable, []string{"FromTable"}, true}
		}
		if i < j {
			list = append(list, [2]int{i, j})
		}
	}
	var byLevel [][][2]int
	for _, p := range list {
		lev := 0
		for ; lev < len(byLevel); lev++ {
			if !crossesAny(p, byLevel[lev]) {
				break
			}
		}
		if lev >= len(alphabets) {
			return nil, Error{fmt.Sprintf("pair %d-%d needs more than %d levels", p[0], p[1], len(alphabets)), p[0], -1, ErrTable, []string{"FromTable"}, true}
		}
		if lev == len(byLevel) {
			byLevel = append(byLevel, nil)
		}
		byLevel[lev] = append(byLevel[lev], p)
		P.set(p[0], p[1], lev)
	}
	return P, nil
}

// Crosses returns true if the pairs a and b cross each other when drawn on a line,
// i.e. if they could not be written with the same bracket alphabet.
func Crosses(a, b [2]int) bool {
	i, j := order(a)
	k, l := order(b)
	return (i < k && k < j && j < l) || (k < i && i < l && l < j)
}

func order(p [2]int) (int, int) {
	if p[0] > p[1] {
		return p[1], p[0]
	}
	return p[0], p[1]
}

func crossesAny(p [2]int, set [][2]int) bool {
	for _, q := range set {
		if Crosses(p, q) {
			return true
		}
	}
	return false
}

// Len returns the number of positions in the table.
func (P *Pairs) Len() int {
	return len(P.partner)
}

// Partner returns the partner of position i and true, or -1 and false if i is unpaired.
func (P *Pairs) Partner(i int) (int, bool) {
	j := P.partner[i]
	return j, j >= 0
}

// Level returns the bracket level of the pair that i belongs to, or -1 if i is unpaired.
func (P *Pairs) Level(i int) int {
	return P.level[i]
}

// Levels returns the number of levels in use.
func (P *Pairs) Levels() int {
	max := -1
	for _, l := range P.level {
		if l > max {
			max = l
		}
	}
	return max + 1
}

// Count returns the number of pairs in the given level.
func (P *Pairs) Count(level int) int {
	c := 0
	for i, j := range P.partner {
		if j > i && P.level[i] == level {
			c++
		}
	}
	return c
}

// List returns all pairs as (i,j) with i<j, sorted by i.
func (P *Pairs) List() [][2]int {
	var ret [][2]int
	for i, j := range P.partner {
		if j > i {
			ret = append(ret, [2]int{i, j})
		}
	}
	sort.Slice(ret, func(a, b int) bool { return ret[a][0] < ret[b][0] })
	return ret
}

// Table returns a copy of the partner table, with -1 for unpaired positions.
func (P *Pairs) Table() []int {
	ret := make([]int, len(P.partner))
	copy(ret, P.partner)
	return ret
}

// String writes the table back in dot-bracket notation.
func (P *Pairs) String() string {
	var b strings.Builder
	for i, j := range P.partner {
		switch {
		case j < 0:
			b.WriteRune('.')
		case j > i:
			b.WriteRune(alphabets[P.level[i]].open)
		default:
			b.WriteRune(alphabets[P.level[i]].close)
		}
	}
	return b.String()
}

//Errors

const (
	// ErrUnbalanced is the cause of every error returned by Parse.
	ErrUnbalanced = PanicMsg("sslayout/dotbracket: unbalanced brackets")
	// ErrTable is the cause of errors building Pairs from a partner table.
	ErrTable = PanicMsg("sslayout/dotbracket: invalid partner table")
)

// Error is the error type for the dotbracket package.
type Error struct {
	message  string
	index    int //position in the input where the problem was found
	level    int
	cause    error
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dot-bracket error: %s", err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical. Notation errors always are.
func (err Error) Critical() bool { return err.critical }

// Index returns the position in the input where the error was detected.
func (err Error) Index() int { return err.index }

// Level returns the bracket level involved in the error, or -1.
func (err Error) Level() int { return err.level }

// Unwrap allows errors.Is(err, ErrUnbalanced) for unbalanced input.
func (err Error) Unwrap() error { return err.cause }

// PanicMsg is a message that satisfies the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
