/*
 * topology_test.go, part of sslayout.
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

package sslayout

import (
	"errors"
	"testing"

	"github.com/rmera/sslayout/dotbracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyHairpin(Te *testing.T) {
	t, err := NewTopology([]int{12}, "((((....))))")
	require.NoError(Te, err)
	assert.Equal(Te, 12, t.Len())
	assert.Equal(Te, 1, t.Chains())
	assert.Len(Te, t.Pairs(), 4)
	assert.Len(Te, t.StackedPairs(), 6)
	assert.Equal(Te, Pair, t.Relation(0, 11))
	assert.Equal(Te, Pair, t.Relation(11, 0))
	assert.Equal(Te, Stacked, t.Relation(0, 10))
	assert.Equal(Te, Stacked, t.Relation(1, 11))
	assert.Equal(Te, Stacked, t.Relation(2, 8))
	assert.Equal(Te, None, t.Relation(0, 9))
	assert.Equal(Te, None, t.Relation(4, 5))
	assert.Equal(Te, "((((....))))", t.Notation())
	assert.Equal(Te, []Stem{{I: 0, J: 11, Len: 4}}, t.Stems())
}

// Every pair relation must be symmetric, with a single direct partner per position.
func TestPairSymmetry(Te *testing.T) {
	for _, s := range []string{"((((....))))", "..((..[[..))..]]..", "((.((...)).((...))))", ".(((...)))..{{..}}"} {
		t, err := NewTopology([]int{len(s)}, s)
		require.NoError(Te, err, s)
		bp := t.BasePairs()
		for i, j := range bp {
			if j < 0 {
				continue
			}
			assert.Equal(Te, i, bp[j], s)
			for k := 0; k < t.Len(); k++ {
				assert.Equal(Te, t.Relation(i, k), t.Relation(k, i))
				if k != j {
					assert.NotEqual(Te, Pair, t.Relation(i, k), "%d has two partners in %s", i, s)
				}
			}
		}
	}
}

func TestTopologyStrands(Te *testing.T) {
	t, err := NewTopology([]int{4, 4}, "(((())))")
	require.NoError(Te, err)
	assert.Equal(Te, 2, t.Chains())
	assert.Equal(Te, 0, t.ChainID(3))
	assert.Equal(Te, 1, t.ChainID(4))
	assert.True(Te, t.Break(3))
	assert.False(Te, t.Break(2))
	assert.False(Te, t.Break(7))
	assert.Len(Te, t.StackedPairs(), 6)
	assert.Equal(Te, []Stem{{I: 0, J: 7, Len: 4}}, t.Stems())
}

func TestStems(Te *testing.T) {
	t, err := NewTopology([]int{14}, "((..))..((..))")
	require.NoError(Te, err)
	assert.Equal(Te, []Stem{{0, 5, 2}, {8, 13, 2}}, t.Stems())
	t, err = NewTopology([]int{7}, ".(...).")
	require.NoError(Te, err)
	st := t.Stems()
	require.Len(Te, st, 1)
	assert.Equal(Te, 1, st[0].Len)
	assert.True(Te, st[0].Contains(1, 5))
	assert.False(Te, st[0].Contains(2, 4))
}

func TestTopologyErrors(Te *testing.T) {
	_, err := NewTopology([]int{5}, "((..))")
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrLength))

	_, err = NewTopology([]int{3, 0}, "...")
	assert.True(Te, errors.Is(err, ErrChains))
	_, err = NewTopology(nil, "")
	assert.True(Te, errors.Is(err, ErrChains))

	t, err := NewTopology([]int{2}, "((")
	assert.Nil(Te, t)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, dotbracket.ErrUnbalanced))
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.True(Te, e.Critical())
}
