/*
 * classify_test.go, part of sslayout.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(Te *testing.T, chains []int, s string) *Geometry {
	Te.Helper()
	t, err := NewTopology(chains, s)
	require.NoError(Te, err)
	return Classify(t, DefaultOptions())
}

func TestClassifyHairpin(Te *testing.T) {
	g := classify(Te, []int{12}, "((((....))))")
	require.Len(Te, g.Steps, 11)
	assert.Equal(Te, 0, g.FreeAngles())
	assert.Equal(Te, 0, g.FreeDistances())
	kinds := []Kind{Free, Helix, Helix, Hairpin, Hairpin, Hairpin, Hairpin, Hairpin, Hairpin, Helix, Helix}
	for k, s := range g.Steps {
		assert.Equal(Te, kinds[k], s.Kind, "step %d", k)
		assert.True(Te, s.AngleFixed)
		assert.True(Te, s.DisFixed)
		assert.Equal(Te, 1.0, s.Length)
	}
	assert.InDelta(Te, math.Pi/6, g.Steps[3].Angle.Value, 1e-12)
	assert.InDelta(Te, math.Pi/6, g.Steps[8].Angle.Value, 1e-12)
	for k := 4; k <= 7; k++ {
		assert.InDelta(Te, -math.Pi/3, g.Steps[k].Angle.Value, 1e-12)
	}
	assert.Equal(Te, 0.0, g.Steps[1].Angle.Value)
}

func TestClassifyTails(Te *testing.T) {
	g := classify(Te, []int{16}, "..((((....))))..")
	//exterior vertices, plus the ends of the stem.
	assert.Equal(Te, 4, g.FreeAngles())
	for _, k := range []int{1, 2, 13, 14} {
		assert.False(Te, g.Steps[k].AngleFixed, "step %d", k)
	}
	assert.InDelta(Te, 0, g.Steps[1].Angle.Value, 1e-12)
	assert.InDelta(Te, math.Pi/2, g.Steps[2].Angle.Value, 1e-12)
	assert.InDelta(Te, math.Pi/2, g.Steps[13].Angle.Value, 1e-12)
	na, nd := g.Active(6)
	assert.Equal(Te, 2, na)
	assert.Equal(Te, 0, nd)
}

func TestClassifyGap(Te *testing.T) {
	g := classify(Te, []int{10}, "..........")
	assert.Equal(Te, 4, g.FreeAngles())
	rel := map[int]int{1: 1, 3: -1, 4: 1, 6: -1}
	for k := 1; k <= 8; k++ {
		s := g.Steps[k]
		assert.Equal(Te, Gap, s.Kind)
		assert.Equal(Te, rel[k], s.Relation, "step %d", k)
		if rel[k] != 0 {
			assert.True(Te, s.AngleFixed)
			assert.False(Te, s.Angle.Valid)
		}
	}
	assert.Equal(Te, []int{0, 0, 1, 1, 1, 2, 2, 3, 4}, g.NAngles)

	a := NewAngleStrategy(g, DefaultOptions())
	x := []float64{0.1, -0.2, 0.3, 0.4}
	ang := a.Angles(x)
	//related steps take the mean of their neighbors. A related neighbor counts
	//with the free angle it is anchored to, and the chain end with the step's own anchor.
	want := []float64{0, 0.1, 0.1, -0.05, -0.05, -0.2, 0.05, 0.3, 0.4}
	assert.InDeltaSlice(Te, want, ang, 1e-12)

	o := DefaultOptions()
	o.SinCos = true
	sc := NewAngleStrategy(g, o)
	xs := make([]float64, 0, 2*len(x))
	for _, v := range x {
		xs = append(xs, math.Cos(v), math.Sin(v))
	}
	assert.InDeltaSlice(Te, want, sc.Angles(xs), 1e-12)
}

func TestClassifyBulges(Te *testing.T) {
	g := classify(Te, []int{15}, "(((.((....)))))")
	assert.Equal(Te, Bulge, g.Steps[2].Kind)
	assert.Equal(Te, Bulge, g.Steps[3].Kind)
	assert.Equal(Te, 1.0, g.Steps[2].Length)
	assert.Equal(Te, 0, g.FreeDistances())

	g = classify(Te, []int{16}, "(((..((....)))))")
	for k := 2; k <= 4; k++ {
		assert.Equal(Te, Bulge, g.Steps[k].Kind)
		assert.Equal(Te, 0.8, g.Steps[k].Length)
		assert.True(Te, g.Steps[k].DisFixed)
	}
	assert.Equal(Te, 1.0, g.Steps[5].Length)

	//the first bond keeps its length when the bulge starts the chain.
	g = classify(Te, []int{11}, "(..((...)))")
	assert.Equal(Te, Bulge, g.Steps[0].Kind)
	assert.Equal(Te, 1.0, g.Steps[0].Length)
	assert.Equal(Te, 0.8, g.Steps[1].Length)
	assert.Equal(Te, 0.8, g.Steps[2].Length)

	g = classify(Te, []int{17}, "(((...((....)))))")
	assert.Equal(Te, 4, g.FreeDistances())
	for k := 2; k <= 5; k++ {
		assert.False(Te, g.Steps[k].DisFixed)
	}
}

func TestClassifyBreak(Te *testing.T) {
	g := classify(Te, []int{4, 4}, "(((())))")
	s := g.Steps[3]
	assert.True(Te, s.Break)
	assert.Equal(Te, Break, s.Kind)
	assert.Equal(Te, 1.5, s.Length)
	assert.False(Te, s.DisFixed)
	assert.False(Te, s.AngleFixed)
	assert.Equal(Te, 2, g.FreeAngles())
	assert.Equal(Te, 1, g.FreeDistances())
	for _, k := range []int{1, 2, 5, 6} {
		assert.Equal(Te, Helix, g.Steps[k].Kind, "step %d", k)
	}
}

func TestClassifyShort(Te *testing.T) {
	g := classify(Te, []int{1}, ".")
	assert.Empty(Te, g.Steps)
	assert.Equal(Te, 0, g.FreeAngles())
	g = classify(Te, []int{2}, "..")
	require.Len(Te, g.Steps, 1)
	assert.Equal(Te, 0, g.FreeAngles())
}
