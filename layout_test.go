/*
 * layout_test.go, part of sslayout.
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
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rmera/sslayout/dotbracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"
)

// quiet returns the default options with a silent logger and small budgets.
func quiet() *Options {
	o := DefaultOptions()
	o.Logger = log.New(io.Discard)
	o.MaxEvaluations = 1000
	o.FinalMaxEvaluations = 3000
	return o
}

func TestHairpinClosure(Te *testing.T) {
	l, err := New([]int{12}, "((((....))))", quiet())
	require.NoError(Te, err)
	require.NoError(Te, l.Calc())
	assert.Empty(Te, l.Stages())
	c := l.Coords()
	assert.InDelta(Te, 1, c.Dist(0, 11), 1e-2)
	ref := c.Angle(3, 4, 5)
	for i := 5; i <= 7; i++ {
		assert.InDelta(Te, ref, c.Angle(i-1, i, i+1), 1e-3)
	}
	x, y := c.XY(5)
	assert.InDelta(Te, 0, x, 1e-9)
	assert.InDelta(Te, 4.732, y, 1e-3)
	x, y = c.XY(11)
	assert.InDelta(Te, 1, x, 1e-9)
	assert.InDelta(Te, 0, y, 1e-9)
	assert.InDelta(Te, 0, l.Energy().Total(), 1e-9)
}

func TestNoCrossings(Te *testing.T) {
	for _, s := range []string{"..((((....))))..", "(((...)))", ".((((((.....)))))).", "((((....))))......"} {
		l, err := New([]int{len(s)}, s, quiet())
		require.NoError(Te, err, s)
		require.NoError(Te, l.Calc(), s)
		e := l.Energy()
		assert.Equal(Te, 0, e.Crossings, s)
		assert.Equal(Te, 0.0, e.Crossing, s)
	}
}

func TestDeterminism(Te *testing.T) {
	s := "..(((...)))..(((....)))..."
	for _, strategy := range []string{StrategyAngle, StrategyXY} {
		o := quiet()
		o.Strategy = strategy
		a, err := New([]int{len(s)}, s, o)
		require.NoError(Te, err)
		b, err := New([]int{len(s)}, s, o)
		require.NoError(Te, err)
		require.NoError(Te, a.Calc())
		require.NoError(Te, b.Calc())
		assert.Equal(Te, a.Values(), b.Values(), strategy)
		assert.Equal(Te, a.Stages(), b.Stages(), strategy)
	}
}

func TestMalformed(Te *testing.T) {
	l, err := New([]int{2}, "((", quiet())
	assert.Nil(Te, l)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, dotbracket.ErrUnbalanced))
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.True(Te, e.Critical())
	assert.Contains(Te, strings.Join(e.Decorate(""), " "), "New")

	l, err = New([]int{3}, "(.)(", quiet())
	assert.Nil(Te, l)
	assert.True(Te, errors.Is(err, ErrLength))

	o := quiet()
	o.Strategy = "spline"
	l, err = New([]int{3}, "...", o)
	assert.Nil(Te, l)
	assert.True(Te, errors.Is(err, ErrOptions))
}

func TestStrategiesAgree(Te *testing.T) {
	s := "..((((....))))..((...))."
	ref, err := New([]int{len(s)}, s, quiet())
	require.NoError(Te, err)
	for _, mod := range []func(*Options){
		func(o *Options) { o.Strategy = StrategyXY },
		func(o *Options) { o.SinCos = true },
	} {
		o := quiet()
		mod(o)
		l, err := New([]int{len(s)}, s, o)
		require.NoError(Te, err)
		assert.InDeltaSlice(Te, ref.Values(), l.Values(), 1e-9, l.Strategy().Name())
	}
	assert.Equal(Te, "angle", ref.Strategy().Name())
}

func TestXYLayout(Te *testing.T) {
	s := "..((((....)))).."
	o := quiet()
	o.Strategy = StrategyXY
	l, err := New([]int{len(s)}, s, o)
	require.NoError(Te, err)
	assert.Equal(Te, 2*(len(s)-2), l.Strategy().Len())
	require.NoError(Te, l.Calc())
	assert.Equal(Te, 0, l.Energy().Crossings)
	assert.Len(Te, l.Values(), 2*len(s))
}

func TestStrands(Te *testing.T) {
	o := DefaultOptions()
	o.Logger = log.New(io.Discard)
	l, err := New([]int{6, 6}, "(((((())))))", o)
	require.NoError(Te, err)
	assert.Equal(Te, 3, l.Strategy().Len())
	require.NoError(Te, l.Calc())
	r := l.Report()
	assert.Equal(Te, 2, r.Chains)
	assert.Equal(Te, 6, r.Pairs.N)
	assert.Less(Te, r.Pairs.MaxAbs, 0.05)
	assert.Equal(Te, 1, r.Steps[Break])
	require.Len(Te, r.Contacts, 1)
	c := r.Contacts[0]
	assert.Equal(Te, 0, c.ChainA)
	assert.Equal(Te, 1, c.ChainB)
	assert.Less(Te, c.I, 6)
	assert.GreaterOrEqual(Te, c.J, 6)
	assert.Less(Te, c.Dist, 1.05)
	assert.Contains(Te, r.String(), "contact: strands 1-2")
}

func TestStages(Te *testing.T) {
	s := "((((....))))......"
	l, err := New([]int{len(s)}, s, quiet())
	require.NoError(Te, err)
	require.NoError(Te, l.Calc())
	st := l.Stages()
	require.Len(Te, st, 7)
	for i, limit := range []int{6, 8, 10, 12, 14, 16, 18} {
		assert.Equal(Te, limit, st[i].Limit)
	}
	//nothing is free before the end of the stem.
	for _, v := range st[:4] {
		assert.True(Te, v.Skipped)
		assert.Equal(Te, 0, v.Params)
	}
	assert.Equal(Te, 1, st[4].Params)
	assert.Equal(Te, 2, st[5].Params)
	assert.Equal(Te, 4, st[6].Params)
	assert.False(Te, st[6].Skipped)
	assert.Positive(Te, st[6].Evaluations)
	assert.Equal(Te, 8, st[6].Population)
}

func TestReport(Te *testing.T) {
	l, err := New([]int{12}, "((((....))))", quiet())
	require.NoError(Te, err)
	r := l.Report()
	assert.Equal(Te, 12, r.Nucleotides)
	assert.Len(Te, r.Stems, 1)
	assert.Equal(Te, 1, r.Steps[Free])
	assert.Equal(Te, 4, r.Steps[Helix])
	assert.Equal(Te, 6, r.Steps[Hairpin])
	assert.Equal(Te, 4, r.Pairs.N)
	assert.InDelta(Te, 0, r.Pairs.MaxAbs, 1e-9)
	assert.InDelta(Te, 0, r.Stacked.MaxAbs, 1e-9)
	assert.InDelta(Te, 0, r.Bonds.MaxAbs, 1e-9)
	assert.Empty(Te, r.Crossings)
	assert.Empty(Te, r.Clashes)
	assert.Empty(Te, r.Contacts)
	out := r.String()
	assert.Contains(Te, out, "12 nucleotides in 1 chain(s), 1 stem(s)")
	assert.Contains(Te, out, "hairpin:6")
	assert.NotContains(Te, out, "crossing:")
}

func TestOptionsValidate(Te *testing.T) {
	assert.NoError(Te, DefaultOptions().Validate())
	for _, mod := range []func(*Options){
		func(o *Options) { o.SeqDistance = 0 },
		func(o *Options) { o.BreakDistance = -1 },
		func(o *Options) { o.AngleBound = 4 },
		func(o *Options) { o.CrossWeight = -1 },
		func(o *Options) { o.InitialLimit = 2 },
		func(o *Options) { o.LimitStep = 0 },
		func(o *Options) { o.LambdaMul = 0 },
		func(o *Options) { o.FinalMaxEvaluations = 0 },
	} {
		o := DefaultOptions()
		mod(o)
		err := o.Validate()
		require.Error(Te, err)
		assert.True(Te, errors.Is(err, ErrOptions), err.Error())
	}
}

func TestLeadingBulge(Te *testing.T) {
	s := "(..((...)))"
	for _, strategy := range []string{StrategyAngle, StrategyXY} {
		o := quiet()
		o.Strategy = strategy
		l, err := New([]int{len(s)}, s, o)
		require.NoError(Te, err)
		require.NoError(Te, l.Calc())
		x, y := l.Coords().XY(1)
		assert.InDelta(Te, 0, x, 1e-9, strategy)
		assert.InDelta(Te, o.SeqDistance, y, 1e-9, strategy)
	}
}

// twoHairpins has the same free parameters from the end of the first hairpin to the end
// of the chain.
const twoHairpins = "((((....))))((((....))))"

func TestStageSkip(Te *testing.T) {
	o := quiet()
	o.SkipTolerance = 1e9
	l, err := New([]int{len(twoHairpins)}, twoHairpins, o)
	require.NoError(Te, err)
	require.NoError(Te, l.Calc())
	st := l.Stages()
	require.Len(Te, st, 10)
	assert.Equal(Te, len(twoHairpins), st[9].Limit)
	assert.False(Te, st[9].Skipped)
	assert.Positive(Te, st[9].Evaluations)
	skipped := 0
	for i := 1; i < len(st)-1; i++ {
		if st[i].Params > 0 && st[i].Params == st[i-1].Params {
			assert.True(Te, st[i].Skipped, st[i].Limit)
			assert.Zero(Te, st[i].Evaluations, st[i].Limit)
			skipped++
		}
	}
	assert.Positive(Te, skipped)
}

func TestStageSkipDisabled(Te *testing.T) {
	o := quiet()
	o.SkipTolerance = -1
	l, err := New([]int{len(twoHairpins)}, twoHairpins, o)
	require.NoError(Te, err)
	require.NoError(Te, l.Calc())
	st := l.Stages()
	require.Len(Te, st, 10)
	run := 0
	for _, v := range st {
		if v.Params == 0 {
			assert.True(Te, v.Skipped, v.Limit)
			continue
		}
		assert.False(Te, v.Skipped, v.Limit)
		assert.Positive(Te, v.Evaluations, v.Limit)
		run++
	}
	assert.Greater(Te, run, 1)
}

// failWith replaces the optimizer with one that runs the real one, if run is true,
// and then fails with err. It returns a function that restores the optimizer.
func failWith(err error, run bool) func() {
	orig := minimize
	minimize = func(p optimize.Problem, x []float64, s *optimize.Settings, m optimize.Method) (*optimize.Result, error) {
		if !run {
			return nil, err
		}
		res, _ := orig(p, x, s, m)
		return res, err
	}
	return func() { minimize = orig }
}

func TestOptimizerFailure(Te *testing.T) {
	s := "..((((....))))..((...))."
	broken := errors.New("the optimizer broke")
	for _, run := range []bool{true, false} {
		ref, err := New([]int{len(s)}, s, quiet())
		require.NoError(Te, err)
		e0 := ref.Energy().Total()

		restore := failWith(broken, run)
		l, err := New([]int{len(s)}, s, quiet())
		require.NoError(Te, err)
		err = l.Calc()
		restore()
		require.Error(Te, err)
		assert.True(Te, errors.Is(err, broken))
		var e Errorer
		require.True(Te, errors.As(err, &e))
		assert.False(Te, e.Critical())

		ran := 0
		for _, v := range l.Stages() {
			if v.Skipped {
				continue
			}
			assert.True(Te, errors.Is(v.Err, broken), v.Limit)
			ran++
		}
		assert.Positive(Te, ran)
		for _, v := range l.Values() {
			assert.False(Te, math.IsNaN(v) || math.IsInf(v, 0))
		}
		assert.LessOrEqual(Te, l.Energy().Total(), e0+1e-9)
		if !run {
			//nothing was found, the initial guess stays.
			assert.Equal(Te, ref.Params(), l.Params())
			assert.InDeltaSlice(Te, ref.Values(), l.Values(), 1e-12)
		}
	}
}

func TestRevertToInitial(Te *testing.T) {
	s := "..((((....)))).."
	o := quiet()
	o.Strategy = StrategyXY
	l, err := New([]int{len(s)}, s, o)
	require.NoError(Te, err)
	initial := l.Params()
	assert.False(Te, l.revert(initial))
	//all the free nucleotides on top of each other.
	for i := range l.best {
		l.best[i] = 0
	}
	require.True(Te, l.revert(initial))
	assert.Equal(Te, initial, l.Params())

	//whatever Calc finds is never worse than where it started.
	for _, mod := range []func(*Options){
		func(o *Options) {},
		func(o *Options) { o.Strategy = StrategyXY },
		func(o *Options) { o.SinCos = true },
	} {
		o := quiet()
		mod(o)
		multi := "..(((..(((...)))..(((...))).)))....."
		l, err := New([]int{len(multi)}, multi, o)
		require.NoError(Te, err)
		e0 := l.Energy().Total()
		require.NoError(Te, l.Calc())
		assert.LessOrEqual(Te, l.Energy().Total(), e0+1e-9, l.Strategy().Name())
	}
}

func TestSinCosLayout(Te *testing.T) {
	s := "..((((....))))..((...))."
	o := quiet()
	o.SinCos = true
	a, err := New([]int{len(s)}, s, o)
	require.NoError(Te, err)
	b, err := New([]int{len(s)}, s, o)
	require.NoError(Te, err)
	assert.Equal(Te, "angle/sincos", a.Strategy().Name())
	e0 := a.Energy().Total()
	require.NoError(Te, a.Calc())
	require.NoError(Te, b.Calc())
	assert.Equal(Te, a.Values(), b.Values())
	assert.Equal(Te, a.Stages(), b.Stages())
	assert.LessOrEqual(Te, a.Energy().Total(), e0+1e-9)
	st := a.Stages()
	require.NotEmpty(Te, st)
	last := st[len(st)-1]
	assert.False(Te, last.Skipped)
	assert.Positive(Te, last.Evaluations)
	//each free angle is a (cos,sin) pair.
	assert.Equal(Te, 0, last.Params%2)
}
