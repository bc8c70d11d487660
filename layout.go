/*
 * layout.go, part of sslayout.
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

	"github.com/charmbracelet/log"
	v2 "github.com/rmera/sslayout/v2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// minimize is the optimizer used by each stage. Tests replace it.
var minimize = optimize.Minimize

// Layout computes the planar coordinates of a nucleic-acid complex. It owns all the
// buffers and the random source used in the calculation, so it must not be shared
// between goroutines.
type Layout struct {
	topo     *Topology
	geom     *Geometry
	strategy Strategy
	o        *Options
	log      *log.Logger
	e        *energy

	src    rand.PCGSource
	best   []float64 //full parameter vector
	work   []float64 //scratch parameter vector
	coords []float64 //scratch coordinates
	values []float64 //coordinates of best

	stages []StageInfo
}

// StageInfo describes one stage of the optimization.
type StageInfo struct {
	Limit       int     //nucleotides placed
	Params      int     //parameters optimized
	Skipped     bool    //nothing was optimized in the stage
	Population  int     //CMA-ES population
	Evaluations int     //energy evaluations
	Cost        float64 //energy of the first Limit nucleotides at the end of the stage
	Status      string  //termination status of the optimizer
	Err         error   //the optimizer failed
}

// New builds a layout for a complex with the given chain lengths and the base
// pairing in notation. If o is nil, DefaultOptions() is used. A malformed notation,
// or one that doesn't match the chain lengths, is an error, and no Layout is returned.
// The coordinates of the initial guess are available right away, Calc optimizes them.
func New(chainLengths []int, notation string, o *Options) (*Layout, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, errDecorate(err, "New")
	}
	t, err := NewTopology(chainLengths, notation)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	g := Classify(t, o)
	var s Strategy
	switch o.Strategy {
	case StrategyXY:
		s = NewXYStrategy(g, o)
	default:
		s = NewAngleStrategy(g, o)
	}
	n := t.Len()
	l := &Layout{
		topo:     t,
		geom:     g,
		strategy: s,
		o:        o,
		log:      o.logger(),
		e:        newEnergy(t, g, o),
		best:     s.Initial(),
		coords:   make([]float64, 2*n),
		values:   make([]float64, 2*n),
	}
	l.work = make([]float64, len(l.best))
	l.finish()
	l.log.Debug("layout built", "nucleotides", n, "chains", t.Chains(), "pairs", len(t.Pairs()),
		"stacked", len(t.StackedPairs()), "strategy", s.Name(), "parameters", s.Len())
	return l, nil
}

// Topology returns the topology of the complex.
func (l *Layout) Topology() *Topology { return l.topo }

// Geometry returns the per-step geometry of the layout.
func (l *Layout) Geometry() *Geometry { return l.geom }

// Strategy returns the parameterization in use.
func (l *Layout) Strategy() Strategy { return l.strategy }

// Stems returns the helices of the complex.
func (l *Layout) Stems() []Stem { return l.topo.Stems() }

// Len returns the number of nucleotides.
func (l *Layout) Len() int { return l.topo.Len() }

// ChainLengths returns the number of nucleotides in each chain.
func (l *Layout) ChainLengths() []int { return l.topo.ChainLengths() }

// Values returns a copy of the coordinates, as x0,y0,x1,y1...
func (l *Layout) Values() []float64 {
	ret := make([]float64, len(l.values))
	copy(ret, l.values)
	return ret
}

// BasePairs returns the partner of each nucleotide, or -1 for unpaired ones.
func (l *Layout) BasePairs() []int {
	return l.topo.BasePairs()
}

// Coords returns a copy of the coordinates as a Nx2 matrix.
func (l *Layout) Coords() *v2.Matrix {
	ret, _ := v2.NewMatrix(l.Values()) //can't fail, there is at least one nucleotide.
	return ret
}

// Params returns a copy of the current parameter vector.
func (l *Layout) Params() []float64 {
	ret := make([]float64, len(l.best))
	copy(ret, l.best)
	return ret
}

// Energy returns the energy terms of the current coordinates.
func (l *Layout) Energy() Terms {
	var t Terms
	l.cost(l.best, l.topo.Len(), &t)
	return t
}

// Stages returns information on the stages of the last Calc call.
func (l *Layout) Stages() []StageInfo {
	ret := make([]StageInfo, len(l.stages))
	copy(ret, l.stages)
	return ret
}

// cost places the first limit nucleotides from the parameters x and returns their energy.
func (l *Layout) cost(x []float64, limit int, t *Terms) float64 {
	l.strategy.Reconstruct(x, limit, l.coords)
	l.e.eval(l.coords, limit, t)
	l.strategy.Penalty(x, l.coords, limit, t)
	return t.Total()
}

// finish stores the coordinates of the current best parameters.
func (l *Layout) finish() {
	l.strategy.Reconstruct(l.best, l.topo.Len(), l.values)
}

// limits returns the number of nucleotides placed in each stage.
func (l *Layout) limits() []int {
	n := l.topo.Len()
	var ret []int
	for lim := l.o.InitialLimit; lim < n; lim += l.o.LimitStep {
		ret = append(ret, lim)
	}
	return append(ret, n)
}

// population returns the CMA-ES population for dim parameters.
func (l *Layout) population(dim int) int {
	p := l.o.LambdaMul * int(math.Round(4+3*math.Log(float64(dim))))
	if p < 1 {
		p = 1
	}
	return p
}

// Calc optimizes the layout. The chain is grown by stages, each one optimizing the
// parameters that affect the nucleotides placed so far, starting from the result of the
// previous stage. If the optimizer fails in a stage, the best point found so far is
// kept. Calc always leaves a valid set of coordinates, and never one with a higher energy
// than the initial guess. The error returned, if any, is not critical.
func (l *Layout) Calc() error {
	n := l.topo.Len()
	l.stages = l.stages[:0]
	defer l.finish()
	if n < 3 || l.strategy.Len() == 0 {
		l.log.Debug("no free parameters, the geometry is fixed", "nucleotides", n)
		return nil
	}
	initial := l.strategy.Initial()
	prevParams, prevCost := -1, math.Inf(1)
	var failed, run int
	var lastErr error
	for _, limit := range l.limits() {
		slots := l.strategy.Slots(limit)
		var terms Terms
		cost := l.cost(l.best, limit, &terms)
		info := StageInfo{Limit: limit, Params: len(slots), Cost: cost}
		final := limit == n
		skip := len(slots) == 0 ||
			(!final && len(slots) == prevParams && l.o.SkipTolerance >= 0 && cost-prevCost <= l.o.SkipTolerance)
		if skip {
			info.Skipped = true
			l.log.Debug("stage skipped", "limit", limit, "params", len(slots), "cost", cost)
			l.stages = append(l.stages, info)
			prevParams, prevCost = len(slots), cost
			continue
		}
		run++
		err := l.stage(slots, limit, final, &info)
		if err != nil {
			failed++
			lastErr = err
			l.log.Warn("optimizer failed, keeping the best point so far", "limit", limit, "err", err)
		}
		l.log.Debug("stage done", "limit", limit, "params", info.Params, "evaluations", info.Evaluations, "cost", info.Cost, "status", info.Status)
		l.stages = append(l.stages, info)
		prevParams, prevCost = len(slots), info.Cost
	}
	l.revert(initial)
	l.log.Info("layout done", "nucleotides", n, "cost", l.Energy().Total(), "stages", len(l.stages))
	if run > 0 && failed == run {
		return Error{fmt.Sprintf("the optimizer failed in all %d stages, using the best point found", run), lastErr, []string{"Calc"}, false}
	}
	return nil
}

// revert replaces the best point with initial if the energy of the whole complex is
// lower there. It reports whether it did.
func (l *Layout) revert(initial []float64) bool {
	n := l.topo.Len()
	var t0, t1 Terms
	e0, e1 := l.cost(initial, n, &t0), l.cost(l.best, n, &t1)
	if e0 >= e1 {
		return false
	}
	l.log.Debug("the initial guess is better than the optimized layout", "initial", e0, "optimized", e1)
	copy(l.best, initial)
	return true
}

// stage runs CMA-ES on the parameters in slots, for the first limit nucleotides, starting
// from the current best point. best is only replaced by a point with a lower energy.
func (l *Layout) stage(slots []int, limit int, final bool, info *StageInfo) error {
	dim := len(slots)
	lower, upper := l.strategy.Bounds()
	sigma := l.strategy.Sigmas()
	x0 := make([]float64, dim)
	cov := mat.NewSymDense(dim, nil)
	maxSigma := 0.0
	for i, s := range slots {
		x0[i] = l.best[s]
		cov.SetSym(i, i, sigma[s]*sigma[s])
		maxSigma = math.Max(maxSigma, sigma[s])
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return Error{"initial covariance is not positive definite", nil, []string{"stage"}, false}
	}
	l.src.Seed(l.o.Seed)
	info.Population = l.population(dim)
	method := &optimize.CmaEsChol{
		InitStepSize: maxSigma,
		Population:   info.Population,
		InitCholesky: &chol,
		Src:          &l.src,
	}
	budget := l.o.MaxEvaluations
	stop := math.Inf(-1)
	if final {
		budget = l.o.FinalMaxEvaluations
		stop = l.o.StopFitness
	}
	copy(l.work, l.best)
	reached := false
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			var over float64
			for i, s := range slots {
				v, o := repair(x[i], lower[s], upper[s])
				l.work[s] = v
				over += o
			}
			terms := Terms{Bounds: l.o.BoundWeight * over}
			c := l.cost(l.work, limit, &terms)
			if math.IsNaN(c) {
				return math.Inf(1)
			}
			if c < stop {
				reached = true
			}
			return c
		},
		Status: func() (optimize.Status, error) {
			if reached {
				return optimize.FunctionThreshold, nil
			}
			return optimize.NotTerminated, nil
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: budget,
		Converger:       &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 100},
		Concurrent:      1,
	}
	res, err := minimize(problem, x0, settings, method)
	if res != nil {
		info.Evaluations = res.Stats.FuncEvaluations
		info.Status = res.Status.String()
		if !math.IsInf(res.F, 0) && !math.IsNaN(res.F) && len(res.X) == dim {
			copy(l.work, l.best)
			for i, s := range slots {
				l.work[s], _ = repair(res.X[i], lower[s], upper[s])
			}
			var tb, tw Terms
			if l.cost(l.work, limit, &tw) < l.cost(l.best, limit, &tb) {
				copy(l.best, l.work)
			}
		}
	}
	var t Terms
	info.Cost = l.cost(l.best, limit, &t)
	if err != nil {
		info.Err = err
		return Error{fmt.Sprintf("CMA-ES failed with %d nucleotides", limit), err, []string{"stage"}, false}
	}
	return nil
}
