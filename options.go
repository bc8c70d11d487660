/*
 * options.go, part of sslayout.
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
)

// The available parameterizations of the layout.
const (
	StrategyAngle = "angle" //free turn angles and bond lengths
	StrategyXY    = "xy"    //raw displacement of each step
)

// Options contains the parameters of a layout calculation. All distances are in
// units of the distance between consecutive nucleotides, unless SeqDistance is changed.
type Options struct {
	SeqDistance   float64 `toml:"seq_distance"`   //target distance between consecutive nucleotides.
	PairDistance  float64 `toml:"pair_distance"`  //target distance between paired nucleotides.
	NBDistance    float64 `toml:"nb_distance"`    //non-interacting nucleotides closer than this clash.
	BulgeDistance float64 `toml:"bulge_distance"` //bond length in 2-nucleotide bulges.
	BreakDistance float64 `toml:"break_distance"` //target length of the pseudo-bond between two strands.

	Strategy   string  `toml:"strategy"`    //StrategyAngle or StrategyXY
	SinCos     bool    `toml:"sincos"`      //encode free angles as a (cos,sin) pair. Only for StrategyAngle.
	AngleBound float64 `toml:"angle_bound"` //free angles are bound to target±AngleBound (radians).

	//Energy weights.
	AbsolutePairError bool    `toml:"absolute_pair_error"` //use PairWeight*|d-d0| instead of (d-d0)^2 for pairs.
	PairWeight        float64 `toml:"pair_weight"`
	ClashWeight       float64 `toml:"clash_weight"`
	CrossWeight       float64 `toml:"cross_weight"` //penalty per pair of crossing backbone segments.
	BoundWeight       float64 `toml:"bound_weight"` //penalty for parameters outside their bounds.
	SeqWeight         float64 `toml:"seq_weight"`   //only StrategyXY
	SharpWeight       float64 `toml:"sharp_weight"` //only StrategyXY
	SharpCos          float64 `toml:"sharp_cos"`    //only StrategyXY. Turns with an inner-angle cosine above this are penalized.

	//Staged optimization.
	InitialLimit        int     `toml:"initial_limit"` //number of nucleotides placed in the first stage.
	LimitStep           int     `toml:"limit_step"`
	LambdaMul           int     `toml:"lambda_mul"` //multiplies the default CMA-ES population.
	MaxEvaluations      int     `toml:"max_evaluations"`
	FinalMaxEvaluations int     `toml:"final_max_evaluations"`
	StopFitness         float64 `toml:"stop_fitness"` //the final stage stops when the cost goes below this.
	SkipTolerance       float64 `toml:"skip_tolerance"` //negative to never skip stages.
	Seed                uint64  `toml:"seed"`

	Logger *log.Logger `toml:"-"` //If nil, log.Default() is used.
}

// DefaultOptions returns reasonable options for RNA layouts.
func DefaultOptions() *Options {
	r := new(Options)
	r.SeqDistance = 1.0
	r.PairDistance = 1.0
	r.NBDistance = 1.5
	r.BulgeDistance = 0.8
	r.BreakDistance = 1.5
	r.Strategy = StrategyAngle
	r.AngleBound = math.Pi / 3.5
	r.PairWeight = 50
	r.ClashWeight = 1
	r.CrossWeight = 100
	r.BoundWeight = 1000
	r.SeqWeight = 10
	r.SharpWeight = 10
	r.SharpCos = 0.1
	r.InitialLimit = 6
	r.LimitStep = 2
	r.LambdaMul = 1
	r.MaxEvaluations = 5000
	r.FinalMaxEvaluations = 50000
	r.StopFitness = 1e-6
	r.SkipTolerance = 1e-3
	r.Seed = 1
	return r
}

// Validate returns an error if some value in o doesn't make sense.
func (o *Options) Validate() error {
	var problem string
	switch {
	case o.SeqDistance <= 0 || o.PairDistance <= 0 || o.NBDistance < 0:
		problem = "distances must be positive"
	case o.BulgeDistance <= 0 || o.BreakDistance <= 0:
		problem = "bulge and break distances must be positive"
	case o.Strategy != StrategyAngle && o.Strategy != StrategyXY:
		problem = fmt.Sprintf("unknown strategy %q", o.Strategy)
	case o.AngleBound <= 0 || o.AngleBound > math.Pi:
		problem = "angle bound must be in (0,π]"
	case o.PairWeight < 0 || o.ClashWeight < 0 || o.CrossWeight < 0 || o.BoundWeight < 0 || o.SeqWeight < 0 || o.SharpWeight < 0:
		problem = "weights can't be negative"
	case o.InitialLimit < 3:
		problem = "the initial limit must be at least 3"
	case o.LimitStep < 1:
		problem = "the limit step must be at least 1"
	case o.LambdaMul < 1:
		problem = "the population multiplier must be at least 1"
	case o.MaxEvaluations < 1 || o.FinalMaxEvaluations < 1:
		problem = "evaluation budgets must be positive"
	}
	if problem != "" {
		return Error{problem, ErrOptions, []string{"Validate"}, true}
	}
	return nil
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// stackedDistance is the target distance for the diagonal of two stacked pairs.
func (o *Options) stackedDistance() float64 {
	return math.Hypot(o.SeqDistance, o.PairDistance)
}
