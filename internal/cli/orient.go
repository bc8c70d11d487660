/*
 * orient.go, part of sslayout.
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

package cli

import (
	"math"

	v2 "github.com/rmera/sslayout/v2"
	"github.com/spf13/cobra"
)

// orientation changes where a layout is drawn, without changing its shape.
type orientation struct {
	center  bool
	degrees float64
}

func (o *orientation) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.center, "center", false, "move the center of the layout to the origin")
	cmd.Flags().Float64Var(&o.degrees, "rotate", 0, "rotate the layout counterclockwise around its center, in degrees")
}

// apply returns a copy of c, rotated around its centroid and, if requested, centered.
// c is not modified.
func (o orientation) apply(c *v2.Matrix) *v2.Matrix {
	ret := v2.Zeros(c.NVecs())
	ret.Copy(c)
	if !o.center && o.degrees == 0 {
		return ret
	}
	cx, cy := c.Centroid()
	ctr, _ := v2.NewMatrix([]float64{cx, cy})
	ret.SubVec(ret, ctr)
	if o.degrees != 0 {
		ret.Rotate(ret, o.degrees*math.Pi/180)
	}
	if !o.center {
		ret.AddVec(ret, ctr)
	}
	return ret
}
