/*
 * gocoords.go, part of sslayout.
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

package v2

import (
	"fmt"
	"math"
	"strings"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx2Matrix)
	}
	return r
}

// Len is the same as NVecs, so a Matrix can be used where something with a length is expected.
func (F *Matrix) Len() int {
	return F.NVecs()
}

// XY returns the coordinates of the ith vector.
func (F *Matrix) XY(i int) (float64, float64) {
	return F.At(i, 0), F.At(i, 1)
}

// SetXY sets the coordinates of the ith vector.
func (F *Matrix) SetXY(i int, x, y float64) {
	F.Set(i, 0, x)
	F.Set(i, 1, y)
}

// Dist returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Dist(i, j int) float64 {
	n := F.NVecs()
	if i >= n || j >= n || i < 0 || j < 0 {
		panic(ErrIndexOutOfRange)
	}
	dx := F.At(i, 0) - F.At(j, 0)
	dy := F.At(i, 1) - F.At(j, 1)
	return math.Hypot(dx, dy)
}

// Angle returns the angle, in radians, formed at the vector j by the vectors i and k.
// It returns 0 if any of the two arms has zero length.
func (F *Matrix) Angle(i, j, k int) float64 {
	ax := F.At(i, 0) - F.At(j, 0)
	ay := F.At(i, 1) - F.At(j, 1)
	bx := F.At(k, 0) - F.At(j, 0)
	by := F.At(k, 1) - F.At(j, 1)
	na := math.Hypot(ax, ay)
	nb := math.Hypot(bx, by)
	if na <= appzero || nb <= appzero {
		return 0
	}
	c := (ax*bx + ay*by) / (na * nb)
	//floating point noise can push the cosine slightly out of [-1,1]
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// AddVec adds the vector vec to each vector of A, putting the result on the receiver.
// Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	x, y := vec.At(0, 0), vec.At(0, 1)
	for i := 0; i < ar; i++ {
		F.Set(i, 0, A.At(i, 0)+x)
		F.Set(i, 1, A.At(i, 1)+y)
	}
}

// SubVec subtracts the vector vec from each vector of A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	x, y := vec.At(0, 0), vec.At(0, 1)
	for i := 0; i < ar; i++ {
		F.Set(i, 0, A.At(i, 0)-x)
		F.Set(i, 1, A.At(i, 1)-y)
	}
}

// Rotate puts in the receiver the vectors of A rotated by angle radians
// around the origin (counterclockwise).
func (F *Matrix) Rotate(A *Matrix, angle float64) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if ar != fr {
		panic(ErrShape)
	}
	s, c := math.Sincos(angle)
	for i := 0; i < ar; i++ {
		x, y := A.At(i, 0), A.At(i, 1)
		F.Set(i, 0, c*x-s*y)
		F.Set(i, 1, s*x+c*y)
	}
}

// Centroid returns the geometric center of the vectors in F.
func (F *Matrix) Centroid() (float64, float64) {
	n := F.NVecs()
	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += F.At(i, 0)
		sy += F.At(i, 1)
	}
	return sx / float64(n), sy / float64(n)
}

// Bounds returns the lowest and highest x and y values among the vectors of F.
func (F *Matrix) Bounds() (min, max [2]float64) {
	min = [2]float64{math.Inf(1), math.Inf(1)}
	max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for i := 0; i < F.NVecs(); i++ {
		for j := 0; j < cols; j++ {
			v := F.At(i, j)
			min[j] = math.Min(min[j], v)
			max[j] = math.Max(max[j], v)
		}
	}
	return min, max
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	for i := 0; i < r; i++ {
		x, y := F.XY(i)
		if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f", x, y)
			continue
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f\n", x, y)
	}
	return strings.Join(v, "")
}
