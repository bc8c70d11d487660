/*
 * gonum.go, part of sslayout.
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

//gonum.go contains what is needed for handling the gonum/mat types.

package v2

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const cols int = 2

// Matrix is a set of vectors in 2D space. Within the package it is understood
// that a "vector" is a row vector, i.e. the cartesian coordinates of a point
// in the plane.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 2 columns from data.
// data is not copied, so the Matrix and the slice share storage.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d or empty", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 2 in the other dimension.
func Zeros(vecs int) *Matrix {
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// View returns a view of F starting from the ith vector and spanning
// r vectors. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, cols).(*mat.Dense)
	return &Matrix{ret}
}

// RawData returns the interleaved x,y data underlying the Matrix.
// For views, only the rows spanned by the view are returned.
func (F *Matrix) RawData() []float64 {
	raw := F.RawMatrix()
	n := raw.Rows * raw.Stride
	return raw.Data[:n]
}

// Copy wraps mat.Dense.Copy so Matrix values can be given directly.
func (F *Matrix) Copy(A mat.Matrix) {
	if A, ok := A.(*Matrix); ok {
		F.Dense.Copy(A.Dense)
		return
	}
	F.Dense.Copy(A)
}

//Errors

// Error is the error type for the v2 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
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

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx2Matrix    = PanicMsg("sslayout/v2: A Matrix should have 2 columns")
	ErrShape           = PanicMsg("sslayout/v2: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("sslayout/v2: index out of range")
)
