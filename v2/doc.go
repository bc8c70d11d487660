/*
 * doc.go, part of sslayout.
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
Package v2 implements a Matrix type representing a row-major 2D matrix (i.e. a Nx2 matrix).
The v2.Matrix is used to represent the planar coordinates of the nucleotides of a layout.
It is based on gonum's Dense type, with some additional restrictions because of the fixed
number of columns. Since the matrix is row-major and has exactly 2 columns, its raw data
is the interleaved (x0,y0,x1,y1,...) buffer that the layout engine writes on every evaluation.
*/
package v2
