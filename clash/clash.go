/*
 * clash.go, part of sslayout.
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

// Package clash contains the planar geometric predicates used to detect
// overlapping nucleotides and crossing backbone segments in a layout.
package clash

import (
	"math"

	v2 "github.com/rmera/sslayout/v2"
)

const eps = 1e-12

// orient returns the sign of the cross product (b-a)x(c-a): 1 for a counterclockwise
// turn, -1 for clockwise and 0 for collinear points.
func orient(ax, ay, bx, by, cx, cy float64) int {
	v := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	}
	return 0
}

// onSegment assumes that p is collinear with a-b and tells whether it lies within the segment.
func onSegment(ax, ay, bx, by, px, py float64) bool {
	return math.Min(ax, bx)-eps <= px && px <= math.Max(ax, bx)+eps &&
		math.Min(ay, by)-eps <= py && py <= math.Max(ay, by)+eps
}

// Intersects returns true if the segment (x1,y1)-(x2,y2) and the segment
// (x3,y3)-(x4,y4) have at least one point in common. Touching and collinear
// overlapping segments count as intersecting.
func Intersects(x1, y1, x2, y2, x3, y3, x4, y4 float64) bool {
	//quick rejection on the bounding boxes
	if math.Max(x1, x2) < math.Min(x3, x4) || math.Max(x3, x4) < math.Min(x1, x2) ||
		math.Max(y1, y2) < math.Min(y3, y4) || math.Max(y3, y4) < math.Min(y1, y2) {
		return false
	}
	o1 := orient(x1, y1, x2, y2, x3, y3)
	o2 := orient(x1, y1, x2, y2, x4, y4)
	o3 := orient(x3, y3, x4, y4, x1, y1)
	o4 := orient(x3, y3, x4, y4, x2, y2)
	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == 0 && onSegment(x1, y1, x2, y2, x3, y3):
		return true
	case o2 == 0 && onSegment(x1, y1, x2, y2, x4, y4):
		return true
	case o3 == 0 && onSegment(x3, y3, x4, y4, x1, y1):
		return true
	case o4 == 0 && onSegment(x3, y3, x4, y4, x2, y2):
		return true
	}
	return false
}

// SegmentsIntersect tells whether the segment between the vectors i and i+1 of coord
// intersects the segment between the vectors j and j+1.
func SegmentsIntersect(coord *v2.Matrix, i, j int) bool {
	x1, y1 := coord.XY(i)
	x2, y2 := coord.XY(i + 1)
	x3, y3 := coord.XY(j)
	x4, y4 := coord.XY(j + 1)
	return Intersects(x1, y1, x2, y2, x3, y3, x4, y4)
}

// Crossings returns the pairs of non-adjacent segments (i,i+1),(j,j+1), with i<j and
// j+1 < limit, that intersect each other. Segments for which skip returns true are
// not considered. skip can be nil.
func Crossings(coord *v2.Matrix, limit int, skip func(segment int) bool) [][2]int {
	var ret [][2]int
	if limit > coord.NVecs() {
		limit = coord.NVecs()
	}
	for i := 0; i < limit-1; i++ {
		if skip != nil && skip(i) {
			continue
		}
		for j := i + 2; j < limit-1; j++ {
			if skip != nil && skip(j) {
				continue
			}
			if SegmentsIntersect(coord, i, j) {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	return ret
}

// Clashes returns the pairs of vectors i<j, j>i+1, closer than mindist, for which
// ignore (which can be nil) returns false. Only the first limit vectors are considered.
// Pairs are first filtered by their distance along each axis, so only a few
// distances are actually computed.
func Clashes(coord *v2.Matrix, limit int, mindist float64, ignore func(i, j int) bool) [][2]int {
	var ret [][2]int
	if limit > coord.NVecs() {
		limit = coord.NVecs()
	}
	raw := coord.RawData()
	for i := 0; i < limit; i++ {
		xi, yi := raw[2*i], raw[2*i+1]
		for j := i + 2; j < limit; j++ {
			dx := math.Abs(raw[2*j] - xi)
			dy := math.Abs(raw[2*j+1] - yi)
			if dx >= mindist || dy >= mindist {
				continue
			}
			if ignore != nil && ignore(i, j) {
				continue
			}
			if math.Hypot(dx, dy) < mindist {
				ret = append(ret, [2]int{i, j})
			}
		}
	}
	return ret
}

// LowestDist returns the lowest distance between a vector in test and one in clash,
// and the indexes of the two vectors.
func LowestDist(test, clash *v2.Matrix) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	for i := 0; i < test.NVecs(); i++ {
		xi, yi := test.XY(i)
		for j := 0; j < clash.NVecs(); j++ {
			xj, yj := clash.XY(j)
			dt := math.Hypot(xi-xj, yi-yj)
			if dt < dist {
				dist = dt
				indexes[0] = i
				indexes[1] = j
			}
		}
	}
	return
}
