/*
 * cell.go, part of trajio.
 *
 * Copyright 2024 The trajio Authors
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

package trajio

import "math"

// UnitCell holds the periodic box of a frame in the order CHARMM stores it on disk:
// A, gamma, B, beta, alpha, C. Angles are either in degrees or, as newer CHARMM and
// NAMD versions write them, as cosines.
type UnitCell [6]float64

// NewUnitCell builds a cell from the box lengths and angles (in degrees).
func NewUnitCell(a, b, c, alpha, beta, gamma float64) UnitCell {
	return UnitCell{a, gamma, b, beta, alpha, c}
}

// Lengths returns the box lengths a, b and c.
func (U UnitCell) Lengths() [3]float64 {
	return [3]float64{U[0], U[2], U[5]}
}

// Angles returns alpha, beta and gamma in degrees. If all three stored values lie in
// [-1,1] they are taken to be cosines.
func (U UnitCell) Angles() [3]float64 {
	ang := [3]float64{U[4], U[3], U[1]}
	if !U.cosines() {
		return ang
	}
	for i, v := range ang {
		ang[i] = math.Acos(v) * 180 / math.Pi
	}
	return ang
}

// Dimensions returns a, b, c, alpha, beta, gamma, the usual crystallographic order.
func (U UnitCell) Dimensions() [6]float64 {
	l := U.Lengths()
	a := U.Angles()
	return [6]float64{l[0], l[1], l[2], a[0], a[1], a[2]}
}

func (U UnitCell) cosines() bool {
	for _, v := range []float64{U[1], U[3], U[4]} {
		if math.Abs(v) > 1 {
			return false
		}
	}
	//an all-zero cell means "no box", not three right angles.
	return U[1] != 0 || U[3] != 0 || U[4] != 0
}
