/*
 * observables.go, part of trajio.
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

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Observable is a quantity computed, for each frame, from the positions of a few atoms.
// Correlation queries read only the atoms observables ask for, and put each observable's
// Size() values per frame in consecutive rows of their output.
type Observable interface {
	//Atoms returns the 0-based indexes of the atoms the observable needs.
	Atoms() []int

	//Size is the number of values computed per frame.
	Size() int

	//Compute gets the positions of the atoms returned by Atoms, in the same
	//order, and puts Size() values in dst.
	Compute(pos []r3.Vec, dst []float64)
}

// Position is the x, y and z coordinates of one atom.
type Position int

func (P Position) Atoms() []int { return []int{int(P)} }
func (P Position) Size() int    { return 3 }
func (P Position) Compute(pos []r3.Vec, dst []float64) {
	dst[0], dst[1], dst[2] = pos[0].X, pos[0].Y, pos[0].Z
}

// Distance is the distance between two atoms.
type Distance [2]int

func (D Distance) Atoms() []int { return D[:] }
func (D Distance) Size() int    { return 1 }
func (D Distance) Compute(pos []r3.Vec, dst []float64) {
	dst[0] = r3.Norm(r3.Sub(pos[1], pos[0]))
}

// Angle is the angle, in degrees, formed by three atoms, with the second one in the vertex.
type Angle [3]int

func (A Angle) Atoms() []int { return A[:] }
func (A Angle) Size() int    { return 1 }
func (A Angle) Compute(pos []r3.Vec, dst []float64) {
	u := r3.Sub(pos[0], pos[1])
	v := r3.Sub(pos[2], pos[1])
	c := r3.Cos(u, v)
	//rounding can take c slightly outside [-1,1]
	c = math.Max(-1, math.Min(1, c))
	dst[0] = math.Acos(c) * 180 / math.Pi
}

// Dihedral is the dihedral angle, in degrees and in (-180,180], defined by four atoms.
type Dihedral [4]int

func (D Dihedral) Atoms() []int { return D[:] }
func (D Dihedral) Size() int    { return 1 }
func (D Dihedral) Compute(pos []r3.Vec, dst []float64) {
	b1 := r3.Sub(pos[1], pos[0])
	b2 := r3.Sub(pos[2], pos[1])
	b3 := r3.Sub(pos[3], pos[2])
	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)
	x := r3.Dot(n1, n2)
	y := r3.Norm(b2) * r3.Dot(b1, n2)
	dst[0] = math.Atan2(y, x) * 180 / math.Pi
}

// Centroid is the geometric center of a group of atoms.
type Centroid []int

func (C Centroid) Atoms() []int { return C }
func (C Centroid) Size() int    { return 3 }
func (C Centroid) Compute(pos []r3.Vec, dst []float64) {
	var c r3.Vec
	for _, p := range pos {
		c = r3.Add(c, p)
	}
	c = r3.Scale(1/float64(len(pos)), c)
	dst[0], dst[1], dst[2] = c.X, c.Y, c.Z
}

// ParseObservable builds an observable from its name followed by its atoms, for instance
// "distance 0 5", "angle 1 2 3", "dihedral 4 6 8 14", "position 7" or "centroid 0-9,12".
// Atom indexes are 0-based.
func ParseObservable(s string) (Observable, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil, fmt.Errorf("bad observable %q: %w", s, ErrInvalidArgument)
	}
	atoms, err := ParseIndices(strings.Join(fields[1:], ","))
	if err != nil {
		return nil, fmt.Errorf("bad observable %q: %w", s, err)
	}
	want := map[string]int{"position": 1, "distance": 2, "angle": 3, "dihedral": 4}
	name := strings.ToLower(fields[0])
	if n, ok := want[name]; ok && len(atoms) != n {
		return nil, fmt.Errorf("%s needs %d atoms, got %d: %w", name, n, len(atoms), ErrInvalidArgument)
	}
	switch name {
	case "position":
		return Position(atoms[0]), nil
	case "distance":
		return Distance{atoms[0], atoms[1]}, nil
	case "angle":
		return Angle{atoms[0], atoms[1], atoms[2]}, nil
	case "dihedral":
		return Dihedral{atoms[0], atoms[1], atoms[2], atoms[3]}, nil
	case "centroid":
		if len(atoms) == 0 {
			return nil, fmt.Errorf("centroid of no atoms: %w", ErrEmptySelection)
		}
		return Centroid(atoms), nil
	}
	return nil, fmt.Errorf("unknown observable %q: %w", fields[0], ErrInvalidArgument)
}
