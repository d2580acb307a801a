/*
 * timeseries.go, part of trajio.
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

	"gonum.org/v1/gonum/mat"
)

// Unbounded can be given instead of a start, stop or step value to Range and Timeseries
// calls, where it means "from the first frame", "up to the last frame" or "every frame",
// respectively.
const Unbounded = math.MinInt

// Formats lists the valid axis orders for a Timeseries: every permutation of
// (a)tom, (f)rame and (c)oordinate.
var Formats = []string{"afc", "acf", "caf", "cfa", "fac", "fca"}

// CheckFormat returns an error wrapping ErrInvalidFormat unless format is one of Formats.
func CheckFormat(format string) error {
	for _, v := range Formats {
		if v == format {
			return nil
		}
	}
	return fmt.Errorf("format %q is not one of %v: %w", format, Formats, ErrInvalidFormat)
}

// Timeseries is a dense, row-major 3D array holding coordinates of a group of atoms over
// a group of frames. The order of the three dimensions is given by Format, so
// a "fac" Timeseries has Shape {frames, atoms, 3}.
type Timeseries struct {
	Format string
	Shape  [3]int
	Data   []float64
	stride [3]int //strides for the atom, frame and coordinate indexes, in that order.
}

// NewTimeseries allocates a zeroed timeseries for the given number of atoms and frames.
func NewTimeseries(atoms, frames int, format string) (*Timeseries, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	if atoms <= 0 || frames < 0 {
		return nil, fmt.Errorf("timeseries with %d atoms and %d frames: %w", atoms, frames, ErrInvalidArgument)
	}
	T := &Timeseries{Format: format}
	size := map[byte]int{'a': atoms, 'f': frames, 'c': 3}
	for i := 0; i < 3; i++ {
		T.Shape[i] = size[format[i]]
	}
	s := 1
	for i := 2; i >= 0; i-- {
		switch format[i] {
		case 'a':
			T.stride[0] = s
		case 'f':
			T.stride[1] = s
		case 'c':
			T.stride[2] = s
		}
		s *= T.Shape[i]
	}
	T.Data = make([]float64, s)
	return T, nil
}

// Atoms returns the number of atoms in the timeseries.
func (T *Timeseries) Atoms() int { return T.Shape[T.dim('a')] }

// Frames returns the number of frames in the timeseries.
func (T *Timeseries) Frames() int { return T.Shape[T.dim('f')] }

func (T *Timeseries) dim(b byte) int {
	for i := 0; i < 3; i++ {
		if T.Format[i] == b {
			return i
		}
	}
	panic("trajio: malformed timeseries format " + T.Format)
}

func (T *Timeseries) index(atom, frame, coord int) int {
	return atom*T.stride[0] + frame*T.stride[1] + coord*T.stride[2]
}

// At returns the coord coordinate of atom in frame, whatever the storage order is.
// atom and frame are positions within the timeseries, not in the trajectory.
func (T *Timeseries) At(atom, frame, coord int) float64 {
	return T.Data[T.index(atom, frame, coord)]
}

// Set sets the coord coordinate of atom in frame.
func (T *Timeseries) Set(atom, frame, coord int, v float64) {
	T.Data[T.index(atom, frame, coord)] = v
}

// Matrix returns a view of the ith slab along the first dimension, as a
// Shape[1] x Shape[2] matrix. For a "fac" timeseries, Matrix(i) holds the
// coordinates of all atoms in the ith frame. Changes to the matrix are
// reflected in T.
func (T *Timeseries) Matrix(i int) *mat.Dense {
	r, c := T.Shape[1], T.Shape[2]
	if i < 0 || i >= T.Shape[0] {
		panic(fmt.Sprintf("trajio: slab %d out of range [0,%d)", i, T.Shape[0]))
	}
	return mat.NewDense(r, c, T.Data[i*r*c:(i+1)*r*c])
}

// Reorder returns a copy of T stored in a different axis order.
func (T *Timeseries) Reorder(format string) (*Timeseries, error) {
	ret, err := NewTimeseries(T.Atoms(), T.Frames(), format)
	if err != nil {
		return nil, err
	}
	for a := 0; a < T.Atoms(); a++ {
		for f := 0; f < T.Frames(); f++ {
			for c := 0; c < 3; c++ {
				ret.Set(a, f, c, T.At(a, f, c))
			}
		}
	}
	return ret, nil
}
