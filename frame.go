/*
 * frame.go, part of trajio.
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

	"gonum.org/v1/gonum/mat"
)

// Frame is one snapshot of a trajectory: the cartesian coordinates of every atom, stored
// per axis the way binary trajectories keep them, plus the unit cell when the trajectory
// is periodic.
type Frame struct {
	//Index is the position of the frame in its trajectory. It is assigned by the
	//reader and never stored on disk.
	Index int
	X     []float32
	Y     []float32
	Z     []float32
	Cell  *UnitCell //nil for non-periodic trajectories
}

// NewFrame returns a zeroed frame for natoms atoms, with a unit cell if periodic is true.
func NewFrame(natoms int, periodic bool) *Frame {
	F := &Frame{
		X: make([]float32, natoms),
		Y: make([]float32, natoms),
		Z: make([]float32, natoms),
	}
	if periodic {
		F.Cell = new(UnitCell)
	}
	return F
}

// Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return len(F.X)
}

// Axis returns the coordinate buffer for axis 0 (x), 1 (y) or 2 (z).
func (F *Frame) Axis(i int) []float32 {
	switch i {
	case 0:
		return F.X
	case 1:
		return F.Y
	case 2:
		return F.Z
	}
	panic(fmt.Sprintf("trajio: axis %d out of range", i))
}

// Atom returns the coordinates of the ith atom.
func (F *Frame) Atom(i int) [3]float64 {
	return [3]float64{float64(F.X[i]), float64(F.Y[i]), float64(F.Z[i])}
}

// Copy returns a deep copy of F.
func (F *Frame) Copy() *Frame {
	ret := NewFrame(F.Len(), F.Cell != nil)
	F.CopyTo(ret)
	return ret
}

// CopyTo copies F into dst, growing dst's buffers if they are too short.
func (F *Frame) CopyTo(dst *Frame) {
	n := F.Len()
	if cap(dst.X) < n || cap(dst.Y) < n || cap(dst.Z) < n {
		dst.X = make([]float32, n)
		dst.Y = make([]float32, n)
		dst.Z = make([]float32, n)
	}
	dst.X = dst.X[:n]
	dst.Y = dst.Y[:n]
	dst.Z = dst.Z[:n]
	copy(dst.X, F.X)
	copy(dst.Y, F.Y)
	copy(dst.Z, F.Z)
	dst.Index = F.Index
	if F.Cell == nil {
		dst.Cell = nil
		return
	}
	if dst.Cell == nil {
		dst.Cell = new(UnitCell)
	}
	*dst.Cell = *F.Cell
}

// Dense puts the coordinates of F in a natoms x 3 matrix. If dst is nil a new
// matrix is allocated. It panics if dst has the wrong dimensions.
func (F *Frame) Dense(dst *mat.Dense) *mat.Dense {
	n := F.Len()
	if dst == nil {
		dst = mat.NewDense(n, 3, nil)
	}
	if r, c := dst.Dims(); r != n || c != 3 {
		panic(fmt.Sprintf("trajio: matrix is %dx%d, frame needs %dx3", r, c, n))
	}
	for i := 0; i < n; i++ {
		dst.Set(i, 0, float64(F.X[i]))
		dst.Set(i, 1, float64(F.Y[i]))
		dst.Set(i, 2, float64(F.Z[i]))
	}
	return dst
}

// SetDense fills F from a natoms x 3 matrix.
func (F *Frame) SetDense(A mat.Matrix) error {
	r, c := A.Dims()
	if r != F.Len() || c != 3 {
		return fmt.Errorf("matrix is %dx%d, frame has %d atoms: %w", r, c, F.Len(), ErrAtomCountMismatch)
	}
	for i := 0; i < r; i++ {
		F.X[i] = float32(A.At(i, 0))
		F.Y[i] = float32(A.At(i, 1))
		F.Z[i] = float32(A.At(i, 2))
	}
	return nil
}
