/*
 * frame_test.go, part of trajio.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFrameCopy(t *testing.T) {
	F := NewFrame(3, true)
	assert.Equal(t, 3, F.Len())
	require.NotNil(t, F.Cell)
	F.Index = 4
	F.X[1], F.Y[1], F.Z[1] = 1, 2, 3
	*F.Cell = NewUnitCell(10, 20, 30, 90, 90, 90)

	C := F.Copy()
	assert.Equal(t, F, C)
	C.X[1] = 100
	C.Cell[0] = 1
	assert.Equal(t, float32(1), F.X[1])
	assert.Equal(t, 10.0, F.Cell[0])
	assert.Equal(t, [3]float64{1, 2, 3}, F.Atom(1))

	//CopyTo drops the cell of a non periodic frame
	P := NewFrame(3, false)
	D := NewFrame(1, true)
	P.CopyTo(D)
	assert.Nil(t, D.Cell)
	assert.Equal(t, 3, D.Len())
}

func TestFrameAxis(t *testing.T) {
	F := NewFrame(2, false)
	F.Axis(2)[0] = 5
	assert.Equal(t, float32(5), F.Z[0])
	assert.Panics(t, func() { F.Axis(3) })
}

func TestFrameDense(t *testing.T) {
	F := NewFrame(2, false)
	M := mat.NewDense(2, 3, []float64{1, 2, 3, 4.5, 5.5, 6.5})
	require.NoError(t, F.SetDense(M))
	assert.Equal(t, []float32{1, 4.5}, F.X)
	assert.True(t, mat.Equal(M, F.Dense(nil)))

	dst := mat.NewDense(2, 3, nil)
	F.Dense(dst)
	assert.True(t, mat.Equal(M, dst))
	assert.Panics(t, func() { F.Dense(mat.NewDense(3, 3, nil)) })
	assert.ErrorIs(t, F.SetDense(mat.NewDense(3, 3, nil)), ErrAtomCountMismatch)
}
