/*
 * timeseries_test.go, part of trajio.
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
)

func TestNewTimeseries(t *testing.T) {
	shapes := map[string][3]int{
		"afc": {2, 5, 3},
		"acf": {2, 3, 5},
		"caf": {3, 2, 5},
		"cfa": {3, 5, 2},
		"fac": {5, 2, 3},
		"fca": {5, 3, 2},
	}
	for _, format := range Formats {
		T, err := NewTimeseries(2, 5, format)
		require.NoError(t, err)
		assert.Equal(t, shapes[format], T.Shape, format)
		assert.Len(t, T.Data, 30)
		assert.Equal(t, 2, T.Atoms())
		assert.Equal(t, 5, T.Frames())
	}
	_, err := NewTimeseries(2, 5, "abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = NewTimeseries(0, 5, "fac")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewTimeseries(1, -1, "fac")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTimeseriesLayout(t *testing.T) {
	T, err := NewTimeseries(2, 3, "fac")
	require.NoError(t, err)
	T.Set(1, 2, 0, 7)
	//row major: frame 2, atom 1, x
	assert.Equal(t, 7.0, T.Data[2*6+1*3+0])
	M := T.Matrix(2)
	assert.Equal(t, 7.0, M.At(1, 0))
	M.Set(0, 2, 9)
	assert.Equal(t, 9.0, T.At(0, 2, 2))
	assert.Panics(t, func() { T.Matrix(3) })
}

func TestTimeseriesReorder(t *testing.T) {
	T, err := NewTimeseries(3, 4, "afc")
	require.NoError(t, err)
	for a := 0; a < 3; a++ {
		for f := 0; f < 4; f++ {
			for c := 0; c < 3; c++ {
				T.Set(a, f, c, float64(100*a+10*f+c))
			}
		}
	}
	for _, format := range Formats {
		R, err := T.Reorder(format)
		require.NoError(t, err)
		assert.Equal(t, format, R.Format)
		for a := 0; a < 3; a++ {
			for f := 0; f < 4; f++ {
				for c := 0; c < 3; c++ {
					assert.Equal(t, T.At(a, f, c), R.At(a, f, c))
				}
			}
		}
	}
	cfa, err := T.Reorder("cfa")
	require.NoError(t, err)
	assert.Equal(t, 112.0, cfa.Data[2*12+1*3+1])
}
