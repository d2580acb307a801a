/*
 * selection_test.go, part of trajio.
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

func TestParseIndices(t *testing.T) {
	got, err := ParseIndices("0-3, 7,12-13")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 7, 12, 13}, got)

	got, err = ParseIndices("5,1-2")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 1, 2}, got)

	for _, bad := range []string{"a", "1-b", "3-1", "-2", "1,1", "0-2,2"} {
		_, err := ParseIndices(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestRuns(t *testing.T) {
	assert.Equal(t, [][2]int{{3, 3}, {1, 2}}, Runs([]int{3, 4, 5, 1, 2}))
	assert.Equal(t, [][2]int{{0, 1}, {2, 1}, {4, 1}}, Runs([]int{0, 2, 4}))
	assert.Nil(t, Runs(nil))
}

func TestParseRange(t *testing.T) {
	U := Unbounded
	tests := []struct {
		in   string
		want [3]int
	}{
		{"", [3]int{U, U, U}},
		{"::", [3]int{U, U, U}},
		{"10:", [3]int{10, U, U}},
		{":-5", [3]int{U, -5, U}},
		{"::2", [3]int{U, U, 2}},
		{"1:9:3", [3]int{1, 9, 3}},
		{"4", [3]int{4, 5, 1}},
		{"-1", [3]int{-1, U, 1}},
		{"-3", [3]int{-3, -2, 1}},
	}
	for _, tc := range tests {
		start, stop, step, err := ParseRange(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, [3]int{start, stop, step}, tc.in)
	}
	for _, bad := range []string{"a:b", "1:2:3:4", "1.5:"} {
		_, _, _, err := ParseRange(bad)
		assert.ErrorIs(t, err, ErrInvalidRange, bad)
	}
}
