/*
 * index_test.go, part of trajio.
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

package dcd

import (
	"testing"

	"github.com/rmera/trajio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpTo(t *testing.T) {
	path := writeTestTraj(t, "jump.dcd", 4, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()

	for _, i := range []int{7, 0, 9, 3, 3} {
		F, err := R.JumpTo(i)
		require.NoError(t, err)
		checkFrame(t, F, i)
		assert.Equal(t, i, R.Index())
	}
	F, err := R.JumpTo(-1)
	require.NoError(t, err)
	checkFrame(t, F, 9)
	F, err = R.JumpTo(-10)
	require.NoError(t, err)
	checkFrame(t, F, 0)

	for _, i := range []int{10, -11, 100} {
		_, err = R.JumpTo(i)
		assert.ErrorIs(t, err, trajio.ErrFrameOutOfRange, "frame %d", i)
	}
}

func TestJumpToThenAdvance(t *testing.T) {
	path := writeTestTraj(t, "jumpadv.dcd", 4, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	_, err = R.JumpTo(4)
	require.NoError(t, err)
	i, err := R.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 5, i)
	checkFrame(t, R.Frame(), 5)

	//random access after exhaustion brings the reader back
	_, err = R.JumpTo(9)
	require.NoError(t, err)
	_, err = R.Advance(1)
	require.True(t, trajio.IsLastFrame(err))
	F, err := R.JumpTo(2)
	require.NoError(t, err)
	checkFrame(t, F, 2)
	i, err = R.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestJumpToMatchesSequential(t *testing.T) {
	path := writeTestTraj(t, "jumpseq.dcd", 6, 8)
	seq, err := Open(path)
	require.NoError(t, err)
	defer seq.Close()
	rnd, err := Open(path)
	require.NoError(t, err)
	defer rnd.Close()
	for i := 0; ; i++ {
		F, err := rnd.JumpTo(i)
		require.NoError(t, err)
		assert.Equal(t, seq.Frame(), F)
		if _, err := seq.Advance(1); err != nil {
			require.True(t, trajio.IsLastFrame(err))
			assert.Equal(t, 7, i)
			break
		}
	}
}

func iterIndexes(t *testing.T, it *FrameIter) []int {
	t.Helper()
	ret := []int{}
	for it.Next() {
		checkFrame(t, it.Frame(), it.Index())
		ret = append(ret, it.Index())
	}
	require.NoError(t, it.Err())
	return ret
}

func TestRange(t *testing.T) {
	path := writeTestTraj(t, "range.dcd", 3, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	U := trajio.Unbounded

	tests := []struct {
		name              string
		start, stop, step int
		want              []int
	}{
		{"everything", U, U, U, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"last five", -5, U, 1, []int{5, 6, 7, 8, 9}},
		{"strided", 0, 10, 3, []int{0, 3, 6, 9}},
		{"negative stop", 1, -1, 2, []int{1, 3, 5, 7}},
		{"empty", 4, 4, 1, []int{}},
		{"empty at the end", 10, U, 1, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it, err := R.Range(tc.start, tc.stop, tc.step)
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), it.Len())
			assert.Equal(t, tc.want, iterIndexes(t, it))
			//restartable
			it.Reset()
			assert.Equal(t, -1, it.Index())
			assert.Equal(t, tc.want, iterIndexes(t, it))
		})
	}
}

func TestRangeInvalid(t *testing.T) {
	path := writeTestTraj(t, "badrange.dcd", 3, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	U := trajio.Unbounded
	for _, r := range [][3]int{
		{0, 10, 0},
		{0, 10, -1},
		{5, 2, 1},
		{0, 11, 1},
		{-11, U, 1},
		{11, U, 1},
		{U, -12, 1},
	} {
		_, err := R.Range(r[0], r[1], r[2])
		assert.ErrorIs(t, err, trajio.ErrInvalidRange, "range %v", r)
	}
}

func TestRangeKeepsFrames(t *testing.T) {
	path := writeTestTraj(t, "keep.dcd", 3, 4)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	it, err := R.Range(trajio.Unbounded, trajio.Unbounded, 1)
	require.NoError(t, err)
	var frames []*trajio.Frame
	for it.Next() {
		frames = append(frames, it.Frame())
	}
	require.Len(t, frames, 4)
	for i, F := range frames {
		checkFrame(t, F, i)
	}
}

func TestRangeBounds(t *testing.T) {
	path := writeTestTraj(t, "bounds.dcd", 3, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	it, err := R.Range(-4, trajio.Unbounded, 2)
	require.NoError(t, err)
	start, stop, step := it.Bounds()
	assert.Equal(t, [3]int{6, 10, 2}, [3]int{start, stop, step})
	assert.Equal(t, 2, it.Len())
}
