/*
 * reader_test.go, part of trajio.
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
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/trajio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//coord gives the value stored for an atom in the test trajectories. All the values are
//exactly representable as float32.
func coord(frame, atom, axis int) float32 {
	switch axis {
	case 0:
		return float32(frame*100+atom) + 0.25
	case 1:
		return -float32(frame*100 + atom)
	}
	return float32(atom) * 0.5
}

func testCell(frame int) trajio.UnitCell {
	return trajio.NewUnitCell(10+float64(frame), 20, 30, 90, 90, 90)
}

//writeTestTraj writes a trajectory with natoms atoms and nframes frames to a temporary
//directory and returns its path.
func writeTestTraj(t *testing.T, name string, natoms, nframes int, opts ...Option) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	W, err := NewWriter(path, natoms, opts...)
	require.NoError(t, err)
	x := make([]float32, natoms)
	y := make([]float32, natoms)
	z := make([]float32, natoms)
	for f := 0; f < nframes; f++ {
		for a := 0; a < natoms; a++ {
			x[a], y[a], z[a] = coord(f, a, 0), coord(f, a, 1), coord(f, a, 2)
		}
		var cell *trajio.UnitCell
		if W.Header().Periodic {
			c := testCell(f)
			cell = &c
		}
		require.NoError(t, W.WriteFrame(x, y, z, cell))
	}
	require.NoError(t, W.Close())
	return path
}

func checkFrame(t *testing.T, F *trajio.Frame, frame int) {
	t.Helper()
	require.NotNil(t, F)
	assert.Equal(t, frame, F.Index)
	for a := 0; a < F.Len(); a++ {
		for axis := 0; axis < 3; axis++ {
			assert.Equal(t, coord(frame, a, axis), F.Axis(axis)[a], "frame %d atom %d axis %d", frame, a, axis)
		}
	}
	if F.Cell != nil {
		assert.Equal(t, testCell(frame), *F.Cell)
	}
}

//readAll iterates the trajectory from the current frame, or from the start after a
//Reset, checking every frame. It returns the number of frames seen.
func readAll(t *testing.T, R *Reader) int {
	t.Helper()
	if R.Index() < 0 {
		if _, err := R.Advance(1); err != nil {
			require.True(t, trajio.IsLastFrame(err), "unexpected error %v", err)
			return 0
		}
	}
	n := 0
	for {
		checkFrame(t, R.Frame(), R.Index())
		n++
		_, err := R.Advance(1)
		if err != nil {
			require.True(t, trajio.IsLastFrame(err), "unexpected error %v", err)
			assert.True(t, errors.Is(err, io.EOF))
			return n
		}
	}
}

func TestRoundTrip(t *testing.T) {
	path := writeTestTraj(t, "rt.dcd", 4, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()

	H := R.Header()
	assert.Equal(t, 4, H.NAtoms)
	assert.Equal(t, 10, H.NFrames)
	assert.True(t, H.Periodic)
	assert.False(t, H.BigEndian)
	assert.Equal(t, int32(CharmmVersion), H.Charmm)
	assert.Equal(t, DefaultRemarks, H.Title[0])
	assert.Contains(t, H.Title[1], "REMARKS RUN ")
	assert.Equal(t, 10, R.NFrames())
	assert.Equal(t, 4, R.Len())
	assert.True(t, R.Readable())

	assert.Equal(t, 10, readAll(t, R))
	assert.False(t, R.Readable())
	//the last frame stays available
	assert.Equal(t, 9, R.Index())
	checkFrame(t, R.Frame(), 9)
}

func TestOpenReadsFirstFrame(t *testing.T) {
	path := writeTestTraj(t, "first.dcd", 3, 2)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.Equal(t, 0, R.Index())
	checkFrame(t, R.Frame(), 0)
	cell, ok := R.UnitCell()
	assert.True(t, ok)
	assert.Equal(t, testCell(0), cell)
}

func TestFrameIsCopy(t *testing.T) {
	path := writeTestTraj(t, "copy.dcd", 3, 2)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	F := R.Frame()
	_, err = R.Advance(1)
	require.NoError(t, err)
	checkFrame(t, F, 0)
	F.X[0] = 1000
	checkFrame(t, R.Frame(), 1)
}

func TestCopyFrameAndCoords(t *testing.T) {
	path := writeTestTraj(t, "coords.dcd", 5, 3)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	_, err = R.Advance(1)
	require.NoError(t, err)

	dst := trajio.NewFrame(2, false) //too small, must grow
	require.NoError(t, R.CopyFrame(dst))
	checkFrame(t, dst, 1)

	M, err := R.Coords(nil)
	require.NoError(t, err)
	r, c := M.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, float64(coord(1, 4, 1)), M.At(4, 1))

	_, err = R.Coords(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, trajio.ErrAtomCountMismatch)
}

func TestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dcd")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	_, err := Open(path)
	assert.ErrorIs(t, err, trajio.ErrEmptyFile)

	_, err = NewReader(bytes.NewReader(nil), "memory")
	assert.ErrorIs(t, err, trajio.ErrEmptyFile)
}

func TestNoFrames(t *testing.T) {
	path := writeTestTraj(t, "noframes.dcd", 4, 0)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.Equal(t, 0, R.NFrames())
	assert.Equal(t, -1, R.Index())
	assert.Nil(t, R.Frame())
	_, err = R.Advance(1)
	assert.True(t, trajio.IsLastFrame(err))
	require.NoError(t, R.Reset())
	_, err = R.Advance(1)
	assert.True(t, trajio.IsLastFrame(err))
	_, err = R.JumpTo(0)
	assert.ErrorIs(t, err, trajio.ErrFrameOutOfRange)
}

func TestReset(t *testing.T) {
	path := writeTestTraj(t, "reset.dcd", 3, 5)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.Equal(t, 5, readAll(t, R))

	require.NoError(t, R.Reset())
	require.NoError(t, R.Reset())
	assert.Equal(t, -1, R.Index())
	assert.Nil(t, R.Frame())
	assert.True(t, R.Readable())
	i, err := R.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	checkFrame(t, R.Frame(), 0)

	//skip is ignored for the first frame after a reset
	require.NoError(t, R.Reset())
	i, err = R.Advance(3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
}

func TestAdvanceSkip(t *testing.T) {
	path := writeTestTraj(t, "skip.dcd", 3, 10)
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	var got []int
	for {
		i, err := R.Advance(3)
		if err != nil {
			require.True(t, trajio.IsLastFrame(err))
			break
		}
		checkFrame(t, R.Frame(), i)
		got = append(got, i)
	}
	assert.Equal(t, []int{3, 6, 9}, got)
	assert.Equal(t, 9, R.Index())

	require.NoError(t, R.Reset())
	got = got[:0]
	for {
		i, err := R.Advance(4)
		if err != nil {
			break
		}
		got = append(got, i)
	}
	assert.Equal(t, []int{0, 4, 8}, got)
}

func TestTruncatedFile(t *testing.T) {
	path := writeTestTraj(t, "trunc.dcd", 4, 10)
	fi, err := os.Stat(path)
	require.NoError(t, err)
	R, err := Open(path)
	require.NoError(t, err)
	L := R.Layout()
	R.Close()
	require.Equal(t, L.HeaderSize+10*L.FrameSize, fi.Size())

	//cut the last frame in half, as an interrupted run would.
	require.NoError(t, os.Truncate(path, fi.Size()-L.FrameSize/2))
	R, err = Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.Equal(t, 10, R.Header().NFrames)
	assert.Equal(t, 9, R.NFrames())
	assert.Equal(t, 9, readAll(t, R))
	_, err = R.JumpTo(9)
	assert.ErrorIs(t, err, trajio.ErrFrameOutOfRange)
}

func TestUnclosedWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unclosed.dcd")
	W, err := NewWriter(path, 2)
	require.NoError(t, err)
	x := []float32{coord(0, 0, 0), coord(0, 1, 0)}
	y := []float32{coord(0, 0, 1), coord(0, 1, 1)}
	z := []float32{coord(0, 0, 2), coord(0, 1, 2)}
	for i := 0; i < 3; i++ {
		require.NoError(t, W.WriteFrame(x, y, z, nil))
	}
	R, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, R.Header().NFrames)
	assert.Equal(t, 3, R.NFrames())
	require.NoError(t, R.Close())
	require.NoError(t, W.Close())
}

func TestCorruptFrame(t *testing.T) {
	path := writeTestTraj(t, "corrupt.dcd", 3, 4)
	R, err := Open(path)
	require.NoError(t, err)
	off, err := R.Layout().Offset(2, R.NFrames())
	require.NoError(t, err)
	R.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[off] = 47 //the unit cell marker should be 48
	R, err = NewReader(bytes.NewReader(data), "memory")
	require.NoError(t, err)
	_, err = R.Advance(1)
	require.NoError(t, err)
	_, err = R.Advance(1)
	assert.ErrorIs(t, err, trajio.ErrCorruptFrame)
	assert.Equal(t, -1, R.Index())
	assert.Nil(t, R.Frame())

	//reading goes on with the frame after the bad one, under its own index.
	i, err := R.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	checkFrame(t, R.Frame(), 3)
	_, err = R.Advance(1)
	assert.True(t, trajio.IsLastFrame(err))

	require.NoError(t, R.Reset())
	_, err = R.Advance(2)
	require.NoError(t, err)
	_, err = R.Advance(2)
	assert.ErrorIs(t, err, trajio.ErrCorruptFrame)
	i, err = R.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	checkFrame(t, R.Frame(), 3)

	_, err = R.JumpTo(2)
	assert.ErrorIs(t, err, trajio.ErrCorruptFrame)
	F, err := R.JumpTo(3)
	require.NoError(t, err)
	checkFrame(t, F, 3)
}

func TestUseAfterClose(t *testing.T) {
	path := writeTestTraj(t, "closed.dcd", 3, 4)
	R, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, R.Close())
	assert.False(t, R.Readable())
	assert.Nil(t, R.Frame())

	_, err = R.Advance(1)
	assert.ErrorIs(t, err, trajio.ErrUseAfterClose)
	assert.ErrorIs(t, R.Reset(), trajio.ErrUseAfterClose)
	_, err = R.JumpTo(0)
	assert.ErrorIs(t, err, trajio.ErrUseAfterClose)
	_, err = R.Range(trajio.Unbounded, trajio.Unbounded, trajio.Unbounded)
	assert.ErrorIs(t, err, trajio.ErrUseAfterClose)
	_, err = R.Timeseries([]int{0}, trajio.Unbounded, trajio.Unbounded, 1, "fac")
	assert.ErrorIs(t, err, trajio.ErrUseAfterClose)
	assert.ErrorIs(t, R.CopyFrame(trajio.NewFrame(3, true)), trajio.ErrUseAfterClose)
	assert.ErrorIs(t, R.Close(), trajio.ErrUseAfterClose)
}

func TestBigEndian(t *testing.T) {
	path := writeTestTraj(t, "big.dcd", 4, 6, WithByteOrder(binary.BigEndian))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 84}, data[:4])

	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.True(t, R.Header().BigEndian)
	assert.Equal(t, 6, readAll(t, R))
	ts, err := R.Timeseries([]int{1, 3}, trajio.Unbounded, trajio.Unbounded, 1, "afc")
	require.NoError(t, err)
	assert.Equal(t, float64(coord(5, 3, 0)), ts.At(1, 5, 0))
}

func TestNonPeriodic(t *testing.T) {
	path := writeTestTraj(t, "noncell.dcd", 4, 3, WithUnitCell(false))
	R, err := Open(path)
	require.NoError(t, err)
	defer R.Close()
	assert.False(t, R.Header().Periodic)
	assert.Equal(t, int64(0), R.Layout().CellSize)
	F := R.Frame()
	assert.Nil(t, F.Cell)
	_, ok := R.UnitCell()
	assert.False(t, ok)
	assert.Equal(t, 3, readAll(t, R))
}

func TestFourDimensions(t *testing.T) {
	H := &Header{NAtoms: 2, NFrames: 2, NSavc: 1, Delta: 1, FourDim: true, Charmm: CharmmVersion, Title: []string{"4D"}}
	hb, err := EncodeHeader(H)
	require.NoError(t, err)
	B := &wbuffer{b: hb, o: binary.LittleEndian}
	for f := 0; f < 2; f++ {
		for axis := 0; axis < 4; axis++ {
			B.i32(8)
			for a := 0; a < 2; a++ {
				v := float32(99)
				if axis < 3 {
					v = coord(f, a, axis)
				}
				B.f32(v)
			}
			B.i32(8)
		}
	}
	R, err := NewReader(bytes.NewReader(B.b), "4d")
	require.NoError(t, err)
	assert.Equal(t, 4, R.Layout().Axes)
	assert.Equal(t, 2, R.NFrames())
	assert.Equal(t, 2, readAll(t, R))
	ts, err := R.Timeseries([]int{0, 1}, trajio.Unbounded, trajio.Unbounded, 1, "fac")
	require.NoError(t, err)
	assert.Equal(t, float64(coord(1, 1, 2)), ts.At(1, 1, 2))
}

func TestFixedAtomsUnsupported(t *testing.T) {
	H := &Header{NAtoms: 4, NSavc: 1, Delta: 1, NFixed: 2, FreeAtoms: []int32{2, 3}, Title: []string{"fixed"}}
	path := filepath.Join(t.TempDir(), "fixed.dcd")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteHeader(f, H))
	require.NoError(t, f.Close())
	_, err = Open(path)
	assert.ErrorIs(t, err, trajio.ErrUnsupportedFeature)
}
