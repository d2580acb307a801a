/*
 * interfaces.go, part of trajio.
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

import "gonum.org/v1/gonum/mat"

// Traj is an interface for any trajectory object opened for reading.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Advance decodes the next frame into the trajectory's internal buffer, skipping
	//skip-1 frames first when skip > 1. It returns the index of the frame read, or
	//a LastFrameError when there are no more complete frames.
	Advance(skip int) (int, error)

	//Reset goes back to the first frame.
	Reset() error

	//CopyFrame copies the current frame into dst.
	CopyFrame(dst *Frame) error

	//Returns the number of atoms per frame
	Len() int

	Close() error
}

// RandomAccessTraj is a Traj whose frames can be reached by index.
type RandomAccessTraj interface {
	Traj

	//NFrames returns the number of complete frames in the trajectory.
	NFrames() int

	//JumpTo decodes frame i (negative values count from the end) and returns a copy of it.
	JumpTo(i int) (*Frame, error)
}

// Extractor can pull a subset of atoms over a range of frames into a dense array.
type Extractor interface {
	Timeseries(atoms []int, start, stop, skip int, format string) (*Timeseries, error)
}

// TrajWriter is an interface for trajectories opened for writing.
type TrajWriter interface {
	WriteFrame(x, y, z []float32, cell *UnitCell) error

	//WNext writes a natoms x 3 matrix as the next frame.
	WNext(coords *mat.Dense, cell ...*UnitCell) error

	Len() int

	Close() error
}
