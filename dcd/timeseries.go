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

package dcd

import (
	"math"

	"github.com/rmera/trajio"
)

//Above this many runs of consecutive atoms, the whole coordinate section of each frame is
//read at once instead of issuing one read per run and axis.
const maxPartialRuns = 32

// Timeseries returns the coordinates of the given atoms (0-based, in the given order) for
// the frames start, start+skip, ... up to stop (exclusive), in the requested axis order.
// trajio.Unbounded can be given for start, stop and skip, and negative start or stop count
// from the end, as in Range.
// Only the bytes holding the requested atoms are read, using positional reads, so the
// current frame and cursor of R are not affected.
func (R *Reader) Timeseries(atoms []int, start, stop, skip int, format string) (*trajio.Timeseries, error) {
	if R.state == rClosed {
		return nil, newError(trajio.ErrUseAfterClose, R.filename, "Timeseries", "reader is closed")
	}
	if len(atoms) == 0 {
		return nil, newError(trajio.ErrEmptySelection, R.filename, "Timeseries", "no atoms requested")
	}
	if err := trajio.CheckFormat(format); err != nil {
		return nil, newError(trajio.ErrInvalidFormat, R.filename, "Timeseries", "%v", err)
	}
	natoms := R.Len()
	for _, a := range atoms {
		if a < 0 || a >= natoms {
			return nil, newError(trajio.ErrInvalidArgument, R.filename, "Timeseries", "atom %d requested, frames have %d atoms", a, natoms)
		}
	}
	start, stop, skip, err := normalizeRange(start, stop, skip, R.nframes)
	if err != nil {
		return nil, setFileName(errDecorate(err, "Timeseries"), R.filename)
	}
	T, err := trajio.NewTimeseries(len(atoms), rangeLen(start, stop, skip), format)
	if err != nil {
		return nil, newError(trajio.ErrInvalidArgument, R.filename, "Timeseries", "%v", err)
	}
	runs := trajio.Runs(atoms)
	var read func(frame, pos int, T *trajio.Timeseries) error
	if len(runs) <= maxPartialRuns {
		var longest int
		for _, r := range runs {
			if r[1] > longest {
				longest = r[1]
			}
		}
		buf := make([]byte, 4*longest)
		read = func(frame, pos int, T *trajio.Timeseries) error {
			return R.readRuns(frame, pos, runs, buf, T)
		}
	} else {
		buf := make([]byte, 3*R.layout.AxisSize(1))
		read = func(frame, pos int, T *trajio.Timeseries) error {
			return R.readSection(frame, pos, atoms, buf, T)
		}
	}
	for pos, f := 0, start; f < stop; pos, f = pos+1, f+skip {
		if err := read(f, pos, T); err != nil {
			return nil, errDecorate(err, "Timeseries")
		}
	}
	return T, nil
}

//readAt fills b from the given offset. A short read means the frame is damaged.
func (R *Reader) readAt(b []byte, off int64, frame int) error {
	n, err := R.src.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil {
		err = trajio.ErrCorruptFrame
	}
	return newError(trajio.ErrCorruptFrame, R.filename, "readAt", "frame %d: read %d of %d bytes at offset %d: %v", frame, n, len(b), off, err)
}

//readRuns reads each run of consecutive atoms, one axis at a time, and puts the values in
//the pos-th frame of T.
func (R *Reader) readRuns(frame, pos int, runs [][2]int, buf []byte, T *trajio.Timeseries) error {
	o := R.endian
	for axis := 0; axis < 3; axis++ {
		a := 0 //position of the atom in the timeseries
		for _, r := range runs {
			b := buf[:4*r[1]]
			if err := R.readAt(b, R.layout.CoordOffset(frame, axis, r[0]), frame); err != nil {
				return errDecorate(err, "readRuns")
			}
			for i := 0; i < r[1]; i++ {
				T.Set(a+i, pos, axis, float64(math.Float32frombits(o.Uint32(b[4*i:]))))
			}
			a += r[1]
		}
	}
	return nil
}

//readSection reads the x, y and z records of a frame in one go.
func (R *Reader) readSection(frame, pos int, atoms []int, buf []byte, T *trajio.Timeseries) error {
	o := R.endian
	asize := int(R.layout.AxisSize(frame))
	b := buf[:3*asize]
	if err := R.readAt(b, R.layout.offset(frame)+R.layout.CellSize, frame); err != nil {
		return errDecorate(err, "readSection")
	}
	n := R.layout.AtomsIn(frame)
	for axis := 0; axis < 3; axis++ {
		rec := b[axis*asize : (axis+1)*asize]
		if int(o.Uint32(rec)) != 4*n || int(o.Uint32(rec[asize-4:])) != 4*n {
			return newError(trajio.ErrCorruptFrame, R.filename, "readSection", "frame %d: wrong coordinate record markers", frame)
		}
		for i, at := range atoms {
			T.Set(i, pos, axis, float64(math.Float32frombits(o.Uint32(rec[4+4*at:]))))
		}
	}
	return nil
}
