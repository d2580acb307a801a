/*
 * layout.go, part of trajio.
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

import "github.com/rmera/trajio"

//A unit cell record: marker, 6 float64, marker.
const cellRecordSize = 4 + 6*8 + 4

// Layout is the byte geometry of the frames of a DCD file. It is computed once from the
// header and used for every offset calculation on that file.
//
// Each frame is an optional unit cell record followed by one record per axis (3, or 4 in
// CHARMM 4D files), each record being a marker, one float32 per atom and a marker.
// With fixed atoms, the first frame stores all atoms and the following ones only the
// free atoms.
type Layout struct {
	HeaderSize     int64
	CellSize       int64 //0 for non periodic trajectories
	FirstFrameSize int64
	FrameSize      int64 //size of every frame after the first one
	Axes           int
	atoms          int //atoms stored in the first frame
	stored         int //atoms stored in the following frames
}

// NewLayout computes the frame geometry of the file described by H.
func NewLayout(H *Header) Layout {
	L := Layout{
		HeaderSize: H.Size(),
		Axes:       3,
		atoms:      H.NAtoms,
		stored:     H.NAtoms - H.NFixed,
	}
	if H.Periodic {
		L.CellSize = cellRecordSize
	}
	if H.FourDim {
		L.Axes = 4
	}
	L.FirstFrameSize = L.CellSize + int64(L.Axes)*L.AxisSize(0)
	L.FrameSize = L.CellSize + int64(L.Axes)*L.AxisSize(1)
	return L
}

// Compacted returns true if frames after the first one omit fixed atoms.
func (L Layout) Compacted() bool {
	return L.stored != L.atoms
}

// AtomsIn returns the number of atoms stored in the given frame.
func (L Layout) AtomsIn(frame int) int {
	if frame == 0 {
		return L.atoms
	}
	return L.stored
}

// AxisSize returns the size of one coordinate record in the given frame.
func (L Layout) AxisSize(frame int) int64 {
	return 8 + 4*int64(L.AtomsIn(frame))
}

// SizeOf returns the size of the given frame.
func (L Layout) SizeOf(frame int) int64 {
	if frame == 0 {
		return L.FirstFrameSize
	}
	return L.FrameSize
}

func (L Layout) offset(frame int) int64 {
	if frame == 0 {
		return L.HeaderSize
	}
	return L.HeaderSize + L.FirstFrameSize + int64(frame-1)*L.FrameSize
}

// Offset returns the position in the file where the given frame starts, in a
// trajectory with nframes frames.
func (L Layout) Offset(frame, nframes int) (int64, error) {
	if frame < 0 || frame >= nframes {
		return 0, newError(trajio.ErrFrameOutOfRange, "", "Offset", "frame %d requested, trajectory has %d", frame, nframes)
	}
	return L.offset(frame), nil
}

// CoordOffset returns the position in the file of the value of the given axis (0, 1, 2)
// for the atom stored in the given position of the frame.
func (L Layout) CoordOffset(frame, axis, atom int) int64 {
	return L.offset(frame) + L.CellSize + int64(axis)*L.AxisSize(frame) + 4 + 4*int64(atom)
}

// CompleteFrames returns how many complete frames fit in a file of the given size.
// Trailing bytes that don't make a whole frame are not counted.
func (L Layout) CompleteFrames(size int64) int {
	size -= L.HeaderSize
	if size < L.FirstFrameSize {
		return 0
	}
	size -= L.FirstFrameSize
	return 1 + int(size/L.FrameSize)
}
