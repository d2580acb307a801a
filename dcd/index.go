/*
 * index.go, part of trajio.
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

// JumpTo reads frame i and returns a copy of it. Negative values of i count from the end,
// so JumpTo(-1) returns the last frame. The cursor is left right after frame i, so a
// following Advance(1) reads frame i+1.
func (R *Reader) JumpTo(i int) (*trajio.Frame, error) {
	if R.state == rClosed {
		return nil, newError(trajio.ErrUseAfterClose, R.filename, "JumpTo", "reader is closed")
	}
	if i < 0 {
		//Interpret similar to a sequence
		i += R.nframes
	}
	if i < 0 || i >= R.nframes {
		return nil, newError(trajio.ErrFrameOutOfRange, R.filename, "JumpTo", "frame %d requested, trajectory has %d", i, R.nframes)
	}
	if err := R.seekFrame(i); err != nil {
		return nil, errDecorate(err, "JumpTo")
	}
	if err := R.readFrame(); err != nil {
		return nil, errDecorate(err, "JumpTo")
	}
	R.state = rIterating
	return R.frame.Copy(), nil
}

//normalizeRange turns start, stop and step, any of which can be trajio.Unbounded
//and where start and stop can be negative, into plain indexes for n frames.
func normalizeRange(start, stop, step, n int) (int, int, int, error) {
	if step == trajio.Unbounded {
		step = 1
	}
	if start == trajio.Unbounded {
		start = 0
	} else if start < 0 {
		start += n
	}
	if stop == trajio.Unbounded {
		stop = n
	} else if stop < 0 {
		stop += n
	}
	if step <= 0 {
		return 0, 0, 0, newError(trajio.ErrInvalidRange, "", "normalizeRange", "step must be positive, got %d", step)
	}
	if stop < 0 || stop > n {
		return 0, 0, 0, newError(trajio.ErrInvalidRange, "", "normalizeRange", "stop %d outside [0,%d]", stop, n)
	}
	//start can only equal n for an empty range
	if start < 0 || start > stop {
		return 0, 0, 0, newError(trajio.ErrInvalidRange, "", "normalizeRange", "start %d outside [0,%d]", start, stop)
	}
	return start, stop, step, nil
}

func rangeLen(start, stop, step int) int {
	if stop <= start {
		return 0
	}
	return (stop - start + step - 1) / step
}

// Range returns a lazy sequence over frames start, start+step, ... up to stop (exclusive).
// trajio.Unbounded can be given for any of the arguments; start and stop can be negative,
// in which case they count from the end. Frames are only read as the sequence is consumed.
func (R *Reader) Range(start, stop, step int) (*FrameIter, error) {
	if R.state == rClosed {
		return nil, newError(trajio.ErrUseAfterClose, R.filename, "Range", "reader is closed")
	}
	start, stop, step, err := normalizeRange(start, stop, step, R.nframes)
	if err != nil {
		return nil, setFileName(errDecorate(err, "Range"), R.filename)
	}
	return &FrameIter{r: R, start: start, stop: stop, step: step, next: start}, nil
}

// FrameIter walks a range of frames of a Reader. It uses the Reader's cursor, so
// advancing the Reader while iterating is allowed but moves nothing in the iteration.
//
//	it, err := r.Range(trajio.Unbounded, trajio.Unbounded, 10)
//	for it.Next() {
//		f := it.Frame()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type FrameIter struct {
	r     *Reader
	start int
	stop  int
	step  int
	next  int
	frame *trajio.Frame
	err   error
}

// Next reads the next frame in the range. It returns false at the end of the range or
// on error.
func (I *FrameIter) Next() bool {
	if I.err != nil || I.next >= I.stop {
		return false
	}
	I.frame, I.err = I.r.JumpTo(I.next)
	if I.err != nil {
		I.frame = nil
		return false
	}
	I.next += I.step
	return true
}

// Frame returns the frame read by the last call to Next. Each frame is a
// separate copy that the caller can keep.
func (I *FrameIter) Frame() *trajio.Frame {
	return I.frame
}

// Index returns the index in the trajectory of the frame read by the last call to Next.
func (I *FrameIter) Index() int {
	if I.frame == nil {
		return -1
	}
	return I.frame.Index
}

// Err returns the error, if any, that stopped the iteration.
func (I *FrameIter) Err() error {
	return I.err
}

// Reset restarts the iteration from the first frame of the range.
func (I *FrameIter) Reset() {
	I.next = I.start
	I.frame = nil
	I.err = nil
}

// Len returns the number of frames in the range.
func (I *FrameIter) Len() int {
	return rangeLen(I.start, I.stop, I.step)
}

// Bounds returns the first frame, the end (exclusive) and the step of the range,
// with negative and unbounded values already resolved.
func (I *FrameIter) Bounds() (start, stop, step int) {
	return I.start, I.stop, I.step
}
