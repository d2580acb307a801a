/*
 * reader.go, part of trajio.
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
	"encoding/binary"
	"errors"
	"io"
	"log"
	"math"

	"github.com/rmera/trajio"
	"gonum.org/v1/gonum/mat"
)

// Source is anything a Reader can decode a DCD trajectory from. *os.File and *bytes.Reader
// satisfy it.
type Source interface {
	io.Reader
	io.Seeker
	io.ReaderAt
}

type rstate int

const (
	rOpened rstate = iota
	rIterating
	rExhausted
	rClosed
)

// Reader is a CHARMM/NAMD binary trajectory file opened for reading.
// It keeps one frame buffer that every read overwrites; the methods that give frames
// to the caller always return copies.
// A Reader is not safe for concurrent use.
type Reader struct {
	src      Source
	closer   io.Closer
	filename string
	header   *Header
	layout   Layout
	nframes  int //complete frames in the file
	next     int //index of the next frame to decode
	state    rstate
	current  bool //does frame hold a decoded frame?
	frame    *trajio.Frame
	buf      []byte
	endian   binary.ByteOrder
}

// Open opens a DCD file for reading. Files with the .zst, .gz or .lzw extensions are
// decompressed in memory first. The header is decoded and the first frame is read, so
// the returned Reader has a current frame unless the trajectory has no frames at all.
func Open(filename string) (*Reader, error) {
	src, closer, err := prepSource(filename)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	R, err := newReader(src, closer, filename)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, errDecorate(err, "Open")
	}
	return R, nil
}

// NewReader returns a Reader decoding the DCD trajectory in src. name is only used in
// error messages. The caller remains responsible for closing src, if needed.
func NewReader(src Source, name string) (*Reader, error) {
	R, err := newReader(src, nil, name)
	return R, errDecorate(err, "NewReader")
}

func newReader(src Source, closer io.Closer, name string) (*Reader, error) {
	R := &Reader{src: src, closer: closer, filename: name}
	if err := R.initRead(); err != nil {
		return nil, setFileName(err, name)
	}
	return R, nil
}

// initRead decodes the header, computes the frame geometry and reads the first frame.
// It supports big and little endianness, CHARMM, NAMD>=2.1 and X-PLOR files, but not
// fixed atoms.
func (R *Reader) initRead() error {
	size, err := R.src.Seek(0, io.SeekEnd)
	if err != nil {
		return newError(err, R.filename, "initRead", "seeking end of file")
	}
	if size == 0 {
		return newError(trajio.ErrEmptyFile, R.filename, "initRead", "zero size trajectory")
	}
	if _, err := R.src.Seek(0, io.SeekStart); err != nil {
		return newError(err, R.filename, "initRead", "seeking start of file")
	}
	H, err := ReadHeader(R.src)
	if err != nil {
		return errDecorate(err, "initRead")
	}
	if H.NFixed > 0 {
		return newError(trajio.ErrUnsupportedFeature, R.filename, "initRead", "%d fixed atoms", H.NFixed)
	}
	R.header = H
	R.endian = H.Order()
	R.layout = NewLayout(H)
	R.nframes = R.layout.CompleteFrames(size)
	if R.nframes != H.NFrames {
		//NSET is stale in files from interrupted runs.
		log.Printf("dcd: %s declares %d frames but contains %d complete frames. The latter will be used", R.filename, H.NFrames, R.nframes)
	}
	R.frame = trajio.NewFrame(H.NAtoms, H.Periodic)
	R.buf = make([]byte, R.layout.FirstFrameSize)
	if _, err := R.src.Seek(R.layout.HeaderSize, io.SeekStart); err != nil {
		return newError(err, R.filename, "initRead", "seeking first frame")
	}
	R.state = rOpened
	if err := R.readFrame(); err != nil {
		if trajio.IsLastFrame(err) {
			R.state = rExhausted
			return nil
		}
		return errDecorate(err, "initRead")
	}
	return nil
}

// Readable returns true if the object is ready to be read from, false otherwise.
// It doesn't guarantee that there is something to read.
func (R *Reader) Readable() bool {
	return R.state == rOpened || R.state == rIterating
}

// Len returns the number of atoms per frame.
func (R *Reader) Len() int {
	if R.header == nil {
		return 0
	}
	return R.header.NAtoms
}

// NFrames returns the number of complete frames in the file. It can be smaller than the
// count in the header if the file was truncated.
func (R *Reader) NFrames() int {
	return R.nframes
}

// Header returns a copy of the file header.
func (R *Reader) Header() Header {
	return *R.header
}

// Layout returns the byte geometry of the file.
func (R *Reader) Layout() Layout {
	return R.layout
}

// Filename returns the name the trajectory was opened with.
func (R *Reader) Filename() string {
	return R.filename
}

// Index returns the index of the current frame, or -1 if there is no current frame
// (right after Reset).
func (R *Reader) Index() int {
	if !R.current {
		return -1
	}
	return R.frame.Index
}

// Advance reads the next frame. If skip > 1, skip-1 frames are passed over first,
// so repeated calls with the same skip visit every skip-th frame. Right after Reset,
// nothing is skipped and the first frame is read. It returns the index of
// the frame read. When there are no more complete frames it returns a
// trajio.LastFrameError, and the current frame stays the last one read.
func (R *Reader) Advance(skip int) (int, error) {
	if R.state == rClosed {
		return -1, newError(trajio.ErrUseAfterClose, R.filename, "Advance", "reader is closed")
	}
	if R.state == rExhausted {
		return -1, newLastFrameError(R.filename, "Advance")
	}
	if skip > 1 && R.current {
		target := R.next + skip - 1
		if target >= R.nframes {
			R.state = rExhausted
			return -1, newLastFrameError(R.filename, "Advance")
		}
		if err := R.seekFrame(target); err != nil {
			return -1, errDecorate(err, "Advance")
		}
	}
	if err := R.readFrame(); err != nil {
		if trajio.IsLastFrame(err) {
			R.state = rExhausted
		}
		return -1, errDecorate(err, "Advance")
	}
	R.state = rIterating
	return R.frame.Index, nil
}

// Reset goes back to the beginning of the trajectory. The next call to Advance
// reads the first frame.
func (R *Reader) Reset() error {
	if R.state == rClosed {
		return newError(trajio.ErrUseAfterClose, R.filename, "Reset", "reader is closed")
	}
	if err := R.seekFrame(0); err != nil {
		return errDecorate(err, "Reset")
	}
	R.current = false
	R.state = rIterating
	if R.nframes == 0 {
		R.state = rExhausted
	}
	return nil
}

// Frame returns a copy of the current frame, or nil if there is none.
func (R *Reader) Frame() *trajio.Frame {
	if !R.current || R.state == rClosed {
		return nil
	}
	return R.frame.Copy()
}

// CopyFrame copies the current frame into dst, reusing dst's buffers when they are large
// enough.
func (R *Reader) CopyFrame(dst *trajio.Frame) error {
	if err := R.checkCurrent("CopyFrame"); err != nil {
		return err
	}
	R.frame.CopyTo(dst)
	return nil
}

// Coords puts the coordinates of the current frame in dst, which must be a natoms x 3
// matrix. If dst is nil, a new matrix is allocated.
func (R *Reader) Coords(dst *mat.Dense) (*mat.Dense, error) {
	if err := R.checkCurrent("Coords"); err != nil {
		return nil, err
	}
	if dst != nil {
		if r, c := dst.Dims(); r != R.Len() || c != 3 {
			return nil, newError(trajio.ErrAtomCountMismatch, R.filename, "Coords", "matrix is %dx%d, frames have %d atoms", r, c, R.Len())
		}
	}
	return R.frame.Dense(dst), nil
}

// UnitCell returns the unit cell of the current frame, and false if the trajectory is not
// periodic or there is no current frame.
func (R *Reader) UnitCell() (trajio.UnitCell, bool) {
	if !R.current || R.frame.Cell == nil {
		return trajio.UnitCell{}, false
	}
	return *R.frame.Cell, true
}

func (R *Reader) checkCurrent(caller string) error {
	if R.state == rClosed {
		return newError(trajio.ErrUseAfterClose, R.filename, caller, "reader is closed")
	}
	if !R.current {
		return newError(trajio.ErrFrameOutOfRange, R.filename, caller, "no current frame")
	}
	return nil
}

// Close releases the file. The Reader can't be used afterwards. Close is single-use:
// a second call returns an error.
func (R *Reader) Close() error {
	if R.state == rClosed {
		return newError(trajio.ErrUseAfterClose, R.filename, "Close", "reader already closed")
	}
	R.state = rClosed
	R.current = false
	R.buf = nil
	if R.closer == nil {
		return nil
	}
	if err := R.closer.Close(); err != nil {
		return newError(err, R.filename, "Close", "closing file")
	}
	return nil
}

//seekFrame places the cursor at the beginning of frame i.
func (R *Reader) seekFrame(i int) error {
	off := R.layout.HeaderSize
	if i > 0 {
		var err error
		off, err = R.layout.Offset(i, R.nframes)
		if err != nil {
			return setFileName(errDecorate(err, "seekFrame"), R.filename)
		}
	}
	if _, err := R.src.Seek(off, io.SeekStart); err != nil {
		return newError(err, R.filename, "seekFrame", "seeking frame %d", i)
	}
	R.next = i
	return nil
}

//readFrame decodes the frame under the cursor into the frame buffer.
func (R *Reader) readFrame() error {
	if R.next >= R.nframes {
		return newLastFrameError(R.filename, "readFrame")
	}
	b := R.buf[:R.layout.SizeOf(R.next)]
	if _, err := io.ReadFull(R.src, b); err != nil {
		//A frame cut short at the end of the file is the normal result
		//of an interrupted run, not an error.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return newLastFrameError(R.filename, "readFrame")
		}
		R.current = false
		//the cursor position is unknown after a failed read.
		if serr := R.seekFrame(R.next); serr != nil {
			return serr
		}
		return newError(err, R.filename, "readFrame", "reading frame %d", R.next)
	}
	R.current = false
	if err := R.decodeFrame(b, R.next, R.frame); err != nil {
		//the cursor is past the bad frame, so the next read gets the one after it.
		R.next++
		return err
	}
	R.frame.Index = R.next
	R.current = true
	R.next++
	return nil
}

//decodeFrame decodes the raw frame b into F, checking every record marker.
func (R *Reader) decodeFrame(b []byte, index int, F *trajio.Frame) error {
	o := R.endian
	wrong := func(what string) error {
		return newError(trajio.ErrCorruptFrame, R.filename, "decodeFrame", "frame %d: wrong %s record markers", index, what)
	}
	if R.layout.CellSize > 0 {
		if o.Uint32(b) != 48 || o.Uint32(b[52:]) != 48 {
			return wrong("unit cell")
		}
		for i := 0; i < 6; i++ {
			F.Cell[i] = math.Float64frombits(o.Uint64(b[4+8*i:]))
		}
		b = b[R.layout.CellSize:]
	}
	n := R.layout.AtomsIn(index)
	asize := int(R.layout.AxisSize(index))
	for axis := 0; axis < R.layout.Axes; axis++ {
		rec := b[axis*asize : (axis+1)*asize]
		if int(o.Uint32(rec)) != 4*n || int(o.Uint32(rec[asize-4:])) != 4*n {
			return wrong("coordinate")
		}
		if axis > 2 {
			continue //we skip the 4-D values.
		}
		dst := F.Axis(axis)
		for i := 0; i < n; i++ {
			dst[i] = math.Float32frombits(o.Uint32(rec[4+4*i:]))
		}
	}
	return nil
}
