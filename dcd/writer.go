/*
 * writer.go, part of trajio.
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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmera/trajio"
	"github.com/segmentio/ksuid"
	"gonum.org/v1/gonum/mat"
)

// DefaultRemarks is the title given to new trajectories when no remarks are supplied.
const DefaultRemarks = "Created by trajio DCD writer"

type wstate int

const (
	wOpened wstate = iota
	wWriting
	wClosed
)

// Option modifies the header of a trajectory created with NewWriter.
type Option func(*Header)

// WithStart sets the first integration step (ISTART). Default 0.
func WithStart(istart int32) Option {
	return func(H *Header) { H.IStart = istart }
}

// WithStep sets the number of integration steps between frames (NSAVC). Default 1.
func WithStep(nsavc int32) Option {
	return func(H *Header) { H.NSavc = nsavc }
}

// WithDelta sets the integration time step. Default 1. It is stored as a float32.
func WithDelta(delta float64) Option {
	return func(H *Header) { H.Delta = delta }
}

// WithRemarks sets the title of the trajectory. Lines longer than 80 characters are
// split.
func WithRemarks(remarks string) Option {
	return func(H *Header) { H.Title = splitRemarks(remarks) }
}

// WithUnitCell sets whether frames carry a unit cell record. Default true.
func WithUnitCell(periodic bool) Option {
	return func(H *Header) { H.Periodic = periodic }
}

// WithByteOrder sets the byte order of the file. Default little endian.
func WithByteOrder(o binary.ByteOrder) Option {
	return func(H *Header) { H.BigEndian = o == binary.BigEndian }
}

func splitRemarks(remarks string) []string {
	var ret []string
	for _, line := range strings.Split(remarks, "\n") {
		for len(line) > mAXTITLE {
			ret = append(ret, line[:mAXTITLE])
			line = line[mAXTITLE:]
		}
		ret = append(ret, line)
	}
	return ret
}

// Writer is a CHARMM binary trajectory file opened for writing.
// A Writer is not safe for concurrent use.
type Writer struct {
	f         *os.File
	filename  string
	header    *Header
	layout    Layout
	buf       []byte
	state     wstate
	dcdFields [3][]float32 //scratch space for WNext
	runID     ksuid.KSUID
}

// NewWriter creates filename and writes the header of a trajectory of natoms atoms
// with no frames yet. The title gets the given remarks (or DefaultRemarks) plus a line with a
// unique identifier for the writing run.
func NewWriter(filename string, natoms int, opts ...Option) (*Writer, error) {
	if natoms <= 0 {
		return nil, newError(trajio.ErrInvalidArgument, filename, "NewWriter", "no atoms in output trajectory")
	}
	H := &Header{
		NAtoms:   natoms,
		NSavc:    1,
		Delta:    1,
		Periodic: true,
		Charmm:   CharmmVersion,
		Title:    splitRemarks(DefaultRemarks),
	}
	for _, opt := range opts {
		opt(H)
	}
	W := &Writer{filename: filename, header: H, runID: ksuid.New()}
	H.Title = append(H.Title, fmt.Sprintf("REMARKS RUN %s", W.runID))
	if err := W.initWrite(); err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	return W, nil
}

func (W *Writer) initWrite() error {
	var err error
	W.f, err = os.Create(W.filename)
	if err != nil {
		return newError(err, W.filename, "initWrite", "creating file")
	}
	if err := WriteHeader(W.f, W.header); err != nil {
		W.f.Close()
		return setFileName(errDecorate(err, "initWrite"), W.filename)
	}
	W.layout = NewLayout(W.header)
	W.buf = make([]byte, 0, W.layout.FrameSize)
	W.state = wOpened
	return nil
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.header.NAtoms
}

// Frames returns the number of frames written so far.
func (W *Writer) Frames() int {
	return W.header.NFrames
}

// Header returns a copy of the header of the trajectory being written.
func (W *Writer) Header() Header {
	return *W.header
}

// RunID returns the identifier written in the title of the trajectory.
func (W *Writer) RunID() ksuid.KSUID {
	return W.runID
}

// WriteFrame appends a frame to the trajectory. x, y and z must have one element per atom.
// For periodic trajectories, a nil cell is written as zeros; non periodic trajectories
// don't accept a cell.
// The frame count in the header is updated after every frame, so the file is a valid
// trajectory at any point, even if Close is never called.
func (W *Writer) WriteFrame(x, y, z []float32, cell *trajio.UnitCell) error {
	if W.state == wClosed {
		return newError(trajio.ErrUseAfterClose, W.filename, "WriteFrame", "writer is closed")
	}
	n := W.header.NAtoms
	if len(x) != n || len(y) != n || len(z) != n {
		return newError(trajio.ErrAtomCountMismatch, W.filename, "WriteFrame", "got %d/%d/%d coordinates, trajectory has %d atoms", len(x), len(y), len(z), n)
	}
	if cell != nil && !W.header.Periodic {
		return newError(trajio.ErrInvalidArgument, W.filename, "WriteFrame", "unit cell given for a non periodic trajectory")
	}
	B := &wbuffer{b: W.buf[:0], o: W.header.Order()}
	if W.header.Periodic {
		var c trajio.UnitCell
		if cell != nil {
			c = *cell
		}
		B.i32(48)
		for _, v := range c {
			B.f64(v)
		}
		B.i32(48)
	}
	blocksize := int32(4 * n)
	for _, axis := range [][]float32{x, y, z} {
		B.i32(blocksize)
		for _, v := range axis {
			B.f32(v)
		}
		B.i32(blocksize)
	}
	W.buf = B.b
	if _, err := W.f.Write(B.b); err != nil {
		werr := newError(err, W.filename, "WriteFrame", "writing frame %d", W.header.NFrames)
		if rerr := W.rollback(); rerr != nil {
			//the file can't be realigned, so no frame can be appended safely.
			W.state = wClosed
			W.f.Close()
		}
		return werr
	}
	W.header.NFrames++
	W.header.NSteps = W.header.IStart + int32(W.header.NFrames-1)*W.header.NSavc
	W.state = wWriting
	if err := patchFrameCount(W.f, W.header); err != nil {
		return setFileName(errDecorate(err, "WriteFrame"), W.filename)
	}
	return nil
}

//rollback drops whatever part of a frame a failed write left at the end of the file.
func (W *Writer) rollback() error {
	off := W.layout.offset(W.header.NFrames)
	if err := W.f.Truncate(off); err != nil {
		return err
	}
	_, err := W.f.Seek(off, io.SeekStart)
	return err
}

// WNext writes the coordinates in towrite, a natoms x 3 matrix, as the next frame.
func (W *Writer) WNext(towrite *mat.Dense, cell ...*trajio.UnitCell) error {
	if W.state == wClosed {
		return newError(trajio.ErrUseAfterClose, W.filename, "WNext", "writer is closed")
	}
	if towrite == nil {
		return newError(trajio.ErrInvalidArgument, W.filename, "WNext", "got nil coordinates")
	}
	n := W.header.NAtoms
	if r, c := towrite.Dims(); r != n || c != 3 {
		return newError(trajio.ErrAtomCountMismatch, W.filename, "WNext", "matrix is %dx%d, trajectory has %d atoms", r, c, n)
	}
	if W.dcdFields[0] == nil {
		for i := range W.dcdFields {
			W.dcdFields[i] = make([]float32, n)
		}
	}
	//This is easier to write to the dcd
	for i := 0; i < n; i++ {
		W.dcdFields[0][i] = float32(towrite.At(i, 0))
		W.dcdFields[1][i] = float32(towrite.At(i, 1))
		W.dcdFields[2][i] = float32(towrite.At(i, 2))
	}
	var c *trajio.UnitCell
	if len(cell) > 0 {
		c = cell[0]
	}
	return errDecorate(W.WriteFrame(W.dcdFields[0], W.dcdFields[1], W.dcdFields[2], c), "WNext")
}

// Close writes the final frame count, flushes and closes the file. Close is single-use:
// any later WriteFrame or Close returns an error.
func (W *Writer) Close() error {
	if W.state == wClosed {
		return newError(trajio.ErrUseAfterClose, W.filename, "Close", "writer already closed")
	}
	W.state = wClosed
	err := patchFrameCount(W.f, W.header)
	if err == nil {
		if serr := W.f.Sync(); serr != nil {
			err = newError(serr, W.filename, "Close", "syncing file")
		}
	}
	if cerr := W.f.Close(); cerr != nil && err == nil {
		err = newError(cerr, W.filename, "Close", "closing file")
	}
	return setFileName(errDecorate(err, "Close"), W.filename)
}
