/*
 * header.go, part of trajio.
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
	"math"
	"strings"

	"github.com/rmera/trajio"
)

const mAXTITLE = 80 //length of each title line

//Size of the first record, and offsets of the control words in the file.
//CHARMM and NAMD>=2.1 files store 20 int32 control words after "CORD".
const (
	prefixSize     = 92
	nsetOffset     = 8
	istartOffset   = 12
	nsavcOffset    = 16
	nstepOffset    = 20
	nfixedOffset   = 40
	deltaOffset    = 44
	cellFlagOffset = 48
	fourDimOffset  = 52
	versionOffset  = 84
)

// CharmmVersion is the version number written in the header of new files.
const CharmmVersion = 24

// Header holds the contents of the header of a DCD file.
type Header struct {
	NAtoms    int
	NFrames   int   //NSET, the frame count declared in the file
	IStart    int32 //first integration step
	NSavc     int32 //integration steps between frames
	NSteps    int32 //last integration step
	Delta     float64
	Periodic  bool //Is there a unit cell record in every frame?
	FourDim   bool //Is there a 4th dimension record in every frame?
	NFixed    int
	FreeAtoms []int32 //1-based indexes of the free atoms, only if NFixed>0
	Charmm    int32   //CHARMM version, 0 for X-PLOR files
	BigEndian bool
	Title     []string
}

// Order returns the byte order of the file described by H.
func (H *Header) Order() binary.ByteOrder {
	if H.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Size returns the size in bytes of the header as stored on disk.
func (H *Header) Size() int64 {
	s := int64(prefixSize)
	s += 12 + mAXTITLE*int64(titleLines(H.Title))
	s += 12
	if H.NFixed > 0 {
		s += 8 + 4*int64(H.NAtoms-H.NFixed)
	}
	return s
}

//a nil title is written as one blank line.
func titleLines(title []string) int {
	if title == nil {
		return 1
	}
	return len(title)
}

// Remarks returns the title lines joined by newlines.
func (H *Header) Remarks() string {
	return strings.Join(H.Title, "\n")
}

//reads exactly len(b) bytes. Any shortage is a corrupt header.
func readHeaderBytes(r io.Reader, b []byte, what string) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return newError(trajio.ErrCorruptHeader, "", "ReadHeader", "file too short reading %s", what)
		}
		return newError(err, "", "ReadHeader", "reading %s", what)
	}
	return nil
}

// ReadHeader decodes a DCD header from r, which must be positioned at the start of
// the file. It detects the byte order and supports CHARMM (and NAMD>=2.1) as well as
// X-PLOR files.
func ReadHeader(r io.Reader) (*Header, error) {
	H := new(Header)
	buf := make([]byte, prefixSize)
	if err := readHeaderBytes(r, buf, "the first record"); err != nil {
		return nil, err
	}
	//The first thing we should read is an 84.
	//If it isn't, the file is probably big endian.
	var o binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(buf) == 84:
		o = binary.LittleEndian
	case binary.BigEndian.Uint32(buf) == 84:
		o = binary.BigEndian
		H.BigEndian = true
	default:
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "first record marker is not 84")
	}
	if string(buf[4:8]) != "CORD" {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "wrong magic number %q", buf[4:8])
	}
	if o.Uint32(buf[88:]) != 84 {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "first record trailing marker is not 84")
	}
	i32 := func(off int) int32 { return int32(o.Uint32(buf[off:])) }
	H.NFrames = int(i32(nsetOffset))
	H.IStart = i32(istartOffset)
	H.NSavc = i32(nsavcOffset)
	H.NSteps = i32(nstepOffset)
	H.NFixed = int(i32(nfixedOffset))
	//X-plor sets this last int to zero, charmm sets it to its version number.
	H.Charmm = i32(versionOffset)
	if H.Charmm != 0 {
		H.Delta = float64(math.Float32frombits(o.Uint32(buf[deltaOffset:])))
		H.Periodic = i32(cellFlagOffset) != 0
		H.FourDim = i32(fourDimOffset) == 1
	} else {
		H.Delta = math.Float64frombits(o.Uint64(buf[deltaOffset:]))
	}
	if H.NFrames < 0 || H.NFixed < 0 {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "negative frame or fixed atom count")
	}

	//title
	rec := make([]byte, 8)
	if err := readHeaderBytes(r, rec, "the title record"); err != nil {
		return nil, err
	}
	size := int32(o.Uint32(rec))
	ntitle := int32(o.Uint32(rec[4:]))
	if ntitle < 0 || ntitle > 1000 || size != 4+mAXTITLE*ntitle {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "title record of %d bytes for %d lines", size, ntitle)
	}
	title := make([]byte, mAXTITLE*int(ntitle)+4)
	if err := readHeaderBytes(r, title, "the title record"); err != nil {
		return nil, err
	}
	if int32(o.Uint32(title[len(title)-4:])) != size {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "title record markers don't match")
	}
	H.Title = make([]string, 0, ntitle)
	for i := 0; i < int(ntitle); i++ {
		line := string(title[i*mAXTITLE : (i+1)*mAXTITLE])
		H.Title = append(H.Title, strings.TrimRight(line, " \x00"))
	}

	//the number of atoms, between two 4s.
	rec = make([]byte, 12)
	if err := readHeaderBytes(r, rec, "the atom count record"); err != nil {
		return nil, err
	}
	if o.Uint32(rec) != 4 || o.Uint32(rec[8:]) != 4 {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "wrong markers around the atom count")
	}
	H.NAtoms = int(int32(o.Uint32(rec[4:])))
	if H.NAtoms <= 0 {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "%d atoms in trajectory", H.NAtoms)
	}
	if H.NFixed == 0 {
		return H, nil //nothing else to do
	}
	if H.NFixed >= H.NAtoms {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "%d fixed atoms out of %d", H.NFixed, H.NAtoms)
	}
	nfree := H.NAtoms - H.NFixed
	free := make([]byte, 4*nfree+8)
	if err := readHeaderBytes(r, free, "the free atom record"); err != nil {
		return nil, err
	}
	if int(o.Uint32(free)) != 4*nfree || int(o.Uint32(free[len(free)-4:])) != 4*nfree {
		return nil, newError(trajio.ErrCorruptHeader, "", "ReadHeader", "wrong markers around the free atom indexes")
	}
	H.FreeAtoms = make([]int32, nfree)
	for i := range H.FreeAtoms {
		H.FreeAtoms[i] = int32(o.Uint32(free[4+4*i:]))
	}
	return H, nil
}

//wbuffer is a writing buffer for the DCD format. It appends fixed-width
//values in the byte order of the file.
type wbuffer struct {
	b []byte
	o binary.ByteOrder
}

func (B *wbuffer) i32(v int32) {
	var tmp [4]byte
	B.o.PutUint32(tmp[:], uint32(v))
	B.b = append(B.b, tmp[:]...)
}

func (B *wbuffer) f32(v float32) {
	B.i32(int32(math.Float32bits(v)))
}

func (B *wbuffer) f64(v float64) {
	var tmp [8]byte
	B.o.PutUint64(tmp[:], math.Float64bits(v))
	B.b = append(B.b, tmp[:]...)
}

func (B *wbuffer) raw(p []byte) {
	B.b = append(B.b, p...)
}

// EncodeHeader returns the on-disk representation of H. Files are always written in the
// CHARMM flavour; an H.Charmm of 0 is replaced by CharmmVersion.
func EncodeHeader(H *Header) ([]byte, error) {
	if H.NAtoms <= 0 {
		return nil, newError(trajio.ErrInvalidArgument, "", "EncodeHeader", "%d atoms in trajectory", H.NAtoms)
	}
	if H.NFixed < 0 || (H.NFixed > 0 && len(H.FreeAtoms) != H.NAtoms-H.NFixed) {
		return nil, newError(trajio.ErrInvalidArgument, "", "EncodeHeader", "%d fixed atoms but %d free atom indexes", H.NFixed, len(H.FreeAtoms))
	}
	version := H.Charmm
	if version == 0 {
		version = CharmmVersion
	}
	B := &wbuffer{b: make([]byte, 0, H.Size()), o: H.Order()}
	B.i32(84)
	B.raw([]byte("CORD"))
	B.i32(int32(H.NFrames))
	B.i32(H.IStart)
	B.i32(H.NSavc)
	B.i32(H.NSteps)
	//4 zeros
	for i := 0; i < 4; i++ {
		B.i32(0)
	}
	B.i32(int32(H.NFixed))
	B.f32(float32(H.Delta))
	B.i32(boolInt(H.Periodic))
	B.i32(boolInt(H.FourDim))
	//7 zeros
	for i := 0; i < 7; i++ {
		B.i32(0)
	}
	B.i32(version)
	B.i32(84)

	lines := titleLines(H.Title)
	B.i32(int32(4 + mAXTITLE*lines))
	B.i32(int32(lines))
	for i := 0; i < lines; i++ {
		line := make([]byte, mAXTITLE)
		for j := range line {
			line[j] = ' '
		}
		if i < len(H.Title) {
			copy(line, H.Title[i])
		}
		B.raw(line)
	}
	B.i32(int32(4 + mAXTITLE*lines))

	B.i32(4)
	B.i32(int32(H.NAtoms))
	B.i32(4)
	if H.NFixed > 0 {
		B.i32(int32(4 * len(H.FreeAtoms)))
		for _, v := range H.FreeAtoms {
			B.i32(v)
		}
		B.i32(int32(4 * len(H.FreeAtoms)))
	}
	return B.b, nil
}

// WriteHeader writes H to w.
func WriteHeader(w io.Writer, H *Header) error {
	b, err := EncodeHeader(H)
	if err != nil {
		return errDecorate(err, "WriteHeader")
	}
	if _, err := w.Write(b); err != nil {
		return newError(err, "", "WriteHeader", "writing header")
	}
	return nil
}

//DCD requires the number of frames at the beginning, so it has to be
//patched in place. WriteAt leaves the file cursor alone.
func patchFrameCount(w io.WriterAt, H *Header) error {
	o := H.Order()
	b := make([]byte, 4)
	o.PutUint32(b, uint32(H.NFrames))
	if _, err := w.WriteAt(b, nsetOffset); err != nil {
		return newError(err, "", "patchFrameCount", "updating frame count")
	}
	o.PutUint32(b, uint32(H.NSteps))
	if _, err := w.WriteAt(b, nstepOffset); err != nil {
		return newError(err, "", "patchFrameCount", "updating step count")
	}
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
