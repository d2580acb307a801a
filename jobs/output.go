/*
 * output.go, part of trajio.
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

package jobs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"gonum.org/v1/gonum/mat"
)

// Write creates the output file of a task. It writes the date and the parameters of
// the task, encoded as TOML, and returns the file for further writing. It must be
// closed at the end of the task.
func Write(path string, structure interface{}) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	_, err = fmt.Fprintf(f, "Date: %v\n", time.Now().Format("2006-01-02 15:04:05 -0700 MST"))
	if err != nil {
		f.Close()
		return nil, err
	}

	enc := toml.NewEncoder(f)
	err = enc.Encode(structure)
	if err != nil {
		f.Close()
		return nil, err
	}

	_, err = f.Write([]byte{'\n'})
	if err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteTimeseries writes T as text, in its storage order: one block per element of its
// first dimension, each headed by a "# <dimension> <index>" line, with one line per
// element of the second dimension.
func WriteTimeseries(w io.Writer, T *trajio.Timeseries) error {
	bw := bufio.NewWriter(w)
	names := map[byte]string{'a': "atom", 'f': "frame", 'c': "coord"}
	for i := 0; i < T.Shape[0]; i++ {
		fmt.Fprintf(bw, "# %s %d\n", names[T.Format[0]], i)
		writeRows(bw, T.Matrix(i), nil)
	}
	return bw.Flush()
}

// WriteColumns writes M transposed, with x, if not nil, as the first column. It
// turns the output of the correlation queries (one column per frame) into one line per
// frame.
func WriteColumns(w io.Writer, x []float64, M mat.Matrix) error {
	bw := bufio.NewWriter(w)
	writeRows(bw, M.T(), x)
	return bw.Flush()
}

func writeRows(w io.Writer, M mat.Matrix, first []float64) {
	r, c := M.Dims()
	var b strings.Builder
	for i := 0; i < r; i++ {
		b.Reset()
		if first != nil {
			fmt.Fprintf(&b, "%g ", first[i])
		}
		for j := 0; j < c; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", M.At(i, j))
		}
		b.WriteByte('\n')
		io.WriteString(w, b.String())
	}
}

// Slice copies the frames start, start+step, ... up to stop (exclusive) of the
// trajectory in, to a new trajectory out. The header of out keeps the time step, unit cell
// setting, byte order and remarks of in, with the first step and the steps between
// frames adjusted to the selection. It returns the number of frames written.
func Slice(in, out string, start, stop, step int) (int, error) {
	R, err := dcd.Open(in)
	if err != nil {
		return 0, err
	}
	defer R.Close()
	it, err := R.Range(start, stop, step)
	if err != nil {
		return 0, err
	}
	start, _, step = it.Bounds()
	H := R.Header()
	var remarks []string
	for _, l := range H.Title {
		if !strings.HasPrefix(l, "REMARKS RUN ") {
			remarks = append(remarks, l)
		}
	}
	W, err := dcd.NewWriter(out, H.NAtoms,
		dcd.WithStart(H.IStart+int32(start)*H.NSavc),
		dcd.WithStep(H.NSavc*int32(step)),
		dcd.WithDelta(H.Delta),
		dcd.WithUnitCell(H.Periodic),
		dcd.WithByteOrder(H.Order()),
		dcd.WithRemarks(strings.Join(remarks, "\n")),
	)
	if err != nil {
		return 0, err
	}
	for it.Next() {
		F := it.Frame()
		if err := W.WriteFrame(F.X, F.Y, F.Z, F.Cell); err != nil {
			W.Close()
			return W.Frames(), err
		}
	}
	if err := it.Err(); err != nil {
		W.Close()
		return W.Frames(), err
	}
	return W.Frames(), W.Close()
}

// Concat writes the frames of every trajectory in inputs, in order, to a new trajectory
// out, created with the given writer options. All inputs must have the same number of
// atoms. Unit cells are dropped if out has none, and written as zeros if an input
// lacks them. It returns the number of frames written.
func Concat(out string, opts []dcd.Option, inputs ...string) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("no input trajectories: %w", trajio.ErrInvalidArgument)
	}
	readers := make([]*dcd.Reader, 0, len(inputs))
	defer func() {
		for _, R := range readers {
			R.Close()
		}
	}()
	for _, in := range inputs {
		R, err := dcd.Open(in)
		if err != nil {
			return 0, err
		}
		readers = append(readers, R)
		if n, m := R.Len(), readers[0].Len(); n != m {
			return 0, fmt.Errorf("%s has %d atoms, %s has %d: %w", in, n, inputs[0], m, trajio.ErrAtomCountMismatch)
		}
	}
	W, err := dcd.NewWriter(out, readers[0].Len(), opts...)
	if err != nil {
		return 0, err
	}
	periodic := W.Header().Periodic
	for i, R := range readers {
		it, err := R.Range(trajio.Unbounded, trajio.Unbounded, trajio.Unbounded)
		if err != nil {
			W.Close()
			return W.Frames(), err
		}
		for it.Next() {
			F := it.Frame()
			cell := F.Cell
			if !periodic {
				cell = nil
			}
			if err := W.WriteFrame(F.X, F.Y, F.Z, cell); err != nil {
				W.Close()
				return W.Frames(), err
			}
		}
		if err := it.Err(); err != nil {
			W.Close()
			return W.Frames(), fmt.Errorf("%s: %w", inputs[i], err)
		}
	}
	return W.Frames(), W.Close()
}
