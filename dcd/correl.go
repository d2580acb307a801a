/*
 * correl.go, part of trajio.
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
	"sort"

	"github.com/rmera/trajio"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Correl computes the given observables for the frames start, start+skip, ... up to stop
// (exclusive). The result has one column per frame, and Size() consecutive rows per
// observable, in the order the observables were given. Only the atoms the observables
// need are read from the file.
func (R *Reader) Correl(obs []trajio.Observable, start, stop, skip int) (*mat.Dense, error) {
	if R.state == rClosed {
		return nil, newError(trajio.ErrUseAfterClose, R.filename, "Correl", "reader is closed")
	}
	if len(obs) == 0 {
		return nil, newError(trajio.ErrEmptySelection, R.filename, "Correl", "no observables given")
	}
	set := make(map[int]bool)
	rows := 0
	for i, o := range obs {
		if len(o.Atoms()) == 0 || o.Size() <= 0 {
			return nil, newError(trajio.ErrInvalidArgument, R.filename, "Correl", "observable %d has no atoms or no values", i)
		}
		for _, a := range o.Atoms() {
			set[a] = true
		}
		rows += o.Size()
	}
	atoms := make([]int, 0, len(set))
	for a := range set {
		atoms = append(atoms, a)
	}
	sort.Ints(atoms)
	where := make(map[int]int, len(atoms)) //atom index -> position in the timeseries
	for i, a := range atoms {
		where[a] = i
	}
	T, err := R.Timeseries(atoms, start, stop, skip, "fac")
	if err != nil {
		return nil, errDecorate(err, "Correl")
	}
	nf := T.Frames()
	if nf == 0 {
		return nil, newError(trajio.ErrInvalidRange, R.filename, "Correl", "no frames in the requested range")
	}
	ret := mat.NewDense(rows, nf, nil)
	vals := make([]float64, rows)
	pos := make([]r3.Vec, 0, len(atoms))
	for f := 0; f < nf; f++ {
		row := 0
		for _, o := range obs {
			pos = pos[:0]
			for _, a := range o.Atoms() {
				i := where[a]
				pos = append(pos, r3.Vec{X: T.At(i, f, 0), Y: T.At(i, f, 1), Z: T.At(i, f, 2)})
			}
			o.Compute(pos, vals[row:row+o.Size()])
			row += o.Size()
		}
		ret.SetCol(f, vals)
	}
	return ret, nil
}
