/*
 * info.go, part of trajio.
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
	"fmt"
	"io"

	"github.com/pelletier/go-toml"
	"github.com/rmera/trajio/dcd"
	"gonum.org/v1/gonum/floats"
)

// Info is a summary of a trajectory file.
type Info struct {
	File           string   `toml:"file"`
	Atoms          int      `toml:"atoms"`
	Frames         int      `toml:"frames"`
	DeclaredFrames int      `toml:"declared_frames"`
	IStart         int64    `toml:"istart"`
	NSavc          int64    `toml:"nsavc"`
	NSteps         int64    `toml:"nsteps"`
	Delta          float64  `toml:"delta"`
	Periodic       bool     `toml:"periodic"`
	FourDim        bool     `toml:"four_dim"`
	Fixed          int      `toml:"fixed"`
	Charmm         int64    `toml:"charmm"`
	BigEndian      bool     `toml:"big_endian"`
	Title          []string `toml:"title"`

	//Geometry of the first frame. Empty if there are no frames.
	Center []float64 `toml:"first_frame_center,omitempty"`
	Min    []float64 `toml:"first_frame_min,omitempty"`
	Max    []float64 `toml:"first_frame_max,omitempty"`
	Cell   []float64 `toml:"first_frame_cell,omitempty"` //a, b, c, alpha, beta, gamma
}

// Describe opens the trajectory in path and summarizes it.
func Describe(path string) (*Info, error) {
	R, err := dcd.Open(path)
	if err != nil {
		return nil, err
	}
	defer R.Close()
	H := R.Header()
	info := &Info{
		File:           path,
		Atoms:          H.NAtoms,
		Frames:         R.NFrames(),
		DeclaredFrames: H.NFrames,
		IStart:         int64(H.IStart),
		NSavc:          int64(H.NSavc),
		NSteps:         int64(H.NSteps),
		Delta:          H.Delta,
		Periodic:       H.Periodic,
		FourDim:        H.FourDim,
		Fixed:          H.NFixed,
		Charmm:         int64(H.Charmm),
		BigEndian:      H.BigEndian,
		Title:          H.Title,
	}
	F := R.Frame()
	if F == nil {
		return info, nil
	}
	n := float64(F.Len())
	coords := make([]float64, F.Len())
	for axis := 0; axis < 3; axis++ {
		for i, v := range F.Axis(axis) {
			coords[i] = float64(v)
		}
		info.Center = append(info.Center, floats.Sum(coords)/n)
		info.Min = append(info.Min, floats.Min(coords))
		info.Max = append(info.Max, floats.Max(coords))
	}
	if F.Cell != nil {
		d := F.Cell.Dimensions()
		info.Cell = d[:]
	}
	return info, nil
}

// Write writes the summary to w as TOML.
func (I *Info) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(I); err != nil {
		return fmt.Errorf("encoding info: %w", err)
	}
	return nil
}
