/*
 * launch.go, part of trajio.
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
	"os"
	"strings"

	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"github.com/rmera/trajio/trajplot"
)

// Task is a unit of work that can be started from a job file.
type Task interface {
	Start() error
}

var constructors = map[string]func(TaskSpec) (Task, error){
	"info":     newInfoTask,
	"extract":  newExtractTask,
	"slice":    newSliceTask,
	"compress": newCompressTask,
	"plot":     newPlotTask,
	"correl":   newCorrelTask,
}

// Launch builds the task described by spec and runs it.
func Launch(spec TaskSpec) error {
	build, ok := constructors[spec.Type]
	if !ok {
		return fmt.Errorf("task `%s` doesn't exist", spec.Type)
	}
	task, err := build(spec)
	if err != nil {
		return fmt.Errorf("%s: New: %w", spec.Type, err)
	}
	err = task.Start()
	if err != nil {
		return fmt.Errorf("%s: Start: %w", spec.Type, err)
	}
	return nil
}

func needOutput(spec TaskSpec) error {
	if spec.Output == "" {
		return fmt.Errorf("no output file: %w", trajio.ErrInvalidArgument)
	}
	return nil
}

type frameRange struct {
	start, stop, step int
}

func parseFrames(s string) (frameRange, error) {
	var r frameRange
	var err error
	r.start, r.stop, r.step, err = trajio.ParseRange(s)
	return r, err
}

//infoTask writes a summary of a trajectory.
type infoTask struct {
	spec TaskSpec
}

func newInfoTask(spec TaskSpec) (Task, error) {
	return &infoTask{spec: spec}, nil
}

func (t *infoTask) Start() error {
	info, err := Describe(t.spec.Input)
	if err != nil {
		return err
	}
	if t.spec.Output == "" {
		return info.Write(os.Stdout)
	}
	f, err := os.Create(t.spec.Output)
	if err != nil {
		return err
	}
	if err := info.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//extractTask writes the coordinates of some atoms over a range of frames.
type extractTask struct {
	spec   TaskSpec
	atoms  []int
	frames frameRange
}

func newExtractTask(spec TaskSpec) (Task, error) {
	if err := needOutput(spec); err != nil {
		return nil, err
	}
	if spec.Format == "" {
		spec.Format = "fac"
	}
	if err := trajio.CheckFormat(spec.Format); err != nil {
		return nil, err
	}
	atoms, err := trajio.ParseIndices(spec.Atoms)
	if err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("no atoms to extract: %w", trajio.ErrEmptySelection)
	}
	frames, err := parseFrames(spec.Frames)
	if err != nil {
		return nil, err
	}
	return &extractTask{spec: spec, atoms: atoms, frames: frames}, nil
}

func (t *extractTask) Start() error {
	R, err := dcd.Open(t.spec.Input)
	if err != nil {
		return err
	}
	defer R.Close()
	T, err := R.Timeseries(t.atoms, t.frames.start, t.frames.stop, t.frames.step, t.spec.Format)
	if err != nil {
		return fmt.Errorf("Timeseries: %w", err)
	}
	out, err := Write(t.spec.Output, t.spec)
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	if err := WriteTimeseries(out, T); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

//sliceTask copies a range of frames to a new trajectory.
type sliceTask struct {
	spec   TaskSpec
	frames frameRange
}

func newSliceTask(spec TaskSpec) (Task, error) {
	if err := needOutput(spec); err != nil {
		return nil, err
	}
	frames, err := parseFrames(spec.Frames)
	if err != nil {
		return nil, err
	}
	return &sliceTask{spec: spec, frames: frames}, nil
}

func (t *sliceTask) Start() error {
	_, err := Slice(t.spec.Input, t.spec.Output, t.frames.start, t.frames.stop, t.frames.step)
	return err
}

//compressTask writes a compressed copy of a trajectory.
type compressTask struct {
	spec TaskSpec
}

func newCompressTask(spec TaskSpec) (Task, error) {
	if err := needOutput(spec); err != nil {
		return nil, err
	}
	if dcd.Codec(spec.Output) == "" {
		return nil, fmt.Errorf("%s has no .zst, .gz or .lzw extension: %w", spec.Output, trajio.ErrInvalidArgument)
	}
	return &compressTask{spec: spec}, nil
}

func (t *compressTask) Start() error {
	return dcd.Compress(t.spec.Input, t.spec.Output, t.spec.Level)
}

//plotTask plots one coordinate of some atoms against the frames.
type plotTask struct {
	spec   TaskSpec
	atoms  []int
	coord  int
	frames frameRange
}

func newPlotTask(spec TaskSpec) (Task, error) {
	if err := needOutput(spec); err != nil {
		return nil, err
	}
	coord := strings.Index("xyz", strings.ToLower(spec.Coord))
	if len(spec.Coord) != 1 || coord < 0 {
		return nil, fmt.Errorf("coordinate %q is not x, y or z: %w", spec.Coord, trajio.ErrInvalidArgument)
	}
	atoms, err := trajio.ParseIndices(spec.Atoms)
	if err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("no atoms to plot: %w", trajio.ErrEmptySelection)
	}
	frames, err := parseFrames(spec.Frames)
	if err != nil {
		return nil, err
	}
	return &plotTask{spec: spec, atoms: atoms, coord: coord, frames: frames}, nil
}

func (t *plotTask) Start() error {
	R, err := dcd.Open(t.spec.Input)
	if err != nil {
		return err
	}
	defer R.Close()
	it, err := R.Range(t.frames.start, t.frames.stop, t.frames.step)
	if err != nil {
		return err
	}
	T, err := R.Timeseries(t.atoms, t.frames.start, t.frames.stop, t.frames.step, "afc")
	if err != nil {
		return fmt.Errorf("Timeseries: %w", err)
	}
	labels := make([]string, len(t.atoms))
	for i, a := range t.atoms {
		labels[i] = fmt.Sprintf("atom %d", a)
	}
	o := trajplot.Options{Title: t.spec.Title, X: frameAxis(it)}
	return trajplot.Coordinate(T, t.coord, labels, o, t.spec.Output)
}

//correlTask computes observables over a range of frames.
type correlTask struct {
	spec   TaskSpec
	obs    []trajio.Observable
	frames frameRange
}

func newCorrelTask(spec TaskSpec) (Task, error) {
	if err := needOutput(spec); err != nil {
		return nil, err
	}
	if len(spec.Observables) == 0 {
		return nil, fmt.Errorf("no observables: %w", trajio.ErrEmptySelection)
	}
	obs := make([]trajio.Observable, len(spec.Observables))
	for i, s := range spec.Observables {
		var err error
		obs[i], err = trajio.ParseObservable(s)
		if err != nil {
			return nil, err
		}
	}
	frames, err := parseFrames(spec.Frames)
	if err != nil {
		return nil, err
	}
	return &correlTask{spec: spec, obs: obs, frames: frames}, nil
}

func (t *correlTask) Start() error {
	R, err := dcd.Open(t.spec.Input)
	if err != nil {
		return err
	}
	defer R.Close()
	it, err := R.Range(t.frames.start, t.frames.stop, t.frames.step)
	if err != nil {
		return err
	}
	M, err := R.Correl(t.obs, t.frames.start, t.frames.stop, t.frames.step)
	if err != nil {
		return fmt.Errorf("Correl: %w", err)
	}
	x := frameAxis(it)
	out, err := Write(t.spec.Output, t.spec)
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	if err := WriteColumns(out, x, M); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if t.spec.Plot == "" {
		return nil
	}
	var labels []string
	for i, o := range t.obs {
		for j := 0; j < o.Size(); j++ {
			l := t.spec.Observables[i]
			if o.Size() > 1 {
				l = fmt.Sprintf("%s (%c)", l, "xyz"[j%3])
			}
			labels = append(labels, l)
		}
	}
	return trajplot.Rows(M, labels, trajplot.Options{Title: t.spec.Title, X: x}, t.spec.Plot)
}

//frameAxis returns the trajectory index of each frame in the range.
func frameAxis(it *dcd.FrameIter) []float64 {
	start, _, step := it.Bounds()
	x := make([]float64, it.Len())
	for i := range x {
		x[i] = float64(start + i*step)
	}
	return x
}
