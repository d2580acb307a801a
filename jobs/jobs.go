/*
 * jobs.go, part of trajio.
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

// Package jobs runs batches of trajectory tasks described in a TOML file. Tasks
// are grouped in stages: stages run one after the other, and the tasks of a stage
// run in parallel, each one with its own file handles.
//
// A job file looks like this:
//
//	[[stage]]
//	  [[stage.task]]
//	  type = "slice"
//	  input = "run.dcd"
//	  output = "every10.dcd"
//	  frames = "::10"
//
//	[[stage]]
//	  [[stage.task]]
//	  type = "extract"
//	  input = "every10.dcd"
//	  output = "ca.dat"
//	  atoms = "0-9"
//
//	  [[stage.task]]
//	  type = "compress"
//	  input = "every10.dcd"
//	  output = "every10.dcd.zst"
//	  level = 19
package jobs

import (
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pelletier/go-toml"
)

// TaskSpec holds the parameters of one task, as read from the job file. Which fields are
// used depends on Type.
type TaskSpec struct {
	Type   string `toml:"type"`
	Input  string `toml:"input"`
	Output string `toml:"output"`

	Atoms  string `toml:"atoms"`  //0-based indexes, such as "0-9,12"
	Frames string `toml:"frames"` //start:stop:step, any part can be omitted
	Format string `toml:"format"` //axis order for extract

	Coord string `toml:"coord"` //x, y or z, for plot
	Title string `toml:"title"`

	Observables []string `toml:"observables"` //for correl, such as "distance 0 5"
	Plot        string   `toml:"plot"`        //optional plot of the correl output

	Level int `toml:"level"` //for compress
}

// Stage is a group of tasks that run at the same time.
type Stage struct {
	Tasks []TaskSpec `toml:"task"`
}

// File is the content of a job file.
type File struct {
	Stages []Stage `toml:"stage"`
}

// New reads and parses the job file in path. The file must use the TOML format.
func New(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file File
	dec := toml.NewDecoder(f)
	err = dec.Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	for s, stage := range file.Stages {
		for t, task := range stage.Tasks {
			if _, ok := constructors[task.Type]; !ok {
				return nil, fmt.Errorf("stage %d, task %d: unknown task type %q", s, t, task.Type)
			}
			if task.Input == "" {
				return nil, fmt.Errorf("stage %d, task %d: no input file", s, t)
			}
		}
	}

	return &file, nil
}

// Tasks returns the number of tasks in the job.
func (f *File) Tasks() int {
	n := 0
	for _, s := range f.Stages {
		n += len(s.Tasks)
	}
	return n
}

// Start runs the stages in order. The first task of each stage runs in the calling
// goroutine and the others in their own goroutines; the next stage starts when all of
// them are done. A failed task is logged and doesn't stop the others. Start returns an
// error if any task failed.
func (f *File) Start(log *log.Logger) error {
	var failed atomic.Int32
	run := func(step, rtn int, spec TaskSpec) {
		err := Launch(spec)
		if err != nil {
			failed.Add(1)
			log.Println(fmt.Errorf("Launch (stage %d, task %d): %w", step, rtn, err))
			return
		}
		log.Printf("stage %d, task %d (%s %s) done", step, rtn, spec.Type, spec.Input)
	}
	var wg sync.WaitGroup
	for step, stage := range f.Stages {
		if len(stage.Tasks) == 0 {
			continue
		}

		for rtn, spec := range stage.Tasks[1:] {
			wg.Add(1)
			go func(step, rtn int, spec TaskSpec) {
				defer wg.Done()
				run(step, rtn, spec)
			}(step, rtn+1, spec)
		}

		run(step, 0, stage.Tasks[0])
		wg.Wait()
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d tasks failed", n, f.Tasks())
	}
	return nil
}
