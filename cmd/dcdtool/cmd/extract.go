/*
 * extract.go, part of trajio.
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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"github.com/rmera/trajio/jobs"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <trajectory>",
	Short: "Extract the coordinates of some atoms",
	Long: `Extract the coordinates of a set of atoms over a range of frames, as text.
The output is split in blocks along the first axis of --format.

Without --frames, every "skip" frames of the configuration are read.

Examples:
  dcdtool extract run.dcd --atoms 0-9,20 --frames 100:200
  dcdtool extract run.dcd --atoms 5 --format afc -o atom5.dat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		atomsFlag, _ := cmd.Flags().GetString("atoms")
		framesFlag, _ := cmd.Flags().GetString("frames")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		if format == "" {
			format = cfg.Format
		}
		atoms, err := trajio.ParseIndices(atomsFlag)
		if err != nil {
			return err
		}
		start, stop, step, err := frameFlag(framesFlag)
		if err != nil {
			return err
		}

		R, err := dcd.Open(args[0])
		if err != nil {
			return err
		}
		defer R.Close()
		T, err := R.Timeseries(atoms, start, stop, step, format)
		if err != nil {
			return err
		}
		logger.Printf("%s: %d atoms over %d frames", args[0], T.Atoms(), T.Frames())

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := jobs.WriteTimeseries(w, T); err != nil {
			return fmt.Errorf("writing timeseries: %w", err)
		}
		return nil
	},
}

//frameFlag parses a start:stop:step range. Without a step, the configured one is used.
func frameFlag(s string) (start, stop, step int, err error) {
	start, stop, step, err = trajio.ParseRange(s)
	if err == nil && step == trajio.Unbounded {
		step = cfg.Skip
	}
	return start, stop, step, err
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("atoms", "a", "", "Atoms to extract, 0-based, such as 0-9,12 (required)")
	extractCmd.Flags().StringP("frames", "f", "", "Frames to read, as start:stop:step")
	extractCmd.Flags().String("format", "", "Axis order of the output, one of afc, acf, caf, cfa, fac, fca")
	extractCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	if err := extractCmd.MarkFlagRequired("atoms"); err != nil {
		panic(err)
	}
}
