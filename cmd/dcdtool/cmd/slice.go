/*
 * slice.go, part of trajio.
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
	"github.com/rmera/trajio/jobs"
	"github.com/spf13/cobra"
)

// sliceCmd represents the slice command
var sliceCmd = &cobra.Command{
	Use:   "slice <input> <output>",
	Short: "Copy a range of frames to a new trajectory",
	Long: `Copy the frames start, start+step, ... up to stop (exclusive) to a new DCD
file. The header of the new file keeps the settings of the input, with the
first step and the steps between frames adjusted.

Examples:
  dcdtool slice run.dcd every10.dcd --frames ::10
  dcdtool slice run.dcd.zst last100.dcd --frames -100:`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		framesFlag, _ := cmd.Flags().GetString("frames")
		start, stop, step, err := frameFlag(framesFlag)
		if err != nil {
			return err
		}
		n, err := jobs.Slice(args[0], args[1], start, stop, step)
		if err != nil {
			return err
		}
		cmd.Printf("%d frames written to %s\n", n, args[1])
		return nil
	},
}

// concatCmd represents the concat command
var concatCmd = &cobra.Command{
	Use:   "concat <output> <input>...",
	Short: "Join trajectories",
	Long: `Write the frames of every input, in order, to a new DCD file. The header of
the new file is built from the writer section of the configuration.

Example:
  dcdtool concat all.dcd part1.dcd part2.dcd.gz`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := jobs.Concat(args[0], cfg.WriterOptions(), args[1:]...)
		if err != nil {
			return err
		}
		cmd.Printf("%d frames written to %s\n", n, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(concatCmd)

	sliceCmd.Flags().StringP("frames", "f", "", "Frames to copy, as start:stop:step")
}
