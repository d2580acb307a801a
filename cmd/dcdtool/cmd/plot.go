/*
 * plot.go, part of trajio.
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

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot <trajectory> <image>",
	Short: "Plot a coordinate of some atoms against the frames",
	Long: `Plot the x, y or z coordinate of a set of atoms over a range of frames. The
format of the image is taken from its extension (png, svg, pdf...).

Example:
  dcdtool plot run.dcd z.png --atoms 0-4 --coord z --frames ::10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		atoms, _ := cmd.Flags().GetString("atoms")
		frames, _ := cmd.Flags().GetString("frames")
		coord, _ := cmd.Flags().GetString("coord")
		title, _ := cmd.Flags().GetString("title")
		return jobs.Launch(jobs.TaskSpec{
			Type:   "plot",
			Input:  args[0],
			Output: args[1],
			Atoms:  atoms,
			Frames: frames,
			Coord:  coord,
			Title:  title,
		})
	},
}

// correlCmd represents the correl command
var correlCmd = &cobra.Command{
	Use:   "correl <trajectory> <output>",
	Short: "Compute positions, distances and angles over the frames",
	Long: `Compute one or more observables over a range of frames. The output has one
line per frame: the frame index followed by the value of every observable.

Observables are given as a name followed by 0-based atom indexes:
  position N, distance A B, angle A B C, dihedral A B C D, centroid 0-9,12

Example:
  dcdtool correl run.dcd d.dat --obs "distance 0 12" --obs "angle 0 1 2" --plot d.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		obs, _ := cmd.Flags().GetStringArray("obs")
		frames, _ := cmd.Flags().GetString("frames")
		plotFile, _ := cmd.Flags().GetString("plot")
		title, _ := cmd.Flags().GetString("title")
		return jobs.Launch(jobs.TaskSpec{
			Type:        "correl",
			Input:       args[0],
			Output:      args[1],
			Frames:      frames,
			Observables: obs,
			Plot:        plotFile,
			Title:       title,
		})
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(correlCmd)

	plotCmd.Flags().StringP("atoms", "a", "", "Atoms to plot, 0-based, such as 0-9,12 (required)")
	plotCmd.Flags().StringP("frames", "f", "", "Frames to read, as start:stop:step")
	plotCmd.Flags().String("coord", "x", "Coordinate to plot: x, y or z")
	plotCmd.Flags().StringP("title", "t", "", "Title of the plot")
	if err := plotCmd.MarkFlagRequired("atoms"); err != nil {
		panic(err)
	}

	correlCmd.Flags().StringArray("obs", nil, "Observable to compute, can be repeated (required)")
	correlCmd.Flags().StringP("frames", "f", "", "Frames to read, as start:stop:step")
	correlCmd.Flags().String("plot", "", "Also plot the observables to this image")
	correlCmd.Flags().StringP("title", "t", "", "Title of the plot")
	if err := correlCmd.MarkFlagRequired("obs"); err != nil {
		panic(err)
	}
}
