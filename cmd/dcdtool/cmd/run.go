/*
 * run.go, part of trajio.
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

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <jobfile>",
	Short: "Run the tasks of a TOML job file",
	Long: `Run the tasks described in a TOML job file. Stages run one after the other,
and the tasks of a stage run in parallel. A failed task doesn't stop the
others; the command fails if any task did.

Task types: info, extract, slice, compress, plot, correl.

Example job file:

  [[stage]]
    [[stage.task]]
    type = "slice"
    input = "run.dcd"
    output = "every10.dcd"
    frames = "::10"

  [[stage]]
    [[stage.task]]
    type = "correl"
    input = "every10.dcd"
    output = "d.dat"
    observables = ["distance 0 12"]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := jobs.New(args[0])
		if err != nil {
			return err
		}
		logger.Printf("%s: %d stages, %d tasks", args[0], len(job.Stages), job.Tasks())
		return job.Start(logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
