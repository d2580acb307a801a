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

package cmd

import (
	"fmt"

	"github.com/rmera/trajio/jobs"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <trajectory>...",
	Short: "Summarize trajectories",
	Long: `Print the header values of each trajectory, the number of frames actually
present, and the center, bounds and unit cell of the first frame, as TOML.

Example:
  dcdtool info run.dcd run2.dcd.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, path := range args {
			info, err := jobs.Describe(path)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := info.Write(cmd.OutOrStdout()); err != nil {
				return err
			}
			logger.Printf("%s: %d frames, %d atoms", path, info.Frames, info.Atoms)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
