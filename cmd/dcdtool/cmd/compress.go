/*
 * compress.go, part of trajio.
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

	"github.com/rmera/trajio"
	"github.com/rmera/trajio/dcd"
	"github.com/spf13/cobra"
)

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:   "compress <input> [output]",
	Short: "Write a compressed copy of a trajectory",
	Long: `Write a compressed copy of a finished trajectory. The codec is taken from
the extension of the output (.zst, .gz or .lzw). Without an output, the
configured codec is appended to the name of the input.

Compressed trajectories can be given as input to every other command.

Examples:
  dcdtool compress run.dcd
  dcdtool compress run.dcd run.dcd.gz --level 9`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := cfg.Compression.Level
		if cmd.Flags().Changed("level") {
			level, _ = cmd.Flags().GetInt("level")
		}
		output := args[0] + "." + cfg.Compression.Codec
		if len(args) == 2 {
			output = args[1]
		}
		if dcd.Codec(output) == "" {
			return fmt.Errorf("%s has no .zst, .gz or .lzw extension: %w", output, trajio.ErrInvalidArgument)
		}
		if err := dcd.Compress(args[0], output, level); err != nil {
			return err
		}
		logger.Printf("%s compressed to %s (level %d)", args[0], output, level)
		cmd.Printf("%s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().IntP("level", "l", 0, "Compression level (default: from the configuration)")
}
