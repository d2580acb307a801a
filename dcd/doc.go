/*
 * doc.go, part of trajio.
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

/******************** Format summary   ***************************************************

Every block of a DCD file is a Fortran unformatted record: an int32 with the size of the
payload, the payload, and the same int32 again. Files can be little or big endian; the
first marker, which is always 84, tells which.

Header:
	84 "CORD" 20 x int32 84
		NSET at byte 8, ISTART at 12, NSAVC at 16, NSTEP at 20, NAMNF (fixed atoms) at 40,
		DELTA at 44 (float32, or float64 in X-PLOR files), unit cell flag at 48,
		4D flag at 52, CHARMM version at 84 (0 for X-PLOR).
	4+80*n  n  n x 80-byte title lines  4+80*n
	4  natoms  4
	4*nfree  nfree x int32 free atom indexes  4*nfree     (only with fixed atoms)

Each frame:
	48  6 x float64 (A, gamma, B, beta, alpha, C)  48     (only if the cell flag is set)
	4*n  n x float32 x  4*n
	4*n  n x float32 y  4*n
	4*n  n x float32 z  4*n
	4*n  n x float32 w  4*n                                (only in 4D files)

With fixed atoms, the first frame has all the atoms and the later ones only the free ones.

The frame count in the header is written before the frames exist, so writers patch it in
place, and files from runs that died often carry a stale one. Readers here trust the
file size instead.

******************************************************************************************/

//Package dcd reads and writes CHARMM/NAMD DCD binary trajectories.
//Readers offer sequential, strided and random access to frames, and
//extraction of the coordinates of a subset of atoms over many frames.
//Writers append frames to new files.
package dcd
