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

/*Package trajio provides the types shared by the trajectory readers and writers in this module:
frames, unit cells, dense timeseries arrays and the per-frame observables used by the
correlation queries, together with the interfaces and error kinds all formats implement.

The formats themselves live in subpackages. Currently:

	dcd      CHARMM/NAMD (and X-PLOR) binary trajectories, with random access,
	         strided iteration, appending writer and partial-read timeseries extraction.

trajio only stores and retrieves coordinates. It does not know about topologies, it does
not rotate, translate or center anything, and it does not do statistics. Those belong to
whoever consumes the arrays produced here.

A handle (reader or writer) owns one file cursor and one frame buffer, so it must not be
shared between goroutines without external locking. Open one handle per goroutine instead.
*/
package trajio
