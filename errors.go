/*
 * errors.go, part of trajio.
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

package trajio

import "errors"

// Error kinds. Format packages return errors that wrap one of these, so callers can use
// errors.Is regardless of the format.
var (
	ErrEmptyFile          = errors.New("empty file")
	ErrCorruptHeader      = errors.New("corrupt or truncated header")
	ErrCorruptFrame       = errors.New("corrupt frame record")
	ErrFrameOutOfRange    = errors.New("frame out of range")
	ErrInvalidRange       = errors.New("invalid frame range")
	ErrAtomCountMismatch  = errors.New("atom count mismatch")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmptySelection     = errors.New("empty atom selection")
	ErrInvalidFormat      = errors.New("invalid timeseries format")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrUseAfterClose      = errors.New("use after close")
)

//Errors

// Error is the interface for errors that all packages in this module implement. The Decorate method allows
// to add and retrieve info from the error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a function in the calling stack. Each call returns the decoration
	//slice resulting from the current call. Given an empty string, it just returns the current value.
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError distinguishes the harmless errors (i.e. last frame) so they can be
// filtered in a type switch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}

// IsLastFrame reports whether err signals the normal end of a trajectory.
func IsLastFrame(err error) bool {
	var l LastFrameError
	return errors.As(err, &l)
}
