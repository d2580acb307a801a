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

package dcd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rmera/trajio"
)

//errDecorate decorates the error with the caller's name before returning it,
//if the error implements trajio.Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e trajio.Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// Error is the general structure for DCD trajectory errors. It fullfills trajio.Error and trajio.TrajError.
// It wraps one of the trajio error kinds, so errors.Is(err, trajio.ErrEmptyFile) and the like work.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	kind     error
}

func newError(kind error, filename string, caller string, format string, args ...interface{}) *Error {
	return &Error{
		message:  fmt.Sprintf(format, args...),
		filename: filename,
		deco:     []string{caller},
		critical: true,
		kind:     kind,
	}
}

func (err *Error) Error() string {
	if err.kind != nil {
		return fmt.Sprintf("dcd file %s error: %s: %s", err.filename, err.kind, err.message)
	}
	return fmt.Sprintf("dcd file %s error: %s", err.filename, err.message)
}

// Unwrap returns the error kind.
func (err *Error) Unwrap() error { return err.kind }

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated
func (err *Error) FileName() string { return err.filename }

// Format returns the format of the file (always "dcd") associated to the error
func (err *Error) Format() string { return "dcd" }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//lastFrameError implements trajio.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "dcd" }

// Unwrap lets errors.Is(err, io.EOF) recognize the end of a trajectory.
func (E *lastFrameError) Unwrap() error { return io.EOF }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

//setFileName records the file name in a DCD error that was created
//before the name was known.
func setFileName(err error, name string) error {
	var e *Error
	if errors.As(err, &e) && e.filename == "" {
		e.filename = name
	}
	return err
}
