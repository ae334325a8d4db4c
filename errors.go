/*
 * errors.go, part of colco.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package colco

import (
	"errors"
	"fmt"
)

//Kinds of errors returned by the parser. They can be checked with errors.Is
//against any error returned by this package.
var (
	//A token already matched as a number could not be parsed. Should not happen.
	ErrNumericParse = errors.New("colco: numeric parse failure")
	//A bond record references an atom index outside [1, number of atoms].
	ErrDanglingBond = errors.New("colco: dangling bond reference")
	//The parser was given an invalid color policy or axis.
	ErrConfig = errors.New("colco: invalid parser configuration")
)

// Error is the error type for this package. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error struct {
	message string
	deco    []string
	kind    error
	line    int
}

func newError(kind error, line int, message string, caller string) *Error {
	return &Error{message: message, deco: []string{caller}, kind: kind, line: line}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	if err.line > 0 {
		return fmt.Sprintf("%s: line %d: %s", err.kind, err.line, err.message)
	}
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Line returns the 1-based line of the input where the problem was found,
//or 0 if it doesn't apply.
func (err *Error) Line() int {
	return err.line
}

//Unwrap returns the kind of the error (one of the Err* variables).
func (err *Error) Unwrap() error {
	return err.kind
}

//errDecorate is a helper function that decorates the error with the caller's name before
//returning it, if the error is a *Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
