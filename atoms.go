/*
 * atoms.go, part of colco.
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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//Atom is a positioned, styled atom. Index is the 1-based position of the atom
//in the text it was read from, which is the index bond records use.
type Atom struct {
	Index    int
	Position r3.Vec
	Element  Element
}

//An atom record: three numbers with exactly one digit before the decimal point
//and at least two after it, followed by an alphabetic symbol. Whatever comes after
//the symbol on the same line is ignored, unless it is another atom record.
var atomPattern = regexp.MustCompile(`(?m)(?:^|[ \t])(-?\d\.\d{2,})[ \t]+(-?\d\.\d{2,})[ \t]+(-?\d\.\d{2,})[ \t]+([A-Za-z]+)\b`)

//extractAtoms returns the atoms in text, in the order they appear, and the largest absolute
//value of any of their coordinates. No atoms is not an error.
func extractAtoms(text string) ([]Atom, float64, error) {
	matches := atomPattern.FindAllStringSubmatchIndex(text, -1)
	atoms := make([]Atom, 0, len(matches))
	var maxabs float64
	for _, m := range matches {
		var c [3]float64
		for k := range c {
			tok := text[m[2+2*k]:m[3+2*k]]
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, 0, newError(ErrNumericParse, lineOf(text, m[0]), fmt.Sprintf("can't read coordinate %q: %s", tok, err), "extractAtoms")
			}
			c[k] = f
			maxabs = math.Max(maxabs, math.Abs(f))
		}
		atoms = append(atoms, Atom{
			Index:    len(atoms) + 1,
			Position: r3.Vec{X: c[0], Y: c[1], Z: c[2]},
			Element:  StyleFor(text[m[8]:m[9]]),
		})
	}
	return atoms, maxabs, nil
}

//lineOf returns the 1-based line number of the byte offset off in text.
func lineOf(text string, off int) int {
	return strings.Count(text[:off], "\n") + 1
}
