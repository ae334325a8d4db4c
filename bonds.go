/*
 * bonds.go, part of colco.
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
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//Bond is an oriented, sized bond between two atoms of the same Molecule.
//At1 and At2 are the 1-based indexes of the atoms in Molecule.Atoms.
//The bond mesh is anchored at the position of At1, and Orientation takes
//the canonical mesh axis (see Axis) onto the At1->At2 direction.
type Bond struct {
	At1         int
	At2         int
	Anchor      r3.Vec
	Orientation r3.Rotation
	Order       int //number of parallel segments to draw.
	Length      float64
	Colors      [2]Color //the At1 half and the At2 half.
	TwoTone     bool
}

//Color returns the color of the half of the bond closest to the first (half=0)
//or second (half=1) atom. With a fixed color policy both halves are the same.
func (B Bond) Color(half int) Color {
	if half != 0 && half != 1 {
		panic(fmt.Sprintf("Bond.Color: invalid half %d", half))
	}
	return B.Colors[half]
}

//MaxStrokes is the largest number of parallel strokes a bond is drawn with.
//Larger orders are stored as read, but drawn as MaxStrokes strokes.
const MaxStrokes = 4

//Strokes returns the number of parallel strokes to draw for the bond: the order,
//clamped to [1, MaxStrokes].
func (B Bond) Strokes() int {
	switch {
	case B.Order < 1:
		return 1
	case B.Order > MaxStrokes:
		return MaxStrokes
	}
	return B.Order
}

//Tip returns the end of the bond opposite to the anchor, given the canonical
//axis that was used to orient the bond.
func (B Bond) Tip(up Axis) r3.Vec {
	return r3.Add(B.Anchor, r3.Scale(B.Length, B.Orientation.Rotate(up.Vec())))
}

//A bond record is a whole line with exactly 4 non-negative integers:
//first atom, second atom, bond order and a flag we don't use.
var bondPattern = regexp.MustCompile(`^(\d+)[ \t]+(\d+)[ \t]+(\d+)[ \t]+\d+$`)

//bondRecord is the raw content of a bond line.
type bondRecord struct {
	at1, at2 int //1-based
	order    int
}

//extractBonds returns the bond records in text, in order. It returns an error
//if any record refers to an atom outside [1, natoms].
func extractBonds(text string, natoms int) ([]bondRecord, error) {
	var records []bondRecord
	for n, line := range strings.Split(text, "\n") {
		f := bondPattern.FindStringSubmatch(strings.TrimSpace(line))
		if f == nil {
			continue
		}
		ln := n + 1
		var at [2]int
		for k := range at {
			i, err := strconv.Atoi(f[k+1])
			if err != nil || i < 1 || i > natoms {
				return nil, newError(ErrDanglingBond, ln, fmt.Sprintf("atom index %s not in [1, %d]", f[k+1], natoms), "extractBonds")
			}
			at[k] = i
		}
		order, err := strconv.Atoi(f[3])
		if err != nil {
			return nil, newError(ErrNumericParse, ln, fmt.Sprintf("can't read bond order %q: %s", f[3], err), "extractBonds")
		}
		records = append(records, bondRecord{at1: at[0], at2: at[1], order: order})
	}
	return records, nil
}

//ResolveBond builds the bond from first to second. The bond is anchored on first, and
//its orientation takes up.Vec() onto the first->second direction (see Orient).
func ResolveBond(first, second Atom, order int, colors ColorPolicy, up Axis) Bond {
	d := r3.Sub(second.Position, first.Position)
	b := Bond{
		At1:         first.Index,
		At2:         second.Index,
		Anchor:      first.Position,
		Orientation: Orient(d, up),
		Order:       order,
		Length:      r3.Norm(d),
	}
	if colors == TwoTone {
		b.Colors = [2]Color{first.Element.Color, second.Element.Color}
		b.TwoTone = true
	} else {
		b.Colors = [2]Color{neutralBondColor, neutralBondColor}
	}
	return b
}
