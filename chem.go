/*
 * chem.go, part of colco.
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
 */

package colco

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/colco/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

/*Note: Molecule has no exported fields and no setters. Everything returned by its
 * methods is a copy, so a Molecule can be shared between goroutines without locking.
 * The application is in charge of swapping the "current" Molecule safely.*/

//Molecule is a parsed structure, ready to be rendered: the atoms, the bonds between them,
//and a projection that frames the whole thing.
type Molecule struct {
	atoms        []Atom
	bonds        []Bond
	projection   *mat.Dense
	boundingSize float64
	colors       ColorPolicy
	up           Axis
}

//Parser turns structure text into Molecules. The bond color policy and the
//canonical bond axis must be chosen explicitly, there are no defaults.
//A Parser has no state besides its configuration, and can be used concurrently.
type Parser struct {
	colors ColorPolicy
	up     Axis
}

//NewParser returns a parser that builds molecules with the given bond color
//policy and canonical bond axis. It returns an error wrapping ErrConfig if either
//value is not one of the defined constants.
func NewParser(colors ColorPolicy, up Axis) (*Parser, error) {
	if !colors.valid() {
		return nil, newError(ErrConfig, 0, fmt.Sprintf("invalid color policy %s", colors), "NewParser")
	}
	if !up.valid() {
		return nil, newError(ErrConfig, 0, fmt.Sprintf("invalid axis %s", up), "NewParser")
	}
	return &Parser{colors: colors, up: up}, nil
}

//Parse builds a Molecule from text. Text with no atom records gives an empty,
//valid Molecule. Any error aborts the whole parse; no partial Molecule is ever
//returned. Errors are *Error, wrapping ErrDanglingBond or ErrNumericParse.
func (P *Parser) Parse(text string) (*Molecule, error) {
	atoms, maxabs, err := extractAtoms(text)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	records, err := extractBonds(text, len(atoms))
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	bonds := make([]Bond, 0, len(records))
	for _, r := range records {
		bonds = append(bonds, ResolveBond(atoms[r.at1-1], atoms[r.at2-1], r.order, P.colors, P.up))
	}
	return &Molecule{
		atoms:        atoms,
		bonds:        bonds,
		projection:   Project(maxabs),
		boundingSize: maxabs,
		colors:       P.colors,
		up:           P.up,
	}, nil
}

//Molecule methods

//Len returns the number of atoms.
func (M *Molecule) Len() int {
	return len(M.atoms)
}

//NBonds returns the number of bonds.
func (M *Molecule) NBonds() int {
	return len(M.bonds)
}

//Empty is true if the structure text had no atom records.
func (M *Molecule) Empty() bool {
	return len(M.atoms) == 0
}

//Atom returns the atom with the 1-based index i, the same index bonds use.
//Panics if out of range.
func (M *Molecule) Atom(i int) Atom {
	if i < 1 || i > len(M.atoms) {
		panic(fmt.Sprintf("Molecule: Requested Atom %d out of bounds [1, %d]", i, len(M.atoms)))
	}
	return M.atoms[i-1]
}

//Atoms returns a copy of the atoms, in the order they were read.
func (M *Molecule) Atoms() []Atom {
	ret := make([]Atom, len(M.atoms))
	copy(ret, M.atoms)
	return ret
}

//Bonds returns a copy of the bonds, in the order they were read.
func (M *Molecule) Bonds() []Bond {
	ret := make([]Bond, len(M.bonds))
	copy(ret, M.bonds)
	return ret
}

//Projection returns a copy of the bounding projection (see Project).
func (M *Molecule) Projection() *mat.Dense {
	return mat.DenseCopyOf(M.projection)
}

//BoundingSize is the largest absolute value of any coordinate of any atom, 0
//for an empty molecule.
func (M *Molecule) BoundingSize() float64 {
	return M.boundingSize
}

//Policy returns the bond color policy the molecule was built with.
func (M *Molecule) Policy() ColorPolicy {
	return M.colors
}

//UpAxis returns the canonical bond axis the bonds were oriented against.
func (M *Molecule) UpAxis() Axis {
	return M.up
}

//Coords returns a new Nx3 matrix with the positions of the atoms, one per row.
func (M *Molecule) Coords() *v3.Matrix {
	c := v3.Zeros(len(M.atoms))
	for i, at := range M.atoms {
		c.SetVec(i, at.Position)
	}
	return c
}

//Centroid returns the geometric center of the atoms.
func (M *Molecule) Centroid() r3.Vec {
	return M.Coords().Centroid()
}

//Formula returns the molecular formula in Hill order: C first, then H, then the
//rest alphabetically. Without carbon, everything goes alphabetically.
func (M *Molecule) Formula() string {
	count := make(map[string]int)
	for _, at := range M.atoms {
		count[at.Element.Symbol]++
	}
	symbols := make([]string, 0, len(count))
	for s := range count {
		symbols = append(symbols, s)
	}
	_, hascarbon := count["C"]
	rank := func(s string) int {
		if !hascarbon {
			return 2
		}
		switch s {
		case "C":
			return 0
		case "H":
			return 1
		}
		return 2
	}
	sort.Slice(symbols, func(i, j int) bool {
		ri, rj := rank(symbols[i]), rank(symbols[j])
		if ri != rj {
			return ri < rj
		}
		return symbols[i] < symbols[j]
	})
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if count[s] > 1 {
			b.WriteString(strconv.Itoa(count[s]))
		}
	}
	return b.String()
}
