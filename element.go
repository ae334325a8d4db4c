/*
 * element.go, part of colco.
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
	"image/color"
	"math"
)

//Color is an RGB color with components in the 0-1 range.
type Color [3]float64

//RGBA returns the color as an opaque 8-bit color.RGBA, for use
//with the image/color ecosystem.
func (c Color) RGBA() color.RGBA {
	f := func(v float64) uint8 {
		return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
	}
	return color.RGBA{R: f(c[0]), G: f(c[1]), B: f(c[2]), A: 255}
}

//ElementKind is the closed set of elements with their own style.
type ElementKind int

const (
	Default ElementKind = iota //anything not listed below
	Carbon
	Oxygen
	Nitrogen
	Hydrogen
)

func (k ElementKind) String() string {
	switch k {
	case Carbon:
		return "Carbon"
	case Oxygen:
		return "Oxygen"
	case Nitrogen:
		return "Nitrogen"
	case Hydrogen:
		return "Hydrogen"
	}
	return "Default"
}

//Element is the visual style of an atom. Scale multiplies the
//radius of the sphere used to draw the atom.
type Element struct {
	Kind   ElementKind
	Symbol string //as read from the input, also for Default elements.
	Color  Color
	Scale  float64
}

//The style table. This is the only place where element symbols are
//mapped to anything.
var symbolStyle = map[string]Element{
	"C": {Kind: Carbon, Symbol: "C", Color: Color{0.106, 0.149, 0.169}, Scale: 1.0},
	"O": {Kind: Oxygen, Symbol: "O", Color: Color{0.94, 0.33, 0.40}, Scale: 1.0},
	"N": {Kind: Nitrogen, Symbol: "N", Color: Color{0.56, 0.89, 0.60}, Scale: 1.0},
	"H": {Kind: Hydrogen, Symbol: "H", Color: Color{0.88, 0.88, 0.93}, Scale: 0.8},
}

var defaultStyle = Element{Kind: Default, Color: Color{0.969, 0.949, 0.824}, Scale: 1.0}

var neutralBondColor = Color{0.6, 0.6, 0.6}

//NeutralBondColor returns the color given to both halves of every bond
//when the FixedColor policy is used.
func NeutralBondColor() Color {
	return neutralBondColor
}

//StyleFor returns the style for the element symbol. Symbols are case-sensitive.
//Unknown symbols get the Default style (keeping the given symbol). It never fails.
func StyleFor(symbol string) Element {
	if e, ok := symbolStyle[symbol]; ok {
		return e
	}
	e := defaultStyle
	e.Symbol = symbol
	return e
}
