/*
 * geometric.go, part of colco.
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
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Axis is the local axis along which the un-rotated bond mesh lies.
//The zero value is not a valid axis.
type Axis int

const (
	AxisY Axis = iota + 1
	AxisZ
)

//Vec returns the unit vector along the axis.
func (a Axis) Vec() r3.Vec {
	switch a {
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisZ:
		return r3.Vec{Z: 1}
	}
	panic(fmt.Sprintf("colco: invalid axis %d", int(a)))
}

//Side returns the fixed axis, perpendicular to a, around which a bond pointing
//exactly against a is turned by 180 degrees.
func (a Axis) Side() r3.Vec {
	switch a {
	case AxisY:
		return r3.Vec{Z: 1}
	case AxisZ:
		return r3.Vec{X: 1}
	}
	panic(fmt.Sprintf("colco: invalid axis %d", int(a)))
}

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (a Axis) valid() bool {
	return a == AxisY || a == AxisZ
}

//ParseAxis returns the Axis named by s ("y" or "z", case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, newError(ErrConfig, 0, fmt.Sprintf("unknown axis %q", s), "ParseAxis")
}

//ColorPolicy selects how bonds are colored. It applies to a whole Molecule.
//The zero value is not a valid policy.
type ColorPolicy int

const (
	TwoTone    ColorPolicy = iota + 1 //each half of the bond gets the color of its atom.
	FixedColor                        //all bonds get NeutralBondColor().
)

func (c ColorPolicy) String() string {
	switch c {
	case TwoTone:
		return "two-tone"
	case FixedColor:
		return "fixed"
	}
	return fmt.Sprintf("ColorPolicy(%d)", int(c))
}

func (c ColorPolicy) valid() bool {
	return c == TwoTone || c == FixedColor
}

//ParseColorPolicy returns the policy named by s ("two-tone" or "fixed").
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "two-tone", "twotone":
		return TwoTone, nil
	case "fixed":
		return FixedColor, nil
	}
	return 0, newError(ErrConfig, 0, fmt.Sprintf("unknown color policy %q", s), "ParseColorPolicy")
}

//parallelTol is the tolerance for considering a direction parallel
//or antiparallel to the mesh axis.
const parallelTol = 1e-6

//Orient returns the rotation that takes up.Vec() onto the direction of forward.
//forward doesn't need to be normalized. A zero forward (two atoms on the same spot)
//gives the identity. A forward opposite to the axis gives a 180 degree turn around
//up.Side(), so no cross product is taken in that case.
func Orient(forward r3.Vec, up Axis) r3.Rotation {
	u := up.Vec()
	if r3.Norm(forward) == 0 {
		return r3.Rotation{Real: 1}
	}
	f := r3.Unit(forward)
	dot := r3.Dot(f, u)
	switch {
	case math.Abs(dot+1) < parallelTol:
		return r3.NewRotation(math.Pi, up.Side())
	case math.Abs(dot-1) < parallelTol:
		return r3.Rotation{Real: 1}
	}
	axis := r3.Unit(r3.Cross(u, f))
	return r3.NewRotation(math.Acos(dot), axis)
}

//Constants for framing a structure. The half-extent of the bounding projection is
//the largest coordinate magnitude times both of them.
const (
	AtomSpacingFactor = 4.5
	MarginFactor      = 2.0
)

//Extent returns the half-extent, on every axis, of the projection that frames
//a structure whose largest coordinate magnitude is maxabs.
func Extent(maxabs float64) float64 {
	return maxabs * AtomSpacingFactor * MarginFactor
}

//Project returns a symmetric orthographic projection for the box [-e, e] on every
//axis, with e = Extent(maxabs). The matrix follows the OpenGL right-handed convention
//(camera looks down -Z, clip-space z in [-1, 1]) and is meant to multiply column vectors,
//i.e. clip = P * [x y z 1]^T. It is stored in math (row-major) order in the Dense;
//use ColumnMajor to get the layout GL expects for uniforms.
//If the extent is 0 (no atoms, or all atoms on the origin) the all-zero matrix
//is returned, and no division takes place.
func Project(maxabs float64) *mat.Dense {
	e := Extent(maxabs)
	P := mat.NewDense(4, 4, nil)
	if e == 0 {
		return P
	}
	//left=bottom=near=-e, right=top=far=e. All the translation terms are 0.
	P.Set(0, 0, 1/e)
	P.Set(1, 1, 1/e)
	P.Set(2, 2, -1/e)
	P.Set(3, 3, 1)
	return P
}

//ColumnMajor flattens a 4x4 matrix in column-major order, as float32, ready to be
//uploaded as a GL uniform. It panics if m is not 4x4.
func ColumnMajor(m mat.Matrix) [16]float32 {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		panic(fmt.Sprintf("colco: ColumnMajor needs a 4x4 matrix, got %dx%d", r, c))
	}
	var ret [16]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			ret[j*4+i] = float32(m.At(i, j))
		}
	}
	return ret
}
