/*
 * gl.go, part of colco.
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

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rmera/colco"
)

//ProjectionMat returns the projection as a mgl32 matrix, ready for gl.UniformMatrix4fv.
func (S *Scene) ProjectionMat() mgl32.Mat4 {
	return mgl32.Mat4(S.Projection)
}

//Quat returns the orientation of the bond as a mgl32 quaternion.
func (B Bond) Quat() mgl32.Quat {
	r := B.Rotation
	return mgl32.Quat{W: float32(r[0]), V: mgl32.Vec3{float32(r[1]), float32(r[2]), float32(r[3])}}
}

//Model returns the model matrix that takes a bond mesh of length 1, lying along up from
//the origin, to its place in the molecule: scaled to the bond length, rotated, and moved
//to the anchor.
func (B Bond) Model(up colco.Axis) mgl32.Mat4 {
	s := mgl32.Vec3{1, 1, 1}
	switch up {
	case colco.AxisY:
		s[1] = float32(B.Length)
	case colco.AxisZ:
		s[2] = float32(B.Length)
	}
	a := B.Anchor
	T := mgl32.Translate3D(float32(a[0]), float32(a[1]), float32(a[2]))
	return T.Mul4(B.Quat().Mat4()).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

//Model returns the model matrix for a sphere mesh of radius 1: scaled by
//size times the element scale, and moved to the atom's position.
func (A Atom) Model(size float64) mgl32.Mat4 {
	r := float32(size * A.Scale)
	p := A.Position
	return mgl32.Translate3D(float32(p[0]), float32(p[1]), float32(p[2])).Mul4(mgl32.Scale3D(r, r, r))
}
